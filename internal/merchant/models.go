package merchant

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionType string

const (
	TransactionTypeEarning TransactionType = "earning"
	TransactionTypeRefund  TransactionType = "refund"
)

// Transaction is one settled payment credited to a merchant. Amounts are
// stored in the smallest currency unit.
type Transaction struct {
	ID           uuid.UUID       `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	RecipientID  uuid.UUID       `json:"recipient_id" gorm:"type:uuid;not null;index"`
	SourceUserID uuid.UUID       `json:"source_user_id" gorm:"type:uuid;not null;index"`
	AmountCents  int64           `json:"amount_cents" gorm:"not null"`
	Type         TransactionType `json:"type" gorm:"type:varchar(20);not null;default:'earning';index"`
	Reference    string          `json:"reference" gorm:"size:100"`
	CreatedAt    time.Time       `json:"created_at" gorm:"autoCreateTime;index"`
}

// QRCode is a merchant's payment QR code. Only active codes are counted on
// the dashboard.
type QRCode struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	OwnerID   uuid.UUID `json:"owner_id" gorm:"type:uuid;not null;index"`
	Label     string    `json:"label" gorm:"size:100"`
	Active    bool      `json:"active" gorm:"not null;default:true"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// EarningsStats is the merchant dashboard summary. It is derived, never
// persisted, and recomputed wholesale from the transaction list on each fetch.
type EarningsStats struct {
	TotalCents   int64 `json:"total_cents"`
	DailyCents   int64 `json:"daily_cents"`
	WeeklyCents  int64 `json:"weekly_cents"`
	MonthlyCents int64 `json:"monthly_cents"`

	Total   string `json:"total"`
	Daily   string `json:"daily"`
	Weekly  string `json:"weekly"`
	Monthly string `json:"monthly"`

	TransactionCount int   `json:"transaction_count"`
	UniqueCustomers  int   `json:"unique_customers"`
	ActiveQRCount    int64 `json:"active_qr_count"`
}

// TransactionRow is a transaction joined with the paying customer's profile.
type TransactionRow struct {
	ID           uuid.UUID       `json:"id"`
	SourceUserID uuid.UUID       `json:"source_user_id"`
	CustomerName string          `json:"customer_name"`
	AmountCents  int64           `json:"amount_cents"`
	Type         TransactionType `json:"type"`
	CreatedAt    time.Time       `json:"created_at"`
}

type TransactionResponse struct {
	ID           string          `json:"id"`
	CustomerName string          `json:"customer_name"`
	AmountCents  int64           `json:"amount_cents"`
	Amount       string          `json:"amount"`
	Type         TransactionType `json:"type"`
	CreatedAt    time.Time       `json:"created_at"`
}

type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	TotalCount   int                   `json:"total_count"`
}

// formatAmount renders cents as a fixed two-decimal currency string.
func formatAmount(cents int64) string {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}
