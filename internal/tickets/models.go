package tickets

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type TicketStatus string

const (
	TicketStatusPending   TicketStatus = "pending"
	TicketStatusConfirmed TicketStatus = "confirmed"
	TicketStatusUsed      TicketStatus = "used"
	TicketStatusCancelled TicketStatus = "cancelled"
)

// KnownStatuses returns the statuses the backend may assign, in bucket order.
// The service never invents a status of its own.
func KnownStatuses() []TicketStatus {
	return []TicketStatus{
		TicketStatusPending,
		TicketStatusConfirmed,
		TicketStatusUsed,
		TicketStatusCancelled,
	}
}

// StatusFilterAll matches every status in list queries.
const StatusFilterAll = "all"

type Event struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Title       string    `json:"title" gorm:"not null;size:255"`
	Description string    `json:"description" gorm:"type:text"`
	Location    string    `json:"location" gorm:"size:255"`
	StartDate   time.Time `json:"start_date" gorm:"not null"`
	PriceCents  int64     `json:"price_cents" gorm:"not null;check:price_cents >= 0"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

type Ticket struct {
	ID        uuid.UUID    `json:"id" gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	UserID    uuid.UUID    `json:"user_id" gorm:"type:uuid;not null;index"`
	EventID   uuid.UUID    `json:"event_id" gorm:"type:uuid;not null"`
	Status    TicketStatus `json:"status" gorm:"type:varchar(20);not null;default:'pending'"`
	CreatedAt time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"autoUpdateTime"`

	Event Event `json:"event" gorm:"foreignKey:EventID"`
}

type TicketListQuery struct {
	Search string `form:"search"`
	Status string `form:"status" binding:"omitempty,ticketstatusfilter"`
}

type TicketResponse struct {
	ID        string       `json:"id"`
	Status    TicketStatus `json:"status"`
	Event     Event        `json:"event"`
	CreatedAt time.Time    `json:"created_at"`
}

// TicketListResponse carries the filtered sequence plus the per-status
// buckets a browsing view renders as tabs.
type TicketListResponse struct {
	Tickets     []TicketResponse                  `json:"tickets"`
	Buckets     map[TicketStatus][]TicketResponse `json:"buckets"`
	TotalCount  int                               `json:"total_count"`
	FilterCount int                               `json:"filter_count"`
}

// RegisterValidations wires the ticket status filter validation into gin's
// binding engine. Called once during route setup.
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("ticketstatusfilter", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			if value == StatusFilterAll {
				return true
			}
			for _, s := range KnownStatuses() {
				if value == string(s) {
					return true
				}
			}
			return false
		})
	}
}

func toTicketResponse(t Ticket) TicketResponse {
	return TicketResponse{
		ID:        t.ID.String(),
		Status:    t.Status,
		Event:     t.Event,
		CreatedAt: t.CreatedAt,
	}
}
