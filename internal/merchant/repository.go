package merchant

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	GetEarnings(ctx context.Context, recipientID uuid.UUID) ([]Transaction, error)
	GetTransactionRows(ctx context.Context, recipientID uuid.UUID) ([]TransactionRow, error)
	ActiveQRCount(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetEarnings returns every earning credited to the merchant, newest first.
func (r *repository) GetEarnings(ctx context.Context, recipientID uuid.UUID) ([]Transaction, error) {
	var transactions []Transaction
	err := r.db.WithContext(ctx).
		Where("recipient_id = ? AND type = ?", recipientID, TransactionTypeEarning).
		Order("created_at DESC").
		Find(&transactions).Error
	if err != nil {
		return nil, err
	}
	return transactions, nil
}

// GetTransactionRows joins each transaction with the paying customer's
// profile for display. The join is LEFT so a missing profile yields an empty
// name instead of dropping the row.
func (r *repository) GetTransactionRows(ctx context.Context, recipientID uuid.UUID) ([]TransactionRow, error) {
	var rows []TransactionRow
	err := r.db.WithContext(ctx).
		Table("transactions t").
		Select("t.id, t.source_user_id, COALESCE(p.display_name, '') as customer_name, t.amount_cents, t.type, t.created_at").
		Joins("LEFT JOIN profiles p ON p.user_id = t.source_user_id").
		Where("t.recipient_id = ? AND t.type = ?", recipientID, TransactionTypeEarning).
		Order("t.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ActiveQRCount(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&QRCode{}).
		Where("owner_id = ? AND active = ?", ownerID, true).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
