package database

import (
	"context"
	"errors"
	"fmt"

	"payments-backend/internal/models"

	"gorm.io/gorm"
)

// GormStore persists payments in a relational table.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Put(ctx context.Context, payment *models.Payment) error {
	if err := s.db.WithContext(ctx).Create(payment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrPaymentExists
		}
		return fmt.Errorf("failed to insert payment %s: %w", payment.PaymentID, err)
	}
	return nil
}

func (s *GormStore) Get(ctx context.Context, paymentID string) (*models.Payment, error) {
	var payment models.Payment
	err := s.db.WithContext(ctx).Where("payment_id = ?", paymentID).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to load payment %s: %w", paymentID, err)
	}
	payment.CreatedAt = payment.CreatedAt.UTC()
	return &payment, nil
}
