package services

import (
	"context"
	"fmt"
	"time"

	"payments-backend/internal/database"
	"payments-backend/internal/models"
	"payments-backend/internal/utils"

	"github.com/google/uuid"
)

// PaymentService creates and looks up payments in a PaymentStore.
type PaymentService struct {
	store database.PaymentStore
	now   func() time.Time
	newID func() string
}

func NewPaymentService(store database.PaymentStore) *PaymentService {
	return &PaymentService{
		store: store,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

// CreatePayment records a new PENDING payment built from an already
// validated request.
func (s *PaymentService) CreatePayment(ctx context.Context, req *utils.PaymentRequest) (*models.Payment, error) {
	payment := &models.Payment{
		PaymentID: s.newID(),
		Status:    models.PaymentStatusPending,
		Amount:    req.Amount,
		Currency:  req.Currency,
		PayerID:   req.PayerID,
		PayeeID:   req.PayeeID,
		CreatedAt: s.now().UTC().Truncate(time.Microsecond),
	}
	if req.Description != nil {
		d := *req.Description
		payment.Description = &d
	}

	if err := s.store.Put(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}
	return payment, nil
}

// GetPayment returns the payment with the given id, or
// database.ErrPaymentNotFound.
func (s *PaymentService) GetPayment(ctx context.Context, paymentID string) (*models.Payment, error) {
	return s.store.Get(ctx, paymentID)
}
