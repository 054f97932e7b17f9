package database

import (
	"context"
	"sync"

	"payments-backend/internal/models"
)

// MemoryStore keeps payments in a map for the lifetime of the value.
type MemoryStore struct {
	mu       sync.RWMutex
	payments map[string]models.Payment
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		payments: make(map[string]models.Payment),
	}
}

func (s *MemoryStore) Put(_ context.Context, payment *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.payments[payment.PaymentID]; exists {
		return ErrPaymentExists
	}
	s.payments[payment.PaymentID] = clonePayment(payment)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, paymentID string) (*models.Payment, error) {
	s.mu.RLock()
	p, ok := s.payments[paymentID]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrPaymentNotFound
	}
	out := clonePayment(&p)
	return &out, nil
}

// clonePayment copies p so callers never share the description pointer.
func clonePayment(p *models.Payment) models.Payment {
	out := *p
	if p.Description != nil {
		d := *p.Description
		out.Description = &d
	}
	return out
}
