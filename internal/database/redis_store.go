package database

import (
	"context"
	"errors"
	"fmt"

	"payments-backend/internal/models"

	"github.com/go-redis/redis/v8"
	jsoniter "github.com/json-iterator/go"
)

var jsonCodec = jsoniter.ConfigCompatibleWithStandardLibrary

// RedisStore keeps each payment as a JSON string under prefix+paymentId.
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) key(paymentID string) string {
	return s.prefix + paymentID
}

func (s *RedisStore) Put(ctx context.Context, payment *models.Payment) error {
	data, err := jsonCodec.Marshal(payment)
	if err != nil {
		return fmt.Errorf("failed to marshal payment %s: %w", payment.PaymentID, err)
	}

	ok, err := s.client.SetNX(ctx, s.key(payment.PaymentID), data, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to store payment %s: %w", payment.PaymentID, err)
	}
	if !ok {
		return ErrPaymentExists
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, paymentID string) (*models.Payment, error) {
	data, err := s.client.Get(ctx, s.key(paymentID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to load payment %s: %w", paymentID, err)
	}

	var payment models.Payment
	if err := jsonCodec.Unmarshal(data, &payment); err != nil {
		return nil, fmt.Errorf("failed to decode payment %s: %w", paymentID, err)
	}
	return &payment, nil
}
