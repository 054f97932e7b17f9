package database

import (
	"context"
	"errors"
	"fmt"

	"payments-backend/config"
	"payments-backend/internal/models"
	"payments-backend/pkg/logger"

	"go.uber.org/zap"
)

// ErrPaymentNotFound is returned by Get when no payment has the given id.
var ErrPaymentNotFound = errors.New("payment not found")

// ErrPaymentExists is returned by Put when the id is already taken.
var ErrPaymentExists = errors.New("payment already exists")

// PaymentStore persists payments keyed by payment id.
type PaymentStore interface {
	Put(ctx context.Context, payment *models.Payment) error
	Get(ctx context.Context, paymentID string) (*models.Payment, error)
}

// NewPaymentStore opens the backend selected by cfg.StoreDriver. The returned
// close func releases its connections and is never nil.
func NewPaymentStore(cfg *config.Config) (PaymentStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.StoreDriver {
	case config.StoreMemory:
		logStoreOpened(cfg.StoreDriver)
		return NewMemoryStore(), noop, nil

	case config.StoreSQLite, config.StorePostgres:
		db, err := Connect(cfg)
		if err != nil {
			return nil, noop, err
		}
		if err := Migrate(db); err != nil {
			return nil, noop, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, noop, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		logStoreOpened(cfg.StoreDriver)
		return NewGormStore(db), sqlDB.Close, nil

	case config.StoreRedis:
		client, err := ConnectRedis(cfg)
		if err != nil {
			return nil, noop, err
		}
		logStoreOpened(cfg.StoreDriver, zap.String("addr", cfg.RedisFullAddr()))
		return NewRedisStore(client, cfg.RedisKeyPrefix), client.Close, nil
	}

	return nil, noop, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
}

func logStoreOpened(driver string, fields ...zap.Field) {
	logger.Log.Info("Payment store ready", append([]zap.Field{zap.String("driver", driver)}, fields...)...)
}
