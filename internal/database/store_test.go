package database

import (
	"context"
	"fmt"
	"net"
	"sync"
	"testing"
	"time"

	"payments-backend/config"
	"payments-backend/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// Drop tables if exist to ensure clean state
	require.NoError(t, db.Migrator().DropTable(&models.Payment{}))
	require.NoError(t, Migrate(db))
	return db
}

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func samplePayment(description *string) *models.Payment {
	return &models.Payment{
		PaymentID:   uuid.New().String(),
		Status:      models.PaymentStatusPending,
		Amount:      10.5,
		Currency:    "USD",
		Description: description,
		PayerID:     "p1",
		PayeeID:     "p2",
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
}

func storesUnderTest(t *testing.T) map[string]PaymentStore {
	_, client := setupTestRedis(t)
	return map[string]PaymentStore{
		"memory": NewMemoryStore(),
		"gorm":   NewGormStore(setupTestDB(t)),
		"redis":  NewRedisStore(client, "payments:"),
	}
}

func TestPaymentStoreRoundTrip(t *testing.T) {
	desc := "coffee"
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			withDesc := samplePayment(&desc)
			withoutDesc := samplePayment(nil)
			require.NoError(t, store.Put(ctx, withDesc))
			require.NoError(t, store.Put(ctx, withoutDesc))

			got, err := store.Get(ctx, withDesc.PaymentID)
			require.NoError(t, err)
			assert.Equal(t, withDesc.PaymentID, got.PaymentID)
			assert.Equal(t, models.PaymentStatusPending, got.Status)
			assert.Equal(t, 10.5, got.Amount)
			assert.Equal(t, "USD", got.Currency)
			assert.Equal(t, "p1", got.PayerID)
			assert.Equal(t, "p2", got.PayeeID)
			require.NotNil(t, got.Description)
			assert.Equal(t, "coffee", *got.Description)
			assert.True(t, withDesc.CreatedAt.Equal(got.CreatedAt), "createdAt %v != %v", withDesc.CreatedAt, got.CreatedAt)

			got, err = store.Get(ctx, withoutDesc.PaymentID)
			require.NoError(t, err)
			assert.Nil(t, got.Description)
		})
	}
}

func TestPaymentStoreNotFound(t *testing.T) {
	for name, store := range storesUnderTest(t) {
		t.Run(name, func(t *testing.T) {
			got, err := store.Get(context.Background(), uuid.New().String())
			assert.Nil(t, got)
			assert.ErrorIs(t, err, ErrPaymentNotFound)
		})
	}
}

func TestMemoryStoreRejectsDuplicateID(t *testing.T) {
	store := NewMemoryStore()
	p := samplePayment(nil)

	require.NoError(t, store.Put(context.Background(), p))
	assert.ErrorIs(t, store.Put(context.Background(), p), ErrPaymentExists)
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	store := NewMemoryStore()
	desc := "original"
	p := samplePayment(&desc)
	require.NoError(t, store.Put(context.Background(), p))

	desc = "mutated"
	got, err := store.Get(context.Background(), p.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, "original", *got.Description)

	*got.Description = "changed by caller"
	again, err := store.Get(context.Background(), p.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, "original", *again.Description)
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	ids := make([]string, 50)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := samplePayment(nil)
			p.PayerID = fmt.Sprintf("payer-%d", i)
			ids[i] = p.PaymentID
			assert.NoError(t, store.Put(ctx, p))
			_, err := store.Get(ctx, p.PaymentID)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	for i, id := range ids {
		got, err := store.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, fmt.Sprintf("payer-%d", i), got.PayerID)
	}
}

func TestRedisStoreLayout(t *testing.T) {
	mr, client := setupTestRedis(t)
	store := NewRedisStore(client, "test:payments:")
	p := samplePayment(nil)

	require.NoError(t, store.Put(context.Background(), p))
	assert.True(t, mr.Exists("test:payments:"+p.PaymentID))

	raw, err := mr.Get("test:payments:" + p.PaymentID)
	require.NoError(t, err)
	assert.Contains(t, raw, `"paymentId":"`+p.PaymentID+`"`)
	assert.Contains(t, raw, `"description":null`)

	assert.ErrorIs(t, store.Put(context.Background(), p), ErrPaymentExists)
}

func TestRedisStoreSurfacesConnectionErrors(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	store := NewRedisStore(client, "payments:")
	mr.Close()

	_, err = store.Get(context.Background(), "anything")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrPaymentNotFound)
}

func TestNewPaymentStoreMemory(t *testing.T) {
	store, closeFn, err := NewPaymentStore(&config.Config{StoreDriver: config.StoreMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)
	assert.NoError(t, closeFn())
}

func TestNewPaymentStoreRedis(t *testing.T) {
	mr, _ := setupTestRedis(t)
	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)

	store, closeFn, err := NewPaymentStore(&config.Config{
		StoreDriver:    config.StoreRedis,
		RedisAddr:      host,
		RedisPort:      port,
		RedisKeyPrefix: "payments:",
	})
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, store)
	assert.NoError(t, closeFn())
}

func TestNewPaymentStoreSQLite(t *testing.T) {
	store, closeFn, err := NewPaymentStore(&config.Config{
		StoreDriver: config.StoreSQLite,
		SQLitePath:  t.TempDir() + "/payments.db",
	})
	require.NoError(t, err)
	defer closeFn()

	p := samplePayment(nil)
	require.NoError(t, store.Put(context.Background(), p))
	got, err := store.Get(context.Background(), p.PaymentID)
	require.NoError(t, err)
	assert.Equal(t, p.PaymentID, got.PaymentID)
}

func TestNewPaymentStoreUnknownDriver(t *testing.T) {
	_, closeFn, err := NewPaymentStore(&config.Config{StoreDriver: "mongo"})
	assert.Error(t, err)
	assert.NotNil(t, closeFn)
}
