package database

import (
	"context"
	"fmt"
	"time"

	"payments-backend/config"

	"github.com/go-redis/redis/v8"
)

// ConnectRedis opens a client for cfg and checks it with a PING.
func ConnectRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisFullAddr(),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", cfg.RedisFullAddr(), err)
	}
	return client, nil
}
