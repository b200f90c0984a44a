package initializers

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Kariqs/aroena-api/config"
	"github.com/redis/go-redis/v9"
)

var Redis *redis.Client

// ConnectToRedis connects when an address is configured. Without one Redis
// stays nil and callers fall back to in-process state.
func ConnectToRedis(ctx context.Context, cfg config.Redis) error {
	if cfg.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	Redis = client
	slog.Info("Connected to redis", "addr", cfg.Addr)
	return nil
}

func CloseRedis() {
	if Redis != nil {
		_ = Redis.Close()
	}
}
