package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	dialTimeout = 5 * time.Second

	// Per-command budget. The only consumer is the nav cache, which falls
	// back to the store on any fault, so a slow Redis must never slow a
	// page render by more than this.
	commandTimeout = 250 * time.Millisecond
)

// Config holds the Redis settings for the nav cache client.
type Config struct {
	Addr string
	DB   int
}

// Connect opens the client backing the nav cache and verifies it with a ping.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		DB:           cfg.DB,
		DialTimeout:  dialTimeout,
		ReadTimeout:  commandTimeout,
		WriteTimeout: commandTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}
