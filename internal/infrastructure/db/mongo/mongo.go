package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	connectTimeout = 10 * time.Second

	// Bounds how long a query waits for a reachable node. Login depends on
	// the account store; a fast failure here surfaces as a server fault
	// instead of a hung login form.
	serverSelectionTimeout = 5 * time.Second

	defaultDatabase = "dealership"
)

// Config holds the MongoDB settings for the dealership store.
type Config struct {
	URI      string
	Database string
}

// Connect opens the client for the dealership database and verifies it with
// a ping before any repository is built on top. An empty database name falls
// back to defaultDatabase.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	name := cfg.Database
	if name == "" {
		name = defaultDatabase
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetServerSelectionTimeout(serverSelectionTimeout)
	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}
	return client, client.Database(name), nil
}
