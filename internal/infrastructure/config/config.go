package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Session SessionConfig
	Lockout LockoutConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

// SessionConfig governs the signed session token and password hashing.
// Rotating the secret invalidates every outstanding session.
type SessionConfig struct {
	Secret     string        `env:"SESSION_SECRET"`
	TTL        time.Duration `env:"SESSION_TTL,  default=1h"`
	BcryptCost int           `env:"BCRYPT_COST,  default=10"`
}

// LockoutConfig governs the brute-force lockout policy.
type LockoutConfig struct {
	MaxAttempts int           `env:"LOCKOUT_MAX_ATTEMPTS, default=5"`
	Duration    time.Duration `env:"LOCKOUT_DURATION,     default=15m"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=dealership"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
