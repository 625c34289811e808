package storage

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Options selects and configures a storage backend.
type Options struct {
	Backend       string `yaml:"backend"`
	SQLitePath    string `yaml:"sqlite_path"`
	PostgresDSN   string `yaml:"postgres_dsn"`
	RedisAddr     string `yaml:"redis_addr"`
	RedisPassword string `yaml:"redis_password"`
	RedisDB       int    `yaml:"redis_db"`
	RedisPrefix   string `yaml:"redis_prefix"`
}

// DefaultOptions selects the in-memory backend.
func DefaultOptions() Options {
	return Options{
		Backend:     BackendMemory,
		SQLitePath:  "data/containers.db",
		RedisAddr:   "localhost:6379",
		RedisPrefix: DefaultRedisPrefix,
	}
}

// Open builds the backend named by opts.Backend.
func Open(ctx context.Context, opts Options) (Storage, error) {
	switch opts.Backend {
	case "", BackendMemory:
		return NewMemoryStorage(), nil
	case BackendSQLite:
		return OpenSQLite(ctx, opts.SQLitePath)
	case BackendPostgres:
		return OpenPostgres(ctx, opts.PostgresDSN)
	case BackendRedis:
		store, err := OpenRedis(ctx, &redis.Options{
			Addr:     opts.RedisAddr,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
		}, opts.RedisPrefix)
		if err != nil {
			return nil, fmt.Errorf("open redis: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedBackend, opts.Backend)
	}
}
