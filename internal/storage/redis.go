package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisPrefix namespaces every key written by RedisStorage.
const DefaultRedisPrefix = "containeropt:"

// RedisStorage persists documents as JSON strings under prefixed Redis keys.
type RedisStorage struct {
	documentStore
	client *redis.Client
	prefix string
}

// NewRedisStorage wraps an existing client. An empty prefix selects DefaultRedisPrefix.
func NewRedisStorage(client *redis.Client, prefix string) *RedisStorage {
	if prefix == "" {
		prefix = DefaultRedisPrefix
	}
	s := &RedisStorage{client: client, prefix: prefix}
	s.documentStore = documentStore{raw: s}
	return s
}

// OpenRedis connects to the Redis server described by opts and verifies the connection.
func OpenRedis(ctx context.Context, opts *redis.Options, prefix string) (*RedisStorage, error) {
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}
	return NewRedisStorage(client, prefix), nil
}

// Close closes the underlying client.
func (s *RedisStorage) Close() error {
	return s.client.Close()
}

func (s *RedisStorage) get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *RedisStorage) put(ctx context.Context, key string, data []byte) error {
	return s.client.Set(ctx, s.prefix+key, data, 0).Err()
}
