package redis

import (
	"context"
	"errors"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/njprem/TravelWisata_BackEnd/internal/repository/ports"
)

// NewClient parses a redis:// URL and verifies the connection.
func NewClient(ctx context.Context, url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := goredis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

type KeyValueStore struct {
	client goredis.UniversalClient
	prefix string
}

func NewKeyValueStore(client goredis.UniversalClient, prefix string) *KeyValueStore {
	return &KeyValueStore{client: client, prefix: prefix}
}

func (s *KeyValueStore) key(k string) string {
	return s.prefix + k
}

func (s *KeyValueStore) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, ports.ErrKeyNotFound
		}
		return nil, err
	}
	return value, nil
}

func (s *KeyValueStore) GetMany(ctx context.Context, keys []string) (map[string][]byte, error) {
	out := make(map[string][]byte, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = s.key(k)
	}
	values, err := s.client.MGet(ctx, prefixed...).Result()
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		switch typed := v.(type) {
		case string:
			out[keys[i]] = []byte(typed)
		case []byte:
			out[keys[i]] = typed
		}
	}
	return out, nil
}

func (s *KeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	return s.client.Set(ctx, s.key(key), value, 0).Err()
}

func (s *KeyValueStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

var _ ports.KeyValueStore = (*KeyValueStore)(nil)
