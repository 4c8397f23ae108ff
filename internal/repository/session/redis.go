package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Mokhaled2004/SoupShop/internal/domain"
)

// keyPrefix namespaces all storefront session keys in a shared Redis.
const keyPrefix = "soupshop:session:"

type redisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedis returns a Store backed by Redis. A zero ttl keeps entries until
// explicitly deleted; a positive ttl lets abandoned sessions expire.
func NewRedis(opts *redis.Options, ttl time.Duration) Store {
	return &redisStore{rdb: redis.NewClient(opts), ttl: ttl}
}

func (s *redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := s.rdb.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return v, nil
}

func (s *redisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.rdb.Set(ctx, keyPrefix+key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

func (s *redisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
