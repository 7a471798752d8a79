package snapshot

import (
	"context"
	"errors"
	"time"

	"unicart/internal/domain/cart"
	"unicart/internal/infra"
	"unicart/internal/pkg/config"
	"unicart/internal/usecase/shared"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const pingTimeout = 5 * time.Second

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MinIdleConns: 1,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		PoolTimeout:  4 * time.Second,
	})
}

// RedisStore keeps one string value per (user, domain) under
// cart:<userId>:<domain>. Values never expire.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Load(ctx context.Context, userID uuid.UUID, domain cart.DomainType) ([]byte, error) {
	val, err := s.client.Get(ctx, shared.SnapshotKey(userID, domain)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to load cart snapshot", err, infra.KindCacheFailure)
	}
	return val, nil
}

func (s *RedisStore) Save(ctx context.Context, userID uuid.UUID, domain cart.DomainType, data []byte) error {
	if err := s.client.Set(ctx, shared.SnapshotKey(userID, domain), data, 0).Err(); err != nil {
		return infra.WrapRepoErr("failed to save cart snapshot", err, infra.KindCacheFailure)
	}
	return nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := s.client.Ping(pingCtx).Err(); err != nil {
		return infra.WrapRepoErr("redis ping failed", err, infra.KindCacheFailure)
	}
	return nil
}
