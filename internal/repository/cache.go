package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/harentsoaR/smile-care-api/internal/models"
	"go.uber.org/zap"
)

const catalogCacheKey = "smile_care:appointmentOptions"

// OptionSource is the uncached catalog, normally *OptionRepo.
type OptionSource interface {
	All(ctx context.Context) ([]models.TreatmentOption, error)
	FindByName(ctx context.Context, name string) (*models.TreatmentOption, error)
	Specialties(ctx context.Context) ([]models.Specialty, error)
}

// Cache is the subset of the redis client the catalog cache uses.
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// CachedOptionStore serves the full catalog from Redis and falls back to the
// source on a miss or any cache failure.
type CachedOptionStore struct {
	OptionSource
	cache Cache
	ttl   time.Duration
	log   *zap.Logger
}

func NewCachedOptionStore(src OptionSource, cache Cache, ttl time.Duration, log *zap.Logger) *CachedOptionStore {
	return &CachedOptionStore{OptionSource: src, cache: cache, ttl: ttl, log: log}
}

// NewRedisClient connects to Redis and pings it.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func (s *CachedOptionStore) All(ctx context.Context) ([]models.TreatmentOption, error) {
	raw, err := s.cache.Get(ctx, catalogCacheKey).Bytes()
	switch {
	case err == nil:
		var opts []models.TreatmentOption
		if jsonErr := json.Unmarshal(raw, &opts); jsonErr == nil {
			return opts, nil
		}
		s.log.Warn("discarding corrupt catalog cache entry")
	case !errors.Is(err, redis.Nil):
		s.log.Warn("catalog cache read failed", zap.Error(err))
	}

	opts, err := s.OptionSource.All(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(opts); err == nil {
		if err := s.cache.Set(ctx, catalogCacheKey, data, s.ttl).Err(); err != nil {
			s.log.Warn("catalog cache write failed", zap.Error(err))
		}
	}
	return opts, nil
}

// Invalidate drops the cached catalog.
func (s *CachedOptionStore) Invalidate(ctx context.Context) error {
	return s.cache.Del(ctx, catalogCacheKey).Err()
}
