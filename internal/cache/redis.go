package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultPredictionTTL bounds how stale a cached prediction payload can be
// if invalidation after a pipeline run is ever missed.
const DefaultPredictionTTL = 6 * time.Hour

// RedisCache stores the ranked prediction payload between pipeline runs so
// dashboard reads don't retrain or re-rank.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis cache connection.
func NewRedisCache(redisURL string) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{
		client: client,
	}, nil
}

// Close closes the Redis connection.
func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

// HealthCheck pings Redis to verify connection.
func (rc *RedisCache) HealthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

func predictionKey(seasonType string) string {
	return fmt.Sprintf("delphi:predictions:%s", seasonType)
}

// SetPredictions caches the serialized ranked candidates for one variant.
func (rc *RedisCache) SetPredictions(ctx context.Context, seasonType string, payload []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = DefaultPredictionTTL
	}
	return rc.client.Set(ctx, predictionKey(seasonType), payload, ttl).Err()
}

// GetPredictions returns the cached payload, or redis.Nil when absent.
func (rc *RedisCache) GetPredictions(ctx context.Context, seasonType string) ([]byte, error) {
	return rc.client.Get(ctx, predictionKey(seasonType)).Bytes()
}

// InvalidatePredictions drops the cached payload after a pipeline run.
func (rc *RedisCache) InvalidatePredictions(ctx context.Context, seasonType string) error {
	return rc.client.Del(ctx, predictionKey(seasonType)).Err()
}

// IsMiss reports whether a Get error is a plain cache miss.
func IsMiss(err error) bool {
	return err == redis.Nil
}
