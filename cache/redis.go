// Package cache provides a Redis-backed read-through cache for prediction
// results. The extractor is deterministic, so a cached result keyed by the
// normalized pair and model version stays valid until the model changes.
package cache

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"namecheck/config"
	"namecheck/types"
)

// Config configures the Redis connection and entry lifetime.
type Config struct {
	Addr     string // e.g. localhost:6379
	Password string
	DB       int
	TTL      time.Duration
	// Prefix namespaces cache keys. Defaults to "predictions:".
	Prefix string
}

// RedisCache caches predictions with a sliding TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewFromEnv creates a RedisCache using environment variables
// REDIS_ADDR, REDIS_PASS, REDIS_DB (optional), CACHE_TTL_SECONDS (optional).
func NewFromEnv() (*RedisCache, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}
	pass := os.Getenv("REDIS_PASS")
	db := 0
	if d := os.Getenv("REDIS_DB"); d != "" {
		if v, err := strconv.Atoi(d); err == nil {
			db = v
		}
	}
	ttl := config.PredictionCacheTTL
	if t := os.Getenv("CACHE_TTL_SECONDS"); t != "" {
		if secs, err := strconv.Atoi(t); err == nil && secs > 0 {
			ttl = time.Duration(secs) * time.Second
		}
	}

	return New(Config{Addr: addr, Password: pass, DB: db, TTL: ttl})
}

// New creates a RedisCache and verifies connectivity.
func New(cfg Config) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "predictions:"
	}
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = config.PredictionCacheTTL
	}

	return &RedisCache{client: client, ttl: ttl, prefix: prefix}, nil
}

// Close closes the underlying Redis client.
func (r *RedisCache) Close() error {
	return r.client.Close()
}

// Get looks up a cached prediction and refreshes its expiry, so entries that
// keep being asked for stay warm. Backend failures are logged and treated as
// misses so the serving path never depends on Redis availability.
func (r *RedisCache) Get(ctx context.Context, key string) (*types.Prediction, bool) {
	data, err := r.client.GetEx(ctx, r.prefix+key, r.ttl).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		log.Printf("Warning: prediction cache read failed: %v", err)
		return nil, false
	}

	var p types.Prediction
	if err := json.Unmarshal(data, &p); err != nil {
		log.Printf("Warning: discarding malformed cache entry: %v", err)
		return nil, false
	}
	return &p, true
}

// Set stores a prediction with the configured TTL. Failures are logged and
// ignored.
func (r *RedisCache) Set(ctx context.Context, key string, p *types.Prediction) {
	data, err := json.Marshal(p)
	if err != nil {
		log.Printf("Warning: failed to encode prediction for cache: %v", err)
		return
	}
	if err := r.client.Set(ctx, r.prefix+key, data, r.ttl).Err(); err != nil {
		log.Printf("Warning: prediction cache write failed: %v", err)
	}
}
