// Package cache stores rendered API snapshots between admin writes.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Generation identifies the data version a snapshot was looked up under.
// Negative values mean the version is unknown and nothing may be stored.
type Generation int64

const unknownGeneration Generation = -1

// Cache is a best-effort snapshot store. Misses and backend failures look the
// same to callers; Invalidate drops every snapshot written so far.
//
// Get returns the generation it looked in. Callers build the snapshot from
// data read after Get and hand that generation back to Set, so a snapshot
// built from rows an admin write has since replaced lands in an orphaned
// generation and is never served.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, Generation, bool)
	Set(ctx context.Context, gen Generation, key string, value []byte)
	Invalidate(ctx context.Context) error
}

type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, Generation, bool) { return nil, 0, false }

func (Noop) Set(context.Context, Generation, string, []byte) {}

func (Noop) Invalidate(context.Context) error { return nil }

// redisClient is the subset of *redis.Client the cache uses.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

const (
	keyPrefix     = "petak:snap"
	generationKey = "petak:snap:gen"
)

// Redis namespaces snapshot keys by a generation counter. Bumping the counter
// orphans old snapshots, which then age out through their TTL.
type Redis struct {
	client redisClient
	ttl    time.Duration
}

func NewRedis(url string, ttl time.Duration) (*Redis, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return newRedis(client, ttl), nil
}

func newRedis(client redisClient, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Redis{client: client, ttl: ttl}
}

func (r *Redis) generation(ctx context.Context) (Generation, error) {
	raw, err := r.client.Get(ctx, generationKey).Result()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return unknownGeneration, err
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return unknownGeneration, err
	}
	return Generation(n), nil
}

func (r *Redis) key(gen Generation, key string) string {
	return fmt.Sprintf("%s:%d:%s", keyPrefix, gen, key)
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, Generation, bool) {
	gen, err := r.generation(ctx)
	if err != nil {
		return nil, unknownGeneration, false
	}
	value, err := r.client.Get(ctx, r.key(gen, key)).Bytes()
	if err != nil {
		return nil, gen, false
	}
	return value, gen, true
}

// Set stores value under gen as returned by Get, never under the current
// generation.
func (r *Redis) Set(ctx context.Context, gen Generation, key string, value []byte) {
	if gen < 0 {
		return
	}
	_ = r.client.Set(ctx, r.key(gen, key), value, r.ttl).Err()
}

func (r *Redis) Invalidate(ctx context.Context) error {
	if err := r.client.Incr(ctx, generationKey).Err(); err != nil {
		return fmt.Errorf("bump cache generation: %w", err)
	}
	return nil
}
