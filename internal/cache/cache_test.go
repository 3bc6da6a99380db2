package cache

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// fakeRedis keeps values in a map and answers with go-redis result commands.
type fakeRedis struct {
	values map[string]string
	ttls   map[string]time.Duration
	down   bool
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

var errDown = errors.New("connection refused")

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	if f.down {
		return redis.NewStringResult("", errDown)
	}
	v, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	if f.down {
		return redis.NewStatusResult("", errDown)
	}
	switch v := value.(type) {
	case []byte:
		f.values[key] = string(v)
	case string:
		f.values[key] = v
	}
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Incr(_ context.Context, key string) *redis.IntCmd {
	if f.down {
		return redis.NewIntResult(0, errDown)
	}
	n, _ := strconv.ParseInt(f.values[key], 10, 64)
	n++
	f.values[key] = strconv.FormatInt(n, 10)
	return redis.NewIntResult(n, nil)
}

func TestRedis_SetGet(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	c := newRedis(fake, time.Minute)

	_, gen, ok := c.Get(ctx, "awards:year:2024")
	if ok {
		t.Fatalf("expected miss on empty cache")
	}
	c.Set(ctx, gen, "awards:year:2024", []byte(`{"goals":{}}`))
	got, _, ok := c.Get(ctx, "awards:year:2024")
	if !ok || string(got) != `{"goals":{}}` {
		t.Fatalf("expected hit, got %q (ok=%v)", got, ok)
	}
	if ttl := fake.ttls["petak:snap:0:awards:year:2024"]; ttl != time.Minute {
		t.Errorf("expected ttl to be applied, got %v", ttl)
	}
}

func TestRedis_InvalidateOrphansSnapshots(t *testing.T) {
	ctx := context.Background()
	c := newRedis(newFakeRedis(), 0)
	_, gen, _ := c.Get(ctx, "k")
	c.Set(ctx, gen, "k", []byte("v1"))

	if err := c.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	_, gen, ok := c.Get(ctx, "k")
	if ok {
		t.Fatalf("expected miss after invalidation")
	}
	c.Set(ctx, gen, "k", []byte("v2"))
	if got, _, _ := c.Get(ctx, "k"); string(got) != "v2" {
		t.Errorf("expected fresh snapshot, got %q", got)
	}
}

func TestRedis_SnapshotBuiltBeforeInvalidateIsNotServed(t *testing.T) {
	ctx := context.Background()
	c := newRedis(newFakeRedis(), time.Minute)

	_, gen, ok := c.Get(ctx, "awards:all")
	if ok {
		t.Fatalf("expected miss on empty cache")
	}
	// An admin write lands while the snapshot is being built from old rows.
	if err := c.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	c.Set(ctx, gen, "awards:all", []byte(`{"before_write":true}`))

	if got, _, ok := c.Get(ctx, "awards:all"); ok {
		t.Fatalf("snapshot from before the write must not be served, got %q", got)
	}
}

func TestRedis_BackendDownIsAMiss(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	c := newRedis(fake, time.Minute)
	fake.down = true

	_, gen, ok := c.Get(ctx, "k")
	if ok {
		t.Errorf("expected miss while redis is down")
	}
	c.Set(ctx, gen, "k", []byte("v"))
	fake.down = false
	if _, _, ok := c.Get(ctx, "k"); ok {
		t.Errorf("a write under an unknown generation must be dropped")
	}
	fake.down = true
	if err := c.Invalidate(ctx); err == nil {
		t.Errorf("expected invalidate to report the failure")
	}
}

func TestNoop(t *testing.T) {
	var c Cache = Noop{}
	c.Set(context.Background(), 0, "k", []byte("v"))
	if _, _, ok := c.Get(context.Background(), "k"); ok {
		t.Errorf("noop cache must never hit")
	}
}
