package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"shopwise_backend/internal/discovery/transport"
)

func testCache(t *testing.T) (*ResultCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, time.Minute), mr
}

func sampleResponse() transport.SearchResponse {
	return transport.SearchResponse{
		Data: []transport.BusinessResult{{
			ID:   uuid.New(),
			Name: "Kimironko Fresh Market",
		}},
		TotalCount: 1,
		Limit:      10,
	}
}

func TestCacheRoundTrip(t *testing.T) {
	c, _ := testCache(t)
	key := Key(-1.944, 30.062, 0, 10)
	want := sampleResponse()

	c.Set(context.Background(), key, want)

	got, ok := c.Get(context.Background(), key)
	if !ok {
		t.Fatalf("cache miss after set")
	}
	if got.TotalCount != want.TotalCount || len(got.Data) != 1 {
		t.Fatalf("got %+v", got)
	}
	if got.Data[0].ID != want.Data[0].ID {
		t.Fatalf("id = %s, want %s", got.Data[0].ID, want.Data[0].ID)
	}
}

func TestCacheMiss(t *testing.T) {
	c, _ := testCache(t)
	if _, ok := c.Get(context.Background(), Key(0, 0, 0, 10)); ok {
		t.Fatalf("hit on empty cache")
	}
}

func TestCacheExpiry(t *testing.T) {
	c, mr := testCache(t)
	key := Key(-1.944, 30.062, 0, 10)
	c.Set(context.Background(), key, sampleResponse())

	mr.FastForward(2 * time.Minute)

	if _, ok := c.Get(context.Background(), key); ok {
		t.Fatalf("hit after TTL elapsed")
	}
}

func TestCacheKeyRoundsCoordinates(t *testing.T) {
	// Callers within ~100 m share an entry.
	a := Key(-1.94412, 30.06198, 0, 10)
	b := Key(-1.94408, 30.06201, 0, 10)
	if a != b {
		t.Fatalf("keys differ: %q vs %q", a, b)
	}

	far := Key(-1.95412, 30.06198, 0, 10)
	if a == far {
		t.Fatalf("distant coordinates share a key")
	}
}

func TestCacheDisabledWithNilClient(t *testing.T) {
	c := New(nil, time.Minute)
	c.Set(context.Background(), "k", sampleResponse())
	if _, ok := c.Get(context.Background(), "k"); ok {
		t.Fatalf("nil-client cache returned a hit")
	}
}

func TestCacheCorruptEntryIsAMiss(t *testing.T) {
	c, mr := testCache(t)
	key := Key(-1.944, 30.062, 0, 10)
	if err := mr.Set(key, "{not json"); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, ok := c.Get(context.Background(), key); ok {
		t.Fatalf("corrupt entry served as a hit")
	}
}
