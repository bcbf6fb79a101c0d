package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type payload struct {
	ID    string `json:"id"`
	Count int    `json:"count"`
}

func newTestHelper(t *testing.T) *Helper {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewHelper(client, "test:")
}

func TestSetGetRoundTrip(t *testing.T) {
	h := newTestHelper(t)
	ctx := context.Background()

	want := payload{ID: "exam-1", Count: 3}
	if err := h.Set(ctx, "exam-1", want, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var got payload
	if err := h.Get(ctx, "exam-1", &got); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestGetMiss(t *testing.T) {
	h := newTestHelper(t)

	var got payload
	err := h.Get(context.Background(), "missing", &got)
	if !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("Get() error = %v, want ErrCacheNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	h := newTestHelper(t)
	ctx := context.Background()

	if err := h.Set(ctx, "exam-1", payload{ID: "exam-1"}, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := h.Delete(ctx, "exam-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	var got payload
	if err := h.Get(ctx, "exam-1", &got); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("Get() after Delete() error = %v, want ErrCacheNotFound", err)
	}
}

func TestNilClientDegradesGracefully(t *testing.T) {
	h := NewHelper(nil, "test:")
	ctx := context.Background()

	if err := h.Set(ctx, "k", payload{}, time.Minute); err != nil {
		t.Errorf("Set() with nil client error = %v", err)
	}
	if err := h.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete() with nil client error = %v", err)
	}

	var got payload
	if err := h.Get(ctx, "k", &got); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("Get() with nil client error = %v, want ErrCacheNotAvailable", err)
	}
}
