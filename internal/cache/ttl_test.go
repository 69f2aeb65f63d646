package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestGetCachesWithinTTL(t *testing.T) {
	calls := 0
	c := New(func(ctx context.Context, key uint) (string, error) {
		calls++
		return "value", nil
	}, time.Minute)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		v, err := c.Get(ctx, 1)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if v != "value" {
			t.Fatalf("Get = %q, want %q", v, "value")
		}
	}
	if calls != 1 {
		t.Errorf("loader called %d times, want 1", calls)
	}
}

func TestGetReloadsAfterExpiry(t *testing.T) {
	calls := 0
	c := New(func(ctx context.Context, key uint) (int, error) {
		calls++
		return calls, nil
	}, -time.Second) // already expired

	ctx := context.Background()
	if _, err := c.Get(ctx, 1); err != nil {
		t.Fatalf("Get: %v", err)
	}
	v, err := c.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if v != 2 {
		t.Errorf("Get = %d, want reload result 2", v)
	}
}

func TestInvalidateForcesReload(t *testing.T) {
	calls := 0
	c := New(func(ctx context.Context, key string) (int, error) {
		calls++
		return calls, nil
	}, time.Minute)

	ctx := context.Background()
	_, _ = c.Get(ctx, "a")
	c.Invalidate("a")
	v, _ := c.Get(ctx, "a")
	if v != 2 {
		t.Errorf("Get after Invalidate = %d, want 2", v)
	}
}

func TestLoaderErrorNotCached(t *testing.T) {
	fail := true
	c := New(func(ctx context.Context, key int) (string, error) {
		if fail {
			return "", errors.New("boom")
		}
		return "ok", nil
	}, time.Minute)

	ctx := context.Background()
	if _, err := c.Get(ctx, 7); err == nil {
		t.Fatal("expected loader error")
	}
	fail = false
	v, err := c.Get(ctx, 7)
	if err != nil {
		t.Fatalf("Get after recovery: %v", err)
	}
	if v != "ok" {
		t.Errorf("Get = %q, want ok", v)
	}
}
