package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestKeyFormatsWindowAndSortsExtras(t *testing.T) {
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.January, 31, 12, 0, 0, 0, time.FixedZone("UTC+2", 2*60*60))

	key := Key(4, "emotional-landscape", start, end, map[string]string{"limit": "10", "b": "x"})
	expected := "user:4:emotional-landscape:2026-01-01T00:00:00Z:2026-01-31T10:00:00Z:b=x,limit=10"
	if key != expected {
		t.Fatalf("unexpected key\nexpected %s\ngot      %s", expected, key)
	}

	if plain := Key(4, "overview", start, start, nil); plain != "user:4:overview:2026-01-01T00:00:00Z:2026-01-01T00:00:00Z" {
		t.Fatalf("unexpected key without extras: %s", plain)
	}
}

func TestNewSelectsBackend(t *testing.T) {
	memory, err := New(Options{Backend: "memory"})
	if err != nil {
		t.Fatalf("new memory cache: %v", err)
	}
	if _, ok := memory.(*MemoryCache); !ok {
		t.Fatalf("expected *MemoryCache, got %T", memory)
	}

	none, err := New(Options{Backend: "none"})
	if err != nil {
		t.Fatalf("new noop cache: %v", err)
	}
	if _, ok := none.(Noop); !ok {
		t.Fatalf("expected Noop, got %T", none)
	}

	if _, err := New(Options{Backend: "memcached"}); !errors.Is(err, ErrUnknownBackend) {
		t.Fatalf("expected ErrUnknownBackend, got %v", err)
	}
	if _, err := New(Options{Backend: "redis"}); err == nil {
		t.Fatal("expected redis backend without url to fail")
	}
}

func TestNoopNeverHits(t *testing.T) {
	ctx := context.Background()
	cache := Noop{}
	if err := cache.Set(ctx, "user:1:overview", []byte("x")); err != nil {
		t.Fatalf("noop set: %v", err)
	}
	if _, ok, err := cache.Get(ctx, "user:1:overview"); ok || err != nil {
		t.Fatalf("expected noop miss, got ok=%v err=%v", ok, err)
	}
}

func TestEscapeRedisGlob(t *testing.T) {
	if escaped := escapeRedisGlob("user:1:[a]*?"); escaped != `user:1:\[a\]\*\?` {
		t.Fatalf("unexpected escaped pattern %q", escaped)
	}
}

func TestNewRedisCacheRejectsInvalidURL(t *testing.T) {
	if _, err := NewRedisCache("http://localhost:6379", time.Minute); err == nil {
		t.Fatal("expected non-redis scheme to be rejected")
	}

	cache, err := NewRedisCache("redis://localhost:6379/2", time.Minute)
	if err != nil {
		t.Fatalf("parse redis url: %v", err)
	}
	if err := cache.Close(); err != nil {
		t.Fatalf("close redis client: %v", err)
	}
}
