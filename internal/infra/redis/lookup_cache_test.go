// File: internal/infra/redis/lookup_cache_test.go
package redis

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"telegram-crates-bot/internal/domain/model"
)

func TestLookupCache_Roundtrip(t *testing.T) {
	t.Parallel()

	cache := NewLookupCache(newMemRedis(), time.Minute)
	ctx := context.Background()

	out := model.Found("serde", &model.CrateInfo{Name: "serde", NewestVersion: "1.0.130"}, nil)
	if err := cache.Store(ctx, model.VerbCrate, "serde", &out); err != nil {
		t.Fatalf("Store: %v", err)
	}

	got, err := cache.Get(ctx, model.VerbCrate, "serde")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got == nil {
		t.Fatalf("Get returned nil after Store")
	}
	if diff := cmp.Diff(out.Crate, got.Crate); diff != "" {
		t.Fatalf("cached crate mismatch (-want +got):\n%s", diff)
	}
}

func TestLookupCache_MissIsNilNil(t *testing.T) {
	t.Parallel()

	cache := NewLookupCache(newMemRedis(), time.Minute)
	got, err := cache.Get(context.Background(), model.VerbDocs, "unseen")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Fatalf("expected miss, got %+v", got)
	}
}

func TestLookupCache_KeyNormalization(t *testing.T) {
	t.Parallel()

	cache := NewLookupCache(newMemRedis(), time.Minute)
	ctx := context.Background()

	out := model.NotFound("Tokio")
	if err := cache.Store(ctx, model.VerbCrate, "  Tokio ", &out); err != nil {
		t.Fatalf("Store: %v", err)
	}
	got, err := cache.Get(ctx, model.VerbCrate, "tokio")
	if err != nil || got == nil {
		t.Fatalf("normalized key did not hit: %v %v", got, err)
	}
}

func TestLookupCache_DocPathsAreCaseSensitive(t *testing.T) {
	t.Parallel()

	cache := NewLookupCache(newMemRedis(), time.Minute)
	ctx := context.Background()

	// serde_json::value (module) and serde_json::Value (struct) are
	// different items and must not share a cache entry.
	module := model.Found("serde_json::value", nil, &model.DocEntry{
		CrateName: "serde_json",
		ItemPath:  "serde_json::value",
		Kind:      model.ItemModule,
	})
	if err := cache.Store(ctx, model.VerbDocs, "serde_json::value", &module); err != nil {
		t.Fatalf("Store: %v", err)
	}

	got, err := cache.Get(ctx, model.VerbDocs, "serde_json::Value")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Fatalf("case-distinct doc path hit the module entry: %+v", got.Doc)
	}

	same, err := cache.Get(ctx, model.VerbDocs, "serde_json::value")
	if err != nil || same == nil {
		t.Fatalf("exact doc path did not hit: %v %v", same, err)
	}
}

func TestLookupCache_SkipsFailureOutcomes(t *testing.T) {
	t.Parallel()

	cache := NewLookupCache(newMemRedis(), time.Minute)
	ctx := context.Background()

	out := model.UpstreamFailure("serde", model.FailTimeout, context.DeadlineExceeded)
	if err := cache.Store(ctx, model.VerbCrate, "serde", &out); err != nil {
		t.Fatalf("Store: %v", err)
	}
	got, err := cache.Get(ctx, model.VerbCrate, "serde")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got != nil {
		t.Fatalf("failure outcome was cached: %+v", got)
	}
}

func TestRateLimiter_Allow(t *testing.T) {
	t.Parallel()

	rl := NewRateLimiter(newMemRedis())
	ctx := context.Background()
	key := ChatCommandKey(42, "crate")

	for i := 0; i < 3; i++ {
		ok, err := rl.Allow(ctx, key, 3, time.Minute)
		if err != nil {
			t.Fatalf("Allow: %v", err)
		}
		if !ok {
			t.Fatalf("call %d blocked below limit", i+1)
		}
	}
	ok, err := rl.Allow(ctx, key, 3, time.Minute)
	if err != nil {
		t.Fatalf("Allow: %v", err)
	}
	if ok {
		t.Fatalf("fourth call allowed above limit")
	}
}
