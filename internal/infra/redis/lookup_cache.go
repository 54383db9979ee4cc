package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"telegram-crates-bot/internal/domain/model"
)

// LookupCache caches successful lookup outcomes per verb and query so that
// popular crates do not hit the upstreams on every request. Failure outcomes
// are never cached.
type LookupCache struct {
	client RedisClient
	ttl    time.Duration
}

func NewLookupCache(client RedisClient, ttl time.Duration) *LookupCache {
	return &LookupCache{client: client, ttl: ttl}
}

// cachedOutcome is the wire form of an Outcome. Only Found and NotFound
// variants are ever stored, so the error fields are omitted.
type cachedOutcome struct {
	Kind  model.OutcomeKind `json:"kind"`
	Query string            `json:"query"`
	Crate *model.CrateInfo  `json:"crate,omitempty"`
	Doc   *model.DocEntry   `json:"doc,omitempty"`
}

// lookupKey builds the cache key. Crate names are case-insensitive on
// crates.io, so those queries fold to lowercase. Doc item paths stay
// verbatim: rustdoc paths are case-sensitive and `value` and `Value` name
// different items.
func lookupKey(verb model.Verb, query string) string {
	q := strings.TrimSpace(query)
	if verb == model.VerbCrate {
		q = strings.ToLower(q)
	}
	return "lookup:" + string(verb) + ":" + q
}

func (c *LookupCache) Get(ctx context.Context, verb model.Verb, query string) (*model.Outcome, error) {
	data, err := c.client.Get(ctx, lookupKey(verb, query))
	if err != nil {
		if errors.Is(err, Nil) {
			return nil, nil
		}
		return nil, err
	}
	var cached cachedOutcome
	if err := json.Unmarshal([]byte(data), &cached); err != nil {
		return nil, err
	}
	return &model.Outcome{Kind: cached.Kind, Query: cached.Query, Crate: cached.Crate, Doc: cached.Doc}, nil
}

func (c *LookupCache) Store(ctx context.Context, verb model.Verb, query string, out *model.Outcome) error {
	if out == nil || out.Kind == model.OutcomeUpstreamError {
		return nil
	}
	data, err := json.Marshal(cachedOutcome{Kind: out.Kind, Query: out.Query, Crate: out.Crate, Doc: out.Doc})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, lookupKey(verb, query), data, c.ttl)
}
