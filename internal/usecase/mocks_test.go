// File: internal/usecase/mocks_test.go
package usecase

import (
	"context"
	"sync"
	"time"

	"telegram-crates-bot/internal/domain/model"
)

// fakeCrateClient is a small in-memory CrateClient used by unit tests.
type fakeCrateClient struct {
	mu    sync.Mutex
	info  *model.CrateInfo
	err   error
	delay time.Duration
	calls int
}

func (f *fakeCrateClient) BestMatch(ctx context.Context, query string) (*model.CrateInfo, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.info, nil
}

func (f *fakeCrateClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeDocClient struct {
	entry *model.DocEntry
	err   error
}

func (f *fakeDocClient) Resolve(ctx context.Context, path string) (*model.DocEntry, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.entry, nil
}

// memCache implements adapter.LookupCache in memory.
type memCache struct {
	mu     sync.Mutex
	store  map[string]*model.Outcome
	getErr error
}

func newMemCache() *memCache {
	return &memCache{store: make(map[string]*model.Outcome)}
}

func (m *memCache) key(verb model.Verb, query string) string {
	return string(verb) + ":" + query
}

func (m *memCache) Get(ctx context.Context, verb model.Verb, query string) (*model.Outcome, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.store[m.key(verb, query)], nil
}

func (m *memCache) Store(ctx context.Context, verb model.Verb, query string, out *model.Outcome) error {
	if out.Kind == model.OutcomeUpstreamError {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *out
	m.store[m.key(verb, query)] = &cp
	return nil
}
