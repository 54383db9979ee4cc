// File: internal/domain/ports/adapter/upstream.go
package adapter

import (
	"context"

	"telegram-crates-bot/internal/domain/model"
)

// CrateClient looks up crates on the crates.io API.
type CrateClient interface {
	// BestMatch returns the top search hit for query, enriched with owner
	// and dependency data, or domain.ErrNotFound when nothing matches.
	BestMatch(ctx context.Context, query string) (*model.CrateInfo, error)
}

// DocClient resolves documentation paths against docs.rs.
type DocClient interface {
	// Resolve maps a "::"-separated item path to its documentation page,
	// or domain.ErrNotFound when no candidate page exists.
	Resolve(ctx context.Context, path string) (*model.DocEntry, error)
}

// LookupCache stores outcomes of recent lookups keyed by verb and query.
// Implementations must be safe for concurrent use.
type LookupCache interface {
	Get(ctx context.Context, verb model.Verb, query string) (*model.Outcome, error)
	Store(ctx context.Context, verb model.Verb, query string, out *model.Outcome) error
}
