// File: internal/usecase/search_uc.go
package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"telegram-crates-bot/internal/domain"
	"telegram-crates-bot/internal/domain/model"
	"telegram-crates-bot/internal/domain/ports/adapter"
	"telegram-crates-bot/internal/infra/logging"
	"telegram-crates-bot/internal/infra/metrics"
)

// SearchUseCase dispatches a parsed command to the matching upstream client
// and normalizes every possible failure into an Outcome value. It holds no
// mutable state, so concurrent Search calls need no synchronization.
type SearchUseCase struct {
	crates  adapter.CrateClient
	docs    adapter.DocClient
	cache   adapter.LookupCache // optional, may be nil
	timeout time.Duration
	log     *zerolog.Logger
}

func NewSearchUseCase(crates adapter.CrateClient, docs adapter.DocClient, cache adapter.LookupCache, timeout time.Duration, logger *zerolog.Logger) *SearchUseCase {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &SearchUseCase{crates: crates, docs: docs, cache: cache, timeout: timeout, log: logger}
}

// Search performs one lookup. It always returns an Outcome: upstream
// failures are folded into the value, never propagated, and every call is
// bounded by the configured deadline.
func (uc *SearchUseCase) Search(ctx context.Context, cmd model.Command) model.Outcome {
	log := logging.With(ctx, uc.log)
	defer logging.TraceDuration(log, "SearchUseCase.Search")()

	if cached := uc.cacheGet(ctx, cmd); cached != nil {
		metrics.IncCommand(string(cmd.Verb), outcomeLabel(cached.Kind))
		return *cached
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	start := time.Now()
	var out model.Outcome
	switch cmd.Verb {
	case model.VerbCrate:
		info, err := uc.crates.BestMatch(ctx, cmd.Argument)
		out = uc.fold(cmd.Argument, err, info, nil)
		metrics.ObserveUpstream("crates.io", time.Since(start), out.Kind != model.OutcomeUpstreamError)
	case model.VerbDocs:
		entry, err := uc.docs.Resolve(ctx, cmd.Argument)
		out = uc.fold(cmd.Argument, err, nil, entry)
		metrics.ObserveUpstream("docs.rs", time.Since(start), out.Kind != model.OutcomeUpstreamError)
	default:
		out = model.UpstreamFailure(cmd.Argument, model.FailHTTP, domain.ErrInvalidArgument)
	}

	if out.Kind == model.OutcomeUpstreamError {
		log.Error().Err(out.Cause).
			Str("query", cmd.Argument).
			Str("failure", string(out.Failure)).
			Msg("upstream lookup failed")
	}
	metrics.IncCommand(string(cmd.Verb), outcomeLabel(out.Kind))
	uc.cacheStore(ctx, cmd, out)
	return out
}

func (uc *SearchUseCase) fold(query string, err error, crate *model.CrateInfo, doc *model.DocEntry) model.Outcome {
	switch {
	case err == nil:
		return model.Found(query, crate, doc)
	case errors.Is(err, domain.ErrNotFound):
		return model.NotFound(query)
	case errors.Is(err, domain.ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return model.UpstreamFailure(query, model.FailTimeout, err)
	case errors.Is(err, domain.ErrMalformed):
		return model.UpstreamFailure(query, model.FailMalformed, err)
	default:
		return model.UpstreamFailure(query, model.FailHTTP, err)
	}
}

func (uc *SearchUseCase) cacheGet(ctx context.Context, cmd model.Command) *model.Outcome {
	if uc.cache == nil {
		return nil
	}
	out, err := uc.cache.Get(ctx, cmd.Verb, cmd.Argument)
	if err != nil {
		uc.log.Warn().Err(err).Msg("lookup cache read failed")
		return nil
	}
	if out == nil {
		metrics.IncCacheRequest("lookup", "miss")
		return nil
	}
	metrics.IncCacheRequest("lookup", "hit")
	return out
}

func (uc *SearchUseCase) cacheStore(ctx context.Context, cmd model.Command, out model.Outcome) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Store(ctx, cmd.Verb, cmd.Argument, &out); err != nil {
		uc.log.Warn().Err(err).Msg("lookup cache write failed")
	}
}

func outcomeLabel(kind model.OutcomeKind) string {
	switch kind {
	case model.OutcomeFound:
		return "found"
	case model.OutcomeNotFound:
		return "not_found"
	default:
		return "upstream_error"
	}
}
