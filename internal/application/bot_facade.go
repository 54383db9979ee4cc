// File: internal/application/bot_facade.go
package application

import (
	"context"

	"github.com/rs/zerolog"

	"telegram-crates-bot/internal/domain/model"
	"telegram-crates-bot/internal/domain/ports/adapter"
	"telegram-crates-bot/internal/format"
	"telegram-crates-bot/internal/infra/metrics"
	"telegram-crates-bot/internal/router"
	"telegram-crates-bot/internal/usecase"
)

// Reply is the fully prepared response for one incoming message: HTML text
// plus optional URL button rows.
type Reply struct {
	Text    string
	Buttons [][]adapter.URLButton
}

// BotFacade ties the router, search use case and formatter into the single
// entry point the transport calls. Every inbound message yields exactly one
// Reply; nothing is dropped silently.
type BotFacade struct {
	search Searcher
	log    *zerolog.Logger
}

// Searcher is what the facade needs from the search use case.
type Searcher interface {
	Search(ctx context.Context, cmd model.Command) model.Outcome
}

var _ Searcher = (*usecase.SearchUseCase)(nil)

func NewBotFacade(search Searcher, logger *zerolog.Logger) *BotFacade {
	return &BotFacade{search: search, log: logger}
}

// HandleMessage routes, searches and renders one raw command text.
func (f *BotFacade) HandleMessage(ctx context.Context, rawText string) Reply {
	cmd, rejected := router.Route(rawText)
	if rejected != nil {
		metrics.IncRejected(string(rejected.Reason))
		return Reply{Text: format.RenderRejected(*rejected)}
	}

	out := f.search.Search(ctx, *cmd)
	return Reply{Text: format.Render(out), Buttons: buttonsFor(out)}
}

// HelpText is the /help and /start reply.
func (f *BotFacade) HelpText() string {
	return "I look things up in the Rust ecosystem.\n\n" +
		"<code>/crate [crate-name]</code> — show information of a crate\n" +
		"<code>/docs [path]</code> — show documentation for an item path, e.g. <code>serde::Deserialize</code>"
}

// buttonsFor builds the Home / Docs / Repo button row for a found crate.
func buttonsFor(out model.Outcome) [][]adapter.URLButton {
	if out.Kind != model.OutcomeFound || out.Crate == nil {
		return nil
	}
	c := out.Crate
	var row []adapter.URLButton
	if c.Homepage != "" {
		row = append(row, adapter.URLButton{Text: "🏠 Home", URL: c.Homepage})
	}
	row = append(row, adapter.URLButton{Text: "📚 Docs", URL: c.DocsURL()})
	if c.Repository != "" {
		row = append(row, adapter.URLButton{Text: "📂 Repo", URL: c.Repository})
	}
	return [][]adapter.URLButton{row}
}
