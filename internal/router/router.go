// File: internal/router/router.go
package router

import (
	"strings"

	"telegram-crates-bot/internal/domain/model"
)

// Route parses raw chat text into a Command. The first whitespace-delimited
// token selects the verb (case-insensitive, tolerant of the Telegram
// "@botname" suffix); the trimmed remainder is the argument. Malformed input
// comes back as a RejectedInput so the caller can reply with usage text.
// Route has no side effects.
func Route(rawText string) (*model.Command, *model.RejectedInput) {
	text := strings.TrimSpace(rawText)
	if text == "" {
		return nil, &model.RejectedInput{Reason: model.RejectUnknownCommand}
	}

	verbToken := text
	arg := ""
	if i := strings.IndexFunc(text, isSpace); i >= 0 {
		verbToken = text[:i]
		arg = strings.TrimSpace(text[i:])
	}

	verb, ok := parseVerb(verbToken)
	if !ok {
		return nil, &model.RejectedInput{Reason: model.RejectUnknownCommand, Verb: verbToken}
	}
	if arg == "" {
		return nil, &model.RejectedInput{Reason: model.RejectMissingQuery, Verb: verbToken}
	}
	return &model.Command{Verb: verb, Argument: arg}, nil
}

func parseVerb(token string) (model.Verb, bool) {
	// "/crate@cratesbot" and "/crate" are equivalent in group chats.
	if i := strings.IndexByte(token, '@'); i >= 0 {
		token = token[:i]
	}
	switch strings.ToLower(token) {
	case "/crate":
		return model.VerbCrate, true
	case "/docs":
		return model.VerbDocs, true
	default:
		return "", false
	}
}

func isSpace(r rune) bool { return r == ' ' || r == '\t' || r == '\n' || r == '\r' }
