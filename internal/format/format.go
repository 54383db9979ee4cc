// File: internal/format/format.go
package format

import (
	"fmt"
	"strings"

	"telegram-crates-bot/internal/domain/model"
)

// MaxDescriptionRunes bounds the crate description inside a reply. Longer
// descriptions are cut and terminated with an ellipsis.
const MaxDescriptionRunes = 300

const (
	// ServiceUnavailable is the only text a user ever sees for an upstream
	// failure; the failure detail stays in the logs.
	ServiceUnavailable = "The service is unavailable right now, please try again later."

	crateUsage = "<code>/crate [crate-name]</code>\nShow information of a crate.\n\n<code>[crate-name]</code>: the name of a crate"
	docsUsage  = "<code>/docs [path]</code>\nShow online documentation for an item path.\n\n<code>[path]</code>: the path to the item, e.g. <code>serde::Deserialize</code>"
)

// Render converts an outcome into reply text. It is pure and total: any
// outcome value renders to a non-empty string, and equal outcomes render to
// equal strings.
func Render(out model.Outcome) string {
	switch out.Kind {
	case model.OutcomeFound:
		if out.Crate != nil {
			return renderCrate(out.Crate)
		}
		if out.Doc != nil {
			return renderDoc(out.Doc)
		}
		return ServiceUnavailable
	case model.OutcomeNotFound:
		return fmt.Sprintf("No results for <code>%s</code>.", EscapeHTML(out.Query))
	default:
		return ServiceUnavailable
	}
}

// RenderRejected turns a router rejection into usage guidance.
func RenderRejected(rej model.RejectedInput) string {
	if rej.Reason == model.RejectMissingQuery {
		verb := strings.ToLower(rej.Verb)
		if i := strings.IndexByte(verb, '@'); i >= 0 {
			verb = verb[:i]
		}
		switch verb {
		case "/crate":
			return crateUsage
		default:
			return docsUsage
		}
	}
	return "Unknown command. Available commands:\n" + crateUsage + "\n\n" + docsUsage
}

func renderCrate(c *model.CrateInfo) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<b>%s</b> <i>%s</i>", EscapeHTML(c.Name), EscapeHTML(c.NewestVersion))
	if c.CrateSize > 0 {
		fmt.Fprintf(&b, " (%sB)", Humanize(c.CrateSize))
	}
	if len(c.Owners) > 0 {
		fmt.Fprintf(&b, " by %s", renderOwners(c.Owners))
	}
	b.WriteByte('\n')

	if c.License != "" {
		fmt.Fprintf(&b, "%s License\n", EscapeHTML(c.License))
	} else {
		b.WriteString("No License\n")
	}

	if c.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", EscapeHTML(Truncate(c.Description, MaxDescriptionRunes)))
	}

	if len(c.Keywords) > 0 {
		fmt.Fprintf(&b, "\n<b>Keywords</b>\n<i>%s</i>\n", EscapeHTML(strings.Join(c.Keywords, ", ")))
	}
	if len(c.Categories) > 0 {
		fmt.Fprintf(&b, "\n<b>Categories</b>\n<i>%s</i>\n", EscapeHTML(strings.Join(c.Categories, "\n")))
	}

	fmt.Fprintf(&b, "\n⬇️ %s downloads recently (%s total)\n", Humanize(c.RecentDownloads), Humanize(c.Downloads))
	fmt.Fprintf(&b, "📊 %d dependencies (%d for dev)\n", c.DependencyCount, c.DevDependencyCnt)
	if !c.UpdatedAt.IsZero() {
		fmt.Fprintf(&b, "🕒 updated at %s\n", c.UpdatedAt.UTC().Format("2006-01-02 MST"))
	}
	if !c.CreatedAt.IsZero() {
		fmt.Fprintf(&b, "🕒 created at %s\n", c.CreatedAt.UTC().Format("2006-01-02 MST"))
	}
	if c.Repository != "" {
		fmt.Fprintf(&b, "\n📂 %s", EscapeHTML(c.Repository))
	}

	return strings.TrimRight(b.String(), "\n")
}

func renderOwners(owners []model.CrateOwner) string {
	name := owners[0].Name
	if name == "" {
		name = "&lt;anonymous&gt;"
	} else {
		name = EscapeHTML(name)
	}
	primary := fmt.Sprintf("<a href=\"%s\">%s</a>", owners[0].URL, name)
	if len(owners) > 1 {
		return fmt.Sprintf("%s and %d others", primary, len(owners)-1)
	}
	return primary
}

func renderDoc(d *model.DocEntry) string {
	var b strings.Builder
	title := d.Title
	if title == "" {
		title = d.ItemPath
	}
	fmt.Fprintf(&b, "<b>%s</b> <i>%s</i>\n", EscapeHTML(title), d.Kind)
	if d.Summary != "" {
		fmt.Fprintf(&b, "\n%s\n", EscapeHTML(Truncate(d.Summary, MaxDescriptionRunes)))
	}
	fmt.Fprintf(&b, "\n📚 %s", d.CanonicalURL)
	return b.String()
}

// EscapeHTML escapes the three entities Telegram's HTML parse mode cares
// about.
func EscapeHTML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	return s
}

// Truncate cuts s to at most max runes, appending an ellipsis when cut.
// A non-positive max yields the empty string.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// Humanize renders a count the way crates.io badges do: 1.2k, 3.4M, 5.6G.
func Humanize(n int64) string {
	switch {
	case n >= 1_000_000_000:
		return fmt.Sprintf("%.1fG", float64(n)/1e9)
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1e6)
	case n > 1_000:
		return fmt.Sprintf("%.1fk", float64(n)/1e3)
	default:
		return fmt.Sprintf("%d", n)
	}
}
