// File: internal/infra/docsrs/client.go
package docsrs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"

	"telegram-crates-bot/internal/domain"
	"telegram-crates-bot/internal/domain/model"
)

const (
	DefaultBaseURL = "https://docs.rs"
	stdBaseURL     = "https://doc.rust-lang.org/stable"
)

// Client resolves "::"-separated item paths to rustdoc pages. Redirects are
// handled manually: the docs.rs front page answers with a 302 pointing at
// the latest version of a crate's documentation.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	log       *zerolog.Logger
}

func NewClient(baseURL, userAgent string, httpClient *http.Client, logger *zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	// Copy so disabling redirects does not leak into other users of the pool.
	cp := *httpClient
	cp.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &Client{baseURL: baseURL, userAgent: userAgent, http: &cp, log: logger}
}

// candidate is one rustdoc page a path segment combination may live at.
type candidate struct {
	kind model.ItemKind
	url  string
}

// Resolve finds the documentation page for path. Candidate pages are probed
// in a fixed order so the same path always resolves to the same item kind.
func (c *Client) Resolve(ctx context.Context, path string) (*model.DocEntry, error) {
	segments := strings.Split(strings.Trim(path, ":"), "::")
	if len(segments) == 0 || segments[0] == "" {
		return nil, domain.ErrNotFound
	}
	crateName := segments[0]

	root, err := c.resolveRoot(ctx, crateName)
	if err != nil {
		return nil, err
	}

	for _, cand := range candidates(root, segments) {
		entry, err := c.probe(ctx, cand)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("probe %s: %w", cand.url, err)
		}
		entry.CrateName = crateName
		entry.ItemPath = strings.Join(segments, "::")
		return entry, nil
	}
	return nil, domain.ErrNotFound
}

// resolveRoot returns the versioned documentation root for a crate, with a
// trailing slash. Standard library crates live on doc.rust-lang.org and
// need no lookup.
func (c *Client) resolveRoot(ctx context.Context, crateName string) (string, error) {
	switch crateName {
	case "alloc", "core", "proc_macro", "std", "test":
		return fmt.Sprintf("%s/%s/", stdBaseURL, crateName), nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/"+crateName, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrHTTPFailure, err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %v", domain.ErrTimeout, err)
		}
		return "", fmt.Errorf("%w: %v", domain.ErrHTTPFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		return "", domain.ErrNotFound
	}
	loc, err := resp.Location()
	if err != nil {
		return "", fmt.Errorf("%w: redirect without location", domain.ErrMalformed)
	}
	root := loc.String()
	if !strings.HasSuffix(root, "/") {
		root += "/"
	}
	return root, nil
}

// candidates enumerates the rustdoc pages an item path may map to, most
// specific page layout first.
func candidates(root string, segments []string) []candidate {
	if len(segments) == 1 {
		return []candidate{{model.ItemModule, root + "index.html"}}
	}

	modulePrefix := func(upTo int) string {
		var b strings.Builder
		b.WriteString(root)
		for _, seg := range segments[1:upTo] {
			b.WriteString(seg)
			b.WriteByte('/')
		}
		return b.String()
	}

	last := segments[len(segments)-1]
	prefix := modulePrefix(len(segments) - 1)
	out := []candidate{
		{model.ItemModule, modulePrefix(len(segments)) + "index.html"},
		{model.ItemStruct, prefix + "struct." + last + ".html"},
		{model.ItemEnum, prefix + "enum." + last + ".html"},
		{model.ItemTrait, prefix + "trait." + last + ".html"},
		{model.ItemFunction, prefix + "fn." + last + ".html"},
		{model.ItemMacro, prefix + "macro." + last + ".html"},
	}
	return out
}

// probe fetches one candidate page and extracts its title and leading
// docblock paragraph.
func (c *Client) probe(ctx context.Context, cand candidate) (*model.DocEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cand.url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrHTTPFailure, err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", domain.ErrTimeout, err)
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrHTTPFailure, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode >= 300 && resp.StatusCode < 400:
		return nil, domain.ErrNotFound
	default:
		return nil, fmt.Errorf("%w: status %d", domain.ErrHTTPFailure, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrMalformed, err)
	}
	title := strings.TrimSpace(doc.Find("head title").First().Text())
	title = strings.TrimSuffix(title, " - Rust")
	summary := strings.TrimSpace(doc.Find(".docblock p").First().Text())

	return &model.DocEntry{
		Kind:         cand.kind,
		CanonicalURL: cand.url,
		Title:        title,
		Summary:      summary,
	}, nil
}
