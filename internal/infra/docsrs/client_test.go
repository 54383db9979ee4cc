// File: internal/infra/docsrs/client_test.go
package docsrs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"telegram-crates-bot/internal/domain"
	"telegram-crates-bot/internal/domain/model"
)

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

const traitPage = `<html><head><title>serde::Deserialize - Rust</title></head>
<body><div class="docblock"><p>A data structure that can be deserialized.</p></div></body></html>`

const modulePage = `<html><head><title>serde - Rust</title></head>
<body><div class="docblock"><p>Serde is a framework for serializing and deserializing.</p></div></body></html>`

// docsServer mimics docs.rs: the crate front page 302-redirects to the
// versioned root, under which rustdoc pages live.
func docsServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/serde", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/serde/1.0.130/serde/", http.StatusFound)
	})
	mux.HandleFunc("/serde/1.0.130/serde/index.html", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, modulePage)
	})
	mux.HandleFunc("/serde/1.0.130/serde/trait.Deserialize.html", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, traitPage)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestResolve_CrateRootIsModule(t *testing.T) {
	t.Parallel()

	srv := docsServer(t)
	c := NewClient(srv.URL, "test-agent", srv.Client(), testLogger())

	entry, err := c.Resolve(context.Background(), "serde")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if entry.Kind != model.ItemModule {
		t.Fatalf("kind = %q, want module", entry.Kind)
	}
	if entry.CrateName != "serde" || entry.ItemPath != "serde" {
		t.Fatalf("unexpected entry: %+v", entry)
	}
	if !strings.HasSuffix(entry.CanonicalURL, "/serde/1.0.130/serde/index.html") {
		t.Fatalf("canonical url = %q", entry.CanonicalURL)
	}
	if !strings.Contains(entry.Summary, "framework for serializing") {
		t.Fatalf("summary = %q", entry.Summary)
	}
}

func TestResolve_TraitItem(t *testing.T) {
	t.Parallel()

	srv := docsServer(t)
	c := NewClient(srv.URL, "test-agent", srv.Client(), testLogger())

	entry, err := c.Resolve(context.Background(), "serde::Deserialize")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if entry.Kind != model.ItemTrait {
		t.Fatalf("kind = %q, want trait", entry.Kind)
	}
	if entry.Title != "serde::Deserialize" {
		t.Fatalf("title = %q", entry.Title)
	}
	if entry.ItemPath != "serde::Deserialize" {
		t.Fatalf("item path = %q", entry.ItemPath)
	}
}

func TestResolve_UnknownCrateIsNotFound(t *testing.T) {
	t.Parallel()

	srv := docsServer(t)
	c := NewClient(srv.URL, "test-agent", srv.Client(), testLogger())

	_, err := c.Resolve(context.Background(), "nonexistentcrate123")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestResolve_UnknownItemIsNotFound(t *testing.T) {
	t.Parallel()

	srv := docsServer(t)
	c := NewClient(srv.URL, "test-agent", srv.Client(), testLogger())

	_, err := c.Resolve(context.Background(), "serde::NoSuchItem")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestResolveRoot_StdCratesSkipLookup(t *testing.T) {
	t.Parallel()

	c := NewClient("http://unused.invalid", "test-agent", nil, testLogger())
	root, err := c.resolveRoot(context.Background(), "std")
	if err != nil {
		t.Fatalf("resolveRoot: %v", err)
	}
	if root != "https://doc.rust-lang.org/stable/std/" {
		t.Fatalf("root = %q", root)
	}
}

func TestCandidates_Ordering(t *testing.T) {
	t.Parallel()

	cands := candidates("https://docs.rs/serde/1.0.130/serde/", []string{"serde", "de", "Deserialize"})
	if cands[0].kind != model.ItemModule {
		t.Fatalf("first candidate = %q, want module", cands[0].kind)
	}
	wantModule := "https://docs.rs/serde/1.0.130/serde/de/Deserialize/index.html"
	if cands[0].url != wantModule {
		t.Fatalf("module url = %q, want %q", cands[0].url, wantModule)
	}
	var traitURL string
	for _, cand := range cands {
		if cand.kind == model.ItemTrait {
			traitURL = cand.url
		}
	}
	wantTrait := "https://docs.rs/serde/1.0.130/serde/de/trait.Deserialize.html"
	if traitURL != wantTrait {
		t.Fatalf("trait url = %q, want %q", traitURL, wantTrait)
	}
}
