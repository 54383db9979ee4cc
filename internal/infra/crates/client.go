// File: internal/infra/crates/client.go
package crates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"telegram-crates-bot/internal/domain"
	"telegram-crates-bot/internal/domain/model"
)

const DefaultBaseURL = "https://crates.io"

// Client queries the crates.io REST API. It is stateless apart from the
// shared http.Client pool and safe for concurrent use.
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
	return &Client{baseURL: baseURL, userAgent: userAgent, http: httpClient, log: logger}
}

type searchResponse struct {
	Crates []struct {
		Name string `json:"name"`
	} `json:"crates"`
}

type crateResponse struct {
	Crate struct {
		Name            string    `json:"name"`
		UpdatedAt       time.Time `json:"updated_at"`
		CreatedAt       time.Time `json:"created_at"`
		Downloads       int64     `json:"downloads"`
		RecentDownloads int64     `json:"recent_downloads"`
		NewestVersion   string    `json:"newest_version"`
		Description     string    `json:"description"`
		Homepage        string    `json:"homepage"`
		Documentation   string    `json:"documentation"`
		Repository      string    `json:"repository"`
	} `json:"crate"`
	Versions []struct {
		Num       string `json:"num"`
		CrateSize int64  `json:"crate_size"`
		License   string `json:"license"`
	} `json:"versions"`
	Keywords []struct {
		Keyword string `json:"keyword"`
	} `json:"keywords"`
	Categories []struct {
		Category string `json:"category"`
	} `json:"categories"`
}

type ownerResponse struct {
	Users []struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"users"`
}

type dependencyResponse struct {
	Dependencies []struct {
		Kind string `json:"kind"`
	} `json:"dependencies"`
}

// BestMatch resolves query to the top crates.io search hit and enriches it
// with owner and dependency data. Owner and dependency fetches are
// best-effort: a failure there degrades the reply instead of failing it.
func (c *Client) BestMatch(ctx context.Context, query string) (*model.CrateInfo, error) {
	var search searchResponse
	searchURL := fmt.Sprintf("%s/api/v1/crates?q=%s&per_page=1", c.baseURL, url.QueryEscape(query))
	if err := c.getJSON(ctx, searchURL, &search); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	if len(search.Crates) == 0 {
		return nil, domain.ErrNotFound
	}
	name := search.Crates[0].Name

	var detail crateResponse
	detailURL := fmt.Sprintf("%s/api/v1/crates/%s", c.baseURL, url.PathEscape(name))
	if err := c.getJSON(ctx, detailURL, &detail); err != nil {
		return nil, fmt.Errorf("detail %q: %w", name, err)
	}

	info := &model.CrateInfo{
		Name:            detail.Crate.Name,
		NewestVersion:   detail.Crate.NewestVersion,
		Description:     detail.Crate.Description,
		Downloads:       detail.Crate.Downloads,
		RecentDownloads: detail.Crate.RecentDownloads,
		Homepage:        detail.Crate.Homepage,
		Documentation:   detail.Crate.Documentation,
		Repository:      detail.Crate.Repository,
		CreatedAt:       detail.Crate.CreatedAt,
		UpdatedAt:       detail.Crate.UpdatedAt,
	}
	for _, v := range detail.Versions {
		if v.Num == detail.Crate.NewestVersion {
			info.CrateSize = v.CrateSize
			info.License = v.License
			break
		}
	}
	for _, k := range detail.Keywords {
		info.Keywords = append(info.Keywords, k.Keyword)
	}
	for _, cat := range detail.Categories {
		info.Categories = append(info.Categories, cat.Category)
	}

	c.enrichOwners(ctx, info)
	c.enrichDependencies(ctx, info)
	return info, nil
}

func (c *Client) enrichOwners(ctx context.Context, info *model.CrateInfo) {
	var owners ownerResponse
	ownerURL := fmt.Sprintf("%s/api/v1/crates/%s/owner_user", c.baseURL, url.PathEscape(info.Name))
	if err := c.getJSON(ctx, ownerURL, &owners); err != nil {
		c.log.Warn().Err(err).Str("crate", info.Name).Msg("owner lookup failed")
		return
	}
	for _, u := range owners.Users {
		info.Owners = append(info.Owners, model.CrateOwner{Name: u.Name, URL: u.URL})
	}
}

func (c *Client) enrichDependencies(ctx context.Context, info *model.CrateInfo) {
	if info.NewestVersion == "" {
		return
	}
	var deps dependencyResponse
	depURL := fmt.Sprintf("%s/api/v1/crates/%s/%s/dependencies",
		c.baseURL, url.PathEscape(info.Name), url.PathEscape(info.NewestVersion))
	if err := c.getJSON(ctx, depURL, &deps); err != nil {
		c.log.Warn().Err(err).Str("crate", info.Name).Msg("dependency lookup failed")
		return
	}
	info.DependencyCount = len(deps.Dependencies)
	for _, d := range deps.Dependencies {
		if d.Kind == "dev" {
			info.DevDependencyCnt++
		}
	}
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrHTTPFailure, err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%w: %v", domain.ErrTimeout, err)
		}
		return fmt.Errorf("%w: %v", domain.ErrHTTPFailure, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound, resp.StatusCode == http.StatusGone:
		return domain.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: status %d from %s", domain.ErrHTTPFailure, resp.StatusCode, rawURL)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformed, err)
	}
	return nil
}
