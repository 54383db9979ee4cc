package model

import "time"

// CrateOwner is one publishing user of a crate as reported by crates.io.
type CrateOwner struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// CrateInfo is the merged view of a crate built from the crates.io search,
// detail, owner and dependency endpoints. Immutable once built.
type CrateInfo struct {
	Name             string       `json:"name"`
	NewestVersion    string       `json:"newest_version"`
	Description      string       `json:"description"`
	Downloads        int64        `json:"downloads"`
	RecentDownloads  int64        `json:"recent_downloads"`
	CrateSize        int64        `json:"crate_size"`
	License          string       `json:"license"`
	Homepage         string       `json:"homepage"`
	Documentation    string       `json:"documentation"`
	Repository       string       `json:"repository"`
	Owners           []CrateOwner `json:"owners"`
	DependencyCount  int          `json:"dependency_count"`
	DevDependencyCnt int          `json:"dev_dependency_count"`
	Keywords         []string     `json:"keywords"`
	Categories       []string     `json:"categories"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// DocsURL is the documentation link for the crate, falling back to the
// canonical docs.rs page when the manifest does not declare one.
func (c *CrateInfo) DocsURL() string {
	if c.Documentation != "" {
		return c.Documentation
	}
	return "https://docs.rs/" + c.Name
}
