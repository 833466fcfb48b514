package asset

// Package is an asset package translated into the host package model. JSON
// field names follow the host manifest format.
type Package struct {
	Name              string            `json:"name"`
	Version           string            `json:"version"`
	VersionNormalized string            `json:"version_normalized"`
	Stability         string            `json:"stability,omitempty"`
	Type              string            `json:"type"`
	Description       string            `json:"description,omitempty"`
	Keywords          []string          `json:"keywords,omitempty"`
	Homepage          string            `json:"homepage,omitempty"`
	License           []string          `json:"license,omitempty"`
	Authors           []Author          `json:"authors,omitempty"`
	Support           map[string]string `json:"support,omitempty"`
	Require           map[string]string `json:"require,omitempty"`
	RequireDev        map[string]string `json:"require-dev,omitempty"`
	Bin               []string          `json:"bin,omitempty"`
	Extra             map[string]any    `json:"extra,omitempty"`

	// RawVersion is the version exactly as the registry published it.
	RawVersion string `json:"-"`
}

type Author struct {
	Name     string `json:"name"`
	Email    string `json:"email,omitempty"`
	Homepage string `json:"homepage,omitempty"`
}

// VcsRepository describes a repository the host must register before it can
// resolve a dependency declared by URL instead of by version range.
type VcsRepository struct {
	Type string `json:"type" toml:"type"`
	URL  string `json:"url" toml:"url"`
	Name string `json:"name,omitempty" toml:"name,omitempty"`
}

// Conversion is the result of translating one asset manifest.
type Conversion struct {
	Package      *Package
	Repositories []VcsRepository
}
