// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "renderarxiv/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// SearchConfig holds settings for the arXiv search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxResults is the number of papers to return after ranking (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`

	// Category is an optional arXiv taxonomy code restricting the search
	// (e.g. "cs.LG"). Applied both in the API query and as a hard filter.
	Category string `json:"category,omitempty" yaml:"category,omitempty"`

	// SortBy is the arXiv API sort hint: relevance, lastUpdatedDate, or
	// submittedDate (default relevance).
	SortBy string `json:"sort_by" yaml:"sort_by"`

	// RequestInterval is the minimum spacing between consecutive arXiv API
	// calls (default 3s, per the API's informal rate limit).
	RequestInterval time.Duration `json:"request_interval" yaml:"request_interval"`
}

// CitationsConfig holds settings for the Semantic Scholar citation stage.
type CitationsConfig struct {
	HTTPConfig `yaml:",inline"`

	// APIKey is an optional Semantic Scholar API key for higher rate limits.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BatchSize is the number of IDs per batch request (default 100).
	BatchSize int `json:"batch_size" yaml:"batch_size"`

	// CachePath is the SQLite citation cache file. Empty disables caching.
	CachePath string `json:"cache_path,omitempty" yaml:"cache_path,omitempty"`

	// CacheTTL is how long cached citation counts stay fresh (default 7 days).
	CacheTTL time.Duration `json:"cache_ttl" yaml:"cache_ttl"`
}

// EmbeddingConfig holds settings for the optional embedding backend used by
// semantic ranking.
type EmbeddingConfig struct {
	// Model is the embedding model identifier (default "text-embedding-3-small").
	Model string `json:"model" yaml:"model"`

	// APIKey is the OpenAI API key. Semantic mode is unavailable without it.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`
}

// RenderConfig holds settings for HTML output.
type RenderConfig struct {
	// OutputPath is the HTML file to write. Empty means a temporary file
	// derived from the query string.
	OutputPath string `json:"output_path,omitempty" yaml:"output_path,omitempty"`

	// OpenBrowser controls whether the written file is opened in the
	// default browser.
	OpenBrowser bool `json:"open_browser" yaml:"open_browser"`
}
