// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the per-request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "scholar-verify/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// LookupConfig holds settings for the bibliographic source adapters.
type LookupConfig struct {
	HTTPConfig `yaml:",inline"`

	// MaxCandidates bounds the records taken from each source (at most 3).
	MaxCandidates int `json:"max_candidates" yaml:"max_candidates"`

	// RateLimitRetries is the number of retries after an HTTP 429 response.
	// Zero disables retrying.
	RateLimitRetries int `json:"rate_limit_retries" yaml:"rate_limit_retries"`

	// EnableCrossref controls whether the Crossref adapter is used.
	EnableCrossref bool `json:"enable_crossref" yaml:"enable_crossref"`

	// EnableSemanticScholar controls whether the Semantic Scholar adapter is used.
	EnableSemanticScholar bool `json:"enable_semantic_scholar" yaml:"enable_semantic_scholar"`

	// EnableOpenAlex controls whether the OpenAlex adapter is appended after
	// the default adapters.
	EnableOpenAlex bool `json:"enable_openalex" yaml:"enable_openalex"`

	// SemanticScholarAPIKey is an optional API key for higher rate limits.
	SemanticScholarAPIKey string `json:"semantic_scholar_api_key,omitempty" yaml:"semantic_scholar_api_key,omitempty"`

	// CrossrefMailto is sent as the mailto parameter for Crossref's polite pool.
	CrossrefMailto string `json:"crossref_mailto,omitempty" yaml:"crossref_mailto,omitempty"`

	// OpenAlexEmail is sent as the mailto parameter for OpenAlex's polite pool.
	OpenAlexEmail string `json:"openalex_email,omitempty" yaml:"openalex_email,omitempty"`
}

// BatchConfig holds settings for verifying a whole profile.
type BatchConfig struct {
	// ItemDelay is the fixed pause between publications.
	ItemDelay time.Duration `json:"item_delay" yaml:"item_delay"`

	// ItemJitter is the upper bound of a random pause added to ItemDelay.
	ItemJitter time.Duration `json:"item_jitter" yaml:"item_jitter"`

	// OutputDir is the directory that receives report files.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// StorePath is the SQLite database recording results for resume and history.
	StorePath string `json:"store_path" yaml:"store_path"`
}

// Config groups all settings for a verification run.
type Config struct {
	Lookup LookupConfig `json:"lookup" yaml:"lookup"`
	Batch  BatchConfig  `json:"batch" yaml:"batch"`
}
