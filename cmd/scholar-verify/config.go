// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/scholar-verify/internal/secrets"
	"github.com/pdiddy/scholar-verify/internal/sources"
	"github.com/pdiddy/scholar-verify/internal/store"
	"github.com/pdiddy/scholar-verify/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "scholar-verify/0.1"
	defaultDelay     = 2 * time.Second
	defaultJitter    = 1 * time.Second
	defaultRetries   = 2
)

// Configuration keys. Each maps to SCHOLAR_VERIFY_<KEY> in the environment
// with dots replaced by underscores.
const (
	keyTimeout        = "lookup.timeout"
	keyUserAgent      = "lookup.user_agent"
	keyMaxCandidates  = "lookup.max_candidates"
	keyRetries        = "lookup.rate_limit_retries"
	keyCrossref       = "lookup.crossref"
	keySemantic       = "lookup.semantic_scholar"
	keyOpenAlex       = "lookup.openalex"
	keySemanticAPIKey = "lookup.semantic_scholar_api_key"
	keyCrossrefMailto = "lookup.crossref_mailto"
	keyOpenAlexEmail  = "lookup.openalex_email"
	keyDelay          = "batch.delay"
	keyJitter         = "batch.jitter"
	keyOutputDir      = "batch.output_dir"
	keyStorePath      = "batch.store_path"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault(keyTimeout, defaultTimeout)
	v.SetDefault(keyUserAgent, defaultUserAgent)
	v.SetDefault(keyMaxCandidates, sources.MaxCandidates)
	v.SetDefault(keyRetries, defaultRetries)
	v.SetDefault(keyCrossref, true)
	v.SetDefault(keySemantic, true)
	v.SetDefault(keyOpenAlex, false)
	v.SetDefault(keyDelay, defaultDelay)
	v.SetDefault(keyJitter, defaultJitter)
	v.SetDefault(keyOutputDir, ".")
	v.SetDefault(keyStorePath, store.DefaultPath)
}

// bindFlags binds the named flags of cmd to configuration keys. Binding
// happens when a command runs so commands sharing a key do not overwrite
// each other's binding.
func bindFlags(v *viper.Viper, cmd *cobra.Command, keys map[string]string) error {
	for key, flag := range keys {
		f := cmd.Flags().Lookup(flag)
		if f == nil {
			return fmt.Errorf("unknown flag %q for key %s", flag, key)
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag %s: %w", flag, err)
		}
	}
	return nil
}

// lookupConfig assembles adapter settings from v and fills empty
// credentials from the secrets directory.
func lookupConfig(v *viper.Viper, s secrets.Set) types.LookupConfig {
	cfg := types.LookupConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   v.GetDuration(keyTimeout),
			UserAgent: v.GetString(keyUserAgent),
		},
		MaxCandidates:         v.GetInt(keyMaxCandidates),
		RateLimitRetries:      v.GetInt(keyRetries),
		EnableCrossref:        v.GetBool(keyCrossref),
		EnableSemanticScholar: v.GetBool(keySemantic),
		EnableOpenAlex:        v.GetBool(keyOpenAlex),
		SemanticScholarAPIKey: v.GetString(keySemanticAPIKey),
		CrossrefMailto:        v.GetString(keyCrossrefMailto),
		OpenAlexEmail:         v.GetString(keyOpenAlexEmail),
	}
	s.Apply(&cfg)
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.CrossrefMailto != "" {
		cfg.UserAgent = fmt.Sprintf("%s (mailto:%s)", cfg.UserAgent, cfg.CrossrefMailto)
	}
	return cfg
}

func batchConfig(v *viper.Viper) types.BatchConfig {
	return types.BatchConfig{
		ItemDelay:  v.GetDuration(keyDelay),
		ItemJitter: v.GetDuration(keyJitter),
		OutputDir:  v.GetString(keyOutputDir),
		StorePath:  v.GetString(keyStorePath),
	}
}

func newHTTPClient(cfg types.LookupConfig) *http.Client {
	return &http.Client{Timeout: cfg.Timeout}
}
