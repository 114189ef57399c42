// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scholar-verify/internal/secrets"
	"github.com/pdiddy/scholar-verify/internal/store"
)

func TestLookupConfigDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg := lookupConfig(v, nil)
	assert.Equal(t, defaultTimeout, cfg.Timeout)
	assert.Equal(t, defaultUserAgent, cfg.UserAgent)
	assert.Equal(t, 3, cfg.MaxCandidates)
	assert.Equal(t, defaultRetries, cfg.RateLimitRetries)
	assert.True(t, cfg.EnableCrossref)
	assert.True(t, cfg.EnableSemanticScholar)
	assert.False(t, cfg.EnableOpenAlex)

	b := batchConfig(v)
	assert.Equal(t, 2*time.Second, b.ItemDelay)
	assert.Equal(t, time.Second, b.ItemJitter)
	assert.Equal(t, ".", b.OutputDir)
	assert.Equal(t, store.DefaultPath, b.StorePath)
}

func TestLookupConfigSecretsAndMailto(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set(keySemanticAPIKey, "from-config")

	cfg := lookupConfig(v, secrets.Set{
		secrets.SemanticScholarAPIKey: "from-secrets",
		secrets.CrossrefMailto:        "me@example.org",
	})
	assert.Equal(t, "from-config", cfg.SemanticScholarAPIKey)
	assert.Equal(t, "me@example.org", cfg.CrossrefMailto)
	assert.Equal(t, "scholar-verify/0.1 (mailto:me@example.org)", cfg.UserAgent)
}

func TestBindFlags(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cmd := &cobra.Command{Use: "x"}
	cmd.Flags().Bool("openalex", false, "")
	cmd.Flags().Duration("delay", defaultDelay, "")
	require.NoError(t, cmd.Flags().Parse([]string{"--openalex", "--delay=5s"}))

	require.NoError(t, bindFlags(v, cmd, map[string]string{keyOpenAlex: "openalex", keyDelay: "delay"}))
	assert.True(t, lookupConfig(v, nil).EnableOpenAlex)
	assert.Equal(t, 5*time.Second, batchConfig(v).ItemDelay)

	assert.Error(t, bindFlags(v, cmd, map[string]string{keyJitter: "missing"}))
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"verify", "lookup", "history", "version"} {
		assert.True(t, names[want], "missing command %s", want)
	}
}
