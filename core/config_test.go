package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "oasgen.yaml")
	content := `
title: Billing API
version: 3.1.4
applicationRoot: https://billing.example.com
contact:
  name: API team
  email: api@example.com
security:
  - type: apikey
    header: X-Token
skipPaths:
  - /internal
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "Billing API", cfg.Title)
	assert.Equal(t, "3.1.4", cfg.Version)
	assert.Equal(t, "https://billing.example.com", cfg.ApplicationRoot)
	require.NotNil(t, cfg.Contact)
	assert.Equal(t, "api@example.com", cfg.Contact.Email)
	require.Len(t, cfg.Security, 1)
	assert.Equal(t, "X-Token", cfg.Security[0].HeaderName)
	assert.Equal(t, []string{"/internal"}, cfg.SkipPaths)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.withDefaults()
	assert.Equal(t, "Generated API", cfg.Title)
	assert.Equal(t, "1.0.0", cfg.Version)

	kept := Config{Title: "X", Version: "9"}.withDefaults()
	assert.Equal(t, "X", kept.Title)
	assert.Equal(t, "9", kept.Version)
}

func TestPathSkipper(t *testing.T) {
	s := newPathSkipper([]string{"/internal", "metrics"})

	assert.True(t, s.Skip("/swagger"))
	assert.True(t, s.Skip("/swagger/index.html"))
	assert.True(t, s.Skip("/redoc"))
	assert.True(t, s.Skip("/scalar/assets/app.js"))
	assert.True(t, s.Skip("/internal/debug"))
	assert.True(t, s.Skip("/metrics"), "bare prefixes get a leading slash")
	assert.True(t, s.Skip(""))

	assert.False(t, s.Skip("/users"))
	assert.False(t, s.Skip("/interns"))
}
