package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeConfig(t, `{
		"port": 9090,
		"fetch_timeout_sec": 10,
		"use_browser": true
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 10, cfg.FetchTimeoutSec)
	assert.True(t, cfg.UseBrowser)
}

func TestLoad_EmptyPath(t *testing.T) {
	_, err := Load("")
	require.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := writeConfig(t, `{"port": }`)
	_, err := Load(path)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	assert.NoError(t, cfg.Validate())

	cfg.Port = -1
	assert.Error(t, cfg.Validate())

	cfg = Defaults()
	cfg.FetchTimeoutSec = -5
	assert.Error(t, cfg.Validate())

	cfg = Defaults()
	cfg.SessionTTLMin = -1
	assert.Error(t, cfg.Validate())
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := Config{Port: 9000}
	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, Defaults().FetchTimeoutSec, merged.FetchTimeoutSec)
	assert.Equal(t, Defaults().AnalysisTimeoutSec, merged.AnalysisTimeoutSec)
	assert.Equal(t, Defaults().SessionTTLMin, merged.SessionTTLMin)
}

func TestDurationAccessors(t *testing.T) {
	cfg := Config{FetchTimeoutSec: 20, AnalysisTimeoutSec: 90, SessionTTLMin: 60}
	assert.Equal(t, 20*time.Second, cfg.FetchTimeout())
	assert.Equal(t, 90*time.Second, cfg.AnalysisTimeout())
	assert.Equal(t, time.Hour, cfg.SessionTTL())
}
