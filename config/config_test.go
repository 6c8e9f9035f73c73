package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "", cfg.Source)
	assert.Equal(t, "info", cfg.Pipeline.LogLvl)
	assert.Equal(t, 60*time.Second, cfg.Services.Timeout)
	assert.Equal(t, 4, cfg.Services.ClassifyWorkers)
	assert.Equal(t, int64(20*1024*1024), cfg.Server.MaxUploadBytes)
	assert.Equal(t, 14, cfg.Generator.MaxDisplaySeconds)
	assert.Equal(t, 8, cfg.Generator.TimelinePoints)
	assert.Equal(t, 5, cfg.Generator.ConflictMin)
	assert.Equal(t, 75, cfg.Generator.ConflictMax)
	assert.Empty(t, cfg.Services.Diarization.URL)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, `
pipeline:
  log_level: debug
services:
  diarization:
    url: http://diarizer:9000
  timeout: 5s
generator:
  max_display_seconds: 0
  seed: 42
  sample_when_empty: true
server:
  addr: ":9999"
paths:
  outputs: /tmp/out
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Source)
	assert.Equal(t, "debug", cfg.Pipeline.LogLvl)
	assert.Equal(t, "http://diarizer:9000", cfg.Services.Diarization.URL)
	assert.Equal(t, 5*time.Second, cfg.Services.Timeout)
	assert.Equal(t, 0, cfg.Generator.MaxDisplaySeconds)
	assert.Equal(t, uint64(42), cfg.Generator.Seed)
	assert.True(t, cfg.Generator.SampleWhenEmpty)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "/tmp/out", cfg.Paths.Outputs)
	// untouched keys keep their defaults
	assert.Equal(t, 8, cfg.Generator.TimelinePoints)
}

func TestLoad_CandidateByEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("CONFIG_ENV", "staging")
	writeFile(t, filepath.Join(dir, "config", "staging", "config.yaml"), "generator:\n  timeline_points: 5\n")
	writeFile(t, filepath.Join(dir, "src", "shared", "config.yaml"), "generator:\n  timeline_points: 9\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("config", "staging", "config.yaml"), cfg.Source)
	assert.Equal(t, 5, cfg.Generator.TimelinePoints)
}

func TestLoad_SharedFallback(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, filepath.Join(dir, "src", "shared", "config.yaml"), "generator:\n  timeline_points: 9\n")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Generator.TimelinePoints)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("INSIGHTMEET_SERVICES_SENTIMENT_URL", "http://classifier")
	t.Setenv("INSIGHTMEET_GENERATOR_EXTRA_LINKS", "3")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://classifier", cfg.Services.Sentiment.URL)
	assert.Equal(t, 3, cfg.Generator.ExtraLinks)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestRoot_Analysis(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)

	a := cfg.Analysis()
	assert.Equal(t, 14, a.MaxDisplaySeconds)
	assert.Equal(t, 8, a.TimelinePoints)
	assert.Equal(t, 4, a.PaletteSize)
	assert.Equal(t, 1, a.ExtraLinks)
	assert.Equal(t, 4, a.SummaryPoints)
}
