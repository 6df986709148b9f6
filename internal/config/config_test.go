package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/audi70r/gitlog/internal/git"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gitlog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FromYAML(t *testing.T) {
	path := writeConfig(t, `
starting_commit: abc123
issue_url: https://jira.example.com/browse/{id}
version_pattern: 'release-(\d+)\.(\d+)\.(\d+)'
format: yaml
unknown_option: ignored
log:
  level: debug
`)

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "abc123", cfg.StartingCommit)
	assert.Equal(t, "https://jira.example.com/browse/{id}", cfg.IssueURL)
	assert.Equal(t, `release-(\d+)\.(\d+)\.(\d+)`, cfg.VersionPattern)
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, "debug", cfg.Log.Level)

	// untouched keys keep their defaults
	assert.Equal(t, "origin", cfg.Remote)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 7, cfg.RollingWindow)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), nil)
	assert.Error(t, err)
}

func TestLoad_EnvAndFlags(t *testing.T) {
	path := writeConfig(t, "remote: upstream\nformat: json\n")
	t.Setenv("GITLOG_MERGE_URL", "https://review.example.com/{id}")
	t.Setenv("GITLOG_LOG_LEVEL", "error")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("remote", "origin", "")
	flags.String("format", "json", "")
	require.NoError(t, flags.Parse([]string{"--format", "yaml"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "upstream", cfg.Remote, "unset flag must not override the file")
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, "https://review.example.com/{id}", cfg.MergeURL)
	assert.Equal(t, "error", cfg.Log.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad version pattern", func(c *Config) { c.VersionPattern = "v(\\d+" }},
		{"bad issue pattern", func(c *Config) { c.IssuePattern = "[a-" }},
		{"issue url without placeholder", func(c *Config) { c.IssueURL = "https://jira/browse" }},
		{"merge url without placeholder", func(c *Config) { c.MergeURL = "https://review" }},
		{"unknown format", func(c *Config) { c.Format = "xml" }},
		{"zero rolling window", func(c *Config) { c.RollingWindow = 0 }},
		{"unknown timezone", func(c *Config) { c.Timezone = "Mars/Olympus_Mons" }},
	}

	require.NoError(t, Default().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestParserOptions(t *testing.T) {
	cfg := Default()
	cfg.StartingCommit = "abc"
	cfg.IssuePattern = `PROJ-(\d+)`
	cfg.MergeURL = "https://review/{id}"

	assert.Equal(t, git.Options{
		StartingCommit: "abc",
		IssuePattern:   `PROJ-(\d+)`,
		MergeURL:       "https://review/{id}",
	}, cfg.ParserOptions())
}

func TestLocation(t *testing.T) {
	cfg := Default()
	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	cfg.Timezone = "UTC"
	loc, err = cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}
