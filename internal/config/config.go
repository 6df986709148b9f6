package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/audi70r/gitlog/internal/git"
)

// Config holds application configuration
type Config struct {
	// Repository settings
	RepoPath  string `mapstructure:"repo"`
	Remote    string `mapstructure:"remote"`
	OriginURL string `mapstructure:"origin_url"` // Skips remote lookup when set

	// Parser options
	StartingCommit string `mapstructure:"starting_commit"`
	VersionPattern string `mapstructure:"version_pattern"`
	IssuePattern   string `mapstructure:"issue_pattern"`
	IssueURL       string `mapstructure:"issue_url"`
	MergeURL       string `mapstructure:"merge_url"`

	// Output settings
	Format      string `mapstructure:"format"`
	Limit       string `mapstructure:"limit"`
	MetricsFile string `mapstructure:"metrics_file"`

	// Display settings
	Timezone   string `mapstructure:"timezone"`
	MaxAuthors int    `mapstructure:"max_authors"`

	// Timeline settings
	SparklineWidth int `mapstructure:"sparkline_width"`
	RollingWindow  int `mapstructure:"rolling_window"` // Days for rolling average

	Log LogConfig `mapstructure:"log"`
}

// LogConfig selects the slog handler
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		RepoPath:       ".",
		Remote:         "origin",
		Format:         "json",
		Limit:          "false",
		Timezone:       "Local",
		MaxAuthors:     20,
		SparklineWidth: 52,
		RollingWindow:  7,
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// flagKeys maps command-line flag names to config keys
var flagKeys = map[string]string{
	"repo":            "repo",
	"remote":          "remote",
	"origin-url":      "origin_url",
	"starting-commit": "starting_commit",
	"version-pattern": "version_pattern",
	"issue-pattern":   "issue_pattern",
	"issue-url":       "issue_url",
	"merge-url":       "merge_url",
	"format":          "format",
	"limit":           "limit",
	"metrics-file":    "metrics_file",
	"timezone":        "timezone",
	"log-level":       "log.level",
	"log-format":      "log.format",
}

// Load reads configuration from, in increasing precedence: defaults, the
// config file, GITLOG_* environment variables and flags that were set.
// With an empty path, .gitlog.yaml is looked up in the working directory and
// the home directory and is optional.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".gitlog")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("GITLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("repo", d.RepoPath)
	v.SetDefault("remote", d.Remote)
	v.SetDefault("origin_url", d.OriginURL)
	v.SetDefault("starting_commit", d.StartingCommit)
	v.SetDefault("version_pattern", d.VersionPattern)
	v.SetDefault("issue_pattern", d.IssuePattern)
	v.SetDefault("issue_url", d.IssueURL)
	v.SetDefault("merge_url", d.MergeURL)
	v.SetDefault("format", d.Format)
	v.SetDefault("limit", d.Limit)
	v.SetDefault("metrics_file", d.MetricsFile)
	v.SetDefault("timezone", d.Timezone)
	v.SetDefault("max_authors", d.MaxAuthors)
	v.SetDefault("sparkline_width", d.SparklineWidth)
	v.SetDefault("rolling_window", d.RollingWindow)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Validate checks configuration for errors
func (c *Config) Validate() error {
	if c.VersionPattern != "" {
		if _, err := regexp.Compile(c.VersionPattern); err != nil {
			return fmt.Errorf("version_pattern: %w", err)
		}
	}
	if c.IssuePattern != "" {
		if _, err := regexp.Compile(c.IssuePattern); err != nil {
			return fmt.Errorf("issue_pattern: %w", err)
		}
	}
	if c.IssueURL != "" && !strings.Contains(c.IssueURL, "{id}") {
		return fmt.Errorf("issue_url: %q has no {id} placeholder", c.IssueURL)
	}
	if c.MergeURL != "" && !strings.Contains(c.MergeURL, "{id}") {
		return fmt.Errorf("merge_url: %q has no {id} placeholder", c.MergeURL)
	}
	switch c.Format {
	case "json", "yaml":
	default:
		return fmt.Errorf("format: must be json or yaml, got %q", c.Format)
	}
	if c.RollingWindow <= 0 {
		return fmt.Errorf("rolling_window: must be positive, got %d", c.RollingWindow)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// ParserOptions returns the parser settings
func (c *Config) ParserOptions() git.Options {
	return git.Options{
		StartingCommit: c.StartingCommit,
		VersionPattern: c.VersionPattern,
		IssuePattern:   c.IssuePattern,
		IssueURL:       c.IssueURL,
		MergeURL:       c.MergeURL,
	}
}

// Location resolves the configured timezone
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("timezone: %w", err)
	}
	return loc, nil
}
