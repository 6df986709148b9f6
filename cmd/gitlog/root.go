package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/audi70r/gitlog/internal/config"
	"github.com/audi70r/gitlog/internal/git"
	"github.com/audi70r/gitlog/internal/logging"
	"github.com/audi70r/gitlog/internal/metrics"
)

var (
	// Global flags
	cfgFile string

	// Set by the root command before any subcommand runs
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "gitlog",
	Short: "Parse git history into changelog records",
	Long: `Gitlog parses the output of git log into structured commit records:
hash, author, date, version tag, message, change statistics, referenced
issues and merged pull requests, with links for GitHub, GitLab and Bitbucket.

Settings are read from .gitlog.yaml, GITLOG_* environment variables and flags,
in increasing order of precedence.`,
	Version:           Version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file (default .gitlog.yaml in the working or home directory)")
	pf.StringP("repo", "C", ".", "repository path")
	pf.String("remote", "origin", "remote used to build links")
	pf.String("origin-url", "", "repository URL used for links instead of the remote")
	pf.String("starting-commit", "", "stop after the commit whose hash starts with this prefix")
	pf.String("version-pattern", "", "regular expression matching version tags, with three groups")
	pf.String("issue-pattern", "", "regular expression matching issue references")
	pf.String("issue-url", "", "issue link template with an {id} placeholder")
	pf.String("merge-url", "", "merge request link template with an {id} placeholder")
	pf.String("timezone", "Local", "timezone for daily and hourly statistics")
	pf.String("log-level", "warn", "log level: debug, info, warn, error")
	pf.String("log-format", "text", "log format: text, json")
}

func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}

	l, err := logging.New(logging.Config{
		Level:  loaded.Log.Level,
		Format: loaded.Log.Format,
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}

	cfg = loaded
	logger = l
	slog.SetDefault(l)
	return nil
}

// resolveOrigin picks the origin used for links. A repository without the
// configured remote still parses, with host-relative links.
func resolveOrigin() (git.Origin, error) {
	if cfg.OriginURL != "" {
		return git.ParseOrigin(cfg.OriginURL)
	}
	origin, err := git.RemoteOrigin(cfg.RepoPath, cfg.Remote)
	if errors.Is(err, git.ErrNoRemote) {
		logger.Warn("no usable remote, links will be relative", "remote", cfg.Remote, "error", err)
		return git.Origin{}, nil
	}
	return origin, err
}

// loadHistory runs git log in the configured repository and parses it. When
// metrics_file is set the run is recorded there, successful or not.
func loadHistory(ctx context.Context) ([]*git.Commit, git.Origin, error) {
	origin, err := resolveOrigin()
	if err != nil {
		return nil, git.Origin{}, err
	}

	parser := git.NewParser(cfg.RepoPath)
	parser.Logger = logger.With("component", "git")

	start := time.Now()
	commits, err := git.FetchCommits(ctx, parser.Log, origin, cfg.ParserOptions())
	duration := time.Since(start)

	if cfg.MetricsFile != "" {
		collector := metrics.NewCollector(nil)
		if err != nil {
			collector.RecordError(err)
		} else {
			collector.Observe(commits, duration)
		}
		if werr := collector.WriteTextfile(cfg.MetricsFile); werr != nil {
			logger.Error("write metrics", "path", cfg.MetricsFile, "error", werr)
		}
	}
	if err != nil {
		return nil, origin, err
	}

	logger.Info("parsed history", "commits", len(commits), "origin", origin.URL, "duration", duration)
	return commits, origin, nil
}
