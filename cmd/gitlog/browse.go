package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/audi70r/gitlog/internal/git"
	"github.com/audi70r/gitlog/internal/logging"
	"github.com/audi70r/gitlog/internal/ui"
	"github.com/audi70r/gitlog/internal/watch"
)

var (
	browseWatch   bool
	browseLogFile string
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse commits, releases and authors in the terminal",
	Long: `Open an interactive view of the parsed history.

With --watch, the history is parsed again whenever HEAD, a branch or a tag
changes. The terminal is owned by the UI, so logs go to --log-file or are
dropped.`,
	Args: cobra.NoArgs,
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().BoolVarP(&browseWatch, "watch", "w", false, "reload when refs change")
	browseCmd.Flags().StringVar(&browseLogFile, "log-file", "", "write logs to this file")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	var w io.Writer = io.Discard
	if browseLogFile != "" {
		f, err := os.OpenFile(browseLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		w = f
	}
	l, err := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Writer: w})
	if err != nil {
		return err
	}
	logger = l
	slog.SetDefault(l)

	parser := git.NewParser(cfg.RepoPath)
	parser.Logger = logger.With("component", "git")
	if !parser.IsGitRepo(ctx) {
		return fmt.Errorf("%w: %s", git.ErrNotGitRepo, cfg.RepoPath)
	}

	origin, err := resolveOrigin()
	if err != nil {
		return err
	}

	app, err := ui.NewApp(ctx, ui.Options{
		Config: cfg,
		Origin: origin,
		Load: func(ctx context.Context) ([]*git.Commit, error) {
			commits, _, err := loadHistory(ctx)
			return commits, err
		},
		Estimate: parser.EstimateCommitCount,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	if browseWatch {
		gitDir, err := parser.GitDir(ctx)
		if err != nil {
			return err
		}
		watcher, err := watch.NewRefWatcher(gitDir, watch.DefaultDebounce, logger)
		if err != nil {
			return err
		}
		go func() {
			err := watcher.Watch(ctx, func() error {
				app.Reload()
				return nil
			})
			if err != nil {
				logger.Error("ref watcher stopped", "error", err)
			}
		}()
	}

	return app.Run()
}
