package git

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"
)

// LogFunc returns the raw log text for ParseCommits. Parser.Log is the
// production implementation; tests pass literal fixtures.
type LogFunc func(ctx context.Context) (string, error)

// Parser runs git in a repository
type Parser struct {
	RepoPath string
	Logger   *slog.Logger
}

// NewParser creates a new git parser for the given repository path
func NewParser(repoPath string) *Parser {
	return &Parser{
		RepoPath: repoPath,
		Logger:   slog.Default().With("component", "git"),
	}
}

// Log runs `git log --shortstat` with LogFormat and returns the whole output.
func (p *Parser) Log(ctx context.Context) (string, error) {
	args := []string{"log", "--shortstat", "--pretty=format:" + LogFormat}

	out, err := p.run(ctx, args...)
	if err != nil {
		return "", fmt.Errorf("git log: %w", err)
	}
	p.logger().Debug("git log finished", "repo", p.RepoPath, "bytes", len(out))
	return out, nil
}

// EstimateCommitCount returns the number of commits reachable from HEAD
func (p *Parser) EstimateCommitCount(ctx context.Context) (int, error) {
	out, err := p.run(ctx, "rev-list", "--count", "HEAD")
	if err != nil {
		return -1, fmt.Errorf("git rev-list: %w", err)
	}

	count, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil {
		return -1, err
	}
	return count, nil
}

// IsGitRepo checks if the path is a valid git repository
func (p *Parser) IsGitRepo(ctx context.Context) bool {
	_, err := p.run(ctx, "rev-parse", "--git-dir")
	return err == nil
}

// GitDir returns the absolute path of the repository's .git directory
func (p *Parser) GitDir(ctx context.Context) (string, error) {
	out, err := p.run(ctx, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotGitRepo, p.RepoPath)
	}
	return strings.TrimSpace(out), nil
}

func (p *Parser) run(ctx context.Context, args ...string) (string, error) {
	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = p.RepoPath
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%w: %s", err, msg)
		}
		return "", err
	}
	return stdout.String(), nil
}

func (p *Parser) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}

// FetchCommits calls fetch once and parses its output.
func FetchCommits(ctx context.Context, fetch LogFunc, origin Origin, opts Options) ([]*Commit, error) {
	log, err := fetch(ctx)
	if err != nil {
		return nil, err
	}
	return ParseCommits(log, origin, opts)
}
