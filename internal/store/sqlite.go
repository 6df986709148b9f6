// Package store exports parsed commit records into a SQLite database so they
// can be queried or diffed between runs.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/audi70r/gitlog/internal/git"
)

// ErrRunNotFound is returned by LoadRun for an unknown run id.
var ErrRunNotFound = errors.New("run not found")

// Run describes one export.
type Run struct {
	ID        string
	Origin    git.Origin
	CreatedAt time.Time
	Commits   int
}

// Store writes commit records to SQLite.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Open opens or creates the database at path.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}
	if logger == nil {
		logger = slog.Default()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite only supports a single writer

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", pragma, err)
		}
	}

	s := &Store{db: db, path: path, logger: logger.With("component", "store")}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		hostname TEXT NOT NULL,
		url TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS commits (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		hash TEXT NOT NULL,
		shorthash TEXT NOT NULL,
		author TEXT NOT NULL,
		email TEXT NOT NULL,
		date TEXT NOT NULL,
		tag TEXT,
		subject TEXT NOT NULL,
		message TEXT NOT NULL,
		href TEXT NOT NULL,
		files INTEGER,
		insertions INTEGER,
		deletions INTEGER,
		merge_style TEXT,
		merge_id TEXT,
		merge_message TEXT,
		merge_href TEXT,
		PRIMARY KEY (run_id, position)
	);

	CREATE TABLE IF NOT EXISTS fixes (
		run_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		seq INTEGER NOT NULL,
		issue_id TEXT NOT NULL,
		href TEXT NOT NULL,
		PRIMARY KEY (run_id, position, seq),
		FOREIGN KEY (run_id, position) REFERENCES commits(run_id, position) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_commits_hash ON commits(hash);
	CREATE INDEX IF NOT EXISTS idx_commits_tag ON commits(tag) WHERE tag IS NOT NULL;
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveRun stores commits in log order under a new run id.
func (s *Store) SaveRun(ctx context.Context, origin git.Origin, commits []*git.Commit) (string, error) {
	runID := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, hostname, url, created_at) VALUES (?, ?, ?, ?)`,
		runID, origin.Hostname, origin.URL, time.Now().Unix(),
	); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	commitStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO commits (run_id, position, hash, shorthash, author, email, date, tag,
			subject, message, href, files, insertions, deletions,
			merge_style, merge_id, merge_message, merge_href)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return "", fmt.Errorf("prepare commit insert: %w", err)
	}
	defer commitStmt.Close()

	fixStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO fixes (run_id, position, seq, issue_id, href) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare fix insert: %w", err)
	}
	defer fixStmt.Close()

	for pos, c := range commits {
		var files, insertions, deletions sql.NullInt64
		if c.Stats != nil {
			files = sql.NullInt64{Int64: int64(c.Files), Valid: true}
			insertions = sql.NullInt64{Int64: int64(c.Insertions), Valid: true}
			deletions = sql.NullInt64{Int64: int64(c.Deletions), Valid: true}
		}
		var mergeStyle, mergeID, mergeMessage, mergeHref sql.NullString
		if c.Merge != nil {
			mergeStyle = sql.NullString{String: c.Merge.Style.String(), Valid: true}
			mergeID = sql.NullString{String: c.Merge.ID, Valid: true}
			mergeMessage = sql.NullString{String: c.Merge.Message, Valid: true}
			mergeHref = sql.NullString{String: c.Merge.Href, Valid: true}
		}

		if _, err := commitStmt.ExecContext(ctx,
			runID, pos, c.Hash, c.ShortHash, c.Author, c.Email, c.Date, c.Tag,
			c.Subject, c.Message, c.Href, files, insertions, deletions,
			mergeStyle, mergeID, mergeMessage, mergeHref,
		); err != nil {
			return "", fmt.Errorf("insert commit %s: %w", c.Hash, err)
		}

		for seq, fix := range c.Fixes {
			if _, err := fixStmt.ExecContext(ctx, runID, pos, seq, fix.ID, fix.Href); err != nil {
				return "", fmt.Errorf("insert fix %s: %w", fix.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit transaction: %w", err)
	}

	s.logger.Info("saved run", "run_id", runID, "commits", len(commits), "db", s.path)
	return runID, nil
}

// LoadRun returns the run metadata.
func (s *Store) LoadRun(ctx context.Context, runID string) (*Run, error) {
	run := &Run{ID: runID}
	var created int64
	err := s.db.QueryRowContext(ctx, `
		SELECT r.hostname, r.url, r.created_at, COUNT(c.position)
		FROM runs r LEFT JOIN commits c ON c.run_id = r.id
		WHERE r.id = ?
		GROUP BY r.id
	`, runID).Scan(&run.Origin.Hostname, &run.Origin.URL, &created, &run.Commits)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("load run: %w", err)
	}
	run.CreatedAt = time.Unix(created, 0)
	return run, nil
}

// LoadCommits returns the commits of a run in the order they were saved.
func (s *Store) LoadCommits(ctx context.Context, runID string) ([]*git.Commit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT position, hash, shorthash, author, email, date, tag, subject, message, href,
			files, insertions, deletions, merge_style, merge_id, merge_message, merge_href
		FROM commits WHERE run_id = ? ORDER BY position
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query commits: %w", err)
	}
	defer rows.Close()

	var commits []*git.Commit
	for rows.Next() {
		var pos int
		var c git.Commit
		var tag sql.NullString
		var files, insertions, deletions sql.NullInt64
		var mergeStyle, mergeID, mergeMessage, mergeHref sql.NullString
		if err := rows.Scan(&pos, &c.Hash, &c.ShortHash, &c.Author, &c.Email, &c.Date, &tag,
			&c.Subject, &c.Message, &c.Href, &files, &insertions, &deletions,
			&mergeStyle, &mergeID, &mergeMessage, &mergeHref); err != nil {
			return nil, fmt.Errorf("scan commit: %w", err)
		}
		if tag.Valid {
			c.Tag = &tag.String
		}
		if files.Valid {
			c.Stats = &git.Stats{
				Files:      int(files.Int64),
				Insertions: int(insertions.Int64),
				Deletions:  int(deletions.Int64),
			}
		}
		if mergeStyle.Valid {
			style, err := git.ParseMergeStyle(mergeStyle.String)
			if err != nil {
				return nil, fmt.Errorf("commit %s: %w", c.Hash, err)
			}
			c.Merge = &git.Merge{
				Style:   style,
				ID:      mergeID.String,
				Message: mergeMessage.String,
				Href:    mergeHref.String,
			}
		}
		commits = append(commits, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate commits: %w", err)
	}

	if err := s.loadFixes(ctx, runID, commits); err != nil {
		return nil, err
	}
	return commits, nil
}

func (s *Store) loadFixes(ctx context.Context, runID string, commits []*git.Commit) error {
	rows, err := s.db.QueryContext(ctx, `
		SELECT position, issue_id, href FROM fixes WHERE run_id = ? ORDER BY position, seq
	`, runID)
	if err != nil {
		return fmt.Errorf("query fixes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var pos int
		var fix git.Fix
		if err := rows.Scan(&pos, &fix.ID, &fix.Href); err != nil {
			return fmt.Errorf("scan fix: %w", err)
		}
		if pos < 0 || pos >= len(commits) {
			return fmt.Errorf("fix %s points at missing commit %d", fix.ID, pos)
		}
		commits[pos].Fixes = append(commits[pos].Fixes, fix)
	}
	return rows.Err()
}

// Runs lists every run, newest first.
func (s *Store) Runs(ctx context.Context) ([]*Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.hostname, r.url, r.created_at, COUNT(c.position)
		FROM runs r LEFT JOIN commits c ON c.run_id = r.id
		GROUP BY r.id
		ORDER BY r.created_at DESC, r.rowid DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run := &Run{}
		var created int64
		if err := rows.Scan(&run.ID, &run.Origin.Hostname, &run.Origin.URL, &created, &run.Commits); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.CreatedAt = time.Unix(created, 0)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}
