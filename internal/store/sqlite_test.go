package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/audi70r/gitlog/internal/git"
)

var origin = git.Origin{Hostname: "github.com", URL: "https://github.com/user/repo"}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "gitlog.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleCommits() []*git.Commit {
	tag := "v1.2.0"
	return []*git.Commit{
		{
			Hash:      "2401ee4706e94629f48830bab9ed5812c032734a",
			ShortHash: "2401ee4",
			Author:    "Pete Cook",
			Email:     "pete@example.com",
			Date:      "2017-12-14T10:47:28+00:00",
			Tag:       &tag,
			Subject:   "Merge pull request #5 from user/feature",
			Message:   "Merge pull request #5 from user/feature\n\nAdd the feature",
			Href:      "https://github.com/user/repo/commit/2401ee4706e94629f48830bab9ed5812c032734a",
			Merge: &git.Merge{
				Style:   git.GitHubMerge,
				ID:      "5",
				Message: "Add the feature",
				Href:    "https://github.com/user/repo/pull/5",
			},
			Stats: &git.Stats{Files: 3, Insertions: 10, Deletions: 2},
		},
		{
			Hash:      "0e24bf427a5b1ee6ac5d4d2ef2e4e05b3a3ba5a2",
			ShortHash: "0e24bf4",
			Author:    "Ann",
			Email:     "ann@example.com",
			Date:      "2017-12-13T09:00:00+00:00",
			Subject:   "Fix crash",
			Message:   "Fix crash\n\nFixes #1, closes #2",
			Href:      "https://github.com/user/repo/commit/0e24bf427a5b1ee6ac5d4d2ef2e4e05b3a3ba5a2",
			Fixes: []git.Fix{
				{ID: "1", Href: "https://github.com/user/repo/issues/1"},
				{ID: "2", Href: "https://github.com/user/repo/issues/2"},
			},
		},
	}
}

func TestStore_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	commits := sampleCommits()
	runID, err := s.SaveRun(ctx, origin, commits)
	require.NoError(t, err)
	assert.Len(t, runID, 36)

	loaded, err := s.LoadCommits(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, commits, loaded)
}

func TestStore_OptionalFieldsStayNil(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	runID, err := s.SaveRun(ctx, origin, []*git.Commit{{Hash: "abc", ShortHash: "abc"}})
	require.NoError(t, err)

	loaded, err := s.LoadCommits(ctx, runID)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Nil(t, loaded[0].Tag)
	assert.Nil(t, loaded[0].Stats)
	assert.Nil(t, loaded[0].Merge)
	assert.Nil(t, loaded[0].Fixes)
}

func TestStore_Runs(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.SaveRun(ctx, origin, sampleCommits())
	require.NoError(t, err)
	second, err := s.SaveRun(ctx, origin, nil)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, second, runs[0].ID)
	assert.Equal(t, 0, runs[0].Commits)
	assert.Equal(t, 2, runs[1].Commits)
	assert.Equal(t, origin, runs[1].Origin)

	run, err := s.LoadRun(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, 2, run.Commits)
	assert.False(t, run.CreatedAt.IsZero())
}

func TestStore_LoadRunMissing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.LoadRun(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrRunNotFound)

	commits, err := s.LoadCommits(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, commits)
}

func TestStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gitlog.db")
	ctx := context.Background()

	s, err := Open(path, nil)
	require.NoError(t, err)
	runID, err := s.SaveRun(ctx, origin, sampleCommits())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path, nil)
	require.NoError(t, err)
	defer s.Close()

	loaded, err := s.LoadCommits(ctx, runID)
	require.NoError(t, err)
	assert.Len(t, loaded, 2)
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open("", nil)
	assert.Error(t, err)
}
