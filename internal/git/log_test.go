package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRepo creates a repository with two commits, the first tagged v1.0.0.
func newTestRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git executable not available")
	}

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	sig := &object.Signature{Name: "Pete Cook", Email: "pete@cookpete.com", When: time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)}
	commit := func(file, content, message string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(content), 0o644))
		_, err := wt.Add(file)
		require.NoError(t, err)
		_, err = wt.Commit(message, &gogit.CommitOptions{Author: sig, Committer: sig})
		require.NoError(t, err)
	}

	commit("a.txt", "one\ntwo\n", "Initial commit\n")
	head, err := repo.Head()
	require.NoError(t, err)
	_, err = repo.CreateTag("v1.0.0", head.Hash(), nil)
	require.NoError(t, err)

	commit("b.txt", "three\n", "Add b\n\nFixes #2\n")
	return dir
}

func TestParser_LogRoundTrip(t *testing.T) {
	dir := newTestRepo(t)
	p := NewParser(dir)
	ctx := context.Background()

	assert.True(t, p.IsGitRepo(ctx))

	count, err := p.EstimateCommitCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	gitDir, err := p.GitDir(ctx)
	require.NoError(t, err)
	assert.Equal(t, ".git", filepath.Base(gitDir))
	assert.True(t, filepath.IsAbs(gitDir))

	commits, err := FetchCommits(ctx, p.Log, githubOrigin, Options{})
	require.NoError(t, err)
	require.Len(t, commits, 2)

	newest, oldest := commits[0], commits[1]
	assert.Equal(t, "Add b", newest.Subject)
	assert.Nil(t, newest.Tag)
	require.Len(t, newest.Fixes, 1)
	assert.Equal(t, "2", newest.Fixes[0].ID)
	require.NotNil(t, newest.Stats)
	assert.Equal(t, 1, newest.Files)
	assert.Equal(t, 1, newest.Insertions)

	assert.Equal(t, "Initial commit", oldest.Subject)
	require.NotNil(t, oldest.Tag)
	assert.Equal(t, "v1.0.0", *oldest.Tag)
	assert.Equal(t, "Pete Cook", oldest.Author)
	assert.Equal(t, oldest.Hash[:7], oldest.ShortHash)
}

func TestParser_NotARepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git executable not available")
	}
	p := NewParser(t.TempDir())
	assert.False(t, p.IsGitRepo(context.Background()))

	_, err := p.Log(context.Background())
	assert.Error(t, err)

	_, err = p.GitDir(context.Background())
	assert.ErrorIs(t, err, ErrNotGitRepo)
}
