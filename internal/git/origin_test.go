package git

import (
	"errors"
	"testing"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrigin(t *testing.T) {
	tests := []struct {
		remote string
		want   Origin
	}{
		{"git@github.com:user/repo.git", Origin{Hostname: "github.com", URL: "https://github.com/user/repo"}},
		{"https://github.com/user/repo.git", Origin{Hostname: "github.com", URL: "https://github.com/user/repo"}},
		{"https://gitlab.com/group/sub/repo", Origin{Hostname: "gitlab.com", URL: "https://gitlab.com/group/sub/repo"}},
		{"ssh://git@bitbucket.org/team/repo.git", Origin{Hostname: "bitbucket.org", URL: "https://bitbucket.org/team/repo"}},
		{"http://git.internal/team/repo.git", Origin{Hostname: "git.internal", URL: "http://git.internal/team/repo"}},
		{"https://git.example.com:8443/team/repo.git", Origin{Hostname: "git.example.com", URL: "https://git.example.com:8443/team/repo"}},
		{"ssh://git@git.example.com:2222/team/repo.git", Origin{Hostname: "git.example.com", URL: "https://git.example.com/team/repo"}},
	}

	for _, tt := range tests {
		t.Run(tt.remote, func(t *testing.T) {
			got, err := ParseOrigin(tt.remote)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOrigin_LocalPath(t *testing.T) {
	_, err := ParseOrigin("/srv/git/repo.git")
	assert.True(t, errors.Is(err, ErrNoRemote))
}

func TestRemoteOrigin(t *testing.T) {
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	_, err = repo.CreateRemote(&config.RemoteConfig{
		Name: "origin",
		URLs: []string{"git@github.com:user/repo.git"},
	})
	require.NoError(t, err)

	origin, err := RemoteOrigin(dir, "origin")
	require.NoError(t, err)
	assert.Equal(t, Origin{Hostname: "github.com", URL: "https://github.com/user/repo"}, origin)

	_, err = RemoteOrigin(dir, "upstream")
	assert.True(t, errors.Is(err, ErrNoRemote))
}

func TestRemoteOrigin_NotARepo(t *testing.T) {
	_, err := RemoteOrigin(t.TempDir(), "origin")
	assert.True(t, errors.Is(err, ErrNotGitRepo))
}
