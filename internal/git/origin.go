package git

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport"
)

// ParseOrigin builds an Origin from a remote URL. Both URL forms
// (https://host/owner/repo.git, ssh://git@host/owner/repo) and scp-like
// forms (git@host:owner/repo.git) are accepted; links always use http(s).
func ParseOrigin(remoteURL string) (Origin, error) {
	ep, err := transport.NewEndpoint(strings.TrimSpace(remoteURL))
	if err != nil {
		return Origin{}, fmt.Errorf("parse remote %q: %w", remoteURL, err)
	}
	if ep.Protocol == "file" || ep.Host == "" {
		return Origin{}, fmt.Errorf("%w: %q is a local path", ErrNoRemote, remoteURL)
	}

	path := strings.TrimSuffix(strings.Trim(ep.Path, "/"), ".git")
	scheme := "https"
	if ep.Protocol == "http" {
		scheme = "http"
	}

	// An ssh port is not the web port, so only http(s) remotes keep theirs.
	host := ep.Host
	if (ep.Protocol == "http" || ep.Protocol == "https") && ep.Port != 0 {
		host = net.JoinHostPort(ep.Host, strconv.Itoa(ep.Port))
	}

	return Origin{
		Hostname: ep.Host,
		URL:      fmt.Sprintf("%s://%s/%s", scheme, host, path),
	}, nil
}

// RemoteOrigin reads the URL of the named remote from the repository at
// repoPath (or any parent directory) and parses it with ParseOrigin.
func RemoteOrigin(repoPath, remoteName string) (Origin, error) {
	repo, err := gogit.PlainOpenWithOptions(repoPath, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return Origin{}, fmt.Errorf("%w: %s", ErrNotGitRepo, repoPath)
		}
		return Origin{}, fmt.Errorf("open repository: %w", err)
	}

	remote, err := repo.Remote(remoteName)
	if err != nil {
		if errors.Is(err, gogit.ErrRemoteNotFound) {
			return Origin{}, fmt.Errorf("%w: %s", ErrNoRemote, remoteName)
		}
		return Origin{}, fmt.Errorf("read remote %s: %w", remoteName, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return Origin{}, fmt.Errorf("%w: %s has no URL", ErrNoRemote, remoteName)
	}
	return ParseOrigin(urls[0])
}
