package git

import "errors"

var (
	// ErrMalformedCommit indicates a commit block does not have the six-field
	// shape produced by LogFormat. The log emitter changed format.
	ErrMalformedCommit = errors.New("malformed commit block")

	// ErrStartingCommitNotFound indicates no parsed commit matches the
	// configured starting commit prefix.
	ErrStartingCommitNotFound = errors.New("starting commit was not found")

	// ErrInvalidPattern indicates a version or issue pattern failed to compile.
	ErrInvalidPattern = errors.New("invalid pattern")

	// ErrNotGitRepo indicates the directory is not a git repository.
	ErrNotGitRepo = errors.New("not a git repository")

	// ErrNoRemote indicates the repository has no usable remote to build links from.
	ErrNoRemote = errors.New("no remote configured")
)
