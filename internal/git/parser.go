package git

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/audi70r/gitlog/internal/util"
)

const (
	commitSeparator  = "__AUTO_CHANGELOG_COMMIT_SEPARATOR__"
	messageSeparator = "__AUTO_CHANGELOG_MESSAGE_SEPARATOR__"

	// LogFormat is the --pretty format the parser expects: hash, ref names,
	// ISO author date, author name, author email and raw body, framed by the
	// commit and message separators.
	LogFormat = commitSeparator + "%H%n%D%n%aI%n%an%n%ae%n%B" + messageSeparator

	tagPrefix = "tag: "
)

var (
	commitRegex  = regexp.MustCompile(`(.*)\n(.*)\n(.*)\n(.*)\n(.*)\n((?s).+)`)
	statsRegex   = regexp.MustCompile(`(\d+) files? changed(?:, (\d+) insertions?...)?(?:, (\d+) deletions?...)?`)
	subjectRegex = regexp.MustCompile(`[^\n]+`)

	defaultVersionRegex = regexp.MustCompile(`v(\d+)\.(\d+)\.(\d+)`)

	// Closing keywords as documented by GitHub, followed by #N or an issue URL.
	defaultFixRegex = regexp.MustCompile(`(?i)(?:close[sd]?|fixe?[sd]?|resolve[sd]?)\s(?:#(\d+)|(https?://.+?/(?:issues|pull|pull-requests|merge_requests)/(\d+)))`)
)

// patterns holds the compiled form of the pattern options
type patterns struct {
	version *regexp.Regexp
	fix     *regexp.Regexp
}

func compilePatterns(opts Options) (patterns, error) {
	p := patterns{version: defaultVersionRegex, fix: defaultFixRegex}

	if opts.VersionPattern != "" {
		re, err := regexp.Compile(opts.VersionPattern)
		if err != nil {
			return p, fmt.Errorf("%w: version pattern: %v", ErrInvalidPattern, err)
		}
		p.version = re
	}
	if opts.IssuePattern != "" {
		re, err := regexp.Compile(opts.IssuePattern)
		if err != nil {
			return p, fmt.Errorf("%w: issue pattern: %v", ErrInvalidPattern, err)
		}
		p.fix = re
	}
	return p, nil
}

// ParseCommits turns the output of `git log --shortstat --pretty=format:LogFormat`
// into commits, newest first. When opts.StartingCommit is set the result ends
// with the first commit whose hash starts with it.
func ParseCommits(log string, origin Origin, opts Options) ([]*Commit, error) {
	pats, err := compilePatterns(opts)
	if err != nil {
		return nil, err
	}

	blocks := splitBlocks(log)
	commits := make([]*Commit, 0, len(blocks))
	for i, block := range blocks {
		c, err := parseCommit(block, origin, pats, opts)
		if err != nil {
			return nil, fmt.Errorf("commit %d: %w", i, err)
		}
		commits = append(commits, c)
	}

	if opts.StartingCommit == "" {
		return commits, nil
	}
	for i, c := range commits {
		if strings.HasPrefix(c.Hash, opts.StartingCommit) {
			return commits[:i+1], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrStartingCommitNotFound, opts.StartingCommit)
}

// splitBlocks drops whatever precedes the first separator
func splitBlocks(log string) []string {
	parts := strings.Split(log, commitSeparator)
	return parts[1:]
}

func parseCommit(block string, origin Origin, pats patterns, opts Options) (*Commit, error) {
	match := commitRegex.FindStringSubmatch(block)
	if match == nil {
		return nil, ErrMalformedCommit
	}
	hash, refs, date, author, email, tail := match[1], match[2], match[3], match[4], match[5], match[6]

	message, stats, _ := strings.Cut(tail, messageSeparator)

	return &Commit{
		Hash:      hash,
		ShortHash: shortHash(hash),
		Author:    author,
		Email:     email,
		Date:      date,
		Tag:       parseTag(refs, pats.version),
		Subject:   parseSubject(message),
		Message:   strings.TrimSpace(message),
		Fixes:     parseFixes(message, origin, pats.fix, opts.IssueURL),
		Merge:     DetectMerge(message, origin, opts.MergeURL),
		Href:      commitLink(hash, origin),
		Stats:     parseStats(strings.TrimSpace(stats)),
	}, nil
}

func shortHash(hash string) string {
	if len(hash) > 7 {
		return hash[:7]
	}
	return hash
}

// parseTag normalizes the first "tag: " ref. A tag the version pattern does
// not match yields no tag at all.
func parseTag(refs string, version *regexp.Regexp) *string {
	if refs == "" {
		return nil
	}
	for _, ref := range strings.Split(refs, ", ") {
		if !strings.HasPrefix(ref, tagPrefix) {
			continue
		}

		parts := version.FindStringSubmatch(ref)
		if parts == nil {
			return nil
		}
		tag := fmt.Sprintf("v%d.%d.%d",
			util.ParseInt(group(parts, 1), 0),
			util.ParseInt(group(parts, 2), 0),
			util.ParseInt(group(parts, 3), 0))
		return &tag
	}
	return nil
}

func group(match []string, i int) string {
	if i < len(match) {
		return match[i]
	}
	return ""
}

// parseSubject returns the first non-empty line
func parseSubject(message string) string {
	return subjectRegex.FindString(message)
}

func parseStats(line string) *Stats {
	if line == "" {
		return nil
	}
	match := statsRegex.FindStringSubmatch(line)
	if match == nil {
		return nil
	}
	return &Stats{
		Files:      util.ParseInt(match[1], 0),
		Insertions: util.ParseInt(match[2], 0),
		Deletions:  util.ParseInt(match[3], 0),
	}
}

// parseFixes collects every issue reference in document order. It returns nil,
// not an empty slice, when there are none.
func parseFixes(message string, origin Origin, pattern *regexp.Regexp, issueURL string) []Fix {
	matches := pattern.FindAllStringSubmatch(message, -1)
	if len(matches) == 0 {
		return nil
	}

	fixes := make([]Fix, 0, len(matches))
	for _, match := range matches {
		id := fixID(match)
		fixes = append(fixes, Fix{
			ID:   id,
			Href: issueLink(match, id, origin, issueURL),
		})
	}
	return fixes
}

// fixID is the last non-empty submatch, which covers both the #N and the
// URL-embedded number shapes of the default pattern.
func fixID(match []string) string {
	for i := len(match) - 1; i >= 0; i-- {
		if match[i] != "" {
			return match[i]
		}
	}
	return ""
}

func issueLink(match []string, id string, origin Origin, issueURL string) string {
	if ref := group(match, 2); util.IsLink(ref) {
		return ref
	}
	if issueURL != "" {
		return strings.ReplaceAll(issueURL, "{id}", id)
	}
	return origin.URL + "/issues/" + id
}

func commitLink(hash string, origin Origin) string {
	if origin.Hostname == "bitbucket.org" {
		return origin.URL + "/commits/" + hash
	}
	return origin.URL + "/commit/" + hash
}
