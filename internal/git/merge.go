package git

import (
	"fmt"
	"regexp"
	"strings"
)

// MergeStyle identifies which hosting convention a merge commit follows
type MergeStyle int

const (
	// GitHubMerge is a regular "Merge pull request #N from ..." commit.
	GitHubMerge MergeStyle = iota
	// GitHubSquash is a squashed pull request with a "(#N)" subject suffix.
	GitHubSquash
	// BitbucketMerge is a "Merged in ... (pull request #N)" commit.
	BitbucketMerge
	// GitLabMerge is a merge commit trailed by "See merge request !N".
	GitLabMerge
)

var mergeStyleNames = map[MergeStyle]string{
	GitHubMerge:    "github",
	GitHubSquash:   "github-squash",
	BitbucketMerge: "bitbucket",
	GitLabMerge:    "gitlab",
}

func (s MergeStyle) String() string {
	if name, ok := mergeStyleNames[s]; ok {
		return name
	}
	return fmt.Sprintf("MergeStyle(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler
func (s MergeStyle) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *MergeStyle) UnmarshalText(text []byte) error {
	style, err := ParseMergeStyle(string(text))
	if err != nil {
		return err
	}
	*s = style
	return nil
}

// ParseMergeStyle converts a style name back to a MergeStyle
func ParseMergeStyle(name string) (MergeStyle, error) {
	for style, n := range mergeStyleNames {
		if n == name {
			return style, nil
		}
	}
	return 0, fmt.Errorf("unknown merge style %q", name)
}

type mergeRule struct {
	style   MergeStyle
	pattern *regexp.Regexp
}

// Tried in order; the first match wins.
var mergeRules = []mergeRule{
	{GitHubMerge, regexp.MustCompile(`Merge pull request #(\d+) from .+\n\n(.+)`)},
	{GitHubSquash, regexp.MustCompile(`^(.+) \(#(\d+)\)(?:$|\n\n)`)},
	{BitbucketMerge, regexp.MustCompile(`Merged in .+ \(pull request #(\d+)\)\n\n(.+)`)},
	{GitLabMerge, regexp.MustCompile(`Merge branch .+ into .+\n\n(.+)(?s:.+)See merge request !(\d+)`)},
}

var numeric = regexp.MustCompile(`^\d+$`)

// DetectMerge returns merge details when message follows one of the known
// merge conventions, or nil. mergeURL is an optional link template with an
// {id} placeholder.
func DetectMerge(message string, origin Origin, mergeURL string) *Merge {
	for _, rule := range mergeRules {
		match := rule.pattern.FindStringSubmatch(message)
		if match == nil {
			continue
		}

		// Either group may hold the number depending on the convention.
		id, text := match[2], match[1]
		if numeric.MatchString(match[1]) {
			id, text = match[1], match[2]
		}

		return &Merge{
			Style:   rule.style,
			ID:      id,
			Message: text,
			Href:    mergeLink(id, origin, mergeURL),
		}
	}
	return nil
}

func mergeLink(id string, origin Origin, mergeURL string) string {
	if mergeURL != "" {
		return strings.ReplaceAll(mergeURL, "{id}", id)
	}
	switch origin.Hostname {
	case "bitbucket.org":
		return origin.URL + "/pull-requests/" + id
	case "gitlab.com":
		return origin.URL + "/merge_requests/" + id
	default:
		return origin.URL + "/pull/" + id
	}
}
