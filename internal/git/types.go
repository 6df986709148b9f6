package git

import "time"

// Origin identifies the hosting service a repository is published on
type Origin struct {
	Hostname string `json:"hostname"`
	URL      string `json:"url"`
}

// Commit represents a single parsed git commit
type Commit struct {
	Hash      string  `json:"hash"`
	ShortHash string  `json:"shorthash"`
	Author    string  `json:"author"`
	Email     string  `json:"email"`
	Date      string  `json:"date"`
	Tag       *string `json:"tag,omitempty"`
	Subject   string  `json:"subject"`
	Message   string  `json:"message"`
	Fixes     []Fix   `json:"fixes,omitempty"`
	Merge     *Merge  `json:"merge,omitempty"`
	Href      string  `json:"href"`

	// Nil when git printed no --shortstat line for the commit.
	*Stats
}

// Stats holds the --shortstat summary of a commit
type Stats struct {
	Files      int `json:"files"`
	Insertions int `json:"insertions"`
	Deletions  int `json:"deletions"`
}

// Fix is an issue reference found in a commit message
type Fix struct {
	ID   string `json:"id"`
	Href string `json:"href"`
}

// Merge describes the pull or merge request a commit came from
type Merge struct {
	Style   MergeStyle `json:"-"`
	ID      string     `json:"id"`
	Message string     `json:"message"`
	Href    string     `json:"href"`
}

// Options tune how commits are parsed. Zero values select the defaults.
type Options struct {
	// StartingCommit truncates the result after the first commit whose hash
	// starts with this prefix.
	StartingCommit string
	// VersionPattern replaces the default v<major>.<minor>.<patch> tag pattern.
	// It should have three capture groups.
	VersionPattern string
	// IssuePattern replaces the default fix-reference pattern.
	IssuePattern string
	// IssueURL is a link template for issues, with an {id} placeholder.
	IssueURL string
	// MergeURL is a link template for merge requests, with an {id} placeholder.
	MergeURL string
}

// TagName returns the normalized tag or an empty string
func (c *Commit) TagName() string {
	if c.Tag == nil {
		return ""
	}
	return *c.Tag
}

// Time parses the ISO-8601 author date
func (c *Commit) Time() (time.Time, error) {
	return time.Parse(time.RFC3339, c.Date)
}

// ScanProgress reports log fetching and parsing progress
type ScanProgress struct {
	CommitsParsed int
	TotalEstimate int
	CurrentHash   string
	Done          bool
}
