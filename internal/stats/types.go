package stats

import (
	"time"

	"github.com/audi70r/gitlog/internal/git"
)

// Summary holds everything computed from one parsed log
type Summary struct {
	TotalCommits int `json:"total_commits"`
	TotalAuthors int `json:"total_authors"`
	TotalMerges  int `json:"total_merges"`
	TotalFixes   int `json:"total_fixes"`

	// Totals over commits that carried --shortstat output
	TotalInsertions int `json:"total_insertions"`
	TotalDeletions  int `json:"total_deletions"`

	// Author statistics keyed by email
	Authors map[string]*AuthorStats `json:"-"`

	// Newest first. The first entry is unreleased work when it has no tag.
	Releases []*Release `json:"releases"`

	// Time-based data
	DailyActivity  map[string]int `json:"-"` // "2024-01-15" -> count
	HourlyActivity [7][24]int     `json:"-"` // [weekday][hour], Monday first
}

// NewSummary creates an empty Summary
func NewSummary() *Summary {
	return &Summary{
		Authors:       make(map[string]*AuthorStats),
		DailyActivity: make(map[string]int),
	}
}

// AuthorStats holds statistics for a single author
type AuthorStats struct {
	Name        string
	Email       string
	Commits     int
	Merges      int
	Fixes       int
	Insertions  int
	Deletions   int
	FirstCommit time.Time
	LastCommit  time.Time
}

// NewAuthorStats creates a new AuthorStats
func NewAuthorStats(name, email string) *AuthorStats {
	return &AuthorStats{
		Name:  name,
		Email: email,
	}
}

// Release groups a tagged commit with the untagged commits before it
type Release struct {
	Tag        string        `json:"tag,omitempty"` // Empty for unreleased work
	Date       string        `json:"date,omitempty"`
	Commits    []*git.Commit `json:"commits"`
	Merges     []*git.Merge  `json:"merges,omitempty"`
	Fixes      []ReleaseFix  `json:"fixes,omitempty"`
	Insertions int           `json:"insertions"`
	Deletions  int           `json:"deletions"`
}

// ReleaseFix is an issue reference together with the commit that made it
type ReleaseFix struct {
	git.Fix
	Commit string `json:"commit"`
}

// Title returns the tag, or "Unreleased"
func (r *Release) Title() string {
	if r.Tag == "" {
		return "Unreleased"
	}
	return r.Tag
}

// HeatmapData holds weekday/hour commit counts
type HeatmapData struct {
	Matrix   [7][24]int // [weekday][hour], Monday = 0
	MaxValue int
}

// TimelineData holds time-series commit data
type TimelineData struct {
	Period     string // "day"
	Labels     []string
	Values     []int
	RollingAvg []float64
}
