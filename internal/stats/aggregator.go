package stats

import (
	"sort"
	"time"

	"github.com/audi70r/gitlog/internal/git"
)

// Aggregator processes commits and builds statistics. Commits must be fed in
// log order, newest first, for release grouping to be correct.
type Aggregator struct {
	summary  *Summary
	current  *Release
	timezone *time.Location
}

// NewAggregator creates a new statistics aggregator
func NewAggregator(tz *time.Location) *Aggregator {
	if tz == nil {
		tz = time.Local
	}
	return &Aggregator{
		summary:  NewSummary(),
		current:  &Release{},
		timezone: tz,
	}
}

// Aggregate is a shortcut for feeding a whole parse result
func Aggregate(commits []*git.Commit, tz *time.Location) *Summary {
	a := NewAggregator(tz)
	for _, c := range commits {
		a.ProcessCommit(c)
	}
	return a.Finalize()
}

// ProcessCommit adds a commit's data to the statistics
func (a *Aggregator) ProcessCommit(c *git.Commit) {
	a.summary.TotalCommits++

	// A tag starts a new release that owns this commit and older ones
	if tag := c.TagName(); tag != "" {
		a.closeRelease()
		a.current = &Release{Tag: tag, Date: c.Date}
	}

	release := a.current
	release.Commits = append(release.Commits, c)
	if c.Merge != nil {
		release.Merges = append(release.Merges, c.Merge)
		a.summary.TotalMerges++
	}
	for _, fix := range c.Fixes {
		release.Fixes = append(release.Fixes, ReleaseFix{Fix: fix, Commit: c.Hash})
		a.summary.TotalFixes++
	}

	// Author stats
	authorKey := c.Email
	author, ok := a.summary.Authors[authorKey]
	if !ok {
		author = NewAuthorStats(c.Author, c.Email)
		a.summary.Authors[authorKey] = author
		a.summary.TotalAuthors++
	}
	author.Commits++
	author.Fixes += len(c.Fixes)
	if c.Merge != nil {
		author.Merges++
	}

	if c.Stats != nil {
		release.Insertions += c.Insertions
		release.Deletions += c.Deletions
		author.Insertions += c.Insertions
		author.Deletions += c.Deletions
		a.summary.TotalInsertions += c.Insertions
		a.summary.TotalDeletions += c.Deletions
	}

	when, err := c.Time()
	if err != nil {
		return
	}
	if author.FirstCommit.IsZero() || when.Before(author.FirstCommit) {
		author.FirstCommit = when
	}
	if when.After(author.LastCommit) {
		author.LastCommit = when
	}

	// Daily activity
	local := when.In(a.timezone)
	a.summary.DailyActivity[local.Format(time.DateOnly)]++

	weekday := (int(local.Weekday()) + 6) % 7
	a.summary.HourlyActivity[weekday][local.Hour()]++
}

// closeRelease keeps the current release unless it is empty unreleased work
func (a *Aggregator) closeRelease() {
	if a.current.Tag != "" || len(a.current.Commits) > 0 {
		a.summary.Releases = append(a.summary.Releases, a.current)
	}
}

// Finalize closes the last release and returns the summary. The aggregator
// must not be used afterwards.
func (a *Aggregator) Finalize() *Summary {
	a.closeRelease()
	a.current = &Release{}
	return a.summary
}

// GetLeaderboard returns authors sorted by the given criteria
func (s *Summary) GetLeaderboard(sortBy string, ascending bool) []*AuthorStats {
	authors := make([]*AuthorStats, 0, len(s.Authors))
	for _, a := range s.Authors {
		authors = append(authors, a)
	}

	sort.Slice(authors, func(i, j int) bool {
		var cmp bool
		switch sortBy {
		case "name":
			cmp = authors[i].Name < authors[j].Name
		case "commits":
			cmp = authors[i].Commits < authors[j].Commits
		case "merges":
			cmp = authors[i].Merges < authors[j].Merges
		case "insertions":
			cmp = authors[i].Insertions < authors[j].Insertions
		case "deletions":
			cmp = authors[i].Deletions < authors[j].Deletions
		case "net":
			cmp = (authors[i].Insertions - authors[i].Deletions) <
				(authors[j].Insertions - authors[j].Deletions)
		default:
			cmp = authors[i].Commits < authors[j].Commits
		}
		if ascending {
			return cmp
		}
		return !cmp
	})

	return authors
}

// GetMerges returns every merge, newest first
func (s *Summary) GetMerges() []*git.Merge {
	var merges []*git.Merge
	for _, r := range s.Releases {
		merges = append(merges, r.Merges...)
	}
	return merges
}

// GetHeatmap returns the weekday/hour matrix and its largest cell
func (s *Summary) GetHeatmap() *HeatmapData {
	data := &HeatmapData{Matrix: s.HourlyActivity}
	for day := 0; day < 7; day++ {
		for hour := 0; hour < 24; hour++ {
			if data.Matrix[day][hour] > data.MaxValue {
				data.MaxValue = data.Matrix[day][hour]
			}
		}
	}
	return data
}

// GetTimeline returns daily commit data with rolling average
func (s *Summary) GetTimeline(windowDays int) *TimelineData {
	if len(s.DailyActivity) == 0 {
		return &TimelineData{}
	}
	if windowDays <= 0 {
		windowDays = 1
	}

	// Get sorted dates
	dates := make([]string, 0, len(s.DailyActivity))
	for d := range s.DailyActivity {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	startDate, _ := time.Parse(time.DateOnly, dates[0])
	endDate, _ := time.Parse(time.DateOnly, dates[len(dates)-1])

	// Fill in all dates in range
	var labels []string
	var values []int
	for d := startDate; !d.After(endDate); d = d.AddDate(0, 0, 1) {
		dateStr := d.Format(time.DateOnly)
		labels = append(labels, dateStr)
		values = append(values, s.DailyActivity[dateStr])
	}

	rollingAvg := make([]float64, len(values))
	for i := range values {
		start := i - windowDays + 1
		if start < 0 {
			start = 0
		}
		sum := 0
		for j := start; j <= i; j++ {
			sum += values[j]
		}
		rollingAvg[i] = float64(sum) / float64(i-start+1)
	}

	return &TimelineData{
		Period:     "day",
		Labels:     labels,
		Values:     values,
		RollingAvg: rollingAvg,
	}
}
