package views

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/audi70r/gitlog/internal/git"
	"github.com/audi70r/gitlog/internal/stats"
)

func tagPtr(s string) *string { return &s }

func sampleCommits() []*git.Commit {
	return []*git.Commit{
		{
			Hash: "e5e5e5e5e5", ShortHash: "e5e5e5e", Author: "Ann", Email: "ann@example.com",
			Date: "2024-03-05T10:00:00Z", Subject: "Tidy up", Message: "Tidy up",
			Href: "https://github.com/o/r/commit/e5e5e5e5e5",
		},
		{
			Hash: "d4d4d4d4d4", ShortHash: "d4d4d4d", Author: "Bob", Email: "bob@example.com",
			Date: "2024-03-04T10:00:00Z", Tag: tagPtr("v1.1.0"),
			Subject: "Merge pull request #12 from o/feature",
			Message: "Merge pull request #12 from o/feature\n\nAdd [feature]",
			Href:    "https://github.com/o/r/commit/d4d4d4d4d4",
			Merge: &git.Merge{
				Style: git.GitHubMerge, ID: "12", Message: "Add [feature]",
				Href: "https://github.com/o/r/pull/12",
			},
			Stats: &git.Stats{Files: 2, Insertions: 10, Deletions: 3},
		},
		{
			Hash: "c3c3c3c3c3", ShortHash: "c3c3c3c", Author: "Ann", Email: "ann@example.com",
			Date: "2024-03-02T10:00:00Z", Subject: "Fix crash", Message: "Fix crash\n\nFixes #7",
			Fixes: []git.Fix{{ID: "7", Href: "https://github.com/o/r/issues/7"}},
		},
		{
			Hash: "a1a1a1a1a1", ShortHash: "a1a1a1a", Author: "Bob", Email: "bob@example.com",
			Date: "2024-03-01T10:00:00Z", Tag: tagPtr("v1.0.0"), Subject: "Initial commit",
			Merge: &git.Merge{Style: git.GitLabMerge, ID: "3", Message: "Bootstrap"},
		},
	}
}

func TestFormatCommitDetail(t *testing.T) {
	commits := sampleCommits()

	merged := FormatCommitDetail(commits[1])
	assert.Contains(t, merged, "d4d4d4d4d4")
	assert.Contains(t, merged, "Bob <bob@example.com>")
	assert.Contains(t, merged, "[green]v1.1.0[-]")
	assert.Contains(t, merged, "2 files, [green]+10[-] [red]-3[-]")
	assert.Contains(t, merged, "(github)")
	// Brackets from the message are escaped for tview
	assert.Contains(t, merged, "#12 Add [feature[]")

	plain := FormatCommitDetail(commits[0])
	assert.NotContains(t, plain, "Tag:")
	assert.NotContains(t, plain, "Changes:")
	assert.NotContains(t, plain, "Merge")
	assert.NotContains(t, plain, "Fixes")

	fixed := FormatCommitDetail(commits[2])
	assert.Contains(t, fixed, "#7 https://github.com/o/r/issues/7")
}

func TestFormatCommitDetail_UnparseableDate(t *testing.T) {
	c := &git.Commit{Hash: "abc", Date: "someday"}
	assert.Contains(t, FormatCommitDetail(c), "someday")
}

func TestFormatReleaseNotes(t *testing.T) {
	summary := stats.Aggregate(sampleCommits(), time.UTC)
	require.Len(t, summary.Releases, 3)

	unreleased := FormatReleaseNotes(summary.Releases[0])
	assert.Contains(t, unreleased, "Unreleased")
	assert.Contains(t, unreleased, "Tidy up [gray]e5e5e5e[-]")
	assert.NotContains(t, unreleased, "Merged")

	v11 := FormatReleaseNotes(summary.Releases[1])
	assert.Contains(t, v11, "[::b]v1.1.0[-:-:-]")
	assert.Contains(t, v11, "Add [feature[] [aqua]#12[-]")
	assert.Contains(t, v11, "[aqua]#7[-] https://github.com/o/r/issues/7")
	// Commits that appear as merges or fixes are not repeated
	assert.NotContains(t, v11, "Fix crash")
}

func TestSortMerges(t *testing.T) {
	merges := []*git.Merge{
		{Style: git.GitLabMerge, ID: "3", Message: "b"},
		{Style: git.GitHubMerge, ID: "12", Message: "c"},
		{Style: git.GitHubSquash, ID: "7", Message: "a"},
	}

	ids := func(ms []*git.Merge) []string {
		var out []string
		for _, m := range ms {
			out = append(out, m.ID)
		}
		return out
	}

	assert.Equal(t, []string{"3", "12", "7"}, ids(SortMerges(merges, 0, false)))
	assert.Equal(t, []string{"7", "12", "3"}, ids(SortMerges(merges, 0, true)))
	assert.Equal(t, []string{"12", "7", "3"}, ids(SortMerges(merges, 1, false)))
	assert.Equal(t, []string{"3", "7", "12"}, ids(SortMerges(merges, 1, true)))
	assert.Equal(t, []string{"12", "7", "3"}, ids(SortMerges(merges, 2, true)))
	assert.Equal(t, []string{"7", "3", "12"}, ids(SortMerges(merges, 3, true)))

	// Input is left untouched
	assert.Equal(t, "3", merges[0].ID)
}

func TestAggregateWeekly(t *testing.T) {
	labels := []string{"2024-03-01", "2024-03-02", "2024-03-03", "2024-03-04", "2024-03-05"}
	values := []int{1, 2, 3, 4, 5}

	// Friday to Sunday fall in one ISO week, Monday starts the next
	assert.Equal(t, []int{6, 9}, aggregateWeekly(labels, values))
	assert.Nil(t, aggregateWeekly(nil, nil))
}

func TestTrendIndicator(t *testing.T) {
	assert.Contains(t, trendIndicator([]float64{1, 2, 3}, 7), "Insufficient")
	assert.Contains(t, trendIndicator([]float64{1, 1, 2, 2}, 2), "increasing")
	assert.Contains(t, trendIndicator([]float64{2, 2, 1, 1}, 2), "decreasing")
	assert.Contains(t, trendIndicator([]float64{1, 1, 1, 1}, 2), "stable")
}

func TestRenderProgressBar(t *testing.T) {
	assert.Contains(t, RenderProgressBar(0, 0, 4), "░░░░")
	assert.Contains(t, RenderProgressBar(1, 2, 4), "██░░")
	assert.Contains(t, RenderProgressBar(1, 2, 4), "50.0%")
	assert.Contains(t, RenderProgressBar(5, 2, 4), "████")
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "999", formatNumber(999))
	assert.Equal(t, "1.5K", formatNumber(1500))
	assert.Equal(t, "2.0M", formatNumber(2000000))
}

func TestLeaderboardView_Refresh(t *testing.T) {
	summary := stats.Aggregate(sampleCommits(), time.UTC)
	v := NewLeaderboardView(1)
	v.Refresh(summary)

	// Header plus the single allowed author
	assert.Equal(t, 2, v.table.GetRowCount())
	assert.Equal(t, "Commits▼", v.table.GetCell(0, 2).Text)

	v.CycleSortColumn()
	assert.Equal(t, "Merges", leaderboardColumns[v.sortCol].title)
	v.CycleSortColumn()
	assert.Equal(t, "Insertions", leaderboardColumns[v.sortCol].title)
	v.Refresh(summary)
	assert.Equal(t, "Bob", v.table.GetCell(1, 1).Text)
}

func TestReleasesView_Refresh(t *testing.T) {
	summary := stats.Aggregate(sampleCommits(), time.UTC)
	v := NewReleasesView()
	v.Refresh(summary)

	assert.Equal(t, 4, v.table.GetRowCount())
	assert.Equal(t, "Unreleased", v.table.GetCell(1, 0).Text)
	assert.Equal(t, "v1.1.0", v.table.GetCell(2, 0).Text)
	assert.Equal(t, "2", v.table.GetCell(2, 2).Text)
}

func TestMergesView_Refresh(t *testing.T) {
	summary := stats.Aggregate(sampleCommits(), time.UTC)
	v := NewMergesView()
	v.Refresh(summary)

	assert.Equal(t, 3, v.table.GetRowCount())
	assert.Equal(t, "#12", v.table.GetCell(1, 1).Text)
	assert.Equal(t, "!3", v.table.GetCell(2, 1).Text)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijk", 10))

	cut := truncate("Übersetzung für Größenänderung", 10)
	assert.Equal(t, "Überset...", cut)
	assert.True(t, utf8.ValidString(cut))
}

func TestMergesView_RuneSafeMessage(t *testing.T) {
	summary := &stats.Summary{Releases: []*stats.Release{{
		Merges: []*git.Merge{{Style: git.GitHubMerge, ID: "1", Message: strings.Repeat("é", 70)}},
	}}}
	v := NewMergesView()
	v.Refresh(summary)

	text := v.table.GetCell(1, 3).Text
	assert.True(t, utf8.ValidString(text))
	assert.Equal(t, strings.Repeat("é", 57)+"...", text)
}
