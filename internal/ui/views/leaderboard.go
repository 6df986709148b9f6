package views

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/audi70r/gitlog/internal/stats"
)

// leaderboardColumns pairs each header with its GetLeaderboard sort key.
// An empty key marks a column that cannot be sorted on.
var leaderboardColumns = []struct {
	title  string
	sortBy string
}{
	{"#", ""},
	{"Author", "name"},
	{"Commits", "commits"},
	{"Merges", "merges"},
	{"Fixes", ""},
	{"Insertions", "insertions"},
	{"Deletions", "deletions"},
	{"Net", "net"},
}

// LeaderboardView displays author statistics
type LeaderboardView struct {
	root       *tview.Flex
	table      *tview.Table
	info       *tview.TextView
	sortCol    int
	sortAsc    bool
	maxAuthors int
}

// NewLeaderboardView creates a new leaderboard view. maxAuthors <= 0 shows
// every author.
func NewLeaderboardView(maxAuthors int) *LeaderboardView {
	v := &LeaderboardView{
		sortCol:    2, // Default sort by commits
		maxAuthors: maxAuthors,
	}
	v.setup()
	return v
}

func (v *LeaderboardView) setup() {
	v.table = tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0).
		SetSeparator(' ')

	v.info = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	v.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(v.table, 0, 1, true).
		AddItem(v.info, 1, 0, false)

	v.renderHeader()
}

func (v *LeaderboardView) renderHeader() {
	for col, c := range leaderboardColumns {
		cell := tview.NewTableCell(c.title).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false).
			SetAttributes(tcell.AttrBold)

		if col == v.sortCol {
			arrow := "▼"
			if v.sortAsc {
				arrow = "▲"
			}
			cell.SetText(c.title + arrow)
		}

		v.table.SetCell(0, col, cell)
	}
}

// Refresh updates the view with new data
func (v *LeaderboardView) Refresh(summary *stats.Summary) {
	// Clear existing data rows
	for row := v.table.GetRowCount() - 1; row > 0; row-- {
		v.table.RemoveRow(row)
	}

	authors := summary.GetLeaderboard(leaderboardColumns[v.sortCol].sortBy, v.sortAsc)
	total := len(authors)
	if v.maxAuthors > 0 && len(authors) > v.maxAuthors {
		authors = authors[:v.maxAuthors]
	}

	for i, author := range authors {
		row := i + 1
		net := author.Insertions - author.Deletions

		v.table.SetCell(row, 0, tview.NewTableCell(fmt.Sprintf("%d", i+1)).
			SetTextColor(tcell.ColorDarkGray).
			SetAlign(tview.AlignRight))

		v.table.SetCell(row, 1, tview.NewTableCell(tview.Escape(author.Name)).
			SetExpansion(1))

		v.table.SetCell(row, 2, tview.NewTableCell(fmt.Sprintf("%d", author.Commits)).
			SetAlign(tview.AlignRight))

		v.table.SetCell(row, 3, tview.NewTableCell(fmt.Sprintf("%d", author.Merges)).
			SetTextColor(tcell.ColorAqua).
			SetAlign(tview.AlignRight))

		v.table.SetCell(row, 4, tview.NewTableCell(fmt.Sprintf("%d", author.Fixes)).
			SetAlign(tview.AlignRight))

		v.table.SetCell(row, 5, tview.NewTableCell(fmt.Sprintf("+%d", author.Insertions)).
			SetTextColor(tcell.ColorGreen).
			SetAlign(tview.AlignRight))

		v.table.SetCell(row, 6, tview.NewTableCell(fmt.Sprintf("-%d", author.Deletions)).
			SetTextColor(tcell.ColorRed).
			SetAlign(tview.AlignRight))

		netColor := tcell.ColorWhite
		if net > 0 {
			netColor = tcell.ColorGreen
		} else if net < 0 {
			netColor = tcell.ColorRed
		}
		v.table.SetCell(row, 7, tview.NewTableCell(fmt.Sprintf("%+d", net)).
			SetTextColor(netColor).
			SetAlign(tview.AlignRight))
	}

	v.info.SetText(fmt.Sprintf("[yellow]%d[-] of %d authors | Sort: [green]%s[-] | [s] cycle column, [r] reverse",
		len(authors), total, leaderboardColumns[v.sortCol].title))

	v.renderHeader()
}

// CycleSortColumn moves to the next sortable column
func (v *LeaderboardView) CycleSortColumn() {
	for {
		v.sortCol = (v.sortCol + 1) % len(leaderboardColumns)
		if leaderboardColumns[v.sortCol].sortBy != "" {
			return
		}
	}
}

// ReverseSortOrder reverses the sort order
func (v *LeaderboardView) ReverseSortOrder() {
	v.sortAsc = !v.sortAsc
}

// Root returns the root primitive
func (v *LeaderboardView) Root() tview.Primitive {
	return v.root
}

// GetFocusable returns the focusable component
func (v *LeaderboardView) GetFocusable() tview.Primitive {
	return v.table
}
