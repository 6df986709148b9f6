package views

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/audi70r/gitlog/internal/git"
	"github.com/audi70r/gitlog/internal/stats"
)

var mergeColumns = []string{"#", "Request", "Style", "Message", "Link"}

// MergesView displays merged pull and merge requests
type MergesView struct {
	root    *tview.Flex
	summary *tview.TextView
	table   *tview.Table
	info    *tview.TextView
	sortCol int
	sortAsc bool
	merges  []*git.Merge
}

// NewMergesView creates a new merges view
func NewMergesView() *MergesView {
	v := &MergesView{}
	v.setup()
	return v
}

func (v *MergesView) setup() {
	v.summary = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)
	v.summary.SetBorder(true).SetTitle(" Summary ")

	v.table = tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0).
		SetSeparator(' ')

	v.info = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	v.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(v.summary, 7, 0, false).
		AddItem(v.table, 0, 1, true).
		AddItem(v.info, 1, 0, false)

	v.renderHeader()
}

func (v *MergesView) renderHeader() {
	for col, name := range mergeColumns {
		cell := tview.NewTableCell(name).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false).
			SetAttributes(tcell.AttrBold)

		if col == v.sortCol {
			arrow := "▼"
			if v.sortAsc {
				arrow = "▲"
			}
			cell.SetText(name + arrow)
		}
		v.table.SetCell(0, col, cell)
	}
}

// Refresh updates the view with new data
func (v *MergesView) Refresh(summary *stats.Summary) {
	v.merges = summary.GetMerges()
	v.render()
}

func (v *MergesView) render() {
	for row := v.table.GetRowCount() - 1; row > 0; row-- {
		v.table.RemoveRow(row)
	}
	v.renderHeader()

	byStyle := map[git.MergeStyle]int{}
	for _, m := range v.merges {
		byStyle[m.Style]++
	}
	v.summary.SetText(fmt.Sprintf(
		"  [cyan]Total Merges:[-]      %d\n"+
			"  [cyan]GitHub:[-]            %d merged, %d squashed\n"+
			"  [cyan]Bitbucket:[-]         %d\n"+
			"  [cyan]GitLab:[-]            %d\n",
		len(v.merges),
		byStyle[git.GitHubMerge], byStyle[git.GitHubSquash],
		byStyle[git.BitbucketMerge],
		byStyle[git.GitLabMerge],
	))

	merges := SortMerges(v.merges, v.sortCol, v.sortAsc)
	for i, m := range merges {
		row := i + 1

		v.table.SetCell(row, 0, tview.NewTableCell(fmt.Sprintf("%d", i+1)).
			SetTextColor(tcell.ColorDarkGray).
			SetAlign(tview.AlignRight))

		prefix := "#"
		if m.Style == git.GitLabMerge {
			prefix = "!"
		}
		v.table.SetCell(row, 1, tview.NewTableCell(prefix+m.ID).
			SetTextColor(tcell.ColorAqua))

		v.table.SetCell(row, 2, tview.NewTableCell(m.Style.String()))

		v.table.SetCell(row, 3, tview.NewTableCell(tview.Escape(truncate(m.Message, 60))).
			SetExpansion(1))

		v.table.SetCell(row, 4, tview.NewTableCell(tview.Escape(m.Href)).
			SetTextColor(tcell.ColorDarkGray))
	}

	v.info.SetText(fmt.Sprintf("[yellow]%d[-] merges | [s] sort, [r] reverse", len(merges)))
}

// SortMerges returns a sorted copy. Column 0 keeps log order, 1 sorts by
// request number, 2 by style and 3 by message.
func SortMerges(merges []*git.Merge, col int, asc bool) []*git.Merge {
	sorted := make([]*git.Merge, len(merges))
	copy(sorted, merges)

	less := func(i, j int) bool { return i < j }
	switch col {
	case 1:
		less = func(i, j int) bool { return requestNumber(sorted[i]) < requestNumber(sorted[j]) }
	case 2:
		less = func(i, j int) bool { return sorted[i].Style < sorted[j].Style }
	case 3:
		less = func(i, j int) bool { return sorted[i].Message < sorted[j].Message }
	default:
		// Log order is newest first
		if asc {
			for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
				sorted[i], sorted[j] = sorted[j], sorted[i]
			}
		}
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if asc {
			return less(i, j)
		}
		return less(j, i)
	})
	return sorted
}

func requestNumber(m *git.Merge) int {
	n, err := strconv.Atoi(m.ID)
	if err != nil {
		return -1
	}
	return n
}

// CycleSortColumn cycles through sort columns
func (v *MergesView) CycleSortColumn() {
	v.sortCol = (v.sortCol + 1) % (len(mergeColumns) - 1) // Link is not sortable
	v.render()
}

// ReverseSortOrder reverses the sort order
func (v *MergesView) ReverseSortOrder() {
	v.sortAsc = !v.sortAsc
	v.render()
}

// Root returns the root primitive
func (v *MergesView) Root() tview.Primitive {
	return v.root
}

// GetFocusable returns the focusable component
func (v *MergesView) GetFocusable() tview.Primitive {
	return v.table
}

// truncate shortens s to at most width runes, ending in "..." when cut.
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}
