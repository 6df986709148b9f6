package views

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/audi70r/gitlog/internal/stats"
	"github.com/audi70r/gitlog/internal/ui/components"
	"github.com/audi70r/gitlog/internal/util"
)

var releaseColumns = []string{"Release", "Date", "Commits", "Merges", "Fixes", "Insertions", "Deletions"}

// ReleasesView lists releases and previews the changelog entry of the
// selected one
type ReleasesView struct {
	root     *tview.Flex
	table    *tview.Table
	detail   *tview.TextView
	info     *tview.TextView
	releases []*stats.Release
}

// NewReleasesView creates a new releases view
func NewReleasesView() *ReleasesView {
	v := &ReleasesView{}
	v.setup()
	return v
}

func (v *ReleasesView) setup() {
	v.table = tview.NewTable().
		SetSelectable(true, false).
		SetFixed(1, 0).
		SetSeparator(' ')

	v.detail = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetTextAlign(tview.AlignLeft)
	v.detail.SetBorder(true).SetTitle(" Release Notes ")

	v.info = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	v.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(v.table, 0, 1, true).
		AddItem(v.detail, 0, 1, false).
		AddItem(v.info, 1, 0, false)

	v.table.SetSelectionChangedFunc(func(row, column int) {
		if row >= 1 && row <= len(v.releases) {
			v.detail.SetText(FormatReleaseNotes(v.releases[row-1]))
			v.detail.ScrollToBeginning()
		}
	})

	v.renderHeader()
}

func (v *ReleasesView) renderHeader() {
	for col, name := range releaseColumns {
		v.table.SetCell(0, col, tview.NewTableCell(name).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false).
			SetAttributes(tcell.AttrBold))
	}
}

// Refresh updates the view with new data
func (v *ReleasesView) Refresh(summary *stats.Summary) {
	v.releases = summary.Releases

	for row := v.table.GetRowCount() - 1; row > 0; row-- {
		v.table.RemoveRow(row)
	}

	sizes := make([]int, 0, len(summary.Releases))
	for i, r := range summary.Releases {
		row := i + 1

		titleColor := tcell.ColorGreen
		if r.Tag == "" {
			titleColor = tcell.ColorGray
		}
		v.table.SetCell(row, 0, tview.NewTableCell(r.Title()).
			SetTextColor(titleColor).
			SetExpansion(1))
		v.table.SetCell(row, 1, tview.NewTableCell(releaseDate(r)).
			SetTextColor(tcell.ColorDarkGray))
		v.table.SetCell(row, 2, tview.NewTableCell(fmt.Sprintf("%d", len(r.Commits))).
			SetAlign(tview.AlignRight))
		v.table.SetCell(row, 3, tview.NewTableCell(fmt.Sprintf("%d", len(r.Merges))).
			SetTextColor(tcell.ColorAqua).
			SetAlign(tview.AlignRight))
		v.table.SetCell(row, 4, tview.NewTableCell(fmt.Sprintf("%d", len(r.Fixes))).
			SetAlign(tview.AlignRight))
		v.table.SetCell(row, 5, tview.NewTableCell(fmt.Sprintf("+%d", r.Insertions)).
			SetTextColor(tcell.ColorGreen).
			SetAlign(tview.AlignRight))
		v.table.SetCell(row, 6, tview.NewTableCell(fmt.Sprintf("-%d", r.Deletions)).
			SetTextColor(tcell.ColorRed).
			SetAlign(tview.AlignRight))

		sizes = append(sizes, len(r.Commits))
	}

	if len(summary.Releases) > 0 {
		v.table.Select(1, 0)
		v.detail.SetText(FormatReleaseNotes(summary.Releases[0]))
	} else {
		v.detail.SetText("[gray]No commits[-]")
	}

	// Sizes oldest to newest read left to right
	for i, j := 0, len(sizes)-1; i < j; i, j = i+1, j-1 {
		sizes[i], sizes[j] = sizes[j], sizes[i]
	}
	v.info.SetText(fmt.Sprintf("[yellow]%d[-] releases | commits per release %s",
		len(summary.Releases), components.RenderSparklineColored(sizes, 40, "green")))
}

// FormatReleaseNotes renders a release the way a changelog entry lists it:
// merged requests, fixed issues, then the remaining commits.
func FormatReleaseNotes(r *stats.Release) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "[::b]%s[-:-:-]", r.Title())
	if date := releaseDate(r); date != "" {
		fmt.Fprintf(&sb, "  [gray]%s[-]", date)
	}
	sb.WriteString("\n")

	if len(r.Merges) > 0 {
		sb.WriteString("\n[yellow]Merged[-]\n")
		for _, m := range r.Merges {
			fmt.Fprintf(&sb, "  - %s [aqua]#%s[-]\n", tview.Escape(m.Message), m.ID)
		}
	}

	if len(r.Fixes) > 0 {
		sb.WriteString("\n[yellow]Fixed[-]\n")
		for _, fix := range r.Fixes {
			fmt.Fprintf(&sb, "  - [aqua]#%s[-] %s\n", fix.ID, tview.Escape(fix.Href))
		}
	}

	var plain []string
	for _, c := range r.Commits {
		if c.Merge == nil && len(c.Fixes) == 0 {
			plain = append(plain, fmt.Sprintf("  - %s [gray]%s[-]", tview.Escape(c.Subject), c.ShortHash))
		}
	}
	if len(plain) > 0 {
		sb.WriteString("\n[yellow]Commits[-]\n")
		sb.WriteString(strings.Join(plain, "\n"))
		sb.WriteString("\n")
	}

	return sb.String()
}

func releaseDate(r *stats.Release) string {
	if r.Date == "" {
		return ""
	}
	when, err := util.ParseDate(r.Date)
	if err != nil {
		return r.Date
	}
	return util.NiceDate(when)
}

// Root returns the root primitive
func (v *ReleasesView) Root() tview.Primitive {
	return v.root
}

// GetFocusable returns the focusable component
func (v *ReleasesView) GetFocusable() tview.Primitive {
	return v.table
}
