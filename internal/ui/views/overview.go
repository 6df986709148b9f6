package views

import (
	"fmt"
	"strings"

	"github.com/rivo/tview"

	"github.com/audi70r/gitlog/internal/git"
	"github.com/audi70r/gitlog/internal/stats"
)

// OverviewView summarizes the whole parsed history
type OverviewView struct {
	root *tview.Flex
	text *tview.TextView
}

// NewOverviewView creates a new overview view
func NewOverviewView() *OverviewView {
	v := &OverviewView{}
	v.setup()
	return v
}

func (v *OverviewView) setup() {
	v.text = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignLeft)

	v.root = tview.NewFlex().
		AddItem(nil, 2, 0, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(nil, 1, 0, false).
			AddItem(v.text, 0, 1, false).
			AddItem(nil, 1, 0, false), 0, 1, false).
		AddItem(nil, 2, 0, false)
}

// Refresh updates the view with new data
func (v *OverviewView) Refresh(summary *stats.Summary, origin git.Origin) {
	totalChanges := summary.TotalInsertions + summary.TotalDeletions
	var addPct, delPct float64
	if totalChanges > 0 {
		addPct = float64(summary.TotalInsertions) / float64(totalChanges) * 100
		delPct = 100 - addPct
	}

	barWidth := 50
	addBar := int(addPct / 100 * float64(barWidth))
	delBar := barWidth - addBar
	if totalChanges == 0 {
		delBar = 0
	}

	tagged := 0
	for _, r := range summary.Releases {
		if r.Tag != "" {
			tagged++
		}
	}
	latest := "[gray]none[-]"
	for _, r := range summary.Releases {
		if r.Tag != "" {
			latest = "[green]" + r.Tag + "[-]"
			break
		}
	}

	content := fmt.Sprintf(`[::b]History Overview[-:-:-]

  Origin:             [cyan]%s[-]

%s

  [::b]Summary[-:-:-]

  Total Commits:      [cyan]%d[-]
  Total Authors:      [cyan]%d[-]
  Releases:           [cyan]%d[-] (latest %s)
  Merged Requests:    [cyan]%d[-]
  Issue References:   [cyan]%d[-]

%s

  [::b]Lines Changed[-:-:-]

  [green]+ Insertions:[-]       [green]%s[-] lines
  [red]- Deletions:[-]        [red]%s[-] lines
  [white]= Total Changes:[-]    [white]%s[-] lines

  [green]%s[-][red]%s[-]

  [green]%.1f%% insertions[-]  |  [red]%.1f%% deletions[-]

%s

  Net Change:         [%s]%+d[-] lines
  Avg per Commit:     [cyan]%.1f[-] lines
  Avg per Author:     [cyan]%.1f[-] lines
`,
		tview.Escape(origin.URL),
		rule,
		summary.TotalCommits,
		summary.TotalAuthors,
		tagged, latest,
		summary.TotalMerges,
		summary.TotalFixes,
		rule,
		formatNumber(summary.TotalInsertions),
		formatNumber(summary.TotalDeletions),
		formatNumber(totalChanges),
		strings.Repeat("█", addBar),
		strings.Repeat("█", delBar),
		addPct,
		delPct,
		rule,
		netColor(summary.TotalInsertions-summary.TotalDeletions),
		summary.TotalInsertions-summary.TotalDeletions,
		safeDivide(float64(totalChanges), float64(summary.TotalCommits)),
		safeDivide(float64(totalChanges), float64(summary.TotalAuthors)),
	)

	v.text.SetText(content)
}

func formatNumber(n int) string {
	if n >= 1000000 {
		return fmt.Sprintf("%.1fM", float64(n)/1000000)
	}
	if n >= 1000 {
		return fmt.Sprintf("%.1fK", float64(n)/1000)
	}
	return fmt.Sprintf("%d", n)
}

func netColor(net int) string {
	if net > 0 {
		return "green"
	} else if net < 0 {
		return "red"
	}
	return "white"
}

func safeDivide(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

// Root returns the root primitive
func (v *OverviewView) Root() tview.Primitive {
	return v.root
}
