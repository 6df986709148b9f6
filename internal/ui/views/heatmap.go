package views

import (
	"fmt"
	"time"

	"github.com/rivo/tview"

	"github.com/audi70r/gitlog/internal/stats"
	"github.com/audi70r/gitlog/internal/ui/components"
)

var weekdayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// HeatmapView displays when commits were authored
type HeatmapView struct {
	root *tview.Flex
	text *tview.TextView
}

// NewHeatmapView creates a new heatmap view
func NewHeatmapView() *HeatmapView {
	v := &HeatmapView{}
	v.setup()
	return v
}

func (v *HeatmapView) setup() {
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

// Refresh updates the view with new data. tz only labels the view; the
// summary was already bucketed in it.
func (v *HeatmapView) Refresh(summary *stats.Summary, tz *time.Location) {
	if tz == nil {
		tz = time.Local
	}
	heatmap := summary.GetHeatmap()
	peakDay, peakHour, totalCommits := components.GetHeatmapStats(heatmap.Matrix)

	if totalCommits == 0 {
		v.text.SetText("[yellow]No dated commits[-]")
		return
	}

	weekdayTotals := make([]int, 7)
	var workHours int
	for day := 0; day < 7; day++ {
		for hour := 0; hour < 24; hour++ {
			commits := heatmap.Matrix[day][hour]
			weekdayTotals[day] += commits
			if day < 5 && hour >= 9 && hour < 18 {
				workHours += commits
			}
		}
	}

	busiestDay := 0
	for i, total := range weekdayTotals {
		if total > weekdayTotals[busiestDay] {
			busiestDay = i
		}
	}

	workPct := float64(workHours) / float64(totalCommits) * 100

	content := fmt.Sprintf(`[::b]Commit Hours[-:-:-]

  Timezone: [cyan]%s[-]

%s

%s

%s

  Peak Time:          [green]%s[-] at [green]%02d:00[-] ([cyan]%d[-] commits)
  Busiest Day:        [green]%s[-] ([cyan]%d[-] commits total)
  Work Hours (Mon-Fri, 9-18):   [cyan]%d[-] commits (%.1f%%)
  Off Hours:                    [cyan]%d[-] commits (%.1f%%)
`,
		tz.String(),
		rule,
		components.RenderHeatmap(heatmap.Matrix, heatmap.MaxValue),
		rule,
		weekdayNames[peakDay], peakHour, heatmap.Matrix[peakDay][peakHour],
		weekdayNames[busiestDay], weekdayTotals[busiestDay],
		workHours, workPct,
		totalCommits-workHours, 100-workPct,
	)

	v.text.SetText(content)
}

// Root returns the root primitive
func (v *HeatmapView) Root() tview.Primitive {
	return v.root
}
