package views

import (
	"fmt"
	"time"

	"github.com/rivo/tview"

	"github.com/audi70r/gitlog/internal/stats"
	"github.com/audi70r/gitlog/internal/ui/components"
)

const rule = "[yellow]━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━[-]"

// TimelineView displays commits over time
type TimelineView struct {
	root   *tview.Flex
	text   *tview.TextView
	window int
	width  int
}

// NewTimelineView creates a new timeline view. window is the rolling
// average length in days and width the sparkline width in cells.
func NewTimelineView(window, width int) *TimelineView {
	v := &TimelineView{window: window, width: width}
	v.setup()
	return v
}

func (v *TimelineView) setup() {
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
func (v *TimelineView) Refresh(summary *stats.Summary) {
	timeline := summary.GetTimeline(v.window)

	if len(timeline.Values) == 0 {
		v.text.SetText("[yellow]No dated commits[-]")
		return
	}

	var total, maxVal, peakIdx int
	minVal := timeline.Values[0]
	for i, val := range timeline.Values {
		total += val
		if val > maxVal {
			maxVal = val
			peakIdx = i
		}
		minVal = min(minVal, val)
	}
	avg := float64(total) / float64(len(timeline.Values))

	weekly := aggregateWeekly(timeline.Labels, timeline.Values)

	content := fmt.Sprintf(`[::b]Commits Over Time[-:-:-]

%s

  [::b]Daily Activity[-:-:-]

  %s

  %s to %s

%s

  [::b]Weekly Activity[-:-:-]

  %s

%s

  [::b]Statistics[-:-:-]

  Period:             [cyan]%d[-] days
  Total Commits:      [cyan]%d[-]
  Average per Day:    [cyan]%.2f[-]
  Peak Day:           [green]%d[-] commits on [green]%s[-]
  Quietest Day:       [red]%d[-] commits

%s

  [::b]%d-Day Rolling Average[-:-:-]

  Current:            [cyan]%.2f[-] commits/day
  Trend:              %s
`,
		rule,
		components.RenderSparklineColored(timeline.Values, v.width, "green"),
		timeline.Labels[0], timeline.Labels[len(timeline.Labels)-1],
		rule,
		components.RenderSparklineColored(weekly, v.width, "aqua"),
		rule,
		len(timeline.Values),
		total,
		avg,
		maxVal, timeline.Labels[peakIdx],
		minVal,
		rule,
		v.window,
		timeline.RollingAvg[len(timeline.RollingAvg)-1],
		trendIndicator(timeline.RollingAvg, v.window),
	)

	v.text.SetText(content)
}

// aggregateWeekly sums daily values per ISO week. labels are consecutive
// days, so weeks come out in order.
func aggregateWeekly(labels []string, values []int) []int {
	var result []int
	lastWeek := ""
	for i, label := range labels {
		day, err := time.Parse(time.DateOnly, label)
		if err != nil {
			continue
		}
		year, week := day.ISOWeek()
		key := fmt.Sprintf("%d-%02d", year, week)
		if key != lastWeek {
			result = append(result, 0)
			lastWeek = key
		}
		result[len(result)-1] += values[i]
	}
	return result
}

// trendIndicator compares the last window of the rolling average with the
// window before it.
func trendIndicator(rollingAvg []float64, window int) string {
	if window <= 0 || len(rollingAvg) < 2*window {
		return "[gray]Insufficient data[-]"
	}

	recent := rollingAvg[len(rollingAvg)-window:]
	previous := rollingAvg[len(rollingAvg)-2*window : len(rollingAvg)-window]

	var recentSum, prevSum float64
	for _, v := range recent {
		recentSum += v
	}
	for _, v := range previous {
		prevSum += v
	}

	recentAvg := recentSum / float64(window)
	prevAvg := prevSum / float64(window)

	pctChange := 0.0
	if prevAvg > 0 {
		pctChange = (recentAvg - prevAvg) / prevAvg * 100
	}

	if pctChange > 10 {
		return fmt.Sprintf("[green]↑ +%.1f%%[-] (increasing)", pctChange)
	} else if pctChange < -10 {
		return fmt.Sprintf("[red]↓ %.1f%%[-] (decreasing)", pctChange)
	}
	return fmt.Sprintf("[yellow]→ %.1f%%[-] (stable)", pctChange)
}

// Root returns the root primitive
func (v *TimelineView) Root() tview.Primitive {
	return v.root
}
