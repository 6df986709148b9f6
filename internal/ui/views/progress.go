package views

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/audi70r/gitlog/internal/git"
)

const progressBarWidth = 50

// ProgressView displays log loading progress
type ProgressView struct {
	root        *tview.Flex
	progressBar *tview.TextView
	statusText  *tview.TextView
	countText   *tview.TextView
	total       int
}

// NewProgressView creates a new progress view
func NewProgressView() *ProgressView {
	p := &ProgressView{}
	p.setup()
	return p
}

func (p *ProgressView) setup() {
	title := tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter).
		SetText("[::b]Reading Commit Log[-:-:-]")
	title.SetBackgroundColor(tcell.ColorDarkBlue)

	p.progressBar = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	p.statusText = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	p.countText = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	progressContainer := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(nil, 0, 1, false).
		AddItem(p.statusText, 2, 0, false).
		AddItem(nil, 1, 0, false).
		AddItem(p.progressBar, 3, 0, false).
		AddItem(nil, 1, 0, false).
		AddItem(p.countText, 1, 0, false).
		AddItem(nil, 0, 1, false)

	// Center the progress area
	centered := tview.NewFlex().
		AddItem(nil, 0, 1, false).
		AddItem(progressContainer, 60, 0, false).
		AddItem(nil, 0, 1, false)

	p.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(title, 1, 0, false).
		AddItem(centered, 0, 1, false)

	p.Update(git.ScanProgress{})
}

// Update renders a progress report
func (p *ProgressView) Update(progress git.ScanProgress) {
	if progress.TotalEstimate > 0 {
		p.total = progress.TotalEstimate
	}

	p.progressBar.SetText(RenderProgressBar(progress.CommitsParsed, p.total, progressBarWidth))

	switch {
	case progress.Done:
		p.countText.SetText(fmt.Sprintf("[yellow]%d[-] commits parsed", progress.CommitsParsed))
	case p.total > 0:
		p.countText.SetText(fmt.Sprintf("[yellow]%d[-] / [yellow]%d[-] commits parsed", progress.CommitsParsed, p.total))
	default:
		p.countText.SetText(fmt.Sprintf("[yellow]%d[-] commits parsed", progress.CommitsParsed))
	}

	if progress.CurrentHash != "" {
		p.SetStatus("Processing " + progress.CurrentHash + "...")
	}
}

// SetStatus updates the status message
func (p *ProgressView) SetStatus(status string) {
	p.statusText.SetText("[white]" + tview.Escape(status) + "[-]")
}

// SetError shows a failed load
func (p *ProgressView) SetError(err error) {
	p.statusText.SetText("[red]" + tview.Escape(err.Error()) + "[-]\n[gray]Press q to quit[-]")
}

// Root returns the root primitive
func (p *ProgressView) Root() tview.Primitive {
	return p.root
}

// RenderProgressBar draws a bar with the percentage below it
func RenderProgressBar(current, total, width int) string {
	var pct float64
	if total > 0 {
		pct = float64(current) / float64(total) * 100
	}

	filled := max(0, min(int(pct/100*float64(width)), width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("[green]%s[-]\n%.1f%%", bar, pct)
}
