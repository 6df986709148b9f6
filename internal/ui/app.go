package ui

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/audi70r/gitlog/internal/config"
	"github.com/audi70r/gitlog/internal/git"
	"github.com/audi70r/gitlog/internal/stats"
	"github.com/audi70r/gitlog/internal/ui/views"
)

// progressEvery is how many commits are aggregated between progress redraws
const progressEvery = 100

// Loader fetches and parses the commit log
type Loader func(ctx context.Context) ([]*git.Commit, error)

// Options wire an App to a repository
type Options struct {
	Config *config.Config
	Origin git.Origin
	Load   Loader
	// Estimate is optional and only feeds the progress bar
	Estimate func(ctx context.Context) (int, error)
	Logger   *slog.Logger
}

// App represents the main application
type App struct {
	tview    *tview.Application
	pages    *tview.Pages
	opts     Options
	location *time.Location
	logger   *slog.Logger
	loading  atomic.Bool
	ctx      context.Context

	progressView *views.ProgressView
	mainView     *MainView
}

// NewApp creates a new application instance. Cancelling ctx stops loads and
// quits a running App.
func NewApp(ctx context.Context, opts Options) (*App, error) {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	if opts.Load == nil {
		return nil, fmt.Errorf("ui: no loader")
	}
	loc, err := opts.Config.Location()
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	app := &App{
		tview:    tview.NewApplication(),
		pages:    tview.NewPages(),
		opts:     opts,
		location: loc,
		logger:   logger.With("component", "ui"),
		ctx:      ctx,
	}
	app.setupViews()
	return app, nil
}

func (a *App) setupViews() {
	a.progressView = views.NewProgressView()
	a.mainView = NewMainView(a.tview, a.opts.Config, a.Reload)

	a.pages.AddPage("progress", a.progressView.Root(), true, true)
	a.pages.AddPage("main", a.mainView.Root(), true, false)

	// q quits from the progress page too, e.g. after a failed load
	a.pages.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if name, _ := a.pages.GetFrontPage(); name == "progress" && (event.Rune() == 'q' || event.Rune() == 'Q') {
			a.tview.Stop()
			return nil
		}
		return event
	})

	a.tview.SetRoot(a.pages, true)
}

// Run loads the log in the background and blocks until the user quits or
// the context is cancelled.
func (a *App) Run() error {
	go func() {
		<-a.ctx.Done()
		a.tview.Stop()
	}()

	a.Reload()
	return a.tview.Run()
}

// Reload parses the log again. It is safe to call from any goroutine; calls
// made while a load is running are dropped.
func (a *App) Reload() {
	if !a.loading.CompareAndSwap(false, true) {
		a.logger.Debug("reload skipped, load in progress")
		return
	}
	go func() {
		defer a.loading.Store(false)
		a.load(a.ctx)
	}()
}

func (a *App) load(ctx context.Context) {
	a.tview.QueueUpdateDraw(func() {
		a.progressView.Update(git.ScanProgress{})
		a.progressView.SetStatus("Running git log...")
		a.pages.SwitchToPage("progress")
	})

	total := 0
	if a.opts.Estimate != nil {
		if n, err := a.opts.Estimate(ctx); err == nil {
			total = n
		}
	}

	start := time.Now()
	commits, err := a.opts.Load(ctx)
	if err != nil {
		a.logger.Error("load failed", "error", err)
		a.tview.QueueUpdateDraw(func() {
			a.progressView.SetError(err)
		})
		return
	}

	summary := Summarize(commits, a.location, total, func(p git.ScanProgress) {
		a.tview.QueueUpdateDraw(func() {
			a.progressView.Update(p)
		})
	})
	a.logger.Info("history loaded", "commits", len(commits), "duration", time.Since(start))

	a.tview.QueueUpdateDraw(func() {
		a.mainView.SetData(summary, commits, a.opts.Origin)
		a.pages.SwitchToPage("main")
		a.tview.SetFocus(a.mainView.GetFocusable())
	})
}

// Summarize aggregates commits and reports progress every progressEvery
// commits and once when done.
func Summarize(commits []*git.Commit, loc *time.Location, total int, onProgress func(git.ScanProgress)) *stats.Summary {
	if total <= 0 {
		total = len(commits)
	}
	agg := stats.NewAggregator(loc)
	for i, c := range commits {
		agg.ProcessCommit(c)
		if onProgress != nil && (i+1)%progressEvery == 0 {
			onProgress(git.ScanProgress{CommitsParsed: i + 1, TotalEstimate: total, CurrentHash: c.ShortHash})
		}
	}
	if onProgress != nil {
		onProgress(git.ScanProgress{CommitsParsed: len(commits), TotalEstimate: total, Done: true})
	}
	return agg.Finalize()
}

// MainView is the main statistics display view
type MainView struct {
	root      *tview.Flex
	menuList  *tview.List
	viewPages *tview.Pages
	statusBar *tview.TextView
	header    *tview.TextView
	app       *tview.Application
	config    *config.Config
	onReload  func()

	// Views
	overviewView    *views.OverviewView
	commitsView     *views.CommitsView
	releasesView    *views.ReleasesView
	mergesView      *views.MergesView
	leaderboardView *views.LeaderboardView
	timelineView    *views.TimelineView
	heatmapView     *views.HeatmapView

	currentView string
	summary     *stats.Summary
}

// NewMainView creates the main statistics view
func NewMainView(app *tview.Application, cfg *config.Config, onReload func()) *MainView {
	m := &MainView{
		app:      app,
		config:   cfg,
		onReload: onReload,
	}

	m.setupLayout()
	return m
}

func (m *MainView) setupLayout() {
	m.header = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	m.header.SetBackgroundColor(tcell.ColorDarkBlue)

	m.menuList = tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	m.menuList.SetBorder(true).SetTitle(" Views ")

	m.viewPages = tview.NewPages()
	m.viewPages.SetBorder(true)

	m.overviewView = views.NewOverviewView()
	m.commitsView = views.NewCommitsView()
	m.releasesView = views.NewReleasesView()
	m.mergesView = views.NewMergesView()
	m.leaderboardView = views.NewLeaderboardView(m.config.MaxAuthors)
	m.timelineView = views.NewTimelineView(m.config.RollingWindow, m.config.SparklineWidth)
	m.heatmapView = views.NewHeatmapView()

	pages := []struct {
		name     string
		shortcut rune
		root     tview.Primitive
	}{
		{"Overview", '1', m.overviewView.Root()},
		{"Commits", '2', m.commitsView.Root()},
		{"Releases", '3', m.releasesView.Root()},
		{"Merges", '4', m.mergesView.Root()},
		{"Leaderboard", '5', m.leaderboardView.Root()},
		{"Timeline", '6', m.timelineView.Root()},
		{"Commit Hours", '7', m.heatmapView.Root()},
	}

	for i, p := range pages {
		name := p.name
		m.menuList.AddItem(p.name, "", p.shortcut, func() {
			m.switchView(name)
		})
		m.viewPages.AddPage(p.name, p.root, true, i == 0)
	}

	m.currentView = "Overview"
	m.viewPages.SetTitle(" Overview ")

	m.statusBar = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)
	m.statusBar.SetBackgroundColor(tcell.ColorDarkBlue)
	m.updateStatusBar()

	contentFlex := tview.NewFlex().
		AddItem(m.menuList, 18, 0, true).
		AddItem(m.viewPages, 0, 1, false)

	m.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(m.header, 1, 0, false).
		AddItem(contentFlex, 0, 1, true).
		AddItem(m.statusBar, 1, 0, false)

	m.root.SetInputCapture(m.handleInput)
}

func (m *MainView) handleInput(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyTab, tcell.KeyBacktab:
		m.toggleFocus()
		return nil
	case tcell.KeyEsc:
		if m.app.GetFocus() != m.menuList {
			m.app.SetFocus(m.menuList)
			return nil
		}
	}

	switch event.Rune() {
	case 'q', 'Q':
		m.app.Stop()
		return nil
	case 'R':
		if m.onReload != nil {
			m.onReload()
		}
		return nil
	case 's', 'S':
		m.cycleSortColumn()
		return nil
	case 'r':
		m.reverseSortOrder()
		return nil
	}

	return event
}

func (m *MainView) toggleFocus() {
	if m.app.GetFocus() != m.menuList {
		m.app.SetFocus(m.menuList)
		return
	}

	switch m.currentView {
	case "Commits":
		m.app.SetFocus(m.commitsView.GetFocusable())
	case "Releases":
		m.app.SetFocus(m.releasesView.GetFocusable())
	case "Merges":
		m.app.SetFocus(m.mergesView.GetFocusable())
	case "Leaderboard":
		m.app.SetFocus(m.leaderboardView.GetFocusable())
	}
}

func (m *MainView) cycleSortColumn() {
	switch m.currentView {
	case "Leaderboard":
		m.leaderboardView.CycleSortColumn()
		if m.summary != nil {
			m.leaderboardView.Refresh(m.summary)
		}
	case "Merges":
		m.mergesView.CycleSortColumn()
	}
}

func (m *MainView) reverseSortOrder() {
	switch m.currentView {
	case "Leaderboard":
		m.leaderboardView.ReverseSortOrder()
		if m.summary != nil {
			m.leaderboardView.Refresh(m.summary)
		}
	case "Merges":
		m.mergesView.ReverseSortOrder()
	}
}

func (m *MainView) switchView(name string) {
	m.currentView = name
	m.viewPages.SwitchToPage(name)
	m.viewPages.SetTitle(" " + name + " ")
	m.updateStatusBar()
}

// updateStatusBar shows context-sensitive controls
func (m *MainView) updateStatusBar() {
	baseControls := "[yellow]Tab[-] Focus  [yellow]↑↓[-] Navigate  [yellow]R[-] Reload  [yellow]q[-] Quit"

	var viewControls string
	switch m.currentView {
	case "Leaderboard", "Merges":
		viewControls = "[yellow]s[-] Sort  [yellow]r[-] Reverse  "
	}

	m.statusBar.SetText(viewControls + baseControls)
}

// SetData updates all views with a parsed history
func (m *MainView) SetData(summary *stats.Summary, commits []*git.Commit, origin git.Origin) {
	m.summary = summary

	m.header.SetText(fmt.Sprintf("[::b]gitlog[-:-:-] - %s - %d commits by %d authors, %d releases",
		tview.Escape(origin.URL), summary.TotalCommits, summary.TotalAuthors, len(summary.Releases)))

	loc, err := m.config.Location()
	if err != nil {
		loc = time.Local
	}

	m.overviewView.Refresh(summary, origin)
	m.commitsView.Refresh(commits)
	m.releasesView.Refresh(summary)
	m.mergesView.Refresh(summary)
	m.leaderboardView.Refresh(summary)
	m.timelineView.Refresh(summary)
	m.heatmapView.Refresh(summary, loc)
}

// Root returns the root primitive
func (m *MainView) Root() tview.Primitive {
	return m.root
}

// GetFocusable returns the focusable component
func (m *MainView) GetFocusable() tview.Primitive {
	return m.menuList
}
