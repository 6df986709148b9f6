package views

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/audi70r/gitlog/internal/git"
	"github.com/audi70r/gitlog/internal/util"
)

// CommitsView lists parsed commits with a detail panel
type CommitsView struct {
	root    *tview.Flex
	list    *tview.List
	detail  *tview.TextView
	info    *tview.TextView
	commits []*git.Commit
}

// NewCommitsView creates a new commits view
func NewCommitsView() *CommitsView {
	v := &CommitsView{}
	v.setup()
	return v
}

func (v *CommitsView) setup() {
	v.list = tview.NewList().
		ShowSecondaryText(true).
		SetHighlightFullLine(true).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)
	v.list.SetBorder(true).SetTitle(" Commits ")

	v.detail = tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetTextAlign(tview.AlignLeft)
	v.detail.SetBorder(true).SetTitle(" Details ")

	v.info = tview.NewTextView().
		SetDynamicColors(true).
		SetTextAlign(tview.AlignCenter)

	content := tview.NewFlex().
		AddItem(v.list, 60, 0, true).
		AddItem(v.detail, 0, 1, false)

	v.root = tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(content, 0, 1, true).
		AddItem(v.info, 1, 0, false)

	v.list.SetChangedFunc(func(idx int, main, secondary string, shortcut rune) {
		if idx >= 0 && idx < len(v.commits) {
			v.detail.SetText(FormatCommitDetail(v.commits[idx]))
			v.detail.ScrollToBeginning()
		}
	})
}

// Refresh updates the view with new data
func (v *CommitsView) Refresh(commits []*git.Commit) {
	v.commits = commits
	v.list.Clear()

	for _, c := range commits {
		main := fmt.Sprintf("[yellow]%s[-] %s", c.ShortHash, tview.Escape(c.Subject))
		if tag := c.TagName(); tag != "" {
			main = fmt.Sprintf("[yellow]%s[-] [green::b](%s)[-::-] %s", c.ShortHash, tag, tview.Escape(c.Subject))
		}
		v.list.AddItem(main, "  "+tview.Escape(c.Author)+", "+displayDate(c), 0, nil)
	}

	if len(commits) > 0 {
		v.list.SetCurrentItem(0)
		v.detail.SetText(FormatCommitDetail(commits[0]))
	} else {
		v.detail.SetText("[gray]No commits[-]")
	}

	tagged := 0
	for _, c := range commits {
		if c.TagName() != "" {
			tagged++
		}
	}
	v.info.SetText(fmt.Sprintf("[yellow]%d[-] commits, [green]%d[-] tagged | [↑↓] browse", len(commits), tagged))
}

// FormatCommitDetail renders every present field of a commit
func FormatCommitDetail(c *git.Commit) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "[yellow::b]%s[-::-]\n\n", c.Hash)
	fmt.Fprintf(&sb, "  [cyan]Author:[-]  %s <%s>\n", tview.Escape(c.Author), tview.Escape(c.Email))
	fmt.Fprintf(&sb, "  [cyan]Date:[-]    %s\n", displayDate(c))
	if tag := c.TagName(); tag != "" {
		fmt.Fprintf(&sb, "  [cyan]Tag:[-]     [green]%s[-]\n", tag)
	}
	if c.Stats != nil {
		fmt.Fprintf(&sb, "  [cyan]Changes:[-] %d files, [green]+%d[-] [red]-%d[-]\n", c.Files, c.Insertions, c.Deletions)
	}
	fmt.Fprintf(&sb, "  [cyan]Link:[-]    %s\n", tview.Escape(c.Href))

	if c.Merge != nil {
		fmt.Fprintf(&sb, "\n[::b]Merge[-:-:-] (%s)\n", c.Merge.Style)
		fmt.Fprintf(&sb, "  #%s %s\n", c.Merge.ID, tview.Escape(c.Merge.Message))
		fmt.Fprintf(&sb, "  %s\n", tview.Escape(c.Merge.Href))
	}

	if len(c.Fixes) > 0 {
		sb.WriteString("\n[::b]Fixes[-:-:-]\n")
		for _, fix := range c.Fixes {
			fmt.Fprintf(&sb, "  #%s %s\n", fix.ID, tview.Escape(fix.Href))
		}
	}

	fmt.Fprintf(&sb, "\n[::b]Message[-:-:-]\n\n%s\n", tview.Escape(c.Message))
	return sb.String()
}

// displayDate formats the commit date the way changelogs print it
func displayDate(c *git.Commit) string {
	when, err := c.Time()
	if err != nil {
		return c.Date
	}
	return util.NiceDate(when)
}

// Root returns the root primitive
func (v *CommitsView) Root() tview.Primitive {
	return v.root
}

// GetFocusable returns the focusable component
func (v *CommitsView) GetFocusable() tview.Primitive {
	return v.list
}
