package tui

import (
	"syscall"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"sfview/internal/debuglog"
	"sfview/internal/feed"
)

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := a.keys
	pane := a.panes[a.sel]

	switch {
	case key.Matches(msg, keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, keys.Interrupt):
		a.signo = int(syscall.SIGINT)
		return a, tea.Quit

	case key.Matches(msg, keys.Up):
		pane.ScrollN(-1)

	case key.Matches(msg, keys.Down):
		pane.ScrollN(1)

	case key.Matches(msg, keys.Left):
		a.cyclePane(-1)

	case key.Matches(msg, keys.Right):
		a.cyclePane(1)

	case key.Matches(msg, keys.CyclePane):
		a.cyclePaneWrap()

	case key.Matches(msg, keys.Top):
		pane.SetPosition(0)

	case key.Matches(msg, keys.Bottom):
		pane.SetPosition(pane.Len() - 1)

	case key.Matches(msg, keys.PageUp):
		pane.ScrollPages(-1)

	case key.Matches(msg, keys.PageDown):
		pane.ScrollPages(1)

	case key.Matches(msg, keys.SearchFwd), key.Matches(msg, keys.SearchBack):
		a.searching = true
		a.searchBack = key.Matches(msg, keys.SearchBack)
		a.searchInput.SetValue("")
		a.searchInput.Focus()

	case key.Matches(msg, keys.SearchNext):
		a.doSearch(false)

	case key.Matches(msg, keys.SearchPrev):
		a.doSearch(true)

	case key.Matches(msg, keys.Redraw):
		a.allDirty()

	case key.Matches(msg, keys.Reload):
		a.reload()

	case key.Matches(msg, keys.Open):
		if a.sel == paneFeeds && pane.Len() > 0 {
			return a, a.loadFeed(pane.Pos())
		}
		a.plumbCurrent(false)

	case key.Matches(msg, keys.Enclosure):
		a.plumbCurrent(true)

	case key.Matches(msg, keys.Pipe):
		return a, a.pipeCurrent()

	case key.Matches(msg, keys.YankLink):
		a.yankCurrent(false)

	case key.Matches(msg, keys.YankEnclosure):
		a.yankCurrent(true)

	case key.Matches(msg, keys.MarkRead):
		a.markCurrent(true)

	case key.Matches(msg, keys.MarkUnread):
		a.markCurrent(false)

	case key.Matches(msg, keys.MarkAllRead):
		a.markAll(true)

	case key.Matches(msg, keys.MarkAllUnread):
		a.markAll(false)

	case key.Matches(msg, keys.ToggleSidebar):
		feeds := a.panes[paneFeeds]
		feeds.SetHidden(!feeds.Hidden())
		if a.sel == paneFeeds && feeds.Hidden() {
			a.sel = paneItems
		}
		a.updateGeometry()

	case key.Matches(msg, keys.ToggleNew):
		feeds := a.panes[paneFeeds]
		selected := -1
		if feeds.Len() > 0 {
			selected = a.feedRows.FeedIndex(feeds.Pos())
		}
		a.onlyNew = !a.onlyNew
		feeds.pos = 0
		a.updateSidebar()
		// Keep the selected feed when the filter still shows it.
		for row := 0; row < a.feedRows.Len(); row++ {
			if a.feedRows.FeedIndex(row) == selected {
				feeds.SetPosition(row)
				break
			}
		}
		a.updateGeometry()

	case key.Matches(msg, keys.ToggleMouse):
		a.useMouse = !a.useMouse
		if a.useMouse {
			return a, tea.EnableMouseCellMotion
		}
		return a, tea.DisableMouse
	}
	return a, nil
}

// updateSearchPrompt feeds keys to the prompt on the status line until
// the query is confirmed or abandoned.
func (a *App) updateSearchPrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.search = a.searchInput.Value()
		a.searching = false
		a.searchInput.Blur()
		a.doSearch(a.searchBack)
		return a, nil
	case "esc", "ctrl+c":
		a.searching = false
		a.searchInput.Blur()
		return a, nil
	}
	var cmd tea.Cmd
	a.searchInput, cmd = a.searchInput.Update(msg)
	return a, cmd
}

// doSearch scans the focused pane from the row adjacent to the current
// position to the list boundary, without wraparound. A miss leaves the
// position unchanged.
func (a *App) doSearch(backward bool) {
	if a.search == "" {
		return
	}
	pane := a.panes[a.sel]
	if i := pane.Search(a.search, backward); i >= 0 {
		pane.SetPosition(i)
		return
	}
	a.statusMsg = "not found: " + a.search
}

// currentItem returns the focused item with its fields materialized,
// or nil when the items pane is empty.
func (a *App) currentItem() *feed.Item {
	items := a.panes[paneItems]
	rows, ok := items.Rows().(*itemRows)
	if !ok || items.Len() == 0 {
		return nil
	}
	return rows.Item(items.Pos())
}

// plumbCurrent hands the focused item's link (or enclosure) to the
// opener, fire-and-forget.
func (a *App) plumbCurrent(enclosure bool) {
	if a.sel != paneItems {
		return
	}
	it := a.currentItem()
	if it == nil {
		return
	}
	url := it.Link
	if enclosure {
		url = it.Enclosure
	}
	if err := a.launcher.Plumb(url); err != nil {
		a.statusMsg = err.Error()
	}
}

// pipeCurrent hands the focused item's raw record to the pager, which
// takes over the terminal until it exits.
func (a *App) pipeCurrent() tea.Cmd {
	if a.sel != paneItems {
		return nil
	}
	it := a.currentItem()
	if it == nil {
		return nil
	}
	return tea.ExecProcess(a.launcher.PipeCmd(it.Line), func(err error) tea.Msg {
		return pipeDoneMsg{err: err}
	})
}

func (a *App) yankCurrent(enclosure bool) {
	it := a.currentItem()
	if it == nil {
		return
	}
	text := it.Link
	if enclosure {
		text = it.Enclosure
	}
	if err := a.launcher.Yank(text); err != nil {
		a.statusMsg = err.Error()
	}
}

func (a *App) markCurrent(read bool) {
	it := a.currentItem()
	if it == nil {
		return
	}
	a.markItems([]*feed.Item{it}, read)
}

func (a *App) markAll(read bool) {
	items := a.panes[paneItems]
	rows, ok := items.Rows().(*itemRows)
	if !ok || items.Len() == 0 {
		return
	}
	// Immutable snapshot of the whole range for the duration of the
	// operation, whatever happens to the pane meanwhile.
	snapshot := make([]*feed.Item, len(rows.feed.Items))
	copy(snapshot, rows.feed.Items)
	a.markItems(snapshot, read)
}

// markItems delegates the durable state change to the mark script and
// applies the in-memory flips only on success: bold flags, the owning
// feed's new count, and therefore the sidebar labels.
func (a *App) markItems(items []*feed.Item, read bool) {
	f := a.store.Feeds()[a.loadedFeed]
	if err := a.tracker.MarkItems(f, items, read); err != nil {
		a.statusMsg = err.Error()
		debuglog.Warnf("mark: %v", err)
		return
	}
	a.panes[paneItems].MarkDirty()
	// Counts changed, so the widest sidebar label may have, too.
	pos := a.panes[paneFeeds].pos
	a.updateSidebar()
	a.panes[paneFeeds].SetPosition(pos)
	a.updateGeometry()
}
