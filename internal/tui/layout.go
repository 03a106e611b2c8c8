package tui

// Pane identifiers; the array order is also the cycle order.
const (
	paneFeeds = iota
	paneItems
	paneCount
)

// updateSidebar rebuilds the sidebar rows from the store (honoring the
// only-new filter) and sets the sidebar width to the widest formatted
// label. Must run before updateGeometry, which distributes the
// remaining width.
func (a *App) updateSidebar() {
	a.feedRows = newFeedRows(a.store, a.onlyNew)
	a.panes[paneFeeds].SetRows(a.feedRows)
	a.panes[paneFeeds].Width = a.feedRows.LabelWidth()
}

// updateGeometry derives the absolute rectangles of both panes, their
// scrollbars and the status bar from the window size and the sidebar
// visibility. Any recomputation forces a full repaint.
func (a *App) updateGeometry() {
	feeds, items := a.panes[paneFeeds], a.panes[paneItems]
	height := a.win.Height - 1 // status bar takes the bottom row

	feeds.Resize(0, 0, feeds.Width, height)

	w, x := a.win.Width, 0
	if !feeds.Hidden() {
		// Sidebar plus its scrollbar column.
		w -= feeds.Width + 1
		x = feeds.Width + 1
	}
	items.Resize(x, 0, w-1, height) // one column for the items scrollbar

	a.bars[paneFeeds].Resize(feeds.Width, 0, height)
	a.bars[paneFeeds].SetHidden(feeds.Hidden())
	a.bars[paneItems].Resize(x+items.Width, 0, height)

	a.status.Resize(a.win.Width)

	a.allDirty()
}

// canDraw is the too-small guard: drawing is suspended entirely until
// the geometry permits it again. Checked before every paint.
func (a *App) canDraw() bool {
	if a.win.Width <= 1 || a.win.Height <= 3 {
		return false
	}
	feeds := a.panes[paneFeeds]
	if !feeds.Hidden() && a.win.Width <= feeds.Width+2 {
		return false
	}
	return true
}

func (a *App) allDirty() {
	for i := range a.panes {
		a.panes[i].MarkDirty()
		a.bars[i].MarkDirty()
	}
	a.status.dirty = true
}
