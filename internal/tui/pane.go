package tui

import "strings"

// RowSource supplies a pane's rows. The two implementations, feed
// rows and item rows, live in rows.go; a pane never owns the entities
// behind its rows.
type RowSource interface {
	Len() int
	// Text formats row i for a pane of the given width; padding and
	// truncation to the exact width happen in the pane.
	Text(i, width int) string
	// Bold marks rows bound to new items.
	Bold(i int) bool
	// Match reports whether row i matches a search query.
	Match(i int, query string) bool
}

// Pane is a scrollable list over a RowSource with a retained cache of
// the rendered current page. The dirty flag gates full rebuilds;
// movement within a page patches exactly the two affected lines.
type Pane struct {
	X, Y          int
	Width, Height int

	rows    RowSource
	pos     int
	focused bool
	hidden  bool
	dirty   bool

	lines []string
}

func (p *Pane) Pos() int { return p.pos }

func (p *Pane) Len() int {
	if p.rows == nil {
		return 0
	}
	return p.rows.Len()
}

func (p *Pane) Rows() RowSource { return p.rows }

// SetRows replaces the row source. The position is clamped into the
// new range; callers reset it when the semantics ask for that.
func (p *Pane) SetRows(rows RowSource) {
	p.rows = rows
	if n := p.Len(); p.pos >= n {
		p.pos = 0
	}
	p.dirty = true
}

// Resize sets the pane's absolute rectangle and forces a repaint.
func (p *Pane) Resize(x, y, width, height int) {
	p.X, p.Y, p.Width, p.Height = x, y, width, height
	p.dirty = true
}

func (p *Pane) SetFocus(on bool) {
	if p.focused != on {
		p.focused = on
		p.dirty = true
	}
}

func (p *Pane) Focused() bool { return p.focused }

func (p *Pane) SetHidden(hidden bool) {
	if p.hidden != hidden {
		p.hidden = hidden
		p.dirty = true
	}
}

func (p *Pane) Hidden() bool { return p.hidden }

// MarkDirty forces a full-page repaint on the next Draw.
func (p *Pane) MarkDirty() { p.dirty = true }

// SetPosition moves the focus position, clamped into [0, nrows-1].
// No-op when the pane is empty or the clamped target is the current
// position. Landing on a different page repaints the whole page;
// staying on the same page patches only the row losing the highlight
// and the row gaining it.
func (p *Pane) SetPosition(pos int) {
	n := p.Len()
	if n == 0 {
		return
	}
	if pos < 0 {
		pos = 0
	}
	if pos >= n {
		pos = n - 1
	}
	if pos == p.pos || p.Height <= 0 {
		return
	}
	prev := p.pos
	p.pos = pos
	if prev/p.Height != pos/p.Height {
		p.dirty = true
		return
	}
	if p.dirty || len(p.lines) != p.Height {
		// A full rebuild is pending anyway.
		return
	}
	p.lines[prev%p.Height] = p.renderRow(prev)
	p.lines[pos%p.Height] = p.renderRow(pos)
}

// ScrollN moves the focus position by n rows.
func (p *Pane) ScrollN(n int) { p.SetPosition(p.pos + n) }

// ScrollPages moves by whole pages, snapping to page boundaries: n
// pages up targets the last row of the destination page, n pages down
// its first row. SetPosition clamps the first and last page.
func (p *Pane) ScrollPages(n int) {
	if n == 0 || p.Height <= 0 {
		return
	}
	page := p.pos / p.Height
	if n < 0 {
		p.SetPosition((page+n)*p.Height + p.Height - 1)
	} else {
		p.SetPosition((page + n) * p.Height)
	}
}

// Draw rebuilds the rendered page cache. No-op unless the pane is
// dirty and visible.
func (p *Pane) Draw() {
	if p.hidden || !p.dirty || p.Height <= 0 {
		return
	}
	start := p.pos - p.pos%p.Height
	p.lines = make([]string, p.Height)
	for y := 0; y < p.Height; y++ {
		p.lines[y] = p.renderRow(start + y)
	}
	p.dirty = false
}

// Lines returns the rendered current page, one string per screen row.
func (p *Pane) Lines() []string { return p.lines }

func (p *Pane) renderRow(i int) string {
	n := p.Len()
	var text string
	if i >= 0 && i < n {
		text = p.rows.Text(i, p.Width)
	}
	cell := padTruncate(text, p.Width)

	switch {
	case i == p.pos:
		if p.focused {
			return focusRowStyle.Render(cell)
		}
		return dimFocusStyle.Render(cell)
	case i < n && p.rows.Bold(i):
		return boldRowStyle.Render(cell)
	}
	return cell
}

// Search scans for the stored query from the row after (or before) the
// current position to the list boundary, without wraparound. It
// returns the matching row index or -1; the position is left to the
// caller.
func (p *Pane) Search(query string, backward bool) int {
	if query == "" || p.Len() == 0 {
		return -1
	}
	if backward {
		for i := p.pos - 1; i >= 0; i-- {
			if p.rows.Match(i, query) {
				return i
			}
		}
		return -1
	}
	for i := p.pos + 1; i < p.Len(); i++ {
		if p.rows.Match(i, query) {
			return i
		}
	}
	return -1
}

// blankLines is used while a pane has nothing laid out yet.
func blankLines(width, height int) []string {
	lines := make([]string, height)
	for i := range lines {
		lines[i] = strings.Repeat(" ", width)
	}
	return lines
}
