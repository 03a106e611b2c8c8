package tui

import "math"

// Scrollbar is the one-column proportional indicator bound to a pane.
// Tick position and size are derived from the pane's live state on
// every draw; the cache is rebuilt only when they change.
type Scrollbar struct {
	X, Y, Size int

	tickPos  int
	tickSize int
	focused  bool
	hidden   bool
	dirty    bool

	lines []string
}

func (s *Scrollbar) Resize(x, y, size int) {
	s.X, s.Y, s.Size = x, y, size
	s.dirty = true
}

func (s *Scrollbar) SetFocus(on bool) {
	if s.focused != on {
		s.focused = on
		s.dirty = true
	}
}

func (s *Scrollbar) SetHidden(hidden bool) {
	if s.hidden != hidden {
		s.hidden = hidden
		s.dirty = true
	}
}

func (s *Scrollbar) Hidden() bool { return s.hidden }

func (s *Scrollbar) MarkDirty() { s.dirty = true }

// Update recomputes the tick from the bound pane's state: pos is the
// first row of the visible page. When everything fits on one page no
// tick is shown. The tail case pins the tick to the bottom so the
// last page always reads as "at the end" despite cell rounding.
func (s *Scrollbar) Update(pos, nrows, pageHeight int) {
	tickPos, tickSize := 0, 0
	if nrows > pageHeight && pageHeight > 0 {
		tickSize = int(math.Round(float64(s.Size) / (float64(nrows) / float64(pageHeight))))
		if tickSize < 1 {
			tickSize = 1
		}
		tickPos = int(math.Round(float64(pos) / float64(nrows) * float64(s.Size)))
		if pos+pageHeight >= nrows || tickPos+tickSize >= s.Size {
			tickPos = s.Size - tickSize
		}
	}
	if s.tickPos != tickPos || s.tickSize != tickSize {
		s.dirty = true
	}
	s.tickPos = tickPos
	s.tickSize = tickSize
}

func (s *Scrollbar) Draw() {
	if s.hidden || !s.dirty {
		return
	}
	s.lines = make([]string, s.Size)
	for y := 0; y < s.Size; y++ {
		if y >= s.tickPos && y < s.tickPos+s.tickSize {
			if s.focused {
				s.lines[y] = tickStyle.Render(" ")
			} else {
				s.lines[y] = dimTickStyle.Render(" ")
			}
		} else {
			if s.focused {
				s.lines[y] = trackStyle.Render("│")
			} else {
				s.lines[y] = dimTrackStyle.Render("│")
			}
		}
	}
	s.dirty = false
}

func (s *Scrollbar) Lines() []string { return s.lines }
