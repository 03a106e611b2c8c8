package tui

// StatusBar is the single reverse-video bottom line: the focused
// item's link, or a transient message.
type StatusBar struct {
	Width  int
	text   string
	hidden bool
	dirty  bool
	line   string
}

func (s *StatusBar) Resize(width int) {
	s.Width = width
	s.dirty = true
}

// Update replaces the text; no-op when unchanged.
func (s *StatusBar) Update(text string) {
	if s.text == text {
		return
	}
	s.text = text
	s.dirty = true
}

func (s *StatusBar) Draw() {
	if s.hidden || !s.dirty {
		return
	}
	s.line = statusBarStyle.Render(padTruncate(s.text, s.Width))
	s.dirty = false
}

func (s *StatusBar) View() string { return s.line }
