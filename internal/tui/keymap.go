package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up            key.Binding
	Down          key.Binding
	Left          key.Binding
	Right         key.Binding
	CyclePane     key.Binding
	Top           key.Binding
	Bottom        key.Binding
	PageUp        key.Binding
	PageDown      key.Binding
	SearchFwd     key.Binding
	SearchBack    key.Binding
	SearchNext    key.Binding
	SearchPrev    key.Binding
	Redraw        key.Binding
	Reload        key.Binding
	Open          key.Binding
	Enclosure     key.Binding
	Pipe          key.Binding
	YankLink      key.Binding
	YankEnclosure key.Binding
	MarkRead      key.Binding
	MarkUnread    key.Binding
	MarkAllRead   key.Binding
	MarkAllUnread key.Binding
	ToggleSidebar key.Binding
	ToggleNew     key.Binding
	ToggleMouse   key.Binding
	Quit          key.Binding
	Interrupt     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:            key.NewBinding(key.WithKeys("k", "up")),
		Down:          key.NewBinding(key.WithKeys("j", "down")),
		Left:          key.NewBinding(key.WithKeys("h", "left")),
		Right:         key.NewBinding(key.WithKeys("l", "right")),
		CyclePane:     key.NewBinding(key.WithKeys("tab")),
		Top:           key.NewBinding(key.WithKeys("g", "home")),
		Bottom:        key.NewBinding(key.WithKeys("G", "end")),
		PageUp:        key.NewBinding(key.WithKeys("pgup", "ctrl+b")),
		PageDown:      key.NewBinding(key.WithKeys("pgdown", "ctrl+f", " ")),
		SearchFwd:     key.NewBinding(key.WithKeys("/")),
		SearchBack:    key.NewBinding(key.WithKeys("?")),
		SearchNext:    key.NewBinding(key.WithKeys("n")),
		SearchPrev:    key.NewBinding(key.WithKeys("N")),
		Redraw:        key.NewBinding(key.WithKeys("ctrl+l")),
		Reload:        key.NewBinding(key.WithKeys("R")),
		Open:          key.NewBinding(key.WithKeys("enter", "o")),
		Enclosure:     key.NewBinding(key.WithKeys("a", "e", "@")),
		Pipe:          key.NewBinding(key.WithKeys("c", "p", "|")),
		YankLink:      key.NewBinding(key.WithKeys("y")),
		YankEnclosure: key.NewBinding(key.WithKeys("E")),
		MarkRead:      key.NewBinding(key.WithKeys("r")),
		MarkUnread:    key.NewBinding(key.WithKeys("u")),
		MarkAllRead:   key.NewBinding(key.WithKeys("f")),
		MarkAllUnread: key.NewBinding(key.WithKeys("F")),
		ToggleSidebar: key.NewBinding(key.WithKeys("s")),
		ToggleNew:     key.NewBinding(key.WithKeys("t")),
		ToggleMouse:   key.NewBinding(key.WithKeys("m")),
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+d")),
		Interrupt:     key.NewBinding(key.WithKeys("ctrl+c")),
	}
}
