package tui

import (
	"os"
	"strings"
	"syscall"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"sfview/internal/config"
	"sfview/internal/debuglog"
	"sfview/internal/feed"
	"sfview/internal/launcher"
	"sfview/internal/readstate"
)

type window struct {
	Width, Height int
}

// App is the top-level model: all window, pane and feed state lives
// here and is threaded through Update and View, never in globals.
type App struct {
	cfg      *config.Config
	store    *feed.Store
	tracker  *readstate.Tracker
	launcher *launcher.Launcher

	keys   keyMap
	win    window
	panes  [paneCount]*Pane
	bars   [paneCount]*Scrollbar
	status StatusBar

	sel        int // focused pane
	loadedFeed int // store index of the feed shown in the items pane
	feedRows   *feedRows

	onlyNew   bool
	useMouse  bool
	canReload bool

	searching   bool
	searchBack  bool
	searchInput textinput.Model
	search      string
	statusMsg   string

	signo    int
	fatalErr error
}

// signalMsg is forwarded from the signal.Notify goroutine in cmd; the
// handler side only sends, all reaction happens here.
type signalMsg struct{ Signal os.Signal }

// Signal wraps an OS signal for delivery via Program.Send.
func Signal(sig os.Signal) tea.Msg { return signalMsg{Signal: sig} }

// pipeDoneMsg arrives when the pager started via tea.ExecProcess has
// exited and the screen needs a full repaint.
type pipeDoneMsg struct{ err error }

func NewApp(cfg *config.Config, store *feed.Store, tracker *readstate.Tracker, l *launcher.Launcher) *App {
	a := &App{
		cfg:        cfg,
		store:      store,
		tracker:    tracker,
		launcher:   l,
		keys:       defaultKeyMap(),
		onlyNew:    cfg.OnlyNew,
		useMouse:   cfg.Mouse,
		loadedFeed: store.Active(),
	}
	for i := range a.panes {
		a.panes[i] = &Pane{}
		a.bars[i] = &Scrollbar{}
	}

	// With a single stream feed there is no sidebar to show and
	// nothing to reload.
	multi := len(store.Feeds()) > 1 || (len(store.Feeds()) == 1 && store.Feeds()[0].Path != "")
	if multi {
		a.sel = paneFeeds
		a.canReload = true
	} else {
		a.sel = paneItems
		a.panes[paneFeeds].SetHidden(true)
	}

	ti := textinput.New()
	ti.Prompt = ""
	a.searchInput = ti

	a.updateSidebar()
	if a.loadedFeed >= 0 {
		a.bindItems()
	}
	l.SetFeedPath(store.ActivePath())
	return a
}

// Signo reports the terminating signal number, 0 when the user quit.
func (a *App) Signo() int { return a.signo }

// FatalErr is set when a resource error forced the session to end.
func (a *App) FatalErr() error { return a.fatalErr }

func (a *App) Init() tea.Cmd { return nil }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width != a.win.Width || msg.Height != a.win.Height {
			a.win.Width, a.win.Height = msg.Width, msg.Height
			a.updateGeometry()
		}
		return a, nil

	case signalMsg:
		switch msg.Signal {
		case syscall.SIGHUP:
			a.reload()
			return a, nil
		default:
			if sig, ok := msg.Signal.(syscall.Signal); ok {
				a.signo = int(sig)
			}
			return a, tea.Quit
		}

	case tea.KeyMsg:
		if a.searching {
			return a.updateSearchPrompt(msg)
		}
		a.statusMsg = ""
		return a.handleKey(msg)

	case tea.MouseMsg:
		return a.handleMouse(msg)

	case pipeDoneMsg:
		if msg.err != nil {
			a.statusMsg = "pipe: " + msg.err.Error()
		}
		a.allDirty()
		return a, nil
	}
	return a, nil
}

func (a *App) View() string {
	if !a.canDraw() {
		return ""
	}

	// Status line follows the focused item's link unless a transient
	// message claims it.
	switch {
	case a.statusMsg != "":
		a.status.Update(a.statusMsg)
	default:
		a.status.Update(a.focusedLink())
	}

	height := a.win.Height - 1
	var cols [][]string
	for i := range a.panes {
		p, b := a.panes[i], a.bars[i]
		p.SetFocus(i == a.sel)
		p.Draw()
		b.SetFocus(i == a.sel)
		b.Update(p.Pos()-p.Pos()%max(p.Height, 1), p.Len(), p.Height)
		b.Draw()
		if p.Hidden() {
			continue
		}
		lines := p.Lines()
		if len(lines) != height {
			lines = blankLines(p.Width, height)
		}
		cols = append(cols, lines, b.Lines())
	}
	a.status.Draw()

	var sb strings.Builder
	for y := 0; y < height; y++ {
		for _, col := range cols {
			if y < len(col) {
				sb.WriteString(col[y])
			}
		}
		sb.WriteByte('\n')
	}
	if a.searching {
		label := "Search (forward): "
		if a.searchBack {
			label = "Search (backward): "
		}
		sb.WriteString(promptTextStyle.Render(label))
		sb.WriteString(a.searchInput.View())
	} else {
		sb.WriteString(a.status.View())
	}
	return sb.String()
}

func (a *App) focusedLink() string {
	items := a.panes[paneItems]
	rows, ok := items.Rows().(*itemRows)
	if !ok || items.Len() == 0 {
		return ""
	}
	return rows.feed.Items[items.Pos()].Link
}

// bindItems points the items pane at the active feed's freshly loaded
// array. Rows of the previous feed are gone with it.
func (a *App) bindItems() {
	f := a.store.Feeds()[a.loadedFeed]
	a.panes[paneItems].SetRows(newItemRows(a.store, f))
	a.panes[paneItems].pos = 0
	a.bars[paneItems].MarkDirty()
}

// loadFeed switches the active feed to the sidebar row's feed. Open or
// read failures here are resource errors: the session ends through the
// fatal path.
func (a *App) loadFeed(row int) tea.Cmd {
	idx := a.feedRows.FeedIndex(row)
	if err := a.store.Select(idx); err != nil {
		a.fatalErr = err
		return tea.Quit
	}
	a.loadedFeed = idx
	a.launcher.SetFeedPath(a.store.ActivePath())
	a.bindItems()
	return nil
}

// reload rebuilds the read-URL set and recounts and reloads every feed
// file, replacing all prior state wholesale. Selection returns to the
// first feed. No-op when reading from a stream.
func (a *App) reload() {
	if !a.canReload {
		return
	}
	if err := a.tracker.Load(); err != nil {
		a.statusMsg = "reload: " + err.Error()
		return
	}
	if err := a.store.Load(); err != nil {
		a.fatalErr = err
		return
	}
	a.loadedFeed = a.store.Active()
	a.launcher.SetFeedPath(a.store.ActivePath())
	a.panes[paneFeeds].pos = 0
	a.updateSidebar()
	a.bindItems()
	a.updateGeometry()
	debuglog.Infof("reloaded %d feeds", len(a.store.Feeds()))
}

// cyclePane moves focus n visible panes in one direction without
// wrapping.
func (a *App) cyclePane(n int) {
	step := 1
	if n < 0 {
		step, n = -1, -n
	}
	for i := a.sel; n > 0; {
		i += step
		if i < 0 || i >= paneCount {
			break
		}
		if a.panes[i].Hidden() {
			continue
		}
		a.sel = i
		n--
	}
}

// cyclePaneWrap cycles forward, wrapping back to the first visible
// pane at the end.
func (a *App) cyclePaneWrap() {
	prev := a.sel
	a.cyclePane(1)
	if a.sel == prev {
		a.cyclePane(-paneCount)
	}
}

func (a *App) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return a, nil
	}
	for i := range a.panes {
		p := a.panes[i]
		if p.Hidden() || p.Height <= 0 {
			continue
		}
		if msg.X < p.X || msg.X >= p.X+p.Width || msg.Y < p.Y || msg.Y >= p.Y+p.Height {
			continue
		}
		changedPane := a.sel != i
		a.sel = i
		pos := msg.Y - p.Y + p.Pos() - p.Pos()%p.Height

		switch msg.Button {
		case tea.MouseButtonLeft:
			if pos >= p.Len() {
				break
			}
			if i == paneFeeds {
				p.SetPosition(pos)
				return a, a.loadFeed(pos)
			}
			// Clicking the already highlighted row opens it.
			if p.Pos() == pos && !changedPane {
				a.plumbCurrent(false)
			} else {
				p.SetPosition(pos)
			}
		case tea.MouseButtonRight:
			if i == paneItems && pos < p.Len() {
				p.SetPosition(pos)
				return a, a.pipeCurrent()
			}
		case tea.MouseButtonWheelUp:
			p.ScrollPages(-1)
		case tea.MouseButtonWheelDown:
			p.ScrollPages(1)
		}
		break
	}
	return a, nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
