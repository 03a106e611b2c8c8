// Package launcher runs the external collaborators: the link opener,
// the item pager, the clipboard yanker and the mark-read scripts.
// Every child receives its input on standard input and sees
// SFEED_FEED_PATH and SFEED_URL_FILE in its environment while it runs.
package launcher

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"

	"sfview/internal/config"
	"sfview/internal/debuglog"
)

type Launcher struct {
	plumber    string
	piper      string
	yanker     string
	markRead   string
	markUnread string
	urlFile    string
	feedPath   string
}

func New(cfg *config.Config) *Launcher {
	l := &Launcher{
		plumber:    cfg.Plumber,
		piper:      cfg.Piper,
		yanker:     cfg.Yanker,
		markRead:   cfg.MarkRead,
		markUnread: cfg.MarkUnread,
		urlFile:    cfg.URLFile,
	}
	reg, err := NewRegistry()
	if err != nil {
		debuglog.Warnf("command registry: %v", err)
		return l
	}
	if l.plumber == "" {
		l.plumber = reg.Resolve("plumber")
	}
	if l.piper == "" {
		l.piper = reg.Resolve("piper")
	}
	return l
}

// SetFeedPath records the active feed's source path. It is exported to
// children only for the duration of their run.
func (l *Launcher) SetFeedPath(path string) { l.feedPath = path }

// command builds the sh -c invocation with stdin and environment wired.
func (l *Launcher) command(cmdline, input string) *exec.Cmd {
	cmd := exec.Command("sh", "-c", cmdline)
	cmd.Stdin = strings.NewReader(input)
	cmd.Env = append(os.Environ(),
		"SFEED_FEED_PATH="+l.feedPath,
		"SFEED_URL_FILE="+l.urlFile,
	)
	return cmd
}

// Plumb hands a URL to the opener, detached: output is discarded and
// the child is reaped in the background. A failed exec terminates only
// the child.
func (l *Launcher) Plumb(url string) error {
	if url == "" || l.plumber == "" {
		return nil
	}
	cmd := l.command(l.plumber, url+"\n")
	devnull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("open %s: %w", os.DevNull, err)
	}
	cmd.Stdout = devnull
	cmd.Stderr = devnull
	if err := cmd.Start(); err != nil {
		devnull.Close()
		return fmt.Errorf("starting plumber: %w", err)
	}
	go func() {
		_ = cmd.Wait()
		devnull.Close()
	}()
	debuglog.Debugf("plumbed %s", url)
	return nil
}

// PipeCmd builds the pager invocation for a raw record. The caller
// hands it to tea.ExecProcess so the pager takes over the terminal and
// the UI is restored when it exits.
func (l *Launcher) PipeCmd(record string) *exec.Cmd {
	return l.command(l.piper, record+"\n")
}

// Yank copies a field to the clipboard: through the configured yanker
// when one is set, otherwise via the OS clipboard directly.
func (l *Launcher) Yank(text string) error {
	if l.yanker == "" {
		if err := clipboard.WriteAll(text); err != nil {
			return fmt.Errorf("clipboard: %w", err)
		}
		return nil
	}
	if err := l.command(l.yanker, text).Run(); err != nil {
		return fmt.Errorf("yanker: %w", err)
	}
	return nil
}

// Mark feeds one URL per line to the mark-read or mark-unread script
// and waits. A non-zero exit is the script's veto: the caller must
// leave in-memory state untouched.
func (l *Launcher) Mark(read bool, links []string) error {
	cmdline := l.markRead
	if !read {
		cmdline = l.markUnread
	}
	if cmdline == "" {
		return fmt.Errorf("no mark command configured")
	}
	var in strings.Builder
	for _, link := range links {
		in.WriteString(link)
		in.WriteByte('\n')
	}
	if err := l.command(cmdline, in.String()).Run(); err != nil {
		return fmt.Errorf("%s: %w", cmdline, err)
	}
	return nil
}
