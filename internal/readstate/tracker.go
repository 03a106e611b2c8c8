package readstate

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"time"

	"sfview/internal/debuglog"
	"sfview/internal/feed"
)

// recencyWindow is the fallback horizon when no URL file is
// configured: items published within it count as new.
const recencyWindow = 24 * time.Hour

// MarkRunner hands a batch of links to the external mark script and
// reports its exit status. Implemented by launcher.Launcher.
type MarkRunner interface {
	Mark(read bool, links []string) error
}

// Tracker answers "is this item new?" from a sorted snapshot of the
// read-URL file, falling back to a recency window when no file is
// configured. The file itself is only ever written by the external
// mark script; the tracker reads it wholesale and never appends.
type Tracker struct {
	path    string
	urls    []string // lexicographically sorted
	compare time.Time
	runner  MarkRunner
}

func NewTracker(path string, runner MarkRunner) *Tracker {
	return &Tracker{path: path, runner: runner}
}

// Load rebuilds the URL set from the file and re-captures the
// comparison time for the recency fallback. Called at startup and on
// reload; the previous set is discarded entirely.
func (t *Tracker) Load() error {
	t.compare = time.Now().Add(-recencyWindow)
	t.urls = nil
	if t.path == "" {
		return nil
	}
	f, err := os.Open(t.path)
	if err != nil {
		if os.IsNotExist(err) {
			// Nothing marked read yet.
			return nil
		}
		return fmt.Errorf("open url file: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if line := sc.Text(); line != "" {
			t.urls = append(t.urls, line)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read url file: %w", err)
	}
	sort.Strings(t.urls)
	debuglog.Debugf("loaded %d read urls from %s", len(t.urls), t.path)
	return nil
}

// HasURLFile reports whether durable read state is configured; marking
// is only meaningful when it is.
func (t *Tracker) HasURLFile() bool { return t.path != "" }

// IsNew implements feed.Flagger. A record with an unparsable timestamp
// is never new. With a URL file the link decides; without one, the
// publication time against the window captured at Load.
func (t *Tracker) IsNew(link string, published time.Time, ok bool) bool {
	if !ok {
		return false
	}
	if t.path != "" {
		return !t.contains(link)
	}
	return !published.Before(t.compare)
}

func (t *Tracker) contains(link string) bool {
	i := sort.SearchStrings(t.urls, link)
	return i < len(t.urls) && t.urls[i] == link
}

// MarkItems flips the read state of every item in the snapshot whose
// state differs from the target. The links are handed to the external
// mark script first; only a zero exit applies the in-memory flips and
// adjusts the owning feed's new count. A failing script leaves all
// state untouched; the URL file is the sole durable record.
func (t *Tracker) MarkItems(f *feed.Feed, items []*feed.Item, read bool) error {
	if !t.HasURLFile() {
		return fmt.Errorf("no url file configured")
	}
	var pending []*feed.Item
	var links []string
	for _, it := range items {
		if it.IsNew == read {
			pending = append(pending, it)
			links = append(links, it.Link)
		}
	}
	if len(pending) == 0 {
		return nil
	}
	if err := t.runner.Mark(read, links); err != nil {
		return fmt.Errorf("mark script: %w", err)
	}
	for _, it := range pending {
		it.IsNew = !read
	}
	if read {
		f.New -= len(pending)
	} else {
		f.New += len(pending)
	}
	return nil
}
