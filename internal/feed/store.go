package feed

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sfview/internal/debuglog"
)

// Flagger decides whether an item counts as new. Implemented by
// readstate.Tracker; kept as an interface here so the store stays
// testable without a URL file on disk.
type Flagger interface {
	IsNew(link string, published time.Time, ok bool) bool
}

// Item is one record of the active feed. In lazy mode only Offset,
// Link, Time and IsNew survive the initial scan; the remaining fields
// are materialized from the file on first access and cached for the
// session.
type Item struct {
	Line      string // raw record, empty when evicted
	Title     string
	Link      string
	Enclosure string
	Time      time.Time
	TimeOK    bool
	IsNew     bool
	Offset    int64
	loaded    bool
}

// Feed is one configured feed file. Items is populated only while the
// feed is the active one; inactive feeds carry counts alone.
type Feed struct {
	Name  string
	Path  string // empty means the stdin stream
	Total int
	New   int
	Items []*Item
}

// Store owns every configured feed and the single open file handle.
// At most one feed file is open at any instant, regardless of how many
// feeds are configured.
type Store struct {
	feeds  []*Feed
	active int
	file   *os.File
	flag   Flagger
	lazy   bool
}

func NewStore(flag Flagger, lazy bool) *Store {
	return &Store{flag: flag, lazy: lazy, active: -1}
}

// AddFile registers a file-backed feed named after its base name.
// Nothing is read until Load.
func (s *Store) AddFile(path string) {
	s.feeds = append(s.feeds, &Feed{Name: filepath.Base(path), Path: path})
}

// AddStream registers the implicit stdin feed and consumes the reader
// in full immediately. A stream cannot be re-read, so lazy loading and
// reload do not apply to it.
func (s *Store) AddStream(name string, r io.Reader) error {
	f := &Feed{Name: name}
	items, err := s.scanItems(bufio.NewReader(r), false)
	if err != nil {
		return fmt.Errorf("reading %s: %w", name, err)
	}
	f.Items = items
	f.Total = len(items)
	for _, it := range items {
		if it.IsNew {
			f.New++
		}
	}
	s.feeds = append(s.feeds, f)
	s.active = len(s.feeds) - 1
	return nil
}

func (s *Store) Feeds() []*Feed { return s.feeds }

// Active returns the index of the feed whose items are materialized,
// or -1.
func (s *Store) Active() int { return s.active }

// ActivePath is the source path of the active feed, empty for the
// stdin stream. Exported to subprocesses while they run.
func (s *Store) ActivePath() string {
	if s.active < 0 {
		return ""
	}
	return s.feeds[s.active].Path
}

// Load counts every file-backed feed and materializes the first one.
// Called at startup and on reload; the previous open handle and item
// array are released first.
func (s *Store) Load() error {
	if err := s.closeFile(); err != nil {
		return err
	}
	for _, f := range s.feeds {
		if f.Path == "" {
			continue
		}
		s.dropItems(f)
		if err := s.count(f); err != nil {
			return err
		}
	}
	s.active = -1
	if len(s.feeds) > 0 {
		return s.Select(0)
	}
	return nil
}

// Select makes feeds[i] the active feed: the previous feed's items and
// handle are released, the new file is opened and scanned from offset
// 0 into a fresh item array. No row of the previous feed survives.
func (s *Store) Select(i int) error {
	if i < 0 || i >= len(s.feeds) {
		return fmt.Errorf("select feed %d: out of range", i)
	}
	f := s.feeds[i]
	if f.Path == "" {
		// Stream feed: items were loaded once at startup and stay.
		s.active = i
		return s.closeFile()
	}
	if s.active >= 0 && s.active != i {
		s.dropItems(s.feeds[s.active])
	}
	// From here until the new feed is fully scanned there is no feed
	// with materialized items, and Active must say so.
	s.active = -1
	if err := s.closeFile(); err != nil {
		return err
	}
	file, err := os.Open(f.Path)
	if err != nil {
		return fmt.Errorf("open feed: %w", err)
	}
	items, err := s.scanItems(bufio.NewReader(file), s.lazy)
	if err != nil {
		file.Close()
		return fmt.Errorf("load %s: %w", f.Path, err)
	}
	s.file = file
	f.Items = items
	f.Total = len(items)
	f.New = 0
	for _, it := range items {
		if it.IsNew {
			f.New++
		}
	}
	s.active = i
	debuglog.Debugf("selected feed %q: %d items, %d new", f.Name, f.Total, f.New)
	return nil
}

// Materialize fills in the evicted fields of a lazily loaded item by
// re-seeking the owning file to the item's byte offset and parsing
// exactly that line. Calling it for a row whose feed is no longer
// active is a caller bug, not a runtime condition to recover from.
func (s *Store) Materialize(f *Feed, it *Item) {
	if it.loaded {
		return
	}
	if s.active < 0 || s.feeds[s.active] != f || s.file == nil {
		panic("feed: lazy item accessed after its backing handle was reassigned")
	}
	if _, err := s.file.Seek(it.Offset, io.SeekStart); err != nil {
		panic(fmt.Sprintf("feed: seek %s: %v", f.Path, err))
	}
	line, err := bufio.NewReader(s.file).ReadString('\n')
	if err != nil && err != io.EOF {
		panic(fmt.Sprintf("feed: read %s: %v", f.Path, err))
	}
	fillItem(it, strings.TrimSuffix(line, "\n"))
}

// Close releases the open feed handle, if any.
func (s *Store) Close() error { return s.closeFile() }

func (s *Store) closeFile() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	if err != nil {
		return fmt.Errorf("close feed: %w", err)
	}
	return nil
}

func (s *Store) dropItems(f *Feed) {
	f.Items = nil
}

// count tallies record and new counts without materializing items,
// bounding memory use across many configured feeds. The handle is
// closed again before returning, keeping the one-open-file invariant.
func (s *Store) count(f *Feed) error {
	file, err := os.Open(f.Path)
	if err != nil {
		return fmt.Errorf("open feed: %w", err)
	}
	defer file.Close()

	f.Total, f.New = 0, 0
	sc := bufio.NewScanner(file)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		rec := ParseRecord(sc.Text())
		t, ok := ParseTimestamp(rec[FieldTimestamp])
		f.Total++
		if s.isNew(rec[FieldLink], t, ok) {
			f.New++
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("count %s: %w", f.Path, err)
	}
	return nil
}

func (s *Store) scanItems(r *bufio.Reader, lazy bool) ([]*Item, error) {
	var items []*Item
	var offset int64
	for {
		line, err := r.ReadString('\n')
		if len(line) > 0 {
			it := &Item{Offset: offset}
			offset += int64(len(line))
			fillItem(it, strings.TrimSuffix(line, "\n"))
			it.IsNew = s.isNew(it.Link, it.Time, it.TimeOK)
			if lazy {
				it.Line, it.Title, it.Enclosure = "", "", ""
				it.loaded = false
			}
			items = append(items, it)
		}
		if err == io.EOF {
			return items, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func (s *Store) isNew(link string, t time.Time, ok bool) bool {
	if s.flag == nil {
		return false
	}
	return s.flag.IsNew(link, t, ok)
}

func fillItem(it *Item, line string) {
	rec := ParseRecord(line)
	it.Line = line
	it.Title = rec[FieldTitle]
	it.Link = rec[FieldLink]
	it.Enclosure = rec[FieldEnclosure]
	it.Time, it.TimeOK = ParseTimestamp(rec[FieldTimestamp])
	it.loaded = true
}
