package feed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// flagFunc adapts a plain function to the Flagger interface.
type flagFunc func(link string, published time.Time, ok bool) bool

func (f flagFunc) IsNew(link string, published time.Time, ok bool) bool {
	return f(link, published, ok)
}

// newLinks flags exactly the given links as new.
func newLinks(links ...string) flagFunc {
	set := make(map[string]bool, len(links))
	for _, l := range links {
		set[l] = true
	}
	return func(link string, _ time.Time, ok bool) bool {
		return ok && set[link]
	}
}

func record(ts, title, link string) string {
	return ts + "\t" + title + "\t" + link + "\t\t\t\t\t"
}

func writeFeed(t *testing.T, dir, name string, lines []string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

// twoFeeds builds feedA (5 items, 2 new) and feedB (3 items, 1 new).
func twoFeeds(t *testing.T, lazy bool) *Store {
	t.Helper()
	dir := t.TempDir()
	a := writeFeed(t, dir, "feedA", []string{
		record("1700000001", "a one", "https://a.example/1"),
		record("1700000002", "a two", "https://a.example/2"),
		record("1700000003", "a three", "https://a.example/3"),
		record("1700000004", "a four", "https://a.example/4"),
		record("1700000005", "a five", "https://a.example/5"),
	})
	b := writeFeed(t, dir, "feedB", []string{
		record("1700000006", "b one", "https://b.example/1"),
		record("1700000007", "b two", "https://b.example/2"),
		record("1700000008", "b three", "https://b.example/3"),
	})

	s := NewStore(newLinks("https://a.example/2", "https://a.example/4", "https://b.example/3"), lazy)
	s.AddFile(a)
	s.AddFile(b)
	return s
}

func TestLoadCountsAllMaterializesFirst(t *testing.T) {
	s := twoFeeds(t, false)
	defer s.Close()
	require.NoError(t, s.Load())

	feeds := s.Feeds()
	require.Len(t, feeds, 2)

	assert.Equal(t, 0, s.Active())
	assert.Equal(t, "feedA", feeds[0].Name)
	assert.Equal(t, 5, feeds[0].Total)
	assert.Equal(t, 2, feeds[0].New)
	assert.Len(t, feeds[0].Items, 5)

	// The inactive feed carries counts alone.
	assert.Equal(t, "feedB", feeds[1].Name)
	assert.Equal(t, 3, feeds[1].Total)
	assert.Equal(t, 1, feeds[1].New)
	assert.Nil(t, feeds[1].Items)
}

func TestSelectSwapsItemArrays(t *testing.T) {
	s := twoFeeds(t, false)
	defer s.Close()
	require.NoError(t, s.Load())

	require.NoError(t, s.Select(1))
	feeds := s.Feeds()

	assert.Equal(t, 1, s.Active())
	assert.Nil(t, feeds[0].Items, "previous feed's items must be released")
	require.Len(t, feeds[1].Items, 3)
	assert.Equal(t, "b two", feeds[1].Items[1].Title)
	assert.True(t, feeds[1].Items[2].IsNew)
	assert.False(t, feeds[1].Items[0].IsNew)
}

func TestSelectOutOfRange(t *testing.T) {
	s := twoFeeds(t, false)
	defer s.Close()
	require.NoError(t, s.Load())

	assert.Error(t, s.Select(-1))
	assert.Error(t, s.Select(2))
	assert.Equal(t, 0, s.Active(), "the range check fails before any state is touched")
}

func TestFailedSelectLeavesNoActiveFeed(t *testing.T) {
	s := twoFeeds(t, false)
	defer s.Close()
	require.NoError(t, s.Load())
	require.Equal(t, 0, s.Active())

	// The previous feed's items are gone by the time the open fails,
	// so no feed may claim to be materialized.
	require.NoError(t, os.Remove(s.Feeds()[1].Path))
	require.Error(t, s.Select(1))

	assert.Equal(t, -1, s.Active())
	assert.Empty(t, s.ActivePath())
	assert.Nil(t, s.Feeds()[0].Items)

	// The store recovers on the next successful select.
	require.NoError(t, s.Select(0))
	assert.Equal(t, 0, s.Active())
	assert.Len(t, s.Feeds()[0].Items, 5)
}

func TestLazyLoadEvictsAndMaterializes(t *testing.T) {
	s := twoFeeds(t, true)
	defer s.Close()
	require.NoError(t, s.Load())

	f := s.Feeds()[0]
	it := f.Items[1]

	// Only the fields the list view needs survive the scan.
	assert.Empty(t, it.Line)
	assert.Empty(t, it.Title)
	assert.Equal(t, "https://a.example/2", it.Link)
	assert.True(t, it.IsNew)
	assert.True(t, it.TimeOK)

	s.Materialize(f, it)
	assert.Equal(t, "a two", it.Title)
	assert.Contains(t, it.Line, "https://a.example/2")

	// Cached for the session: a second call is a no-op.
	it.Title = "mutated"
	s.Materialize(f, it)
	assert.Equal(t, "mutated", it.Title)
}

func TestLazyOffsetsAddressEachLine(t *testing.T) {
	s := twoFeeds(t, true)
	defer s.Close()
	require.NoError(t, s.Load())

	f := s.Feeds()[0]
	// Materialize out of order to exercise the re-seek.
	for _, i := range []int{4, 0, 2, 3, 1} {
		s.Materialize(f, f.Items[i])
	}
	assert.Equal(t, "a one", f.Items[0].Title)
	assert.Equal(t, "a three", f.Items[2].Title)
	assert.Equal(t, "a five", f.Items[4].Title)
}

func TestMaterializeAfterHandleReassignedPanics(t *testing.T) {
	s := twoFeeds(t, true)
	defer s.Close()
	require.NoError(t, s.Load())

	f := s.Feeds()[0]
	it := f.Items[0]
	require.NoError(t, s.Select(1))

	assert.Panics(t, func() { s.Materialize(f, it) })
}

func TestInvalidTimestampStillARecord(t *testing.T) {
	dir := t.TempDir()
	path := writeFeed(t, dir, "feed", []string{
		record("not-a-time", "broken clock", "https://x.example/1"),
		record("1700000000", "fine", "https://x.example/2"),
	})

	// Flag everything with a valid time as new.
	s := NewStore(flagFunc(func(_ string, _ time.Time, ok bool) bool { return ok }), false)
	s.AddFile(path)
	defer s.Close()
	require.NoError(t, s.Load())

	f := s.Feeds()[0]
	require.Len(t, f.Items, 2)
	assert.Equal(t, 2, f.Total)
	assert.Equal(t, 1, f.New, "an unparsable timestamp is never new")
	assert.False(t, f.Items[0].TimeOK)
	assert.Equal(t, "broken clock", f.Items[0].Title)
}

func TestAddStreamConsumesEagerly(t *testing.T) {
	input := record("1700000001", "s one", "https://s.example/1") + "\n" +
		record("1700000002", "s two", "https://s.example/2") + "\n"

	s := NewStore(newLinks("https://s.example/1"), true)
	require.NoError(t, s.AddStream("stdin", strings.NewReader(input)))
	defer s.Close()

	f := s.Feeds()[0]
	assert.Equal(t, 0, s.Active())
	assert.Equal(t, "", f.Path)
	assert.Equal(t, 2, f.Total)
	assert.Equal(t, 1, f.New)
	// Streams cannot be re-read, so lazy mode does not apply.
	assert.Equal(t, "s one", f.Items[0].Title)
}

func TestLoadRecountsAfterFileChange(t *testing.T) {
	dir := t.TempDir()
	path := writeFeed(t, dir, "feed", []string{
		record("1700000001", "one", "https://r.example/1"),
	})

	s := NewStore(newLinks("https://r.example/2"), false)
	s.AddFile(path)
	defer s.Close()
	require.NoError(t, s.Load())
	assert.Equal(t, 1, s.Feeds()[0].Total)

	writeFeed(t, dir, "feed", []string{
		record("1700000001", "one", "https://r.example/1"),
		record("1700000002", "two", "https://r.example/2"),
	})
	require.NoError(t, s.Load())
	assert.Equal(t, 2, s.Feeds()[0].Total)
	assert.Equal(t, 1, s.Feeds()[0].New)
	assert.Equal(t, 0, s.Active(), "reload selects the first feed again")
}

func TestMissingFileSurfacesOnLoad(t *testing.T) {
	s := NewStore(nil, false)
	s.AddFile(filepath.Join(t.TempDir(), "absent"))
	defer s.Close()
	assert.Error(t, s.Load())
}
