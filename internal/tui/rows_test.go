package tui

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sfview/internal/feed"
)

func TestFeedRowsFormatting(t *testing.T) {
	a, _ := newTestApp(t)
	rows := a.feedRows

	require.Equal(t, 2, rows.Len())
	assert.Equal(t, "feedA (2/5)", rows.Text(0, rows.LabelWidth()))
	assert.Equal(t, "feedB (1/3)", rows.Text(1, rows.LabelWidth()))
	assert.True(t, rows.Bold(0))
	assert.Equal(t, 0, rows.FeedIndex(0))
	assert.Equal(t, 1, rows.FeedIndex(1))
}

func TestFeedRowsOnlyNewFilter(t *testing.T) {
	a, _ := newTestApp(t)
	a.store.Feeds()[0].New = 0

	rows := newFeedRows(a.store, true)
	require.Equal(t, 1, rows.Len())
	assert.Equal(t, 1, rows.FeedIndex(0), "rows map back to store indices, not list order")
}

func TestFeedRowsMatchIgnoresCounts(t *testing.T) {
	a, _ := newTestApp(t)
	rows := a.feedRows

	assert.True(t, rows.Match(0, "FEEDA"))
	assert.False(t, rows.Match(0, "2/5"), "searches must not hit the count suffix")
}

func TestItemRowsFormatting(t *testing.T) {
	a, _ := newTestApp(t)
	rows, ok := a.panes[paneItems].Rows().(*itemRows)
	require.True(t, ok)

	date := time.Unix(1700000001, 0).Format("2006-01-02 15:04")
	assert.Equal(t, "  "+date+" alpha one", rows.Text(0, 0))
	assert.False(t, rows.Bold(0))
	assert.True(t, rows.Bold(1))
	assert.True(t, rows.Match(2, "alpha three"))
	assert.True(t, rows.Match(2, date[:10]), "the date column is searchable")
}

func TestItemRowsEnclosureMarker(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feed")
	writeLines(t, path,
		"1700000001\twith audio\thttps://e.example/1\t\t\t\t\thttps://e.example/1.mp3",
	)

	store := feed.NewStore(nil, false)
	store.AddFile(path)
	defer store.Close()
	require.NoError(t, store.Load())

	rows := newItemRows(store, store.Feeds()[0])
	text := rows.Text(0, 0)
	assert.Equal(t, "@", text[:1])
	assert.Contains(t, text, "with audio")
}

func TestItemRowsTimeUnknown(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "feed")
	writeLines(t, path, itemLine("garbage", "undated", "https://e.example/1"))

	store := feed.NewStore(nil, false)
	store.AddFile(path)
	defer store.Close()
	require.NoError(t, store.Load())

	rows := newItemRows(store, store.Feeds()[0])
	assert.Equal(t, "  time unknown     undated", rows.Text(0, 0))
}
