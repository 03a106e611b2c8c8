package tui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"sfview/internal/feed"
)

// feedRows presents the sidebar: one row per visible feed, formatted
// "<name> (<new>/<total>)" with the counts right-aligned. Rows refer
// to feeds by index into the store, never by pointer into a pane.
type feedRows struct {
	store      *feed.Store
	visible    []int // store indices, filtered when only-new is on
	labelWidth int
}

func newFeedRows(store *feed.Store, onlyNew bool) *feedRows {
	r := &feedRows{store: store}
	for i, f := range store.Feeds() {
		if onlyNew && f.New == 0 {
			continue
		}
		r.visible = append(r.visible, i)
		if w := runewidth.StringWidth(feedLabel(f)); w > r.labelWidth {
			r.labelWidth = w
		}
	}
	return r
}

func feedLabel(f *feed.Feed) string {
	return fmt.Sprintf("%s (%d/%d)", f.Name, f.New, f.Total)
}

// FeedIndex maps a row back to its index in the store.
func (r *feedRows) FeedIndex(row int) int { return r.visible[row] }

// LabelWidth is the widest formatted label; the sidebar pane is
// exactly this wide.
func (r *feedRows) LabelWidth() int { return r.labelWidth }

func (r *feedRows) Len() int { return len(r.visible) }

func (r *feedRows) Text(i, width int) string {
	f := r.store.Feeds()[r.visible[i]]
	counts := fmt.Sprintf("(%d/%d)", f.New, f.Total)
	pad := width - len(counts)
	if pad < 0 {
		pad = 0
	}
	return padTruncate(f.Name, pad) + counts
}

func (r *feedRows) Bold(i int) bool {
	return r.store.Feeds()[r.visible[i]].New > 0
}

// Match is a case-insensitive substring match on the feed name alone,
// so searches are not confused by the count suffix.
func (r *feedRows) Match(i int, query string) bool {
	return containsFold(r.store.Feeds()[r.visible[i]].Name, query)
}

// itemRows presents the active feed's items as
// "<enclosure-marker> <date> <title>". Access to anything beyond the
// new flag materializes a lazily loaded item through the store.
type itemRows struct {
	store *feed.Store
	feed  *feed.Feed
}

func newItemRows(store *feed.Store, f *feed.Feed) *itemRows {
	return &itemRows{store: store, feed: f}
}

// Item returns row i's item with all fields materialized.
func (r *itemRows) Item(i int) *feed.Item {
	it := r.feed.Items[i]
	r.store.Materialize(r.feed, it)
	return it
}

func (r *itemRows) Len() int { return len(r.feed.Items) }

func (r *itemRows) Text(i, _ int) string {
	it := r.Item(i)
	marker := ' '
	if it.Enclosure != "" {
		marker = '@'
	}
	date := "time unknown    "
	if it.TimeOK {
		date = it.Time.Format("2006-01-02 15:04")
	}
	return fmt.Sprintf("%c %s %s", marker, date, it.Title)
}

func (r *itemRows) Bold(i int) bool { return r.feed.Items[i].IsNew }

// Match runs against the formatted row text, so a search can hit the
// date as well as the title.
func (r *itemRows) Match(i int, query string) bool {
	return strings.Contains(strings.ToLower(r.Text(i, 0)), strings.ToLower(query))
}
