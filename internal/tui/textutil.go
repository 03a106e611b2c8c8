package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// padTruncate fits s into exactly width display columns. A string that
// is too wide is cut on a rune boundary and marked with a single
// ellipsis; double-width characters are never split, so a straddling
// one is replaced by padding after the marker. Shorter strings are
// space-padded.
func padTruncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if w := runewidth.StringWidth(s); w <= width {
		return s + strings.Repeat(" ", width-w)
	}
	head := runewidth.Truncate(s, width-1, "")
	rest := width - runewidth.StringWidth(head) - 1
	return head + "…" + strings.Repeat(" ", rest)
}

// containsFold reports whether substr occurs in s, case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
