package feed

import (
	"strconv"
	"strings"
	"time"
)

// Field indices of an sfeed(5) record.
const (
	FieldTimestamp = iota
	FieldTitle
	FieldLink
	FieldContent
	FieldContentType
	FieldID
	FieldAuthor
	FieldEnclosure
	NumFields
)

// Record is one TAB-separated feed line split into its fixed fields.
type Record [NumFields]string

// ParseRecord splits a line on TAB into the fixed field set. Missing
// trailing fields stay empty strings; extra separators end up in the
// last field untouched. Parsing never fails.
func ParseRecord(line string) Record {
	var r Record
	rest := line
	for i := 0; i < NumFields-1; i++ {
		j := strings.IndexByte(rest, '\t')
		if j < 0 {
			r[i] = rest
			return r
		}
		r[i] = rest[:j]
		rest = rest[j+1:]
	}
	r[NumFields-1] = rest
	return r
}

// ParseTimestamp parses signed epoch seconds. A fractional part is
// ignored. Empty or non-numeric input reports ok=false instead of an
// error; a record with a broken timestamp is still a record.
func ParseTimestamp(s string) (time.Time, bool) {
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		return time.Time{}, false
	}
	sec, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(sec, 0), true
}
