package record

import (
	"strings"
	"time"
)

// Date carries either a structured date or a free-form string, mirroring
// how the two record sources deliver dates: spreadsheet cells parse into
// time values when they match a known layout, web forms stay raw.
type Date struct {
	t   time.Time
	raw string
}

// rowDateLayouts are the layouts spreadsheet cells are tried against, in
// order. Free-form values that match none stay raw.
var rowDateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"01-02-06",
	"1/2/06 15:04",
}

// DateOf wraps a structured date.
func DateOf(t time.Time) Date { return Date{t: t} }

// RawDate wraps a free-form date string.
func RawDate(s string) Date { return Date{raw: s} }

// ParseDate parses s against the known layouts, falling back to raw.
func ParseDate(s string) Date {
	for _, layout := range rowDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{t: t}
		}
	}
	return Date{raw: s}
}

// Structured reports whether the date carries a time value.
func (d Date) Structured() bool { return !d.t.IsZero() }

// Display renders the in-document form: DD/MM/YYYY for structured dates,
// the raw string otherwise.
func (d Date) Display() string {
	if d.Structured() {
		return d.t.Format("02/01/2006")
	}
	return d.raw
}

// FileStamp renders the filename form: YYYY-MM-DD for structured dates;
// free-form strings are cut at the first whitespace and have '/' and ':'
// turned into '-'.
func (d Date) FileStamp() string {
	if d.Structured() {
		return d.t.Format("2006-01-02")
	}
	s := d.raw
	if fields := strings.Fields(s); len(fields) > 0 {
		s = fields[0]
	}
	s = strings.ReplaceAll(s, "/", "-")
	return strings.ReplaceAll(s, ":", "-")
}
