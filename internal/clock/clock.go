package clock

import (
	"strings"
	"time"
	_ "time/tzdata"
)

const (
	timeLayout = "15:04:05"
	dateLayout = "2006-01-02"
)

// Fields are the formatted clock strings for one tick.
type Fields struct {
	UTC       string
	LocalDate string
	LocalTime string
	TZLabel   string
}

// Formatter converts instants into Fields for a fixed timezone. The zone is
// resolved once; an unknown name falls back to UTC.
type Formatter struct {
	name  string
	label string
	loc   *time.Location
	valid bool
}

func NewFormatter(tzName string) *Formatter {
	f := &Formatter{name: tzName, label: Label(tzName), loc: time.UTC}
	if loc, err := time.LoadLocation(tzName); err == nil && tzName != "" {
		f.loc, f.valid = loc, true
	}
	return f
}

// Valid reports whether the timezone name resolved.
func (f *Formatter) Valid() bool { return f.valid }

func (f *Formatter) Name() string { return f.name }

func (f *Formatter) Format(now time.Time) Fields {
	utc := now.UTC()
	local := utc.In(f.loc)
	return Fields{
		UTC:       utc.Format(timeLayout),
		LocalDate: local.Format(dateLayout),
		LocalTime: local.Format(timeLayout),
		TZLabel:   f.label,
	}
}

// Format is a one-shot NewFormatter(tzName).Format(now).
func Format(now time.Time, tzName string) Fields {
	return NewFormatter(tzName).Format(now)
}

// Label is the last path segment of an IANA name with underscores as spaces:
// "America/New_York" -> "New York".
func Label(tzName string) string {
	if i := strings.LastIndexByte(tzName, '/'); i >= 0 {
		tzName = tzName[i+1:]
	}
	return strings.ReplaceAll(tzName, "_", " ")
}
