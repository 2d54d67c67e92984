package models

import (
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// MDateWindow is a parsed, inclusive date range.
type MDateWindow struct {
	Start time.Time
	End   time.Time
}

// -----------------------------------------------------------------------------

// ParseWindow parses two YYYY-MM-DD dates as UTC midnights.
func ParseWindow(start, end string) (MDateWindow, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return MDateWindow{}, fmt.Errorf("invalid window start %q: %w", start, err)
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return MDateWindow{}, fmt.Errorf("invalid window end %q: %w", end, err)
	}
	if e.Before(s) {
		return MDateWindow{}, fmt.Errorf("window end %s is before start %s", end, start)
	}
	return MDateWindow{Start: s, End: e}, nil
}

// -----------------------------------------------------------------------------

// Contains reports whether the calendar date of t falls inside the window.
func (w MDateWindow) Contains(t time.Time) bool {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(w.Start) && !d.After(w.End)
}

// -----------------------------------------------------------------------------

// EndExclusive is the first instant after the window.
func (w MDateWindow) EndExclusive() time.Time {
	return w.End.AddDate(0, 0, 1)
}

// -----------------------------------------------------------------------------

func (w MDateWindow) String() string {
	return fmt.Sprintf("%s to %s", w.Start.Format(DateLayout), w.End.Format(DateLayout))
}
