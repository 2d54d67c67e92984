package utils

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"stock-dashboard/src/logger"
)

var testLogger = logger.NewLogger("ERROR", "test")

func TestMICForSymbol(t *testing.T) {
	tests := map[string]string{
		"AAPL":    "xnys",
		"spy":     "xnys",
		"VOD.L":   "xlon",
		"7203.T":  "xtks",
		"0700.hk": "xhkg",
		"BRK.B":   "xnys",
	}
	for symbol, want := range tests {
		if got := MICForSymbol(symbol); got != want {
			t.Errorf("MICForSymbol(%q) = %q, want %q", symbol, got, want)
		}
	}
}

func TestGetCalendarIsCached(t *testing.T) {
	a := GetCalendar("AAPL", testLogger)
	b := GetCalendar("MSFT", testLogger)
	if a != b {
		t.Error("symbols on the same exchange should share a calendar")
	}
}

func TestIsTradingDay(t *testing.T) {
	tc := GetCalendar("AAPL", testLogger)

	// 14:30 UTC is the NYSE open in winter.
	weekday := time.Date(2023, 1, 3, 14, 30, 0, 0, time.UTC)
	saturday := time.Date(2023, 1, 7, 14, 30, 0, 0, time.UTC)
	christmas := time.Date(2023, 12, 25, 14, 30, 0, 0, time.UTC)

	if !tc.IsTradingDay(weekday) {
		t.Error("2023-01-03 should be a trading day")
	}
	if tc.IsTradingDay(saturday) {
		t.Error("2023-01-07 is a Saturday")
	}
	if tc.IsTradingDay(christmas) {
		t.Error("2023-12-25 is an NYSE holiday")
	}
}

func TestSessionDate(t *testing.T) {
	tc := GetCalendar("AAPL", testLogger)
	// 03:00 UTC on Jan 4 is still Jan 3 in New York.
	got := tc.SessionDate(time.Date(2023, 1, 4, 3, 0, 0, 0, time.UTC))
	want := time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("SessionDate = %v, want %v", got, want)
	}
}

func TestWeekdayCalendarLogsThroughLogger(t *testing.T) {
	var buf bytes.Buffer
	tc := weekdayCalendar("xzzz", logger.NewLoggerTo(&buf, "WARNING", "calendar"))

	if !strings.Contains(buf.String(), "[calendar] WARNING: Failed to load calendar for MIC 'xzzz'") {
		t.Errorf("warning not written through logger: %q", buf.String())
	}
	if !tc.Fallback || tc.MIC != "xzzz" {
		t.Errorf("calendar = %+v", tc)
	}

	// 2023-01-06 is a Friday, 2023-01-07 a Saturday.
	friday := time.Date(2023, 1, 6, 15, 0, 0, 0, time.UTC)
	saturday := time.Date(2023, 1, 7, 15, 0, 0, 0, time.UTC)
	if !tc.IsTradingDay(friday) || tc.IsTradingDay(saturday) {
		t.Error("fallback should accept weekdays only")
	}
}
