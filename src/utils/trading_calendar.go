package utils

import (
	"strings"
	"sync"
	"time"

	"stock-dashboard/src/logger"

	"github.com/scmhub/calendar"
)

// suffixMIC maps Yahoo ticker suffixes to ISO 10383 market identifiers.
// Symbols without a known suffix trade on NYSE.
var suffixMIC = map[string]string{
	".L":  "xlon",
	".PA": "xpar",
	".DE": "xfra",
	".AS": "xams",
	".BR": "xbru",
	".MI": "xmil",
	".MC": "xmad",
	".ST": "xsto",
	".CO": "xcse",
	".HE": "xhel",
	".VI": "xwbo",
	".SW": "xswx",
	".TO": "xtse",
	".V":  "xtsx",
	".T":  "xtks",
	".HK": "xhkg",
	".AX": "xasx",
	".KS": "xkrx",
	".TW": "xtai",
	".SS": "xshg",
	".SZ": "xshe",
}

// TradingCalendar decides which dates are exchange sessions.
type TradingCalendar struct {
	MIC      string
	Calendar *calendar.Calendar
	Fallback bool
	Timezone *time.Location
}

var (
	calendarCache   = make(map[string]*TradingCalendar)
	calendarCacheMu sync.Mutex
)

// -----------------------------------------------------------------------------

// MICForSymbol resolves the exchange of a Yahoo-style symbol.
func MICForSymbol(symbol string) string {
	upper := strings.ToUpper(symbol)
	if i := strings.LastIndex(upper, "."); i > 0 {
		if mic, ok := suffixMIC[upper[i:]]; ok {
			return mic
		}
	}
	return "xnys"
}

// -----------------------------------------------------------------------------

// GetCalendar returns the trading calendar of symbol's exchange. Calendars
// are built once per MIC and are read-only afterwards.
func GetCalendar(symbol string, log *logger.Logger) *TradingCalendar {
	mic := MICForSymbol(symbol)

	calendarCacheMu.Lock()
	defer calendarCacheMu.Unlock()

	if tc, ok := calendarCache[mic]; ok {
		return tc
	}

	cal := calendar.GetCalendar(mic)
	if cal == nil {
		cal = calendar.GetCalendar("xnys")
	}

	var tc *TradingCalendar
	if cal == nil {
		tc = weekdayCalendar(mic, log)
	} else {
		tc = &TradingCalendar{MIC: mic, Calendar: cal, Timezone: cal.Loc}
	}

	calendarCache[mic] = tc
	return tc
}

// -----------------------------------------------------------------------------

// weekdayCalendar treats every Monday to Friday in New York as a session.
func weekdayCalendar(mic string, log *logger.Logger) *TradingCalendar {
	log.Warning("Failed to load calendar for MIC '%s' and fallback 'xnys'. Using Mon-Fri fallback.", mic)
	nyLoc, err := time.LoadLocation("America/New_York")
	if err != nil {
		nyLoc = time.UTC
	}
	return &TradingCalendar{MIC: mic, Fallback: true, Timezone: nyLoc}
}

// -----------------------------------------------------------------------------

// IsTradingDay reports whether date, seen in the exchange timezone, is a session.
func (tc *TradingCalendar) IsTradingDay(date time.Time) bool {
	if tc.Timezone != nil {
		date = date.In(tc.Timezone)
	}

	if tc.Fallback {
		weekday := date.Weekday()
		return weekday != time.Saturday && weekday != time.Sunday
	}
	return tc.Calendar.IsBusinessDay(date)
}

// -----------------------------------------------------------------------------

// SessionDate returns the calendar date of t in the exchange timezone as a
// UTC midnight.
func (tc *TradingCalendar) SessionDate(t time.Time) time.Time {
	if tc.Timezone != nil {
		t = t.In(tc.Timezone)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
