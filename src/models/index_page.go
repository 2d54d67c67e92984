package models

// MIndexPage is the view model of the index template.
type MIndexPage struct {
	Ticker    string // upper-cased for display
	Message   string
	Bars      []MPriceBar
	Sector    string
	MarketCap string
	Summary   string
	Window    string
	Benchmark string
	// PeriodChange is the close-to-close change over the window, e.g. "+12.34%".
	PeriodChange string
}

// -----------------------------------------------------------------------------

func (p MIndexPage) HasTable() bool {
	return len(p.Bars) > 0
}
