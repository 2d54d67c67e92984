package models

import "github.com/dustin/go-humanize"

const (
	NotAvailable       = "N/A"
	NoSummaryAvailable = "No summary available."
)

// MCompanyProfile is the optional company metadata. A nil field means the
// provider did not supply it.
type MCompanyProfile struct {
	Sector    *string `json:"sector,omitempty"`
	MarketCap *int64  `json:"market_cap,omitempty"`
	Summary   *string `json:"summary,omitempty"`
}

// -----------------------------------------------------------------------------

func (p MCompanyProfile) SectorText() string {
	if p.Sector == nil || *p.Sector == "" {
		return NotAvailable
	}
	return *p.Sector
}

// -----------------------------------------------------------------------------

func (p MCompanyProfile) MarketCapText() string {
	if p.MarketCap == nil {
		return NotAvailable
	}
	return humanize.Comma(*p.MarketCap)
}

// -----------------------------------------------------------------------------

func (p MCompanyProfile) SummaryText() string {
	if p.Summary == nil || *p.Summary == "" {
		return NoSummaryAvailable
	}
	return *p.Summary
}
