package models

import "time"

// MPriceBar is one daily OHLCV record.
type MPriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// MPriceSeries holds the bars of a single symbol in chronological order.
type MPriceSeries struct {
	Symbol string      `json:"symbol"`
	Bars   []MPriceBar `json:"bars"`
}

// -----------------------------------------------------------------------------

func (s MPriceSeries) Empty() bool {
	return len(s.Bars) == 0
}

// -----------------------------------------------------------------------------

// Closes returns the closing prices in bar order.
func (s MPriceSeries) Closes() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Close
	}
	return out
}

// -----------------------------------------------------------------------------

// Dates returns the bar dates in bar order.
func (s MPriceSeries) Dates() []time.Time {
	out := make([]time.Time, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Date
	}
	return out
}
