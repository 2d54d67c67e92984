package financego

import (
	"context"
	"errors"
	"testing"
	"time"

	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/shopspring/decimal"
)

type sliceIter struct {
	bars []*finance.ChartBar
	pos  int
	err  error
}

func (it *sliceIter) Next() bool {
	if it.pos >= len(it.bars) {
		return false
	}
	it.pos++
	return true
}

func (it *sliceIter) Bar() *finance.ChartBar { return it.bars[it.pos-1] }
func (it *sliceIter) Err() error             { return it.err }

func bar(ts int64, close float64) *finance.ChartBar {
	c := decimal.NewFromFloat(close)
	return &finance.ChartBar{Open: c, High: c, Low: c, Close: c, Volume: 100, Timestamp: int(ts)}
}

func newSource(iter BarIterator, eq *finance.Equity, eqErr error) *FinanceGoSource {
	s := NewFinanceGoSource(logger.NewLogger("ERROR", "test"))
	s.chartGet = func(*chart.Params) BarIterator { return iter }
	s.equityGet = func(string) (*finance.Equity, error) { return eq, eqErr }
	return s
}

func window(t *testing.T) models.MDateWindow {
	t.Helper()
	w, err := models.ParseWindow("2023-01-03", "2023-12-29")
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func TestFetchPriceSeriesConvertsBars(t *testing.T) {
	jan4 := time.Date(2023, 1, 4, 14, 30, 0, 0, time.UTC).Unix()
	jan3 := time.Date(2023, 1, 3, 14, 30, 0, 0, time.UTC).Unix()
	sat := time.Date(2023, 1, 7, 14, 30, 0, 0, time.UTC).Unix()

	src := newSource(&sliceIter{bars: []*finance.ChartBar{bar(jan4, 126.36), bar(jan3, 125.07), bar(sat, 1)}}, nil, nil)

	series, err := src.FetchPriceSeries(context.Background(), "AAPL", window(t))
	if err != nil {
		t.Fatalf("FetchPriceSeries: %v", err)
	}
	if len(series.Bars) != 2 {
		t.Fatalf("bars = %d, want 2", len(series.Bars))
	}
	if series.Bars[0].Close != 125.07 {
		t.Errorf("bars not sorted, first close = %v", series.Bars[0].Close)
	}
	if series.Bars[0].Volume != 100 {
		t.Errorf("volume = %d", series.Bars[0].Volume)
	}
}

func TestFetchPriceSeriesNotFoundIsEmpty(t *testing.T) {
	src := newSource(&sliceIter{err: errors.New("remote-error: 404 Not Found")}, nil, nil)
	series, err := src.FetchPriceSeries(context.Background(), "NOPE", window(t))
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if !series.Empty() {
		t.Error("expected empty series")
	}
}

func TestFetchPriceSeriesError(t *testing.T) {
	src := newSource(&sliceIter{err: errors.New("connection reset")}, nil, nil)
	if _, err := src.FetchPriceSeries(context.Background(), "AAPL", window(t)); err == nil {
		t.Fatal("expected error")
	}
}

func TestFetchProfileMarketCapOnly(t *testing.T) {
	eq := &finance.Equity{}
	eq.MarketCap = 1500000
	src := newSource(&sliceIter{}, eq, nil)

	profile, err := src.FetchProfile(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("FetchProfile: %v", err)
	}
	if profile.MarketCapText() != "1,500,000" {
		t.Errorf("market cap = %q", profile.MarketCapText())
	}
	if profile.SectorText() != models.NotAvailable {
		t.Errorf("sector = %q", profile.SectorText())
	}
}

func TestFetchProfileError(t *testing.T) {
	src := newSource(&sliceIter{}, nil, errors.New("unauthorized"))
	if _, err := src.FetchProfile(context.Background(), "AAPL"); err == nil {
		t.Fatal("expected error")
	}
}
