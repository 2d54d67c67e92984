package financego

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"stock-dashboard/src/helpers"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
	"stock-dashboard/src/utils"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/equity"
	"github.com/shopspring/decimal"
)

// BarIterator is the subset of the finance-go chart iterator used here.
type BarIterator interface {
	Next() bool
	Bar() *finance.ChartBar
	Err() error
}

// FinanceGoSource reads Yahoo data through the piquette/finance-go client.
// It cannot see sector or business summary, only market cap.
type FinanceGoSource struct {
	Logger *logger.Logger

	// Swappable for tests.
	chartGet  func(*chart.Params) BarIterator
	equityGet func(string) (*finance.Equity, error)
}

// -----------------------------------------------------------------------------

func NewFinanceGoSource(log *logger.Logger) *FinanceGoSource {
	return &FinanceGoSource{
		Logger:    log.Named("FinanceGoSource"),
		chartGet:  func(p *chart.Params) BarIterator { return chart.Get(p) },
		equityGet: equity.Get,
	}
}

// -----------------------------------------------------------------------------

func (s *FinanceGoSource) Name() string {
	return "finance-go"
}

// -----------------------------------------------------------------------------

// FetchPriceSeries fetches daily bars. finance-go has no context support, so
// ctx is only checked between bars.
func (s *FinanceGoSource) FetchPriceSeries(ctx context.Context, symbol string, window models.MDateWindow) (models.MPriceSeries, error) {
	series := models.MPriceSeries{Symbol: symbol}
	cal := utils.GetCalendar(symbol, s.Logger)

	start := window.Start
	end := window.EndExclusive()
	params := &chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}

	iter := s.chartGet(params)
	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return series, helpers.NewNetworkError("request cancelled", err)
		}
		b := iter.Bar()
		if b == nil {
			continue
		}

		t := time.Unix(int64(b.Timestamp), 0)
		if !cal.IsTradingDay(t) {
			continue
		}
		date := cal.SessionDate(t)
		if !window.Contains(date) {
			continue
		}

		series.Bars = append(series.Bars, models.MPriceBar{
			Date:   date,
			Open:   toFloat(b.Open),
			High:   toFloat(b.High),
			Low:    toFloat(b.Low),
			Close:  toFloat(b.Close),
			Volume: int64(b.Volume),
		})
	}
	if err := iter.Err(); err != nil {
		if isNotFound(err) {
			s.Logger.Info("No chart data for %s", symbol)
			return models.MPriceSeries{Symbol: symbol}, nil
		}
		return series, helpers.NewDataSourceError(fmt.Sprintf("fetch chart for %s", symbol), err)
	}

	sort.Slice(series.Bars, func(i, j int) bool { return series.Bars[i].Date.Before(series.Bars[j].Date) })
	return series, nil
}

// -----------------------------------------------------------------------------

// FetchProfile returns market cap only; sector and summary stay unset.
func (s *FinanceGoSource) FetchProfile(ctx context.Context, symbol string) (*models.MCompanyProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	eq, err := s.equityGet(symbol)
	if err != nil {
		return nil, helpers.NewDataSourceError(fmt.Sprintf("fetch equity for %s", symbol), err)
	}
	if eq == nil {
		return nil, nil
	}

	profile := &models.MCompanyProfile{}
	if eq.MarketCap > 0 {
		mc := eq.MarketCap
		profile.MarketCap = &mc
	}
	return profile, nil
}

// -----------------------------------------------------------------------------

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// -----------------------------------------------------------------------------

// isNotFound matches the remote error finance-go reports for unknown symbols.
func isNotFound(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "404") || strings.Contains(msg, "Not Found")
}
