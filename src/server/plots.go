package server

import (
	"net/http"
	"strings"

	"stock-dashboard/src/analysis/core"
	"stock-dashboard/src/charts"
	"stock-dashboard/src/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const (
	MsgNoPlotData         = "No data to plot."
	MsgNotEnoughData      = "Not enough data to compare."
	MsgPlotErrorPrefix    = "An error occurred while generating the plot: "
	MsgCompareErrorPrefix = "An error occurred while generating the comparison plot: "
)

// -----------------------------------------------------------------------------

// plotPrice renders the closing price history of :ticker as PNG.
func (s *DashboardServer) plotPrice(c *gin.Context) {
	ticker := strings.TrimSpace(c.Param("ticker"))
	symbol := strings.ToUpper(ticker)

	series, err := s.MarketData.FetchPriceSeries(c.Request.Context(), ticker, s.Config.DateWindow())
	if err != nil {
		s.Logger.Error("Price plot for %s failed: %v", ticker, err)
		c.String(s.status(http.StatusBadGateway), MsgPlotErrorPrefix+err.Error())
		return
	}
	if series.Empty() {
		c.String(s.status(http.StatusNotFound), MsgNoPlotData)
		return
	}

	img, err := charts.RenderPNG(charts.PriceChart(symbol, series.Dates(), series.Closes()))
	if err != nil {
		s.Logger.Error("Price plot for %s failed: %v", ticker, err)
		c.String(s.status(http.StatusInternalServerError), MsgPlotErrorPrefix+err.Error())
		return
	}
	writePNG(c, img)
}

// -----------------------------------------------------------------------------

// plotComparison renders :ticker against the benchmark, both normalized to 1.
func (s *DashboardServer) plotComparison(c *gin.Context) {
	ticker := strings.TrimSpace(c.Param("ticker"))
	symbol := strings.ToUpper(ticker)
	window := s.Config.DateWindow()
	bench := s.Config.Benchmark

	var target, benchmark models.MPriceSeries
	g, ctx := errgroup.WithContext(c.Request.Context())
	g.Go(func() error {
		var err error
		target, err = s.MarketData.FetchPriceSeries(ctx, ticker, window)
		return err
	})
	g.Go(func() error {
		var err error
		benchmark, err = s.MarketData.FetchPriceSeries(ctx, bench.Symbol, window)
		return err
	})
	if err := g.Wait(); err != nil {
		s.Logger.Error("Comparison plot for %s failed: %v", ticker, err)
		c.String(s.status(http.StatusBadGateway), MsgCompareErrorPrefix+err.Error())
		return
	}
	if target.Empty() || benchmark.Empty() {
		c.String(s.status(http.StatusNotFound), MsgNotEnoughData)
		return
	}

	spec, err := s.comparisonSpec(symbol, target, benchmark)
	if err != nil {
		s.Logger.Error("Comparison plot for %s failed: %v", ticker, err)
		c.String(s.status(http.StatusInternalServerError), MsgCompareErrorPrefix+err.Error())
		return
	}
	img, err := charts.RenderPNG(spec)
	if err != nil {
		s.Logger.Error("Comparison plot for %s failed: %v", ticker, err)
		c.String(s.status(http.StatusInternalServerError), MsgCompareErrorPrefix+err.Error())
		return
	}
	writePNG(c, img)
}

// -----------------------------------------------------------------------------

// comparisonSpec normalizes both close series to 1 at their first bar.
func (s *DashboardServer) comparisonSpec(symbol string, target, benchmark models.MPriceSeries) (charts.Spec, error) {
	targetNorm, err := core.Normalize(target.Closes())
	if err != nil {
		return charts.Spec{}, err
	}
	benchNorm, err := core.Normalize(benchmark.Closes())
	if err != nil {
		return charts.Spec{}, err
	}
	bench := s.Config.Benchmark
	return charts.ComparisonChart(symbol, bench.DisplayName,
		charts.Line{Dates: target.Dates(), Values: targetNorm},
		charts.Line{Label: bench.Label, Dates: benchmark.Dates(), Values: benchNorm},
	), nil
}

// -----------------------------------------------------------------------------

func writePNG(c *gin.Context, img []byte) {
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", img)
}
