package server

import (
	"fmt"
	"net/http"
	"strings"

	"stock-dashboard/src/analysis/core"
	"stock-dashboard/src/models"

	"github.com/gin-gonic/gin"
)

const (
	MsgEnterTicker = "Please enter a ticker."
	MsgNoData      = "No data found for this ticker."
	MsgErrorPrefix = "An error occurred: "
)

type tickerForm struct {
	Ticker string `form:"ticker"`
}

// -----------------------------------------------------------------------------

// index serves the lookup form and, on POST, the price table and profile.
func (s *DashboardServer) index(c *gin.Context) {
	page := models.MIndexPage{
		Window:    s.Config.DateWindow().String(),
		Benchmark: s.Config.Benchmark.DisplayName,
	}

	if c.Request.Method == http.MethodGet {
		c.HTML(http.StatusOK, "index.html", page)
		return
	}

	var form tickerForm
	if err := c.ShouldBind(&form); err != nil {
		s.Logger.Debug("Form bind failed: %v", err)
	}
	ticker := strings.TrimSpace(form.Ticker)
	if ticker == "" {
		page.Message = MsgEnterTicker
		c.HTML(s.status(http.StatusBadRequest), "index.html", page)
		return
	}
	page.Ticker = strings.ToUpper(ticker)

	ctx := c.Request.Context()
	series, err := s.MarketData.FetchPriceSeries(ctx, ticker, s.Config.DateWindow())
	if err != nil {
		s.Logger.Error("Price series for %s failed: %v", ticker, err)
		page.Message = MsgErrorPrefix + err.Error()
		c.HTML(s.status(http.StatusBadGateway), "index.html", page)
		return
	}
	if series.Empty() {
		page.Message = MsgNoData
		c.HTML(s.status(http.StatusNotFound), "index.html", page)
		return
	}

	page.Bars = series.Bars
	page.PeriodChange = periodChange(series)

	profile := s.lookupProfile(c, ticker)
	page.Sector = profile.SectorText()
	page.MarketCap = profile.MarketCapText()
	page.Summary = profile.SummaryText()

	c.HTML(http.StatusOK, "index.html", page)
}

// -----------------------------------------------------------------------------

// lookupProfile never fails: any provider error yields an empty profile,
// whose fields all render as unavailable.
func (s *DashboardServer) lookupProfile(c *gin.Context, ticker string) models.MCompanyProfile {
	profile, err := s.MarketData.FetchProfile(c.Request.Context(), ticker)
	if err != nil {
		s.Logger.Warning("Profile for %s unavailable: %v", ticker, err)
		return models.MCompanyProfile{}
	}
	if profile == nil {
		return models.MCompanyProfile{}
	}
	return *profile
}

// -----------------------------------------------------------------------------

func periodChange(series models.MPriceSeries) string {
	first := series.Bars[0].Close
	last := series.Bars[len(series.Bars)-1].Close
	return fmt.Sprintf("%+.2f%%", core.CalculateChangePercent(last, first)*100)
}
