package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"stock-dashboard/src/helpers"
	"stock-dashboard/src/interfaces"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
	"stock-dashboard/src/utils"
)

type YahooFinanceSource struct {
	Config  *models.MConfig
	Network interfaces.INetworkManager
	Logger  *logger.Logger

	crumb   string
	crumbMu sync.Mutex
}

// -----------------------------------------------------------------------------

func NewYahooFinanceSource(cfg *models.MConfig, netMgr interfaces.INetworkManager, log *logger.Logger) *YahooFinanceSource {
	return &YahooFinanceSource{
		Config:  cfg,
		Network: netMgr,
		Logger:  log.Named("YahooFinanceSource"),
	}
}

// -----------------------------------------------------------------------------

func (s *YahooFinanceSource) Name() string {
	return "yahoo"
}

// -----------------------------------------------------------------------------
// Price history
// -----------------------------------------------------------------------------

type YahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency             string `json:"currency"`
				Symbol               string `json:"symbol"`
				ExchangeTimezoneName string `json:"exchangeTimezoneName"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					High   []*float64 `json:"high"`   // Use pointers to handle null
					Low    []*float64 `json:"low"`    // Use pointers to handle null
					Open   []*float64 `json:"open"`   // Use pointers to handle null
					Close  []*float64 `json:"close"`  // Use pointers to handle null
					Volume []*float64 `json:"volume"` // Use pointers to handle null
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *yahooError `json:"error"`
	} `json:"chart"`
}

type yahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// -----------------------------------------------------------------------------

// FetchPriceSeries fetches daily bars for symbol over the inclusive window.
func (s *YahooFinanceSource) FetchPriceSeries(ctx context.Context, symbol string, window models.MDateWindow) (models.MPriceSeries, error) {
	series := models.MPriceSeries{Symbol: symbol}
	cal := utils.GetCalendar(symbol, s.Logger)

	params := map[string]string{
		"period1":        strconv.FormatInt(exchangeMidnight(window.Start, cal.Timezone).Unix(), 10),
		"period2":        strconv.FormatInt(exchangeMidnight(window.EndExclusive(), cal.Timezone).Unix(), 10),
		"interval":       "1d",
		"includePrePost": "false",
		"events":         "div,splits",
	}
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s", s.Config.DataSource.BaseURL, url.PathEscape(symbol))

	body, err := s.Network.Get(ctx, endpoint, params)
	if err != nil {
		if helpers.IsNotFound(err) {
			s.Logger.Info("No chart data for %s", symbol)
			return series, nil
		}
		return series, helpers.NewDataSourceError(fmt.Sprintf("fetch chart for %s", symbol), err)
	}

	bars, err := s.parseChartResponse(symbol, body, window, cal)
	if err != nil {
		return series, helpers.NewDataSourceError(fmt.Sprintf("parse chart for %s", symbol), err)
	}
	series.Bars = bars

	if len(bars) > 0 {
		s.Logger.Debug("Fetched %s: %d bars [%s -> %s]", symbol, len(bars),
			bars[0].Date.Format(models.DateLayout), bars[len(bars)-1].Date.Format(models.DateLayout))
	}
	return series, nil
}

// -----------------------------------------------------------------------------

func (s *YahooFinanceSource) parseChartResponse(symbol string, data []byte, window models.MDateWindow, cal *utils.TradingCalendar) ([]models.MPriceBar, error) {
	var resp YahooChartResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("json unmarshal failed: %w", err)
	}

	if resp.Chart.Error != nil {
		if resp.Chart.Error.Code == "Not Found" {
			return nil, nil
		}
		return nil, fmt.Errorf("yahoo api error: %s - %s", resp.Chart.Error.Code, resp.Chart.Error.Description)
	}

	// A known symbol with no sessions in range has a result without timestamps.
	if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Timestamp) == 0 {
		return nil, nil
	}

	result := resp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("no quote data in response for %s", symbol)
	}
	quote := result.Indicators.Quote[0]

	n := len(result.Timestamp)
	if len(quote.Open) != n || len(quote.High) != n || len(quote.Low) != n ||
		len(quote.Close) != n || len(quote.Volume) != n {
		return nil, fmt.Errorf("data alignment error for %s", symbol)
	}

	debug := s.Logger.IsDebug()
	bars := make([]models.MPriceBar, 0, n)
	for i, ts := range result.Timestamp {
		if quote.Open[i] == nil || quote.High[i] == nil || quote.Low[i] == nil || quote.Close[i] == nil {
			if debug {
				s.Logger.Debug("Skipping null bar for %s at index %d", symbol, i)
			}
			continue
		}

		t := time.Unix(ts, 0)
		if !cal.IsTradingDay(t) {
			if debug {
				s.Logger.Debug("Skipping non-session bar for %s at %s", symbol, t.UTC().Format(time.RFC3339))
			}
			continue
		}
		date := cal.SessionDate(t)
		if !window.Contains(date) {
			continue
		}

		var volume int64
		if quote.Volume[i] != nil {
			volume = int64(*quote.Volume[i])
		}

		bars = append(bars, models.MPriceBar{
			Date:   date,
			Open:   *quote.Open[i],
			High:   *quote.High[i],
			Low:    *quote.Low[i],
			Close:  *quote.Close[i],
			Volume: volume,
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

// -----------------------------------------------------------------------------
// Company profile
// -----------------------------------------------------------------------------

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			AssetProfile *struct {
				Sector              string `json:"sector"`
				LongBusinessSummary string `json:"longBusinessSummary"`
			} `json:"assetProfile"`
			Price *struct {
				MarketCap *struct {
					Raw *float64 `json:"raw"`
				} `json:"marketCap"`
			} `json:"price"`
		} `json:"result"`
		Error *yahooError `json:"error"`
	} `json:"quoteSummary"`
}

// -----------------------------------------------------------------------------

// FetchProfile reads sector, summary and market cap from the quoteSummary
// endpoint, which requires a session cookie and crumb.
func (s *YahooFinanceSource) FetchProfile(ctx context.Context, symbol string) (*models.MCompanyProfile, error) {
	crumb, err := s.getCrumb(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/v10/finance/quoteSummary/%s", s.Config.DataSource.BaseURL, url.PathEscape(symbol))
	params := map[string]string{
		"modules": "assetProfile,price",
		"crumb":   crumb,
	}

	body, err := s.Network.Get(ctx, endpoint, params)
	if err != nil {
		var statusErr *helpers.HTTPStatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusUnauthorized {
			s.resetCrumb()
		}
		return nil, helpers.NewDataSourceError(fmt.Sprintf("fetch profile for %s", symbol), err)
	}

	return parseQuoteSummary(body)
}

// -----------------------------------------------------------------------------

func parseQuoteSummary(body []byte) (*models.MCompanyProfile, error) {
	var resp quoteSummaryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("json unmarshal failed: %w", err)
	}
	if resp.QuoteSummary.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s - %s", resp.QuoteSummary.Error.Code, resp.QuoteSummary.Error.Description)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, nil
	}

	result := resp.QuoteSummary.Result[0]
	profile := &models.MCompanyProfile{}

	if ap := result.AssetProfile; ap != nil {
		if ap.Sector != "" {
			sector := ap.Sector
			profile.Sector = &sector
		}
		if ap.LongBusinessSummary != "" {
			summary := ap.LongBusinessSummary
			profile.Summary = &summary
		}
	}
	if p := result.Price; p != nil && p.MarketCap != nil && p.MarketCap.Raw != nil {
		mc := int64(*p.MarketCap.Raw)
		profile.MarketCap = &mc
	}
	return profile, nil
}

// -----------------------------------------------------------------------------

func (s *YahooFinanceSource) getCrumb(ctx context.Context) (string, error) {
	s.crumbMu.Lock()
	defer s.crumbMu.Unlock()

	if s.crumb != "" {
		return s.crumb, nil
	}

	if err := s.Network.Visit(ctx, s.Config.DataSource.CookieURL); err != nil {
		return "", err
	}

	body, err := s.Network.Get(ctx, s.Config.DataSource.BaseURL+"/v1/test/getcrumb", nil)
	if err != nil {
		return "", helpers.NewDataSourceError("fetch crumb", err)
	}

	crumb := strings.TrimSpace(string(body))
	if crumb == "" || strings.Contains(crumb, "<") {
		return "", helpers.NewDataSourceError("invalid crumb received", nil)
	}

	s.crumb = crumb
	return crumb, nil
}

// -----------------------------------------------------------------------------

func (s *YahooFinanceSource) resetCrumb() {
	s.crumbMu.Lock()
	s.crumb = ""
	s.crumbMu.Unlock()
}

// -----------------------------------------------------------------------------

func exchangeMidnight(d time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
}
