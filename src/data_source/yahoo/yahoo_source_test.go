package yahoo

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
	"stock-dashboard/src/network"
)

// Bars at the NYSE open (14:30 UTC): Jan 3, Jan 4, a null bar on Jan 5 and a
// stray Saturday bar on Jan 7.
const chartBody = `{"chart":{"result":[{
	"meta":{"currency":"USD","symbol":"AAPL","exchangeTimezoneName":"America/New_York"},
	"timestamp":[1672756200,1672842600,1672929000,1673101800],
	"indicators":{"quote":[{
		"open":[130.28,126.89,null,129.0],
		"high":[130.90,128.66,null,129.5],
		"low":[124.17,125.08,null,128.0],
		"close":[125.07,126.36,null,129.1],
		"volume":[112117500,89113600,null,1000]
	}]}
}],"error":null}}`

const notFoundBody = `{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`

type fakeYahoo struct {
	crumbCalls   int32
	summaryCalls int32
	lastQuery    atomic.Value
	summaryBody  string
}

func (f *fakeYahoo) handler(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/cookie":
		http.SetCookie(w, &http.Cookie{Name: "A3", Value: "session", Path: "/"})
		w.WriteHeader(http.StatusNotFound)
	case r.URL.Path == "/v1/test/getcrumb":
		atomic.AddInt32(&f.crumbCalls, 1)
		if _, err := r.Cookie("A3"); err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, "crumb-123")
	case strings.HasPrefix(r.URL.Path, "/v10/finance/quoteSummary/"):
		atomic.AddInt32(&f.summaryCalls, 1)
		if r.URL.Query().Get("crumb") != "crumb-123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		fmt.Fprint(w, f.summaryBody)
	case r.URL.Path == "/v8/finance/chart/AAPL":
		f.lastQuery.Store(r.URL.RawQuery)
		fmt.Fprint(w, chartBody)
	case r.URL.Path == "/v8/finance/chart/GONE":
		fmt.Fprint(w, notFoundBody)
	case r.URL.Path == "/v8/finance/chart/BROKEN":
		w.WriteHeader(http.StatusInternalServerError)
	default:
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, notFoundBody)
	}
}

func newTestSource(t *testing.T, fake *fakeYahoo) *YahooFinanceSource {
	t.Helper()
	return newTestSourceWithLogger(t, fake, logger.NewLogger("ERROR", "test"))
}

func newTestSourceWithLogger(t *testing.T, fake *fakeYahoo, log *logger.Logger) *YahooFinanceSource {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(fake.handler))
	t.Cleanup(srv.Close)

	cfg := &models.MConfig{
		Network: models.MNetworkConfig{RequestTimeout: 5, MaxRetries: 0},
		DataSource: models.MDataSourceConfig{
			BaseURL:   srv.URL,
			CookieURL: srv.URL + "/cookie",
		},
	}
	nm := network.NewNetworkManager(cfg, log)
	nm.Backoff = time.Millisecond
	return NewYahooFinanceSource(cfg, nm, log)
}

func testWindow(t *testing.T) models.MDateWindow {
	t.Helper()
	w, err := models.ParseWindow("2023-01-03", "2023-12-29")
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func TestFetchPriceSeries(t *testing.T) {
	fake := &fakeYahoo{}
	src := newTestSource(t, fake)

	series, err := src.FetchPriceSeries(context.Background(), "AAPL", testWindow(t))
	if err != nil {
		t.Fatalf("FetchPriceSeries: %v", err)
	}
	if len(series.Bars) != 2 {
		t.Fatalf("bars = %d, want 2 (null and weekend rows dropped)", len(series.Bars))
	}

	first := series.Bars[0]
	if got := first.Date.Format(models.DateLayout); got != "2023-01-03" {
		t.Errorf("first date = %s", got)
	}
	if first.Close != 125.07 || first.Volume != 112117500 {
		t.Errorf("first bar = %+v", first)
	}
	if got := series.Bars[1].Date.Format(models.DateLayout); got != "2023-01-04" {
		t.Errorf("second date = %s", got)
	}

	query, _ := fake.lastQuery.Load().(string)
	for _, want := range []string{"interval=1d", "period1=", "period2="} {
		if !strings.Contains(query, want) {
			t.Errorf("query %q missing %q", query, want)
		}
	}
}

func TestFetchPriceSeriesUnknownSymbol(t *testing.T) {
	src := newTestSource(t, &fakeYahoo{})

	for _, symbol := range []string{"GONE", "NOPE"} {
		series, err := src.FetchPriceSeries(context.Background(), symbol, testWindow(t))
		if err != nil {
			t.Errorf("%s: unexpected error %v", symbol, err)
		}
		if !series.Empty() {
			t.Errorf("%s: expected empty series, got %d bars", symbol, len(series.Bars))
		}
	}
}

func TestFetchPriceSeriesUpstreamFailure(t *testing.T) {
	src := newTestSource(t, &fakeYahoo{})
	if _, err := src.FetchPriceSeries(context.Background(), "BROKEN", testWindow(t)); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestFetchProfilePartial(t *testing.T) {
	fake := &fakeYahoo{summaryBody: `{"quoteSummary":{"result":[{"assetProfile":{"sector":"Technology"},"price":{}}],"error":null}}`}
	src := newTestSource(t, fake)

	profile, err := src.FetchProfile(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("FetchProfile: %v", err)
	}
	if profile.SectorText() != "Technology" {
		t.Errorf("sector = %q", profile.SectorText())
	}
	if profile.MarketCapText() != models.NotAvailable {
		t.Errorf("market cap = %q, want N/A", profile.MarketCapText())
	}
	if profile.SummaryText() != models.NoSummaryAvailable {
		t.Errorf("summary = %q", profile.SummaryText())
	}
}

func TestFetchProfileReusesCrumb(t *testing.T) {
	fake := &fakeYahoo{summaryBody: `{"quoteSummary":{"result":[{
		"assetProfile":{"sector":"Technology","longBusinessSummary":"Makes phones."},
		"price":{"marketCap":{"raw":2950000000000,"fmt":"2.95T"}}}],"error":null}}`}
	src := newTestSource(t, fake)

	for i := 0; i < 2; i++ {
		profile, err := src.FetchProfile(context.Background(), "AAPL")
		if err != nil {
			t.Fatalf("FetchProfile #%d: %v", i, err)
		}
		if profile.MarketCapText() != "2,950,000,000,000" {
			t.Errorf("market cap = %q", profile.MarketCapText())
		}
		if profile.SummaryText() != "Makes phones." {
			t.Errorf("summary = %q", profile.SummaryText())
		}
	}
	if got := atomic.LoadInt32(&fake.crumbCalls); got != 1 {
		t.Errorf("crumb fetched %d times, want 1", got)
	}
}

func TestParseQuoteSummaryError(t *testing.T) {
	_, err := parseQuoteSummary([]byte(`{"quoteSummary":{"result":null,"error":{"code":"Unauthorized","description":"Invalid Crumb"}}}`))
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestSkippedBarsLoggedOnlyAtDebug(t *testing.T) {
	var quiet, verbose bytes.Buffer

	for _, tc := range []struct {
		buf   *bytes.Buffer
		level string
	}{
		{&quiet, "INFO"},
		{&verbose, "DEBUG"},
	} {
		src := newTestSourceWithLogger(t, &fakeYahoo{}, logger.NewLoggerTo(tc.buf, tc.level, "test"))
		if _, err := src.FetchPriceSeries(context.Background(), "AAPL", testWindow(t)); err != nil {
			t.Fatalf("%s: %v", tc.level, err)
		}
	}

	if strings.Contains(quiet.String(), "Skipping") {
		t.Errorf("skip lines written at INFO: %q", quiet.String())
	}
	out := verbose.String()
	if !strings.Contains(out, "Skipping null bar for AAPL at index 2") {
		t.Errorf("null bar not logged: %q", out)
	}
	if !strings.Contains(out, "Skipping non-session bar for AAPL") {
		t.Errorf("weekend bar not logged: %q", out)
	}
}
