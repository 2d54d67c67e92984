package utils

// Defaults for the historical window and the comparison benchmark.
const (
	DefaultWindowStart          = "2023-01-03"
	DefaultWindowEnd            = "2023-12-29"
	DefaultBenchmarkSymbol      = "SPY"
	DefaultBenchmarkDisplayName = "S&P 500"
	DefaultBenchmarkLabel       = "SPY (S&P 500)"

	DefaultProvider  = "yahoo"
	DefaultBaseURL   = "https://query1.finance.yahoo.com"
	DefaultCookieURL = "https://fc.yahoo.com"

	DefaultPort           = 5000
	DefaultRequestTimeout = 30
)
