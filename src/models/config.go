package models

// MConfig Structure
type MConfig struct {
	Name       string            `yaml:"name"`
	Host       string            `yaml:"host"`
	Port       int               `yaml:"port"`
	LogLevel   string            `yaml:"log_level"`
	GrpcHost   string            `yaml:"grpc_host"`
	GrpcPort   int               `yaml:"grpc_port"`
	Server     MServerConfig     `yaml:"server"`
	Network    MNetworkConfig    `yaml:"network"`
	DataSource MDataSourceConfig `yaml:"data_source"`
	Window     MWindowConfig     `yaml:"window"`
	Benchmark  MBenchmarkConfig  `yaml:"benchmark"`
}

type MServerConfig struct {
	// StrictStatus replaces the always-200 responses with 400/404/500/502.
	StrictStatus bool `yaml:"strict_status"`
}

type MNetworkConfig struct {
	Enabled        bool     `yaml:"enabled"`
	Proxies        []string `yaml:"proxies"`
	RequestTimeout int      `yaml:"timeout"`
	MaxRetries     int      `yaml:"retries"` // 0 disables retries
	UserAgent      string   `yaml:"user_agent"`
}

type MDataSourceConfig struct {
	Provider  string `yaml:"provider"` // "yahoo" or "finance-go"
	BaseURL   string `yaml:"base_url"`
	CookieURL string `yaml:"cookie_url"`
}

// MWindowConfig is the fixed historical date range, both ends inclusive.
type MWindowConfig struct {
	Start string `yaml:"start"` // YYYY-MM-DD
	End   string `yaml:"end"`   // YYYY-MM-DD
}

type MBenchmarkConfig struct {
	Symbol      string `yaml:"symbol"`
	DisplayName string `yaml:"display_name"` // used in chart titles
	Label       string `yaml:"label"`        // used in chart legends
}
