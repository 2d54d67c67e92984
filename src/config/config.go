package config

import (
	"fmt"
	"os"
	"strconv"

	"stock-dashboard/src/helpers"
	"stock-dashboard/src/models"
	"stock-dashboard/src/utils"

	"gopkg.in/yaml.v3"
)

// KnownProviders lists the accepted data_source.provider values.
var KnownProviders = []string{"yahoo", "finance-go"}

// -----------------------------------------------------------------------------

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
	window models.MDateWindow
}

// -----------------------------------------------------------------------------

// NewConfig creates a new Config from a YAML file. A missing file is not an
// error: defaults and environment overrides still apply.
func NewConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil && !os.IsNotExist(err) {
		return nil, configError(fmt.Sprintf("failed to read config file '%s'", configPath), err)
	}
	return Parse(data)
}

// -----------------------------------------------------------------------------

// Parse builds a validated Config from YAML bytes.
func Parse(data []byte) (*Config, error) {
	var modelConfig models.MConfig
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, &modelConfig); err != nil {
			return nil, configError("failed to parse config from YAML", err)
		}
	}

	config := &Config{MConfig: &modelConfig}
	config.applyEnv()
	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, configError("config validation failed", err)
	}
	return config, nil
}

// -----------------------------------------------------------------------------

func (c *Config) applyEnv() {
	if v := os.Getenv("DASHBOARD_HOST"); v != "" {
		c.Host = v
	}
	if v := os.Getenv("DASHBOARD_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			c.Port = port
		}
	}
	if v := os.Getenv("DASHBOARD_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("DASHBOARD_PROVIDER"); v != "" {
		c.DataSource.Provider = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Network.Enabled = true
		c.Network.Proxies = append([]string{v}, c.Network.Proxies...)
	}
}

// -----------------------------------------------------------------------------

func (c *Config) applyDefaults() {
	if c.Name == "" {
		c.Name = "stock-dashboard"
	}
	if c.Host == "" {
		c.Host = "127.0.0.1"
	}
	if c.Port == 0 {
		c.Port = utils.DefaultPort
	}
	if c.LogLevel == "" {
		c.LogLevel = "INFO"
	}
	if c.Network.RequestTimeout == 0 {
		c.Network.RequestTimeout = utils.DefaultRequestTimeout
	}
	if c.DataSource.Provider == "" {
		c.DataSource.Provider = utils.DefaultProvider
	}
	if c.DataSource.BaseURL == "" {
		c.DataSource.BaseURL = utils.DefaultBaseURL
	}
	if c.DataSource.CookieURL == "" {
		c.DataSource.CookieURL = utils.DefaultCookieURL
	}
	if c.Window.Start == "" {
		c.Window.Start = utils.DefaultWindowStart
	}
	if c.Window.End == "" {
		c.Window.End = utils.DefaultWindowEnd
	}
	if c.Benchmark.Symbol == "" {
		c.Benchmark.Symbol = utils.DefaultBenchmarkSymbol
	}
	if c.Benchmark.DisplayName == "" {
		c.Benchmark.DisplayName = utils.DefaultBenchmarkDisplayName
	}
	if c.Benchmark.Label == "" {
		c.Benchmark.Label = utils.DefaultBenchmarkLabel
	}
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}
	if c.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d", c.Port)
	}
	if c.GrpcPort < 0 || c.GrpcPort > 65535 {
		return fmt.Errorf("invalid grpc port number: %d", c.GrpcPort)
	}
	if c.GrpcPort != 0 && c.GrpcPort == c.Port && c.GrpcHost == c.Host {
		return fmt.Errorf("grpc port %d collides with http port", c.GrpcPort)
	}

	if c.Network.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be greater than 0")
	}
	if c.Network.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative")
	}
	for _, p := range c.Network.Proxies {
		if !helpers.ValidateProxy(p) {
			return fmt.Errorf("invalid proxy %q", p)
		}
	}

	if !isKnownProvider(c.DataSource.Provider) {
		return fmt.Errorf("unknown data source provider %q", c.DataSource.Provider)
	}

	window, err := models.ParseWindow(c.Window.Start, c.Window.End)
	if err != nil {
		return err
	}
	c.window = window

	if c.Benchmark.Symbol == "" {
		return fmt.Errorf("benchmark symbol cannot be empty")
	}
	return nil
}

// -----------------------------------------------------------------------------

// DateWindow returns the parsed historical window. Valid after Validate.
func (c *Config) DateWindow() models.MDateWindow {
	return c.window
}

// -----------------------------------------------------------------------------

// Addr is the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// -----------------------------------------------------------------------------

// GrpcAddr is the gRPC health listen address, empty when disabled.
func (c *Config) GrpcAddr() string {
	if c.GrpcPort == 0 {
		return ""
	}
	return fmt.Sprintf("%s:%d", c.GrpcHost, c.GrpcPort)
}

// -----------------------------------------------------------------------------

func isKnownProvider(name string) bool {
	for _, p := range KnownProviders {
		if p == name {
			return true
		}
	}
	return false
}

// -----------------------------------------------------------------------------

func configError(msg string, cause error) error {
	return &helpers.ConfigurationError{DashboardError: helpers.DashboardError{Message: msg, Cause: cause}}
}
