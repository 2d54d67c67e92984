package datasource

import (
	"fmt"
	"sort"

	"stock-dashboard/src/data_source/financego"
	"stock-dashboard/src/data_source/yahoo"
	"stock-dashboard/src/interfaces"
	"stock-dashboard/src/logger"
	"stock-dashboard/src/models"
)

// Constructor builds a market-data provider from the shared config.
type Constructor func(cfg *models.MConfig, netMgr interfaces.INetworkManager, log *logger.Logger) interfaces.IMarketData

// registry is filled at init and never modified afterwards.
var registry = map[string]Constructor{
	"yahoo": func(cfg *models.MConfig, netMgr interfaces.INetworkManager, log *logger.Logger) interfaces.IMarketData {
		return yahoo.NewYahooFinanceSource(cfg, netMgr, log)
	},
	"finance-go": func(_ *models.MConfig, _ interfaces.INetworkManager, log *logger.Logger) interfaces.IMarketData {
		return financego.NewFinanceGoSource(log)
	},
}

// -----------------------------------------------------------------------------

// NewMarketData returns the provider named by cfg.DataSource.Provider.
func NewMarketData(cfg *models.MConfig, netMgr interfaces.INetworkManager, log *logger.Logger) (interfaces.IMarketData, error) {
	ctor, ok := registry[cfg.DataSource.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown data source provider %q (known: %v)", cfg.DataSource.Provider, Providers())
	}
	return ctor(cfg, netMgr, log), nil
}

// -----------------------------------------------------------------------------

// Providers lists the registered provider names in sorted order.
func Providers() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
