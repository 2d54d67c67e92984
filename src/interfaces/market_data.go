package interfaces

import (
	"context"

	"stock-dashboard/src/models"
)

// -----------------------------------------------------------------------------
// IMarketData is the market-data collaborator consumed by the HTTP handlers.
// -----------------------------------------------------------------------------

type IMarketData interface {

	// Name returns the unique identifier of the provider
	Name() string

	// FetchPriceSeries returns the daily bars of symbol inside window, oldest
	// first. A symbol the provider has no data for yields an empty series and
	// a nil error.
	FetchPriceSeries(ctx context.Context, symbol string, window models.MDateWindow) (models.MPriceSeries, error)

	// FetchProfile returns the company metadata of symbol. Callers treat an
	// error or a nil profile as "nothing available".
	FetchProfile(ctx context.Context, symbol string) (*models.MCompanyProfile, error)
}
