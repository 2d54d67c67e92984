package interfaces

import "context"

// -----------------------------------------------------------------------------
// INetworkManager defines the contract for HTTP requests with potential proxy/retry logic.
// -----------------------------------------------------------------------------

type INetworkManager interface {

	// Get performs a GET request to the specified URL with parameters.
	// Returns the response body of a 200 response or an error; non-200
	// responses surface as *helpers.HTTPStatusError.
	Get(ctx context.Context, url string, params map[string]string) ([]byte, error)

	// Visit performs a single GET whose only purpose is collecting cookies.
	// The response status is ignored.
	Visit(ctx context.Context, url string) error
}
