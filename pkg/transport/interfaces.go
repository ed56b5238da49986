package transport

import "context"

// Transport performs one HTTP round trip per call and returns the response
// body. Implemented by HTTPClient.
type Transport interface {
	// Get issues GET http://addr/path.
	Get(ctx context.Context, addr, path string) ([]byte, error)

	// Put issues PUT http://addr/path with body.
	Put(ctx context.Context, addr, path string, body []byte) ([]byte, error)
}

// Compile-time interface satisfaction check.
var _ Transport = (*HTTPClient)(nil)
