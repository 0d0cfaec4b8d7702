// Package pyth defines the price feed value types shared by the retrieval
// client, the streaming client and the API server.
package pyth

import "errors"

var (
	// ErrInvalidIdentifier indicates a feed identifier that is not valid hex.
	ErrInvalidIdentifier = errors.New("invalid price identifier")
	// ErrInvalidIdentifierLength indicates a feed identifier of the wrong byte length.
	ErrInvalidIdentifierLength = errors.New("price identifier must be 32 bytes")
)
