// Package benchmarks provides the client for historical price feed updates.
package benchmarks

import "errors"

var (
	// ErrEndpointNotSet indicates that no benchmarks endpoint is configured.
	ErrEndpointNotSet = errors.New("benchmarks endpoint is not set")
	// ErrUnexpectedStatus indicates an unexpected HTTP status code.
	ErrUnexpectedStatus = errors.New("unexpected HTTP status code")
	// ErrInvalidResponse indicates a response body that does not match the updates schema.
	ErrInvalidResponse = errors.New("invalid benchmarks response")
	// ErrUnknownBlobEncoding indicates a binary blob encoding other than base64 or hex.
	ErrUnknownBlobEncoding = errors.New("unknown blob encoding")
	// ErrMalformedBlobItem indicates a blob item that does not decode under the declared encoding.
	ErrMalformedBlobItem = errors.New("malformed blob item")
	// ErrUpdateCountMismatch indicates that parsed feeds and binary updates do not pair up.
	ErrUpdateCountMismatch = errors.New("parsed feed and binary update counts differ")
)
