// Package config provides configuration loading and validation for pyth-history.
package config

import "errors"

var (
	// ErrBenchmarksEndpointRequired indicates that benchmarks.endpoint must be specified.
	ErrBenchmarksEndpointRequired = errors.New("benchmarks.endpoint must be specified")
	// ErrInvalidBenchmarksEndpoint indicates that the benchmarks endpoint is not a valid http(s) URL.
	ErrInvalidBenchmarksEndpoint = errors.New("benchmarks.endpoint must be an http or https URL")
	// ErrStreamEndpointRequired indicates that stream.endpoint must be specified when the stream is enabled.
	ErrStreamEndpointRequired = errors.New("stream.endpoint must be specified when stream is enabled")
	// ErrInvalidStreamEndpoint indicates that the stream endpoint is not a valid ws(s) URL.
	ErrInvalidStreamEndpoint = errors.New("stream.endpoint must be a ws or wss URL")
	// ErrNoStreamFeeds indicates that at least one stream feed must be configured.
	ErrNoStreamFeeds = errors.New("at least one stream feed must be configured")
	// ErrInvalidStreamFeed indicates that a configured stream feed identifier is invalid.
	ErrInvalidStreamFeed = errors.New("invalid stream feed identifier")
	// ErrInvalidLogLevel indicates that the log level is invalid.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidLogFormat indicates that the log format is invalid.
	ErrInvalidLogFormat = errors.New("invalid log format")
)
