// Package stream provides a WebSocket client for live price feed updates.
package stream

import "errors"

var (
	// ErrStreamClosed indicates that the stream has been closed.
	ErrStreamClosed = errors.New("stream closed")
	// ErrNoFeeds indicates that no feed identifiers were given to subscribe to.
	ErrNoFeeds = errors.New("no feeds to subscribe to")
)
