package stream

import "github.com/Slot0x0f/pyth-crosschain/pkg/pyth"

// subscribeRequest is the subscription message sent after connecting.
type subscribeRequest struct {
	Type    string   `json:"type"` // always "subscribe"
	IDs     []string `json:"ids"`
	Verbose bool     `json:"verbose"`
	Binary  bool     `json:"binary"`
}

// serverMessage is one frame received from the provider.
type serverMessage struct {
	Type      string         `json:"type"`
	PriceFeed pyth.PriceFeed `json:"price_feed"`
	Status    string         `json:"status,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// PriceUpdate is one live update delivered to subscribers.
type PriceUpdate struct {
	PriceFeed pyth.PriceFeed
}
