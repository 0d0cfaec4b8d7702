package pyth

import "github.com/shopspring/decimal"

// Price is a single price point with its confidence interval. The provider
// wire-encodes the mantissa and confidence as decimal strings.
type Price struct {
	Price       int64  `json:"price,string"`
	Conf        uint64 `json:"conf,string"`
	Expo        int32  `json:"expo"`
	PublishTime int64  `json:"publish_time"`
}

// Decimal returns the price scaled by its exponent.
func (p Price) Decimal() decimal.Decimal {
	return decimal.New(p.Price, p.Expo)
}

// ConfDecimal returns the confidence interval scaled by the exponent.
func (p Price) ConfDecimal() decimal.Decimal {
	return decimal.NewFromUint64(p.Conf).Shift(p.Expo)
}

// PriceFeed is the provider's parsed representation of one feed: the
// aggregate price plus its exponentially-weighted moving average.
type PriceFeed struct {
	ID       PriceIdentifier `json:"id"`
	Price    Price           `json:"price"`
	EMAPrice Price           `json:"ema_price"`
}

// PriceFeedUpdate pairs a parsed price feed with update metadata. The
// benchmarks provider does not supply the optional fields yet; absence is
// expressed as nil, never as zero sentinels, so a future provider upgrade is
// purely additive.
type PriceFeedUpdate struct {
	PriceFeed       PriceFeed `json:"price_feed"`
	Slot            *uint64   `json:"slot,omitempty"`
	ReceivedAt      *int64    `json:"received_at,omitempty"`
	UpdateData      []byte    `json:"update_data,omitempty"`
	PrevPublishTime *int64    `json:"prev_publish_time,omitempty"`
}

// PriceFeedsWithUpdateData is one pre-validated update batch: the parsed
// feeds in provider order plus the raw signed update messages proving them.
// The update data is kept at the batch level, one entry per binary blob item.
type PriceFeedsWithUpdateData struct {
	PriceFeeds []PriceFeedUpdate `json:"price_feeds"`
	UpdateData [][]byte          `json:"update_data"`
}
