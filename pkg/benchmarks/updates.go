package benchmarks

import (
	"fmt"

	"github.com/Slot0x0f/pyth-crosschain/pkg/pyth"
)

// BenchmarkUpdates is the provider's wire schema for one historical snapshot:
// the parsed feed values plus the binary blob proving them.
type BenchmarkUpdates struct {
	Parsed []pyth.PriceFeed `json:"parsed"`
	Binary BinaryBlob       `json:"binary"`
}

// PriceFeedsWithUpdateData reassembles the response into the internal update
// batch. One record is produced per parsed feed, in provider order. Slot,
// receipt time, per-record update data and previous publish time are not
// supplied by the benchmarks provider yet and stay unset.
//
// The provider does not guarantee that parsed feeds and binary items pair up
// positionally; mismatched counts are rejected here so downstream consumers
// can rely on the alignment.
func (u BenchmarkUpdates) PriceFeedsWithUpdateData() (*pyth.PriceFeedsWithUpdateData, error) {
	updateData, err := u.Binary.Decode()
	if err != nil {
		return nil, err
	}

	if len(updateData) != len(u.Parsed) {
		return nil, fmt.Errorf("%w: %d parsed, %d binary",
			ErrUpdateCountMismatch, len(u.Parsed), len(updateData))
	}

	feeds := make([]pyth.PriceFeedUpdate, 0, len(u.Parsed))
	for _, feed := range u.Parsed {
		feeds = append(feeds, pyth.PriceFeedUpdate{PriceFeed: feed})
	}

	return &pyth.PriceFeedsWithUpdateData{
		PriceFeeds: feeds,
		UpdateData: updateData,
	}, nil
}
