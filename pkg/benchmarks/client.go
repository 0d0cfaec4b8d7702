package benchmarks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Slot0x0f/pyth-crosschain/pkg/metrics"
	"github.com/Slot0x0f/pyth-crosschain/pkg/pyth"
	"github.com/Slot0x0f/pyth-crosschain/pkg/version"
)

// DefaultRequestTimeout bounds the whole benchmarks round trip: connect,
// send and receive.
const DefaultRequestTimeout = 30 * time.Second

// Client is the capability for fetching verified historical price feeds.
// Callers should depend on this interface so the HTTP implementation can be
// swapped for a test double.
type Client interface {
	GetVerifiedPriceFeeds(ctx context.Context, ids []pyth.PriceIdentifier, publishTime int64) (*pyth.PriceFeedsWithUpdateData, error)
}

// HTTPClient implements Client against a Hermes-compatible benchmarks API.
type HTTPClient struct {
	endpoint string
	client   *http.Client
}

// NewHTTPClient creates a new benchmarks client. A timeout of zero or less
// falls back to DefaultRequestTimeout.
func NewHTTPClient(endpoint string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &HTTPClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetVerifiedPriceFeeds fetches the signed updates published at publishTime
// for the given feed ids. An empty id list is legal and requests the full
// snapshot. Exactly one request is issued per call; there is no retry and no
// caching.
func (c *HTTPClient) GetVerifiedPriceFeeds(ctx context.Context, ids []pyth.PriceIdentifier, publishTime int64) (*pyth.PriceFeedsWithUpdateData, error) {
	if c.endpoint == "" {
		return nil, ErrEndpointNotSet
	}

	url := fmt.Sprintf("%s/v1/updates/price/%d", c.endpoint, publishTime)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", version.AgentString())

	query := req.URL.Query()
	query.Set("encoding", "hex")
	query.Set("parsed", "true")
	for _, id := range ids {
		query.Add("ids", id.String())
	}
	req.URL.RawQuery = query.Encode()

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		metrics.RecordBenchmarksRequest("error", time.Since(start))
		return nil, fmt.Errorf("failed to fetch updates: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	metrics.RecordBenchmarksRequest(strconv.Itoa(resp.StatusCode), time.Since(start))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var updates BenchmarkUpdates
	if err := json.NewDecoder(resp.Body).Decode(&updates); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if updates.Binary.Encoding == "" {
		return nil, fmt.Errorf("%w: missing binary section", ErrInvalidResponse)
	}

	result, err := updates.PriceFeedsWithUpdateData()
	if err != nil {
		if errors.Is(err, ErrMalformedBlobItem) || errors.Is(err, ErrUnknownBlobEncoding) {
			metrics.RecordBlobDecodeFailure()
		}
		return nil, err
	}

	metrics.RecordUpdatesFetched(len(result.PriceFeeds))
	return result, nil
}
