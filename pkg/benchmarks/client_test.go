package benchmarks

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Slot0x0f/pyth-crosschain/pkg/pyth"
)

const validResponse = `{
	"parsed": [
		{
			"id": "` + feedIDA + `",
			"price": {"price": "2850012345678", "conf": "150000000", "expo": -8, "publish_time": 1717632000},
			"ema_price": {"price": "2849000000000", "conf": "160000000", "expo": -8, "publish_time": 1717632000}
		},
		{
			"id": "` + feedIDB + `",
			"price": {"price": "350099887766", "conf": "90000000", "expo": -8, "publish_time": 1717632000},
			"ema_price": {"price": "350000000000", "conf": "95000000", "expo": -8, "publish_time": 1717632000}
		}
	],
	"binary": {"encoding": "hex", "data": ["aabb", "ccdd"]}
}`

func mustIdentifiers(t *testing.T, raw ...string) []pyth.PriceIdentifier {
	t.Helper()
	ids := make([]pyth.PriceIdentifier, 0, len(raw))
	for _, s := range raw {
		id, err := pyth.ParsePriceIdentifier(s)
		require.NoError(t, err)
		ids = append(ids, id)
	}
	return ids
}

func TestHTTPClient_GetVerifiedPriceFeeds(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)

		assert.Equal(t, "/v1/updates/price/1717632000", r.URL.Path)

		query := r.URL.Query()
		assert.Equal(t, "hex", query.Get("encoding"))
		assert.Equal(t, "true", query.Get("parsed"))
		assert.Equal(t, []string{feedIDA, feedIDB}, query["ids"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(validResponse))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 0)
	result, err := client.GetVerifiedPriceFeeds(context.Background(),
		mustIdentifiers(t, feedIDA, feedIDB), 1717632000)
	require.NoError(t, err)

	assert.Equal(t, int64(1), requests.Load())

	require.Len(t, result.PriceFeeds, 2)
	assert.Equal(t, feedIDA, result.PriceFeeds[0].PriceFeed.ID.String())
	assert.Equal(t, int64(2850012345678), result.PriceFeeds[0].PriceFeed.Price.Price)
	assert.Nil(t, result.PriceFeeds[0].Slot)

	assert.Equal(t, [][]byte{{0xAA, 0xBB}, {0xCC, 0xDD}}, result.UpdateData)
}

func TestHTTPClient_NoEndpoint(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewHTTPClient("", 0)
	_, err := client.GetVerifiedPriceFeeds(context.Background(), nil, 1717632000)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEndpointNotSet)

	// the configuration error fires before any network activity
	assert.Equal(t, int64(0), requests.Load())
}

func TestHTTPClient_EmptyIdentifiers(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)

		// no ids parameters at all, rest of the query unchanged
		assert.Empty(t, r.URL.Query()["ids"])
		assert.Equal(t, "hex", r.URL.Query().Get("encoding"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"parsed": [], "binary": {"encoding": "hex", "data": []}}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 0)
	result, err := client.GetVerifiedPriceFeeds(context.Background(), []pyth.PriceIdentifier{}, 1717632000)
	require.NoError(t, err)

	assert.Equal(t, int64(1), requests.Load())
	assert.Empty(t, result.PriceFeeds)
	assert.Empty(t, result.UpdateData)
}

func TestHTTPClient_UnexpectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "no updates found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 0)
	_, err := client.GetVerifiedPriceFeeds(context.Background(), nil, 1717632000)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestHTTPClient_InvalidBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"parsed": "not-an-array"}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 0)
	_, err := client.GetVerifiedPriceFeeds(context.Background(), nil, 1717632000)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestHTTPClient_MissingBinarySection(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"parsed": []}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 0)
	_, err := client.GetVerifiedPriceFeeds(context.Background(), nil, 1717632000)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestHTTPClient_UnknownEncodingInBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"parsed": [], "binary": {"encoding": "base32", "data": []}}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 0)
	_, err := client.GetVerifiedPriceFeeds(context.Background(), nil, 1717632000)
	require.Error(t, err)

	// rejected at unmarshal time, reported as a schema error
	assert.ErrorIs(t, err, ErrInvalidResponse)
}

func TestHTTPClient_MalformedBlobAborts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{
			"parsed": [],
			"binary": {"encoding": "hex", "data": ["zz"]}
		}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, 0)
	_, err := client.GetVerifiedPriceFeeds(context.Background(), nil, 1717632000)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedBlobItem)
}

func TestHTTPClient_ContextCancellation(t *testing.T) {
	started := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	client := NewHTTPClient(server.URL, time.Minute)
	_, err := client.GetVerifiedPriceFeeds(ctx, nil, 1717632000)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
