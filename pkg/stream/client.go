package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Slot0x0f/pyth-crosschain/pkg/logging"
	"github.com/Slot0x0f/pyth-crosschain/pkg/metrics"
	"github.com/Slot0x0f/pyth-crosschain/pkg/pyth"
)

const (
	handshakeTimeout     = 10 * time.Second
	writeWait            = 10 * time.Second
	initialReconnectWait = 5 * time.Second
	maxReconnectWait     = 60 * time.Second
	updateBufferSize     = 256
)

// Client is a WebSocket client that subscribes to live price feed updates
// and reconnects with backoff when the connection drops.
type Client struct {
	endpoint string
	ids      []pyth.PriceIdentifier
	logger   *logging.Logger

	conn   *websocket.Conn
	connMu sync.Mutex

	updates   chan PriceUpdate
	done      chan struct{}
	closeOnce sync.Once
}

// NewClient creates a new stream client for the given feed identifiers.
func NewClient(endpoint string, ids []pyth.PriceIdentifier, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.NewNoopLogger()
	}
	return &Client{
		endpoint: endpoint,
		ids:      ids,
		logger:   logger,
		updates:  make(chan PriceUpdate, updateBufferSize),
		done:     make(chan struct{}),
	}
}

// Start connects, subscribes and begins delivering updates on Updates().
// It returns once the initial connection is established; reconnection after
// that happens in the background.
func (c *Client) Start(ctx context.Context) error {
	if len(c.ids) == 0 {
		return ErrNoFeeds
	}
	select {
	case <-c.done:
		return ErrStreamClosed
	default:
	}

	if err := c.connect(ctx); err != nil {
		return err
	}

	go c.run(ctx)
	return nil
}

// Updates returns the channel live price updates are delivered on. The
// channel is closed when the client is closed.
func (c *Client) Updates() <-chan PriceUpdate {
	return c.updates
}

// Close stops the client and closes the updates channel.
func (c *Client) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)

		c.connMu.Lock()
		if c.conn != nil {
			_ = c.conn.Close()
		}
		c.connMu.Unlock()
	})
	return nil
}

// connect dials the endpoint and sends the subscription message.
func (c *Client) connect(ctx context.Context) error {
	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = handshakeTimeout

	conn, resp, err := dialer.DialContext(ctx, c.endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to stream: %w", err)
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	sub := subscribeRequest{
		Type:    "subscribe",
		IDs:     make([]string, 0, len(c.ids)),
		Verbose: true,
		Binary:  false,
	}
	for _, id := range c.ids {
		sub.IDs = append(sub.IDs, id.String())
	}

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(sub); err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	c.connMu.Lock()
	c.conn = conn
	c.connMu.Unlock()

	metrics.RecordStreamConnected(true)
	c.logger.Info("Price update stream connected",
		"endpoint", c.endpoint, "feeds", len(c.ids))

	return nil
}

// run reads frames until the stream is closed, reconnecting on errors.
func (c *Client) run(ctx context.Context) {
	defer close(c.updates)

	for {
		c.connMu.Lock()
		conn := c.conn
		c.connMu.Unlock()

		_, data, err := conn.ReadMessage()
		if err != nil {
			metrics.RecordStreamConnected(false)

			select {
			case <-c.done:
				return
			case <-ctx.Done():
				return
			default:
			}

			c.logger.Warn("Stream connection lost", "error", err)
			if !c.reconnect(ctx) {
				return
			}
			continue
		}

		c.handleMessage(data)
	}
}

// reconnect retries the connection with exponential backoff, capped at
// maxReconnectWait. Returns false when the client or context is done.
func (c *Client) reconnect(ctx context.Context) bool {
	wait := initialReconnectWait
	for {
		select {
		case <-c.done:
			return false
		case <-ctx.Done():
			return false
		case <-time.After(wait):
		}

		err := c.connect(ctx)
		if err == nil {
			return true
		}
		c.logger.Warn("Stream reconnect failed",
			"error", err, "next_wait", wait.String())

		wait *= 2
		if wait > maxReconnectWait {
			wait = maxReconnectWait
		}
	}
}

func (c *Client) handleMessage(data []byte) {
	var msg serverMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		c.logger.Warn("Dropping undecodable stream message", "error", err)
		return
	}

	metrics.RecordStreamMessage(msg.Type)

	switch msg.Type {
	case "price_update":
		select {
		case c.updates <- PriceUpdate{PriceFeed: msg.PriceFeed}:
		default:
			c.logger.Warn("Update channel full, dropping price update",
				"feed", msg.PriceFeed.ID.String())
		}
	case "response":
		if msg.Error != "" {
			c.logger.Error("Subscription rejected by provider", "error", msg.Error)
		}
	default:
		c.logger.Debug("Ignoring stream message", "type", msg.Type)
	}
}
