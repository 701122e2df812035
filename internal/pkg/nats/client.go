package nats

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/numpang/numpang/internal/pkg/logger"
)

// Client wraps a core NATS connection used for booking event fan-out.
type Client struct {
	conn *nats.Conn
}

// NewClient connects to the NATS server at url. The connection reconnects
// indefinitely; consumers tolerate gaps because unread counters converge on
// the next delivered event.
func NewClient(url string) (*Client, error) {
	conn, err := nats.Connect(url,
		nats.Name("numpang"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("NATS disconnected", logger.Err(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", logger.String("url", nc.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS server: %w", err)
	}

	return &Client{conn: conn}, nil
}

// GetConn exposes the underlying connection for health checks.
func (c *Client) GetConn() *nats.Conn {
	return c.conn
}

// Publish sends data on subject without waiting for consumers.
func (c *Client) Publish(subject string, data []byte) error {
	if err := c.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}
	return nil
}

// Subscribe registers handler for subject and returns the subscription so
// the caller can unsubscribe on shutdown.
func (c *Client) Subscribe(subject string, handler nats.MsgHandler) (*nats.Subscription, error) {
	sub, err := c.conn.Subscribe(subject, handler)
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", subject, err)
	}
	return sub, nil
}

// Close drains pending messages before closing the connection.
func (c *Client) Close() {
	if c.conn == nil {
		return
	}
	if err := c.conn.Drain(); err != nil {
		c.conn.Close()
	}
}
