package natsutil

import (
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

type Client struct {
	Conn *nats.Conn
}

func Connect(url string, name string) (*Client, error) {
	conn, err := nats.Connect(url, nats.Name(name))
	if err != nil {
		return nil, err
	}
	return &Client{Conn: conn}, nil
}

func ConnectWithRetry(url, name string, timeout time.Duration) (*Client, error) {
	deadline := time.Now().Add(timeout)
	var lastErr error
	for {
		client, err := Connect(url, name)
		if err == nil {
			return client, nil
		}
		lastErr = err
		if !time.Now().Before(deadline) {
			break
		}
		time.Sleep(500 * time.Millisecond)
	}
	return nil, fmt.Errorf("connect nats timeout after %s: %w", timeout, lastErr)
}

func (c *Client) Close() {
	if c == nil || c.Conn == nil {
		return
	}
	_ = c.Conn.Drain()
	c.Conn.Close()
}

type Publisher interface {
	Publish(subject string, payload []byte) error
}

// ConnPublisher publica con NATS core (sin JetStream: las notificaciones no se persisten).
type ConnPublisher struct {
	Conn *nats.Conn
}

func (p ConnPublisher) Publish(subject string, payload []byte) error {
	return p.Conn.Publish(subject, payload)
}
