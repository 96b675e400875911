package realtime

import (
	"fmt"

	"github.com/nats-io/nats.go"
)

// Consumer bridges the NATS realtime subjects into a Hub. It forwards
// message bytes verbatim; the gateway does not re-interpret payloads.
type Consumer struct {
	nc  *nats.Conn
	sub *nats.Subscription
	hub *Hub
}

// NewConsumer connects and subscribes the hub to every realtime subject.
func NewConsumer(cfg NatsConfig, hub *Hub) (*Consumer, error) {
	nc, err := nats.Connect(cfg.URL, natsOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	sub, err := nc.Subscribe(SubjectWildcard, func(msg *nats.Msg) {
		hub.Broadcast(msg.Data)
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to subscribe to realtime subjects: %w", err)
	}

	return &Consumer{nc: nc, sub: sub, hub: hub}, nil
}

// CloseChan signals when the NATS connection is gone for good.
func (c *Consumer) CloseChan() <-chan struct{} {
	ch := make(chan struct{})
	if c.nc != nil {
		c.nc.SetClosedHandler(func(*nats.Conn) {
			close(ch)
		})
	}
	return ch
}

// Close drains the subscription and closes the connection.
func (c *Consumer) Close() {
	if c.sub != nil {
		_ = c.sub.Drain()
	}
	if c.nc != nil {
		c.nc.Close()
	}
}
