package realtime

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/taste-fun/tf-indexer/internal/logger"
)

// Publisher pushes realtime messages toward the gateway.
//
//go:generate mockgen -source=publisher.go -destination=../mocks/realtime_publisher.go -package=mocks -mock_names=Publisher=MockRealtimePublisher
type Publisher interface {
	// Publish sends one message; losing it is acceptable
	Publish(msg *Message) error
	// Close releases the connection
	Close()
}

// NatsConfig holds the NATS connection settings shared by publisher
// and consumer.
type NatsConfig struct {
	URL            string
	MaxReconnects  int
	ReconnectWait  time.Duration
	ConnectionName string
}

// natsOptions builds the standard connection options with logging
// handlers.
func natsOptions(cfg NatsConfig) []nats.Option {
	return []nats.Option{
		nats.Name(cfg.ConnectionName),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error(err, zap.String("message", "Disconnected from NATS"))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("Reconnected to NATS", zap.String("url", nc.ConnectedUrl()))
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			logger.Info("NATS connection closed")
		}),
	}
}

type natsPublisher struct {
	nc *nats.Conn
}

// NewNatsPublisher connects a core-NATS publisher. Realtime traffic is
// deliberately not a stream: no ack, no replay.
func NewNatsPublisher(cfg NatsConfig) (Publisher, error) {
	nc, err := nats.Connect(cfg.URL, natsOptions(cfg)...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &natsPublisher{nc: nc}, nil
}

// Publish sends one message; losing it is acceptable
func (p *natsPublisher) Publish(msg *Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal realtime message: %w", err)
	}

	if err := p.nc.Publish(SubjectFor(msg.Type), data); err != nil {
		return fmt.Errorf("failed to publish realtime message: %w", err)
	}
	return nil
}

// Close releases the connection
func (p *natsPublisher) Close() {
	if p.nc != nil {
		p.nc.Close()
	}
}
