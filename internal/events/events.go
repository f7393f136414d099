package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/njprem/TravelWisata_BackEnd/internal/domain"
	"github.com/njprem/TravelWisata_BackEnd/internal/repository/ports"
)

type NATSPublisher struct {
	conn *nats.Conn
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url, nats.Name("travelwisata-api"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, event domain.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	return p.conn.Publish(event.Subject(), payload)
}

func (p *NATSPublisher) Close() error {
	if p.conn == nil {
		return nil
	}
	return p.conn.Drain()
}

// Noop drops every event; used when no bus is configured.
type Noop struct{}

func (Noop) Publish(context.Context, domain.Event) error { return nil }

var (
	_ ports.EventPublisher = (*NATSPublisher)(nil)
	_ ports.EventPublisher = Noop{}
)
