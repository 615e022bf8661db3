package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/richxcame/kyc-nova/pkg/config"
	"github.com/richxcame/kyc-nova/pkg/logger"
	"go.uber.org/zap"
)

// Event is the envelope published on the bus
type Event struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	Source        string          `json:"source"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Data          json.RawMessage `json:"data"`
}

// Publisher publishes domain events
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload interface{}) error
	Close()
}

// NewEvent wraps payload in an envelope
func NewEvent(ctx context.Context, source, eventType string, payload interface{}) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return &Event{
		ID:            uuid.New().String(),
		Type:          eventType,
		Source:        source,
		CorrelationID: logger.CorrelationIDFromContext(ctx),
		OccurredAt:    time.Now().UTC(),
		Data:          data,
	}, nil
}

// natsConn is the subset of *nats.Conn the publisher uses
type natsConn interface {
	Publish(subj string, data []byte) error
	Drain() error
}

// NATSPublisher publishes events to a single NATS subject
type NATSPublisher struct {
	conn    natsConn
	subject string
	source  string
}

// NewNATSPublisher connects to NATS
func NewNATSPublisher(cfg config.NATSConfig, source string) (*NATSPublisher, *nats.Conn, error) {
	conn, err := nats.Connect(cfg.URL,
		nats.Name(source),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", zap.Error(err))
			}
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.Info("NATS reconnected", zap.String("url", c.ConnectedUrl()))
		}),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSPublisher{conn: conn, subject: cfg.Subject, source: source}, conn, nil
}

// Publish marshals payload into an Event and publishes it
func (p *NATSPublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	event, err := NewEvent(ctx, p.source, eventType, payload)
	if err != nil {
		return err
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.conn.Publish(p.subject, data); err != nil {
		return fmt.Errorf("failed to publish %s: %w", eventType, err)
	}

	logger.WithContext(ctx).Debug("Event published",
		zap.String("subject", p.subject),
		zap.String("type", eventType),
		zap.String("event_id", event.ID))
	return nil
}

// Close drains the connection
func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		logger.Warn("Failed to drain NATS connection", zap.Error(err))
	}
}

// NoopPublisher drops every event. Used when NATS is disabled.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	return nil
}

func (NoopPublisher) Close() {}
