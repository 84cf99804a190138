package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

const subjectPrefix = "parishfeed.events."

// NATSPublisher delivers events to a NATS subject per event kind.
type NATSPublisher struct {
	conn   *nats.Conn
	logger *slog.Logger
}

// NewNATSPublisher connects to the NATS server at url.
func NewNATSPublisher(url string, logger *slog.Logger) (*NATSPublisher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := nats.Connect(url,
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &NATSPublisher{
		conn:   conn,
		logger: logger,
	}, nil
}

func (p *NATSPublisher) Publish(ctx context.Context, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to marshal event", "kind", event.Kind, "error", err)
		return
	}

	subject := subjectPrefix + string(event.Kind)
	if err := p.conn.Publish(subject, payload); err != nil {
		// Delivery failure must not fail the request that produced the event
		p.logger.Error("failed to publish event",
			"subject", subject,
			"kind", event.Kind,
			"error", err)
	}
}

// Close flushes buffered messages and closes the connection.
func (p *NATSPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		p.logger.Warn("failed to drain NATS connection", "error", err)
	}
}

// LogPublisher writes events to the structured log. It stands in for NATS in
// development and test environments.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event Event) {
	p.logger.Info("event",
		"kind", event.Kind,
		"subject_id", event.SubjectID,
		"audience_id", event.AudienceID,
		"occurred_at", event.OccurredAt)
}
