// Package eventlog publishes domain events to the structured log. Events are
// best effort notifications; a durable broker can replace this adapter
// without touching the use cases.
package eventlog

import (
	"context"
	"log/slog"

	"fleetops/internal/core/domain/events"
)

// Publisher writes every domain event as a structured log record.
type Publisher struct {
	logger *slog.Logger
}

// NewPublisher creates a log-backed event publisher.
func NewPublisher(logger *slog.Logger) *Publisher {
	return &Publisher{logger: logger.With("component", "events")}
}

// Publish records the event. Never fails; event delivery must not abort the
// business operation that produced it.
func (p *Publisher) Publish(ctx context.Context, event events.DomainEvent) {
	p.logger.InfoContext(ctx, "domain event", "event", event.Name(), "payload", event)
}
