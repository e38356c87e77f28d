package ports

import (
	"context"

	"fleetops/internal/core/domain/events"
)

// EventPublisher broadcasts domain events to interested subscribers after a
// command commits. Publishing is best effort and must not fail the command.
type EventPublisher interface {
	Publish(ctx context.Context, event events.DomainEvent)
}
