package providers

import (
	"context"

	"github.com/drivelane/rental-backend/internal/domain/entities"
)

// ReserveChannel is the pub/sub channel carrying reserve lifecycle events
const ReserveChannel = "reserves.events"

// EventBus defines the interface for publishing and consuming reserve
// lifecycle events
type EventBus interface {
	// Publish publishes an event to all subscribers of the channel
	Publish(ctx context.Context, channel string, event *entities.ReserveEvent) error

	// Subscribe subscribes to events on a channel; the returned channel is
	// closed when ctx is cancelled
	Subscribe(ctx context.Context, channel string) (<-chan *entities.ReserveEvent, error)

	// Close shuts down the bus and all subscriptions
	Close() error
}
