// Package eventbus publishes and consumes draft-lifecycle events over a
// watermill publisher/subscriber pair.
package eventbus

import (
	"context"

	"github.com/draftflow/draftflow/pkg/events"
)

// EventHandler handles one decoded event.
type EventHandler func(ctx context.Context, event any) error

// EventBus is the publish/subscribe surface the authoring engine uses.
type EventBus interface {
	Publish(ctx context.Context, key string, event events.Event) error
	Handle(eventType events.EventType, handler EventHandler)
	Subscribe(ctx context.Context) error
	Close() error
	GenerateID() string
}
