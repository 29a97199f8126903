// Package rpgtoolkit connects the sheet engine to rpg-toolkit's entity and event model
package rpgtoolkit

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/rpg-toolkit/core"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/coc-api/internal/errors"
)

// Domain event types
const (
	EventSheetCreated             = "sheet.created"
	EventVersionCreated           = "sheet.version_created"
	EventRolledBack               = "sheet.rolled_back"
	EventPrimaryImageChanged      = "sheet.primary_image_changed"
	EventDefaultDiceSettingChange = "dice_setting.default_changed"
)

// Event context keys
const (
	KeyVersion       = "version"
	KeyParentVersion = "parent_version"
	KeyTargetVersion = "target_version"
	KeyOwnerID       = "owner_id"
	KeyPreviousID    = "previous_id"
)

//go:generate mockgen -destination=mock/mock_publisher.go -package=rpgtoolkitmock github.com/KirkDiggler/coc-api/internal/engine/rpgtoolkit Publisher

// Publisher emits domain events after a write has committed
type Publisher interface {
	Publish(ctx context.Context, eventType string, source, target core.Entity, data map[string]any) error
}

// PublisherConfig contains configuration for creating a new bus publisher
type PublisherConfig struct {
	EventBus events.EventBus
}

// Validate checks that all required dependencies are provided
func (c *PublisherConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.EventBus == nil {
		return errors.InvalidArgument("event bus is required")
	}
	return nil
}

type busPublisher struct {
	eventBus events.EventBus
}

// NewPublisher creates a Publisher backed by an rpg-toolkit event bus
func NewPublisher(cfg *PublisherConfig) (Publisher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &busPublisher{eventBus: cfg.EventBus}, nil
}

// Publish builds a game event carrying data in its context and sends it on the bus.
// Handler failures are logged and returned; the write that triggered the event
// has already committed.
func (p *busPublisher) Publish(
	ctx context.Context,
	eventType string,
	source, target core.Entity,
	data map[string]any,
) error {
	event := events.NewGameEvent(eventType, source, target)
	for k, v := range data {
		event.Context().Set(k, v)
	}

	if err := p.eventBus.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "event handler failed",
			"event_type", eventType,
			"source_id", source.GetID(),
			"error", err)
		return errors.Wrapf(err, "failed to publish %s", eventType)
	}

	slog.DebugContext(ctx, "published event",
		"event_type", eventType,
		"source_id", source.GetID())
	return nil
}

type noopPublisher struct{}

// NoopPublisher returns a Publisher that drops every event
func NoopPublisher() Publisher {
	return noopPublisher{}
}

func (noopPublisher) Publish(context.Context, string, core.Entity, core.Entity, map[string]any) error {
	return nil
}
