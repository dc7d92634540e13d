package lifecycle

import (
	"context"

	"boulder-rain/logging"
)

const (
	// EventOwnerJoined is emitted when an owner connects to the world.
	EventOwnerJoined logging.EventType = "lifecycle.owner_joined"
	// EventOwnerLeft is emitted when an owner leaves the world.
	EventOwnerLeft logging.EventType = "lifecycle.owner_left"
	// EventAutoEnabled is emitted when an effect is started automatically on join.
	EventAutoEnabled logging.EventType = "lifecycle.auto_enabled"
)

// OwnerJoinedPayload captures spawn metadata for a new owner.
type OwnerJoinedPayload struct {
	SpawnX float64 `json:"spawnX"`
	SpawnY float64 `json:"spawnY"`
}

// OwnerLeftPayload captures the reason an owner left.
type OwnerLeftPayload struct {
	Reason string `json:"reason"`
}

// AutoEnabledPayload identifies the effect started on the owner's behalf.
type AutoEnabledPayload struct {
	EffectID uint64 `json:"effectId"`
}

// OwnerJoined publishes an owner join event.
func OwnerJoined(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload OwnerJoinedPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventOwnerJoined,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: "lifecycle",
		Payload:  payload,
	})
}

// OwnerLeft publishes an owner disconnect event.
func OwnerLeft(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload OwnerLeftPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventOwnerLeft,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: "lifecycle",
		Payload:  payload,
	})
}

// AutoEnabled publishes an automatic effect start.
func AutoEnabled(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload AutoEnabledPayload) {
	if pub == nil {
		return
	}
	pub.Publish(ctx, logging.Event{
		Type:     EventAutoEnabled,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Category: "lifecycle",
		Payload:  payload,
	})
}
