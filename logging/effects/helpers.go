package effects

import (
	"context"

	"boulder-rain/logging"
)

const (
	// EventStarted is emitted when an owner's effect is created.
	EventStarted logging.EventType = "effects.started"
	// EventStopped is emitted when an effect leaves the active set.
	EventStopped logging.EventType = "effects.stopped"
	// EventCapacityExceeded is emitted when a start request hits the effect ceiling.
	EventCapacityExceeded logging.EventType = "effects.capacity_exceeded"
	// EventSpawnRejected is emitted when the world refuses to create a projectile.
	EventSpawnRejected logging.EventType = "effects.spawn_rejected"
	// EventConfigsRefreshed is emitted after every active effect received a new config.
	EventConfigsRefreshed logging.EventType = "effects.configs_refreshed"
	// EventSteeringFault is emitted when steering a single entity failed.
	EventSteeringFault logging.EventType = "effects.steering_fault"
)

// Stop reasons carried by StoppedPayload.
const (
	ReasonOwnerStopped = "owner_stopped"
	ReasonOwnerInvalid = "owner_invalid"
	ReasonDisposed     = "disposed"
)

// StartedPayload captures the effect's identity and cadence.
type StartedPayload struct {
	EffectID      uint64 `json:"effectId"`
	SpawnInterval int    `json:"spawnInterval"`
	Homing        bool   `json:"homing"`
}

// StoppedPayload records why an effect was removed.
type StoppedPayload struct {
	EffectID uint64 `json:"effectId"`
	Reason   string `json:"reason"`
}

// CapacityExceededPayload reports the ceiling that blocked a start request.
type CapacityExceededPayload struct {
	Active   int `json:"active"`
	Capacity int `json:"capacity"`
}

// SpawnRejectedPayload describes a refused projectile spawn.
type SpawnRejectedPayload struct {
	EffectID uint64 `json:"effectId"`
	Kind     int    `json:"kind"`
	Error    string `json:"error"`
}

// ConfigsRefreshedPayload reports how many effects were updated.
type ConfigsRefreshedPayload struct {
	Effects int `json:"effects"`
}

// SteeringFaultPayload identifies the entity whose steering failed.
type SteeringFaultPayload struct {
	EffectID uint64 `json:"effectId"`
	Entity   int    `json:"entity"`
	Error    string `json:"error"`
}

// Started publishes an effect start.
func Started(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload StartedPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventStarted,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Payload:  payload,
	})
}

// Stopped publishes an effect removal.
func Stopped(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload StoppedPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventStopped,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityInfo,
		Payload:  payload,
	})
}

// CapacityExceeded publishes a rejected start request.
func CapacityExceeded(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload CapacityExceededPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventCapacityExceeded,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityWarn,
		Payload:  payload,
	})
}

// SpawnRejected publishes a refused spawn. Rejections are routine when the
// world is saturated, so they are debug level.
func SpawnRejected(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload SpawnRejectedPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventSpawnRejected,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityDebug,
		Payload:  payload,
	})
}

// ConfigsRefreshed publishes a global config refresh.
func ConfigsRefreshed(ctx context.Context, pub logging.Publisher, tick uint64, payload ConfigsRefreshedPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventConfigsRefreshed,
		Tick:     tick,
		Actor:    logging.EntityRef{Kind: logging.EntityKindWorld},
		Severity: logging.SeverityInfo,
		Category: logging.CategorySystem,
		Payload:  payload,
	})
}

// SteeringFault publishes a per-entity steering failure.
func SteeringFault(ctx context.Context, pub logging.Publisher, tick uint64, actor logging.EntityRef, payload SteeringFaultPayload) {
	publish(ctx, pub, logging.Event{
		Type:     EventSteeringFault,
		Tick:     tick,
		Actor:    actor,
		Severity: logging.SeverityWarn,
		Payload:  payload,
	})
}

func publish(ctx context.Context, pub logging.Publisher, event logging.Event) {
	if pub == nil {
		return
	}
	if event.Category == "" {
		event.Category = logging.CategoryGameplay
	}
	pub.Publish(ctx, event)
}
