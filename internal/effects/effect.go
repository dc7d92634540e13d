package effects

import (
	"fmt"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// EffectID is unique for the lifetime of a Manager.
type EffectID uint64

// Effect is one owner's running rain.
type Effect struct {
	ID            EffectID
	Owner         OwnerID
	StartTick     uint64
	LastSpawnTick uint64
	Active        bool
	Config        ProjectileConfig
}

// IsLive reports whether the effect may still spawn.
func (e *Effect) IsLive(world World) bool {
	if e == nil || !e.Active || world == nil {
		return false
	}
	return world.IsOwnerValid(e.Owner)
}

// Due reports whether a full spawn interval elapsed since the last spawn.
func (e *Effect) Due(tick uint64) bool {
	if e == nil || tick < e.LastSpawnTick {
		return false
	}
	return tick-e.LastSpawnTick >= e.Config.interval()
}

// Spawn creates one projectile above the owner and applies the entity
// settings. Homing spawns are tagged with their tracking key.
func (e *Effect) Spawn(world World, rng *rand.Rand) (EntityHandle, error) {
	center, ok := world.OwnerPosition(e.Owner)
	if !ok {
		return 0, fmt.Errorf("spawn for effect %d: %w", e.ID, ErrInvalidOwner)
	}
	cfg := e.Config

	offset := rng.Float64()*cfg.Width - cfg.Width/2
	req := SpawnRequest{
		Position:  mgl64.Vec2{center.X() + offset, center.Y() - cfg.Height},
		Velocity:  mgl64.Vec2{(rng.Float64() - 0.5) * 2, cfg.Speed},
		Kind:      cfg.Kind,
		Damage:    cfg.Damage,
		Knockback: cfg.Knockback,
	}
	handle, err := world.SpawnEntity(req)
	if err != nil {
		return 0, fmt.Errorf("spawn for effect %d: %w", e.ID, err)
	}

	world.SetEntityLifetime(handle, cfg.Lifetime)
	world.SetEntityCollision(handle, true, 1)
	world.SetEntityExtraUpdates(handle, cfg.ExtraUpdates)
	if cfg.Homing {
		world.TagEntity(handle, e.trackingKey(handle))
	}
	return handle, nil
}

func (e *Effect) trackingKey(handle EntityHandle) TrackingKey {
	return TrackingKey{Effect: e.ID, Entity: handle, Owner: e.Owner}
}

// Snapshot is a read-only copy of an effect.
type Snapshot struct {
	ID            EffectID         `json:"id"`
	Owner         OwnerID          `json:"owner"`
	StartTick     uint64           `json:"startTick"`
	LastSpawnTick uint64           `json:"lastSpawnTick"`
	Config        ProjectileConfig `json:"config"`
}

func (e *Effect) snapshot() Snapshot {
	return Snapshot{
		ID:            e.ID,
		Owner:         e.Owner,
		StartTick:     e.StartTick,
		LastSpawnTick: e.LastSpawnTick,
		Config:        e.Config,
	}
}
