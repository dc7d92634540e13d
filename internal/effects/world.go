package effects

import (
	"iter"

	"github.com/go-gl/mathgl/mgl64"

	"boulder-rain/internal/homing"
)

// OwnerID identifies the actor an effect rains around.
type OwnerID string

// EntityHandle addresses an entity slot in the world. Slots are reused, so a
// handle alone does not identify a spawn.
type EntityHandle int

// SpawnRequest carries everything the world needs to create a projectile.
type SpawnRequest struct {
	Position  mgl64.Vec2
	Velocity  mgl64.Vec2
	Kind      int
	Damage    int
	Knockback float64
}

//go:generate mockgen -source=world.go -destination=mocks/world_mock.go -package=mocks

// World is the host simulation the manager drives. Coordinates are y-down.
type World interface {
	homing.Population

	CurrentTick() uint64

	SpawnEntity(req SpawnRequest) (EntityHandle, error)
	SetEntityLifetime(h EntityHandle, frames int)
	SetEntityExtraUpdates(h EntityHandle, updates int)
	SetEntityCollision(h EntityHandle, tileCollide bool, penetrate int)
	TagEntity(h EntityHandle, key TrackingKey)
	EntityTag(h EntityHandle) (TrackingKey, bool)

	IsEntityLive(h EntityHandle) bool
	// EntityPosition is the top-left corner of the entity's hitbox.
	EntityPosition(h EntityHandle) mgl64.Vec2
	EntityCenter(h EntityHandle) mgl64.Vec2
	EntityVelocity(h EntityHandle) mgl64.Vec2
	SetEntityVelocity(h EntityHandle, v mgl64.Vec2)
	LiveEntities() iter.Seq[EntityHandle]

	IsOwnerValid(owner OwnerID) bool
	// OwnerPosition returns the owner's center.
	OwnerPosition(owner OwnerID) (mgl64.Vec2, bool)
}
