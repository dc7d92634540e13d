package world

import (
	"fmt"
	"iter"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"boulder-rain/internal/effects"
)

var _ effects.World = (*World)(nil)

// entitySize is the square hitbox edge of every spawned entity.
const entitySize = 16.0

type entity struct {
	active       bool
	kind         int
	position     mgl64.Vec2
	velocity     mgl64.Vec2
	damage       int
	knockback    float64
	lifetime     int
	extraUpdates int
	tileCollide  bool
	penetrate    int
	tag          effects.TrackingKey
	tagged       bool
}

func (e *entity) center() mgl64.Vec2 {
	return e.position.Add(mgl64.Vec2{entitySize / 2, entitySize / 2})
}

// SpawnEntity claims the lowest free slot. It fails with
// effects.ErrSpawnRejected when every slot is taken or the kind is unknown.
func (w *World) SpawnEntity(req effects.SpawnRequest) (effects.EntityHandle, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if req.Kind <= 0 {
		return 0, fmt.Errorf("unknown entity kind %d: %w", req.Kind, effects.ErrSpawnRejected)
	}
	if w.live >= len(w.slots) {
		return 0, fmt.Errorf("%d entities live: %w", w.live, effects.ErrSpawnRejected)
	}
	for i := range w.slots {
		if w.slots[i].active {
			continue
		}
		w.slots[i] = entity{
			active:    true,
			kind:      req.Kind,
			position:  req.Position,
			velocity:  req.Velocity,
			damage:    req.Damage,
			knockback: req.Knockback,
			lifetime:  1,
			penetrate: 1,
		}
		w.live++
		return effects.EntityHandle(i), nil
	}
	return 0, fmt.Errorf("no free entity slot: %w", effects.ErrSpawnRejected)
}

func (w *World) slot(h effects.EntityHandle) *entity {
	if h < 0 || int(h) >= len(w.slots) || !w.slots[h].active {
		return nil
	}
	return &w.slots[h]
}

func (w *World) SetEntityLifetime(h effects.EntityHandle, frames int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if e := w.slot(h); e != nil {
		e.lifetime = frames
	}
}

func (w *World) SetEntityExtraUpdates(h effects.EntityHandle, updates int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if e := w.slot(h); e != nil {
		e.extraUpdates = max(updates, 0)
	}
}

func (w *World) SetEntityCollision(h effects.EntityHandle, tileCollide bool, penetrate int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if e := w.slot(h); e != nil {
		e.tileCollide = tileCollide
		e.penetrate = penetrate
	}
}

func (w *World) TagEntity(h effects.EntityHandle, key effects.TrackingKey) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if e := w.slot(h); e != nil {
		e.tag = key
		e.tagged = true
	}
}

func (w *World) EntityTag(h effects.EntityHandle) (effects.TrackingKey, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	e := w.slot(h)
	if e == nil || !e.tagged {
		return effects.TrackingKey{}, false
	}
	return e.tag, true
}

func (w *World) IsEntityLive(h effects.EntityHandle) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.slot(h) != nil
}

func (w *World) EntityPosition(h effects.EntityHandle) mgl64.Vec2 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if e := w.slot(h); e != nil {
		return e.position
	}
	return mgl64.Vec2{}
}

func (w *World) EntityCenter(h effects.EntityHandle) mgl64.Vec2 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if e := w.slot(h); e != nil {
		return e.center()
	}
	return mgl64.Vec2{}
}

func (w *World) EntityVelocity(h effects.EntityHandle) mgl64.Vec2 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if e := w.slot(h); e != nil {
		return e.velocity
	}
	return mgl64.Vec2{}
}

func (w *World) SetEntityVelocity(h effects.EntityHandle, v mgl64.Vec2) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if e := w.slot(h); e != nil {
		e.velocity = v
	}
}

// LiveEntities yields the handles that were live when iteration started.
func (w *World) LiveEntities() iter.Seq[effects.EntityHandle] {
	w.mu.RLock()
	handles := make([]effects.EntityHandle, 0, w.live)
	for i := range w.slots {
		if w.slots[i].active {
			handles = append(handles, effects.EntityHandle(i))
		}
	}
	w.mu.RUnlock()

	return func(yield func(effects.EntityHandle) bool) {
		for _, h := range handles {
			if !yield(h) {
				return
			}
		}
	}
}

// advanceEntity runs one update of a live entity. Callers hold w.mu.
func (w *World) advanceEntity(e *entity, result *StepResult) {
	e.position = e.position.Add(e.velocity)
	e.lifetime--
	if e.lifetime <= 0 {
		w.despawn(e, result)
		return
	}
	if e.tileCollide && e.position.Y()+entitySize >= w.config.GroundLevel() {
		w.despawn(e, result)
		return
	}
	if e.position.X()+entitySize < 0 || e.position.X() > w.config.Width || e.position.Y() > w.config.Height {
		w.despawn(e, result)
		return
	}

	center := e.center()
	for _, c := range w.creatures {
		if !c.Targetable() || c.Position.Sub(center).Len() > creatureRadius+entitySize/2 {
			continue
		}
		result.Hits++
		c.Life -= e.damage
		if e.velocity.X() != 0 {
			c.Position[0] += math.Copysign(e.knockback, e.velocity.X())
		}
		if c.Life <= 0 {
			c.Life = 0
			c.Alive = false
			c.diedAt = w.tick
			result.CreaturesKilled++
		}
		if e.penetrate > 0 {
			e.penetrate--
			if e.penetrate == 0 {
				w.despawn(e, result)
				return
			}
		}
	}
}

func (w *World) despawn(e *entity, result *StepResult) {
	*e = entity{}
	w.live--
	result.Expired++
}
