package world

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"boulder-rain/internal/effects"
	"boulder-rain/internal/homing"
	"boulder-rain/logging"
	"boulder-rain/logging/lifecycle"
)

const (
	creatureRadius = 24.0
	playerHeight   = 48.0
)

var (
	// ErrEmptyOwner is returned when joining without an owner id.
	ErrEmptyOwner = errors.New("world: empty owner id")
	// ErrOwnerConnected is returned when the owner already has a player.
	ErrOwnerConnected = errors.New("world: owner already connected")
)

// Player is a connected owner. Position is the player's center.
type Player struct {
	Owner      effects.OwnerID `json:"owner"`
	Position   mgl64.Vec2      `json:"position"`
	Life       int             `json:"life"`
	MaxLife    int             `json:"maxLife"`
	JoinedTick uint64          `json:"joinedTick"`
}

func (p Player) Center() mgl64.Vec2 { return p.Position }

func (p Player) Targetable() bool { return p.MaxLife > 0 }

// Creature is a wandering monster or critter. Position is its center.
type Creature struct {
	ID           int        `json:"id"`
	Position     mgl64.Vec2 `json:"position"`
	Life         int        `json:"life"`
	MaxLife      int        `json:"maxLife"`
	Friendly     bool       `json:"friendly"`
	Invulnerable bool       `json:"invulnerable"`
	Alive        bool       `json:"alive"`

	diedAt uint64
}

func (c Creature) Center() mgl64.Vec2 { return c.Position }

// Targetable matches creatures a homing projectile may chase: alive, hostile,
// with a life pool and able to take damage.
func (c Creature) Targetable() bool {
	return c.Alive && !c.Friendly && c.MaxLife > 0 && !c.Invulnerable
}

// JoinPlayer places owner on the ground at a random column. An owner holds at
// most one player; joining again fails with ErrOwnerConnected.
func (w *World) JoinPlayer(ctx context.Context, owner effects.OwnerID) (Player, error) {
	if owner == "" {
		return Player{}, ErrEmptyOwner
	}
	w.mu.Lock()
	if _, ok := w.players[string(owner)]; ok {
		w.mu.Unlock()
		return Player{}, fmt.Errorf("join %s: %w", owner, ErrOwnerConnected)
	}
	player := &Player{
		Owner:      owner,
		Position:   mgl64.Vec2{randomRange(w.rng, 0, w.config.Width), w.config.GroundLevel() - playerHeight/2},
		Life:       w.config.PlayerLife,
		MaxLife:    w.config.PlayerLife,
		JoinedTick: w.tick,
	}
	w.players[string(owner)] = player
	tick := w.tick
	snapshot := *player
	w.mu.Unlock()

	lifecycle.OwnerJoined(ctx, w.publisher, tick, ownerRef(owner), lifecycle.OwnerJoinedPayload{
		SpawnX: snapshot.Position.X(),
		SpawnY: snapshot.Position.Y(),
	})
	return snapshot, nil
}

// LeavePlayer removes owner and reports whether it was present.
func (w *World) LeavePlayer(ctx context.Context, owner effects.OwnerID, reason string) bool {
	w.mu.Lock()
	_, ok := w.players[string(owner)]
	delete(w.players, string(owner))
	tick := w.tick
	w.mu.Unlock()

	if ok {
		lifecycle.OwnerLeft(ctx, w.publisher, tick, ownerRef(owner), lifecycle.OwnerLeftPayload{Reason: reason})
	}
	return ok
}

// MovePlayer teleports a player, keeping it inside the world bounds.
func (w *World) MovePlayer(owner effects.OwnerID, position mgl64.Vec2) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	player, ok := w.players[string(owner)]
	if !ok {
		return false
	}
	player.Position = mgl64.Vec2{
		min(max(position.X(), 0), w.config.Width),
		min(max(position.Y(), 0), w.config.GroundLevel()-playerHeight/2),
	}
	return true
}

func (w *World) IsOwnerValid(owner effects.OwnerID) bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	_, ok := w.players[string(owner)]
	return ok
}

func (w *World) OwnerPosition(owner effects.OwnerID) (mgl64.Vec2, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	player, ok := w.players[string(owner)]
	if !ok {
		return mgl64.Vec2{}, false
	}
	return player.Position, true
}

// Players returns a snapshot of connected players.
func (w *World) Players() []Player {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]Player, 0, len(w.players))
	for _, p := range w.players {
		out = append(out, *p)
	}
	return out
}

// Creatures returns a snapshot of the creature population.
func (w *World) Creatures() []Creature {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]Creature, 0, len(w.creatures))
	for _, c := range w.creatures {
		out = append(out, *c)
	}
	return out
}

// AddCreature inserts a creature and returns its id. Alive is forced on.
func (w *World) AddCreature(c Creature) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	c.ID = len(w.creatures) + 1
	c.Alive = true
	if c.Life <= 0 {
		c.Life = c.MaxLife
	}
	w.creatures = append(w.creatures, &c)
	return c.ID
}

// LiveCreatures yields a snapshot of the creatures alive when called.
func (w *World) LiveCreatures() iter.Seq[homing.Candidate] {
	w.mu.RLock()
	candidates := make([]homing.Candidate, 0, len(w.creatures))
	for _, c := range w.creatures {
		if c.Alive {
			candidates = append(candidates, *c)
		}
	}
	w.mu.RUnlock()
	return yieldAll(candidates)
}

// LivePlayers yields a snapshot of the connected players.
func (w *World) LivePlayers() iter.Seq[homing.Candidate] {
	w.mu.RLock()
	candidates := make([]homing.Candidate, 0, len(w.players))
	for _, p := range w.players {
		candidates = append(candidates, *p)
	}
	w.mu.RUnlock()
	return yieldAll(candidates)
}

func yieldAll(candidates []homing.Candidate) iter.Seq[homing.Candidate] {
	return func(yield func(homing.Candidate) bool) {
		for _, c := range candidates {
			if !yield(c) {
				return
			}
		}
	}
}

// seedCreatures spreads the initial population along the ground. Every
// fourth creature is a friendly critter.
func (w *World) seedCreatures(rng *rand.Rand) {
	for i := 0; i < w.config.CreatureCount; i++ {
		w.creatures = append(w.creatures, &Creature{
			ID:       i + 1,
			Position: mgl64.Vec2{randomRange(rng, 0, w.config.Width), w.config.GroundLevel() - creatureRadius},
			Life:     w.config.CreatureLife,
			MaxLife:  w.config.CreatureLife,
			Friendly: i%4 == 3,
			Alive:    true,
		})
	}
}

// respawnCreatures revives creatures whose respawn timer elapsed. Callers
// hold w.mu.
func (w *World) respawnCreatures() int {
	revived := 0
	for _, c := range w.creatures {
		if c.Alive || w.tick-c.diedAt < uint64(w.config.RespawnTicks) {
			continue
		}
		c.Alive = true
		c.Life = c.MaxLife
		c.Position = mgl64.Vec2{randomRange(w.rng, 0, w.config.Width), w.config.GroundLevel() - creatureRadius}
		revived++
	}
	return revived
}

func ownerRef(owner effects.OwnerID) logging.EntityRef {
	return logging.EntityRef{ID: string(owner), Kind: logging.EntityKindOwner}
}
