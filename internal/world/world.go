package world

import (
	"math/rand"
	"sync"

	"boulder-rain/logging"
)

// RNGFactory produces deterministic RNG instances for world subsystems.
type RNGFactory func(rootSeed, label string) *rand.Rand

// Deps bundles runtime dependencies required to construct a World.
type Deps struct {
	Publisher logging.Publisher
	RNG       RNGFactory
}

// World is the sandbox simulation the effect manager rains into. It keeps a
// fixed pool of entity slots, the connected players and a small creature
// population. All methods are safe for concurrent use.
type World struct {
	mu sync.RWMutex

	config    Config
	publisher logging.Publisher
	rng       *rand.Rand
	tick      uint64

	slots []entity
	live  int

	players   map[string]*Player
	creatures []*Creature
}

// StepResult summarises one simulation step.
type StepResult struct {
	Tick            uint64 `json:"tick"`
	Expired         int    `json:"expired"`
	Hits            int    `json:"hits"`
	CreaturesKilled int    `json:"creaturesKilled"`
	Respawned       int    `json:"respawned"`
}

// Stats is a point-in-time view used by diagnostics.
type Stats struct {
	Tick         uint64 `json:"tick"`
	LiveEntities int    `json:"liveEntities"`
	MaxEntities  int    `json:"maxEntities"`
	Players      int    `json:"players"`
	Creatures    int    `json:"creatures"`
}

// New constructs a world with normalized configuration and a seeded creature
// population.
func New(cfg Config, deps Deps) *World {
	normalized := cfg.normalized()

	factory := deps.RNG
	if factory == nil {
		factory = NewDeterministicRNG
	}
	publisher := deps.Publisher
	if publisher == nil {
		publisher = logging.NopPublisher()
	}

	w := &World{
		config:    normalized,
		publisher: publisher,
		rng:       factory(normalized.Seed, "world"),
		slots:     make([]entity, normalized.MaxEntities),
		players:   make(map[string]*Player),
	}
	w.seedCreatures(factory(normalized.Seed, "creatures"))
	return w
}

// Config returns the normalized configuration captured at construction time.
func (w *World) Config() Config {
	if w == nil {
		return Config{}
	}
	return w.config
}

// CurrentTick returns the number of completed steps.
func (w *World) CurrentTick() uint64 {
	if w == nil {
		return 0
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.tick
}

// Step advances the world by one tick: entities move (once plus their extra
// updates), expire, collide with the ground or hit creatures, and dead
// creatures respawn once their timer elapsed.
func (w *World) Step() StepResult {
	if w == nil {
		return StepResult{}
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	w.tick++
	result := StepResult{Tick: w.tick}
	for i := range w.slots {
		slot := &w.slots[i]
		for update := 0; slot.active && update <= slot.extraUpdates; update++ {
			w.advanceEntity(slot, &result)
		}
	}
	result.Respawned = w.respawnCreatures()
	return result
}

// Stats reports counts for diagnostics.
func (w *World) Stats() Stats {
	if w == nil {
		return Stats{}
	}
	w.mu.RLock()
	defer w.mu.RUnlock()
	alive := 0
	for _, c := range w.creatures {
		if c.Alive {
			alive++
		}
	}
	return Stats{
		Tick:         w.tick,
		LiveEntities: w.live,
		MaxEntities:  len(w.slots),
		Players:      len(w.players),
		Creatures:    alive,
	}
}
