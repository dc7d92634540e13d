package effects

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"sync"

	"boulder-rain/internal/homing"
	"boulder-rain/internal/telemetry"
	"boulder-rain/logging"
	effectslog "boulder-rain/logging/effects"
)

// DefaultMaxEffects is the ceiling used when ManagerConfig leaves it unset.
const DefaultMaxEffects = 10

// ManagerConfig wires a Manager to its world and observers.
type ManagerConfig struct {
	World      World
	MaxEffects int
	RNG        *rand.Rand
	Publisher  logging.Publisher
	Metrics    telemetry.Metrics
}

// Manager owns every running effect and the homing spawns they produced.
// All methods are safe for concurrent use; Tick is expected to run on the
// simulation goroutine while commands arrive from connection handlers.
type Manager struct {
	mu sync.Mutex

	world     World
	capacity  int
	rng       *rand.Rand
	publisher logging.Publisher
	metrics   telemetry.Metrics

	nextID  EffectID
	effects []*Effect
	tracked *tracker
}

// NewManager builds an empty manager. IDs start at 1.
func NewManager(cfg ManagerConfig) *Manager {
	capacity := cfg.MaxEffects
	if capacity <= 0 {
		capacity = DefaultMaxEffects
	}
	rng := cfg.RNG
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	publisher := cfg.Publisher
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = telemetry.Nop()
	}
	return &Manager{
		world:     cfg.World,
		capacity:  capacity,
		rng:       rng,
		publisher: publisher,
		metrics:   metrics,
		nextID:    1,
		tracked:   newTracker(),
	}
}

// Start begins a new effect for owner using a copy of cfg.
func (m *Manager) Start(ctx context.Context, owner OwnerID, cfg ProjectileConfig) (EffectID, error) {
	if m == nil {
		return 0, ErrNilManager
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	tick := m.currentTick()
	if len(m.effects) >= m.capacity {
		m.metrics.Add(telemetry.MetricCapacityRejections, 1)
		effectslog.CapacityExceeded(ctx, m.publisher, tick, ownerRef(owner), effectslog.CapacityExceededPayload{
			Active:   len(m.effects),
			Capacity: m.capacity,
		})
		return 0, fmt.Errorf("start for %s: %w (%d active)", owner, ErrCapacityExceeded, len(m.effects))
	}
	if m.world == nil || !m.world.IsOwnerValid(owner) {
		return 0, fmt.Errorf("start for %s: %w", owner, ErrInvalidOwner)
	}

	effect := &Effect{
		ID:            m.nextID,
		Owner:         owner,
		StartTick:     tick,
		LastSpawnTick: tick,
		Active:        true,
		Config:        cfg,
	}
	m.nextID++
	m.effects = append(m.effects, effect)

	m.metrics.Add(telemetry.MetricEffectsStarted, 1)
	m.metrics.Store(telemetry.MetricEffectsActive, uint64(len(m.effects)))
	effectslog.Started(ctx, m.publisher, tick, ownerRef(owner), effectslog.StartedPayload{
		EffectID:      uint64(effect.ID),
		SpawnInterval: cfg.SpawnInterval,
		Homing:        cfg.Homing,
	})
	return effect.ID, nil
}

// Stop removes every effect belonging to owner and returns how many were
// removed. Stopping an owner without effects is a no-op.
func (m *Manager) Stop(ctx context.Context, owner OwnerID) int {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.removeWhere(ctx, m.currentTick(), effectslog.ReasonOwnerStopped, func(e *Effect) bool {
		return e.Owner == owner
	})
}

// Effects lists the owner's active effects.
func (m *Manager) Effects(owner OwnerID) []Snapshot {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []Snapshot
	for _, effect := range m.effects {
		if effect.Active && effect.Owner == owner {
			out = append(out, effect.snapshot())
		}
	}
	return out
}

// Snapshot lists every active effect in start order.
func (m *Manager) Snapshot() []Snapshot {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Snapshot, 0, len(m.effects))
	for _, effect := range m.effects {
		if effect.Active {
			out = append(out, effect.snapshot())
		}
	}
	return out
}

// TrackedCount reports how many homing spawns are currently registered.
func (m *Manager) TrackedCount() int {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tracked.len()
}

// RefreshAllConfigs replaces every active effect's config with its own copy
// of cfg. Spawn timing is left untouched.
func (m *Manager) RefreshAllConfigs(ctx context.Context, cfg ProjectileConfig) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	refreshed := 0
	for _, effect := range m.effects {
		if !effect.Active {
			continue
		}
		effect.Config = cfg
		refreshed++
	}
	effectslog.ConfigsRefreshed(ctx, m.publisher, m.currentTick(), effectslog.ConfigsRefreshedPayload{Effects: refreshed})
}

// SetCapacity changes the ceiling checked by Start. Running effects are kept
// even when they exceed the new value.
func (m *Manager) SetCapacity(n int) {
	if m == nil {
		return
	}
	if n <= 0 {
		n = DefaultMaxEffects
	}
	m.mu.Lock()
	m.capacity = n
	m.mu.Unlock()
}

// Capacity returns the current ceiling.
func (m *Manager) Capacity() int {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.capacity
}

// Tick runs one manager pass: prune dead effects, spawn for due ones, forget
// dead homing spawns, then steer the surviving ones.
func (m *Manager) Tick(ctx context.Context, tick uint64) {
	if m == nil || m.world == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.removeWhere(ctx, tick, effectslog.ReasonOwnerInvalid, func(e *Effect) bool {
		return !e.IsLive(m.world)
	})

	for _, effect := range m.effects {
		if !effect.Due(tick) {
			continue
		}
		effect.LastSpawnTick = tick
		handle, err := effect.Spawn(m.world, m.rng)
		if err != nil {
			m.metrics.Add(telemetry.MetricSpawnRejections, 1)
			effectslog.SpawnRejected(ctx, m.publisher, tick, ownerRef(effect.Owner), effectslog.SpawnRejectedPayload{
				EffectID: uint64(effect.ID),
				Kind:     effect.Config.Kind,
				Error:    err.Error(),
			})
			continue
		}
		m.metrics.Add(telemetry.MetricProjectilesSpawned, 1)
		if effect.Config.Homing {
			m.tracked.add(effect.trackingKey(handle))
		}
	}

	m.tracked.prune(m.world.IsEntityLive)
	m.steer(ctx, tick)
	m.metrics.Store(telemetry.MetricTrackedEntities, uint64(m.tracked.len()))
}

func (m *Manager) steer(ctx context.Context, tick uint64) {
	if m.tracked.len() == 0 {
		return
	}
	for handle := range m.world.LiveEntities() {
		key, ok := m.world.EntityTag(handle)
		if !ok || key.Entity != handle || !m.tracked.has(key) {
			continue
		}
		effect := m.findEffect(key.Effect)
		if effect == nil {
			continue
		}
		if err := m.steerEntity(handle, effect.Config); err != nil {
			m.metrics.Add(telemetry.MetricSteeringFaults, 1)
			effectslog.SteeringFault(ctx, m.publisher, tick, entityRef(handle), effectslog.SteeringFaultPayload{
				EffectID: uint64(key.Effect),
				Entity:   int(handle),
				Error:    err.Error(),
			})
		}
	}
}

func (m *Manager) steerEntity(handle EntityHandle, cfg ProjectileConfig) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("steer entity %d: %v", handle, r)
		}
	}()

	target, found := homing.FindNearest(m.world, m.world.EntityPosition(handle), cfg.HomingRange, cfg.HomingTarget)
	if !found {
		return nil
	}
	velocity := homing.Steer(m.world.EntityVelocity(handle), target, m.world.EntityCenter(handle), cfg.HomingSpeed)
	m.world.SetEntityVelocity(handle, velocity)
	return nil
}

func (m *Manager) findEffect(id EffectID) *Effect {
	for _, effect := range m.effects {
		if effect.ID == id {
			return effect
		}
	}
	return nil
}

// Dispose drops every effect and tracked spawn.
func (m *Manager) Dispose(ctx context.Context) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.removeWhere(ctx, m.currentTick(), effectslog.ReasonDisposed, func(*Effect) bool { return true })
	m.tracked.clear()
	m.metrics.Store(telemetry.MetricTrackedEntities, 0)
}

// removeWhere must be called with m.mu held.
func (m *Manager) removeWhere(ctx context.Context, tick uint64, reason string, match func(*Effect) bool) int {
	kept := m.effects[:0]
	removed := 0
	for _, effect := range m.effects {
		if !match(effect) {
			kept = append(kept, effect)
			continue
		}
		effect.Active = false
		removed++
		effectslog.Stopped(ctx, m.publisher, tick, ownerRef(effect.Owner), effectslog.StoppedPayload{
			EffectID: uint64(effect.ID),
			Reason:   reason,
		})
	}
	clear(m.effects[len(kept):])
	m.effects = kept
	if removed > 0 {
		m.metrics.Add(telemetry.MetricEffectsStopped, uint64(removed))
		m.metrics.Store(telemetry.MetricEffectsActive, uint64(len(m.effects)))
	}
	return removed
}

func (m *Manager) currentTick() uint64 {
	if m.world == nil {
		return 0
	}
	return m.world.CurrentTick()
}

func ownerRef(owner OwnerID) logging.EntityRef {
	return logging.EntityRef{ID: string(owner), Kind: logging.EntityKindOwner}
}

func entityRef(handle EntityHandle) logging.EntityRef {
	return logging.EntityRef{ID: strconv.Itoa(int(handle)), Kind: logging.EntityKindEntity}
}
