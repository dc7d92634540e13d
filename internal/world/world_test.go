package world

import (
	"context"
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"boulder-rain/internal/effects"
	"boulder-rain/internal/homing"
	"boulder-rain/logging/lifecycle"
	"boulder-rain/logging/sinks"
)

func newTestWorld(t *testing.T, cfg Config) *World {
	t.Helper()
	return New(cfg, Deps{})
}

func emptyConfig() Config {
	cfg := DefaultConfig()
	cfg.CreatureCount = 0
	return cfg
}

func spawn(t *testing.T, w *World, req effects.SpawnRequest) effects.EntityHandle {
	t.Helper()
	h, err := w.SpawnEntity(req)
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	return h
}

func TestConfigNormalization(t *testing.T) {
	cfg := Config{Seed: "  ", Width: -1, MaxEntities: -5, CreatureCount: -2, GroundDepth: 1e9}.Normalized()
	if cfg.Seed != DefaultSeed {
		t.Fatalf("expected default seed, got %q", cfg.Seed)
	}
	if cfg.Width != DefaultWidth || cfg.Height != DefaultHeight {
		t.Fatalf("expected default dimensions, got %vx%v", cfg.Width, cfg.Height)
	}
	if cfg.MaxEntities != DefaultMaxEntities || cfg.CreatureCount != 0 || cfg.GroundDepth != 0 {
		t.Fatalf("unexpected normalization %+v", cfg)
	}
}

func TestDeterministicSeedValueIsStable(t *testing.T) {
	if DeterministicSeedValue("seed", "world") != DeterministicSeedValue("seed", "world") {
		t.Fatalf("seed derivation must be stable")
	}
	if DeterministicSeedValue("seed", "world") == DeterministicSeedValue("seed", "creatures") {
		t.Fatalf("labels must produce different seeds")
	}
	a := NewDeterministicRNG("seed", "x").Float64()
	b := NewDeterministicRNG("seed", "x").Float64()
	if a != b {
		t.Fatalf("expected identical sequences, got %v and %v", a, b)
	}
}

func TestSpawnEntityRespectsBudget(t *testing.T) {
	cfg := emptyConfig()
	cfg.MaxEntities = 2
	w := newTestWorld(t, cfg)

	req := effects.SpawnRequest{Kind: 99, Position: mgl64.Vec2{10, 10}}
	spawn(t, w, req)
	spawn(t, w, req)
	if _, err := w.SpawnEntity(req); !errors.Is(err, effects.ErrSpawnRejected) {
		t.Fatalf("expected ErrSpawnRejected, got %v", err)
	}
	if _, err := w.SpawnEntity(effects.SpawnRequest{Kind: 0}); !errors.Is(err, effects.ErrSpawnRejected) {
		t.Fatalf("expected unknown kind rejected, got %v", err)
	}
}

func TestEntityExpiresAfterLifetime(t *testing.T) {
	w := newTestWorld(t, emptyConfig())
	h := spawn(t, w, effects.SpawnRequest{Kind: 99, Position: mgl64.Vec2{100, 100}})
	w.SetEntityLifetime(h, 3)

	for i := 0; i < 2; i++ {
		w.Step()
		if !w.IsEntityLive(h) {
			t.Fatalf("entity died early at step %d", i+1)
		}
	}
	result := w.Step()
	if w.IsEntityLive(h) || result.Expired != 1 {
		t.Fatalf("expected entity to expire on third step, result %+v", result)
	}
}

func TestExtraUpdatesMoveMultipleTimesPerStep(t *testing.T) {
	w := newTestWorld(t, emptyConfig())
	h := spawn(t, w, effects.SpawnRequest{Kind: 99, Position: mgl64.Vec2{100, 100}, Velocity: mgl64.Vec2{1, 0}})
	w.SetEntityLifetime(h, 100)
	w.SetEntityExtraUpdates(h, 2)

	w.Step()

	if got := w.EntityPosition(h); got != (mgl64.Vec2{103, 100}) {
		t.Fatalf("expected three updates, got position %v", got)
	}
}

func TestGroundCollisionDespawnsEntity(t *testing.T) {
	w := newTestWorld(t, emptyConfig())
	ground := w.Config().GroundLevel()
	h := spawn(t, w, effects.SpawnRequest{Kind: 99, Position: mgl64.Vec2{100, ground - entitySize - 5}, Velocity: mgl64.Vec2{0, 10}})
	w.SetEntityLifetime(h, 100)
	w.SetEntityCollision(h, true, 1)

	w.Step()

	if w.IsEntityLive(h) {
		t.Fatalf("expected entity to hit the ground")
	}
}

func TestProjectileDamagesHostileCreature(t *testing.T) {
	w := newTestWorld(t, emptyConfig())
	id := w.AddCreature(Creature{Position: mgl64.Vec2{500, 500}, MaxLife: 60})
	h := spawn(t, w, effects.SpawnRequest{
		Kind:      99,
		Position:  mgl64.Vec2{500 - entitySize/2, 480 - entitySize/2},
		Velocity:  mgl64.Vec2{1, 10},
		Damage:    50,
		Knockback: 5,
	})
	w.SetEntityLifetime(h, 100)
	w.SetEntityCollision(h, false, 1)

	result := w.Step()

	if result.Hits != 1 {
		t.Fatalf("expected one hit, got %+v", result)
	}
	if w.IsEntityLive(h) {
		t.Fatalf("penetrate 1 projectile must despawn after its hit")
	}
	creature := w.Creatures()[id-1]
	if creature.Life != 10 || creature.Position.X() != 505 {
		t.Fatalf("unexpected creature after hit %+v", creature)
	}
}

func TestCreatureDiesAndRespawns(t *testing.T) {
	cfg := emptyConfig()
	cfg.RespawnTicks = 2
	w := newTestWorld(t, cfg)
	w.AddCreature(Creature{Position: mgl64.Vec2{500, 500}, MaxLife: 10})
	h := spawn(t, w, effects.SpawnRequest{Kind: 99, Position: mgl64.Vec2{492, 492}, Damage: 50})
	w.SetEntityLifetime(h, 100)

	if result := w.Step(); result.CreaturesKilled != 1 {
		t.Fatalf("expected a kill, got %+v", result)
	}
	if w.Stats().Creatures != 0 {
		t.Fatalf("expected no live creatures")
	}
	w.Step()
	if result := w.Step(); result.Respawned != 1 {
		t.Fatalf("expected respawn after timer, got %+v", result)
	}
}

func TestSlotReuseKeepsHandlesDistinctByTag(t *testing.T) {
	w := newTestWorld(t, emptyConfig())
	h := spawn(t, w, effects.SpawnRequest{Kind: 99, Position: mgl64.Vec2{100, 100}})
	w.TagEntity(h, effects.TrackingKey{Effect: 1, Entity: h, Owner: "a"})
	w.SetEntityLifetime(h, 1)
	w.Step()

	reused := spawn(t, w, effects.SpawnRequest{Kind: 99, Position: mgl64.Vec2{100, 100}})
	if reused != h {
		t.Fatalf("expected lowest slot to be reused")
	}
	if _, ok := w.EntityTag(reused); ok {
		t.Fatalf("reused slot must not inherit the previous tag")
	}
}

func TestPlayersJoinAndLeave(t *testing.T) {
	sink := sinks.NewMemorySink()
	w := New(emptyConfig(), Deps{Publisher: sink})
	ctx := context.Background()

	if _, err := w.JoinPlayer(ctx, ""); !errors.Is(err, ErrEmptyOwner) {
		t.Fatalf("expected ErrEmptyOwner, got %v", err)
	}
	player, err := w.JoinPlayer(ctx, "alice")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if !w.IsOwnerValid("alice") {
		t.Fatalf("expected alice to be valid")
	}
	if pos, ok := w.OwnerPosition("alice"); !ok || pos != player.Position {
		t.Fatalf("unexpected owner position %v", pos)
	}
	if _, err := w.JoinPlayer(ctx, "alice"); !errors.Is(err, ErrOwnerConnected) {
		t.Fatalf("expected ErrOwnerConnected on rejoin, got %v", err)
	}
	if pos, _ := w.OwnerPosition("alice"); pos != player.Position {
		t.Fatalf("rejoin must not move the existing player")
	}
	if !w.LeavePlayer(ctx, "alice", "disconnect") || w.LeavePlayer(ctx, "alice", "disconnect") {
		t.Fatalf("leave must succeed exactly once")
	}
	if w.IsOwnerValid("alice") {
		t.Fatalf("expected alice to be gone")
	}
	if len(sink.EventsOfType(lifecycle.EventOwnerJoined)) != 1 || len(sink.EventsOfType(lifecycle.EventOwnerLeft)) != 1 {
		t.Fatalf("expected one join and one leave event, got %+v", sink.Events())
	}
}

func TestPopulationFeedsTheLocator(t *testing.T) {
	w := newTestWorld(t, emptyConfig())
	w.AddCreature(Creature{Position: mgl64.Vec2{100, 0}, MaxLife: 10})
	w.AddCreature(Creature{Position: mgl64.Vec2{10, 0}, MaxLife: 10, Friendly: true})
	w.AddCreature(Creature{Position: mgl64.Vec2{20, 0}, MaxLife: 10, Invulnerable: true})

	target, ok := homing.FindNearest(w, mgl64.Vec2{}, 500, homing.TargetMonsters)
	if !ok || target != (mgl64.Vec2{100, 0}) {
		t.Fatalf("expected the only hostile creature, got %v ok=%v", target, ok)
	}
}
