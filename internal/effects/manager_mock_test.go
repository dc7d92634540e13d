package effects_test

import (
	"context"
	"fmt"
	"iter"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/mock/gomock"

	"boulder-rain/internal/effects"
	"boulder-rain/internal/effects/mocks"
	"boulder-rain/internal/homing"
	effectslog "boulder-rain/logging/effects"
	"boulder-rain/logging/sinks"
)

type creature struct{ center mgl64.Vec2 }

func (c creature) Center() mgl64.Vec2 { return c.center }
func (c creature) Targetable() bool   { return true }

func creatures(items ...homing.Candidate) iter.Seq[homing.Candidate] {
	return func(yield func(homing.Candidate) bool) {
		for _, item := range items {
			if !yield(item) {
				return
			}
		}
	}
}

func handles(items ...effects.EntityHandle) iter.Seq[effects.EntityHandle] {
	return func(yield func(effects.EntityHandle) bool) {
		for _, item := range items {
			if !yield(item) {
				return
			}
		}
	}
}

func expectEntitySettings(world *mocks.MockWorld) {
	world.EXPECT().SetEntityLifetime(gomock.Any(), gomock.Any()).AnyTimes()
	world.EXPECT().SetEntityCollision(gomock.Any(), true, 1).AnyTimes()
	world.EXPECT().SetEntityExtraUpdates(gomock.Any(), gomock.Any()).AnyTimes()
}

func TestTickSpawnsOncePerInterval(t *testing.T) {
	ctrl := gomock.NewController(t)
	world := mocks.NewMockWorld(ctrl)
	world.EXPECT().CurrentTick().Return(uint64(100)).AnyTimes()
	world.EXPECT().IsOwnerValid(effects.OwnerID("a")).Return(true).AnyTimes()
	world.EXPECT().OwnerPosition(effects.OwnerID("a")).Return(mgl64.Vec2{500, 400}, true).AnyTimes()
	world.EXPECT().IsEntityLive(gomock.Any()).Return(true).AnyTimes()
	expectEntitySettings(world)

	var spawned []effects.SpawnRequest
	world.EXPECT().SpawnEntity(gomock.Any()).DoAndReturn(func(req effects.SpawnRequest) (effects.EntityHandle, error) {
		spawned = append(spawned, req)
		return effects.EntityHandle(len(spawned)), nil
	}).Times(2)

	manager := effects.NewManager(effects.ManagerConfig{World: world, MaxEffects: 10})
	ctx := context.Background()
	if _, err := manager.Start(ctx, "a", effects.DefaultProjectileConfig()); err != nil {
		t.Fatalf("start: %v", err)
	}

	steps := []struct {
		tick   uint64
		spawns int
	}{
		{tick: 105, spawns: 0},
		{tick: 110, spawns: 1},
		{tick: 115, spawns: 1},
		{tick: 120, spawns: 2},
	}
	for _, step := range steps {
		manager.Tick(ctx, step.tick)
		if len(spawned) != step.spawns {
			t.Fatalf("tick %d: expected %d spawns, got %d", step.tick, step.spawns, len(spawned))
		}
	}

	snapshot := manager.Effects("a")
	if len(snapshot) != 1 || snapshot[0].StartTick != 100 || snapshot[0].LastSpawnTick != 120 {
		t.Fatalf("unexpected effect timing %+v", snapshot)
	}
	for _, req := range spawned {
		if req.Kind != 99 || req.Damage != 50 || req.Knockback != 5 {
			t.Fatalf("spawn request does not carry config: %+v", req)
		}
	}
}

func TestSpawnRejectionStillConsumesInterval(t *testing.T) {
	ctrl := gomock.NewController(t)
	world := mocks.NewMockWorld(ctrl)
	world.EXPECT().CurrentTick().Return(uint64(100)).AnyTimes()
	world.EXPECT().IsOwnerValid(gomock.Any()).Return(true).AnyTimes()
	world.EXPECT().OwnerPosition(gomock.Any()).Return(mgl64.Vec2{}, true).AnyTimes()
	world.EXPECT().IsEntityLive(gomock.Any()).Return(true).AnyTimes()
	world.EXPECT().SpawnEntity(gomock.Any()).
		Return(effects.EntityHandle(0), fmt.Errorf("entity budget full: %w", effects.ErrSpawnRejected)).
		Times(1)

	sink := sinks.NewMemorySink()
	manager := effects.NewManager(effects.ManagerConfig{World: world, Publisher: sink})
	ctx := context.Background()
	manager.Start(ctx, "a", effects.DefaultProjectileConfig())

	manager.Tick(ctx, 110)
	manager.Tick(ctx, 115)

	snapshot := manager.Effects("a")
	if len(snapshot) != 1 || snapshot[0].LastSpawnTick != 110 {
		t.Fatalf("expected failed spawn to advance the schedule, got %+v", snapshot)
	}
	if got := len(sink.EventsOfType(effectslog.EventSpawnRejected)); got != 1 {
		t.Fatalf("expected one spawn rejection event, got %d", got)
	}
}

func TestSteeringFaultIsIsolatedPerEntity(t *testing.T) {
	ctrl := gomock.NewController(t)
	world := mocks.NewMockWorld(ctrl)
	world.EXPECT().CurrentTick().Return(uint64(0)).AnyTimes()
	world.EXPECT().IsOwnerValid(gomock.Any()).Return(true).AnyTimes()
	world.EXPECT().OwnerPosition(gomock.Any()).Return(mgl64.Vec2{0, 600}, true).AnyTimes()
	world.EXPECT().IsEntityLive(gomock.Any()).Return(true).AnyTimes()
	expectEntitySettings(world)

	next := effects.EntityHandle(1)
	world.EXPECT().SpawnEntity(gomock.Any()).DoAndReturn(func(effects.SpawnRequest) (effects.EntityHandle, error) {
		h := next
		next++
		return h, nil
	}).Times(2)

	tags := make(map[effects.EntityHandle]effects.TrackingKey)
	world.EXPECT().TagEntity(gomock.Any(), gomock.Any()).Do(func(h effects.EntityHandle, key effects.TrackingKey) {
		tags[h] = key
	}).Times(2)
	world.EXPECT().EntityTag(gomock.Any()).DoAndReturn(func(h effects.EntityHandle) (effects.TrackingKey, bool) {
		key, ok := tags[h]
		return key, ok
	}).AnyTimes()
	world.EXPECT().LiveEntities().Return(handles(1, 2)).AnyTimes()
	world.EXPECT().LiveCreatures().DoAndReturn(func() iter.Seq[homing.Candidate] {
		return creatures(creature{center: mgl64.Vec2{100, 0}})
	}).AnyTimes()

	world.EXPECT().EntityPosition(effects.EntityHandle(1)).DoAndReturn(func(effects.EntityHandle) mgl64.Vec2 {
		panic("slot 1 corrupted")
	})
	world.EXPECT().EntityPosition(effects.EntityHandle(2)).Return(mgl64.Vec2{0, 0})
	world.EXPECT().EntityVelocity(effects.EntityHandle(2)).Return(mgl64.Vec2{0, 10})
	world.EXPECT().EntityCenter(effects.EntityHandle(2)).Return(mgl64.Vec2{1, 1})
	world.EXPECT().SetEntityVelocity(effects.EntityHandle(2), gomock.Any()).Times(1)

	sink := sinks.NewMemorySink()
	manager := effects.NewManager(effects.ManagerConfig{World: world, Publisher: sink})
	ctx := context.Background()

	cfg := effects.DefaultProjectileConfig()
	cfg.Homing = true
	manager.Start(ctx, "a", cfg)
	manager.Start(ctx, "b", cfg)

	manager.Tick(ctx, 10)

	faults := sink.EventsOfType(effectslog.EventSteeringFault)
	if len(faults) != 1 {
		t.Fatalf("expected one steering fault, got %d", len(faults))
	}
	payload := faults[0].Payload.(effectslog.SteeringFaultPayload)
	if payload.Entity != 1 {
		t.Fatalf("expected fault on entity 1, got %+v", payload)
	}
	if manager.TrackedCount() != 2 {
		t.Fatalf("expected both spawns tracked, got %d", manager.TrackedCount())
	}
}
