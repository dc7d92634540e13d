package effects

import "fmt"

// TrackingKey identifies one homing spawn. The Entity field lets the steering
// pass tell a live spawn apart from a reused slot.
type TrackingKey struct {
	Effect EffectID
	Entity EntityHandle
	Owner  OwnerID
}

func (k TrackingKey) String() string {
	return fmt.Sprintf("%d/%d/%s", k.Effect, k.Entity, k.Owner)
}

// tracker holds the homing spawns that still need steering.
type tracker struct {
	entries map[TrackingKey]EntityHandle
}

func newTracker() *tracker {
	return &tracker{entries: make(map[TrackingKey]EntityHandle)}
}

func (t *tracker) add(key TrackingKey) {
	t.entries[key] = key.Entity
}

func (t *tracker) has(key TrackingKey) bool {
	_, ok := t.entries[key]
	return ok
}

// prune drops entries whose entity is gone and reports how many were removed.
func (t *tracker) prune(live func(EntityHandle) bool) int {
	removed := 0
	for key, handle := range t.entries {
		if !live(handle) {
			delete(t.entries, key)
			removed++
		}
	}
	return removed
}

func (t *tracker) len() int {
	return len(t.entries)
}

func (t *tracker) clear() {
	clear(t.entries)
}
