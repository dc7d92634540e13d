package homing

import (
	"iter"

	"github.com/go-gl/mathgl/mgl64"
)

// Candidate is anything a projectile may steer toward.
type Candidate interface {
	Center() mgl64.Vec2
	// Targetable reports whether the candidate is currently eligible: for
	// creatures active, hostile, alive and damageable; for players active
	// and alive.
	Targetable() bool
}

// Population enumerates the live candidates of a world.
type Population interface {
	LiveCreatures() iter.Seq[Candidate]
	LivePlayers() iter.Seq[Candidate]
}

// FindNearest returns the center of the closest eligible candidate of the
// requested class strictly within radius of position. When class is
// TargetAll the nearest player only wins if it is strictly closer than the
// nearest creature.
func FindNearest(pop Population, position mgl64.Vec2, radius float64, class TargetClass) (mgl64.Vec2, bool) {
	if pop == nil || class == TargetNone {
		return mgl64.Vec2{}, false
	}

	var (
		best     mgl64.Vec2
		bestDist = radius
		found    bool
	)
	if class.includesCreatures() {
		if center, dist, ok := nearestIn(pop.LiveCreatures(), position, radius); ok {
			best, bestDist, found = center, dist, true
		}
	}
	if class.includesPlayers() {
		if center, dist, ok := nearestIn(pop.LivePlayers(), position, radius); ok && dist < bestDist {
			best, found = center, true
		}
	}
	return best, found
}

func nearestIn(seq iter.Seq[Candidate], position mgl64.Vec2, radius float64) (mgl64.Vec2, float64, bool) {
	if seq == nil {
		return mgl64.Vec2{}, 0, false
	}
	var (
		best     mgl64.Vec2
		bestDist = radius
		found    bool
	)
	for candidate := range seq {
		if candidate == nil || !candidate.Targetable() {
			continue
		}
		center := candidate.Center()
		dist := center.Sub(position).Len()
		if dist < bestDist {
			best, bestDist, found = center, dist, true
		}
	}
	return best, bestDist, found
}
