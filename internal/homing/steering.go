package homing

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	// SmoothingFactor is the weight of the desired velocity in each blend.
	SmoothingFactor = 0.1
	// MaxSpeedFactor caps the blended velocity at this multiple of the homing speed.
	MaxSpeedFactor = 1.5
)

// Steer blends current toward a velocity of magnitude speed pointing from
// center to target. A target that coincides with center leaves the velocity
// untouched.
func Steer(current, target, center mgl64.Vec2, speed float64) mgl64.Vec2 {
	diff := target.Sub(center)
	length := diff.Len()
	if length == 0 {
		return current
	}

	desired := diff.Mul(speed / length)
	next := current.Mul(1 - SmoothingFactor).Add(desired.Mul(SmoothingFactor))

	limit := math.Abs(speed) * MaxSpeedFactor
	if magnitude := next.Len(); magnitude > limit {
		if limit == 0 {
			return mgl64.Vec2{}
		}
		next = next.Mul(limit / magnitude)
	}
	return next
}
