package paddle

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// DefaultSensitivity converts mouse motion units into world units
const DefaultSensitivity = 0.025

// Control configures how pointer motion drives a paddle
type Control struct {
	Sensitivity float64
}

// Move applies pointer motion to a paddle position and keeps the paddle inside
// limit (the playfield half extents minus the paddle half extents).
// Screen y grows downwards, so it is inverted.
func (c Control) Move(position mgl64.Vec3, motion mgl64.Vec2, limit mgl64.Vec2) mgl64.Vec3 {
	step := motion.Mul(c.Sensitivity)

	position[0] = clamp(position[0]+step.X(), -limit.X(), limit.X())
	position[1] = clamp(position[1]-step.Y(), -limit.Y(), limit.Y())
	return position
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
