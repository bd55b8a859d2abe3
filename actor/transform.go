package actor

import "github.com/go-gl/mathgl/mgl64"

// Transform places an entity in the world. Bodies never rotate, so only the
// position is tracked; shapes are centered on it.
type Transform struct {
	Position mgl64.Vec3
}

// NewTransform creates a transform at the given position
func NewTransform(position mgl64.Vec3) Transform {
	return Transform{Position: position}
}

// XY projects the position on the paddle plane
func (t Transform) XY() mgl64.Vec2 {
	return mgl64.Vec2{t.Position.X(), t.Position.Y()}
}
