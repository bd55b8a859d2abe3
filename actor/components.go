package actor

import "github.com/go-gl/mathgl/mgl64"

// Velocity in world units per second.
// A body with Velocity and a BoundingSphere is dynamic.
type Velocity struct {
	Linear mgl64.Vec3
}

// Spin is a lateral acceleration bias added to the x/y velocity every tick
// until something clears it.
type Spin struct {
	Curve mgl64.Vec2
}

// IsZero reports whether the ball currently flies straight
func (s Spin) IsZero() bool {
	return s.Curve == mgl64.Vec2{}
}

// Goal tags a boundary wall whose contact replaces the plain bounce behavior
type Goal uint8

const (
	// GoalPlayer sits behind the paddle: the ball is relaunched from the origin
	GoalPlayer Goal = iota
	// GoalEnemy sits at the far end: the ball bounces and loses its curve
	GoalEnemy
)

func (g Goal) String() string {
	switch g {
	case GoalPlayer:
		return "player"
	case GoalEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// BallModifiers is the ball's launch configuration, used again when it is relaunched
type BallModifiers struct {
	BaseRadius   float64
	BaseVelocity mgl64.Vec3
}

// Health of a destructible obstacle
type Health struct {
	Max     int
	Current int
}

// Damage lowers the current health by amount, clamped to [0, Max],
// and reports whether the owner just died.
func (h *Health) Damage(amount int) bool {
	if h.Current <= 0 {
		return false
	}
	h.Current = min(max(h.Current-amount, 0), h.Max)
	return h.Current == 0
}

// Brick marks a destructible obstacle
type Brick struct{}
