// Package paddle turns how the paddle was swiped right after hitting the ball
// into spin for that ball.
//
// A GestureRecord moves through three states:
//
//	Idle     -> Armed     on a ball contact (start position and time snapshotted)
//	Armed    -> Resolved  once the window elapsed (delta = current - start)
//	Resolved -> Idle      when the delta is consumed to set the ball spin
//
// A new contact re-arms the record from any state; the last contact wins.
package paddle

import (
	"github.com/akmonengine/curveball/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultWindow is how long paddle motion is sampled after a contact, in seconds
const DefaultWindow = 0.3

type State uint8

const (
	StateIdle State = iota
	StateArmed
	StateResolved
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmed:
		return "armed"
	case StateResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// GestureRecord samples the paddle displacement over the window following a
// contact. The zero value is Idle.
type GestureRecord struct {
	StartPosition mgl64.Vec2 // paddle position at contact
	StartTime     float64    // simulation time at contact, in seconds
	Delta         mgl64.Vec2 // displacement over the window, once resolved
	Pending       bool
	// Ball is the entity whose contact armed the record; its spin receives the result
	Ball actor.Entity
}

func (g *GestureRecord) State() State {
	switch {
	case g.Pending:
		return StateArmed
	case g.Delta != (mgl64.Vec2{}):
		return StateResolved
	default:
		return StateIdle
	}
}

// Arm snapshots the paddle position and time of a ball contact, overwriting
// any window still running.
func (g *GestureRecord) Arm(ball actor.Entity, position mgl64.Vec2, now float64) {
	g.Ball = ball
	g.StartPosition = position
	g.StartTime = now
	g.Delta = mgl64.Vec2{}
	g.Pending = true
}

// Resolve closes the window once it elapsed, storing the displacement since
// the contact, normalized by the viewport. It reports whether the record
// moved to Resolved.
func (g *GestureRecord) Resolve(position mgl64.Vec2, now, window float64, viewport Viewport) bool {
	if !g.Pending || now-g.StartTime < window {
		return false
	}

	g.Delta = viewport.Normalize(position.Sub(g.StartPosition))
	g.Pending = false
	return true
}

// Consume hands out the resolved delta once and returns the record to Idle
func (g *GestureRecord) Consume() (mgl64.Vec2, bool) {
	if g.Pending || g.Delta == (mgl64.Vec2{}) {
		return mgl64.Vec2{}, false
	}

	delta := g.Delta
	g.Delta = mgl64.Vec2{}
	return delta, true
}

// Viewport turns a displacement into a fraction of the screen, so thresholds
// do not depend on resolution. A zero dimension leaves that axis unscaled.
type Viewport struct {
	Width  float64
	Height float64
}

func (v Viewport) Normalize(delta mgl64.Vec2) mgl64.Vec2 {
	if v.Width > 0 {
		delta[0] /= v.Width
	}
	if v.Height > 0 {
		delta[1] /= v.Height
	}
	return delta
}
