package curveball

import (
	"github.com/akmonengine/curveball/actor"
	"github.com/akmonengine/curveball/contact"
	"github.com/akmonengine/curveball/message"
	"github.com/akmonengine/curveball/paddle"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// impactReactor speeds up the forward motion of a ball hitting a paddle.
// It only touches velocity.z and runs alongside the bounce; for a paddle
// facing z both orders give the same result.
type impactReactor struct {
	reader *message.Reader[contact.Notification]
}

func newImpactReactor() *impactReactor {
	return &impactReactor{reader: message.NewReader[contact.Notification]()}
}

func (r *impactReactor) Update(w *World, _ float64) error {
	for _, n := range r.reader.Read(w.Contacts) {
		modifiers, ok := w.Impacts.Get(n.Obstacle)
		if !ok {
			continue
		}
		if !w.Velocities.Update(n.Mover, func(v *actor.Velocity) {
			v.Linear = modifiers.Boost(v.Linear)
		}) {
			w.Logger.Debug("impact skipped, ball has no velocity", zap.Stringer("ball", n.Mover))
		}
	}
	return nil
}

// gestureArmer starts the gesture window of a paddle each time a ball hits it
type gestureArmer struct {
	reader *message.Reader[contact.Notification]
}

func newGestureArmer() *gestureArmer {
	return &gestureArmer{reader: message.NewReader[contact.Notification]()}
}

func (r *gestureArmer) Update(w *World, _ float64) error {
	now := w.Elapsed()
	for _, n := range r.reader.Read(w.Contacts) {
		if !w.Gestures.Has(n.Obstacle) {
			continue
		}
		transform, ok := w.Transforms.Get(n.Obstacle)
		if !ok {
			w.Logger.Debug("gesture skipped, paddle has no transform", zap.Stringer("paddle", n.Obstacle))
			continue
		}
		w.Gestures.Update(n.Obstacle, func(g *paddle.GestureRecord) {
			g.Arm(n.Mover, transform.XY(), now)
		})
	}
	return nil
}

// resolveGestures closes every elapsed gesture window and turns the resolved
// delta into spin for the ball that armed it.
func resolveGestures(w *World, _ float64) error {
	now := w.Elapsed()
	for _, e := range w.Gestures.Entities() {
		transform, ok := w.Transforms.Get(e)
		if !ok {
			continue
		}

		var ball actor.Entity
		var delta mgl64.Vec2
		var consumed bool
		w.Gestures.Update(e, func(g *paddle.GestureRecord) {
			if g.Resolve(transform.XY(), now, w.GestureWindow, w.Viewport) {
				w.Logger.Debug("gesture resolved",
					zap.Stringer("paddle", e),
					zap.Float64("dx", g.Delta.X()),
					zap.Float64("dy", g.Delta.Y()),
				)
			}
			ball = g.Ball
			delta, consumed = g.Consume()
		})
		if !consumed {
			continue
		}

		modifiers, ok := w.Impacts.Get(e)
		if !ok {
			continue
		}
		curve := modifiers.Curve(delta)
		if !w.Spins.Update(ball, func(s *actor.Spin) {
			s.Curve = curve
		}) {
			w.Logger.Debug("spin skipped, ball is gone", zap.Stringer("ball", ball))
			continue
		}

		w.Events.emit(SpinAppliedEvent{Paddle: e, Ball: ball, Curve: curve})
	}
	return nil
}
