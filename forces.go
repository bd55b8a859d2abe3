package curveball

import (
	"github.com/akmonengine/curveball/actor"
)

// applyCurve bends the lateral velocity of every spinning body. Spin never
// touches the forward (z) axis.
func applyCurve(w *World, dt float64) error {
	task(w.Workers, w.Spins.Entities(), func(e actor.Entity) {
		spin, ok := w.Spins.Get(e)
		if !ok || spin.IsZero() {
			return
		}
		w.Velocities.Update(e, func(v *actor.Velocity) {
			v.Linear[0] += spin.Curve.X() * dt
			v.Linear[1] += spin.Curve.Y() * dt
		})
	})
	return nil
}

// applyVelocity integrates position from velocity
func applyVelocity(w *World, dt float64) error {
	task(w.Workers, w.Velocities.Entities(), func(e actor.Entity) {
		velocity, ok := w.Velocities.Get(e)
		if !ok {
			return
		}
		w.Transforms.Update(e, func(t *actor.Transform) {
			t.Position = t.Position.Add(velocity.Linear.Mul(dt))
		})
	})
	return nil
}
