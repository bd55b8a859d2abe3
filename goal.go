package curveball

import (
	"github.com/akmonengine/curveball/actor"
	"github.com/akmonengine/curveball/contact"
	"github.com/akmonengine/curveball/message"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// goalHandler reacts to balls touching a goal wall, after the bounce ran.
// The enemy goal keeps the bounce and clears the spin; the player goal
// relaunches the ball from the playfield origin.
type goalHandler struct {
	reader *message.Reader[contact.Notification]
}

func newGoalHandler() *goalHandler {
	return &goalHandler{reader: message.NewReader[contact.Notification]()}
}

func (h *goalHandler) Update(w *World, _ float64) error {
	for _, n := range h.reader.Read(w.Contacts) {
		goal, ok := w.Goals.Get(n.Obstacle)
		if !ok {
			continue
		}

		switch goal {
		case actor.GoalEnemy:
			w.Spins.Update(n.Mover, func(s *actor.Spin) {
				s.Curve = mgl64.Vec2{}
			})
		case actor.GoalPlayer:
			h.relaunch(w, n.Mover)
		}
	}
	return nil
}

func (h *goalHandler) relaunch(w *World, ball actor.Entity) {
	modifiers, ok := w.Balls.Get(ball)
	if !ok {
		w.Logger.Debug("relaunch skipped, not a ball", zap.Stringer("ball", ball))
		return
	}
	if !w.Transforms.Has(ball) || !w.Velocities.Has(ball) {
		w.Logger.Debug("relaunch skipped, ball lost its components", zap.Stringer("ball", ball))
		return
	}

	origin := w.Playfield.Origin
	w.Transforms.Update(ball, func(t *actor.Transform) {
		t.Position = origin
	})
	w.Velocities.Update(ball, func(v *actor.Velocity) {
		v.Linear = modifiers.BaseVelocity
	})
	w.Spins.Update(ball, func(s *actor.Spin) {
		s.Curve = mgl64.Vec2{}
	})
	w.Spheres.Update(ball, func(s *actor.BoundingSphere) {
		s.Radius = modifiers.BaseRadius
	})

	w.Logger.Debug("ball relaunched", zap.Stringer("ball", ball))
	w.Events.emit(BallResetEvent{Ball: ball, Position: origin, Velocity: modifiers.BaseVelocity})
}
