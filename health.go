package curveball

import (
	"github.com/akmonengine/curveball/actor"
	"github.com/akmonengine/curveball/contact"
	"github.com/akmonengine/curveball/message"
	"go.uber.org/zap"
)

// healthReactor damages bricks on contact. A brick reaching zero is despawned
// once the tick is over, so the other reactors of the batch still find it.
type healthReactor struct {
	reader *message.Reader[contact.Notification]
}

func newHealthReactor() *healthReactor {
	return &healthReactor{reader: message.NewReader[contact.Notification]()}
}

func (r *healthReactor) Update(w *World, _ float64) error {
	for _, n := range r.reader.Read(w.Contacts) {
		if !w.Bricks.Has(n.Obstacle) {
			continue
		}

		var damaged, died bool
		var remaining int
		w.Healths.Update(n.Obstacle, func(h *actor.Health) {
			if h.Current <= 0 {
				return
			}
			died = h.Damage(1)
			damaged = true
			remaining = h.Current
		})
		if !damaged {
			continue
		}

		w.Events.emit(BrickDamagedEvent{Brick: n.Obstacle, Ball: n.Mover, Remaining: remaining})
		if died {
			w.Logger.Debug("brick destroyed", zap.Stringer("brick", n.Obstacle), zap.Stringer("ball", n.Mover))
			w.Commands.Despawn(n.Obstacle)
			w.Events.emit(BrickDestroyedEvent{Brick: n.Obstacle, Ball: n.Mover})
		}
	}
	return nil
}
