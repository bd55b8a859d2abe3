package curveball

import (
	"github.com/akmonengine/curveball/actor"
	"github.com/akmonengine/curveball/contact"
	"github.com/akmonengine/curveball/message"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// Resolution is what a mover receives from all of its contacts of one batch
type Resolution struct {
	Mover actor.Entity
	// Normal is the sum of the contact normals, not normalized
	Normal      mgl64.Vec3
	Penetration float64
}

// AggregateContacts groups a batch by mover, in order of first appearance.
// Normals are summed and the deepest penetration is kept.
func AggregateContacts(batch []contact.Notification) []Resolution {
	var resolutions []Resolution
	index := make(map[actor.Entity]int)

	for _, n := range batch {
		i, ok := index[n.Mover]
		if !ok {
			i = len(resolutions)
			index[n.Mover] = i
			resolutions = append(resolutions, Resolution{Mover: n.Mover})
		}
		resolutions[i].Normal = resolutions[i].Normal.Add(n.Normal)
		resolutions[i].Penetration = max(resolutions[i].Penetration, n.Penetration)
	}
	return resolutions
}

// bounceResolver pushes every mover out of what it hit and reflects its
// velocity about the combined normal.
type bounceResolver struct {
	reader *message.Reader[contact.Notification]
}

func newBounceResolver() *bounceResolver {
	return &bounceResolver{reader: message.NewReader[contact.Notification]()}
}

func (r *bounceResolver) Update(w *World, _ float64) error {
	for _, res := range AggregateContacts(r.reader.Read(w.Contacts)) {
		// opposite contacts cancel out, the mover keeps going
		if res.Normal == (mgl64.Vec3{}) {
			continue
		}
		normal := res.Normal.Normalize()

		if !w.Transforms.Has(res.Mover) || !w.Velocities.Has(res.Mover) {
			w.Logger.Debug("bounce skipped, mover lost its components", zap.Stringer("mover", res.Mover))
			continue
		}

		w.Transforms.Update(res.Mover, func(t *actor.Transform) {
			t.Position = t.Position.Add(normal.Mul(res.Penetration))
		})
		w.Velocities.Update(res.Mover, func(v *actor.Velocity) {
			v.Linear = contact.Reflect(v.Linear, normal)
		})
	}
	return nil
}
