// Package contact holds the sphere versus axis-aligned box predicates used by
// the detection stage, and the Notification record it emits.
package contact

import (
	"math"

	"github.com/akmonengine/curveball/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// Notification reports one overlapping (sphere, box) pair for the current tick.
// Reactors only read it; its field layout is consumed outside this module.
type Notification struct {
	Mover    actor.Entity // the dynamic sphere
	Obstacle actor.Entity // the static box
	// Normal is axis-aligned, unit length, and points from the box towards the sphere
	Normal      mgl64.Vec3
	Point       mgl64.Vec3
	Penetration float64
}

// ClosestPoint clamps point into the box, axis by axis
func ClosestPoint(point, boxCenter, boxHalf mgl64.Vec3) mgl64.Vec3 {
	var closest mgl64.Vec3
	for i := range 3 {
		closest[i] = math.Max(boxCenter[i]-boxHalf[i], math.Min(point[i], boxCenter[i]+boxHalf[i]))
	}
	return closest
}

// Intersects reports whether the sphere touches or overlaps the box
func Intersects(sphereCenter mgl64.Vec3, radius float64, boxCenter, boxHalf mgl64.Vec3) bool {
	d := sphereCenter.Sub(ClosestPoint(sphereCenter, boxCenter, boxHalf))
	return d.Dot(d) <= radius*radius
}

// Normal returns the separating axis of an overlap, signed to point from the
// box towards the sphere. With the center outside the box it is the axis
// where the center is furthest from the closest point, so a sphere resting
// on a face gets that face's normal. With the center inside it is the axis
// with the smallest overlap. Ties resolve in x, y, z order.
// A center sitting on the box center along the chosen axis yields the zero vector.
func Normal(sphereCenter mgl64.Vec3, radius float64, boxCenter, boxHalf mgl64.Vec3) mgl64.Vec3 {
	delta := sphereCenter.Sub(boxCenter)
	outside := sphereCenter.Sub(ClosestPoint(sphereCenter, boxCenter, boxHalf))

	axis := -1
	if outside != (mgl64.Vec3{}) {
		best := 0.0
		for i := range 3 {
			if d := math.Abs(outside[i]); d > best {
				best = d
				axis = i
			}
		}
	} else {
		best := math.Inf(1)
		for i := range 3 {
			overlap := boxHalf[i] + radius - math.Abs(delta[i])
			if overlap >= 0 && overlap < best {
				best = overlap
				axis = i
			}
		}
	}

	var normal mgl64.Vec3
	if axis < 0 || delta[axis] == 0 {
		return normal
	}
	normal[axis] = math.Copysign(1, delta[axis])
	return normal
}

// Penetration is how deep the sphere sinks past the closest box point, never negative
func Penetration(sphereCenter mgl64.Vec3, radius float64, boxCenter, boxHalf mgl64.Vec3) float64 {
	distance := sphereCenter.Sub(ClosestPoint(sphereCenter, boxCenter, boxHalf)).Len()
	return math.Max(0, radius-distance)
}

// Reflect mirrors v about the unit normal n: v - 2(v·n)n
func Reflect(v, n mgl64.Vec3) mgl64.Vec3 {
	return v.Sub(n.Mul(2 * v.Dot(n)))
}

// Compute runs the narrow phase for one pair and builds its notification
func Compute(mover, obstacle actor.Entity, sphereCenter mgl64.Vec3, radius float64, boxCenter, boxHalf mgl64.Vec3) (Notification, bool) {
	if !Intersects(sphereCenter, radius, boxCenter, boxHalf) {
		return Notification{}, false
	}

	return Notification{
		Mover:       mover,
		Obstacle:    obstacle,
		Normal:      Normal(sphereCenter, radius, boxCenter, boxHalf),
		Point:       ClosestPoint(sphereCenter, boxCenter, boxHalf),
		Penetration: Penetration(sphereCenter, radius, boxCenter, boxHalf),
	}, true
}
