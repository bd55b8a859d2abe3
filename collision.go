package curveball

import (
	"github.com/akmonengine/curveball/actor"
	"github.com/akmonengine/curveball/contact"
	"github.com/go-gl/mathgl/mgl64"
)

// mover is a dynamic sphere taking part in detection
type mover struct {
	entity   actor.Entity
	position mgl64.Vec3
	sphere   actor.BoundingSphere
}

// obstacle is a static box taking part in detection
type obstacle struct {
	entity   actor.Entity
	position mgl64.Vec3
	box      actor.BoundingBox
}

// detectCollisions emits one notification per overlapping (sphere, box) pair.
// Boxes go through the spatial grid, each sphere queries the cells it covers,
// and the candidates are tested in entity order, so a sphere always sees its
// boxes in the same order.
func detectCollisions(w *World, _ float64) error {
	w.Contacts.Update()

	movers := collectMovers(w)
	obstacles := collectObstacles(w)

	notifications := make([][]contact.Notification, len(movers))
	if len(movers) > 0 && len(obstacles) > 0 {
		broadPhase(w.SpatialGrid, obstacles)

		indices := make([]int, len(movers))
		for i := range indices {
			indices[i] = i
		}
		task(w.Workers, indices, func(i int) {
			notifications[i] = narrowPhase(w.SpatialGrid, movers[i], obstacles)
		})
	}

	var batch []contact.Notification
	for _, n := range notifications {
		batch = append(batch, n...)
	}
	w.Contacts.WriteBatch(batch)
	w.Events.recordContacts(batch)

	return nil
}

// broadPhase fills the grid with the AABB of every obstacle
func broadPhase(spatialGrid *SpatialGrid, obstacles []obstacle) {
	spatialGrid.Clear()
	for i, o := range obstacles {
		spatialGrid.Insert(i, o.box.ComputeAABB(o.position))
	}
	spatialGrid.SortCells()
}

// narrowPhase tests one mover against the obstacles sharing its cells
func narrowPhase(spatialGrid *SpatialGrid, m mover, obstacles []obstacle) []contact.Notification {
	bounds := m.sphere.ComputeAABB(m.position)
	seen := make([]bool, len(obstacles))

	var notifications []contact.Notification
	for _, i := range spatialGrid.Query(bounds, seen) {
		o := obstacles[i]
		// hash collisions bring in far away boxes
		if !bounds.Overlaps(o.box.ComputeAABB(o.position)) {
			continue
		}
		if n, ok := contact.Compute(m.entity, o.entity, m.position, m.sphere.Radius, o.position, o.box.HalfExtents); ok {
			notifications = append(notifications, n)
		}
	}
	return notifications
}

func collectMovers(w *World) []mover {
	var movers []mover
	for _, e := range w.Spheres.Entities() {
		if !w.Velocities.Has(e) {
			continue
		}
		sphere, ok := w.Spheres.Get(e)
		if !ok {
			continue
		}
		transform, ok := w.Transforms.Get(e)
		if !ok {
			continue
		}
		movers = append(movers, mover{entity: e, position: transform.Position, sphere: sphere})
	}
	return movers
}

func collectObstacles(w *World) []obstacle {
	var obstacles []obstacle
	for _, e := range w.Boxes.Entities() {
		if w.Velocities.Has(e) {
			continue
		}
		box, ok := w.Boxes.Get(e)
		if !ok {
			continue
		}
		transform, ok := w.Transforms.Get(e)
		if !ok {
			continue
		}
		obstacles = append(obstacles, obstacle{entity: e, position: transform.Position, box: box})
	}
	return obstacles
}
