package curveball

import (
	"sync"

	"github.com/akmonengine/curveball/actor"
	"github.com/akmonengine/curveball/contact"
	"github.com/akmonengine/curveball/message"
	"github.com/akmonengine/curveball/paddle"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

const DEFAULT_WORKERS = 1

// Playfield is the play volume, centered on the world origin
type Playfield struct {
	HalfExtents mgl64.Vec3
	// Origin is where a ball is relaunched after passing the player goal
	Origin mgl64.Vec3
}

type World struct {
	Arena *actor.Arena

	// Component stores, one per kind
	Transforms *actor.Store[actor.Transform]
	Velocities *actor.Store[actor.Velocity]
	Spins      *actor.Store[actor.Spin]
	Spheres    *actor.Store[actor.BoundingSphere]
	Boxes      *actor.Store[actor.BoundingBox]
	Goals      *actor.Store[actor.Goal]
	Balls      *actor.Store[actor.BallModifiers]
	Healths    *actor.Store[actor.Health]
	Bricks     *actor.Store[actor.Brick]
	Gestures   *actor.Store[paddle.GestureRecord]
	Impacts    *actor.Store[paddle.ImpactModifiers]
	Controls   *actor.Store[paddle.Control]

	Playfield Playfield
	// GestureWindow is how long paddle motion is sampled after a contact, in seconds
	GestureWindow float64
	Viewport      paddle.Viewport

	Workers     int
	SpatialGrid *SpatialGrid

	// Contacts carries the notifications of the detection stage to the reactors
	Contacts *message.Queue[contact.Notification]
	Events   *Events
	Schedule *Schedule
	Commands *Commands
	Logger   *zap.Logger

	elapsed     float64
	tick        uint64
	accumulator float64
	stores      []interface{ Remove(actor.Entity) }
}

// NewWorld creates an empty world with the default systems scheduled
func NewWorld() *World {
	w := &World{
		Arena:         actor.NewArena(),
		Transforms:    actor.NewStore[actor.Transform](),
		Velocities:    actor.NewStore[actor.Velocity](),
		Spins:         actor.NewStore[actor.Spin](),
		Spheres:       actor.NewStore[actor.BoundingSphere](),
		Boxes:         actor.NewStore[actor.BoundingBox](),
		Goals:         actor.NewStore[actor.Goal](),
		Balls:         actor.NewStore[actor.BallModifiers](),
		Healths:       actor.NewStore[actor.Health](),
		Bricks:        actor.NewStore[actor.Brick](),
		Gestures:      actor.NewStore[paddle.GestureRecord](),
		Impacts:       actor.NewStore[paddle.ImpactModifiers](),
		Controls:      actor.NewStore[paddle.Control](),
		GestureWindow: paddle.DefaultWindow,
		Workers:       DEFAULT_WORKERS,
		SpatialGrid:   NewSpatialGrid(4, 1024),
		Contacts:      message.NewQueue[contact.Notification](),
		Events:        NewEvents(),
		Schedule:      NewSchedule(),
		Commands:      &Commands{},
		Logger:        zap.NewNop(),
	}
	w.stores = []interface{ Remove(actor.Entity) }{
		w.Transforms, w.Velocities, w.Spins, w.Spheres, w.Boxes, w.Goals,
		w.Balls, w.Healths, w.Bricks, w.Gestures, w.Impacts, w.Controls,
	}

	w.Schedule.Add(SetComputeForces, "apply_curve", SystemFunc(applyCurve))
	w.Schedule.Add(SetApplyForces, "apply_velocity", SystemFunc(applyVelocity))
	w.Schedule.Add(SetDetectCollisions, "detect_collisions", SystemFunc(detectCollisions))
	w.Schedule.Add(SetResolveCollisions, "bounce", newBounceResolver())
	w.Schedule.Add(SetResolveCollisions, "paddle_impact", newImpactReactor())
	w.Schedule.Add(SetResolveCollisions, "paddle_gesture_arm", newGestureArmer())
	w.Schedule.Add(SetResolveCollisions, "brick_health", newHealthReactor())
	w.Schedule.Add(SetReactToContacts, "goal", newGoalHandler())
	w.Schedule.Add(SetResolveGestures, "paddle_gesture_spin", SystemFunc(resolveGestures))

	return w
}

// Step advances the simulation by one tick of dt seconds
func (w *World) Step(dt float64) {
	w.Workers = max(DEFAULT_WORKERS, w.Workers)
	w.elapsed += dt
	w.tick++

	w.Schedule.run(w, dt)

	for _, e := range w.Commands.drain() {
		w.Despawn(e)
	}
	w.Events.flush()
}

// Advance accumulates frame time and runs as many fixed ticks of tickDt as
// fit, carrying the remainder to the next call. It returns the number of ticks run.
func (w *World) Advance(frame, tickDt float64) int {
	if tickDt <= 0 {
		return 0
	}

	w.accumulator += frame
	steps := 0
	for w.accumulator >= tickDt {
		w.Step(tickDt)
		w.accumulator -= tickDt
		steps++
	}
	return steps
}

// Elapsed is the simulation time, in seconds, including the tick in progress
func (w *World) Elapsed() float64 {
	return w.elapsed
}

// Tick counts the steps run so far
func (w *World) Tick() uint64 {
	return w.tick
}

// Spawn allocates an entity without components
func (w *World) Spawn() actor.Entity {
	return w.Arena.Spawn()
}

// Despawn removes e and all its components immediately. Reactors running
// inside a tick must go through Commands instead.
func (w *World) Despawn(e actor.Entity) {
	if !w.Arena.Despawn(e) {
		return
	}
	for _, store := range w.stores {
		store.Remove(e)
	}
	w.Events.forget(e)
}

// MovePaddle applies pointer motion to a paddle, keeping it inside the playfield.
// It returns false when e is not a paddle.
func (w *World) MovePaddle(e actor.Entity, motion mgl64.Vec2) bool {
	control, ok := w.Controls.Get(e)
	if !ok {
		return false
	}
	box, ok := w.Boxes.Get(e)
	if !ok {
		return false
	}

	limit := mgl64.Vec2{
		w.Playfield.HalfExtents.X() - box.HalfExtents.X(),
		w.Playfield.HalfExtents.Y() - box.HalfExtents.Y(),
	}
	return w.Transforms.Update(e, func(t *actor.Transform) {
		t.Position = control.Move(t.Position, motion, limit)
	})
}

// Commands defers structural changes requested while a tick runs; they are
// applied once every system of the tick has finished.
type Commands struct {
	mu      sync.Mutex
	despawn []actor.Entity
}

func (c *Commands) Despawn(e actor.Entity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.despawn = append(c.despawn, e)
}

func (c *Commands) drain() []actor.Entity {
	c.mu.Lock()
	defer c.mu.Unlock()
	entities := c.despawn
	c.despawn = nil
	return entities
}

// WithLogger sets the logger used by the systems
func (w *World) WithLogger(logger *zap.Logger) *World {
	w.Logger = logger
	return w
}
