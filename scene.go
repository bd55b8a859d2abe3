package curveball

import (
	"fmt"
	"math"

	"github.com/akmonengine/curveball/actor"
	"github.com/akmonengine/curveball/config"
	"github.com/akmonengine/curveball/paddle"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// SpawnBall adds a dynamic sphere launched with velocity. The launch values are
// kept as BallModifiers for relaunches.
func (w *World) SpawnBall(position mgl64.Vec3, radius float64, velocity mgl64.Vec3) (actor.Entity, error) {
	sphere := actor.BoundingSphere{Radius: radius}
	if err := sphere.Validate(); err != nil {
		return actor.NoEntity, fmt.Errorf("spawn ball: %w", err)
	}

	e := w.Spawn()
	w.Transforms.Set(e, actor.NewTransform(position))
	w.Velocities.Set(e, actor.Velocity{Linear: velocity})
	w.Spins.Set(e, actor.Spin{})
	w.Spheres.Set(e, sphere)
	w.Balls.Set(e, actor.BallModifiers{BaseRadius: radius, BaseVelocity: velocity})

	return e, nil
}

// SpawnBox adds a static box obstacle
func (w *World) SpawnBox(position, halfExtents mgl64.Vec3) (actor.Entity, error) {
	box := actor.BoundingBox{HalfExtents: halfExtents}
	if err := box.Validate(); err != nil {
		return actor.NoEntity, fmt.Errorf("spawn box: %w", err)
	}

	e := w.Spawn()
	w.Transforms.Set(e, actor.NewTransform(position))
	w.Boxes.Set(e, box)

	return e, nil
}

// SpawnGoal adds a static box tagged with a goal
func (w *World) SpawnGoal(position, halfExtents mgl64.Vec3, goal actor.Goal) (actor.Entity, error) {
	e, err := w.SpawnBox(position, halfExtents)
	if err != nil {
		return actor.NoEntity, err
	}
	w.Goals.Set(e, goal)

	return e, nil
}

// SpawnPaddle adds a box moved by pointer input, which boosts and curves the balls it hits
func (w *World) SpawnPaddle(position, halfExtents mgl64.Vec3, modifiers paddle.ImpactModifiers, control paddle.Control) (actor.Entity, error) {
	if err := modifiers.Validate(); err != nil {
		return actor.NoEntity, fmt.Errorf("spawn paddle: %w", err)
	}

	e, err := w.SpawnBox(position, halfExtents)
	if err != nil {
		return actor.NoEntity, err
	}
	w.Gestures.Set(e, paddle.GestureRecord{})
	w.Impacts.Set(e, modifiers)
	w.Controls.Set(e, control)

	return e, nil
}

// SpawnBrick adds a box destroyed after health contacts
func (w *World) SpawnBrick(position, halfExtents mgl64.Vec3, health int) (actor.Entity, error) {
	if health <= 0 {
		return actor.NoEntity, fmt.Errorf("spawn brick: health %d: %w", health, config.ErrInvalidBricks)
	}

	e, err := w.SpawnBox(position, halfExtents)
	if err != nil {
		return actor.NoEntity, err
	}
	w.Bricks.Set(e, actor.Brick{})
	w.Healths.Set(e, actor.Health{Max: health, Current: health})

	return e, nil
}

// SpawnPlayfield closes the play volume with six walls laid just outside it:
// plain walls on x and y, the enemy goal at -z and the player goal at +z.
// Walls overlap on the edges so corners stay closed.
func (w *World) SpawnPlayfield(halfExtents mgl64.Vec3, thickness float64) ([]actor.Entity, error) {
	w.Playfield.HalfExtents = halfExtents

	walls := make([]actor.Entity, 0, 6)
	for axis := range 3 {
		half := halfExtents.Add(mgl64.Vec3{thickness, thickness, thickness})
		half[axis] = thickness

		for _, side := range []float64{-1, 1} {
			var position mgl64.Vec3
			position[axis] = side * (halfExtents[axis] + thickness)

			var e actor.Entity
			var err error
			switch {
			case axis == 2 && side < 0:
				e, err = w.SpawnGoal(position, half, actor.GoalEnemy)
			case axis == 2:
				e, err = w.SpawnGoal(position, half, actor.GoalPlayer)
			default:
				e, err = w.SpawnBox(position, half)
			}
			if err != nil {
				return walls, fmt.Errorf("spawn playfield: %w", err)
			}
			walls = append(walls, e)
		}
	}

	return walls, nil
}

// SpawnBrickWall fills the x/y section of the playfield with bricks, one
// brick depth in front of the enemy goal.
func (w *World) SpawnBrickWall(bricks config.Bricks) ([]actor.Entity, error) {
	half := bricks.Size.Mul(0.5)
	columns := int(math.Floor(2 * w.Playfield.HalfExtents.X() / bricks.Size.X()))
	rows := int(math.Floor(2 * w.Playfield.HalfExtents.Y() / bricks.Size.Y()))
	z := -w.Playfield.HalfExtents.Z() + bricks.Size.Z() + half.Z()

	// center the grid
	startX := -float64(columns)*half.X() + half.X()
	startY := -float64(rows)*half.Y() + half.Y()

	entities := make([]actor.Entity, 0, max(0, columns*rows))
	for row := 0; row < rows; row++ {
		for column := 0; column < columns; column++ {
			position := mgl64.Vec3{
				startX + float64(column)*bricks.Size.X(),
				startY + float64(row)*bricks.Size.Y(),
				z,
			}
			e, err := w.SpawnBrick(position, half, bricks.Health)
			if err != nil {
				return entities, err
			}
			entities = append(entities, e)
		}
	}

	return entities, nil
}

// Scene is a ready to play world built from a configuration
type Scene struct {
	World  *World
	Config config.Config

	Ball   actor.Entity
	Paddle actor.Entity
	Walls  []actor.Entity
	Bricks []actor.Entity
}

// NewScene validates cfg and spawns the playfield, the paddle in front of the
// player goal, the ball at the origin and, when enabled, the brick wall.
func NewScene(cfg config.Config, logger *zap.Logger) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	w := NewWorld().WithLogger(logger)
	w.Playfield.Origin = cfg.Playfield.Origin
	w.GestureWindow = cfg.Gesture.Window
	w.Viewport = cfg.Viewport()
	w.Workers = cfg.Simulation.Workers
	w.SpatialGrid = NewSpatialGrid(cfg.Simulation.GridCellSize, cfg.Simulation.GridCells)

	scene := &Scene{World: w, Config: cfg}

	var err error
	if scene.Walls, err = w.SpawnPlayfield(cfg.Playfield.HalfExtents, cfg.Playfield.WallThickness); err != nil {
		return nil, err
	}

	paddlePosition := mgl64.Vec3{0, 0, cfg.Playfield.HalfExtents.Z() - cfg.Paddle.ZOffset}
	control := paddle.Control{Sensitivity: cfg.Paddle.Sensitivity}
	if scene.Paddle, err = w.SpawnPaddle(paddlePosition, cfg.Paddle.HalfExtents, cfg.ImpactModifiers(), control); err != nil {
		return nil, err
	}

	if scene.Ball, err = w.SpawnBall(cfg.Playfield.Origin, cfg.Ball.Radius, cfg.Ball.BaseVelocity); err != nil {
		return nil, err
	}

	if cfg.Bricks.Enabled {
		if scene.Bricks, err = w.SpawnBrickWall(cfg.Bricks); err != nil {
			return nil, err
		}
	}

	logger.Info("scene spawned",
		zap.Stringer("ball", scene.Ball),
		zap.Stringer("paddle", scene.Paddle),
		zap.Int("walls", len(scene.Walls)),
		zap.Int("bricks", len(scene.Bricks)),
	)

	return scene, nil
}

// Run advances the scene by ticks fixed steps of the configured duration
func (s *Scene) Run(ticks int) {
	dt := s.Config.TickDuration()
	for range ticks {
		s.World.Step(dt)
	}
}
