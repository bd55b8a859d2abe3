package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/akmonengine/curveball"
	"github.com/akmonengine/curveball/config"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	configPath := flag.String("config", "", "YAML settings file, defaults when empty")
	ticks := flag.Int("ticks", 640, "number of fixed ticks to simulate")
	debug := flag.Bool("debug", false, "development logging at debug level")
	dump := flag.Bool("dump-config", false, "print the effective settings and exit")
	flag.Parse()

	logger, err := newLogger(*debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := config.Default()
	if *configPath != "" {
		if cfg, err = config.LoadFile(*configPath); err != nil {
			logger.Fatal("load config", zap.Error(err))
		}
	}
	if *dump {
		if err := cfg.Write(os.Stdout); err != nil {
			logger.Fatal("write config", zap.Error(err))
		}
		return
	}

	scene, err := curveball.NewScene(cfg, logger)
	if err != nil {
		logger.Fatal("new scene", zap.Error(err))
	}
	subscribe(scene.World, logger)

	dt := cfg.TickDuration()
	for range *ticks {
		follow(scene)
		scene.World.Step(dt)
	}

	transform, _ := scene.World.Transforms.Get(scene.Ball)
	velocity, _ := scene.World.Velocities.Get(scene.Ball)
	spin, _ := scene.World.Spins.Get(scene.Ball)
	logger.Info("simulation done",
		zap.Uint64("ticks", scene.World.Tick()),
		zap.Float64("elapsed", scene.World.Elapsed()),
		zap.Any("position", transform.Position),
		zap.Any("velocity", velocity.Linear),
		zap.Any("spin", spin.Curve),
		zap.Int("bricks", scene.World.Bricks.Len()),
	)
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}

	zapConfig := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapcore.InfoLevel),
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
		DisableCaller:    true,
	}
	return zapConfig.Build()
}

func subscribe(world *curveball.World, logger *zap.Logger) {
	world.Events.Subscribe(curveball.BALL_RESET, func(event curveball.Event) {
		e := event.(curveball.BallResetEvent)
		logger.Info("player goal", zap.Stringer("ball", e.Ball))
	})
	world.Events.Subscribe(curveball.SPIN_APPLIED, func(event curveball.Event) {
		e := event.(curveball.SpinAppliedEvent)
		logger.Info("spin applied", zap.Stringer("ball", e.Ball), zap.Float64("x", e.Curve.X()), zap.Float64("y", e.Curve.Y()))
	})
	world.Events.Subscribe(curveball.BRICK_DESTROYED, func(event curveball.Event) {
		e := event.(curveball.BrickDestroyedEvent)
		logger.Info("brick destroyed", zap.Stringer("brick", e.Brick))
	})
}

// follow steers the paddle towards the ball, standing in for pointer input
func follow(scene *curveball.Scene) {
	ball, ok := scene.World.Transforms.Get(scene.Ball)
	if !ok {
		return
	}
	pad, ok := scene.World.Transforms.Get(scene.Paddle)
	if !ok {
		return
	}

	sensitivity := scene.Config.Paddle.Sensitivity
	offset := ball.XY().Sub(pad.XY())
	// pointer y grows downwards
	motion := mgl64.Vec2{offset.X() / sensitivity, -offset.Y() / sensitivity}
	scene.World.MovePaddle(scene.Paddle, motion)
}
