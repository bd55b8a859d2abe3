// Package config holds the static settings of a game: playfield, ball, paddle,
// gesture recognition and simulation. Settings are read once when the scene is
// spawned and never reloaded.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/akmonengine/curveball/paddle"
	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

var (
	ErrInvalidRadius   = errors.New("ball radius must be positive")
	ErrInvalidExtents  = errors.New("half extents must be positive")
	ErrInvalidWindow   = errors.New("gesture window must be positive")
	ErrInvalidTickRate = errors.New("tick rate must be positive")
	ErrInvalidBricks   = errors.New("brick size and health must be positive")
)

type Config struct {
	Playfield  Playfield  `yaml:"playfield"`
	Ball       Ball       `yaml:"ball"`
	Paddle     Paddle     `yaml:"paddle"`
	Gesture    Gesture    `yaml:"gesture"`
	Bricks     Bricks     `yaml:"bricks"`
	Simulation Simulation `yaml:"simulation"`
}

type Playfield struct {
	HalfExtents   mgl64.Vec3 `yaml:"half_extents"`
	WallThickness float64    `yaml:"wall_thickness"`
	// Origin is where a ball is relaunched after passing the player goal
	Origin mgl64.Vec3 `yaml:"origin"`
}

type Ball struct {
	Radius       float64    `yaml:"radius"`
	BaseVelocity mgl64.Vec3 `yaml:"base_velocity"`
}

type Paddle struct {
	HalfExtents mgl64.Vec3 `yaml:"half_extents"`
	// ZOffset is the distance between the paddle and the player goal
	ZOffset     float64 `yaml:"z_offset"`
	Sensitivity float64 `yaml:"sensitivity"`
	Impact      Impact  `yaml:"impact"`
}

type Impact struct {
	NormalCurveScale float64 `yaml:"normal_curve_scale"`
	SuperCurveScale  float64 `yaml:"super_curve_scale"`
	NormalThreshold  float64 `yaml:"normal_threshold"`
	SuperThreshold   float64 `yaml:"super_threshold"`
	ZSpeedDelta      float64 `yaml:"z_speed_delta"`
}

type Gesture struct {
	// Window in seconds
	Window   float64  `yaml:"window"`
	Viewport Viewport `yaml:"viewport"`
}

// Viewport dimensions normalize gesture deltas; zero disables normalization
type Viewport struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type Bricks struct {
	Enabled bool       `yaml:"enabled"`
	Size    mgl64.Vec3 `yaml:"size"`
	Health  int        `yaml:"health"`
}

type Simulation struct {
	// TickRate is the number of fixed ticks per second
	TickRate     float64 `yaml:"tick_rate"`
	Workers      int     `yaml:"workers"`
	GridCellSize float64 `yaml:"grid_cell_size"`
	GridCells    int     `yaml:"grid_cells"`
}

// Default returns the settings of the stock game
func Default() Config {
	impact := paddle.Starting()

	return Config{
		Playfield: Playfield{
			HalfExtents:   mgl64.Vec3{10, 5, 20},
			WallThickness: 0.1,
		},
		Ball: Ball{
			Radius:       0.75,
			BaseVelocity: mgl64.Vec3{0, 0, 20},
		},
		Paddle: Paddle{
			HalfExtents: mgl64.Vec3{2, 1, 0.1},
			ZOffset:     4,
			Sensitivity: paddle.DefaultSensitivity,
			Impact: Impact{
				NormalCurveScale: impact.NormalCurveScale,
				SuperCurveScale:  impact.SuperCurveScale,
				NormalThreshold:  impact.NormalThreshold,
				SuperThreshold:   impact.SuperThreshold,
				ZSpeedDelta:      impact.ZSpeedDelta,
			},
		},
		Gesture: Gesture{
			Window:   paddle.DefaultWindow,
			Viewport: Viewport{Width: 1280, Height: 720},
		},
		Bricks: Bricks{
			Enabled: true,
			Size:    mgl64.Vec3{4, 2, 0.25},
			Health:  3,
		},
		Simulation: Simulation{
			TickRate:     64,
			Workers:      1,
			GridCellSize: 4,
			GridCells:    1024,
		},
	}
}

// Load decodes YAML settings on top of Default and validates the result.
// An empty document yields the defaults.
func Load(r io.Reader) (Config, error) {
	c := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	return Load(f)
}

// Write encodes the settings as YAML
func (c Config) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}

func (c Config) Validate() error {
	if !positive(c.Playfield.HalfExtents) || !(c.Playfield.WallThickness > 0) {
		return fmt.Errorf("playfield: %w", ErrInvalidExtents)
	}
	if !(c.Ball.Radius > 0) {
		return fmt.Errorf("ball: %w", ErrInvalidRadius)
	}
	if !positive(c.Paddle.HalfExtents) {
		return fmt.Errorf("paddle: %w", ErrInvalidExtents)
	}
	if err := c.ImpactModifiers().Validate(); err != nil {
		return fmt.Errorf("paddle impact: %w", err)
	}
	if !(c.Gesture.Window > 0) {
		return fmt.Errorf("gesture: %w", ErrInvalidWindow)
	}
	if !(c.Simulation.TickRate > 0) {
		return fmt.Errorf("simulation: %w", ErrInvalidTickRate)
	}
	if c.Bricks.Enabled && (!positive(c.Bricks.Size) || c.Bricks.Health <= 0) {
		return fmt.Errorf("bricks: %w", ErrInvalidBricks)
	}
	return nil
}

// ImpactModifiers converts the paddle impact settings
func (c Config) ImpactModifiers() paddle.ImpactModifiers {
	return paddle.ImpactModifiers{
		NormalCurveScale: c.Paddle.Impact.NormalCurveScale,
		SuperCurveScale:  c.Paddle.Impact.SuperCurveScale,
		NormalThreshold:  c.Paddle.Impact.NormalThreshold,
		SuperThreshold:   c.Paddle.Impact.SuperThreshold,
		ZSpeedDelta:      c.Paddle.Impact.ZSpeedDelta,
	}
}

func (c Config) Viewport() paddle.Viewport {
	return paddle.Viewport{Width: c.Gesture.Viewport.Width, Height: c.Gesture.Viewport.Height}
}

// TickDuration is the fixed step, in seconds
func (c Config) TickDuration() float64 {
	return 1 / c.Simulation.TickRate
}

func positive(v mgl64.Vec3) bool {
	return v.X() > 0 && v.Y() > 0 && v.Z() > 0
}
