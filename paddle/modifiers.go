package paddle

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var ErrInvalidThresholds = errors.New("normal curve threshold must be positive and below the super threshold")

// ImpactModifiers tune what a paddle does to the ball it hits
type ImpactModifiers struct {
	NormalCurveScale float64
	SuperCurveScale  float64
	// NormalThreshold and SuperThreshold bound the absolute gesture delta, per axis
	NormalThreshold float64
	SuperThreshold  float64
	// ZSpeedDelta is added to the forward speed on every contact
	ZSpeedDelta float64
}

// Starting returns the modifiers of a freshly spawned paddle
func Starting() ImpactModifiers {
	return ImpactModifiers{
		NormalCurveScale: 6.0,
		SuperCurveScale:  18.0,
		NormalThreshold:  0.002,
		SuperThreshold:   0.006,
		ZSpeedDelta:      1.0,
	}
}

func (m ImpactModifiers) Validate() error {
	if !(m.NormalThreshold > 0 && m.NormalThreshold < m.SuperThreshold) {
		return fmt.Errorf("thresholds %v/%v: %w", m.NormalThreshold, m.SuperThreshold, ErrInvalidThresholds)
	}
	return nil
}

// Curve converts a resolved gesture into spin. Each axis is classified on its
// own; the spin opposes the swipe, so swiping right curves the ball left.
func (m ImpactModifiers) Curve(delta mgl64.Vec2) mgl64.Vec2 {
	return mgl64.Vec2{m.axisCurve(delta.X()), m.axisCurve(delta.Y())}
}

func (m ImpactModifiers) axisCurve(d float64) float64 {
	switch magnitude := math.Abs(d); {
	case magnitude >= m.SuperThreshold:
		return -math.Copysign(m.SuperCurveScale, d)
	case magnitude >= m.NormalThreshold:
		return -math.Copysign(m.NormalCurveScale, d)
	default:
		return 0
	}
}

// Boost speeds the ball up along the direction it already travels on z
func (m ImpactModifiers) Boost(velocity mgl64.Vec3) mgl64.Vec3 {
	velocity[2] += math.Copysign(1, velocity[2]) * m.ZSpeedDelta
	return velocity
}
