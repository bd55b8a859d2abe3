package curveball

import (
	"math"
	"math/rand"
	"testing"

	"github.com/akmonengine/curveball/actor"
	"github.com/akmonengine/curveball/contact"
	"github.com/akmonengine/curveball/message"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// detect runs a single detection pass and returns its batch
func detect(t *testing.T, w *World) []contact.Notification {
	t.Helper()
	reader := message.NewReader[contact.Notification]()
	reader.Read(w.Contacts)
	require.NoError(t, detectCollisions(w, testDt))
	return reader.Read(w.Contacts)
}

func TestDetectOnlySphereBoxPairs(t *testing.T) {
	w := NewWorld()
	ball, err := w.SpawnBall(mgl64.Vec3{0, 0, 0}, 1, mgl64.Vec3{})
	require.NoError(t, err)
	// overlapping sphere, ignored
	_, err = w.SpawnBall(mgl64.Vec3{0.5, 0, 0}, 1, mgl64.Vec3{})
	require.NoError(t, err)
	box, err := w.SpawnBox(mgl64.Vec3{1.5, 0, 0}, mgl64.Vec3{1, 1, 1})
	require.NoError(t, err)
	// overlaps the first box but no sphere
	_, err = w.SpawnBox(mgl64.Vec3{3, 0, 0}, mgl64.Vec3{1, 1, 1})
	require.NoError(t, err)

	batch := detect(t, w)

	var pairs [][2]actor.Entity
	for _, n := range batch {
		pairs = append(pairs, [2]actor.Entity{n.Mover, n.Obstacle})
	}
	assert.Contains(t, pairs, [2]actor.Entity{ball, box})
	assert.Len(t, batch, 2, "one per sphere touching the box")
	for _, n := range batch {
		assert.Equal(t, box, n.Obstacle)
	}
}

func TestDetectNotificationContent(t *testing.T) {
	w := NewWorld()
	ball, err := w.SpawnBall(mgl64.Vec3{0, 0, -2.9}, 0.75, mgl64.Vec3{0, 0, -1})
	require.NoError(t, err)
	wall, err := w.SpawnBox(mgl64.Vec3{0, 0, -3.1}, mgl64.Vec3{5, 5, 0.1})
	require.NoError(t, err)

	batch := detect(t, w)

	require.Len(t, batch, 1)
	n := batch[0]
	assert.Equal(t, ball, n.Mover)
	assert.Equal(t, wall, n.Obstacle)
	assert.Equal(t, mgl64.Vec3{0, 0, 1}, n.Normal)
	assert.InDelta(t, -3.0, n.Point.Z(), 1e-12)
	assert.InDelta(t, 0.65, n.Penetration, 1e-9)
}

func TestDetectStableBoxOrder(t *testing.T) {
	w := NewWorld()
	w.Workers = 4
	ball, err := w.SpawnBall(mgl64.Vec3{0, 0, 0}, 1, mgl64.Vec3{})
	require.NoError(t, err)

	var boxes []actor.Entity
	for i := range 8 {
		position := mgl64.Vec3{float64(i%2)*1.5 - 0.75, float64(i/2%2)*1.5 - 0.75, float64(i/4)*1.5 - 0.75}
		box, err := w.SpawnBox(position, mgl64.Vec3{0.5, 0.5, 0.5})
		require.NoError(t, err)
		boxes = append(boxes, box)
	}

	for range 5 {
		batch := detect(t, w)
		require.Len(t, batch, len(boxes))
		for i, n := range batch {
			assert.Equal(t, ball, n.Mover)
			assert.Equal(t, boxes[i], n.Obstacle)
		}
	}
}

func TestDetectIgnoresMovingBoxes(t *testing.T) {
	w := NewWorld()
	_, err := w.SpawnBall(mgl64.Vec3{0, 0, 0}, 1, mgl64.Vec3{})
	require.NoError(t, err)
	box, err := w.SpawnBox(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{1, 1, 1})
	require.NoError(t, err)
	w.Velocities.Set(box, actor.Velocity{})

	assert.Empty(t, detect(t, w))
}

// Grid detection must agree with testing every pair.
func TestDetectMatchesBruteForce(t *testing.T) {
	tests := []struct {
		name string
		grid func() *SpatialGrid
	}{
		{"sparse grid", func() *SpatialGrid { return NewSpatialGrid(2, 64) }},
		// every box lands in the one bucket
		{"single bucket", func() *SpatialGrid { return NewSpatialGrid(1, 1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := randomScene(t, rand.New(rand.NewSource(42)))
			w.SpatialGrid = tt.grid()

			var expected []contact.Notification
			for _, s := range w.Spheres.Entities() {
				sphere, _ := w.Spheres.Get(s)
				st, _ := w.Transforms.Get(s)
				for _, b := range w.Boxes.Entities() {
					box, _ := w.Boxes.Get(b)
					bt, _ := w.Transforms.Get(b)
					if n, ok := contact.Compute(s, b, st.Position, sphere.Radius, bt.Position, box.HalfExtents); ok {
						expected = append(expected, n)
					}
				}
			}

			assert.Equal(t, expected, detect(t, w))
		})
	}
}

func randomScene(t *testing.T, rng *rand.Rand) *World {
	t.Helper()
	w := NewWorld()
	w.Workers = 3

	// one pair is certain to touch
	_, err := w.SpawnBall(mgl64.Vec3{}, 1, mgl64.Vec3{})
	require.NoError(t, err)
	_, err = w.SpawnBox(mgl64.Vec3{}, mgl64.Vec3{1, 1, 1})
	require.NoError(t, err)

	randomVec := func(scale float64) mgl64.Vec3 {
		return mgl64.Vec3{(rng.Float64()*2 - 1) * scale, (rng.Float64()*2 - 1) * scale, (rng.Float64()*2 - 1) * scale}
	}
	for range 30 {
		_, err := w.SpawnBall(randomVec(10), 0.2+rng.Float64(), mgl64.Vec3{})
		require.NoError(t, err)
	}
	for range 40 {
		half := randomVec(2)
		half = mgl64.Vec3{0.1 + math.Abs(half.X()), 0.1 + math.Abs(half.Y()), 0.1 + math.Abs(half.Z())}
		_, err := w.SpawnBox(randomVec(10), half)
		require.NoError(t, err)
	}
	return w
}

func BenchmarkDetectCollisions(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	w := NewWorld()
	w.Workers = 4
	for range 200 {
		position := mgl64.Vec3{rng.Float64()*40 - 20, rng.Float64()*40 - 20, rng.Float64()*40 - 20}
		_, _ = w.SpawnBall(position, 0.5, mgl64.Vec3{})
	}
	for range 500 {
		position := mgl64.Vec3{rng.Float64()*40 - 20, rng.Float64()*40 - 20, rng.Float64()*40 - 20}
		_, _ = w.SpawnBox(position, mgl64.Vec3{1, 1, 1})
	}

	b.ResetTimer()
	for range b.N {
		_ = detectCollisions(w, 0)
	}
}
