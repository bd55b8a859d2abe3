package curveball

import (
	"testing"

	"github.com/akmonengine/curveball/actor"
	"github.com/akmonengine/curveball/contact"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateContacts(t *testing.T) {
	a, b := actor.Entity(1), actor.Entity(2)
	batch := []contact.Notification{
		{Mover: b, Obstacle: 10, Normal: mgl64.Vec3{0, 0, 1}, Penetration: 0.1},
		{Mover: a, Obstacle: 11, Normal: mgl64.Vec3{1, 0, 0}, Penetration: 0.3},
		{Mover: b, Obstacle: 12, Normal: mgl64.Vec3{1, 0, 0}, Penetration: 0.2},
	}

	resolutions := AggregateContacts(batch)

	require.Len(t, resolutions, 2)
	assert.Equal(t, Resolution{Mover: b, Normal: mgl64.Vec3{1, 0, 1}, Penetration: 0.2}, resolutions[0])
	assert.Equal(t, Resolution{Mover: a, Normal: mgl64.Vec3{1, 0, 0}, Penetration: 0.3}, resolutions[1])
	assert.Empty(t, AggregateContacts(nil))
}

// runBounce pushes one batch through a fresh resolver
func runBounce(w *World, batch []contact.Notification) {
	w.Contacts.Update()
	w.Contacts.WriteBatch(batch)
	_ = newBounceResolver().Update(w, testDt)
}

func TestBounceReflectionLaw(t *testing.T) {
	tests := []struct {
		name     string
		velocity mgl64.Vec3
		normal   mgl64.Vec3
	}{
		{"head on", mgl64.Vec3{0, 0, -3}, mgl64.Vec3{0, 0, 1}},
		{"oblique", mgl64.Vec3{2, -1, -3}, mgl64.Vec3{0, 0, 1}},
		{"side", mgl64.Vec3{4, 1, 7}, mgl64.Vec3{-1, 0, 0}},
		{"receding", mgl64.Vec3{0, 2, 0}, mgl64.Vec3{0, 1, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWorld()
			ball, err := w.SpawnBall(mgl64.Vec3{}, 0.5, tt.velocity)
			require.NoError(t, err)

			runBounce(w, []contact.Notification{{Mover: ball, Obstacle: 99, Normal: tt.normal, Penetration: 0.25}})

			velocity, _ := w.Velocities.Get(ball)
			expected := tt.velocity.Sub(tt.normal.Mul(2 * tt.velocity.Dot(tt.normal)))
			assert.True(t, expected.ApproxEqual(velocity.Linear), "got %v want %v", velocity.Linear, expected)
			assert.InDelta(t, -tt.velocity.Dot(tt.normal), velocity.Linear.Dot(tt.normal), 1e-9)

			transform, _ := w.Transforms.Get(ball)
			assert.True(t, tt.normal.Mul(0.25).ApproxEqual(transform.Position))
		})
	}
}

func TestBounceCorner(t *testing.T) {
	w := NewWorld()
	ball, err := w.SpawnBall(mgl64.Vec3{}, 0.5, mgl64.Vec3{-1, 0, -1})
	require.NoError(t, err)

	runBounce(w, []contact.Notification{
		{Mover: ball, Obstacle: 10, Normal: mgl64.Vec3{1, 0, 0}, Penetration: 0.1},
		{Mover: ball, Obstacle: 11, Normal: mgl64.Vec3{0, 0, 1}, Penetration: 0.3},
	})

	// combined normal is (1,0,1)/√2, the ball comes straight back
	velocity, _ := w.Velocities.Get(ball)
	assert.True(t, mgl64.Vec3{1, 0, 1}.ApproxEqual(velocity.Linear), "got %v", velocity.Linear)

	transform, _ := w.Transforms.Get(ball)
	n := mgl64.Vec3{1, 0, 1}.Normalize()
	assert.True(t, n.Mul(0.3).ApproxEqual(transform.Position), "pushed by the deepest penetration")
}

// Opposite contacts cancel out; the mover keeps its velocity and position.
func TestBounceZeroCombinedNormal(t *testing.T) {
	w := NewWorld()
	ball, err := w.SpawnBall(mgl64.Vec3{1, 2, 3}, 0.5, mgl64.Vec3{0, 0, 5})
	require.NoError(t, err)

	runBounce(w, []contact.Notification{
		{Mover: ball, Obstacle: 10, Normal: mgl64.Vec3{0, 0, 1}, Penetration: 0.1},
		{Mover: ball, Obstacle: 11, Normal: mgl64.Vec3{0, 0, -1}, Penetration: 0.1},
	})

	velocity, _ := w.Velocities.Get(ball)
	assert.Equal(t, mgl64.Vec3{0, 0, 5}, velocity.Linear)
	transform, _ := w.Transforms.Get(ball)
	assert.Equal(t, mgl64.Vec3{1, 2, 3}, transform.Position)
}

func TestBounceSkipsMissingMover(t *testing.T) {
	w := NewWorld()
	ball, err := w.SpawnBall(mgl64.Vec3{}, 0.5, mgl64.Vec3{0, 0, -1})
	require.NoError(t, err)
	w.Despawn(ball)

	assert.NotPanics(t, func() {
		runBounce(w, []contact.Notification{{Mover: ball, Obstacle: 10, Normal: mgl64.Vec3{0, 0, 1}, Penetration: 0.1}})
	})
	assert.False(t, w.Velocities.Has(ball))
}

func TestBounceReadsEachBatchOnce(t *testing.T) {
	w := NewWorld()
	ball, err := w.SpawnBall(mgl64.Vec3{}, 0.5, mgl64.Vec3{0, 0, -1})
	require.NoError(t, err)

	resolver := newBounceResolver()
	w.Contacts.Update()
	w.Contacts.WriteBatch([]contact.Notification{{Mover: ball, Obstacle: 10, Normal: mgl64.Vec3{0, 0, 1}}})
	require.NoError(t, resolver.Update(w, testDt))
	// the batch is still readable this tick and the next, but already consumed
	require.NoError(t, resolver.Update(w, testDt))
	w.Contacts.Update()
	require.NoError(t, resolver.Update(w, testDt))

	velocity, _ := w.Velocities.Get(ball)
	assert.Equal(t, mgl64.Vec3{0, 0, 1}, velocity.Linear)
}
