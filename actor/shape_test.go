package actor

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestBoundingSphereValidate(t *testing.T) {
	tests := []struct {
		name    string
		radius  float64
		wantErr bool
	}{
		{"positive", 0.75, false},
		{"zero", 0, true},
		{"negative", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := BoundingSphere{Radius: tt.radius}.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidRadius) {
				t.Errorf("Validate() = %v, want ErrInvalidRadius", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestBoundingBoxValidate(t *testing.T) {
	tests := []struct {
		name        string
		halfExtents mgl64.Vec3
		wantErr     bool
	}{
		{"all positive", mgl64.Vec3{1, 2, 3}, false},
		{"flat on z", mgl64.Vec3{1, 1, 0}, true},
		{"negative x", mgl64.Vec3{-1, 1, 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := BoundingBox{HalfExtents: tt.halfExtents}.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidExtents) {
				t.Errorf("Validate() = %v, want ErrInvalidExtents", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() = %v, want nil", err)
			}
		})
	}
}

func TestShapeComputeAABB(t *testing.T) {
	center := mgl64.Vec3{1, -1, 2}

	sphere := BoundingSphere{Radius: 0.5}.ComputeAABB(center)
	if sphere.Min != (mgl64.Vec3{0.5, -1.5, 1.5}) || sphere.Max != (mgl64.Vec3{1.5, -0.5, 2.5}) {
		t.Errorf("sphere AABB = %v", sphere)
	}

	box := BoundingBox{HalfExtents: mgl64.Vec3{2, 1, 0.1}}
	aabb := box.ComputeAABB(center)
	if aabb.Min != (mgl64.Vec3{-1, -2, 1.9}) || aabb.Max != (mgl64.Vec3{3, 0, 2.1}) {
		t.Errorf("box AABB = %v", aabb)
	}
}

func TestHealthDamage(t *testing.T) {
	h := Health{Max: 3, Current: 3}

	if h.Damage(1) {
		t.Error("3 -> 2 should not die")
	}
	if h.Damage(1) {
		t.Error("2 -> 1 should not die")
	}
	if !h.Damage(1) {
		t.Error("1 -> 0 should die")
	}
	if h.Damage(1) {
		t.Error("already dead bodies cannot die twice")
	}
	if h.Current != 0 {
		t.Errorf("Current = %d, want 0", h.Current)
	}
}
