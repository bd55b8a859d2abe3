package actor

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

var (
	ErrInvalidRadius  = errors.New("bounding sphere radius must be positive")
	ErrInvalidExtents = errors.New("bounding box half extents must be positive")
)

// BoundingSphere is centered on its owner's Transform.
// Only moving bodies (the ball) carry one.
type BoundingSphere struct {
	Radius float64
}

func (s BoundingSphere) Validate() error {
	if !(s.Radius > 0) {
		return fmt.Errorf("radius %v: %w", s.Radius, ErrInvalidRadius)
	}
	return nil
}

// ComputeAABB returns the box enclosing the sphere placed at center
func (s BoundingSphere) ComputeAABB(center mgl64.Vec3) AABB {
	return NewAABB(center, mgl64.Vec3{s.Radius, s.Radius, s.Radius})
}

// BoundingBox is an axis-aligned box centered on its owner's Transform.
// A box without Velocity is a static obstacle: wall, goal, paddle or brick.
type BoundingBox struct {
	HalfExtents mgl64.Vec3
}

func (b BoundingBox) Validate() error {
	if !(b.HalfExtents.X() > 0 && b.HalfExtents.Y() > 0 && b.HalfExtents.Z() > 0) {
		return fmt.Errorf("half extents %v: %w", b.HalfExtents, ErrInvalidExtents)
	}
	return nil
}

func (b BoundingBox) ComputeAABB(center mgl64.Vec3) AABB {
	return NewAABB(center, b.HalfExtents)
}
