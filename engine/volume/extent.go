package volume

import (
	"github.com/Carmen-Shannon/oxy-volume-pass/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Extent is the spatial shape attached to a local volume.
// It answers the two queries the influence computation needs: containment and nearest surface point.
type Extent interface {
	// Contains reports whether p lies inside (or on the boundary of) the extent.
	//
	// Parameters:
	//   - p: the world-space point to test
	//
	// Returns:
	//   - bool: true if p is inside the extent
	Contains(p mgl32.Vec3) bool

	// ClosestPoint returns the point of the extent nearest to p.
	// Points inside the extent return themselves.
	//
	// Parameters:
	//   - p: the world-space query point
	//
	// Returns:
	//   - mgl32.Vec3: the nearest point inside or on the extent
	ClosestPoint(p mgl32.Vec3) mgl32.Vec3
}

// Box is an axis-aligned box extent.
type Box struct {
	Center   mgl32.Vec3
	HalfSize mgl32.Vec3
}

var _ Extent = Box{}

// NewBox creates a Box from its center and full size.
//
// Parameters:
//   - center: the world-space center of the box
//   - size: the full edge lengths along x, y and z
//
// Returns:
//   - Box: the new box extent
func NewBox(center, size mgl32.Vec3) Box {
	return Box{Center: center, HalfSize: size.Mul(0.5)}
}

// Min returns the minimum corner of the box.
func (b Box) Min() mgl32.Vec3 {
	return b.Center.Sub(b.HalfSize)
}

// Max returns the maximum corner of the box.
func (b Box) Max() mgl32.Vec3 {
	return b.Center.Add(b.HalfSize)
}

func (b Box) Contains(p mgl32.Vec3) bool {
	lo, hi := b.Min(), b.Max()
	for i := 0; i < 3; i++ {
		if p[i] < lo[i] || p[i] > hi[i] {
			return false
		}
	}
	return true
}

func (b Box) ClosestPoint(p mgl32.Vec3) mgl32.Vec3 {
	return common.ClampVec3(p, b.Min(), b.Max())
}

// Sphere is a spherical extent.
type Sphere struct {
	Center mgl32.Vec3
	Radius float32
}

var _ Extent = Sphere{}

func (s Sphere) Contains(p mgl32.Vec3) bool {
	return common.Distance(p, s.Center) <= s.Radius
}

func (s Sphere) ClosestPoint(p mgl32.Vec3) mgl32.Vec3 {
	offset := p.Sub(s.Center)
	dist := offset.Len()
	if dist <= s.Radius || dist == 0 {
		return p
	}
	return s.Center.Add(offset.Mul(s.Radius / dist))
}
