package common

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Clamp01 clamps a scalar into the [0, 1] range.
// NaN inputs clamp to 0 so a degenerate distance never yields a positive weight.
//
// Parameters:
//   - x: the value to clamp
//
// Returns:
//   - float32: x limited to [0, 1]
func Clamp01(x float32) float32 {
	if math32.IsNaN(x) {
		return 0
	}
	return math32.Max(0, math32.Min(1, x))
}

// Distance returns the euclidean distance between two points.
//
// Parameters:
//   - a: the first point
//   - b: the second point
//
// Returns:
//   - float32: |a - b|
func Distance(a, b mgl32.Vec3) float32 {
	return a.Sub(b).Len()
}

// ClampVec3 clamps each component of v into [lo, hi].
//
// Parameters:
//   - v: the vector to clamp
//   - lo: the per-component lower bound
//   - hi: the per-component upper bound
//
// Returns:
//   - mgl32.Vec3: the clamped vector
func ClampVec3(v, lo, hi mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		mgl32.Clamp(v[0], lo[0], hi[0]),
		mgl32.Clamp(v[1], lo[1], hi[1]),
		mgl32.Clamp(v[2], lo[2], hi[2]),
	}
}

// FullCoverageScaleBias is the UV scale/bias that maps a full-screen triangle onto the whole source texture.
var FullCoverageScaleBias = mgl32.Vec4{1, 1, 0, 0}
