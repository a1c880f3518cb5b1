package fullscreen

import (
	"github.com/Carmen-Shannon/oxy-volume-pass/common"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/volume"
	"github.com/go-gl/mathgl/mgl32"
)

// VolumeInfluence returns how strongly v applies at trigger.
//
// Global volumes apply at their full weight. Local volumes without an extent never apply.
// With a blend distance <= 0 a local volume applies at full weight inside its extent and
// not at all outside. Otherwise the weight fades linearly from the extent surface to
// blendDistance away from it.
//
// Parameters:
//   - v: the volume
//   - trigger: the world-space trigger point
//
// Returns:
//   - float32: the influence in [0, weight]
func VolumeInfluence(v volume.Volume, trigger mgl32.Vec3) float32 {
	influence := v.Weight()
	if influence <= 0 {
		return 0
	}
	if v.Global() {
		return influence
	}

	extent := v.Extent()
	if extent == nil {
		return 0
	}

	blendDistance := v.BlendDistance()
	if blendDistance <= 0 {
		if extent.Contains(trigger) {
			return influence
		}
		return 0
	}

	distance := common.Distance(extent.ClosestPoint(trigger), trigger)
	return influence * (1 - common.Clamp01(distance/blendDistance))
}
