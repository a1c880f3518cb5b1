package volume

import (
	"strconv"
	"sync/atomic"
)

// volumeCount is used to name volumes created without an explicit name.
var volumeCount atomic.Uint64

// AllLayers is a layer mask that matches every volume layer.
const AllLayers uint32 = 0xFFFFFFFF

// volumeImpl is the implementation of the Volume interface.
type volumeImpl struct {
	name          string
	enabled       bool
	weight        float32
	global        bool
	priority      float32
	blendDistance float32
	extent        Extent
	profile       Profile
	layer         uint8
}

// Volume is a scene object that applies a Profile with a spatially resolved weight.
//
// A global volume affects every camera at its full weight. A local volume needs an
// Extent and affects cameras whose trigger point is inside it, optionally fading out
// over BlendDistance outside its surface.
type Volume interface {
	// Name returns the volume's display name.
	Name() string

	// Enabled reports whether the volume participates in blending.
	Enabled() bool

	// Weight returns the volume's overall weight, typically in [0, 1].
	Weight() float32

	// Global reports whether the volume ignores its extent and applies everywhere.
	Global() bool

	// Priority returns the sort key used to order effects coming from this volume.
	// Lower values are applied first.
	Priority() float32

	// BlendDistance returns the distance outside the extent over which the volume fades out.
	// Values <= 0 make the volume a hard in/out step.
	BlendDistance() float32

	// Extent returns the spatial extent of a local volume, or nil if none is attached.
	Extent() Extent

	// Profile returns the attached profile, or nil.
	Profile() Profile

	// Layer returns the volume's layer index in [0, 31].
	Layer() uint8

	// InMask reports whether the volume's layer is included in mask.
	//
	// Parameters:
	//   - mask: a bitmask of accepted layers
	//
	// Returns:
	//   - bool: true if bit Layer() is set in mask
	InMask(mask uint32) bool

	// SetEnabled enables or disables the volume.
	SetEnabled(enabled bool)

	// SetWeight sets the volume's overall weight.
	SetWeight(weight float32)

	// SetPriority sets the volume's sort priority.
	SetPriority(priority float32)

	// SetBlendDistance sets the fade distance outside the extent.
	SetBlendDistance(distance float32)

	// SetExtent replaces the volume's extent. Passing nil detaches it.
	SetExtent(extent Extent)

	// SetProfile replaces the attached profile.
	SetProfile(profile Profile)
}

var _ Volume = &volumeImpl{}

// NewVolume creates a Volume configured with the provided options.
// Volumes start enabled, global, with weight 1 on layer 0.
//
// Parameters:
//   - options: variadic list of VolumeBuilderOption functions to configure the volume
//
// Returns:
//   - Volume: the new volume
func NewVolume(options ...VolumeBuilderOption) Volume {
	v := &volumeImpl{
		enabled: true,
		weight:  1,
		global:  true,
	}
	for _, opt := range options {
		opt(v)
	}
	if v.name == "" {
		v.name = "Volume " + strconv.FormatUint(volumeCount.Add(1), 10)
	}
	return v
}

func (v *volumeImpl) Name() string {
	return v.name
}

func (v *volumeImpl) Enabled() bool {
	return v.enabled
}

func (v *volumeImpl) Weight() float32 {
	return v.weight
}

func (v *volumeImpl) Global() bool {
	return v.global
}

func (v *volumeImpl) Priority() float32 {
	return v.priority
}

func (v *volumeImpl) BlendDistance() float32 {
	return v.blendDistance
}

func (v *volumeImpl) Extent() Extent {
	return v.extent
}

func (v *volumeImpl) Profile() Profile {
	return v.profile
}

func (v *volumeImpl) Layer() uint8 {
	return v.layer
}

func (v *volumeImpl) InMask(mask uint32) bool {
	return mask&(1<<(v.layer&31)) != 0
}

func (v *volumeImpl) SetEnabled(enabled bool) {
	v.enabled = enabled
}

func (v *volumeImpl) SetWeight(weight float32) {
	v.weight = weight
}

func (v *volumeImpl) SetPriority(priority float32) {
	v.priority = priority
}

func (v *volumeImpl) SetBlendDistance(distance float32) {
	v.blendDistance = distance
}

func (v *volumeImpl) SetExtent(extent Extent) {
	v.extent = extent
}

func (v *volumeImpl) SetProfile(profile Profile) {
	v.profile = profile
}
