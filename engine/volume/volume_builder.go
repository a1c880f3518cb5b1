package volume

// VolumeBuilderOption is a function that configures a volume during construction.
type VolumeBuilderOption func(*volumeImpl)

// WithName sets the volume's display name.
//
// Parameters:
//   - name: the display name
//
// Returns:
//   - VolumeBuilderOption: a function that applies the name option to a volume
func WithName(name string) VolumeBuilderOption {
	return func(v *volumeImpl) {
		v.name = name
	}
}

// WithEnabled sets whether the volume starts enabled.
//
// Parameters:
//   - enabled: the initial enabled state
//
// Returns:
//   - VolumeBuilderOption: a function that applies the enabled option to a volume
func WithEnabled(enabled bool) VolumeBuilderOption {
	return func(v *volumeImpl) {
		v.enabled = enabled
	}
}

// WithWeight sets the volume's overall weight.
//
// Parameters:
//   - weight: the weight, typically in [0, 1]
//
// Returns:
//   - VolumeBuilderOption: a function that applies the weight option to a volume
func WithWeight(weight float32) VolumeBuilderOption {
	return func(v *volumeImpl) {
		v.weight = weight
	}
}

// WithPriority sets the sort priority of effects sourced from the volume.
//
// Parameters:
//   - priority: the sort key, lower values apply first
//
// Returns:
//   - VolumeBuilderOption: a function that applies the priority option to a volume
func WithPriority(priority float32) VolumeBuilderOption {
	return func(v *volumeImpl) {
		v.priority = priority
	}
}

// WithGlobal marks the volume as global (true) or local (false).
//
// Parameters:
//   - global: whether the volume ignores its extent
//
// Returns:
//   - VolumeBuilderOption: a function that applies the global option to a volume
func WithGlobal(global bool) VolumeBuilderOption {
	return func(v *volumeImpl) {
		v.global = global
	}
}

// WithExtent attaches an extent and makes the volume local.
//
// Parameters:
//   - extent: the spatial extent
//
// Returns:
//   - VolumeBuilderOption: a function that applies the extent option to a volume
func WithExtent(extent Extent) VolumeBuilderOption {
	return func(v *volumeImpl) {
		v.extent = extent
		v.global = false
	}
}

// WithBlendDistance sets the fade distance outside the extent.
//
// Parameters:
//   - distance: the blend distance, <= 0 for a hard edge
//
// Returns:
//   - VolumeBuilderOption: a function that applies the blend distance option to a volume
func WithBlendDistance(distance float32) VolumeBuilderOption {
	return func(v *volumeImpl) {
		v.blendDistance = distance
	}
}

// WithProfile attaches a profile.
//
// Parameters:
//   - profile: the profile to apply
//
// Returns:
//   - VolumeBuilderOption: a function that applies the profile option to a volume
func WithProfile(profile Profile) VolumeBuilderOption {
	return func(v *volumeImpl) {
		v.profile = profile
	}
}

// WithLayer places the volume on a layer index in [0, 31].
//
// Parameters:
//   - layer: the layer index
//
// Returns:
//   - VolumeBuilderOption: a function that applies the layer option to a volume
func WithLayer(layer uint8) VolumeBuilderOption {
	return func(v *volumeImpl) {
		v.layer = layer & 31
	}
}
