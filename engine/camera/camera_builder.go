package camera

import "github.com/go-gl/mathgl/mgl32"

type CameraBuilderOption func(*cameraImpl)

// WithName sets the camera's display name.
//
// Parameters:
//   - name: the display name
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's name
func WithName(name string) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.name = name
	}
}

// WithPosition sets the camera's world-space position.
//
// Parameters:
//   - x, y, z: position components
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's position
func WithPosition(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = mgl32.Vec3{x, y, z}
	}
}

// WithRenderType sets whether the camera is a base or overlay camera.
//
// Parameters:
//   - t: the render type
//
// Returns:
//   - CameraBuilderOption: a function that sets the render type
func WithRenderType(t RenderType) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.renderType = t
	}
}

// WithCameraType sets what the camera is used for.
//
// Parameters:
//   - t: the camera type
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera type
func WithCameraType(t CameraType) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.cameraType = t
	}
}

// WithVolumeLayerMask restricts the volume layers the camera sees.
//
// Parameters:
//   - mask: bitmask of visible layers
//
// Returns:
//   - CameraBuilderOption: a function that sets the volume layer mask
func WithVolumeLayerMask(mask uint32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.volumeLayerMask = mask
	}
}

// WithVolumeTrigger uses t instead of the camera position for volume influence.
//
// Parameters:
//   - t: the trigger transform
//
// Returns:
//   - CameraBuilderOption: a function that sets the volume trigger
func WithVolumeTrigger(t Transform) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.volumeTrigger = t
	}
}

// WithPostProcessEnabled toggles post-processing for the camera.
//
// Parameters:
//   - enabled: whether post-processing runs
//
// Returns:
//   - CameraBuilderOption: a function that sets the post-processing flag
func WithPostProcessEnabled(enabled bool) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.postProcessEnabled = enabled
	}
}
