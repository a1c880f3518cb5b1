package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithPanSpeed sets the movement speed.
//
// Parameters:
//   - speed: world units per second, values <= 0 are ignored
//
// Returns:
//   - CameraControllerOption: functional option to set pan speed
func WithPanSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if speed > 0 {
			cc.panSpeed = speed
		}
	}
}

// WithBounds keeps the camera inside an axis-aligned box.
//
// Parameters:
//   - lo: the lowest allowed position
//   - hi: the highest allowed position
//
// Returns:
//   - CameraControllerOption: functional option to set movement bounds
func WithBounds(lo, hi mgl32.Vec3) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.bounds = true
		cc.boundsMin = lo
		cc.boundsMax = hi
	}
}
