package camera

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Axis is one signed movement direction input.
type Axis int

const (
	AxisRight Axis = iota
	AxisLeft
	AxisUp
	AxisDown
	AxisForward
	AxisBack
)

// axisDirections are the world-space unit vectors of each Axis. Forward is -Z.
var axisDirections = [...]mgl32.Vec3{
	AxisRight:   {1, 0, 0},
	AxisLeft:    {-1, 0, 0},
	AxisUp:      {0, 1, 0},
	AxisDown:    {0, -1, 0},
	AxisForward: {0, 0, -1},
	AxisBack:    {0, 0, 1},
}

// cameraControllerImpl is the implementation of CameraController.
type cameraControllerImpl struct {
	mu *sync.Mutex

	camera   Camera
	panSpeed float32

	// bounds limits the camera position when set.
	bounds    bool
	boundsMin mgl32.Vec3
	boundsMax mgl32.Vec3
}

// CameraController translates a Camera along the world axes at a fixed speed.
// Moving the camera also moves the point volumes are evaluated at, unless the camera
// has a separate volume trigger.
type CameraController interface {
	// Camera returns the controlled camera.
	Camera() Camera

	// Move translates the camera along every active axis for dt seconds.
	// Opposite axes cancel out; diagonal movement is normalized.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	//   - axes: the active movement inputs
	Move(dt float32, axes ...Axis)

	// PanSpeed returns the movement speed in world units per second.
	PanSpeed() float32
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates a controller for c. Speed defaults to 5 units per second.
//
// Parameters:
//   - c: the camera to move
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(c Camera, options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:       &sync.Mutex{},
		camera:   c,
		panSpeed: 5,
	}
	for _, opt := range options {
		opt(cc)
	}
	return cc
}

func (cc *cameraControllerImpl) Camera() Camera {
	return cc.camera
}

func (cc *cameraControllerImpl) Move(dt float32, axes ...Axis) {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	var dir mgl32.Vec3
	for _, a := range axes {
		if a >= 0 && int(a) < len(axisDirections) {
			dir = dir.Add(axisDirections[a])
		}
	}
	if dir.Len() == 0 || dt <= 0 {
		return
	}

	pos := cc.camera.Position().Add(dir.Normalize().Mul(cc.panSpeed * dt))
	if cc.bounds {
		pos = mgl32.Vec3{
			mgl32.Clamp(pos[0], cc.boundsMin[0], cc.boundsMax[0]),
			mgl32.Clamp(pos[1], cc.boundsMin[1], cc.boundsMax[1]),
			mgl32.Clamp(pos[2], cc.boundsMin[2], cc.boundsMax[2]),
		}
	}
	cc.camera.SetPosition(pos)
}

func (cc *cameraControllerImpl) PanSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.panSpeed
}
