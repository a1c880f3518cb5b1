package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-volume-pass/engine/volume"
	"github.com/go-gl/mathgl/mgl32"
)

// RenderType distinguishes cameras that own a full frame from cameras stacked on top of one.
type RenderType int

const (
	// RenderTypeBase cameras render a complete frame and run full-screen features.
	RenderTypeBase RenderType = iota

	// RenderTypeOverlay cameras composite on top of a base camera's output.
	RenderTypeOverlay
)

// CameraType identifies what a camera is used for.
type CameraType int

const (
	// CameraTypeGame is a regular in-game camera.
	CameraTypeGame CameraType = iota

	// CameraTypeSceneView is an editor viewport camera.
	CameraTypeSceneView

	// CameraTypePreview renders asset thumbnails and previews. Full-screen effects never run on it.
	CameraTypePreview

	// CameraTypeReflection renders reflection probes.
	CameraTypeReflection
)

// Transform is anything with a world-space position.
type Transform interface {
	Position() mgl32.Vec3
}

// Point is a fixed world-space Transform.
type Point mgl32.Vec3

// Position returns the point itself.
func (p Point) Position() mgl32.Vec3 {
	return mgl32.Vec3(p)
}

type cameraImpl struct {
	mu *sync.Mutex

	name     string
	position mgl32.Vec3

	renderType RenderType
	cameraType CameraType

	volumeLayerMask uint32
	volumeTrigger   Transform

	postProcessEnabled bool
}

// Camera defines the per-camera state read by full-screen features.
//
// Volume queries are filtered by VolumeLayerMask and resolved against TriggerPosition,
// which is the explicit trigger transform when one is set and the camera position otherwise.
type Camera interface {
	// Name returns the camera's display name.
	Name() string

	// Position returns the camera's world-space position.
	Position() mgl32.Vec3

	// RenderType returns whether the camera is a base or overlay camera.
	RenderType() RenderType

	// CameraType returns what the camera is used for.
	CameraType() CameraType

	// VolumeLayerMask returns the bitmask of volume layers visible to the camera.
	VolumeLayerMask() uint32

	// VolumeTrigger returns the explicit trigger transform, or nil.
	VolumeTrigger() Transform

	// TriggerPosition returns the point used for volume influence.
	//
	// Returns:
	//   - mgl32.Vec3: the trigger transform's position if set, else the camera position
	TriggerPosition() mgl32.Vec3

	// PostProcessEnabled reports whether post-processing runs for this camera.
	PostProcessEnabled() bool

	// SetPosition moves the camera.
	//
	// Parameters:
	//   - p: the new world-space position
	SetPosition(p mgl32.Vec3)

	// SetVolumeTrigger sets or clears (nil) the explicit trigger transform.
	//
	// Parameters:
	//   - t: the trigger transform
	SetVolumeTrigger(t Transform)

	// SetPostProcessEnabled toggles post-processing for this camera.
	SetPostProcessEnabled(enabled bool)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a Camera configured with the provided options.
// Cameras default to a base game camera seeing every volume layer with post-processing enabled.
//
// Parameters:
//   - options: variadic list of CameraBuilderOption functions
//
// Returns:
//   - Camera: the new camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:                 &sync.Mutex{},
		name:               "Main Camera",
		renderType:         RenderTypeBase,
		cameraType:         CameraTypeGame,
		volumeLayerMask:    volume.AllLayers,
		postProcessEnabled: true,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *cameraImpl) Name() string {
	return c.name
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) RenderType() RenderType {
	return c.renderType
}

func (c *cameraImpl) CameraType() CameraType {
	return c.cameraType
}

func (c *cameraImpl) VolumeLayerMask() uint32 {
	return c.volumeLayerMask
}

func (c *cameraImpl) VolumeTrigger() Transform {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.volumeTrigger
}

func (c *cameraImpl) TriggerPosition() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.volumeTrigger != nil {
		return c.volumeTrigger.Position()
	}
	return c.position
}

func (c *cameraImpl) PostProcessEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.postProcessEnabled
}

func (c *cameraImpl) SetPosition(p mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = p
}

func (c *cameraImpl) SetVolumeTrigger(t Transform) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.volumeTrigger = t
}

func (c *cameraImpl) SetPostProcessEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.postProcessEnabled = enabled
}
