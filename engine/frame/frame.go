// Package frame holds the per-camera, per-frame context handed to render features.
package frame

import (
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/camera"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer/graph"
)

// ResourceData lists the frame-graph textures available to passes for the current camera.
// Any handle may be invalid when the host did not produce that resource this frame.
type ResourceData struct {
	// ActiveColor is the color target passes currently render into.
	ActiveColor graph.TextureHandle
	// ActiveDepth is the depth-stencil target paired with ActiveColor.
	ActiveDepth graph.TextureHandle

	// CameraOpaque is the copy of the color buffer taken after opaque rendering.
	CameraOpaque graph.TextureHandle
	// CameraDepth is the sampleable scene depth.
	CameraDepth graph.TextureHandle
	// CameraNormals is the scene normals texture.
	CameraNormals graph.TextureHandle
	// MotionVectorColor and MotionVectorDepth are the motion vector targets.
	MotionVectorColor graph.TextureHandle
	MotionVectorDepth graph.TextureHandle

	// IsActiveTargetBackBuffer is true when ActiveColor is the final swapchain image,
	// which cannot be sampled mid-frame.
	IsActiveTargetBackBuffer bool

	// CameraTargetDesc describes the camera's color target.
	CameraTargetDesc graph.TextureDesc
}

// Data is the context for one camera in one frame.
type Data struct {
	Camera    camera.Camera
	Resources ResourceData

	// Index is the monotonically increasing frame number.
	Index uint64
	// Time is the elapsed time in seconds since the host started.
	Time float32
}

// PostProcessEnabled reports whether post-processing runs downstream for this camera.
func (d *Data) PostProcessEnabled() bool {
	return d.Camera != nil && d.Camera.PostProcessEnabled()
}
