// Package scheduler defines how render features hand passes to the host renderer.
package scheduler

import (
	"strconv"

	"github.com/Carmen-Shannon/oxy-volume-pass/engine/frame"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer/graph"
)

// RenderPassEvent is the ordering point a pass is injected at. Lower events run first.
type RenderPassEvent int

const (
	// AfterRenderingTransparents runs once the scene has been drawn.
	AfterRenderingTransparents RenderPassEvent = 500

	// BeforeRenderingPostProcessing runs after transparents, before the post-processing stack.
	BeforeRenderingPostProcessing RenderPassEvent = 550

	// RenderingPostProcessing is where the host runs its post-processing stack.
	RenderingPostProcessing RenderPassEvent = 575

	// AfterRenderingPostProcessing runs after the post-processing stack, before final blit.
	AfterRenderingPostProcessing RenderPassEvent = 600
)

func (e RenderPassEvent) String() string {
	switch e {
	case AfterRenderingTransparents:
		return "AfterRenderingTransparents"
	case BeforeRenderingPostProcessing:
		return "BeforeRenderingPostProcessing"
	case RenderingPostProcessing:
		return "RenderingPostProcessing"
	case AfterRenderingPostProcessing:
		return "AfterRenderingPostProcessing"
	default:
		return "RenderPassEvent(" + strconv.Itoa(int(e)) + ")"
	}
}

// PassInput is a bitmask of camera textures a pass needs the host to produce.
type PassInput uint8

const (
	// InputNone requests nothing.
	InputNone PassInput = 0
	// InputDepth requests the camera depth texture.
	InputDepth PassInput = 1 << 0
	// InputNormal requests the camera normals texture.
	InputNormal PassInput = 1 << 1
	// InputColor requests the camera opaque color texture.
	InputColor PassInput = 1 << 2
	// InputMotion requests motion vectors.
	InputMotion PassInput = 1 << 3
)

// Has reports whether every bit of flag is set in i.
func (i PassInput) Has(flag PassInput) bool {
	return i&flag == flag && flag != InputNone
}

// RenderPass is a pass the host renderer can schedule.
type RenderPass interface {
	// Name returns the pass debug name.
	Name() string

	// Event returns the injection point of the pass.
	Event() RenderPassEvent

	// Input returns the camera textures the pass needs this frame.
	Input() PassInput

	// RequiresIntermediateTexture reports whether the host must render into an
	// intermediate target instead of the backbuffer this frame.
	RequiresIntermediateTexture() bool

	// RecordRenderGraph declares the pass's sub-passes for the current camera.
	//
	// Parameters:
	//   - g: the frame graph being built
	//   - data: the camera frame context
	RecordRenderGraph(g graph.RenderGraph, data *frame.Data)
}

// Scheduler accepts passes for the current camera frame.
type Scheduler interface {
	// EnqueuePass schedules p for the current camera frame.
	EnqueuePass(p RenderPass)
}

// RendererFeature injects passes into the host renderer every camera frame.
type RendererFeature interface {
	// AddRenderPasses enqueues the feature's passes relevant to data's camera.
	AddRenderPasses(s Scheduler, data *frame.Data)

	// Dispose releases resources held by the feature.
	Dispose()
}
