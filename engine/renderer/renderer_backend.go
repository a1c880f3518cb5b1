package renderer

import (
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer/graph"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// Stats counts the GPU work encoded in the current frame.
type Stats struct {
	Passes int
	Draws  int
	Blits  int
}

// RendererBackend is the GPU API implementation behind the Renderer.
type RendererBackend interface {
	graph.Executor

	// ConfigureSurface (re)configures the surface and the camera targets for a new size.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	//
	// Returns:
	//   - error: an error if the camera targets could not be created
	ConfigureSurface(width, height int) error

	// SetPresentMode sets the surface present mode. Takes effect on the next ConfigureSurface.
	SetPresentMode(mode PresentMode)

	// SurfaceFormat returns the texel format of the surface and camera color target.
	SurfaceFormat() wgpu.TextureFormat

	// BeginFrame acquires the swapchain texture, creates the frame command encoder and
	// clears the camera depth target.
	BeginFrame(time float32) error

	// ImportTargets registers the frame's backbuffer and camera targets with g.
	ImportTargets(g *graph.Graph, intermediate bool) Targets

	// EndFrame finishes and submits the frame command encoder.
	EndFrame() error

	// Present presents the acquired swapchain texture.
	Present()

	// RegisterPipeline makes p available to materials whose passes name its key.
	RegisterPipeline(p pipeline.Pipeline) error

	// Pipeline returns the pipeline registered under key.
	Pipeline(key string) (pipeline.Pipeline, bool)

	// GPUPipeline returns the GPU pipeline for p and the given attachment formats, building it on first use.
	GPUPipeline(p pipeline.Pipeline, v pipeline.Variant) (*wgpu.RenderPipeline, error)

	// Stats returns the work encoded since BeginFrame.
	Stats() Stats

	// Release releases every GPU resource owned by the backend.
	Release()
}
