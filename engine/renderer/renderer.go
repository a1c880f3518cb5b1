package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-volume-pass/engine/frame"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer/graph"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/window"
	"go.uber.org/zap"
)

// defaultMaxDraws is the number of uniform slots reserved per frame.
const defaultMaxDraws = 256

// Targets are the textures a frame graph imports from the renderer.
type Targets struct {
	// Resources is the camera resource table handed to render features.
	Resources frame.ResourceData

	// BackBuffer is the swapchain image for this frame.
	BackBuffer graph.TextureHandle

	// CameraColor is the intermediate camera color target. When Resources.ActiveColor is
	// CameraColor, the host must blit it to BackBuffer before presenting.
	CameraColor graph.TextureHandle
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backend RendererBackend
	logger  *zap.Logger

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	pendingPresentMode   *PresentMode
	maxDraws             int
}

// Renderer defines the interface for the rendering system.
//
// The Renderer owns the GPU device, the surface and the camera targets, and executes
// frame graphs: it is the graph.Executor that turns declared raster passes into
// WebGPU render passes. Materials reference pipelines by key, so every pipeline a
// material pass names must be registered before the first frame that draws it.
type Renderer interface {
	graph.Executor

	// RegisterPipelines registers one or more full-screen pipelines by key.
	// GPU pipeline objects are created lazily the first time a pipeline is drawn into
	// a given attachment format.
	//
	// Parameters:
	//   - pipelines: the Pipelines to register
	//
	// Returns:
	//   - error: an error if a key is empty, reserved, or already registered
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// Pipeline retrieves the registered Pipeline associated with the given key.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the Pipeline associated with the key
	//   - bool: false when no pipeline is registered under key
	Pipeline(key string) (pipeline.Pipeline, bool)

	// Resize configures the underlying backend to handle a new surface size.
	// This should be called when re-sizing the window or when the surface size should change.
	//
	// Parameters:
	//   - width: the new width of the surface in pixels
	//   - height: the new height of the surface in pixels
	Resize(width, height int)

	// SetPresentMode sets the surface present mode which controls how frames are delivered to the display.
	// A call to Resize is required after changing this for the new mode to take effect.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// BeginFrame acquires the swapchain texture and opens the frame command encoder.
	// Must be paired with EndFrame.
	//
	// Parameters:
	//   - time: elapsed seconds, exposed to shaders as params.time
	//
	// Returns:
	//   - error: an error if the swapchain texture could not be acquired
	BeginFrame(time float32) error

	// ImportTargets imports the frame's backbuffer and camera targets into g.
	//
	// Parameters:
	//   - g: the frame graph for the current camera
	//   - intermediate: true to make the camera color target the active color target
	//
	// Returns:
	//   - Targets: the imported handles
	ImportTargets(g *graph.Graph, intermediate bool) Targets

	// EndFrame finishes the frame command encoder and submits it to the GPU queue.
	// Does not present the surface. Call Present() after EndFrame to display the frame.
	//
	// Returns:
	//   - error: an error if the command buffer could not be finished
	EndFrame() error

	// Present presents the surface to the display and releases the swapchain texture.
	Present()

	// Stats returns the GPU work encoded since the last BeginFrame.
	Stats() Stats

	// Release releases every GPU resource held by the renderer.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a new WebGPU Renderer presenting to the given window.
//
// Parameters:
//   - w: the window whose surface the renderer presents to
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new Renderer configured for the window's current size
//   - error: an error if the adapter, device, or shared GPU resources could not be created
func NewRenderer(w window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:       &sync.Mutex{},
		logger:   zap.NewNop(),
		maxDraws: defaultMaxDraws,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	backend, err := newWGPURendererBackend(w.SurfaceDescriptor(), r.forceFallbackAdapter, r.maxDraws, r.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer backend: %w", err)
	}
	r.backend = backend

	if r.pendingPresentMode != nil {
		r.backend.SetPresentMode(*r.pendingPresentMode)
	}
	if err := r.backend.ConfigureSurface(w.Width(), w.Height()); err != nil {
		r.backend.Release()
		return nil, fmt.Errorf("failed to configure surface: %w", err)
	}

	r.logger.Info("renderer created",
		zap.Int("width", w.Width()),
		zap.Int("height", w.Height()),
		zap.Uint32("surface_format", uint32(r.backend.SurfaceFormat())),
		zap.Int("max_draws", r.maxDraws),
	)
	return r, nil
}

func (r *renderer) Resize(width, height int) {
	if err := r.backend.ConfigureSurface(width, height); err != nil {
		r.logger.Error("failed to resize surface", zap.Int("width", width), zap.Int("height", height), zap.Error(err))
	}
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		if p == nil {
			continue
		}
		if err := r.backend.RegisterPipeline(p); err != nil {
			return err
		}
		r.logger.Debug("pipeline registered", zap.String("key", p.PipelineKey()), zap.Strings("properties", p.Properties()))
	}
	return nil
}

func (r *renderer) Pipeline(key string) (pipeline.Pipeline, bool) {
	return r.backend.Pipeline(key)
}

func (r *renderer) BeginFrame(time float32) error {
	return r.backend.BeginFrame(time)
}

func (r *renderer) ImportTargets(g *graph.Graph, intermediate bool) Targets {
	return r.backend.ImportTargets(g, intermediate)
}

func (r *renderer) BeginRasterPass(g *graph.Graph, p *graph.RasterPass) (graph.CommandBuffer, error) {
	return r.backend.BeginRasterPass(g, p)
}

func (r *renderer) EndRasterPass(p *graph.RasterPass) error {
	return r.backend.EndRasterPass(p)
}

func (r *renderer) EndFrame() error {
	return r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}

func (r *renderer) Stats() Stats {
	return r.backend.Stats()
}

func (r *renderer) Release() {
	r.backend.Release()
}
