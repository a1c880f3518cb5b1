package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-volume-pass/engine/camera"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/scheduler"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/window"
	"go.uber.org/zap"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profilingEnabled = enabled
	}
}

// WithTickRate sets the engine tick rate in frames per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			fps = 60.0
		}
		e.engineTickRate = time.Second / time.Duration(fps)
	}
}

// WithWindow sets the window the engine polls and presents to.
//
// Parameters:
//   - w: a spawned Window instance
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer frames are executed on.
//
// Parameters:
//   - r: a Renderer created for the engine's window
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithLogger sets the logger used by the engine and its profiler.
//
// Parameters:
//   - logger: the logger, nil keeps the no-op default
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithLogger(logger *zap.Logger) EngineBuilderOption {
	return func(e *engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithCamera registers a camera during engine construction.
//
// Parameters:
//   - c: the camera to add
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithCamera(c camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		if c != nil {
			e.cameras = append(e.cameras, c)
		}
	}
}

// WithFeature registers a renderer feature during engine construction.
//
// Parameters:
//   - f: the feature to add
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithFeature(f scheduler.RendererFeature) EngineBuilderOption {
	return func(e *engine) {
		if f != nil {
			e.features = append(e.features, f)
		}
	}
}

// WithSceneMaterial sets the material drawn as the scene.
//
// Parameters:
//   - mat: the scene material
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithSceneMaterial(mat material.Material) EngineBuilderOption {
	return func(e *engine) {
		if mat != nil {
			e.scenePass = newHostPass(scenePassName, scheduler.AfterRenderingTransparents, mat, false)
		}
	}
}

// WithPostProcessMaterial sets the material of the post-processing stack.
//
// Parameters:
//   - mat: the post-process material
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithPostProcessMaterial(mat material.Material) EngineBuilderOption {
	return func(e *engine) {
		if mat != nil {
			e.postProcess = newHostPass(postProcessPassName, scheduler.RenderingPostProcessing, mat, true)
		}
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		if fps <= 0 {
			e.renderFrameLimit = 0
			return
		}
		e.renderFrameLimit = time.Second / time.Duration(fps)
	}
}
