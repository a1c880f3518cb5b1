package fullscreen

import (
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/camera"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/frame"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/scheduler"
	"go.uber.org/zap"
)

// Feature owns the before and after post-processing passes and enqueues them for every
// camera that has effects to draw.
type Feature interface {
	scheduler.RendererFeature

	// Create builds the feature's passes, replacing existing ones.
	Create()

	// Pass returns the pass serving event, or nil if the feature has none.
	//
	// Parameters:
	//   - event: the injection point
	//
	// Returns:
	//   - *Pass: the pass, or nil
	Pass(event scheduler.RenderPassEvent) *Pass
}

// feature is the implementation of the Feature interface.
type feature struct {
	registry    *Registry
	diagnostics Diagnostics
	config      Config
	logger      *zap.Logger

	before *Pass
	after  *Pass
}

var _ Feature = &feature{}

// NewFeature creates a Feature and builds its passes.
//
// Parameters:
//   - options: variadic list of FeatureBuilderOption functions
//
// Returns:
//   - Feature: the new feature
func NewFeature(options ...FeatureBuilderOption) Feature {
	f := &feature{
		config: DefaultConfig(),
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		opt(f)
	}
	if f.diagnostics == nil {
		f.diagnostics = NewLogDiagnostics(f.logger)
	}
	f.Create()
	return f
}

func (f *feature) Create() {
	registry := f.registry
	if registry == nil {
		registry = DefaultRegistry()
	}

	opts := []PassBuilderOption{
		WithPassRegistry(registry),
		WithPassDiagnostics(f.diagnostics),
		WithPassConfig(f.config),
	}
	f.before = NewPass(scheduler.BeforeRenderingPostProcessing, opts...)
	f.after = NewPass(scheduler.AfterRenderingPostProcessing, opts...)

	f.logger.Debug("created fullscreen volume passes",
		zap.Int("modules", registry.Len()),
		zap.Stringer("copy_mode", f.config.CopyMode),
	)
}

func (f *feature) AddRenderPasses(s scheduler.Scheduler, data *frame.Data) {
	if s == nil || data == nil || data.Camera == nil {
		return
	}
	if data.Camera.RenderType() != camera.RenderTypeBase {
		return
	}
	if data.Camera.CameraType() == camera.CameraTypePreview {
		return
	}

	for _, p := range [...]*Pass{f.before, f.after} {
		if p == nil {
			continue
		}
		if p.PrepareForCamera(data) {
			s.EnqueuePass(p)
		}
	}
}

func (f *feature) Dispose() {
	if f.before != nil {
		f.before.Dispose()
		f.before = nil
	}
	if f.after != nil {
		f.after.Dispose()
		f.after = nil
	}
}

func (f *feature) Pass(event scheduler.RenderPassEvent) *Pass {
	switch event {
	case scheduler.BeforeRenderingPostProcessing:
		return f.before
	case scheduler.AfterRenderingPostProcessing:
		return f.after
	default:
		return nil
	}
}
