package fullscreen

import (
	"github.com/Carmen-Shannon/oxy-volume-pass/common"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/scheduler"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/volume"
)

// ComponentName identifies EffectComponent on a profile.
const ComponentName = "FullScreenVolumePass"

// EffectComponent is the authored configuration of a full-screen effect stored on a volume profile.
// Every field carries an override flag; override resolution across profiles happens upstream,
// so readers only use Value().
type EffectComponent struct {
	// Enabled turns the effect on or off.
	Enabled volume.Parameter[bool]
	// Intensity is written to the material's _Intensity property, clamped to [0, 1].
	Intensity volume.Parameter[float32]
	// InjectionPoint selects the pass the effect renders in.
	InjectionPoint volume.Parameter[InjectionPoint]
	// Requirements lists the camera textures the material samples. Requesting unused
	// inputs can make the host render extra passes to produce them.
	Requirements volume.Parameter[scheduler.PassInput]
	// FetchColorBuffer copies the active color target so the material can sample the
	// current screen. Disable it for materials that only draw over or blend with it.
	FetchColorBuffer volume.Parameter[bool]
	// BindDepthStencil binds the camera depth-stencil target so the material's depth and
	// stencil state takes effect.
	BindDepthStencil volume.Parameter[bool]
	// Material is the full-screen material.
	Material volume.Parameter[material.Material]
	// PassIndex is the material pass drawn.
	PassIndex volume.Parameter[int]
}

var _ volume.Component = &EffectComponent{}

// NewEffectComponent creates an EffectComponent with default values, then applies options.
// Defaults: enabled, intensity 1, before post-processing, no requirements, color fetch on,
// depth-stencil off, no material, pass 0.
//
// Parameters:
//   - options: variadic list of EffectComponentBuilderOption functions
//
// Returns:
//   - *EffectComponent: the new component
func NewEffectComponent(options ...EffectComponentBuilderOption) *EffectComponent {
	c := &EffectComponent{
		Enabled:          volume.NewParameter(true, false),
		Intensity:        volume.NewParameter[float32](1, false),
		InjectionPoint:   volume.NewParameter(InjectionBeforePostProcessing, false),
		Requirements:     volume.NewParameter(scheduler.InputNone, false),
		FetchColorBuffer: volume.NewParameter(true, false),
		BindDepthStencil: volume.NewParameter(false, false),
		Material:         volume.NewParameter[material.Material](nil, false),
		PassIndex:        volume.NewParameter(0, false),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

func (c *EffectComponent) ComponentName() string {
	return ComponentName
}

// SetIntensity overrides the intensity, clamping it to [0, 1].
func (c *EffectComponent) SetIntensity(intensity float32) {
	c.Intensity.Override(common.Clamp01(intensity))
}

// IsActive reports whether the component would contribute an effect at full influence.
func (c *EffectComponent) IsActive() bool {
	return c.Enabled.Value() && c.Intensity.Value() > 0 && c.Material.Value() != nil
}

// IsTileCompatible reports whether the effect can run inside a tiled pass. Full-screen
// effects read neighbouring pixels, so never.
func (c *EffectComponent) IsTileCompatible() bool {
	return false
}

// EffectComponentBuilderOption configures an EffectComponent during construction.
// Every option marks its parameter as overridden.
type EffectComponentBuilderOption func(*EffectComponent)

// WithEnabled sets the enabled flag.
func WithEnabled(enabled bool) EffectComponentBuilderOption {
	return func(c *EffectComponent) {
		c.Enabled.Override(enabled)
	}
}

// WithIntensity sets the intensity, clamped to [0, 1].
func WithIntensity(intensity float32) EffectComponentBuilderOption {
	return func(c *EffectComponent) {
		c.SetIntensity(intensity)
	}
}

// WithInjectionPoint sets where the effect runs.
func WithInjectionPoint(p InjectionPoint) EffectComponentBuilderOption {
	return func(c *EffectComponent) {
		c.InjectionPoint.Override(p)
	}
}

// WithRequirements sets the camera textures the material needs.
func WithRequirements(in scheduler.PassInput) EffectComponentBuilderOption {
	return func(c *EffectComponent) {
		c.Requirements.Override(in)
	}
}

// WithFetchColorBuffer sets whether the active color target is copied for sampling.
func WithFetchColorBuffer(fetch bool) EffectComponentBuilderOption {
	return func(c *EffectComponent) {
		c.FetchColorBuffer.Override(fetch)
	}
}

// WithBindDepthStencil sets whether the depth-stencil target is bound.
func WithBindDepthStencil(bind bool) EffectComponentBuilderOption {
	return func(c *EffectComponent) {
		c.BindDepthStencil.Override(bind)
	}
}

// WithMaterial sets the material and the pass drawn.
//
// Parameters:
//   - m: the material
//   - passIndex: the material pass
//
// Returns:
//   - EffectComponentBuilderOption: a function that applies the material option
func WithMaterial(m material.Material, passIndex int) EffectComponentBuilderOption {
	return func(c *EffectComponent) {
		c.Material.Override(m)
		c.PassIndex.Override(passIndex)
	}
}
