// Package fullscreen implements volume-driven full-screen effect passes.
//
// Effect modules turn the volumes visible to a camera into EffectInstances. A Pass
// collects the instances targeting its injection point, validates and sorts them, and
// declares one optional color copy plus one full-screen triangle draw per effect. A
// Feature owns the two passes (before and after post-processing) and enqueues them on
// the host scheduler when they have work for the camera.
package fullscreen

import (
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/frame"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer/graph"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/scheduler"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/volume"
)

// InjectionPoint is the authored choice of where an effect runs.
type InjectionPoint int

const (
	// InjectionBeforePostProcessing runs the effect before the post-processing stack.
	InjectionBeforePostProcessing InjectionPoint = iota

	// InjectionAfterPostProcessing runs the effect after the post-processing stack.
	InjectionAfterPostProcessing
)

func (p InjectionPoint) String() string {
	if p == InjectionAfterPostProcessing {
		return "AfterPostProcessing"
	}
	return "BeforePostProcessing"
}

// RenderPassEvent maps an authored injection point to the pass event that executes it.
// Only InjectionAfterPostProcessing maps to the after stage; every other value,
// including ones added later, falls through to the before stage.
//
// Returns:
//   - scheduler.RenderPassEvent: the pass event
func (p InjectionPoint) RenderPassEvent() scheduler.RenderPassEvent {
	switch p {
	case InjectionAfterPostProcessing:
		return scheduler.AfterRenderingPostProcessing
	default:
		return scheduler.BeforeRenderingPostProcessing
	}
}

// EffectInstance is one effect resolved for the current camera frame.
// Instances are rebuilt every frame and never outlive it.
type EffectInstance struct {
	// InjectionPoint is the pass event the effect executes at.
	InjectionPoint scheduler.RenderPassEvent
	// SortingPriority orders effects within a pass, ascending.
	SortingPriority float32

	Material  material.Material
	PassIndex int

	// Intensity is the authored intensity scaled by the source volume's influence. Always > 0.
	Intensity float32

	FetchColorBuffer bool
	Requirements     scheduler.PassInput
	BindDepthStencil bool

	// Volume, Profile and Component identify where the effect came from. They are
	// references for diagnostics and module bookkeeping only.
	Volume    volume.Volume
	Profile   volume.Profile
	Component volume.Component
}

// Module produces effect instances of one kind and writes their per-draw shader properties.
type Module interface {
	// CollectSettings appends the instances this module contributes for data's camera.
	//
	// Parameters:
	//   - data: the camera frame context
	//   - out: the slice to append to
	//
	// Returns:
	//   - []EffectInstance: out with this module's instances appended
	CollectSettings(data *frame.Data, out []EffectInstance) []EffectInstance

	// ApplyMaterialProperties writes inst's shader properties into props right before its draw.
	//
	// Parameters:
	//   - inst: the instance being drawn
	//   - props: the shared per-draw property block
	ApplyMaterialProperties(inst *EffectInstance, props *graph.PropertyBlock)
}
