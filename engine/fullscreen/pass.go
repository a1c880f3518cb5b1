package fullscreen

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"

	"github.com/Carmen-Shannon/oxy-volume-pass/common"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/frame"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer/graph"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/scheduler"
)

const (
	copyPassName = "Copy Active Color"
	drawPassName = "Apply Fullscreen Effect "

	fullscreenTriangleVertices = 3
)

// sharedProperties is the single per-draw property block used by every pass. Render funcs
// run one at a time during graph execution, and each clears it before writing.
var sharedProperties = graph.NewPropertyBlock()

// activeEffect pairs an instance with the module that produced it.
type activeEffect struct {
	module   Module
	instance EffectInstance
}

// Pass collects the effect instances targeting one injection point and records them as
// a color copy plus one full-screen draw per effect.
type Pass struct {
	event       scheduler.RenderPassEvent
	name        string
	registry    *Registry
	diagnostics Diagnostics
	config      Config

	collected []EffectInstance
	active    []activeEffect
	firstSeen map[material.Material]Source
	conflicts map[material.Material]struct{}

	input                scheduler.PassInput
	fetchColor           bool
	requiresIntermediate bool
}

var _ scheduler.RenderPass = &Pass{}

// NewPass creates a Pass for event.
//
// Parameters:
//   - event: the injection point the pass serves
//   - options: variadic list of PassBuilderOption functions
//
// Returns:
//   - *Pass: the new pass
func NewPass(event scheduler.RenderPassEvent, options ...PassBuilderOption) *Pass {
	p := &Pass{
		event:       event,
		name:        "Fullscreen Volume Pass (" + event.String() + ")",
		config:      DefaultConfig(),
		diagnostics: NewLogDiagnostics(nil),
		firstSeen:   make(map[material.Material]Source),
		conflicts:   make(map[material.Material]struct{}),
	}
	for _, opt := range options {
		opt(p)
	}
	if p.registry == nil {
		p.registry = DefaultRegistry()
	}
	return p
}

func (p *Pass) Name() string {
	return p.name
}

func (p *Pass) Event() scheduler.RenderPassEvent {
	return p.event
}

func (p *Pass) Input() scheduler.PassInput {
	return p.input
}

func (p *Pass) RequiresIntermediateTexture() bool {
	return p.requiresIntermediate
}

// Active returns the instances prepared for the current camera, in draw order.
// The returned slice is a copy.
func (p *Pass) Active() []EffectInstance {
	out := make([]EffectInstance, len(p.active))
	for i := range p.active {
		out[i] = p.active[i].instance
	}
	return out
}

// PrepareForCamera collects the effects of every registered module for data's camera,
// keeps the ones targeting this pass's event, checks material reuse and sorts them by
// priority. It also derives the pass input requirements.
//
// Parameters:
//   - data: the camera frame context
//
// Returns:
//   - bool: true if at least one effect will be drawn
func (p *Pass) PrepareForCamera(data *frame.Data) bool {
	p.reset()
	if data == nil || p.registry == nil {
		return false
	}

	for _, module := range p.registry.Modules() {
		p.collected = module.CollectSettings(data, p.collected[:0])
		for i := range p.collected {
			inst := &p.collected[i]
			if inst.InjectionPoint != p.event || !(inst.Intensity > 0) || !validPass(inst) {
				continue
			}

			p.validateMaterialReuse(inst)
			p.input |= inst.Requirements
			p.fetchColor = p.fetchColor || inst.FetchColorBuffer
			p.active = append(p.active, activeEffect{module: module, instance: *inst})
		}
	}
	clear(p.collected)
	p.collected = p.collected[:0]

	if len(p.active) == 0 {
		return false
	}

	p.requiresIntermediate = p.fetchColor || (p.config.ForceIntermediateWithPostProcess && data.PostProcessEnabled())
	slices.SortStableFunc(p.active, func(a, b activeEffect) int {
		return cmp.Compare(a.instance.SortingPriority, b.instance.SortingPriority)
	})
	return true
}

// RecordRenderGraph declares the copy and draw sub-passes for the prepared effects.
// Nothing is declared when no effect is prepared, the active color target is missing, or
// an effect needs to fetch a color target that is the backbuffer.
//
// Parameters:
//   - g: the frame graph being built
//   - data: the camera frame context
func (p *Pass) RecordRenderGraph(g graph.RenderGraph, data *frame.Data) {
	defer p.releaseActive()

	if len(p.active) == 0 || data == nil || g == nil {
		return
	}
	res := &data.Resources
	if !res.ActiveColor.IsValid() {
		return
	}
	if p.fetchColor && res.IsActiveTargetBackBuffer {
		return
	}

	scratch := graph.NullHandle
	if p.fetchColor {
		scratch = g.CreateTexture(res.CameraTargetDesc.ColorOnly(p.config.ScratchTextureName))
		if p.config.CopyMode == CopyOnce {
			addCopyPass(g, copyPassName, res.ActiveColor, scratch)
		}
	}

	for i := range p.active {
		effect := p.active[i]
		source := graph.NullHandle
		if effect.instance.FetchColorBuffer {
			source = scratch
			if p.config.CopyMode == CopyPerEffect {
				addCopyPass(g, copyPassName+" "+strconv.Itoa(i), res.ActiveColor, scratch)
			}
		}
		addDrawPass(g, drawPassName+strconv.Itoa(i), res, effect, source)
	}
}

// Dispose drops every per-frame buffer and the registry reference.
func (p *Pass) Dispose() {
	p.reset()
	p.active = nil
	p.collected = nil
	p.registry = nil
}

func (p *Pass) String() string {
	return fmt.Sprintf("%s[%d effects]", p.name, len(p.active))
}

func (p *Pass) reset() {
	p.releaseActive()
	clear(p.firstSeen)
	clear(p.conflicts)
	p.input = scheduler.InputNone
	p.fetchColor = false
	p.requiresIntermediate = false
}

func (p *Pass) releaseActive() {
	clear(p.active)
	p.active = p.active[:0]
}

// validateMaterialReuse reports a material that is reached from two different volume sources.
// Effects sharing a material also share its property state, so the later draw can see
// values written for the earlier one. The check never excludes an instance.
func (p *Pass) validateMaterialReuse(inst *EffectInstance) {
	current := Source{Volume: inst.Volume, Profile: inst.Profile}
	first, seen := p.firstSeen[inst.Material]
	if !seen {
		p.firstSeen[inst.Material] = current
		return
	}
	if first == current {
		return
	}
	if _, reported := p.conflicts[inst.Material]; reported {
		return
	}
	p.conflicts[inst.Material] = struct{}{}
	if p.diagnostics != nil {
		p.diagnostics.MaterialConflict(inst.Material, first, current)
	}
}

func validPass(inst *EffectInstance) bool {
	return inst.Material != nil && inst.PassIndex >= 0 && inst.PassIndex < inst.Material.PassCount()
}

func addCopyPass(g graph.RenderGraph, name string, src, dst graph.TextureHandle) {
	b := g.AddRasterPass(name)
	b.UseTexture(src, graph.AccessRead)
	b.SetRenderAttachment(dst, 0, graph.AccessWrite)
	b.SetRenderFunc(func(ctx graph.RasterContext) {
		ctx.Cmd.BlitTexture(src, common.FullCoverageScaleBias)
	})
	b.Close()
}

func addDrawPass(g graph.RenderGraph, name string, res *frame.ResourceData, effect activeEffect, source graph.TextureHandle) {
	inst := effect.instance
	b := g.AddRasterPass(name)

	if source.IsValid() {
		b.UseTexture(source, graph.AccessRead)
	}
	useIfValid := func(h graph.TextureHandle) {
		if h.IsValid() {
			b.UseTexture(h, graph.AccessRead)
		}
	}
	if inst.Requirements.Has(scheduler.InputColor) {
		useIfValid(res.CameraOpaque)
	}
	if inst.Requirements.Has(scheduler.InputDepth) {
		useIfValid(res.CameraDepth)
	}
	if inst.Requirements.Has(scheduler.InputMotion) {
		useIfValid(res.MotionVectorColor)
		useIfValid(res.MotionVectorDepth)
	}
	if inst.Requirements.Has(scheduler.InputNormal) {
		useIfValid(res.CameraNormals)
	}

	b.SetRenderAttachment(res.ActiveColor, 0, graph.AccessWrite)
	if inst.BindDepthStencil && res.ActiveDepth.IsValid() {
		b.SetRenderAttachmentDepth(res.ActiveDepth, graph.AccessWrite)
	}

	module := effect.module
	b.SetRenderFunc(func(ctx graph.RasterContext) {
		sharedProperties.Clear()
		if source.IsValid() {
			sharedProperties.SetTexture(graph.PropertyBlitTexture, source)
		}
		sharedProperties.SetVector(graph.PropertyBlitScaleBias, common.FullCoverageScaleBias)
		module.ApplyMaterialProperties(&inst, sharedProperties)
		ctx.Cmd.DrawProcedural(inst.Material, inst.PassIndex, graph.TopologyTriangles, fullscreenTriangleVertices, 1, sharedProperties)
	})
	b.Close()
}
