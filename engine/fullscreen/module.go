package fullscreen

import (
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/frame"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer/graph"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/volume"
)

// ComponentLookup finds the effect settings a module reads from a profile.
// It returns the settings, the component that owns them (recorded on the instance),
// and whether the profile carries one.
type ComponentLookup func(p volume.Profile) (settings *EffectComponent, source volume.Component, ok bool)

// LookupEffectComponent is the default ComponentLookup: the profile's EffectComponent.
func LookupEffectComponent(p volume.Profile) (*EffectComponent, volume.Component, bool) {
	c, ok := volume.Get[*EffectComponent](p)
	if !ok || c == nil {
		return nil, nil, false
	}
	return c, c, true
}

type passIndexKey struct {
	profile   volume.Profile
	material  material.Material
	passIndex int
}

// volumeModule is the volume-driven implementation of the Module interface.
type volumeModule struct {
	manager     volume.Manager
	lookup      ComponentLookup
	diagnostics Diagnostics
	warn        bool

	warnedFrame uint64
	warned      map[passIndexKey]struct{}
}

var _ Module = &volumeModule{}

// NewVolumeModule creates a Module that turns the volumes in manager into effect instances.
//
// Parameters:
//   - manager: the scene's volume manager
//   - options: variadic list of VolumeModuleBuilderOption functions
//
// Returns:
//   - Module: the new module
func NewVolumeModule(manager volume.Manager, options ...VolumeModuleBuilderOption) Module {
	m := &volumeModule{
		manager:     manager,
		lookup:      LookupEffectComponent,
		diagnostics: NewLogDiagnostics(nil),
		warn:        true,
		warned:      make(map[passIndexKey]struct{}),
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *volumeModule) CollectSettings(data *frame.Data, out []EffectInstance) []EffectInstance {
	if data == nil || data.Camera == nil || m.manager == nil {
		return out
	}

	volumes := m.manager.Volumes(data.Camera.VolumeLayerMask())
	if len(volumes) == 0 {
		return out
	}

	m.beginFrame(data.Index)
	trigger := data.Camera.TriggerPosition()

	for _, v := range volumes {
		if v == nil || !v.Enabled() || v.Weight() <= 0 || v.Profile() == nil {
			continue
		}

		settings, source, ok := m.lookup(v.Profile())
		if !ok {
			continue
		}

		mat := settings.Material.Value()
		if !settings.Enabled.Value() || mat == nil {
			continue
		}

		passIndex := settings.PassIndex.Value()
		if passIndex < 0 || passIndex >= mat.PassCount() {
			m.reportPassIndex(v.Profile(), mat, passIndex)
			continue
		}

		intensity := settings.Intensity.Value() * VolumeInfluence(v, trigger)
		if !(intensity > 0) {
			continue
		}

		out = append(out, EffectInstance{
			InjectionPoint:   settings.InjectionPoint.Value().RenderPassEvent(),
			SortingPriority:  v.Priority(),
			Material:         mat,
			PassIndex:        passIndex,
			Intensity:        intensity,
			FetchColorBuffer: settings.FetchColorBuffer.Value(),
			Requirements:     settings.Requirements.Value(),
			BindDepthStencil: settings.BindDepthStencil.Value(),
			Volume:           v,
			Profile:          v.Profile(),
			Component:        source,
		})
	}
	return out
}

func (m *volumeModule) ApplyMaterialProperties(inst *EffectInstance, props *graph.PropertyBlock) {
	props.SetFloat(graph.PropertyIntensity, inst.Intensity)
}

// beginFrame resets pass index rate limiting when a new frame starts.
func (m *volumeModule) beginFrame(index uint64) {
	if index != m.warnedFrame {
		clear(m.warned)
		m.warnedFrame = index
	}
}

func (m *volumeModule) reportPassIndex(profile volume.Profile, mat material.Material, passIndex int) {
	if !m.warn || m.diagnostics == nil {
		return
	}
	key := passIndexKey{profile: profile, material: mat, passIndex: passIndex}
	if _, done := m.warned[key]; done {
		return
	}
	m.warned[key] = struct{}{}
	m.diagnostics.PassIndexOutOfBounds(profile, mat, passIndex)
}
