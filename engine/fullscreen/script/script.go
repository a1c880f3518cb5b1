// Package script provides a full-screen effect module whose material properties are
// computed by a Lua chunk stored on the volume profile.
package script

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-volume-pass/engine/frame"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/fullscreen"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer/graph"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/volume"
	"github.com/go-gl/mathgl/mgl32"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// ComponentName identifies Component on a profile.
const ComponentName = "ScriptedFullScreenVolumePass"

// Component is an effect configuration with a Lua chunk that writes extra material
// properties before every draw. The chunk sees the globals intensity and time and may
// call set_float(name, v) and set_vector(name, x, y, z, w).
type Component struct {
	*fullscreen.EffectComponent

	// Source is the Lua chunk.
	Source volume.Parameter[string]
}

var _ volume.Component = &Component{}

// NewComponent creates a scripted component.
//
// Parameters:
//   - source: the Lua chunk
//   - options: options applied to the embedded effect configuration
//
// Returns:
//   - *Component: the new component
func NewComponent(source string, options ...fullscreen.EffectComponentBuilderOption) *Component {
	return &Component{
		EffectComponent: fullscreen.NewEffectComponent(options...),
		Source:          volume.NewParameter(source, true),
	}
}

func (c *Component) ComponentName() string {
	return ComponentName
}

// Lookup is the fullscreen.ComponentLookup for scripted components.
func Lookup(p volume.Profile) (*fullscreen.EffectComponent, volume.Component, bool) {
	c, ok := volume.Get[*Component](p)
	if !ok || c == nil || c.EffectComponent == nil {
		return nil, nil, false
	}
	return c.EffectComponent, c, true
}

// Module is a fullscreen.Module backed by a Lua state. Close it when done.
type Module interface {
	fullscreen.Module

	// Close releases the Lua state.
	Close()
}

// module is the implementation of the Module interface.
type module struct {
	volumes fullscreen.Module
	state   *lua.LState
	logger  *zap.Logger

	volumeOptions []fullscreen.VolumeModuleBuilderOption

	chunks map[string]*lua.LFunction
	failed map[string]struct{}
	props  *graph.PropertyBlock
	time   float32
}

var _ Module = &module{}

var luaLibs = []struct {
	name string
	open lua.LGFunction
}{
	{lua.BaseLibName, lua.OpenBase},
	{lua.MathLibName, lua.OpenMath},
	{lua.StringLibName, lua.OpenString},
	{lua.TabLibName, lua.OpenTable},
}

// NewModule creates a scripted module reading the volumes of manager.
// Only the base, math, string and table libraries are available to scripts.
//
// Parameters:
//   - manager: the scene's volume manager
//   - options: variadic list of ModuleBuilderOption functions
//
// Returns:
//   - Module: the new module
//   - error: if the Lua state cannot be initialized
func NewModule(manager volume.Manager, options ...ModuleBuilderOption) (Module, error) {
	m := &module{
		logger: zap.NewNop(),
		chunks: make(map[string]*lua.LFunction),
		failed: make(map[string]struct{}),
	}
	for _, opt := range options {
		opt(m)
	}

	volumeOptions := append([]fullscreen.VolumeModuleBuilderOption{}, m.volumeOptions...)
	volumeOptions = append(volumeOptions, fullscreen.WithComponentLookup(Lookup))
	m.volumes = fullscreen.NewVolumeModule(manager, volumeOptions...)

	m.state = lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range luaLibs {
		err := m.state.CallByParam(lua.P{Fn: m.state.NewFunction(lib.open), NRet: 0, Protect: true}, lua.LString(lib.name))
		if err != nil {
			m.state.Close()
			return nil, fmt.Errorf("failed to open lua library %s: %w", lib.name, err)
		}
	}
	m.state.SetGlobal("set_float", m.state.NewFunction(m.setFloat))
	m.state.SetGlobal("set_vector", m.state.NewFunction(m.setVector))
	return m, nil
}

func (m *module) CollectSettings(data *frame.Data, out []fullscreen.EffectInstance) []fullscreen.EffectInstance {
	if data != nil {
		m.time = data.Time
	}
	return m.volumes.CollectSettings(data, out)
}

func (m *module) ApplyMaterialProperties(inst *fullscreen.EffectInstance, props *graph.PropertyBlock) {
	m.volumes.ApplyMaterialProperties(inst, props)

	c, ok := inst.Component.(*Component)
	if !ok || c == nil || m.state == nil {
		return
	}
	source := c.Source.Value()
	if source == "" {
		return
	}

	fn, err := m.compile(source)
	if err != nil {
		m.reportOnce(source, "failed to compile effect script", inst, err)
		return
	}

	m.props = props
	defer func() { m.props = nil }()

	m.state.SetGlobal("intensity", lua.LNumber(inst.Intensity))
	m.state.SetGlobal("time", lua.LNumber(m.time))
	if err := m.state.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}); err != nil {
		m.reportOnce(source, "effect script failed", inst, err)
	}
}

func (m *module) Close() {
	if m.state != nil {
		m.state.Close()
		m.state = nil
	}
	clear(m.chunks)
}

func (m *module) compile(source string) (*lua.LFunction, error) {
	if fn, ok := m.chunks[source]; ok {
		return fn, nil
	}
	fn, err := m.state.LoadString(source)
	if err != nil {
		return nil, err
	}
	m.chunks[source] = fn
	return fn, nil
}

// reportOnce logs the first failure of each script source.
func (m *module) reportOnce(source, msg string, inst *fullscreen.EffectInstance, err error) {
	if _, done := m.failed[source]; done {
		return
	}
	m.failed[source] = struct{}{}

	volumeName := "<none>"
	if inst.Volume != nil {
		volumeName = inst.Volume.Name()
	}
	m.logger.Warn(msg, zap.String("volume", volumeName), zap.Error(err))
}

// setFloat implements set_float(name, value).
func (m *module) setFloat(L *lua.LState) int {
	name := L.CheckString(1)
	v := L.CheckNumber(2)
	if m.props != nil {
		m.props.SetFloat(name, float32(v))
	}
	return 0
}

// setVector implements set_vector(name, x, y, z, w). Missing components default to 0.
func (m *module) setVector(L *lua.LState) int {
	name := L.CheckString(1)
	var v mgl32.Vec4
	for i := range v {
		v[i] = float32(L.OptNumber(i+2, 0))
	}
	if m.props != nil {
		m.props.SetVector(name, v)
	}
	return 0
}
