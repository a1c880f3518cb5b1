package material

import "github.com/Carmen-Shannon/oxy-volume-pass/common"

// Pass is one shader pass of a material.
type Pass struct {
	// Name is the pass display name, e.g. "Blit" or "Composite".
	Name string

	// PipelineKey identifies the GPU render pipeline that executes this pass.
	PipelineKey string
}

// material is the implementation of the Material interface.
type material struct {
	name   string
	passes []Pass
}

// Material defines the interface for a full-screen effect material: a named shader
// with one or more passes, each backed by a host render pipeline.
//
// Materials are compared by identity. Two effects referencing the same Material share
// all of its GPU-side state, which is why the full-screen pass warns when a material is
// reached from more than one volume source.
type Material interface {
	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// PassCount retrieves the number of shader passes the material exposes.
	//
	// Returns:
	//   - int: the pass count
	PassCount() int

	// Pass retrieves the pass at index.
	//
	// Parameters:
	//   - index: the pass index, must be in [0, PassCount())
	//
	// Passes without an explicit pipeline key fall back to the material name.
	//
	// Returns:
	//   - Pass: the pass description
	//   - bool: false if index is out of range
	Pass(index int) (Pass, bool)

	// AddPass appends a pass to the material.
	//
	// Parameters:
	//   - p: the pass to append
	AddPass(p Pass)
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) PassCount() int {
	return len(m.passes)
}

func (m *material) Pass(index int) (Pass, bool) {
	if index < 0 || index >= len(m.passes) {
		return Pass{}, false
	}
	p := m.passes[index]
	p.PipelineKey = common.Coalesce(p.PipelineKey, m.name)
	return p, true
}

func (m *material) AddPass(p Pass) {
	m.passes = append(m.passes, p)
}
