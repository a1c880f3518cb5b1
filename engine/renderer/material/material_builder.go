package material

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithPass is an option builder that appends a named pass backed by pipelineKey.
//
// Parameters:
//   - name: the pass display name
//   - pipelineKey: the render pipeline executing the pass
//
// Returns:
//   - MaterialBuilderOption: a function that appends the pass to a material
func WithPass(name, pipelineKey string) MaterialBuilderOption {
	return func(m *material) {
		m.passes = append(m.passes, Pass{Name: name, PipelineKey: pipelineKey})
	}
}

// WithPassCount is an option builder that gives the material n anonymous passes.
// The passes carry no pipeline key, so they resolve to the material name.
//
// Parameters:
//   - n: the number of passes
//
// Returns:
//   - MaterialBuilderOption: a function that sets the passes on a material
func WithPassCount(n int) MaterialBuilderOption {
	return func(m *material) {
		m.passes = m.passes[:0]
		for i := 0; i < n; i++ {
			m.passes = append(m.passes, Pass{})
		}
	}
}
