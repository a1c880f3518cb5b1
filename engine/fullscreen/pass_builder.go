package fullscreen

// PassBuilderOption is a function that configures a Pass during construction.
type PassBuilderOption func(*Pass)

// WithPassRegistry sets the modules the pass collects from. Without it the pass uses
// DefaultRegistry at construction time.
//
// Parameters:
//   - r: the module registry
//
// Returns:
//   - PassBuilderOption: a function that applies the registry option to a pass
func WithPassRegistry(r *Registry) PassBuilderOption {
	return func(p *Pass) {
		p.registry = r
	}
}

// WithPassDiagnostics sets where material reuse conflicts are reported.
//
// Parameters:
//   - d: the diagnostics sink
//
// Returns:
//   - PassBuilderOption: a function that applies the diagnostics option to a pass
func WithPassDiagnostics(d Diagnostics) PassBuilderOption {
	return func(p *Pass) {
		p.diagnostics = d
	}
}

// WithPassConfig sets the copy and intermediate target policies.
//
// Parameters:
//   - cfg: the settings
//
// Returns:
//   - PassBuilderOption: a function that applies the config to a pass
func WithPassConfig(cfg Config) PassBuilderOption {
	return func(p *Pass) {
		p.config = cfg
	}
}
