package fullscreen

// VolumeModuleBuilderOption is a function that configures a volume module during construction.
type VolumeModuleBuilderOption func(*volumeModule)

// WithComponentLookup replaces how the module finds effect settings on a profile.
// Module kinds that wrap EffectComponent in their own component type use this to
// reuse the volume collection logic.
//
// Parameters:
//   - lookup: the lookup function
//
// Returns:
//   - VolumeModuleBuilderOption: a function that applies the lookup option to a module
func WithComponentLookup(lookup ComponentLookup) VolumeModuleBuilderOption {
	return func(m *volumeModule) {
		if lookup != nil {
			m.lookup = lookup
		}
	}
}

// WithModuleDiagnostics sets where the module reports invalid pass indices.
//
// Parameters:
//   - d: the diagnostics sink
//
// Returns:
//   - VolumeModuleBuilderOption: a function that applies the diagnostics option to a module
func WithModuleDiagnostics(d Diagnostics) VolumeModuleBuilderOption {
	return func(m *volumeModule) {
		m.diagnostics = d
	}
}

// WithModuleConfig applies the module-level settings of cfg.
//
// Parameters:
//   - cfg: the feature configuration
//
// Returns:
//   - VolumeModuleBuilderOption: a function that applies the config to a module
func WithModuleConfig(cfg Config) VolumeModuleBuilderOption {
	return func(m *volumeModule) {
		m.warn = cfg.WarnPassIndex
	}
}
