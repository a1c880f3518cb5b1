package fullscreen

import "go.uber.org/zap"

// FeatureBuilderOption is a function that configures a Feature during construction.
type FeatureBuilderOption func(*feature)

// WithRegistry sets the modules the feature's passes collect from.
//
// Parameters:
//   - r: the module registry
//
// Returns:
//   - FeatureBuilderOption: a function that applies the registry option to a feature
func WithRegistry(r *Registry) FeatureBuilderOption {
	return func(f *feature) {
		f.registry = r
	}
}

// WithDiagnostics sets where the feature's passes report material reuse conflicts.
// Without it, diagnostics are logged through the feature's logger.
//
// Parameters:
//   - d: the diagnostics sink
//
// Returns:
//   - FeatureBuilderOption: a function that applies the diagnostics option to a feature
func WithDiagnostics(d Diagnostics) FeatureBuilderOption {
	return func(f *feature) {
		f.diagnostics = d
	}
}

// WithConfig sets the feature settings.
//
// Parameters:
//   - cfg: the settings
//
// Returns:
//   - FeatureBuilderOption: a function that applies the config to a feature
func WithConfig(cfg Config) FeatureBuilderOption {
	return func(f *feature) {
		f.config = cfg
	}
}

// WithLogger sets the feature logger.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - FeatureBuilderOption: a function that applies the logger to a feature
func WithLogger(logger *zap.Logger) FeatureBuilderOption {
	return func(f *feature) {
		if logger != nil {
			f.logger = logger
		}
	}
}
