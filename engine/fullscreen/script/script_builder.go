package script

import (
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/fullscreen"
	"go.uber.org/zap"
)

// ModuleBuilderOption is a function that configures a scripted module during construction.
type ModuleBuilderOption func(*module)

// WithLogger sets the logger used for script failures.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - ModuleBuilderOption: a function that applies the logger to the module
func WithLogger(logger *zap.Logger) ModuleBuilderOption {
	return func(m *module) {
		if logger != nil {
			m.logger = logger.Named("script")
		}
	}
}

// WithVolumeOptions forwards options to the underlying volume collection.
// A component lookup passed here is replaced by Lookup.
//
// Parameters:
//   - options: volume module options
//
// Returns:
//   - ModuleBuilderOption: a function that applies the options to the module
func WithVolumeOptions(options ...fullscreen.VolumeModuleBuilderOption) ModuleBuilderOption {
	return func(m *module) {
		m.volumeOptions = append(m.volumeOptions, options...)
	}
}
