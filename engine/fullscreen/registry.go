package fullscreen

import (
	"errors"
	"sync"
)

// ErrRegistryInitialized is returned when the default registry is installed twice.
var ErrRegistryInitialized = errors.New("fullscreen: default registry already initialized")

// Registry is an immutable, ordered list of effect modules. Passes iterate it every
// frame and never depend on a module's concrete kind.
type Registry struct {
	modules []Module
}

// NewRegistry creates a Registry from modules, dropping nil entries.
//
// Parameters:
//   - modules: the modules in collection order
//
// Returns:
//   - *Registry: the new registry
func NewRegistry(modules ...Module) *Registry {
	r := &Registry{modules: make([]Module, 0, len(modules))}
	for _, m := range modules {
		if m != nil {
			r.modules = append(r.modules, m)
		}
	}
	return r
}

// Modules returns the registered modules. The slice is shared and must not be modified.
func (r *Registry) Modules() []Module {
	if r == nil {
		return nil
	}
	return r.modules
}

// Len returns the number of registered modules.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.modules)
}

var (
	defaultMu       sync.Mutex
	defaultRegistry *Registry
)

// InitDefaultRegistry installs the process-wide registry used by features built without
// WithRegistry. It may only be called once.
//
// Parameters:
//   - modules: the modules in collection order
//
// Returns:
//   - error: ErrRegistryInitialized if a default registry already exists
func InitDefaultRegistry(modules ...Module) error {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultRegistry != nil {
		return ErrRegistryInitialized
	}
	defaultRegistry = NewRegistry(modules...)
	return nil
}

// DefaultRegistry returns the process-wide registry, or an empty one if none was installed.
func DefaultRegistry() *Registry {
	defaultMu.Lock()
	defer defaultMu.Unlock()

	if defaultRegistry == nil {
		return NewRegistry()
	}
	return defaultRegistry
}
