package fullscreen

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-volume-pass/engine/volume"
)

func TestNewRegistryDropsNil(t *testing.T) {
	m := NewVolumeModule(volume.NewManager())
	r := NewRegistry(nil, m, nil)
	if r.Len() != 1 || r.Modules()[0] != m {
		t.Errorf("Modules = %v", r.Modules())
	}

	var empty *Registry
	if empty.Len() != 0 || empty.Modules() != nil {
		t.Error("nil registry must be empty")
	}
}

func TestDefaultRegistry(t *testing.T) {
	defaultMu.Lock()
	saved := defaultRegistry
	defaultRegistry = nil
	defaultMu.Unlock()
	t.Cleanup(func() {
		defaultMu.Lock()
		defaultRegistry = saved
		defaultMu.Unlock()
	})

	if DefaultRegistry().Len() != 0 {
		t.Error("uninitialized default registry must be empty")
	}

	m := NewVolumeModule(volume.NewManager())
	if err := InitDefaultRegistry(m); err != nil {
		t.Fatalf("InitDefaultRegistry: %v", err)
	}
	if err := InitDefaultRegistry(m); !errors.Is(err, ErrRegistryInitialized) {
		t.Errorf("second InitDefaultRegistry = %v, want ErrRegistryInitialized", err)
	}
	if DefaultRegistry().Len() != 1 {
		t.Errorf("DefaultRegistry().Len() = %d, want 1", DefaultRegistry().Len())
	}

	p := NewPass(0)
	if p.registry.Len() != 1 {
		t.Error("pass without registry option must use the default registry")
	}
}
