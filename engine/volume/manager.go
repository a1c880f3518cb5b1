package volume

import "sync"

// managerImpl is the implementation of the Manager interface.
type managerImpl struct {
	mu      *sync.Mutex
	volumes []Volume
	scratch []Volume
}

// Manager tracks the volumes present in a scene and answers per-camera layer queries.
type Manager interface {
	// Register adds a volume. Registering the same volume twice is a no-op.
	//
	// Parameters:
	//   - v: the volume to add
	Register(v Volume)

	// Unregister removes a volume if present.
	//
	// Parameters:
	//   - v: the volume to remove
	Unregister(v Volume)

	// Volumes returns the registered volumes whose layer is in mask, in registration order.
	// The returned slice is reused by the next call and must not be retained.
	//
	// Parameters:
	//   - mask: the camera's volume layer mask
	//
	// Returns:
	//   - []Volume: the matching volumes
	Volumes(mask uint32) []Volume

	// Len returns the number of registered volumes.
	Len() int
}

var _ Manager = &managerImpl{}

// NewManager creates an empty volume manager.
//
// Parameters:
//   - volumes: volumes to register immediately
//
// Returns:
//   - Manager: the new manager
func NewManager(volumes ...Volume) Manager {
	m := &managerImpl{mu: &sync.Mutex{}}
	for _, v := range volumes {
		m.Register(v)
	}
	return m
}

func (m *managerImpl) Register(v Volume) {
	if v == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.volumes {
		if existing == v {
			return
		}
	}
	m.volumes = append(m.volumes, v)
}

func (m *managerImpl) Unregister(v Volume) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, existing := range m.volumes {
		if existing == v {
			m.volumes = append(m.volumes[:i], m.volumes[i+1:]...)
			return
		}
	}
}

func (m *managerImpl) Volumes(mask uint32) []Volume {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.scratch = m.scratch[:0]
	for _, v := range m.volumes {
		if v.InMask(mask) {
			m.scratch = append(m.scratch, v)
		}
	}
	return m.scratch
}

func (m *managerImpl) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.volumes)
}
