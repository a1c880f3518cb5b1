package volume

// Component is a typed block of authored settings stored on a Profile.
// Effect kinds define their own component types and fetch them with Get.
type Component interface {
	// ComponentName returns a stable identifier for the component type.
	ComponentName() string
}

// profileImpl is the implementation of the Profile interface.
type profileImpl struct {
	name       string
	components []Component
}

// Profile is a named, shareable collection of components attached to one or more volumes.
type Profile interface {
	// Name returns the profile's display name.
	Name() string

	// Components returns the components stored on the profile in insertion order.
	Components() []Component

	// Add appends a component to the profile.
	// A profile holds at most one component per ComponentName; adding a second replaces the first.
	//
	// Parameters:
	//   - c: the component to add
	Add(c Component)
}

var _ Profile = &profileImpl{}

// NewProfile creates a named profile holding the given components.
//
// Parameters:
//   - name: the profile display name
//   - components: the initial components
//
// Returns:
//   - Profile: the new profile
func NewProfile(name string, components ...Component) Profile {
	p := &profileImpl{name: name}
	for _, c := range components {
		p.Add(c)
	}
	return p
}

func (p *profileImpl) Name() string {
	return p.name
}

func (p *profileImpl) Components() []Component {
	return p.components
}

func (p *profileImpl) Add(c Component) {
	if c == nil {
		return
	}
	for i, existing := range p.components {
		if existing.ComponentName() == c.ComponentName() {
			p.components[i] = c
			return
		}
	}
	p.components = append(p.components, c)
}

// Get returns the first component of type T stored on p.
//
// Parameters:
//   - p: the profile to search, may be nil
//
// Returns:
//   - T: the component, or the zero value if absent
//   - bool: true if a component of type T was found
func Get[T Component](p Profile) (T, bool) {
	var zero T
	if p == nil {
		return zero, false
	}
	for _, c := range p.Components() {
		if typed, ok := c.(T); ok {
			return typed, true
		}
	}
	return zero, false
}
