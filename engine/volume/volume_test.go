package volume

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestBoxContainsAndClosestPoint(t *testing.T) {
	box := NewBox(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{2, 2, 2})

	cases := []struct {
		name    string
		p       mgl32.Vec3
		inside  bool
		closest mgl32.Vec3
	}{
		{"center", mgl32.Vec3{0, 0, 0}, true, mgl32.Vec3{0, 0, 0}},
		{"on face", mgl32.Vec3{1, 0, 0}, true, mgl32.Vec3{1, 0, 0}},
		{"outside x", mgl32.Vec3{3, 0, 0}, false, mgl32.Vec3{1, 0, 0}},
		{"outside corner", mgl32.Vec3{2, 2, -2}, false, mgl32.Vec3{1, 1, -1}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := box.Contains(c.p); got != c.inside {
				t.Errorf("Contains(%v) = %v, want %v", c.p, got, c.inside)
			}
			if got := box.ClosestPoint(c.p); got != c.closest {
				t.Errorf("ClosestPoint(%v) = %v, want %v", c.p, got, c.closest)
			}
		})
	}
}

func TestSphereClosestPoint(t *testing.T) {
	s := Sphere{Center: mgl32.Vec3{0, 0, 0}, Radius: 2}

	if !s.Contains(mgl32.Vec3{0, 2, 0}) {
		t.Error("point on the surface should be contained")
	}
	if s.Contains(mgl32.Vec3{0, 2.5, 0}) {
		t.Error("point outside the radius should not be contained")
	}
	got := s.ClosestPoint(mgl32.Vec3{0, 0, 5})
	if !got.ApproxEqual(mgl32.Vec3{0, 0, 2}) {
		t.Errorf("ClosestPoint = %v, want (0,0,2)", got)
	}
	inside := mgl32.Vec3{0.5, 0, 0}
	if got := s.ClosestPoint(inside); got != inside {
		t.Errorf("ClosestPoint of an interior point = %v, want itself", got)
	}
}

func TestManagerLayerMask(t *testing.T) {
	a := NewVolume(WithName("a"), WithLayer(0))
	b := NewVolume(WithName("b"), WithLayer(3))
	c := NewVolume(WithName("c"), WithLayer(0))
	m := NewManager(a, b, c)
	m.Register(a)

	if m.Len() != 3 {
		t.Fatalf("Len = %d, want 3 (duplicate register must be ignored)", m.Len())
	}

	got := m.Volumes(1 << 0)
	if len(got) != 2 || got[0] != a || got[1] != c {
		t.Errorf("Volumes(layer 0) = %v, want [a c] in registration order", names(got))
	}

	got = m.Volumes(AllLayers)
	if len(got) != 3 {
		t.Errorf("Volumes(all) returned %d volumes, want 3", len(got))
	}

	m.Unregister(a)
	got = m.Volumes(AllLayers)
	if len(got) != 2 || got[0] != b {
		t.Errorf("after Unregister(a) = %v, want [b c]", names(got))
	}
}

func TestNewVolumeDefaults(t *testing.T) {
	v := NewVolume()
	if !v.Enabled() || !v.Global() || v.Weight() != 1 {
		t.Errorf("defaults = enabled %v global %v weight %v", v.Enabled(), v.Global(), v.Weight())
	}
	if v.Name() == "" {
		t.Error("unnamed volume should receive a generated name")
	}

	local := NewVolume(WithExtent(Sphere{Radius: 1}))
	if local.Global() {
		t.Error("WithExtent should make the volume local")
	}
}

type fogComponent struct{ density float32 }

func (*fogComponent) ComponentName() string { return "fog" }

type tintComponent struct{}

func (*tintComponent) ComponentName() string { return "tint" }

func TestProfileGet(t *testing.T) {
	fog := &fogComponent{density: 0.3}
	p := NewProfile("Outdoor", fog)

	got, ok := Get[*fogComponent](p)
	if !ok || got != fog {
		t.Fatalf("Get[*fogComponent] = %v, %v", got, ok)
	}
	if _, ok := Get[*tintComponent](p); ok {
		t.Error("Get should not find a component that was never added")
	}
	if _, ok := Get[*fogComponent](nil); ok {
		t.Error("Get on a nil profile should report false")
	}

	replacement := &fogComponent{density: 0.9}
	p.Add(replacement)
	if len(p.Components()) != 1 {
		t.Fatalf("Add with the same component name should replace, have %d", len(p.Components()))
	}
	if got, _ := Get[*fogComponent](p); got != replacement {
		t.Error("replacement component not returned")
	}
}

func TestParameterOverride(t *testing.T) {
	p := NewParameter[float32](1, false)
	if p.Overridden() {
		t.Error("new parameter should not be overridden")
	}
	p.Override(0.25)
	if p.Value() != 0.25 || !p.Overridden() {
		t.Errorf("after Override: value %v overridden %v", p.Value(), p.Overridden())
	}
	p.Reset(1)
	if p.Value() != 1 || p.Overridden() {
		t.Errorf("after Reset: value %v overridden %v", p.Value(), p.Overridden())
	}
}

func names(vs []Volume) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.Name()
	}
	return out
}
