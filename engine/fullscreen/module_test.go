package fullscreen

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-volume-pass/engine/camera"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/frame"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer/graph"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/scheduler"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/volume"
	"github.com/go-gl/mathgl/mgl32"
)

func collect(t *testing.T, m Module, cam camera.Camera) []EffectInstance {
	t.Helper()
	return m.CollectSettings(&frame.Data{Camera: cam, Index: 1}, nil)
}

func TestCollectSettingsFilters(t *testing.T) {
	mat := newTestMaterial("M", 1)
	tiny := float32(math.SmallestNonzeroFloat32)

	tests := []struct {
		name   string
		volume volume.Volume
		want   int
	}{
		{"active", globalEffect("V", 0, WithMaterial(mat, 0)), 1},
		{"zero intensity", globalEffect("V", 0, WithMaterial(mat, 0), WithIntensity(0)), 0},
		{"smallest positive intensity", globalEffect("V", 0, WithMaterial(mat, 0), WithIntensity(tiny)), 1},
		{"disabled component", globalEffect("V", 0, WithMaterial(mat, 0), WithEnabled(false)), 0},
		{"nil material", globalEffect("V", 0), 0},
		{"pass index too large", globalEffect("V", 0, WithMaterial(mat, 1)), 0},
		{"negative pass index", globalEffect("V", 0, WithMaterial(mat, -1)), 0},
		{"no profile", volume.NewVolume(), 0},
		{"profile without component", volume.NewVolume(volume.WithProfile(volume.NewProfile("Empty"))), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewVolumeModule(volume.NewManager(tt.volume), WithModuleDiagnostics(&recordingDiagnostics{}))
			got := collect(t, m, camera.NewCamera())
			if len(got) != tt.want {
				t.Fatalf("got %d instances, want %d", len(got), tt.want)
			}
			for _, inst := range got {
				if !(inst.Intensity > 0) {
					t.Errorf("instance intensity %v must be > 0", inst.Intensity)
				}
			}
		})
	}
}

func TestCollectSettingsVolumeState(t *testing.T) {
	mat := newTestMaterial("M", 1)

	disabled := globalEffect("Disabled", 0, WithMaterial(mat, 0))
	disabled.SetEnabled(false)
	weightless := globalEffect("Weightless", 0, WithMaterial(mat, 0))
	weightless.SetWeight(0)
	otherLayer := volume.NewVolume(
		volume.WithLayer(3),
		volume.WithProfile(volume.NewProfile("P", NewEffectComponent(WithMaterial(mat, 0)))),
	)

	m := NewVolumeModule(volume.NewManager(disabled, weightless, otherLayer))
	cam := camera.NewCamera(camera.WithVolumeLayerMask(1 << 0))
	if got := collect(t, m, cam); len(got) != 0 {
		t.Errorf("got %d instances, want 0", len(got))
	}
}

func TestCollectSettingsInstanceFields(t *testing.T) {
	mat := newTestMaterial("M", 2)
	v := globalEffect("Fog", 3,
		WithMaterial(mat, 1),
		WithIntensity(0.5),
		WithInjectionPoint(InjectionAfterPostProcessing),
		WithRequirements(scheduler.InputDepth|scheduler.InputNormal),
		WithFetchColorBuffer(false),
		WithBindDepthStencil(true),
	)
	v.SetWeight(0.5)

	got := collect(t, NewVolumeModule(volume.NewManager(v)), camera.NewCamera())
	if len(got) != 1 {
		t.Fatalf("got %d instances, want 1", len(got))
	}
	inst := got[0]
	if inst.InjectionPoint != scheduler.AfterRenderingPostProcessing {
		t.Errorf("InjectionPoint = %v", inst.InjectionPoint)
	}
	if inst.SortingPriority != 3 {
		t.Errorf("SortingPriority = %v, want 3", inst.SortingPriority)
	}
	if inst.Intensity != 0.25 {
		t.Errorf("Intensity = %v, want 0.25", inst.Intensity)
	}
	if inst.Material != mat || inst.PassIndex != 1 {
		t.Errorf("Material/PassIndex = %v/%d", inst.Material, inst.PassIndex)
	}
	if inst.FetchColorBuffer || !inst.BindDepthStencil {
		t.Errorf("FetchColorBuffer/BindDepthStencil = %v/%v", inst.FetchColorBuffer, inst.BindDepthStencil)
	}
	if inst.Requirements != scheduler.InputDepth|scheduler.InputNormal {
		t.Errorf("Requirements = %v", inst.Requirements)
	}
	if inst.Volume != v || inst.Profile != v.Profile() || inst.Component == nil {
		t.Error("instance must reference its source volume, profile and component")
	}
}

func TestInjectionPointMapping(t *testing.T) {
	tests := []struct {
		point InjectionPoint
		want  scheduler.RenderPassEvent
	}{
		{InjectionBeforePostProcessing, scheduler.BeforeRenderingPostProcessing},
		{InjectionAfterPostProcessing, scheduler.AfterRenderingPostProcessing},
		{InjectionPoint(42), scheduler.BeforeRenderingPostProcessing},
	}
	for _, tt := range tests {
		if got := tt.point.RenderPassEvent(); got != tt.want {
			t.Errorf("%v.RenderPassEvent() = %v, want %v", tt.point, got, tt.want)
		}
	}
}

func TestVolumeInfluence(t *testing.T) {
	box := volume.NewBox(mgl32.Vec3{}, mgl32.Vec3{2, 2, 2})

	tests := []struct {
		name    string
		volume  volume.Volume
		trigger mgl32.Vec3
		want    float32
	}{
		{"global", volume.NewVolume(volume.WithWeight(0.7)), mgl32.Vec3{100, 0, 0}, 0.7},
		{"local without extent", volume.NewVolume(volume.WithGlobal(false)), mgl32.Vec3{}, 0},
		{"step inside", volume.NewVolume(volume.WithExtent(box)), mgl32.Vec3{0.5, 0, 0}, 1},
		{"step on surface", volume.NewVolume(volume.WithExtent(box)), mgl32.Vec3{1, 0, 0}, 1},
		{"step outside", volume.NewVolume(volume.WithExtent(box)), mgl32.Vec3{1.01, 0, 0}, 0},
		{"blend inside", volume.NewVolume(volume.WithExtent(box), volume.WithBlendDistance(4)), mgl32.Vec3{}, 1},
		{"blend halfway", volume.NewVolume(volume.WithExtent(box), volume.WithBlendDistance(4)), mgl32.Vec3{3, 0, 0}, 0.5},
		{"blend beyond", volume.NewVolume(volume.WithExtent(box), volume.WithBlendDistance(4)), mgl32.Vec3{6, 0, 0}, 0},
		{"blend weighted", volume.NewVolume(volume.WithExtent(box), volume.WithBlendDistance(4), volume.WithWeight(0.5)), mgl32.Vec3{3, 0, 0}, 0.25},
		{"zero weight", volume.NewVolume(volume.WithWeight(0)), mgl32.Vec3{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VolumeInfluence(tt.volume, tt.trigger)
			if math.Abs(float64(got-tt.want)) > 1e-6 {
				t.Errorf("VolumeInfluence = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVolumeInfluenceMonotonic(t *testing.T) {
	v := volume.NewVolume(volume.WithExtent(volume.Sphere{Radius: 1}), volume.WithBlendDistance(2.5))

	prev := float32(2)
	for x := float32(0); x <= 5; x += 0.125 {
		got := VolumeInfluence(v, mgl32.Vec3{x, 0, 0})
		if got > prev {
			t.Fatalf("influence increased from %v to %v at x=%v", prev, got, x)
		}
		if got < 0 || got > 1 {
			t.Fatalf("influence %v out of [0, 1] at x=%v", got, x)
		}
		prev = got
	}
	if prev != 0 {
		t.Errorf("influence far outside = %v, want 0", prev)
	}
}

func TestCollectSettingsUsesTrigger(t *testing.T) {
	mat := newTestMaterial("M", 1)
	local := volume.NewVolume(
		volume.WithExtent(volume.NewBox(mgl32.Vec3{}, mgl32.Vec3{2, 2, 2})),
		volume.WithProfile(volume.NewProfile("Local", NewEffectComponent(WithMaterial(mat, 0)))),
	)
	m := NewVolumeModule(volume.NewManager(local))

	cam := camera.NewCamera(camera.WithPosition(10, 0, 0))
	if got := collect(t, m, cam); len(got) != 0 {
		t.Fatalf("camera outside: got %d instances, want 0", len(got))
	}

	cam.SetVolumeTrigger(camera.Point{0, 0, 0})
	if got := collect(t, m, cam); len(got) != 1 {
		t.Fatalf("trigger inside: got %d instances, want 1", len(got))
	}
}

func TestPassIndexWarningRateLimited(t *testing.T) {
	mat := newTestMaterial("M", 1)
	v := globalEffect("V", 0, WithMaterial(mat, 5))
	diag := &recordingDiagnostics{}
	m := NewVolumeModule(volume.NewManager(v, v), WithModuleDiagnostics(diag))
	cam := camera.NewCamera()

	data := &frame.Data{Camera: cam, Index: 7}
	m.CollectSettings(data, nil)
	m.CollectSettings(data, nil)
	if len(diag.passIndex) != 1 {
		t.Fatalf("got %d warnings in one frame, want 1", len(diag.passIndex))
	}
	if c := diag.passIndex[0]; c.passIndex != 5 || c.material != mat || c.profile != v.Profile() {
		t.Errorf("warning = %+v", c)
	}

	data.Index++
	m.CollectSettings(data, nil)
	if len(diag.passIndex) != 2 {
		t.Errorf("got %d warnings after a new frame, want 2", len(diag.passIndex))
	}
}

func TestPassIndexWarningDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WarnPassIndex = false
	diag := &recordingDiagnostics{}
	v := globalEffect("V", 0, WithMaterial(newTestMaterial("M", 1), 2))

	m := NewVolumeModule(volume.NewManager(v), WithModuleDiagnostics(diag), WithModuleConfig(cfg))
	collect(t, m, camera.NewCamera())
	if len(diag.passIndex) != 0 {
		t.Errorf("got %d warnings, want 0", len(diag.passIndex))
	}
}

func TestApplyMaterialPropertiesWritesIntensity(t *testing.T) {
	m := NewVolumeModule(volume.NewManager())
	props := graph.NewPropertyBlock()
	m.ApplyMaterialProperties(&EffectInstance{Intensity: 0.3}, props)
	if got, ok := props.Float(graph.PropertyIntensity); !ok || got != 0.3 {
		t.Errorf("%s = %v, %v; want 0.3", graph.PropertyIntensity, got, ok)
	}
}

func TestEffectComponentDefaults(t *testing.T) {
	c := NewEffectComponent()
	if !c.Enabled.Value() || c.Intensity.Value() != 1 || !c.FetchColorBuffer.Value() || c.BindDepthStencil.Value() {
		t.Errorf("unexpected defaults: %+v", c)
	}
	if c.IsActive() {
		t.Error("component without material must not be active")
	}
	if c.IsTileCompatible() {
		t.Error("IsTileCompatible must be false")
	}

	c.Material.Override(newTestMaterial("M", 1))
	if !c.IsActive() {
		t.Error("component with material must be active")
	}
	c.SetIntensity(3)
	if c.Intensity.Value() != 1 || !c.Intensity.Overridden() {
		t.Errorf("SetIntensity(3) = %v", c.Intensity.Value())
	}
	c.SetIntensity(-1)
	if c.IsActive() {
		t.Error("component with zero intensity must not be active")
	}
}
