package fullscreen

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-volume-pass/engine/camera"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/scheduler"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/volume"
)

func TestFeatureAddRenderPasses(t *testing.T) {
	before := globalEffect("Before", 0, WithMaterial(newTestMaterial("Before", 1), 0))
	after := globalEffect("After", 0, WithMaterial(newTestMaterial("After", 1), 0), WithInjectionPoint(InjectionAfterPostProcessing))

	tests := []struct {
		name    string
		volumes []volume.Volume
		camera  camera.Camera
		want    []scheduler.RenderPassEvent
	}{
		{"both passes", []volume.Volume{before, after}, camera.NewCamera(), []scheduler.RenderPassEvent{scheduler.BeforeRenderingPostProcessing, scheduler.AfterRenderingPostProcessing}},
		{"only after", []volume.Volume{after}, camera.NewCamera(), []scheduler.RenderPassEvent{scheduler.AfterRenderingPostProcessing}},
		{"no effects", nil, camera.NewCamera(), nil},
		{"overlay camera", []volume.Volume{before, after}, camera.NewCamera(camera.WithRenderType(camera.RenderTypeOverlay)), nil},
		{"preview camera", []volume.Volume{before, after}, camera.NewCamera(camera.WithCameraType(camera.CameraTypePreview)), nil},
		{"scene view camera", []volume.Volume{before}, camera.NewCamera(camera.WithCameraType(camera.CameraTypeSceneView)), []scheduler.RenderPassEvent{scheduler.BeforeRenderingPostProcessing}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewRegistry(NewVolumeModule(volume.NewManager(tt.volumes...)))
			f := NewFeature(WithRegistry(registry), WithDiagnostics(&recordingDiagnostics{}))
			defer f.Dispose()

			q := scheduler.NewQueue()
			f.AddRenderPasses(q, newTestFrame(t, tt.camera).data)

			passes := q.Passes()
			if len(passes) != len(tt.want) {
				t.Fatalf("enqueued %d passes, want %d", len(passes), len(tt.want))
			}
			for i, p := range passes {
				if p.Event() != tt.want[i] {
					t.Errorf("pass %d event = %v, want %v", i, p.Event(), tt.want[i])
				}
			}
		})
	}
}

func TestFeatureEndToEnd(t *testing.T) {
	registry := NewRegistry(NewVolumeModule(volume.NewManager(
		globalEffect("Tint", 0, WithMaterial(newTestMaterial("Tint", 1), 0), WithInjectionPoint(InjectionAfterPostProcessing)),
		globalEffect("Blur", 0, WithMaterial(newTestMaterial("Blur", 1), 0)),
	)))
	f := NewFeature(WithRegistry(registry))
	fr := newTestFrame(t, nil)

	q := scheduler.NewQueue()
	f.AddRenderPasses(q, fr.data)
	q.Record(fr.graph, fr.data)

	want := []string{
		"Copy Active Color", "Apply Fullscreen Effect 0",
		"Copy Active Color", "Apply Fullscreen Effect 0",
	}
	got := passNames(fr.graph)
	if len(got) != len(want) {
		t.Fatalf("passes = %v, want %v", got, want)
	}
	if err := fr.graph.Err(); err != nil {
		t.Fatalf("graph errors: %v", err)
	}
}

func TestFeaturePassLookupAndDispose(t *testing.T) {
	f := NewFeature(WithRegistry(NewRegistry()))
	if f.Pass(scheduler.BeforeRenderingPostProcessing) == nil || f.Pass(scheduler.AfterRenderingPostProcessing) == nil {
		t.Fatal("feature must own both passes after construction")
	}
	if f.Pass(scheduler.RenderPassEvent(1)) != nil {
		t.Error("unknown event must have no pass")
	}

	f.Dispose()
	if f.Pass(scheduler.BeforeRenderingPostProcessing) != nil || f.Pass(scheduler.AfterRenderingPostProcessing) != nil {
		t.Error("Dispose must drop both passes")
	}

	q := scheduler.NewQueue()
	f.AddRenderPasses(q, newTestFrame(t, nil).data)
	if len(q.Passes()) != 0 {
		t.Error("disposed feature must not enqueue passes")
	}

	f.Create()
	if f.Pass(scheduler.BeforeRenderingPostProcessing) == nil {
		t.Error("Create must rebuild the passes")
	}
}
