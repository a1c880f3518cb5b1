package fullscreen

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-volume-pass/engine/camera"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/frame"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer/graph"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/volume"
	"github.com/cogentcore/webgpu/wgpu"
)

type conflictCall struct {
	material       material.Material
	first, current Source
}

type passIndexCall struct {
	profile   volume.Profile
	material  material.Material
	passIndex int
}

// recordingDiagnostics captures diagnostics instead of logging them.
type recordingDiagnostics struct {
	conflicts []conflictCall
	passIndex []passIndexCall
}

func (d *recordingDiagnostics) PassIndexOutOfBounds(profile volume.Profile, mat material.Material, passIndex int) {
	d.passIndex = append(d.passIndex, passIndexCall{profile: profile, material: mat, passIndex: passIndex})
}

func (d *recordingDiagnostics) MaterialConflict(mat material.Material, first, current Source) {
	d.conflicts = append(d.conflicts, conflictCall{material: mat, first: first, current: current})
}

func newTestMaterial(name string, passes int) material.Material {
	return material.NewMaterial(material.WithName(name), material.WithPassCount(passes))
}

// globalEffect creates a global volume carrying an EffectComponent built from opts.
func globalEffect(name string, priority float32, opts ...EffectComponentBuilderOption) volume.Volume {
	comp := NewEffectComponent(opts...)
	return volume.NewVolume(
		volume.WithName(name),
		volume.WithPriority(priority),
		volume.WithProfile(volume.NewProfile(name+" Profile", comp)),
	)
}

type testFrame struct {
	graph *graph.Graph
	data  *frame.Data
}

func cameraTargetDesc() graph.TextureDesc {
	return graph.TextureDesc{
		Name:            "CameraTarget",
		Width:           1280,
		Height:          720,
		Format:          wgpu.TextureFormatRGBA8Unorm,
		SampleCount:     4,
		DepthBufferBits: 24,
	}
}

// newTestFrame imports an active color and depth target into a fresh graph.
func newTestFrame(t *testing.T, cam camera.Camera) *testFrame {
	t.Helper()
	if cam == nil {
		cam = camera.NewCamera()
	}
	g := graph.NewGraph()
	desc := cameraTargetDesc()
	return &testFrame{
		graph: g,
		data: &frame.Data{
			Camera: cam,
			Index:  1,
			Resources: frame.ResourceData{
				ActiveColor:      g.ImportTexture(desc),
				ActiveDepth:      g.ImportTexture(graph.TextureDesc{Name: "CameraDepthAttachment", Width: 1280, Height: 720, Format: wgpu.TextureFormatDepth24PlusStencil8}),
				CameraTargetDesc: desc,
			},
		},
	}
}

func passNames(g *graph.Graph) []string {
	names := make([]string, 0, len(g.Passes()))
	for _, p := range g.Passes() {
		names = append(names, p.Name)
	}
	return names
}
