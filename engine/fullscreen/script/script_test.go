package script

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-volume-pass/engine/camera"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/frame"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/fullscreen"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer/graph"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/scheduler"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/volume"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func scriptedVolume(name, source string, options ...fullscreen.EffectComponentBuilderOption) volume.Volume {
	mat := material.NewMaterial(material.WithName(name), material.WithPassCount(1))
	options = append([]fullscreen.EffectComponentBuilderOption{fullscreen.WithMaterial(mat, 0)}, options...)
	return volume.NewVolume(
		volume.WithName(name),
		volume.WithProfile(volume.NewProfile(name+" Profile", NewComponent(source, options...))),
	)
}

func newModule(t *testing.T, manager volume.Manager, options ...ModuleBuilderOption) Module {
	t.Helper()
	m, err := NewModule(manager, options...)
	if err != nil {
		t.Fatalf("NewModule: %v", err)
	}
	t.Cleanup(m.Close)
	return m
}

func TestScriptWritesProperties(t *testing.T) {
	src := `
set_float("_Pulse", intensity * 2 + time)
set_vector("_Tint", 1, 0.5, 0.25)
`
	m := newModule(t, volume.NewManager(scriptedVolume("Pulse", src, fullscreen.WithIntensity(0.25))))

	insts := m.CollectSettings(&frame.Data{Camera: camera.NewCamera(), Time: 2}, nil)
	if len(insts) != 1 {
		t.Fatalf("got %d instances, want 1", len(insts))
	}

	props := graph.NewPropertyBlock()
	m.ApplyMaterialProperties(&insts[0], props)

	if v, _ := props.Float(graph.PropertyIntensity); v != 0.25 {
		t.Errorf("_Intensity = %v, want 0.25", v)
	}
	if v, _ := props.Float("_Pulse"); v != 2.5 {
		t.Errorf("_Pulse = %v, want 2.5", v)
	}
	if v, _ := props.Vector("_Tint"); v != (mgl32.Vec4{1, 0.5, 0.25, 0}) {
		t.Errorf("_Tint = %v", v)
	}
}

func TestScriptIgnoresPlainComponents(t *testing.T) {
	mat := material.NewMaterial(material.WithName("Plain"), material.WithPassCount(1))
	plain := volume.NewVolume(volume.WithProfile(volume.NewProfile("Plain", fullscreen.NewEffectComponent(fullscreen.WithMaterial(mat, 0)))))
	scripted := scriptedVolume("Scripted", "")

	manager := volume.NewManager(plain, scripted)
	m := newModule(t, manager)
	insts := m.CollectSettings(&frame.Data{Camera: camera.NewCamera()}, nil)
	if len(insts) != 1 || insts[0].Volume != scripted {
		t.Fatalf("scripted module collected %v", insts)
	}

	plainModule := fullscreen.NewVolumeModule(manager)
	insts = plainModule.CollectSettings(&frame.Data{Camera: camera.NewCamera()}, nil)
	if len(insts) != 1 || insts[0].Volume != plain {
		t.Fatalf("volume module collected %v", insts)
	}
}

func TestScriptErrorsReportedOnce(t *testing.T) {
	tests := []struct {
		name   string
		source string
		msg    string
	}{
		{"syntax error", "set_float(", "failed to compile effect script"},
		{"runtime error", `error("boom")`, "effect script failed"},
		{"sandboxed io", `io.write("x")`, "effect script failed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			m := newModule(t, volume.NewManager(scriptedVolume("Broken", tt.source)), WithLogger(zap.New(core)))

			insts := m.CollectSettings(&frame.Data{Camera: camera.NewCamera()}, nil)
			if len(insts) != 1 {
				t.Fatalf("got %d instances, want 1", len(insts))
			}
			props := graph.NewPropertyBlock()
			m.ApplyMaterialProperties(&insts[0], props)
			m.ApplyMaterialProperties(&insts[0], props)

			if _, ok := props.Float(graph.PropertyIntensity); !ok {
				t.Error("_Intensity must be written even when the script fails")
			}
			if n := logs.FilterMessage(tt.msg).Len(); n != 1 {
				t.Errorf("got %d %q logs, want 1", n, tt.msg)
			}
		})
	}
}

func TestScriptModuleInPass(t *testing.T) {
	plainMat := material.NewMaterial(material.WithName("Plain"), material.WithPassCount(1))
	plain := volume.NewVolume(
		volume.WithName("Plain"),
		volume.WithPriority(1),
		volume.WithProfile(volume.NewProfile("Plain", fullscreen.NewEffectComponent(fullscreen.WithMaterial(plainMat, 0)))),
	)
	scripted := scriptedVolume("Scripted", `set_float("_Wave", 1)`, fullscreen.WithFetchColorBuffer(false))
	manager := volume.NewManager(plain, scripted)

	registry := fullscreen.NewRegistry(fullscreen.NewVolumeModule(manager), newModule(t, manager))
	p := fullscreen.NewPass(scheduler.BeforeRenderingPostProcessing, fullscreen.WithPassRegistry(registry))

	g := graph.NewGraph()
	desc := graph.TextureDesc{Name: "CameraTarget", Width: 64, Height: 64}
	data := &frame.Data{
		Camera: camera.NewCamera(),
		Resources: frame.ResourceData{
			ActiveColor:      g.ImportTexture(desc),
			CameraTargetDesc: desc,
		},
	}
	if !p.PrepareForCamera(data) {
		t.Fatal("PrepareForCamera = false")
	}
	p.RecordRenderGraph(g, data)

	rec := graph.NewCommandRecorder()
	if err := g.Execute(rec); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	draws := rec.Draws()
	if len(draws) != 2 {
		t.Fatalf("got %d draws, want 2", len(draws))
	}
	if _, ok := draws[0].Properties.Float("_Wave"); !ok {
		t.Error("scripted effect (priority 0) must draw first with its script properties")
	}
	if _, ok := draws[1].Properties.Float("_Wave"); ok {
		t.Error("plain effect must not see the scripted effect's properties")
	}
}
