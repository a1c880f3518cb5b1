package renderer

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer/graph"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer/pipeline"
	"github.com/go-gl/mathgl/mgl32"
)

func readFloat(buf []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf[off : off+4]))
}

func TestNewGPUEffectParams(t *testing.T) {
	p := pipeline.NewPipeline("tint", "", pipeline.WithProperties("_Tint", "_Strength"))
	props := graph.NewPropertyBlock()
	props.SetFloat(graph.PropertyIntensity, 0.5)
	props.SetVector(graph.PropertyBlitScaleBias, mgl32.Vec4{0.5, 0.5, 0.25, 0})
	props.SetVector("_Tint", mgl32.Vec4{1, 0, 0, 1})
	props.SetFloat("_Strength", 3)
	props.SetFloat("_Unused", 9)

	params := NewGPUEffectParams(p, props, 4)
	if params.Intensity != 0.5 || params.Time != 4 {
		t.Errorf("Intensity/Time = %v/%v", params.Intensity, params.Time)
	}
	if params.BlitScaleBias != [4]float32{0.5, 0.5, 0.25, 0} {
		t.Errorf("BlitScaleBias = %v", params.BlitScaleBias)
	}
	if params.Custom[0] != [4]float32{1, 0, 0, 1} || params.Custom[1] != [4]float32{3, 0, 0, 0} {
		t.Errorf("Custom = %v", params.Custom)
	}
	if params.Custom[2] != [4]float32{} {
		t.Error("undeclared properties must not be packed")
	}
}

func TestNewGPUEffectParamsDefaults(t *testing.T) {
	params := NewGPUEffectParams(nil, nil, 1.5)
	if params.BlitScaleBias != [4]float32{1, 1, 0, 0} || params.Intensity != 0 || params.Time != 1.5 {
		t.Errorf("params = %+v", params)
	}
}

func TestGPUEffectParamsMarshal(t *testing.T) {
	params := GPUEffectParams{
		BlitScaleBias: [4]float32{1, 1, 0, 0},
		Intensity:     0.25,
		Time:          2,
	}
	params.Custom[3] = [4]float32{5, 6, 7, 8}

	buf := params.Marshal()
	if len(buf) != params.Size() || params.Size()%16 != 0 {
		t.Fatalf("len = %d, size = %d", len(buf), params.Size())
	}
	checks := []struct {
		off  int
		want float32
	}{
		{0, 1}, {4, 1}, {16, 0.25}, {20, 2}, {80, 5}, {92, 8},
	}
	for _, c := range checks {
		if got := readFloat(buf, c.off); got != c.want {
			t.Errorf("offset %d = %v, want %v", c.off, got, c.want)
		}
	}
}
