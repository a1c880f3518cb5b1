package pipeline

import (
	"strings"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestNewPipelineDefaults(t *testing.T) {
	p := NewPipeline("vignette", "@fragment fn fs_main() {}")
	if p.PipelineKey() != "vignette" {
		t.Errorf("PipelineKey = %q", p.PipelineKey())
	}
	if !strings.HasPrefix(p.Source(), Prelude) || !strings.HasSuffix(p.Source(), "fs_main() {}") {
		t.Error("Source must be the prelude followed by the fragment body")
	}
	if p.BlendEnabled() || !p.DepthTestEnabled() || p.WriteMask() != wgpu.ColorWriteMaskAll {
		t.Error("unexpected defaults")
	}
	if p.RenderPipeline(Variant{Color: wgpu.TextureFormatRGBA8Unorm}) != nil {
		t.Error("no GPU pipeline may exist before the renderer builds one")
	}
}

func TestWithProperties(t *testing.T) {
	p := NewPipeline("k", "", WithProperties("_A", "_B", "_C", "_D", "_E"))
	if got := len(p.Properties()); got != MaxCustomProperties {
		t.Fatalf("len(Properties) = %d, want %d", got, MaxCustomProperties)
	}
	if slot, ok := p.PropertySlot("_C"); !ok || slot != 2 {
		t.Errorf("PropertySlot(_C) = %d, %v", slot, ok)
	}
	if _, ok := p.PropertySlot("_E"); ok {
		t.Error("properties beyond the slot count must be dropped")
	}
}

func TestWithBlendState(t *testing.T) {
	state := &wgpu.BlendState{}
	p := NewPipeline("k", "", WithBlendState(state))
	if !p.BlendEnabled() || p.BlendState() != state {
		t.Error("WithBlendState must set and enable blending")
	}
}
