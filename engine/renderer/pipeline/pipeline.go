package pipeline

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// Prelude is prepended to every full-screen shader. It declares the effect uniform, the
// blit source texture and sampler at group 0, and the vs_main full-screen triangle entry
// point. Shaders provide fs_main.
const Prelude = `
struct EffectParams {
    blit_scale_bias: vec4<f32>,
    intensity: f32,
    time: f32,
    _pad0: f32,
    _pad1: f32,
    custom: array<vec4<f32>, 4>,
};

@group(0) @binding(0) var<uniform> params: EffectParams;
@group(0) @binding(1) var blit_texture: texture_2d<f32>;
@group(0) @binding(2) var blit_sampler: sampler;

struct FullscreenVertex {
    @builtin(position) position: vec4<f32>,
    @location(0) uv: vec2<f32>,
};

@vertex
fn vs_main(@builtin(vertex_index) index: u32) -> FullscreenVertex {
    let corner = vec2<f32>(f32((index << 1u) & 2u), f32(index & 2u));
    var out: FullscreenVertex;
    out.position = vec4<f32>(corner * vec2<f32>(2.0, -2.0) + vec2<f32>(-1.0, 1.0), 0.0, 1.0);
    out.uv = corner * params.blit_scale_bias.xy + params.blit_scale_bias.zw;
    return out;
}
`

// MaxCustomProperties is the number of custom vec4 slots in EffectParams.
const MaxCustomProperties = 4

// BlitKey is the pipeline key of the built-in copy pipeline.
const BlitKey = "__blit"

// BlitSource is the fragment body of the built-in copy pipeline.
const BlitSource = `
@fragment
fn fs_main(in: FullscreenVertex) -> @location(0) vec4<f32> {
    return textureSample(blit_texture, blit_sampler, in.uv);
}
`

// Variant identifies the attachment formats a GPU pipeline was built for.
type Variant struct {
	Color wgpu.TextureFormat
	// Depth is TextureFormatUndefined when the pass binds no depth-stencil attachment.
	Depth wgpu.TextureFormat
}

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	pipelineKey string
	source      string

	// properties maps custom material property names to EffectParams.custom slots, in order.
	properties []string

	depthTestEnabled bool
	blendEnabled     bool
	writeMask        wgpu.ColorWriteMask
	blendState       *wgpu.BlendState

	variants map[Variant]*wgpu.RenderPipeline
}

// Pipeline describes a full-screen render pipeline: one fragment shader drawn over a
// procedural triangle. The GPU pipeline objects are created lazily per attachment format
// by the renderer and cached on the Pipeline.
type Pipeline interface {
	// PipelineKey returns the unique key materials use to reference this pipeline.
	//
	// Returns:
	//   - string: the pipeline key
	PipelineKey() string

	// Source returns the complete WGSL source, prelude included.
	//
	// Returns:
	//   - string: the shader source
	Source() string

	// Properties returns the custom property names bound to EffectParams.custom, in slot order.
	//
	// Returns:
	//   - []string: the property names
	Properties() []string

	// PropertySlot returns the custom slot of a property name.
	//
	// Parameters:
	//   - name: the property name
	//
	// Returns:
	//   - int: the slot index
	//   - bool: false if the pipeline does not declare the property
	PropertySlot(name string) (int, bool)

	// DepthTestEnabled returns whether the fragment is depth tested when a depth-stencil
	// attachment is bound. Depth is never written.
	//
	// Returns:
	//   - bool: true if depth testing is enabled
	DepthTestEnabled() bool

	// BlendEnabled returns whether blending is enabled for this pipeline.
	//
	// Returns:
	//   - bool: true if blending is enabled
	BlendEnabled() bool

	// WriteMask returns the color write mask configured for this pipeline.
	//
	// Returns:
	//   - wgpu.ColorWriteMask: the color write mask
	WriteMask() wgpu.ColorWriteMask

	// BlendState returns the blend state configured for this pipeline.
	//
	// Returns:
	//   - *wgpu.BlendState: the blend state, used only when blending is enabled
	BlendState() *wgpu.BlendState

	// RenderPipeline returns the GPU pipeline built for v, or nil.
	//
	// Parameters:
	//   - v: the attachment formats
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the cached GPU pipeline
	RenderPipeline(v Variant) *wgpu.RenderPipeline

	// SetRenderPipeline caches the GPU pipeline built for v.
	//
	// Parameters:
	//   - v: the attachment formats
	//   - p: the GPU pipeline
	SetRenderPipeline(v Variant, p *wgpu.RenderPipeline)

	// Release releases every cached GPU pipeline.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a full-screen Pipeline from a WGSL fragment body.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - fragmentSource: WGSL declaring fs_main, compiled after Prelude
//   - opts: a variadic list of PipelineBuilderOption functions to configure the pipeline
//
// Returns:
//   - Pipeline: a new Pipeline instance
func NewPipeline(pipelineKey, fragmentSource string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:      pipelineKey,
		source:           Prelude + fragmentSource,
		depthTestEnabled: true,
		writeMask:        wgpu.ColorWriteMaskAll,
		blendState: &wgpu.BlendState{
			Color: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorSrcAlpha,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
			Alpha: wgpu.BlendComponent{
				SrcFactor: wgpu.BlendFactorOne,
				DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
				Operation: wgpu.BlendOperationAdd,
			},
		},
		variants: make(map[Variant]*wgpu.RenderPipeline),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Source() string {
	return p.source
}

func (p *pipeline) Properties() []string {
	return p.properties
}

func (p *pipeline) PropertySlot(name string) (int, bool) {
	for i, n := range p.properties {
		if n == name {
			return i, true
		}
	}
	return 0, false
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) RenderPipeline(v Variant) *wgpu.RenderPipeline {
	return p.variants[v]
}

func (p *pipeline) SetRenderPipeline(v Variant, rp *wgpu.RenderPipeline) {
	p.variants[v] = rp
}

func (p *pipeline) Release() {
	for v, rp := range p.variants {
		if rp != nil {
			rp.Release()
		}
		delete(p.variants, v)
	}
}
