package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-volume-pass/engine/frame"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer/graph"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

const (
	cameraDepthFormat = wgpu.TextureFormatDepth24PlusStencil8

	transientUsage = wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopySrc | wgpu.TextureUsageCopyDst
)

// gpuTarget is a texture and its default view.
type gpuTarget struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView
	format  wgpu.TextureFormat
}

func (t *gpuTarget) release() {
	if t == nil {
		return
	}
	if t.view != nil {
		t.view.Release()
	}
	if t.texture != nil {
		t.texture.Release()
	}
}

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	logger *zap.Logger

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
	surface  *wgpu.Surface

	surfaceFormat wgpu.TextureFormat
	presentMode   wgpu.PresentMode
	width, height uint32

	bindGroupLayout *wgpu.BindGroupLayout
	pipelineLayout  *wgpu.PipelineLayout
	sampler         *wgpu.Sampler
	dummy           *gpuTarget
	blit            pipeline.Pipeline
	blitProps       *graph.PropertyBlock
	pipelines       map[string]pipeline.Pipeline

	// uniforms is a ring of uniformSlots 256-byte slots, one per draw, rewound every frame.
	uniforms     *wgpu.Buffer
	uniformSlots int
	uniformNext  int

	cameraColor *gpuTarget
	cameraDepth *gpuTarget

	// pool holds transient textures by description; poolUsed counts the ones handed out this frame.
	pool     map[graph.TextureDesc][]*gpuTarget
	poolUsed map[graph.TextureDesc]int

	frameEncoder    *wgpu.CommandEncoder
	frameSurface    *wgpu.Texture
	frameView       *wgpu.TextureView
	frameBindGroups []*wgpu.BindGroup
	frameTargets    map[graph.TextureHandle]*gpuTarget
	frameTime       float32
	stats           Stats

	current *wgpuCommandBuffer
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, uniformSlots int, logger *zap.Logger) (*wgpuRendererBackendImpl, error) {
	runtime.LockOSThread()
	b := &wgpuRendererBackendImpl{
		mu:           &sync.Mutex{},
		logger:       logger,
		instance:     wgpu.CreateInstance(nil),
		presentMode:  wgpu.PresentModeFifo,
		uniformSlots: uniformSlots,
		blitProps:    graph.NewPropertyBlock(),
		pipelines:    make(map[string]pipeline.Pipeline),
		pool:         make(map[graph.TextureDesc][]*gpuTarget),
		poolUsed:     make(map[graph.TextureDesc]int),
		frameTargets: make(map[graph.TextureHandle]*gpuTarget),
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to request adapter: %w", err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: wgpu.DefaultLimits(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to request device: %w", err)
	}
	b.device = d
	b.queue = d.GetQueue()

	capabilities := b.surface.GetCapabilities(b.adapter)
	if len(capabilities.Formats) == 0 {
		return nil, errors.New("surface reports no supported formats")
	}
	b.surfaceFormat = capabilities.Formats[0]

	if err := b.initSharedResources(); err != nil {
		b.Release()
		return nil, err
	}
	return b, nil
}

// initSharedResources creates the bind group layout shared by every full-screen pipeline,
// the uniform ring, the blit sampler and the placeholder texture bound when a draw
// samples nothing.
func (b *wgpuRendererBackendImpl) initSharedResources() error {
	var err error
	b.bindGroupLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Fullscreen Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: GPUEffectParamsSize,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create fullscreen bind group layout: %w", err)
	}

	b.pipelineLayout, err = b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Fullscreen Pipeline Layout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{b.bindGroupLayout},
	})
	if err != nil {
		return fmt.Errorf("failed to create fullscreen pipeline layout: %w", err)
	}

	b.uniforms, err = b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Effect Params Ring",
		Size:  uint64(b.uniformSlots * uniformAlignment),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("failed to create effect params buffer: %w", err)
	}

	b.sampler, err = b.device.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Blit Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return fmt.Errorf("failed to create blit sampler: %w", err)
	}

	b.dummy, err = b.createTarget("Placeholder Texture", 1, 1, wgpu.TextureFormatRGBA8Unorm, wgpu.TextureUsageTextureBinding|wgpu.TextureUsageCopyDst)
	if err != nil {
		return err
	}
	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  b.dummy.texture,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		[]byte{0, 0, 0, 255},
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  4,
			RowsPerImage: 1,
		},
		&wgpu.Extent3D{Width: 1, Height: 1, DepthOrArrayLayers: 1},
	)

	b.blit = pipeline.NewPipeline(pipeline.BlitKey, pipeline.BlitSource, pipeline.WithDepthTestEnabled(false))
	return nil
}

func (b *wgpuRendererBackendImpl) createTarget(label string, width, height uint32, format wgpu.TextureFormat, usage wgpu.TextureUsage) (*gpuTarget, error) {
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              max(width, 1),
			Height:             max(height, 1),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         usage,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create texture %q: %w", label, err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("failed to create view for texture %q: %w", label, err)
	}
	return &gpuTarget{texture: tex, view: view, format: format}, nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if width <= 0 || height <= 0 {
		return nil
	}
	b.width, b.height = uint32(width), uint32(height)

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       b.width,
		Height:      b.height,
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.cameraColor.release()
	b.cameraDepth.release()
	b.releasePool()

	var err error
	b.cameraColor, err = b.createTarget("Camera Color", b.width, b.height, b.surfaceFormat, transientUsage)
	if err != nil {
		return err
	}
	b.cameraDepth, err = b.createTarget("Camera Depth", b.width, b.height, cameraDepthFormat, wgpu.TextureUsageRenderAttachment)
	if err != nil {
		return err
	}
	return nil
}

func (b *wgpuRendererBackendImpl) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch mode {
	case PresentModeUncapped:
		b.presentMode = wgpu.PresentModeImmediate
	default:
		b.presentMode = wgpu.PresentModeFifo
	}
}

func (b *wgpuRendererBackendImpl) SurfaceFormat() wgpu.TextureFormat {
	return b.surfaceFormat
}

func (b *wgpuRendererBackendImpl) BeginFrame(time float32) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface != nil {
		return errors.New("previous frame surface not yet presented")
	}
	if b.cameraColor == nil || b.cameraDepth == nil {
		return errors.New("surface not configured")
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return fmt.Errorf("failed to acquire surface texture: %w", err)
	}
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		surfaceTexture.Release()
		return fmt.Errorf("failed to create surface view: %w", err)
	}
	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		view.Release()
		surfaceTexture.Release()
		return fmt.Errorf("failed to create command encoder: %w", err)
	}

	// Depth is cleared to the far plane so depth-tested effects pass until something writes it.
	clearPass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "Clear Camera Depth",
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:              b.cameraDepth.view,
			DepthLoadOp:       wgpu.LoadOpClear,
			DepthStoreOp:      wgpu.StoreOpStore,
			DepthClearValue:   1.0,
			StencilLoadOp:     wgpu.LoadOpClear,
			StencilStoreOp:    wgpu.StoreOpStore,
			StencilClearValue: 0,
		},
	})
	clearPass.End()
	clearPass.Release()

	b.frameEncoder = encoder
	b.frameSurface = surfaceTexture
	b.frameView = view
	b.frameTime = time
	b.uniformNext = 0
	b.stats = Stats{}
	return nil
}

func (b *wgpuRendererBackendImpl) ImportTargets(g *graph.Graph, intermediate bool) Targets {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Handles restart with every graph, so bindings from the previous camera are dropped.
	// Pooled textures may be reused since earlier passes are already encoded.
	clear(b.frameTargets)
	clear(b.poolUsed)

	desc := graph.TextureDesc{
		Width:       b.width,
		Height:      b.height,
		Format:      b.surfaceFormat,
		SampleCount: 1,
	}

	backBufferDesc := desc
	backBufferDesc.Name = "Back Buffer"
	backBuffer := g.ImportTexture(backBufferDesc)
	b.frameTargets[backBuffer] = &gpuTarget{view: b.frameView, format: b.surfaceFormat}

	cameraDesc := desc
	cameraDesc.Name = "Camera Color"
	cameraColor := g.ImportTexture(cameraDesc)
	b.frameTargets[cameraColor] = b.cameraColor

	depthDesc := desc
	depthDesc.Name = "Camera Depth"
	depthDesc.Format = cameraDepthFormat
	cameraDepth := g.ImportTexture(depthDesc)
	b.frameTargets[cameraDepth] = b.cameraDepth

	res := frame.ResourceData{
		ActiveColor:              backBuffer,
		ActiveDepth:              cameraDepth,
		IsActiveTargetBackBuffer: true,
		CameraTargetDesc:         cameraDesc,
	}
	if intermediate {
		res.ActiveColor = cameraColor
		res.IsActiveTargetBackBuffer = false
	}
	return Targets{Resources: res, BackBuffer: backBuffer, CameraColor: cameraColor}
}

func (b *wgpuRendererBackendImpl) EndFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameEncoder == nil {
		return errors.New("no frame in progress")
	}
	defer b.releaseFrameBindGroups()

	commandBuffer, err := b.frameEncoder.Finish(nil)
	b.frameEncoder.Release()
	b.frameEncoder = nil
	if err != nil {
		return fmt.Errorf("failed to finish frame encoder: %w", err)
	}
	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
	return nil
}

func (b *wgpuRendererBackendImpl) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameSurface == nil {
		return
	}
	b.surface.Present()

	if b.frameView != nil {
		b.frameView.Release()
		b.frameView = nil
	}
	b.frameSurface.Release()
	b.frameSurface = nil
}

func (b *wgpuRendererBackendImpl) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stats
}

func (b *wgpuRendererBackendImpl) RegisterPipeline(p pipeline.Pipeline) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	key := p.PipelineKey()
	if key == "" || key == pipeline.BlitKey {
		return fmt.Errorf("invalid pipeline key %q", key)
	}
	if _, ok := b.pipelines[key]; ok {
		return fmt.Errorf("pipeline %q already registered", key)
	}
	b.pipelines[key] = p
	return nil
}

func (b *wgpuRendererBackendImpl) Pipeline(key string) (pipeline.Pipeline, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	p, ok := b.pipelines[key]
	return p, ok
}

func (b *wgpuRendererBackendImpl) GPUPipeline(p pipeline.Pipeline, v pipeline.Variant) (*wgpu.RenderPipeline, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.gpuPipeline(p, v)
}

func (b *wgpuRendererBackendImpl) gpuPipeline(p pipeline.Pipeline, v pipeline.Variant) (*wgpu.RenderPipeline, error) {
	if rp := p.RenderPipeline(v); rp != nil {
		return rp, nil
	}

	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: p.PipelineKey(),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: p.Source(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compile shader %q: %w", p.PipelineKey(), err)
	}
	defer module.Release()

	target := wgpu.ColorTargetState{
		Format:    v.Color,
		WriteMask: p.WriteMask(),
	}
	if p.BlendEnabled() {
		target.Blend = p.BlendState()
	}

	var depthStencil *wgpu.DepthStencilState
	if v.Depth != wgpu.TextureFormatUndefined {
		compare := wgpu.CompareFunctionAlways
		if p.DepthTestEnabled() {
			compare = wgpu.CompareFunctionLessEqual
		}
		depthStencil = &wgpu.DepthStencilState{
			Format:            v.Depth,
			DepthWriteEnabled: false,
			DepthCompare:      compare,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
		}
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey() + " Render Pipeline",
		Layout: b.pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: "vs_main",
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: "fs_main",
			Targets:    []wgpu.ColorTargetState{target},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: depthStencil,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create render pipeline %q: %w", p.PipelineKey(), err)
	}
	p.SetRenderPipeline(v, created)
	return created, nil
}

// BeginRasterPass begins a render pass over p's attachments. Attachments keep their contents.
func (b *wgpuRendererBackendImpl) BeginRasterPass(g *graph.Graph, p *graph.RasterPass) (graph.CommandBuffer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frameEncoder == nil {
		return nil, errors.New("no frame in progress")
	}

	colors := make([]wgpu.RenderPassColorAttachment, len(p.ColorAttachments))
	var variant pipeline.Variant
	for _, a := range p.ColorAttachments {
		if a.Index < 0 || a.Index >= len(colors) {
			return nil, fmt.Errorf("color attachment index %d out of range", a.Index)
		}
		t, err := b.resolve(g, a.Handle)
		if err != nil {
			return nil, err
		}
		colors[a.Index] = wgpu.RenderPassColorAttachment{
			View:    t.view,
			LoadOp:  wgpu.LoadOpLoad,
			StoreOp: wgpu.StoreOpStore,
		}
		if a.Index == 0 {
			variant.Color = t.format
		}
	}

	desc := &wgpu.RenderPassDescriptor{
		Label:            p.Name,
		ColorAttachments: colors,
	}
	if p.DepthAttachment != nil {
		t, err := b.resolve(g, p.DepthAttachment.Handle)
		if err != nil {
			return nil, err
		}
		desc.DepthStencilAttachment = &wgpu.RenderPassDepthStencilAttachment{
			View:           t.view,
			DepthLoadOp:    wgpu.LoadOpLoad,
			DepthStoreOp:   wgpu.StoreOpStore,
			StencilLoadOp:  wgpu.LoadOpLoad,
			StencilStoreOp: wgpu.StoreOpStore,
		}
		variant.Depth = t.format
	}

	b.current = &wgpuCommandBuffer{
		backend: b,
		graph:   g,
		pass:    b.frameEncoder.BeginRenderPass(desc),
		variant: variant,
		name:    p.Name,
	}
	b.stats.Passes++
	return b.current, nil
}

func (b *wgpuRendererBackendImpl) EndRasterPass(p *graph.RasterPass) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	cmd := b.current
	b.current = nil
	if cmd == nil {
		return fmt.Errorf("pass %q was not begun", p.Name)
	}
	cmd.pass.End()
	cmd.pass.Release()
	return errors.Join(cmd.errs...)
}

// resolve returns the GPU texture behind h, allocating transient textures from the pool.
func (b *wgpuRendererBackendImpl) resolve(g *graph.Graph, h graph.TextureHandle) (*gpuTarget, error) {
	if t, ok := b.frameTargets[h]; ok {
		return t, nil
	}
	desc, ok := g.Texture(h)
	if !ok {
		return nil, fmt.Errorf("unknown texture handle %d", h.ID())
	}
	if g.Imported(h) {
		return nil, fmt.Errorf("imported texture %q has no GPU resource", desc.Name)
	}

	key := desc
	used := b.poolUsed[key]
	if used < len(b.pool[key]) {
		t := b.pool[key][used]
		b.poolUsed[key] = used + 1
		b.frameTargets[h] = t
		return t, nil
	}

	t, err := b.createTarget(desc.Name, desc.Width, desc.Height, desc.Format, transientUsage)
	if err != nil {
		return nil, err
	}
	b.pool[key] = append(b.pool[key], t)
	b.poolUsed[key] = used + 1
	b.frameTargets[h] = t
	return t, nil
}

// writeUniform stores data in the next ring slot and returns its offset.
func (b *wgpuRendererBackendImpl) writeUniform(data []byte) (uint64, error) {
	if b.uniformNext >= b.uniformSlots {
		return 0, fmt.Errorf("more than %d draws in one frame", b.uniformSlots)
	}
	offset := uint64(b.uniformNext * uniformAlignment)
	b.uniformNext++
	b.queue.WriteBuffer(b.uniforms, offset, data)
	return offset, nil
}

func (b *wgpuRendererBackendImpl) releaseFrameBindGroups() {
	for _, bg := range b.frameBindGroups {
		bg.Release()
	}
	clear(b.frameBindGroups)
	b.frameBindGroups = b.frameBindGroups[:0]
}

func (b *wgpuRendererBackendImpl) releasePool() {
	for key, targets := range b.pool {
		for _, t := range targets {
			t.release()
		}
		delete(b.pool, key)
	}
	clear(b.poolUsed)
}

func (b *wgpuRendererBackendImpl) Release() {
	b.releaseFrameBindGroups()
	b.releasePool()
	b.cameraColor.release()
	b.cameraDepth.release()
	b.dummy.release()
	if b.blit != nil {
		b.blit.Release()
	}
	for key, p := range b.pipelines {
		p.Release()
		delete(b.pipelines, key)
	}
	if b.sampler != nil {
		b.sampler.Release()
	}
	if b.uniforms != nil {
		b.uniforms.Release()
	}
	if b.pipelineLayout != nil {
		b.pipelineLayout.Release()
	}
	if b.bindGroupLayout != nil {
		b.bindGroupLayout.Release()
	}
	if b.device != nil {
		b.device.Release()
	}
	if b.adapter != nil {
		b.adapter.Release()
	}
	if b.surface != nil {
		b.surface.Release()
	}
	if b.instance != nil {
		b.instance.Release()
	}
}

// wgpuCommandBuffer encodes graph commands into one wgpu render pass.
type wgpuCommandBuffer struct {
	backend *wgpuRendererBackendImpl
	graph   *graph.Graph
	pass    *wgpu.RenderPassEncoder
	variant pipeline.Variant
	name    string
	errs    []error
}

var _ graph.CommandBuffer = &wgpuCommandBuffer{}

func (c *wgpuCommandBuffer) BlitTexture(src graph.TextureHandle, scaleBias mgl32.Vec4) {
	b := c.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	b.blitProps.Clear()
	b.blitProps.SetTexture(graph.PropertyBlitTexture, src)
	b.blitProps.SetVector(graph.PropertyBlitScaleBias, scaleBias)
	if c.draw(b.blit, b.blitProps, 3, 1) {
		b.stats.Blits++
	}
}

func (c *wgpuCommandBuffer) DrawProcedural(mat material.Material, passIndex int, _ graph.Topology, vertexCount, instanceCount uint32, props *graph.PropertyBlock) {
	b := c.backend
	b.mu.Lock()
	defer b.mu.Unlock()

	matPass, ok := mat.Pass(passIndex)
	if !ok {
		c.fail(fmt.Errorf("material %q has no pass %d", mat.Name(), passIndex))
		return
	}
	p, ok := b.pipelines[matPass.PipelineKey]
	if !ok {
		c.fail(fmt.Errorf("no pipeline registered for key %q", matPass.PipelineKey))
		return
	}
	if c.draw(p, props, vertexCount, instanceCount) {
		b.stats.Draws++
	}
}

// draw binds p with a fresh uniform slot and the _BlitTexture of props, then draws.
// Called with the backend lock held.
func (c *wgpuCommandBuffer) draw(p pipeline.Pipeline, props *graph.PropertyBlock, vertexCount, instanceCount uint32) bool {
	b := c.backend

	rp, err := b.gpuPipeline(p, c.variant)
	if err != nil {
		c.fail(err)
		return false
	}

	params := NewGPUEffectParams(p, props, b.frameTime)
	offset, err := b.writeUniform(params.Marshal())
	if err != nil {
		c.fail(err)
		return false
	}

	view := b.dummy.view
	if props != nil {
		if h, ok := props.Texture(graph.PropertyBlitTexture); ok {
			t, err := b.resolve(c.graph, h)
			if err != nil {
				c.fail(err)
				return false
			}
			view = t.view
		}
	}

	bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  c.name,
		Layout: b.bindGroupLayout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: b.uniforms, Offset: offset, Size: GPUEffectParamsSize},
			{Binding: 1, TextureView: view},
			{Binding: 2, Sampler: b.sampler},
		},
	})
	if err != nil {
		c.fail(fmt.Errorf("failed to create bind group: %w", err))
		return false
	}
	b.frameBindGroups = append(b.frameBindGroups, bg)

	c.pass.SetPipeline(rp)
	c.pass.SetBindGroup(0, bg, nil)
	c.pass.Draw(vertexCount, instanceCount, 0, 0)
	return true
}

func (c *wgpuCommandBuffer) fail(err error) {
	c.errs = append(c.errs, err)
	c.backend.logger.Warn("draw skipped", zap.String("pass", c.name), zap.Error(err))
}
