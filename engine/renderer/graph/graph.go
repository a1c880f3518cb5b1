package graph

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

// Topology is the primitive topology of a procedural draw.
type Topology int

const (
	// TopologyTriangles draws independent triangles.
	TopologyTriangles Topology = iota
)

// CommandBuffer is the raster command interface handed to a pass's render func.
type CommandBuffer interface {
	// BlitTexture copies src into the pass's color attachment using the given UV scale/bias.
	//
	// Parameters:
	//   - src: the texture to copy
	//   - scaleBias: UV scale in xy and bias in zw
	BlitTexture(src TextureHandle, scaleBias mgl32.Vec4)

	// DrawProcedural issues a draw with no vertex or index buffers; vertices are generated in the shader.
	//
	// Parameters:
	//   - mat: the material to draw with
	//   - passIndex: the material pass to use
	//   - topology: the primitive topology
	//   - vertexCount: the number of vertices
	//   - instanceCount: the number of instances
	//   - props: per-draw property overrides, read during the call only
	DrawProcedural(mat material.Material, passIndex int, topology Topology, vertexCount, instanceCount uint32, props *PropertyBlock)
}

// RasterContext is passed to a render func when its pass executes.
type RasterContext struct {
	Cmd CommandBuffer
}

// RenderFunc records the commands of a raster pass. It runs at execution time, not at declaration time.
type RenderFunc func(ctx RasterContext)

// RenderGraph is the declaration side of a frame graph, as seen by render passes.
type RenderGraph interface {
	// CreateTexture declares a transient texture that lives for the current frame.
	//
	// Parameters:
	//   - desc: the texture description
	//
	// Returns:
	//   - TextureHandle: a valid handle for the new texture
	CreateTexture(desc TextureDesc) TextureHandle

	// AddRasterPass starts declaring a raster sub-pass. The builder must be closed.
	//
	// Parameters:
	//   - name: the pass debug name
	//
	// Returns:
	//   - RasterPassBuilder: the builder for the pass
	AddRasterPass(name string) RasterPassBuilder
}

// RasterPassBuilder declares the resources and render func of one raster pass.
type RasterPassBuilder interface {
	// UseTexture declares that the pass accesses h (usually for reading).
	UseTexture(h TextureHandle, access AccessFlags)

	// SetRenderAttachment binds h as color attachment index.
	SetRenderAttachment(h TextureHandle, index int, access AccessFlags)

	// SetRenderAttachmentDepth binds h as the depth-stencil attachment.
	SetRenderAttachmentDepth(h TextureHandle, access AccessFlags)

	// SetRenderFunc sets the function that records the pass's commands.
	SetRenderFunc(fn RenderFunc)

	// Close commits the pass to the graph.
	Close()
}

// TextureUsage is a declared texture access.
type TextureUsage struct {
	Handle TextureHandle
	Access AccessFlags
}

// Attachment is a declared render attachment.
type Attachment struct {
	Handle TextureHandle
	Index  int
	Access AccessFlags
}

// RasterPass is a committed raster pass.
type RasterPass struct {
	Name             string
	Reads            []TextureUsage
	ColorAttachments []Attachment
	DepthAttachment  *Attachment
	Fn               RenderFunc
}

// UsesTexture reports whether the pass declared a UseTexture access to h.
func (p *RasterPass) UsesTexture(h TextureHandle) bool {
	for _, u := range p.Reads {
		if u.Handle == h {
			return true
		}
	}
	return false
}

// Writes reports whether the pass binds h as a color or depth attachment.
func (p *RasterPass) Writes(h TextureHandle) bool {
	for _, a := range p.ColorAttachments {
		if a.Handle == h {
			return true
		}
	}
	return p.DepthAttachment != nil && p.DepthAttachment.Handle == h
}

// Executor runs committed passes against a real or simulated device.
type Executor interface {
	// BeginRasterPass prepares the attachments of p and returns the command buffer its render func records into.
	BeginRasterPass(g *Graph, p *RasterPass) (CommandBuffer, error)

	// EndRasterPass finishes p.
	EndRasterPass(p *RasterPass) error
}

type textureEntry struct {
	desc     TextureDesc
	imported bool
}

// Graph is an in-memory RenderGraph that records passes for one frame and executes them in declaration order.
// Reset it at the start of every frame; storage is reused.
type Graph struct {
	textures []textureEntry
	passes   []*RasterPass
	errs     []error
}

var _ RenderGraph = &Graph{}

// NewGraph creates an empty Graph.
//
// Returns:
//   - *Graph: the new graph
func NewGraph() *Graph {
	return &Graph{}
}

// Reset drops all textures, passes and errors recorded for the previous frame.
func (g *Graph) Reset() {
	clear(g.textures)
	g.textures = g.textures[:0]
	clear(g.passes)
	g.passes = g.passes[:0]
	g.errs = g.errs[:0]
}

// ImportTexture registers a texture owned by the host (camera target, backbuffer, depth prepass output).
//
// Parameters:
//   - desc: the texture description
//
// Returns:
//   - TextureHandle: a valid handle for the texture
func (g *Graph) ImportTexture(desc TextureDesc) TextureHandle {
	g.textures = append(g.textures, textureEntry{desc: desc, imported: true})
	return TextureHandle{id: uint32(len(g.textures))}
}

func (g *Graph) CreateTexture(desc TextureDesc) TextureHandle {
	g.textures = append(g.textures, textureEntry{desc: desc})
	return TextureHandle{id: uint32(len(g.textures))}
}

// Texture returns the description of h.
//
// Parameters:
//   - h: the texture handle
//
// Returns:
//   - TextureDesc: the description
//   - bool: false if h is not known to the graph
func (g *Graph) Texture(h TextureHandle) (TextureDesc, bool) {
	if !g.known(h) {
		return TextureDesc{}, false
	}
	return g.textures[h.id-1].desc, true
}

// Imported reports whether h was registered with ImportTexture.
func (g *Graph) Imported(h TextureHandle) bool {
	return g.known(h) && g.textures[h.id-1].imported
}

// Passes returns the committed passes in declaration order.
func (g *Graph) Passes() []*RasterPass {
	return g.passes
}

// Err returns the declaration errors collected this frame, joined, or nil.
func (g *Graph) Err() error {
	return errors.Join(g.errs...)
}

func (g *Graph) AddRasterPass(name string) RasterPassBuilder {
	return &rasterPassBuilder{graph: g, pass: &RasterPass{Name: name}}
}

// Execute runs every committed pass in order through exec.
// Execution stops at the first executor error.
//
// Parameters:
//   - exec: the executor
//
// Returns:
//   - error: declaration errors, or the first execution error
func (g *Graph) Execute(exec Executor) error {
	if err := g.Err(); err != nil {
		return err
	}
	for _, p := range g.passes {
		cmd, err := exec.BeginRasterPass(g, p)
		if err != nil {
			return fmt.Errorf("begin pass %q: %w", p.Name, err)
		}
		p.Fn(RasterContext{Cmd: cmd})
		if err := exec.EndRasterPass(p); err != nil {
			return fmt.Errorf("end pass %q: %w", p.Name, err)
		}
	}
	return nil
}

func (g *Graph) known(h TextureHandle) bool {
	return h.IsValid() && int(h.id) <= len(g.textures)
}

// rasterPassBuilder is the implementation of the RasterPassBuilder interface.
type rasterPassBuilder struct {
	graph  *Graph
	pass   *RasterPass
	closed bool
}

func (b *rasterPassBuilder) UseTexture(h TextureHandle, access AccessFlags) {
	if !b.check(h, "UseTexture") {
		return
	}
	b.pass.Reads = append(b.pass.Reads, TextureUsage{Handle: h, Access: access})
}

func (b *rasterPassBuilder) SetRenderAttachment(h TextureHandle, index int, access AccessFlags) {
	if !b.check(h, "SetRenderAttachment") {
		return
	}
	b.pass.ColorAttachments = append(b.pass.ColorAttachments, Attachment{Handle: h, Index: index, Access: access})
}

func (b *rasterPassBuilder) SetRenderAttachmentDepth(h TextureHandle, access AccessFlags) {
	if !b.check(h, "SetRenderAttachmentDepth") {
		return
	}
	b.pass.DepthAttachment = &Attachment{Handle: h, Access: access}
}

func (b *rasterPassBuilder) SetRenderFunc(fn RenderFunc) {
	b.pass.Fn = fn
}

func (b *rasterPassBuilder) Close() {
	if b.closed {
		return
	}
	b.closed = true
	if b.pass.Fn == nil {
		b.graph.errs = append(b.graph.errs, fmt.Errorf("pass %q has no render func", b.pass.Name))
		return
	}
	if len(b.pass.ColorAttachments) == 0 && b.pass.DepthAttachment == nil {
		b.graph.errs = append(b.graph.errs, fmt.Errorf("pass %q has no render attachment", b.pass.Name))
		return
	}
	b.graph.passes = append(b.graph.passes, b.pass)
}

func (b *rasterPassBuilder) check(h TextureHandle, op string) bool {
	if b.graph.known(h) {
		return true
	}
	b.graph.errs = append(b.graph.errs, fmt.Errorf("pass %q: %s with unknown texture handle %d", b.pass.Name, op, h.id))
	return false
}
