package graph

import "github.com/cogentcore/webgpu/wgpu"

// TextureHandle identifies a texture known to a RenderGraph for the current frame.
// The zero value is the null handle and is never valid.
type TextureHandle struct {
	id uint32
}

// NullHandle is the invalid texture handle.
var NullHandle = TextureHandle{}

// IsValid reports whether the handle refers to a texture.
func (h TextureHandle) IsValid() bool {
	return h.id != 0
}

// ID returns the handle's numeric identifier, 0 for the null handle.
func (h TextureHandle) ID() uint32 {
	return h.id
}

// AccessFlags describes how a pass touches a texture.
type AccessFlags uint8

const (
	// AccessRead declares that the pass samples or otherwise reads the texture.
	AccessRead AccessFlags = 1 << iota

	// AccessWrite declares that the pass writes the texture.
	AccessWrite

	// AccessReadWrite declares both.
	AccessReadWrite = AccessRead | AccessWrite
)

// TextureDesc describes a texture's shape and format.
type TextureDesc struct {
	// Name is a debug label for the texture.
	Name string
	// Width and Height are the texture dimensions in pixels.
	Width, Height uint32
	// Format is the texel format.
	Format wgpu.TextureFormat
	// SampleCount is the MSAA sample count, 1 for single-sampled textures.
	SampleCount uint32
	// DepthBufferBits is non-zero when the texture carries a depth buffer alongside color.
	DepthBufferBits int
}

// ColorOnly returns a copy of d suitable for a scratch color copy: no depth, single sample.
func (d TextureDesc) ColorOnly(name string) TextureDesc {
	d.Name = name
	d.DepthBufferBits = 0
	d.SampleCount = 1
	return d
}
