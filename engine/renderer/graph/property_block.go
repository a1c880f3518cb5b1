package graph

import (
	"maps"

	"github.com/go-gl/mathgl/mgl32"
)

// Well-known shader property names.
const (
	// PropertyBlitTexture is the source texture bound for effects that fetch the color buffer.
	PropertyBlitTexture = "_BlitTexture"

	// PropertyBlitScaleBias is the UV scale (xy) and bias (zw) applied when sampling the source texture.
	PropertyBlitScaleBias = "_BlitScaleBias"

	// PropertyIntensity is the resolved effect intensity.
	PropertyIntensity = "_Intensity"
)

// PropertyBlock holds per-draw shader property overrides.
//
// A PropertyBlock is single-owner scratch state: it is cleared and filled immediately
// before a draw and consumed by that draw. It is not safe for concurrent use.
type PropertyBlock struct {
	floats   map[string]float32
	vectors  map[string]mgl32.Vec4
	textures map[string]TextureHandle
}

// NewPropertyBlock creates an empty PropertyBlock.
//
// Returns:
//   - *PropertyBlock: the new block
func NewPropertyBlock() *PropertyBlock {
	return &PropertyBlock{
		floats:   make(map[string]float32),
		vectors:  make(map[string]mgl32.Vec4),
		textures: make(map[string]TextureHandle),
	}
}

// Clear removes every property while keeping allocated storage.
func (b *PropertyBlock) Clear() {
	clear(b.floats)
	clear(b.vectors)
	clear(b.textures)
}

// SetFloat sets a scalar property.
func (b *PropertyBlock) SetFloat(name string, v float32) {
	b.floats[name] = v
}

// SetVector sets a four-component vector property.
func (b *PropertyBlock) SetVector(name string, v mgl32.Vec4) {
	b.vectors[name] = v
}

// SetTexture binds a texture to a property slot.
func (b *PropertyBlock) SetTexture(name string, h TextureHandle) {
	b.textures[name] = h
}

// Float returns a scalar property and whether it is set.
func (b *PropertyBlock) Float(name string) (float32, bool) {
	v, ok := b.floats[name]
	return v, ok
}

// Vector returns a vector property and whether it is set.
func (b *PropertyBlock) Vector(name string) (mgl32.Vec4, bool) {
	v, ok := b.vectors[name]
	return v, ok
}

// Texture returns a texture property and whether it is set.
func (b *PropertyBlock) Texture(name string) (TextureHandle, bool) {
	h, ok := b.textures[name]
	return h, ok
}

// Len returns the total number of properties set.
func (b *PropertyBlock) Len() int {
	return len(b.floats) + len(b.vectors) + len(b.textures)
}

// Clone returns an independent copy of the block.
func (b *PropertyBlock) Clone() *PropertyBlock {
	c := NewPropertyBlock()
	maps.Copy(c.floats, b.floats)
	maps.Copy(c.vectors, b.vectors)
	maps.Copy(c.textures, b.textures)
	return c
}
