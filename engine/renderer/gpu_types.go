package renderer

import (
	"encoding/binary"
	"math"

	"github.com/Carmen-Shannon/oxy-volume-pass/common"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer/graph"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer/pipeline"
)

// GPUEffectParamsSize is the byte size of the EffectParams uniform declared in pipeline.Prelude.
const GPUEffectParamsSize = 96

// uniformAlignment is the minimum uniform buffer offset alignment guaranteed by WebGPU.
const uniformAlignment = 256

// PropertyTime is the material property the renderer writes the frame time to when the
// draw's property block does not set it.
const PropertyTime = "_Time"

// GPUEffectParams is the GPU-aligned uniform for full-screen draws.
// Matches the WGSL EffectParams struct layout exactly (see pipeline.Prelude).
type GPUEffectParams struct {
	BlitScaleBias [4]float32    // offset 0: UV scale in xy, bias in zw (16 bytes)
	Intensity     float32       // offset 16: effect intensity (4 bytes)
	Time          float32       // offset 20: seconds since start (4 bytes)
	_             [2]float32    // offset 24: padding to 16-byte alignment (8 bytes)
	Custom        [4][4]float32 // offset 32: pipeline-declared custom properties (64 bytes)
}

// NewGPUEffectParams packs the properties a draw set into the uniform layout of p.
// Unset values fall back to full-coverage scale/bias, zero intensity and time.
//
// Parameters:
//   - p: the pipeline being drawn, which declares the custom property slots
//   - props: the draw's properties, may be nil
//   - time: the frame time in seconds
//
// Returns:
//   - GPUEffectParams: the packed uniform
func NewGPUEffectParams(p pipeline.Pipeline, props *graph.PropertyBlock, time float32) GPUEffectParams {
	params := GPUEffectParams{
		BlitScaleBias: common.FullCoverageScaleBias,
		Time:          time,
	}
	if props == nil {
		return params
	}
	if v, ok := props.Vector(graph.PropertyBlitScaleBias); ok {
		params.BlitScaleBias = v
	}
	if v, ok := props.Float(graph.PropertyIntensity); ok {
		params.Intensity = v
	}
	if v, ok := props.Float(PropertyTime); ok {
		params.Time = v
	}
	if p == nil {
		return params
	}
	for slot, name := range p.Properties() {
		if v, ok := props.Vector(name); ok {
			params.Custom[slot] = v
		} else if f, ok := props.Float(name); ok {
			params.Custom[slot] = [4]float32{f, 0, 0, 0}
		}
	}
	return params
}

// Size returns the size of the GPUEffectParams struct in bytes.
//
// Returns:
//   - int: the size of the struct in bytes.
func (g *GPUEffectParams) Size() int {
	return GPUEffectParamsSize
}

// Marshal serializes the GPUEffectParams struct into a byte buffer suitable for GPU upload.
//
// Returns:
//   - []byte: 96-byte buffer ready for GPU upload.
func (g *GPUEffectParams) Marshal() []byte {
	buf := make([]byte, GPUEffectParamsSize)
	putVec4(buf[0:16], g.BlitScaleBias)
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(g.Intensity))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(g.Time))
	for i, v := range g.Custom {
		off := 32 + i*16
		putVec4(buf[off:off+16], v)
	}
	return buf
}

func putVec4(dst []byte, v [4]float32) {
	for i, f := range v {
		binary.LittleEndian.PutUint32(dst[i*4:i*4+4], math.Float32bits(f))
	}
}
