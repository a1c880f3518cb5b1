package engine

import (
	"github.com/Carmen-Shannon/oxy-volume-pass/common"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/frame"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer/graph"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/scheduler"
)

const (
	scenePassName       = "Draw Scene"
	postProcessPassName = "Post Processing"
	finalBlitPassName   = "Final Blit"
)

// hostPass draws a host-owned full-screen material at a fixed event.
// When fetch is set it samples a copy of the active color target.
type hostPass struct {
	name  string
	event scheduler.RenderPassEvent
	mat   material.Material
	fetch bool
	props *graph.PropertyBlock
}

var _ scheduler.RenderPass = &hostPass{}

func newHostPass(name string, event scheduler.RenderPassEvent, mat material.Material, fetch bool) *hostPass {
	return &hostPass{
		name:  name,
		event: event,
		mat:   mat,
		fetch: fetch,
		props: graph.NewPropertyBlock(),
	}
}

func (p *hostPass) Name() string {
	return p.name
}

func (p *hostPass) Event() scheduler.RenderPassEvent {
	return p.event
}

func (p *hostPass) Input() scheduler.PassInput {
	return scheduler.InputNone
}

func (p *hostPass) RequiresIntermediateTexture() bool {
	return p.fetch
}

func (p *hostPass) RecordRenderGraph(g graph.RenderGraph, data *frame.Data) {
	if p.mat == nil || data == nil {
		return
	}
	res := data.Resources
	if !res.ActiveColor.IsValid() || (p.fetch && res.IsActiveTargetBackBuffer) {
		return
	}

	var source graph.TextureHandle
	if p.fetch {
		source = g.CreateTexture(res.CameraTargetDesc.ColorOnly(p.name + " Source"))
		addBlitPass(g, p.name+" Copy", res.ActiveColor, source)
	}

	b := g.AddRasterPass(p.name)
	if source.IsValid() {
		b.UseTexture(source, graph.AccessRead)
	}
	b.SetRenderAttachment(res.ActiveColor, 0, graph.AccessWrite)

	mat, props := p.mat, p.props
	b.SetRenderFunc(func(ctx graph.RasterContext) {
		props.Clear()
		if source.IsValid() {
			props.SetTexture(graph.PropertyBlitTexture, source)
			props.SetVector(graph.PropertyBlitScaleBias, common.FullCoverageScaleBias)
		}
		ctx.Cmd.DrawProcedural(mat, 0, graph.TopologyTriangles, 3, 1, props)
	})
	b.Close()
}

// addBlitPass declares a pass copying src into dst.
func addBlitPass(g graph.RenderGraph, name string, src, dst graph.TextureHandle) {
	b := g.AddRasterPass(name)
	b.UseTexture(src, graph.AccessRead)
	b.SetRenderAttachment(dst, 0, graph.AccessWrite)
	b.SetRenderFunc(func(ctx graph.RasterContext) {
		ctx.Cmd.BlitTexture(src, common.FullCoverageScaleBias)
	})
	b.Close()
}
