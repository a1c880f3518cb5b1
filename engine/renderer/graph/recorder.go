package graph

import (
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer/material"
	"github.com/go-gl/mathgl/mgl32"
)

// CommandKind identifies a recorded command.
type CommandKind int

const (
	// CommandBlit is a BlitTexture call.
	CommandBlit CommandKind = iota
	// CommandDraw is a DrawProcedural call.
	CommandDraw
)

// Command is one recorded command buffer call.
type Command struct {
	Kind CommandKind
	// Pass is the name of the raster pass the command was recorded in.
	Pass string

	Source    TextureHandle
	ScaleBias mgl32.Vec4

	Material      material.Material
	PassIndex     int
	Topology      Topology
	VertexCount   uint32
	InstanceCount uint32
	// Properties is a snapshot of the property block at draw time.
	Properties *PropertyBlock
}

// CommandRecorder is an Executor and CommandBuffer that captures commands instead of submitting them.
// It is used by tests and by hosts that want to inspect a frame.
type CommandRecorder struct {
	current  string
	Commands []Command
}

var (
	_ Executor      = &CommandRecorder{}
	_ CommandBuffer = &CommandRecorder{}
)

// NewCommandRecorder creates an empty recorder.
//
// Returns:
//   - *CommandRecorder: the new recorder
func NewCommandRecorder() *CommandRecorder {
	return &CommandRecorder{}
}

// Reset drops recorded commands.
func (r *CommandRecorder) Reset() {
	r.current = ""
	r.Commands = r.Commands[:0]
}

func (r *CommandRecorder) BeginRasterPass(_ *Graph, p *RasterPass) (CommandBuffer, error) {
	r.current = p.Name
	return r, nil
}

func (r *CommandRecorder) EndRasterPass(_ *RasterPass) error {
	r.current = ""
	return nil
}

func (r *CommandRecorder) BlitTexture(src TextureHandle, scaleBias mgl32.Vec4) {
	r.Commands = append(r.Commands, Command{
		Kind:      CommandBlit,
		Pass:      r.current,
		Source:    src,
		ScaleBias: scaleBias,
	})
}

func (r *CommandRecorder) DrawProcedural(mat material.Material, passIndex int, topology Topology, vertexCount, instanceCount uint32, props *PropertyBlock) {
	var snapshot *PropertyBlock
	if props != nil {
		snapshot = props.Clone()
	}
	r.Commands = append(r.Commands, Command{
		Kind:          CommandDraw,
		Pass:          r.current,
		Material:      mat,
		PassIndex:     passIndex,
		Topology:      topology,
		VertexCount:   vertexCount,
		InstanceCount: instanceCount,
		Properties:    snapshot,
	})
}

// Draws returns only the draw commands, in order.
func (r *CommandRecorder) Draws() []Command {
	var out []Command
	for _, c := range r.Commands {
		if c.Kind == CommandDraw {
			out = append(out, c)
		}
	}
	return out
}
