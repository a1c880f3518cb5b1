package scheduler

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-volume-pass/engine/frame"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer/graph"
)

type stubPass struct {
	name         string
	event        RenderPassEvent
	input        PassInput
	intermediate bool
	log          *[]string
}

func (p *stubPass) Name() string                      { return p.name }
func (p *stubPass) Event() RenderPassEvent            { return p.event }
func (p *stubPass) Input() PassInput                  { return p.input }
func (p *stubPass) RequiresIntermediateTexture() bool { return p.intermediate }
func (p *stubPass) RecordRenderGraph(graph.RenderGraph, *frame.Data) {
	*p.log = append(*p.log, p.name)
}

func TestQueueRecordsInEventOrder(t *testing.T) {
	var log []string
	q := NewQueue()
	q.EnqueuePass(&stubPass{name: "after-1", event: AfterRenderingPostProcessing, log: &log})
	q.EnqueuePass(&stubPass{name: "before-1", event: BeforeRenderingPostProcessing, input: InputDepth, log: &log})
	q.EnqueuePass(&stubPass{name: "after-2", event: AfterRenderingPostProcessing, input: InputNormal, intermediate: true, log: &log})
	q.EnqueuePass(nil)

	q.Record(graph.NewGraph(), &frame.Data{})

	want := []string{"before-1", "after-1", "after-2"}
	if len(log) != len(want) {
		t.Fatalf("recorded %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Errorf("record[%d] = %s, want %s", i, log[i], want[i])
		}
	}

	if in := q.Inputs(); !in.Has(InputDepth) || !in.Has(InputNormal) || in.Has(InputColor) {
		t.Errorf("Inputs = %b", in)
	}
	if !q.RequiresIntermediateTexture() {
		t.Error("RequiresIntermediateTexture should be true")
	}

	q.Reset()
	if len(q.Passes()) != 0 || q.Inputs() != InputNone {
		t.Error("Reset should empty the queue")
	}
}

func TestPassInputHas(t *testing.T) {
	in := InputColor | InputMotion
	if !in.Has(InputColor) || !in.Has(InputMotion) || !in.Has(InputColor|InputMotion) {
		t.Error("Has should report set bits")
	}
	if in.Has(InputDepth) || in.Has(InputNone) {
		t.Error("Has should not report unset bits or InputNone")
	}
}

func TestEventString(t *testing.T) {
	if BeforeRenderingPostProcessing.String() != "BeforeRenderingPostProcessing" {
		t.Error(BeforeRenderingPostProcessing.String())
	}
	if RenderPassEvent(7).String() != "RenderPassEvent(7)" {
		t.Error(RenderPassEvent(7).String())
	}
}
