package scheduler

import (
	"slices"

	"github.com/Carmen-Shannon/oxy-volume-pass/engine/frame"
	"github.com/Carmen-Shannon/oxy-volume-pass/engine/renderer/graph"
)

// Queue is the host-side Scheduler: it collects passes for one camera frame and records them in event order.
type Queue struct {
	passes []RenderPass
}

var _ Scheduler = &Queue{}

// NewQueue creates an empty Queue.
//
// Returns:
//   - *Queue: the new queue
func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) EnqueuePass(p RenderPass) {
	if p == nil {
		return
	}
	q.passes = append(q.passes, p)
}

// Reset drops the enqueued passes. Call once per camera frame.
func (q *Queue) Reset() {
	clear(q.passes)
	q.passes = q.passes[:0]
}

// Passes returns the enqueued passes sorted by event, keeping enqueue order within an event.
func (q *Queue) Passes() []RenderPass {
	slices.SortStableFunc(q.passes, func(a, b RenderPass) int {
		return int(a.Event()) - int(b.Event())
	})
	return q.passes
}

// Inputs returns the union of every enqueued pass's input requirements.
func (q *Queue) Inputs() PassInput {
	var in PassInput
	for _, p := range q.passes {
		in |= p.Input()
	}
	return in
}

// RequiresIntermediateTexture reports whether any enqueued pass needs an intermediate color target.
func (q *Queue) RequiresIntermediateTexture() bool {
	for _, p := range q.passes {
		if p.RequiresIntermediateTexture() {
			return true
		}
	}
	return false
}

// Record asks every enqueued pass, in event order, to declare its sub-passes into g.
//
// Parameters:
//   - g: the frame graph
//   - data: the camera frame context
func (q *Queue) Record(g graph.RenderGraph, data *frame.Data) {
	for _, p := range q.Passes() {
		p.RecordRenderGraph(g, data)
	}
}
