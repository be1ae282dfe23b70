package cull

import (
	"github.com/gogpu/rendergraph/resource"
	"github.com/gogpu/rendergraph/version"
)

// Result records, per pass, whether it is transitively required by the
// graph's declared outputs.
type Result struct {
	Live []bool
}

// LivePasses returns the live pass handles in declaration order.
func (r *Result) LivePasses() []resource.PassHandle {
	out := make([]resource.PassHandle, 0, len(r.Live))
	for i, live := range r.Live {
		if live {
			out = append(out, resource.PassHandle(i))
		}
	}
	return out
}

// Count returns the number of live passes.
func (r *Result) Count() int {
	n := 0
	for _, live := range r.Live {
		if live {
			n++
		}
	}
	return n
}

// Run seeds a worklist from the producers of every declared output's
// latest version, then walks backward: a live pass's reads keep their
// producers live too. The sentinel "no producer" is a dead end — reading
// an imported resource does not keep anything alive beyond the read
// itself. Duplicate enqueues are suppressed by Live itself.
func Run(passCount int, d *resource.Deps, a *version.Assignment, idx *version.ProducerIndex, imageCount, bufferCount int) *Result {
	r := &Result{Live: make([]bool, passCount)}
	worklist := make([]resource.PassHandle, 0, passCount)

	enqueue := func(p resource.PassHandle) {
		if p == resource.InvalidPass || int(p) >= passCount {
			return
		}
		if !r.Live[p] {
			r.Live[p] = true
			worklist = append(worklist, p)
		}
	}

	for _, h := range d.Outputs.ImageOutputs {
		if int(h) >= imageCount {
			continue
		}
		enqueue(idx.ImageProducer(idx.LatestImage[h]))
	}
	for _, h := range d.Outputs.BufferOutputs {
		if int(h) >= bufferCount {
			continue
		}
		enqueue(idx.BufferProducer(idx.LatestBuffer[h]))
	}

	for len(worklist) > 0 {
		p := worklist[0]
		worklist = worklist[1:]

		begin, end := d.ImageReads.Range(p)
		for j := begin; j < end; j++ {
			enqueue(idx.ImageProducer(a.ImageReads[j]))
		}

		begin, end = d.BufferReads.Range(p)
		for j := begin; j < end; j++ {
			enqueue(idx.BufferProducer(a.BufferReads[j]))
		}
	}

	return r
}
