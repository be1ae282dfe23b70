package pass

import (
	"sort"

	"github.com/gogpu/rendergraph/resource"
	"github.com/gogpu/rendergraph/version"
)

// DAG is the pass-to-pass dependency graph in CSR form: producer P has an
// edge to consumer C whenever C reads a version P produced. Edges are
// deduplicated per producer.
type DAG struct {
	AdjacencyBegin []uint32
	AdjacencyList  []resource.PassHandle
	InDegree       []uint32
	OutDegree      []uint32
}

// BuildDAG constructs the live-pass dependency graph. Only edges between
// two live passes are added; self-edges and edges touching a culled pass
// or an unresolved producer are dropped silently — validate has already
// rejected the fatal versions of these conditions.
func BuildDAG(passCount int, live []bool, d *resource.Deps, a *version.Assignment, idx *version.ProducerIndex) *DAG {
	outgoing := make([][]resource.PassHandle, passCount)

	addEdge := func(from, to resource.PassHandle) {
		if from == resource.InvalidPass || to == resource.InvalidPass {
			return
		}
		if int(from) >= passCount || int(to) >= passCount {
			return
		}
		if from == to {
			return
		}
		if !live[from] || !live[to] {
			return
		}
		outgoing[from] = append(outgoing[from], to)
	}

	for i := 0; i < passCount; i++ {
		consumer := resource.PassHandle(i)
		if !live[consumer] {
			continue
		}

		begin, end := d.ImageReads.Range(consumer)
		for j := begin; j < end; j++ {
			addEdge(idx.ImageProducer(a.ImageReads[j]), consumer)
		}

		begin, end = d.BufferReads.Range(consumer)
		for j := begin; j < end; j++ {
			addEdge(idx.BufferProducer(a.BufferReads[j]), consumer)
		}
	}

	dag := &DAG{
		AdjacencyBegin: make([]uint32, passCount+1),
		InDegree:       make([]uint32, passCount),
		OutDegree:      make([]uint32, passCount),
	}

	for from := 0; from < passCount; from++ {
		list := outgoing[from]
		sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
		list = dedupSorted(list)
		outgoing[from] = list
		dag.OutDegree[from] = uint32(len(list))
		for _, to := range list {
			dag.InDegree[to]++
		}
	}

	var running uint32
	for from := 0; from < passCount; from++ {
		dag.AdjacencyBegin[from] = running
		dag.AdjacencyList = append(dag.AdjacencyList, outgoing[from]...)
		running = uint32(len(dag.AdjacencyList))
	}
	dag.AdjacencyBegin[passCount] = running

	return dag
}

// Successors returns the slice of p's outgoing edge targets.
func (g *DAG) Successors(p resource.PassHandle) []resource.PassHandle {
	return g.AdjacencyList[g.AdjacencyBegin[p]:g.AdjacencyBegin[p+1]]
}

func dedupSorted(s []resource.PassHandle) []resource.PassHandle {
	if len(s) == 0 {
		return s
	}
	out := s[:1]
	for _, v := range s[1:] {
		if v != out[len(out)-1] {
			out = append(out, v)
		}
	}
	return out
}
