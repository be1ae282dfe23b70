package pass

import (
	"github.com/gogpu/rendergraph/resource"
	"github.com/gogpu/rendergraph/rgerror"
)

// Schedule computes a topological order of live passes via Kahn's
// algorithm, using dag's dependency structure. It doubles as cycle
// detection: if fewer passes are emitted than are live, the render graph
// contains a cycle and Schedule raises a *rgerror.CompileError.
func Schedule(passCount int, live []bool, dag *DAG) []resource.PassHandle {
	inDegree := make([]uint32, passCount)
	copy(inDegree, dag.InDegree)

	queue := make([]resource.PassHandle, 0, passCount)
	for p := 0; p < passCount; p++ {
		if live[p] && inDegree[p] == 0 {
			queue = append(queue, resource.PassHandle(p))
		}
	}

	sorted := make([]resource.PassHandle, 0, passCount)
	for len(queue) > 0 {
		p := queue[0]
		queue = queue[1:]
		sorted = append(sorted, p)

		for _, next := range dag.Successors(p) {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	liveCount := 0
	for _, isLive := range live {
		if isLive {
			liveCount++
		}
	}
	if len(sorted) != liveCount {
		rgerror.Raise(rgerror.StageScheduling, rgerror.KindCycleDetected, resource.InvalidPass, resource.InvalidHandle,
			"cycle detected in render graph")
	}

	return sorted
}
