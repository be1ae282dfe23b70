// Package rendergraph compiles a frame's worth of GPU passes into a
// scheduled, memory-aliased, barrier-planned execution plan.
//
// A System collects passes with AddPass, turns them into an executable
// plan with Compile, and runs that plan against a backend.Backend with
// Execute. Compile is deterministic: the same graph built into two fresh
// Systems produces byte-identical scheduling, aliasing, and barrier
// decisions. Compile does not clear the resource table, so a second
// Compile on the same System re-runs every setup callback and appends a
// new set of resource handles after the existing ones.
package rendergraph

import (
	"log/slog"

	"github.com/gogpu/rendergraph/backend"
	"github.com/gogpu/rendergraph/barrier"
	"github.com/gogpu/rendergraph/cull"
	"github.com/gogpu/rendergraph/lifetime"
	"github.com/gogpu/rendergraph/pass"
	"github.com/gogpu/rendergraph/resource"
	"github.com/gogpu/rendergraph/validate"
	"github.com/gogpu/rendergraph/version"
)

// System owns a render graph's declared resources and passes, and the
// derived compile artifacts (versioning, culling, scheduling, lifetimes,
// aliasing, barriers) produced by the most recent Compile call.
type System struct {
	Table resource.Table
	Deps  resource.Deps
	Graph pass.Graph

	backend backend.Backend

	assignment *version.Assignment
	producers  *version.ProducerIndex
	live       *cull.Result
	dag        *pass.DAG

	Schedule        []resource.PassHandle
	Intervals       *lifetime.Intervals
	PhysicalMapping *lifetime.PhysicalMapping
	BarrierPlan     *barrier.Plan
}

// New constructs an empty System, ready to accept passes via AddPass.
func New(opts ...Option) *System {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &System{backend: o.backend}
}

// SetBackend replaces the backend targeted by Compile's resource
// allocation step and by Execute's barrier application. A nil backend is
// legal.
func (s *System) SetBackend(b backend.Backend) {
	s.backend = b
}

// Backend returns the backend currently attached to the system, or nil.
func (s *System) Backend() backend.Backend {
	return s.backend
}

// AddPass registers a pass's setup and execute callbacks and returns its
// handle. setup runs during every subsequent Compile; execute runs once
// per Execute call, in schedule order, and only if the pass survived
// culling in the last Compile. execute may be nil for a pass that only
// participates in dependency tracking.
func (s *System) AddPass(setup pass.SetupFunc, execute pass.ExecuteFunc) resource.PassHandle {
	return s.Graph.Add(setup, execute)
}

// Compile runs the full render-graph compile pipeline over the
// currently-registered passes:
//
//	A. invoke every pass's setup function, capturing resource declarations
//	   and read/write dependencies
//	B. assign a version to every capture (version.Assign)
//	C. build the producer index (version.BuildProducerIndex)
//	D. cull passes not reachable from a declared output (cull.Run)
//	E. run fatal validation over the live subgraph (validate.Run)
//	F. build the live-pass dependency DAG (pass.BuildDAG)
//	G. topologically schedule the live passes (pass.Schedule)
//	H. compute per-resource lifetime intervals (lifetime.Compute)
//	I. greedily alias compatible, non-overlapping resources onto shared
//	   physical slots (lifetime.Alias)
//	J. build the per-pass barrier plan (barrier.Build)
//
// If a backend is attached, its OnCompileResourceAllocation is invoked
// last so it can materialize the physical resource table. Compile panics
// with a *rgerror.CompileError on any fatal validation or scheduling
// failure; the system's derived state is left undefined until the next
// successful Compile or a Clear.
func (s *System) Compile() error {
	log := Logger()
	passCount := s.Graph.Len()

	s.Deps.Reset(passCount)

	ctx := &pass.SetupContext{Table: &s.Table, Deps: &s.Deps}
	for i := 0; i < passCount; i++ {
		ctx.Current = resource.PassHandle(i)
		s.Deps.BeginPass(ctx.Current)
		s.Graph.Setup[i](ctx)
	}

	imageCount, bufferCount := s.Table.Images.Count(), s.Table.Buffers.Count()
	log.Debug("rendergraph: setup complete", slog.Int("passes", passCount), slog.Int("images", imageCount), slog.Int("buffers", bufferCount))

	s.assignment = version.Assign(passCount, &s.Deps, imageCount, bufferCount)
	s.producers = version.BuildProducerIndex(passCount, &s.Deps, s.assignment, imageCount, bufferCount)
	log.Debug("rendergraph: versioning complete")

	s.live = cull.Run(passCount, &s.Deps, s.assignment, s.producers, imageCount, bufferCount)
	if culled := passCount - s.live.Count(); culled > 0 {
		log.Warn("rendergraph: culled unreachable passes", slog.Int("culled", culled), slog.Int("live", s.live.Count()))
	}

	validate.Run(s.live.Live, &s.Deps, &s.Table, s.assignment, s.producers)
	log.Debug("rendergraph: validation passed")

	s.dag = pass.BuildDAG(passCount, s.live.Live, &s.Deps, s.assignment, s.producers)
	s.Schedule = pass.Schedule(passCount, s.live.Live, s.dag)
	log.Debug("rendergraph: scheduled", slog.Int("scheduled", len(s.Schedule)))

	s.Intervals = lifetime.Compute(s.Schedule, &s.Deps, imageCount, bufferCount)
	s.PhysicalMapping = lifetime.Alias(s.Intervals, &s.Table)
	log.Debug("rendergraph: aliasing complete",
		slog.Int("physical_images", s.PhysicalMapping.ImagePhysicalCount),
		slog.Int("physical_buffers", s.PhysicalMapping.BufferPhysicalCount))

	s.BarrierPlan = barrier.Build(passCount, s.Schedule, &s.Deps, s.PhysicalMapping)
	log.Debug("rendergraph: barrier plan built", slog.Int("ops", len(s.BarrierPlan.Ops)))

	if s.backend != nil {
		if err := s.backend.OnCompileResourceAllocation(&s.Table, s.PhysicalMapping); err != nil {
			return err
		}
	}

	return nil
}

// Execute walks the compiled schedule and, for each pass in order, applies
// its barrier slice and then invokes its execute callback. Execute is a
// no-op if no backend is attached. A pass with a nil execute callback is
// skipped after its barriers are applied.
func (s *System) Execute() error {
	if s.backend == nil {
		return nil
	}

	execCtx := &pass.ExecuteContext{Backend: s.backend}

	for _, p := range s.Schedule {
		if err := s.backend.ApplyBarriers(p, s.BarrierPlan); err != nil {
			return err
		}
		if int(p) < len(s.Graph.Execute) && s.Graph.Execute[p] != nil {
			s.Graph.Execute[p](execCtx)
		}
	}

	return nil
}

// Clear releases every declared logical resource. Passes registered via
// AddPass are not removed; a subsequent Compile re-runs their setup
// functions against the now-empty resource table.
func (s *System) Clear() {
	s.Table.Clear()
}
