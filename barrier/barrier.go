package barrier

import (
	"sort"

	"github.com/gogpu/rendergraph/lifetime"
	"github.com/gogpu/rendergraph/resource"
)

// OpType discriminates a barrier op.
type OpType int

const (
	OpTransition OpType = iota
	OpUAV
	OpAliasing
)

// Kind discriminates which meta table an op's handles index into.
type Kind int

const (
	KindImage Kind = iota
	KindBuffer
)

// Access is the merged access level of every read/write record a pass
// has for one logical resource.
type Access int

const (
	AccessRead Access = iota
	AccessWrite
	AccessReadWrite
)

// Domain is the pipeline domain an access happens on. The compiler never
// assigns anything but DomainAny; a backend may refine it during
// lowering.
type Domain int

const (
	DomainAny Domain = iota
	DomainGraphics
	DomainCompute
	DomainCopy
)

// Op is one entry of the barrier plan.
type Op struct {
	Type         OpType
	Kind         Kind
	Logical      resource.Handle
	PrevLogical  resource.Handle
	Physical     resource.Handle
	SrcDomain    Domain
	DstDomain    Domain
	SrcAccess    Access
	DstAccess    Access
	SrcUsageBits uint32
	DstUsageBits uint32
}

// Plan is the CSR+SoA barrier plan: pass p's ops occupy
// Ops[Begin[p]:Begin[p]+Length[p]].
type Plan struct {
	Begin  []uint32
	Length []uint32
	Ops    []Op
}

// Range returns the [begin, end) slice bounds of pass p's ops.
func (p *Plan) Range(pass resource.PassHandle) (begin, end uint32) {
	begin = p.Begin[pass]
	return begin, begin + p.Length[pass]
}

type lastUse struct {
	logical   resource.Handle
	usageBits uint32
	domain    Domain
	access    Access
	valid     bool
}

func mergedAccess(read, write bool) Access {
	switch {
	case read && write:
		return AccessReadWrite
	case write:
		return AccessWrite
	default:
		return AccessRead
	}
}

func needsUAV(kind Kind, usageBits uint32) bool {
	if kind == KindImage {
		return usageBits&uint32(resource.ImageUsageStorage) != 0
	}
	return usageBits&uint32(resource.BufferUsageStorageBuffer) != 0
}

// Build walks the schedule and, per pass and resource kind, merges every
// read/write touch of a logical resource into one access descriptor,
// then compares it against the physical slot's last recorded use to
// decide which ops to emit.
func Build(passCount int, schedule []resource.PassHandle, d *resource.Deps, pm *lifetime.PhysicalMapping) *Plan {
	scratch := make([][]Op, passCount)

	lastImage := make([]lastUse, pm.ImagePhysicalCount)
	lastBuffer := make([]lastUse, pm.BufferPhysicalCount)

	insert := func(pass resource.PassHandle, kind Kind, logical, physical resource.Handle, access Access, usageBits uint32) {
		if physical == resource.InvalidHandle {
			return
		}
		lastVec := lastImage
		if kind == KindBuffer {
			lastVec = lastBuffer
		}
		if int(physical) >= len(lastVec) {
			return
		}
		last := &lastVec[physical]

		if last.valid && last.logical != logical {
			scratch[pass] = append(scratch[pass], Op{
				Type:        OpAliasing,
				Kind:        kind,
				Logical:     logical,
				PrevLogical: last.logical,
				Physical:    physical,
			})
		}

		if last.valid {
			changed := last.usageBits != usageBits || last.access != access || last.domain != DomainAny
			if changed {
				scratch[pass] = append(scratch[pass], Op{
					Type:         OpTransition,
					Kind:         kind,
					Logical:      logical,
					Physical:     physical,
					SrcDomain:    last.domain,
					DstDomain:    DomainAny,
					SrcAccess:    last.access,
					DstAccess:    access,
					SrcUsageBits: last.usageBits,
					DstUsageBits: usageBits,
				})
			}
			if last.access != AccessRead && needsUAV(kind, usageBits) {
				scratch[pass] = append(scratch[pass], Op{
					Type:     OpUAV,
					Kind:     kind,
					Logical:  logical,
					Physical: physical,
				})
			}
		}

		last.valid = true
		last.logical = logical
		last.access = access
		last.domain = DomainAny
		last.usageBits = usageBits
	}

	for _, pass := range schedule {
		visitKind(pass, KindImage, d.ImageReads, d.ImageWrites, pm.ImageHandleToPhysical, insert)
		visitKind(pass, KindBuffer, d.BufferReads, d.BufferWrites, pm.BufferHandleToPhysical, insert)
	}

	plan := &Plan{
		Begin:  make([]uint32, passCount+1),
		Length: make([]uint32, passCount),
	}
	var running uint32
	for p := 0; p < passCount; p++ {
		plan.Begin[p] = running
		plan.Length[p] = uint32(len(scratch[p]))
		plan.Ops = append(plan.Ops, scratch[p]...)
		running += plan.Length[p]
	}
	plan.Begin[passCount] = running

	return plan
}

// visitKind merges read and write ranges for one pass and resource kind
// into per-logical-handle {read,write,usage} accumulators, then calls
// insert once per distinct logical handle in ascending order — a fixed
// iteration order keeps the emitted barrier plan deterministic across
// identical compiles.
func visitKind(pass resource.PassHandle, kind Kind, reads, writes resource.DependencyList, physicalOf []resource.Handle,
	insert func(pass resource.PassHandle, kind Kind, logical, physical resource.Handle, access Access, usageBits uint32)) {

	type flags struct {
		read, write bool
		usage       uint32
	}
	touched := make(map[resource.Handle]*flags)
	order := make([]resource.Handle, 0, 4)

	get := func(h resource.Handle) *flags {
		f, ok := touched[h]
		if !ok {
			f = &flags{}
			touched[h] = f
			order = append(order, h)
		}
		return f
	}

	begin, end := reads.Range(pass)
	for j := begin; j < end; j++ {
		h := reads.List[j]
		f := get(h)
		f.read = true
		f.usage |= reads.UsageBits[j]
	}
	begin, end = writes.Range(pass)
	for j := begin; j < end; j++ {
		h := writes.List[j]
		f := get(h)
		f.write = true
		f.usage |= writes.UsageBits[j]
	}

	sort.Slice(order, func(i, j int) bool { return order[i] < order[j] })

	for _, logical := range order {
		f := touched[logical]
		physical := resource.InvalidHandle
		if int(logical) < len(physicalOf) {
			physical = physicalOf[logical]
		}
		insert(pass, kind, logical, physical, mergedAccess(f.read, f.write), f.usage)
	}
}
