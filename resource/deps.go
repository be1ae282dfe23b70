package resource

// DependencyList is the CSR-encoded set of resource touches of one kind
// (image-read, image-write, buffer-read, buffer-write) across every pass.
// Entry j in List belongs to pass p iff Begin[p] <= j < Begin[p]+Length[p].
type DependencyList struct {
	List      []Handle
	UsageBits []uint32
	Begin     []uint32
	Length    []uint32
}

// reset grows Begin/Length to passCount and empties List/UsageBits,
// preparing the list for a fresh setup pass.
func (d *DependencyList) reset(passCount int) {
	d.List = d.List[:0]
	d.UsageBits = d.UsageBits[:0]
	if cap(d.Begin) < passCount {
		d.Begin = make([]uint32, passCount)
		d.Length = make([]uint32, passCount)
	} else {
		d.Begin = d.Begin[:passCount]
		d.Length = d.Length[:passCount]
		for i := range d.Begin {
			d.Begin[i] = 0
			d.Length[i] = 0
		}
	}
}

// beginPass records the current size of List as the start of pass p's
// range. Must be called before p's setup callback runs.
func (d *DependencyList) beginPass(p PassHandle) {
	d.Begin[p] = uint32(len(d.List))
}

// Append records a touch of handle h with the given usage bits for pass
// p, extending p's contiguous range by one. Exposed for setup-phase
// callers (a SetupContext) that record reads and writes as they happen.
func (d *DependencyList) Append(p PassHandle, h Handle, usage uint32) {
	d.List = append(d.List, h)
	d.UsageBits = append(d.UsageBits, usage)
	d.Length[p]++
}

// Range returns the [begin, end) slice bounds for pass p.
func (d *DependencyList) Range(p PassHandle) (begin, end uint32) {
	begin = d.Begin[p]
	return begin, begin + d.Length[p]
}

// OutputTable records the resources a compile must keep live: culling
// seeds its reverse-BFS from these declared outputs.
type OutputTable struct {
	ImageOutputs  []Handle
	BufferOutputs []Handle
}

func (o *OutputTable) reset() {
	o.ImageOutputs = o.ImageOutputs[:0]
	o.BufferOutputs = o.BufferOutputs[:0]
}

// Empty reports whether no output has been declared at all.
func (o *OutputTable) Empty() bool {
	return len(o.ImageOutputs) == 0 && len(o.BufferOutputs) == 0
}

// Deps bundles all four dependency-kind CSR tables captured during setup.
type Deps struct {
	ImageReads   DependencyList
	ImageWrites  DependencyList
	BufferReads  DependencyList
	BufferWrites DependencyList
	Outputs      OutputTable
}

// Reset clears all dependency lists and grows Begin/Length arrays to
// passCount, ready for a new setup sweep.
func (d *Deps) Reset(passCount int) {
	d.ImageReads.reset(passCount)
	d.ImageWrites.reset(passCount)
	d.BufferReads.reset(passCount)
	d.BufferWrites.reset(passCount)
	d.Outputs.reset()
}

// BeginPass marks the start of pass p's range in every dependency list.
// Must run before p's setup callback so the callback's appends land in a
// contiguous range.
func (d *Deps) BeginPass(p PassHandle) {
	d.ImageReads.beginPass(p)
	d.ImageWrites.beginPass(p)
	d.BufferReads.beginPass(p)
	d.BufferWrites.beginPass(p)
}
