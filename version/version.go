package version

import (
	"github.com/gogpu/rendergraph/resource"
)

// Assignment holds one resource.Versioned entry per dependency-list entry
// captured during setup, aligned index-for-index with the corresponding
// resource.DependencyList.List slice.
type Assignment struct {
	ImageReads   []resource.Versioned
	ImageWrites  []resource.Versioned
	BufferReads  []resource.Versioned
	BufferWrites []resource.Versioned
}

// Assign walks passes in declaration order and stamps every read and write
// with a Versioned handle. Within a pass, all reads of a kind are stamped
// before any write of that kind, so a pass reading a resource it also
// writes observes the version that existed before its own write.
//
// A read is stamped with the sentinel when the resource's write counter is
// still zero at that point — either the resource is imported and has no
// internal producer, or the read precedes its first write, which
// validation later rejects for non-imported resources.
func Assign(passCount int, d *resource.Deps, imageCount, bufferCount int) *Assignment {
	a := &Assignment{
		ImageReads:   make([]resource.Versioned, len(d.ImageReads.List)),
		ImageWrites:  make([]resource.Versioned, len(d.ImageWrites.List)),
		BufferReads:  make([]resource.Versioned, len(d.BufferReads.List)),
		BufferWrites: make([]resource.Versioned, len(d.BufferWrites.List)),
	}

	imageNext := make([]resource.Version, imageCount)
	bufferNext := make([]resource.Version, bufferCount)

	for i := 0; i < passCount; i++ {
		p := resource.PassHandle(i)

		begin, end := d.ImageReads.Range(p)
		for j := begin; j < end; j++ {
			h := d.ImageReads.List[j]
			next := readCounter(imageNext, h)
			if next == 0 {
				a.ImageReads[j] = resource.InvalidVersioned
			} else {
				a.ImageReads[j] = resource.Pack(h, next-1)
			}
		}

		begin, end = d.ImageWrites.Range(p)
		for j := begin; j < end; j++ {
			h := d.ImageWrites.List[j]
			if int(h) >= imageCount {
				a.ImageWrites[j] = resource.InvalidVersioned
				continue
			}
			next := imageNext[h]
			a.ImageWrites[j] = resource.Pack(h, next)
			imageNext[h] = next + 1
		}

		begin, end = d.BufferReads.Range(p)
		for j := begin; j < end; j++ {
			h := d.BufferReads.List[j]
			next := readCounter(bufferNext, h)
			if next == 0 {
				a.BufferReads[j] = resource.InvalidVersioned
			} else {
				a.BufferReads[j] = resource.Pack(h, next-1)
			}
		}

		begin, end = d.BufferWrites.Range(p)
		for j := begin; j < end; j++ {
			h := d.BufferWrites.List[j]
			if int(h) >= bufferCount {
				a.BufferWrites[j] = resource.InvalidVersioned
				continue
			}
			next := bufferNext[h]
			a.BufferWrites[j] = resource.Pack(h, next)
			bufferNext[h] = next + 1
		}
	}

	return a
}

// readCounter returns the current version counter for h, treating an
// out-of-range handle the same as an unwritten one; validation is
// responsible for rejecting out-of-range handles outright.
func readCounter(next []resource.Version, h resource.Handle) resource.Version {
	if int(h) >= len(next) {
		return 0
	}
	return next[h]
}

// ProducerIndex maps a versioned handle to the pass that produced it, laid
// out as a CSR table: entry (offset[h] + v) is the producer of version v of
// handle h. LatestImage/LatestBuffer record the most recent version of
// every handle, sentinel if the handle was never written.
type ProducerIndex struct {
	ImageOffsets    []uint32
	ImageProducers  []resource.PassHandle
	LatestImage     []resource.Versioned
	BufferOffsets   []uint32
	BufferProducers []resource.PassHandle
	LatestBuffer    []resource.Versioned
}

// BuildProducerIndex prefix-sums per-handle write counts into offsets, then
// sweeps write records a second time to place each producing pass at its
// (offset + version) slot.
func BuildProducerIndex(passCount int, d *resource.Deps, a *Assignment, imageCount, bufferCount int) *ProducerIndex {
	idx := &ProducerIndex{}

	imageWriteCounts := make([]uint32, imageCount)
	for _, vh := range a.ImageWrites {
		if vh.Valid() {
			h, _ := vh.Unpack()
			imageWriteCounts[h]++
		}
	}
	idx.ImageOffsets = make([]uint32, imageCount+1)
	idx.LatestImage = make([]resource.Versioned, imageCount)
	var running uint32
	for h := 0; h < imageCount; h++ {
		idx.ImageOffsets[h] = running
		count := imageWriteCounts[h]
		if count > 0 {
			idx.LatestImage[h] = resource.Pack(resource.Handle(h), resource.Version(count-1))
		} else {
			idx.LatestImage[h] = resource.InvalidVersioned
		}
		running += count
	}
	idx.ImageOffsets[imageCount] = running
	idx.ImageProducers = make([]resource.PassHandle, running)
	for i := range idx.ImageProducers {
		idx.ImageProducers[i] = resource.InvalidPass
	}

	bufferWriteCounts := make([]uint32, bufferCount)
	for _, vh := range a.BufferWrites {
		if vh.Valid() {
			h, _ := vh.Unpack()
			bufferWriteCounts[h]++
		}
	}
	idx.BufferOffsets = make([]uint32, bufferCount+1)
	idx.LatestBuffer = make([]resource.Versioned, bufferCount)
	running = 0
	for h := 0; h < bufferCount; h++ {
		idx.BufferOffsets[h] = running
		count := bufferWriteCounts[h]
		if count > 0 {
			idx.LatestBuffer[h] = resource.Pack(resource.Handle(h), resource.Version(count-1))
		} else {
			idx.LatestBuffer[h] = resource.InvalidVersioned
		}
		running += count
	}
	idx.BufferOffsets[bufferCount] = running
	idx.BufferProducers = make([]resource.PassHandle, running)
	for i := range idx.BufferProducers {
		idx.BufferProducers[i] = resource.InvalidPass
	}

	for i := 0; i < passCount; i++ {
		p := resource.PassHandle(i)

		begin, end := d.ImageWrites.Range(p)
		for j := begin; j < end; j++ {
			vh := a.ImageWrites[j]
			if !vh.Valid() {
				continue
			}
			h, v := vh.Unpack()
			idx.ImageProducers[idx.ImageOffsets[h]+uint32(v)] = p
		}

		begin, end = d.BufferWrites.Range(p)
		for j := begin; j < end; j++ {
			vh := a.BufferWrites[j]
			if !vh.Valid() {
				continue
			}
			h, v := vh.Unpack()
			idx.BufferProducers[idx.BufferOffsets[h]+uint32(v)] = p
		}
	}

	return idx
}

// ImageProducer returns the pass that produced version vh of an image, or
// resource.InvalidPass if vh is the sentinel or out of range.
func (idx *ProducerIndex) ImageProducer(vh resource.Versioned) resource.PassHandle {
	return lookup(vh, idx.ImageOffsets, idx.ImageProducers)
}

// BufferProducer returns the pass that produced version vh of a buffer, or
// resource.InvalidPass if vh is the sentinel or out of range.
func (idx *ProducerIndex) BufferProducer(vh resource.Versioned) resource.PassHandle {
	return lookup(vh, idx.BufferOffsets, idx.BufferProducers)
}

func lookup(vh resource.Versioned, offsets []uint32, producers []resource.PassHandle) resource.PassHandle {
	if !vh.Valid() {
		return resource.InvalidPass
	}
	h, v := vh.Unpack()
	if int(h)+1 >= len(offsets) {
		return resource.InvalidPass
	}
	base, end := offsets[h], offsets[h+1]
	idx := base + uint32(v)
	if idx >= end {
		return resource.InvalidPass
	}
	return producers[idx]
}
