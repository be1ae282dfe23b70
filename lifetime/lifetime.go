package lifetime

import "github.com/gogpu/rendergraph/resource"

// NoUse marks a handle that no live pass ever reads or writes.
const NoUse = ^uint32(0)

// Intervals holds each resource's [First, Last] schedule-order index —
// the position of the earliest and latest live pass that touches it,
// not its declaration-order pass handle. A handle with First == NoUse is
// never touched by a live pass.
type Intervals struct {
	ImageFirst  []uint32
	ImageLast   []uint32
	BufferFirst []uint32
	BufferLast  []uint32
}

// Compute walks the schedule in order and, for every read or write of
// every scheduled pass, extends the touched resource's interval.
func Compute(schedule []resource.PassHandle, d *resource.Deps, imageCount, bufferCount int) *Intervals {
	iv := &Intervals{
		ImageFirst:  fillWith(imageCount, NoUse),
		ImageLast:   make([]uint32, imageCount),
		BufferFirst: fillWith(bufferCount, NoUse),
		BufferLast:  make([]uint32, bufferCount),
	}

	update := func(firsts, lasts []uint32, h resource.Handle, count int, index uint32) {
		if int(h) >= count {
			return
		}
		if firsts[h] == NoUse {
			firsts[h] = index
		}
		lasts[h] = index
	}

	for i, p := range schedule {
		index := uint32(i)

		begin, end := d.ImageReads.Range(p)
		for j := begin; j < end; j++ {
			update(iv.ImageFirst, iv.ImageLast, d.ImageReads.List[j], imageCount, index)
		}
		begin, end = d.ImageWrites.Range(p)
		for j := begin; j < end; j++ {
			update(iv.ImageFirst, iv.ImageLast, d.ImageWrites.List[j], imageCount, index)
		}
		begin, end = d.BufferReads.Range(p)
		for j := begin; j < end; j++ {
			update(iv.BufferFirst, iv.BufferLast, d.BufferReads.List[j], bufferCount, index)
		}
		begin, end = d.BufferWrites.Range(p)
		for j := begin; j < end; j++ {
			update(iv.BufferFirst, iv.BufferLast, d.BufferWrites.List[j], bufferCount, index)
		}
	}

	return iv
}

func fillWith(n int, v uint32) []uint32 {
	s := make([]uint32, n)
	for i := range s {
		s[i] = v
	}
	return s
}

// PhysicalMapping maps every touched logical handle onto a physical slot
// index. An untouched handle maps to resource.InvalidHandle.
type PhysicalMapping struct {
	ImageHandleToPhysical  []resource.Handle
	ImagePhysicalCount     int
	BufferHandleToPhysical []resource.Handle
	BufferPhysicalCount    int
}

type interval struct{ first, last uint32 }

func overlaps(a, b interval) bool {
	start := a.first
	if b.first > start {
		start = b.first
	}
	end := a.last
	if b.last < end {
		end = b.last
	}
	return start <= end
}

// Alias greedily assigns physical slots to images and buffers in
// ascending handle order. A resource unused by any live pass keeps the
// sentinel mapping. An imported resource always gets a fresh slot with
// no tracked interval, so nothing can ever alias onto it. A transient
// resource reuses the first existing slot whose representative is
// exactly compatible and whose recorded intervals do not overlap its
// own; otherwise it opens a new slot.
func Alias(iv *Intervals, tbl *resource.Table) *PhysicalMapping {
	pm := &PhysicalMapping{
		ImageHandleToPhysical:  fillWithHandle(tbl.Images.Count(), resource.InvalidHandle),
		BufferHandleToPhysical: fillWithHandle(tbl.Buffers.Count(), resource.InvalidHandle),
	}

	pm.ImagePhysicalCount = aliasKind(
		tbl.Images.Count(),
		iv.ImageFirst, iv.ImageLast,
		tbl.Images.IsImported,
		tbl.Images.Compatible,
		pm.ImageHandleToPhysical,
	)
	pm.BufferPhysicalCount = aliasKind(
		tbl.Buffers.Count(),
		iv.BufferFirst, iv.BufferLast,
		tbl.Buffers.IsImported,
		tbl.Buffers.Compatible,
		pm.BufferHandleToPhysical,
	)

	return pm
}

func aliasKind(count int, first, last []uint32, isImported []bool, compatible func(a, b resource.Handle) bool, out []resource.Handle) int {
	type slot struct {
		representative resource.Handle
		intervals      []interval // empty and untouched for an imported slot
		imported       bool
	}
	var slots []slot

	for h := 0; h < count; h++ {
		handle := resource.Handle(h)
		if first[h] == NoUse {
			continue
		}
		want := interval{first[h], last[h]}

		if isImported[h] {
			out[h] = resource.Handle(len(slots))
			slots = append(slots, slot{representative: handle, imported: true})
			continue
		}

		assigned := false
		for u := range slots {
			if slots[u].imported {
				continue
			}
			if !compatible(slots[u].representative, handle) {
				continue
			}
			conflict := false
			for _, existing := range slots[u].intervals {
				if overlaps(existing, want) {
					conflict = true
					break
				}
			}
			if conflict {
				continue
			}
			slots[u].intervals = append(slots[u].intervals, want)
			out[h] = resource.Handle(u)
			assigned = true
			break
		}

		if !assigned {
			out[h] = resource.Handle(len(slots))
			slots = append(slots, slot{representative: handle, intervals: []interval{want}})
		}
	}

	return len(slots)
}

func fillWithHandle(n int, v resource.Handle) []resource.Handle {
	s := make([]resource.Handle, n)
	for i := range s {
		s[i] = v
	}
	return s
}
