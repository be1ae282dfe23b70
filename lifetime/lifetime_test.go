package lifetime

import (
	"testing"

	"github.com/gogpu/rendergraph/resource"
)

// buildAliasingChain builds the five-pass chain from the aliasing
// scenario: R1 (writes r1 100x100), R2 (reads r1, writes r2), R3 (reads
// r2, writes r3), R4 (reads r3, writes out), R5 (reads out, writes r4
// 200x100, declares r4 output). r1, r2, r3, out share identical
// 100x100 metadata so they are aliasing-compatible with each other; r4
// is a different size and is not.
func buildAliasingChain(t *testing.T) (*resource.Table, *resource.Deps, []resource.PassHandle) {
	t.Helper()
	var tbl resource.Table
	info100 := resource.ImageInfo{
		Format: resource.FormatR8G8B8A8Unorm,
		Extent: resource.Extent3D{Width: 100, Height: 100, Depth: 1},
		Usage:  resource.ImageUsageColorAttachment,
		Type:   resource.ImageType2D,
	}
	info200 := info100
	info200.Extent = resource.Extent3D{Width: 200, Height: 100, Depth: 1}

	var d resource.Deps
	d.Reset(5)
	ctx := &setupContextStub{Table: &tbl, Deps: &d}

	ctx.begin(0)
	r1 := tbl.Images.Add(info100)
	ctx.write(r1)

	ctx.begin(1)
	r2 := tbl.Images.Add(info100)
	ctx.read(r1)
	ctx.write(r2)

	ctx.begin(2)
	r3 := tbl.Images.Add(info100)
	ctx.read(r2)
	ctx.write(r3)

	ctx.begin(3)
	out := tbl.Images.Add(info100)
	ctx.read(r3)
	ctx.write(out)

	ctx.begin(4)
	r4 := tbl.Images.Add(info200)
	ctx.read(out)
	ctx.write(r4)
	d.Outputs.ImageOutputs = append(d.Outputs.ImageOutputs, r4)

	schedule := []resource.PassHandle{0, 1, 2, 3, 4}
	return &tbl, &d, schedule
}

// setupContextStub records reads/writes directly on Deps without pulling
// in the pass package, keeping this test self-contained.
type setupContextStub struct {
	Table   *resource.Table
	Deps    *resource.Deps
	current resource.PassHandle
}

func (s *setupContextStub) begin(p resource.PassHandle) {
	s.current = p
	s.Deps.BeginPass(p)
}

func (s *setupContextStub) read(h resource.Handle) {
	s.Deps.ImageReads.Append(s.current, h, uint32(resource.ImageUsageSampled))
}

func (s *setupContextStub) write(h resource.Handle) {
	s.Deps.ImageWrites.Append(s.current, h, uint32(resource.ImageUsageColorAttachment))
}

func TestComputeIntervalsAliasingChain(t *testing.T) {
	tbl, d, schedule := buildAliasingChain(t)
	iv := Compute(schedule, d, tbl.Images.Count(), 0)

	// r1 = handle 0: written by pass 0 (index 0), read by pass 1 (index 1).
	if iv.ImageFirst[0] != 0 || iv.ImageLast[0] != 1 {
		t.Errorf("lifetime(r1) = [%d,%d], want [0,1]", iv.ImageFirst[0], iv.ImageLast[0])
	}
	// r2 = handle 1: written by pass 1 (index 1), read by pass 2 (index 2).
	if iv.ImageFirst[1] != 1 || iv.ImageLast[1] != 2 {
		t.Errorf("lifetime(r2) = [%d,%d], want [1,2]", iv.ImageFirst[1], iv.ImageLast[1])
	}
	// r3 = handle 2: written by pass 2 (index 2), read by pass 3 (index 3).
	if iv.ImageFirst[2] != 2 || iv.ImageLast[2] != 3 {
		t.Errorf("lifetime(r3) = [%d,%d], want [2,3]", iv.ImageFirst[2], iv.ImageLast[2])
	}
}

func TestAliasGreedyFirstFit(t *testing.T) {
	tbl, d, schedule := buildAliasingChain(t)
	iv := Compute(schedule, d, tbl.Images.Count(), 0)
	pm := Alias(iv, tbl)

	r1, r2, r3, r4 := resource.Handle(0), resource.Handle(1), resource.Handle(2), resource.Handle(4)

	if pm.ImageHandleToPhysical[r1] == pm.ImageHandleToPhysical[r2] {
		t.Error("r1 and r2 overlap at index 1 and must not share a slot")
	}
	if pm.ImageHandleToPhysical[r3] != pm.ImageHandleToPhysical[r1] {
		t.Errorf("r3 should alias onto r1's slot: r1=%d r3=%d", pm.ImageHandleToPhysical[r1], pm.ImageHandleToPhysical[r3])
	}
	if pm.ImageHandleToPhysical[r4] == pm.ImageHandleToPhysical[r1] {
		t.Error("r4 has incompatible metadata and must not share r1's slot")
	}
}

func TestAliasImportedNeverShares(t *testing.T) {
	var tbl resource.Table
	info := resource.ImageInfo{
		Format: resource.FormatR8G8B8A8Unorm,
		Extent: resource.Extent3D{Width: 64, Height: 64, Depth: 1},
		Usage:  resource.ImageUsageSampled,
		Type:   resource.ImageType2D,
	}
	ext := tbl.Images.Add(func() resource.ImageInfo { i := info; i.Imported = true; return i }())
	out := tbl.Images.Add(info)

	var d resource.Deps
	d.Reset(1)
	ctx := &setupContextStub{Table: &tbl, Deps: &d}
	ctx.begin(0)
	ctx.read(ext)
	ctx.write(out)

	schedule := []resource.PassHandle{0}
	iv := Compute(schedule, &d, tbl.Images.Count(), 0)
	pm := Alias(iv, &tbl)

	if pm.ImageHandleToPhysical[ext] == pm.ImageHandleToPhysical[out] {
		t.Error("imported resource must never share a physical slot")
	}
	if pm.ImagePhysicalCount != 2 {
		t.Errorf("ImagePhysicalCount = %d, want 2", pm.ImagePhysicalCount)
	}
}

