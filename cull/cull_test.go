package cull

import (
	"testing"

	"github.com/gogpu/rendergraph/pass"
	"github.com/gogpu/rendergraph/resource"
	"github.com/gogpu/rendergraph/version"
)

// buildStraightLineChain builds passes A (writes img_a), B (reads img_a,
// writes img_b), C (reads img_b, writes img_out, declares img_out output).
func buildStraightLineChain(t *testing.T) (*resource.Table, *resource.Deps, int) {
	t.Helper()
	var tbl resource.Table
	var d resource.Deps
	d.Reset(3)
	ctx := &pass.SetupContext{Table: &tbl, Deps: &d}

	ctx.Current = 0
	d.BeginPass(0)
	imgA := ctx.CreateImage(resource.ImageInfo{Name: "img_a"})
	ctx.WriteImage(imgA, resource.ImageUsageColorAttachment)

	ctx.Current = 1
	d.BeginPass(1)
	imgB := ctx.CreateImage(resource.ImageInfo{Name: "img_b"})
	ctx.ReadImage(imgA, resource.ImageUsageSampled)
	ctx.WriteImage(imgB, resource.ImageUsageColorAttachment)

	ctx.Current = 2
	d.BeginPass(2)
	imgOut := ctx.CreateImage(resource.ImageInfo{Name: "img_out"})
	ctx.ReadImage(imgB, resource.ImageUsageSampled)
	ctx.WriteImage(imgOut, resource.ImageUsageColorAttachment)
	ctx.DeclareImageOutput(imgOut)

	return &tbl, &d, 3
}

func run(tbl *resource.Table, d *resource.Deps, passCount int) *Result {
	imageCount := tbl.Images.Count()
	bufferCount := tbl.Buffers.Count()
	a := version.Assign(passCount, d, imageCount, bufferCount)
	idx := version.BuildProducerIndex(passCount, d, a, imageCount, bufferCount)
	return Run(passCount, d, a, idx, imageCount, bufferCount)
}

func TestStraightLineChainAllLive(t *testing.T) {
	tbl, d, passCount := buildStraightLineChain(t)
	r := run(tbl, d, passCount)

	if r.Count() != 3 {
		t.Fatalf("live count = %d, want 3", r.Count())
	}
	for i := 0; i < 3; i++ {
		if !r.Live[i] {
			t.Errorf("pass %d should be live", i)
		}
	}
}

func TestDeadBranchCulling(t *testing.T) {
	tbl, d, _ := buildStraightLineChain(t)

	// Rebuild as 5 passes: D and E read/write resources that never feed
	// the declared output.
	newPassCount := 5
	d.Reset(newPassCount)
	tbl.Clear()
	ctx := &pass.SetupContext{Table: tbl, Deps: d}

	ctx.Current = 0
	d.BeginPass(0)
	imgA := ctx.CreateImage(resource.ImageInfo{Name: "img_a"})
	ctx.WriteImage(imgA, resource.ImageUsageColorAttachment)

	ctx.Current = 1
	d.BeginPass(1)
	imgB := ctx.CreateImage(resource.ImageInfo{Name: "img_b"})
	ctx.ReadImage(imgA, resource.ImageUsageSampled)
	ctx.WriteImage(imgB, resource.ImageUsageColorAttachment)

	ctx.Current = 2
	d.BeginPass(2)
	imgOut := ctx.CreateImage(resource.ImageInfo{Name: "img_out"})
	ctx.ReadImage(imgB, resource.ImageUsageSampled)
	ctx.WriteImage(imgOut, resource.ImageUsageColorAttachment)
	ctx.DeclareImageOutput(imgOut)

	ctx.Current = 3
	d.BeginPass(3)
	imgDead1 := ctx.CreateImage(resource.ImageInfo{Name: "img_dead1"})
	ctx.WriteImage(imgDead1, resource.ImageUsageColorAttachment)

	ctx.Current = 4
	d.BeginPass(4)
	ctx.ReadImage(imgDead1, resource.ImageUsageSampled)
	imgDead2 := ctx.CreateImage(resource.ImageInfo{Name: "img_dead2"})
	ctx.WriteImage(imgDead2, resource.ImageUsageColorAttachment)

	r := run(tbl, d, newPassCount)

	for i := 0; i < 3; i++ {
		if !r.Live[i] {
			t.Errorf("pass %d should remain live", i)
		}
	}
	for i := 3; i < 5; i++ {
		if r.Live[i] {
			t.Errorf("pass %d should be culled", i)
		}
	}
}

func TestImportedReadWithoutProducer(t *testing.T) {
	var tbl resource.Table
	var d resource.Deps
	d.Reset(1)
	ctx := &pass.SetupContext{Table: &tbl, Deps: &d, Current: 0}
	d.BeginPass(0)
	ext := ctx.CreateImage(resource.ImageInfo{Name: "ext", Imported: true})
	ctx.ReadImage(ext, resource.ImageUsageSampled)
	out := ctx.CreateImage(resource.ImageInfo{Name: "out"})
	ctx.WriteImage(out, resource.ImageUsageColorAttachment)
	ctx.DeclareImageOutput(out)

	r := run(&tbl, &d, 1)
	if !r.Live[0] {
		t.Error("the only pass should be live")
	}
}
