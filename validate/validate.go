package validate

import (
	"github.com/gogpu/rendergraph/resource"
	"github.com/gogpu/rendergraph/rgerror"
	"github.com/gogpu/rendergraph/version"
)

// Run checks every live pass's recorded reads and writes and panics with
// a *rgerror.CompileError on the first fatal condition it finds:
//
//   - no image or buffer output declared at all
//   - a read or write handle at or beyond the resource's handle count
//   - a read paired with the sentinel versioned handle on a non-imported
//     resource (read-before-write)
//   - a read whose producer index lookup misses on a non-imported
//     resource
//   - a write paired with the sentinel versioned handle (only possible
//     for an out-of-range write handle, already caught above)
//
// Only live passes are checked; a culled pass's dangling dependencies on
// a resource nobody produced are not compile errors.
func Run(live []bool, d *resource.Deps, tbl *resource.Table, a *version.Assignment, idx *version.ProducerIndex) {
	if d.Outputs.Empty() {
		rgerror.Raise(rgerror.StageValidation, rgerror.KindNoOutputsDeclared, resource.InvalidPass, resource.InvalidHandle,
			"no image and no buffer outputs declared")
	}

	imageCount := tbl.Images.Count()
	bufferCount := tbl.Buffers.Count()

	for i, isLive := range live {
		if !isLive {
			continue
		}
		p := resource.PassHandle(i)

		begin, end := d.ImageReads.Range(p)
		for j := begin; j < end; j++ {
			h := d.ImageReads.List[j]
			if int(h) >= imageCount {
				rgerror.Raise(rgerror.StageValidation, rgerror.KindHandleOutOfRange, p, h, "image read handle out of range")
			}
			checkRead(p, h, a.ImageReads[j], tbl.Images.IsImported[h], idx.ImageProducer(a.ImageReads[j]))
		}

		begin, end = d.BufferReads.Range(p)
		for j := begin; j < end; j++ {
			h := d.BufferReads.List[j]
			if int(h) >= bufferCount {
				rgerror.Raise(rgerror.StageValidation, rgerror.KindHandleOutOfRange, p, h, "buffer read handle out of range")
			}
			checkRead(p, h, a.BufferReads[j], tbl.Buffers.IsImported[h], idx.BufferProducer(a.BufferReads[j]))
		}

		begin, end = d.ImageWrites.Range(p)
		for j := begin; j < end; j++ {
			h := d.ImageWrites.List[j]
			if int(h) >= imageCount {
				rgerror.Raise(rgerror.StageValidation, rgerror.KindWriteOutOfRange, p, h, "image write handle out of range")
			}
			if !a.ImageWrites[j].Valid() {
				rgerror.Raise(rgerror.StageValidation, rgerror.KindWriteOutOfRange, p, h, "image write out of range")
			}
		}

		begin, end = d.BufferWrites.Range(p)
		for j := begin; j < end; j++ {
			h := d.BufferWrites.List[j]
			if int(h) >= bufferCount {
				rgerror.Raise(rgerror.StageValidation, rgerror.KindWriteOutOfRange, p, h, "buffer write handle out of range")
			}
			if !a.BufferWrites[j].Valid() {
				rgerror.Raise(rgerror.StageValidation, rgerror.KindWriteOutOfRange, p, h, "buffer write out of range")
			}
		}
	}
}

func checkRead(p resource.PassHandle, h resource.Handle, vh resource.Versioned, isImported bool, producer resource.PassHandle) {
	if !vh.Valid() {
		if !isImported {
			rgerror.Raise(rgerror.StageValidation, rgerror.KindReadBeforeWrite, p, h, "read before write on non-imported resource")
		}
		return
	}
	if !isImported && producer == resource.InvalidPass {
		rgerror.Raise(rgerror.StageValidation, rgerror.KindReadBeforeWrite, p, h, "read producer lookup missed on non-imported resource")
	}
}
