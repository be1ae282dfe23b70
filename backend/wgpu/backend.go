package wgpu

import (
	"fmt"
	"log"
	"sync"

	"github.com/gogpu/wgpu/core"
	types "github.com/gogpu/gputypes"

	"github.com/gogpu/rendergraph/backend"
	"github.com/gogpu/rendergraph/barrier"
	"github.com/gogpu/rendergraph/lifetime"
	"github.com/gogpu/rendergraph/resource"
)

func init() {
	backend.Register("wgpu", func() backend.Backend {
		return &Backend{}
	})
}

// Backend is a reference backend.Backend implementation lowering a
// compiled render graph onto github.com/gogpu/wgpu.
//
// A Backend without a device cannot be initialized; construct one with
// NewWGPUBackend.
type Backend struct {
	mu sync.Mutex

	device core.DeviceID
	queue  core.QueueID

	initialized bool

	// Physical resource tables, one entry per physical id, filled by
	// OnCompileResourceAllocation.
	images  []core.TextureID
	buffers []core.BufferID

	// Pending imported bindings, keyed by logical handle, applied the next
	// time OnCompileResourceAllocation runs.
	pendingImportedImages  map[resource.Handle]importedImage
	pendingImportedBuffers map[resource.Handle]core.BufferID
}

type importedImage struct {
	texture core.TextureID
	view    core.TextureViewID
}

// New returns an uninitialized wgpu backend with no device. Init on such a
// backend returns an error; it does not acquire an adapter or device
// itself. Use NewWGPUBackend to supply a device owned by the host
// application.
func New() *Backend {
	return &Backend{}
}

// NewWGPUBackend wraps an already-created device, the pattern gogpu-gg's
// render device carries a live handle across a subsystem instead of owning
// its lifecycle.
func NewWGPUBackend(device core.DeviceID) *Backend {
	return &Backend{device: device}
}

func (b *Backend) Name() string { return "wgpu" }

// Init acquires the queue of the device supplied to NewWGPUBackend and
// marks the backend ready. It returns an error if no device was supplied.
func (b *Backend) Init() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.device.IsZero() {
		return fmt.Errorf("wgpu: backend requires a device; construct with NewWGPUBackend")
	}

	queue, err := core.GetDeviceQueue(b.device)
	if err != nil {
		return fmt.Errorf("wgpu: failed to get device queue: %w", err)
	}
	b.queue = queue
	b.pendingImportedImages = make(map[resource.Handle]importedImage)
	b.pendingImportedBuffers = make(map[resource.Handle]core.BufferID)
	b.initialized = true
	return nil
}

// Close releases every physical resource this backend allocated. Imported
// resources are not owned and are left untouched.
func (b *Backend) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	importedTextures := make(map[core.TextureID]bool, len(b.pendingImportedImages))
	for _, im := range b.pendingImportedImages {
		importedTextures[im.texture] = true
	}
	importedBuffers := make(map[core.BufferID]bool, len(b.pendingImportedBuffers))
	for _, buf := range b.pendingImportedBuffers {
		importedBuffers[buf] = true
	}

	for _, tex := range b.images {
		if !tex.IsZero() && !importedTextures[tex] {
			_ = core.TextureDrop(tex)
		}
	}
	for _, buf := range b.buffers {
		if !buf.IsZero() && !importedBuffers[buf] {
			_ = core.BufferDrop(buf)
		}
	}
	b.images = nil
	b.buffers = nil
	b.initialized = false
}

func (b *Backend) BindImportedImage(logical resource.Handle, nativeImage, nativeView any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return backend.ErrNotInitialized
	}
	tex, ok := nativeImage.(core.TextureID)
	if !ok {
		return fmt.Errorf("wgpu: BindImportedImage: nativeImage must be a core.TextureID, got %T", nativeImage)
	}
	view, _ := nativeView.(core.TextureViewID)
	b.pendingImportedImages[logical] = importedImage{texture: tex, view: view}
	return nil
}

func (b *Backend) BindImportedBuffer(logical resource.Handle, nativeBuffer any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return backend.ErrNotInitialized
	}
	buf, ok := nativeBuffer.(core.BufferID)
	if !ok {
		return fmt.Errorf("wgpu: BindImportedBuffer: nativeBuffer must be a core.BufferID, got %T", nativeBuffer)
	}
	b.pendingImportedBuffers[logical] = buf
	return nil
}

// OnCompileResourceAllocation walks the physical resource table once per
// compile and materializes a native texture or buffer per non-imported
// physical slot, then binds any pending imported resources over their
// physical id. This mirrors the reference Vulkan and DX12 backends'
// on_compile_resource_allocation, which re-derives the whole physical
// table from scratch on every compile rather than diffing against the
// previous one.
func (b *Backend) OnCompileResourceAllocation(tbl *resource.Table, pm *lifetime.PhysicalMapping) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return backend.ErrNotInitialized
	}

	for _, tex := range b.images {
		if !tex.IsZero() {
			_ = core.TextureDrop(tex)
		}
	}
	for _, buf := range b.buffers {
		if !buf.IsZero() {
			_ = core.BufferDrop(buf)
		}
	}
	b.images = make([]core.TextureID, pm.ImagePhysicalCount)
	b.buffers = make([]core.BufferID, pm.BufferPhysicalCount)

	for i, physical := range pm.ImageHandleToPhysical {
		logical := resource.Handle(i)
		if int(physical) >= len(b.images) {
			continue
		}
		if imported, ok := b.pendingImportedImages[logical]; ok {
			b.images[physical] = imported.texture
			continue
		}
		if !b.images[physical].IsZero() {
			continue
		}
		if tbl.Images.IsImported[logical] {
			continue
		}
		desc := imageDescriptor(&tbl.Images, logical)
		tex, err := core.CreateTexture(b.device, desc)
		if err != nil {
			return fmt.Errorf("wgpu: create texture for physical slot %d: %w", physical, err)
		}
		b.images[physical] = tex
	}

	for i, physical := range pm.BufferHandleToPhysical {
		logical := resource.Handle(i)
		if int(physical) >= len(b.buffers) {
			continue
		}
		if imported, ok := b.pendingImportedBuffers[logical]; ok {
			b.buffers[physical] = imported
			continue
		}
		if !b.buffers[physical].IsZero() {
			continue
		}
		if tbl.Buffers.IsImported[logical] {
			continue
		}
		desc := bufferDescriptor(&tbl.Buffers, logical)
		buf, err := core.CreateBuffer(b.device, desc)
		if err != nil {
			return fmt.Errorf("wgpu: create buffer for physical slot %d: %w", physical, err)
		}
		b.buffers[physical] = buf
	}

	return nil
}

// ApplyBarriers writes one line per op of the pass's slice of the barrier
// plan to the standard log package, tagged with the queue Init acquired
// via core.GetDeviceQueue. It records nothing on the queue and emits no
// native pipeline barriers; the reference Vulkan backend's own
// apply_barriers is likewise an empty stub.
func (b *Backend) ApplyBarriers(pass resource.PassHandle, plan *barrier.Plan) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return backend.ErrNotInitialized
	}

	begin, end := plan.Range(pass)
	for _, op := range plan.Ops[begin:end] {
		switch op.Type {
		case barrier.OpAliasing:
			log.Printf("wgpu: queue %v: pass %d: physical slot %d reused (logical %d -> %d)",
				b.queue, pass, op.Physical, op.PrevLogical, op.Logical)
		case barrier.OpUAV:
			log.Printf("wgpu: queue %v: pass %d: UAV barrier on logical %d", b.queue, pass, op.Logical)
		case barrier.OpTransition:
			log.Printf("wgpu: queue %v: pass %d: usage transition on logical %d (%d -> %d)",
				b.queue, pass, op.Logical, op.SrcUsageBits, op.DstUsageBits)
		}
	}
	return nil
}

func imageDescriptor(m *resource.ImageMeta, h resource.Handle) *types.TextureDescriptor {
	extent := m.Extents[h]
	return &types.TextureDescriptor{
		Label: m.Names[h],
		Size: types.Extent3D{
			Width:              extent.Width,
			Height:             extent.Height,
			DepthOrArrayLayers: extent.Depth,
		},
		MipLevelCount: m.MipLevels[h],
		SampleCount:   m.SampleCounts[h],
		Dimension:     imageTypeToDimension(m.Types[h]),
		Format:        formatToWGPU(m.Formats[h]),
		Usage:         imageUsageToWGPU(m.Usages[h]),
	}
}

func bufferDescriptor(m *resource.BufferMeta, h resource.Handle) *types.BufferDescriptor {
	return &types.BufferDescriptor{
		Label: m.Names[h],
		Size:  m.Sizes[h],
		Usage: bufferUsageToWGPU(m.Usages[h]),
	}
}

func imageTypeToDimension(t resource.ImageType) types.TextureDimension {
	switch t {
	case resource.ImageType1D:
		return types.TextureDimension1D
	case resource.ImageType3D:
		return types.TextureDimension3D
	default:
		return types.TextureDimension2D
	}
}

func formatToWGPU(f resource.Format) types.TextureFormat {
	switch f {
	case resource.FormatR8G8B8A8Unorm:
		return types.TextureFormatRGBA8Unorm
	case resource.FormatR8G8B8A8Srgb:
		return types.TextureFormatRGBA8UnormSrgb
	case resource.FormatB8G8R8A8Unorm:
		return types.TextureFormatBGRA8Unorm
	case resource.FormatB8G8R8A8Srgb:
		return types.TextureFormatBGRA8UnormSrgb
	case resource.FormatD32Sfloat:
		return types.TextureFormatDepth32Float
	default:
		return types.TextureFormatRGBA8Unorm
	}
}

func imageUsageToWGPU(usage resource.ImageUsage) types.TextureUsage {
	var out types.TextureUsage
	if usage&resource.ImageUsageTransferSrc != 0 {
		out |= types.TextureUsageCopySrc
	}
	if usage&resource.ImageUsageTransferDst != 0 {
		out |= types.TextureUsageCopyDst
	}
	if usage&resource.ImageUsageSampled != 0 {
		out |= types.TextureUsageTextureBinding
	}
	if usage&resource.ImageUsageStorage != 0 {
		out |= types.TextureUsageStorageBinding
	}
	if usage&resource.ImageUsageColorAttachment != 0 {
		out |= types.TextureUsageRenderAttachment
	}
	if usage&resource.ImageUsageDepthStencilAttachment != 0 {
		out |= types.TextureUsageRenderAttachment
	}
	return out
}

func bufferUsageToWGPU(usage resource.BufferUsage) types.BufferUsage {
	var out types.BufferUsage
	if usage&resource.BufferUsageTransferSrc != 0 {
		out |= types.BufferUsageCopySrc
	}
	if usage&resource.BufferUsageTransferDst != 0 {
		out |= types.BufferUsageCopyDst
	}
	if usage&resource.BufferUsageUniformBuffer != 0 {
		out |= types.BufferUsageUniform
	}
	if usage&resource.BufferUsageStorageBuffer != 0 {
		out |= types.BufferUsageStorage
	}
	if usage&resource.BufferUsageIndexBuffer != 0 {
		out |= types.BufferUsageIndex
	}
	if usage&resource.BufferUsageVertexBuffer != 0 {
		out |= types.BufferUsageVertex
	}
	if usage&resource.BufferUsageIndirectBuffer != 0 {
		out |= types.BufferUsageIndirect
	}
	return out
}
