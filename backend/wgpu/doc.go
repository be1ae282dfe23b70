// Package wgpu is a reference backend.Backend implementation that lowers a
// compiled render graph onto github.com/gogpu/wgpu.
//
// Format and usage-bit translation (Handle -> types.TextureDescriptor) is
// grounded in the same shape as the original's Vulkan and DX12 backends'
// on_compile_resource_allocation: walk the physical resource table once at
// compile time, materialize a native texture or buffer per physical slot,
// then bind pending imported resources against the device.
//
// Barrier lowering is intentionally minimal: ApplyBarriers writes one log
// line per op, tagged with the device queue's id, rather than emitting
// real pipeline barriers, mirroring vk_backend's own apply_barriers stub in the reference
// implementation ("kept empty for now").
package wgpu
