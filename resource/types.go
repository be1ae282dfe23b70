package resource

// Format is an opaque, stable identifier for an image's pixel format.
// Concrete values map to VkFormat/DXGI_FORMAT in backend code; the
// compiler never interprets them beyond equality comparison during
// aliasing compatibility checks.
type Format uint32

// Recognized formats. The zero value, FormatUndefined, must never be
// used for a live image.
const (
	FormatUndefined Format = iota
	FormatR8G8B8A8Unorm
	FormatR8G8B8A8Srgb
	FormatB8G8R8A8Unorm
	FormatB8G8R8A8Srgb
	FormatD32Sfloat
)

// ImageUsage is a bitmask describing how an image will be used by a pass.
// These values are a stable wire-level contract shared with backends.
type ImageUsage uint32

const (
	ImageUsageTransferSrc            ImageUsage = 1 << 0
	ImageUsageTransferDst            ImageUsage = 1 << 1
	ImageUsageSampled                ImageUsage = 1 << 2
	ImageUsageStorage                ImageUsage = 1 << 3
	ImageUsageColorAttachment        ImageUsage = 1 << 4
	ImageUsageDepthStencilAttachment ImageUsage = 1 << 5
)

// BufferUsage is a bitmask describing how a buffer will be used by a
// pass. These values are a stable wire-level contract shared with
// backends.
type BufferUsage uint32

const (
	BufferUsageTransferSrc    BufferUsage = 1 << 0
	BufferUsageTransferDst    BufferUsage = 1 << 1
	BufferUsageUniformBuffer  BufferUsage = 1 << 2
	BufferUsageStorageBuffer  BufferUsage = 1 << 3
	BufferUsageIndexBuffer    BufferUsage = 1 << 4
	BufferUsageVertexBuffer   BufferUsage = 1 << 5
	BufferUsageIndirectBuffer BufferUsage = 1 << 6
)

// ImageType is the dimensionality of an image.
type ImageType uint32

const (
	ImageType1D ImageType = iota
	ImageType2D
	ImageType3D
)

// ImageFlags carries auxiliary creation flags orthogonal to usage.
type ImageFlags uint32

const (
	ImageFlagsNone           ImageFlags = 0
	ImageFlagsCubeCompatible ImageFlags = 1 << 0
	ImageFlagsMutableFormat  ImageFlags = 1 << 1
)

// Extent3D is a 3D image extent in texels.
type Extent3D struct {
	Width, Height, Depth uint32
}
