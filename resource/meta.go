package resource

// ImageInfo describes an image at creation time. Zero-value fields take
// sensible defaults (a 1x1x1 extent, one mip level, one array layer, one
// sample).
type ImageInfo struct {
	Name         string
	Format       Format
	Extent       Extent3D
	Usage        ImageUsage
	Type         ImageType
	Flags        ImageFlags
	MipLevels    uint32
	ArrayLayers  uint32
	SampleCounts uint32
	Imported     bool
}

// BufferInfo describes a buffer at creation time.
type BufferInfo struct {
	Name     string
	Size     uint64
	Usage    BufferUsage
	Imported bool
}

// ImageMeta is the structure-of-arrays table describing every image
// handle declared during setup. All slices are indexed by Handle and are
// always the same length.
type ImageMeta struct {
	Names        []string
	Formats      []Format
	Extents      []Extent3D
	Usages       []ImageUsage
	Types        []ImageType
	Flags        []ImageFlags
	MipLevels    []uint32
	ArrayLayers  []uint32
	SampleCounts []uint32

	// IsImported marks a handle as backed by an externally owned GPU
	// object (e.g. a swapchain image). IsTransient is initialized to
	// !Imported and is never separately mutated afterwards.
	IsImported  []bool
	IsTransient []bool
}

// Count returns the number of declared image handles.
func (m *ImageMeta) Count() int { return len(m.Names) }

// Add appends a new image and returns its freshly assigned handle, equal
// to the meta table's size before the call.
func (m *ImageMeta) Add(info ImageInfo) Handle {
	h := Handle(len(m.Names))
	if info.MipLevels == 0 {
		info.MipLevels = 1
	}
	if info.ArrayLayers == 0 {
		info.ArrayLayers = 1
	}
	if info.SampleCounts == 0 {
		info.SampleCounts = 1
	}
	if info.Extent == (Extent3D{}) {
		info.Extent = Extent3D{Width: 1, Height: 1, Depth: 1}
	}

	m.Names = append(m.Names, info.Name)
	m.Formats = append(m.Formats, info.Format)
	m.Extents = append(m.Extents, info.Extent)
	m.Usages = append(m.Usages, info.Usage)
	m.Types = append(m.Types, info.Type)
	m.Flags = append(m.Flags, info.Flags)
	m.MipLevels = append(m.MipLevels, info.MipLevels)
	m.ArrayLayers = append(m.ArrayLayers, info.ArrayLayers)
	m.SampleCounts = append(m.SampleCounts, info.SampleCounts)
	m.IsImported = append(m.IsImported, info.Imported)
	m.IsTransient = append(m.IsTransient, !info.Imported)
	return h
}

// Compatible reports whether two image handles may share a physical
// slot: equal format, extent, usage mask, type, flags, mip count, array-
// layer count, and sample count. Equality is intentionally strict — see
// the aliasing allocator's package doc for rationale.
func (m *ImageMeta) Compatible(a, b Handle) bool {
	count := Handle(len(m.Names))
	if a >= count || b >= count {
		return false
	}
	return m.Formats[a] == m.Formats[b] &&
		m.Extents[a] == m.Extents[b] &&
		m.Usages[a] == m.Usages[b] &&
		m.Types[a] == m.Types[b] &&
		m.Flags[a] == m.Flags[b] &&
		m.MipLevels[a] == m.MipLevels[b] &&
		m.ArrayLayers[a] == m.ArrayLayers[b] &&
		m.SampleCounts[a] == m.SampleCounts[b]
}

// Clear empties the table, releasing all declared image handles.
func (m *ImageMeta) Clear() {
	m.Names = m.Names[:0]
	m.Formats = m.Formats[:0]
	m.Extents = m.Extents[:0]
	m.Usages = m.Usages[:0]
	m.Types = m.Types[:0]
	m.Flags = m.Flags[:0]
	m.MipLevels = m.MipLevels[:0]
	m.ArrayLayers = m.ArrayLayers[:0]
	m.SampleCounts = m.SampleCounts[:0]
	m.IsImported = m.IsImported[:0]
	m.IsTransient = m.IsTransient[:0]
}

// BufferMeta is the structure-of-arrays table describing every buffer
// handle declared during setup.
type BufferMeta struct {
	Names  []string
	Sizes  []uint64
	Usages []BufferUsage

	IsImported  []bool
	IsTransient []bool
}

// Count returns the number of declared buffer handles.
func (m *BufferMeta) Count() int { return len(m.Names) }

// Add appends a new buffer and returns its freshly assigned handle.
func (m *BufferMeta) Add(info BufferInfo) Handle {
	h := Handle(len(m.Names))
	m.Names = append(m.Names, info.Name)
	m.Sizes = append(m.Sizes, info.Size)
	m.Usages = append(m.Usages, info.Usage)
	m.IsImported = append(m.IsImported, info.Imported)
	m.IsTransient = append(m.IsTransient, !info.Imported)
	return h
}

// Compatible reports whether two buffer handles may share a physical
// slot: equal size and equal usage mask.
func (m *BufferMeta) Compatible(a, b Handle) bool {
	count := Handle(len(m.Names))
	if a >= count || b >= count {
		return false
	}
	return m.Sizes[a] == m.Sizes[b] && m.Usages[a] == m.Usages[b]
}

// Clear empties the table, releasing all declared buffer handles.
func (m *BufferMeta) Clear() {
	m.Names = m.Names[:0]
	m.Sizes = m.Sizes[:0]
	m.Usages = m.Usages[:0]
	m.IsImported = m.IsImported[:0]
	m.IsTransient = m.IsTransient[:0]
}

// Table is the registry that owns both image and buffer meta tables for
// a single System instance. Logical resources are created exclusively
// during setup and destroyed only by Clear.
type Table struct {
	Images  ImageMeta
	Buffers BufferMeta
}

// Clear empties both meta tables.
func (t *Table) Clear() {
	t.Images.Clear()
	t.Buffers.Clear()
}
