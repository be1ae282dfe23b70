package backend

import (
	"errors"

	"github.com/gogpu/rendergraph/barrier"
	"github.com/gogpu/rendergraph/lifetime"
	"github.com/gogpu/rendergraph/resource"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable reports that a requested backend is not
	// registered. Get and Default signal that case by returning nil, not
	// this error.
	ErrBackendNotAvailable = errors.New("backend: not available")

	// ErrNotInitialized is returned when a backend method is called
	// before Init.
	ErrNotInitialized = errors.New("backend: not initialized")
)

// Backend is implemented by each concrete GPU backend and consumed by
// the compiler and the execute phase. A nil Backend is legal: Execute
// becomes a no-op rather than an error.
type Backend interface {
	// Name returns the backend identifier (e.g., "wgpu", "vulkan").
	Name() string

	// Init initializes the backend. Called once before OnCompileResourceAllocation.
	Init() error

	// Close releases all backend resources. The backend must not be used
	// after Close is called.
	Close()

	// OnCompileResourceAllocation is invoked at the end of Compile so the
	// backend may materialize transient physical resources and bind
	// imported ones described in the meta table and physical mapping.
	OnCompileResourceAllocation(tbl *resource.Table, pm *lifetime.PhysicalMapping) error

	// BindImportedImage declares that logical is backed by a pre-existing
	// native image and view, supplied by the host before Compile runs.
	BindImportedImage(logical resource.Handle, nativeImage, nativeView any) error

	// BindImportedBuffer declares that logical is backed by a
	// pre-existing native buffer, supplied by the host before Compile.
	BindImportedBuffer(logical resource.Handle, nativeBuffer any) error

	// ApplyBarriers lowers the slice of the barrier plan belonging to
	// pass into the backend's native synchronization primitives.
	ApplyBarriers(pass resource.PassHandle, plan *barrier.Plan) error
}
