package rendergraph

import "github.com/gogpu/rendergraph/backend"

// Option configures a System during creation.
//
// Example:
//
//	sys := rendergraph.New(rendergraph.WithBackend(wgpu.New()))
type Option func(*systemOptions)

type systemOptions struct {
	backend backend.Backend
}

func defaultOptions() systemOptions {
	return systemOptions{backend: nil}
}

// WithBackend sets the backend a System's Execute and Compile phases target.
// A nil backend (the default) is legal: Compile skips
// OnCompileResourceAllocation and Execute becomes a no-op.
func WithBackend(b backend.Backend) Option {
	return func(o *systemOptions) {
		o.backend = b
	}
}
