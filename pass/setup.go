package pass

import (
	"github.com/gogpu/rendergraph/backend"
	"github.com/gogpu/rendergraph/resource"
)

// SetupContext is the surface a pass's setup callback uses to declare the
// resources it creates and the reads/writes/outputs it performs. Reads
// and writes accept any handle value; range-checking is deferred to the
// validation stage, so a pass may legally write a handle it just created
// in the same callback. Entries within a pass are recorded in call order.
type SetupContext struct {
	Table   *resource.Table
	Deps    *resource.Deps
	Current resource.PassHandle
}

// CreateImage registers a new image and returns its handle, equal to the
// current size of the image meta table.
func (c *SetupContext) CreateImage(info resource.ImageInfo) resource.Handle {
	return c.Table.Images.Add(info)
}

// CreateBuffer registers a new buffer and returns its handle.
func (c *SetupContext) CreateBuffer(info resource.BufferInfo) resource.Handle {
	return c.Table.Buffers.Add(info)
}

// ReadImage records a read of an image handle with the given usage bits.
func (c *SetupContext) ReadImage(h resource.Handle, usage resource.ImageUsage) {
	c.Deps.ImageReads.Append(c.Current, h, uint32(usage))
}

// ReadBuffer records a read of a buffer handle with the given usage bits.
func (c *SetupContext) ReadBuffer(h resource.Handle, usage resource.BufferUsage) {
	c.Deps.BufferReads.Append(c.Current, h, uint32(usage))
}

// WriteImage records a write of an image handle with the given usage
// bits. A resource may be both read and written by the same pass; the
// barrier stage resolves this as a read-write access.
func (c *SetupContext) WriteImage(h resource.Handle, usage resource.ImageUsage) {
	c.Deps.ImageWrites.Append(c.Current, h, uint32(usage))
}

// WriteBuffer records a write of a buffer handle with the given usage
// bits.
func (c *SetupContext) WriteBuffer(h resource.Handle, usage resource.BufferUsage) {
	c.Deps.BufferWrites.Append(c.Current, h, uint32(usage))
}

// DeclareImageOutput marks h as a required output of the graph. Declaring
// the same handle twice is harmless; duplicates are not deduplicated.
func (c *SetupContext) DeclareImageOutput(h resource.Handle) {
	c.Deps.Outputs.ImageOutputs = append(c.Deps.Outputs.ImageOutputs, h)
}

// DeclareBufferOutput marks h as a required output of the graph.
func (c *SetupContext) DeclareBufferOutput(h resource.Handle) {
	c.Deps.Outputs.BufferOutputs = append(c.Deps.Outputs.BufferOutputs, h)
}

// ExecuteContext is passed to a pass's execute callback during the
// execute phase. Resource access is mediated entirely by the compiled
// physical mapping; the context only exposes the backend the System was
// constructed with.
type ExecuteContext struct {
	Backend backend.Backend
}

// SetupFunc declares a pass's resources and dependencies. It runs once
// per pass at the start of Compile, in declaration order.
type SetupFunc func(*SetupContext)

// ExecuteFunc performs a pass's GPU work during Execute. A nil
// ExecuteFunc represents a valid "plan-only" pass and is skipped.
type ExecuteFunc func(*ExecuteContext)

// Graph is the topology of declared passes: parallel slices of their
// setup/execute callbacks, indexed by pass handle (declaration order).
type Graph struct {
	Setup   []SetupFunc
	Execute []ExecuteFunc
}

// Add appends a new pass and returns its handle, equal to the graph's
// size before the call.
func (g *Graph) Add(setup SetupFunc, execute ExecuteFunc) resource.PassHandle {
	h := resource.PassHandle(len(g.Setup))
	g.Setup = append(g.Setup, setup)
	g.Execute = append(g.Execute, execute)
	return h
}

// Len returns the number of declared passes.
func (g *Graph) Len() int { return len(g.Setup) }

// Clear removes every declared pass.
func (g *Graph) Clear() {
	g.Setup = g.Setup[:0]
	g.Execute = g.Execute[:0]
}
