// Package backend declares the Backend interface a concrete GPU backend
// implements to receive a compiled render graph, plus a name-keyed
// registry so a host can publish multiple backends (Vulkan, D3D12,
// Metal, or a WGPU-based one) and select among them at runtime instead
// of wiring a single global backend reference.
package backend
