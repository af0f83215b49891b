package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// bindGroupProvider is the unexported implementation of BindGroupProvider.
type bindGroupProvider struct {
	// label is a debug label added for convenience.
	label string

	// The following fields are GPU allocated resources and must be released when no
	// longer needed. They are populated by the Renderer during initialization, not
	// by user-creation.

	// bindGroup is the GPU bind group created for this provider, or nil if not initialized with the Renderer.
	bindGroup *wgpu.BindGroup
	// bindGroupLayout is the GPU bind group layout created for this provider, or nil if not initialized with the Renderer.
	bindGroupLayout *wgpu.BindGroupLayout
	// buffers holds the GPU uniform buffers created for this provider, keyed by binding index.
	buffers map[int]*wgpu.Buffer

	// vertexBuffer is the GPU vertex buffer created for this provider, or nil if not initialized with the Renderer.
	vertexBuffer *wgpu.Buffer
	// indexBuffer is the GPU index buffer created for this provider, or nil if not initialized with the Renderer.
	indexBuffer *wgpu.Buffer
	// indexCount is the number of indices for draw calls, used by the Renderer to issue drawIndexed calls for this provider.
	indexCount int
}

// BindGroupProvider defines the interface for components that require GPU bind group
// resources. A component holds a BindGroupProvider to describe its GPU binding
// requirements; the Renderer then uses the provider to initialize and update GPU
// resources and to issue draw calls against them.
type BindGroupProvider interface {
	// Release releases any GPU resources held by this provider.
	// Safe to call multiple times and on providers that were never initialized.
	Release()

	// Label returns the debug label for this provider.
	//
	// Returns:
	//   - string: the debug label
	Label() string

	// BindGroup returns the created bind group for shader binding.
	// Returns nil if GPU resources have not been initialized.
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group or nil
	BindGroup() *wgpu.BindGroup

	// SetBindGroup stores the created bind group on this provider.
	//
	// Parameters:
	//   - bg: the created bind group
	SetBindGroup(bg *wgpu.BindGroup)

	// BindGroupLayout returns the created bind group layout for this provider.
	// Returns nil if GPU resources have not been initialized.
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the bind group layout or nil
	BindGroupLayout() *wgpu.BindGroupLayout

	// SetBindGroupLayout stores the created bind group layout on this provider.
	//
	// Parameters:
	//   - layout: the created bind group layout
	SetBindGroupLayout(layout *wgpu.BindGroupLayout)

	// Buffer returns the uniform buffer at the given binding index for data writes.
	// Returns nil if GPU resources have not been initialized.
	//
	// Parameters:
	//   - binding: the binding index
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer or nil
	Buffer(binding int) *wgpu.Buffer

	// SetBuffer stores a uniform buffer on this provider at the given binding index.
	//
	// Parameters:
	//   - binding: the binding index
	//   - buf: the created buffer
	SetBuffer(binding int, buf *wgpu.Buffer)

	// VertexBuffer returns the GPU vertex buffer, or nil if not initialized.
	//
	// Returns:
	//   - *wgpu.Buffer: the vertex buffer or nil
	VertexBuffer() *wgpu.Buffer

	// SetVertexBuffer stores the created vertex buffer on this provider.
	//
	// Parameters:
	//   - buf: the created vertex buffer
	SetVertexBuffer(buf *wgpu.Buffer)

	// IndexBuffer returns the GPU index buffer, or nil if not initialized.
	//
	// Returns:
	//   - *wgpu.Buffer: the index buffer or nil
	IndexBuffer() *wgpu.Buffer

	// SetIndexBuffer stores the created index buffer on this provider.
	//
	// Parameters:
	//   - buf: the created index buffer
	SetIndexBuffer(buf *wgpu.Buffer)

	// IndexCount returns the number of indices for draw calls.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// SetIndexCount stores the number of indices for draw calls.
	//
	// Parameters:
	//   - count: the index count
	SetIndexCount(count int)
}

var _ BindGroupProvider = &bindGroupProvider{}

// NewBindGroupProvider creates a new BindGroupProvider with the given debug label.
//
// Parameters:
//   - label: debug label used when naming the provider's GPU resources
//
// Returns:
//   - BindGroupProvider: the new provider with no GPU resources attached
func NewBindGroupProvider(label string) BindGroupProvider {
	return &bindGroupProvider{
		label:   label,
		buffers: make(map[int]*wgpu.Buffer),
	}
}

func (b *bindGroupProvider) Release() {
	if b.bindGroup != nil {
		b.bindGroup.Release()
		b.bindGroup = nil
	}
	if b.bindGroupLayout != nil {
		b.bindGroupLayout.Release()
		b.bindGroupLayout = nil
	}
	for binding, buf := range b.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(b.buffers, binding)
	}
	if b.vertexBuffer != nil {
		b.vertexBuffer.Release()
		b.vertexBuffer = nil
	}
	if b.indexBuffer != nil {
		b.indexBuffer.Release()
		b.indexBuffer = nil
	}
	b.indexCount = 0
}

func (b *bindGroupProvider) Label() string {
	return b.label
}

func (b *bindGroupProvider) BindGroup() *wgpu.BindGroup {
	return b.bindGroup
}

func (b *bindGroupProvider) SetBindGroup(bg *wgpu.BindGroup) {
	b.bindGroup = bg
}

func (b *bindGroupProvider) BindGroupLayout() *wgpu.BindGroupLayout {
	return b.bindGroupLayout
}

func (b *bindGroupProvider) SetBindGroupLayout(layout *wgpu.BindGroupLayout) {
	b.bindGroupLayout = layout
}

func (b *bindGroupProvider) Buffer(binding int) *wgpu.Buffer {
	return b.buffers[binding]
}

func (b *bindGroupProvider) SetBuffer(binding int, buf *wgpu.Buffer) {
	b.buffers[binding] = buf
}

func (b *bindGroupProvider) VertexBuffer() *wgpu.Buffer {
	return b.vertexBuffer
}

func (b *bindGroupProvider) SetVertexBuffer(buf *wgpu.Buffer) {
	b.vertexBuffer = buf
}

func (b *bindGroupProvider) IndexBuffer() *wgpu.Buffer {
	return b.indexBuffer
}

func (b *bindGroupProvider) SetIndexBuffer(buf *wgpu.Buffer) {
	b.indexBuffer = buf
}

func (b *bindGroupProvider) IndexCount() int {
	return b.indexCount
}

func (b *bindGroupProvider) SetIndexCount(count int) {
	b.indexCount = count
}
