package bind_group_provider

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// BindGroupProvider holds the GPU-side resources backing one bind group slot
// of a render pass: the bind group itself, its layout, and the uniform
// buffers, texture views and samplers the group's bindings point at. Mesh
// geometry providers additionally carry the vertex/index buffers consumed by
// indexed draw calls.
//
// Scene components (camera, light, mesh, material) construct a provider with
// a label and hand it to the renderer, which populates the GPU resources
// through its Init methods and reads them back during draw submission. The
// provider itself performs no GPU calls; it is a typed container with a
// Release for teardown.
type BindGroupProvider interface {
	// Label returns the debug label GPU objects created for this provider
	// are tagged with.
	//
	// Returns:
	//   - string: the provider label
	Label() string

	// BindGroup returns the bind group to set on a render pass, or nil when
	// the renderer has not initialized this provider yet.
	//
	// Returns:
	//   - *wgpu.BindGroup: the bind group or nil
	BindGroup() *wgpu.BindGroup

	// BindGroupLayout returns the layout the bind group was created against,
	// or nil before initialization.
	//
	// Returns:
	//   - *wgpu.BindGroupLayout: the layout or nil
	BindGroupLayout() *wgpu.BindGroupLayout

	// Buffer returns the uniform buffer at a binding index. Per-frame data
	// (camera, light, object transforms) is pushed into these buffers via
	// the renderer's WriteBuffers.
	//
	// Parameters:
	//   - binding: the binding index within the group
	//
	// Returns:
	//   - *wgpu.Buffer: the buffer or nil
	Buffer(binding int) *wgpu.Buffer

	// TextureView returns the texture view at a binding index, or nil when
	// no texture was initialized there.
	//
	// Parameters:
	//   - binding: the binding index within the group
	//
	// Returns:
	//   - *wgpu.TextureView: the texture view or nil
	TextureView(binding int) *wgpu.TextureView

	// Sampler returns the sampler at a binding index, or nil when no sampler
	// was initialized there.
	//
	// Parameters:
	//   - binding: the binding index within the group
	//
	// Returns:
	//   - *wgpu.Sampler: the sampler or nil
	Sampler(binding int) *wgpu.Sampler

	// VertexBuffer returns the uploaded vertex buffer for mesh geometry
	// providers, or nil for pure uniform providers.
	//
	// Returns:
	//   - *wgpu.Buffer: the vertex buffer or nil
	VertexBuffer() *wgpu.Buffer

	// IndexBuffer returns the uploaded index buffer for mesh geometry
	// providers, or nil for pure uniform providers.
	//
	// Returns:
	//   - *wgpu.Buffer: the index buffer or nil
	IndexBuffer() *wgpu.Buffer

	// IndexCount returns the number of indices an indexed draw of this
	// provider's geometry covers.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// SetBindGroup stores the bind group created by the renderer.
	//
	// Parameters:
	//   - bg: the created bind group
	SetBindGroup(bg *wgpu.BindGroup)

	// SetBindGroupLayout stores the layout created by the renderer. Setting
	// a layout before initialization makes the renderer bind against it
	// instead of creating a fresh one, so providers can share a layout.
	//
	// Parameters:
	//   - bgl: the layout
	SetBindGroupLayout(bgl *wgpu.BindGroupLayout)

	// SetBuffer stores a uniform buffer at a binding index. A buffer set
	// before initialization is used as-is rather than re-created, so two
	// providers can alias one buffer.
	//
	// Parameters:
	//   - binding: the binding index within the group
	//   - buf: the buffer
	SetBuffer(binding int, buf *wgpu.Buffer)

	// SetTextureView stores a texture view at a binding index.
	//
	// Parameters:
	//   - binding: the binding index within the group
	//   - tv: the texture view
	SetTextureView(binding int, tv *wgpu.TextureView)

	// SetSampler stores a sampler at a binding index.
	//
	// Parameters:
	//   - binding: the binding index within the group
	//   - s: the sampler
	SetSampler(binding int, s *wgpu.Sampler)

	// SetVertexBuffer stores the uploaded vertex buffer.
	//
	// Parameters:
	//   - buf: the vertex buffer
	SetVertexBuffer(buf *wgpu.Buffer)

	// SetIndexBuffer stores the uploaded index buffer.
	//
	// Parameters:
	//   - buf: the index buffer
	SetIndexBuffer(buf *wgpu.Buffer)

	// SetIndexCount records how many indices the geometry's index buffer
	// holds.
	//
	// Parameters:
	//   - count: the index count
	SetIndexCount(count int)

	// Release frees every GPU resource the provider holds and clears the
	// fields, leaving the provider reusable for re-initialization.
	Release()
}

type provider struct {
	label string

	// GPU resources populated by the renderer's Init methods. All nil/empty
	// until initialization.
	bindGroup       *wgpu.BindGroup
	bindGroupLayout *wgpu.BindGroupLayout
	buffers         map[int]*wgpu.Buffer
	textureViews    map[int]*wgpu.TextureView
	samplers        map[int]*wgpu.Sampler

	// Geometry resources, set only on mesh providers.
	vertexBuffer *wgpu.Buffer
	indexBuffer  *wgpu.Buffer
	indexCount   int
}

var _ BindGroupProvider = &provider{}

// NewBindGroupProvider creates an empty provider with the given debug label.
// The label is attached to every GPU object the renderer creates for it,
// which is what shows up in graphics debuggers and validation messages.
//
// Parameters:
//   - label: the debug label
//   - options: optional pre-seeded resources (shared layouts, aliased buffers)
//
// Returns:
//   - BindGroupProvider: the new provider
func NewBindGroupProvider(label string, options ...BindGroupProviderOption) BindGroupProvider {
	p := &provider{
		label:        label,
		buffers:      make(map[int]*wgpu.Buffer),
		textureViews: make(map[int]*wgpu.TextureView),
		samplers:     make(map[int]*wgpu.Sampler),
	}
	for _, opt := range options {
		opt(p)
	}
	return p
}

func (p *provider) Label() string {
	return p.label
}

func (p *provider) BindGroup() *wgpu.BindGroup {
	return p.bindGroup
}

func (p *provider) BindGroupLayout() *wgpu.BindGroupLayout {
	return p.bindGroupLayout
}

func (p *provider) Buffer(binding int) *wgpu.Buffer {
	return p.buffers[binding]
}

func (p *provider) TextureView(binding int) *wgpu.TextureView {
	return p.textureViews[binding]
}

func (p *provider) Sampler(binding int) *wgpu.Sampler {
	return p.samplers[binding]
}

func (p *provider) VertexBuffer() *wgpu.Buffer {
	return p.vertexBuffer
}

func (p *provider) IndexBuffer() *wgpu.Buffer {
	return p.indexBuffer
}

func (p *provider) IndexCount() int {
	return p.indexCount
}

func (p *provider) SetBindGroup(bg *wgpu.BindGroup) {
	p.bindGroup = bg
}

func (p *provider) SetBindGroupLayout(bgl *wgpu.BindGroupLayout) {
	p.bindGroupLayout = bgl
}

func (p *provider) SetBuffer(binding int, buf *wgpu.Buffer) {
	if p.buffers == nil {
		p.buffers = make(map[int]*wgpu.Buffer)
	}
	p.buffers[binding] = buf
}

func (p *provider) SetTextureView(binding int, tv *wgpu.TextureView) {
	if p.textureViews == nil {
		p.textureViews = make(map[int]*wgpu.TextureView)
	}
	p.textureViews[binding] = tv
}

func (p *provider) SetSampler(binding int, s *wgpu.Sampler) {
	if p.samplers == nil {
		p.samplers = make(map[int]*wgpu.Sampler)
	}
	p.samplers[binding] = s
}

func (p *provider) SetVertexBuffer(buf *wgpu.Buffer) {
	p.vertexBuffer = buf
}

func (p *provider) SetIndexBuffer(buf *wgpu.Buffer) {
	p.indexBuffer = buf
}

func (p *provider) SetIndexCount(count int) {
	p.indexCount = count
}

func (p *provider) Release() {
	for binding, tv := range p.textureViews {
		if tv != nil {
			tv.Release()
		}
		delete(p.textureViews, binding)
	}
	for binding, s := range p.samplers {
		if s != nil {
			s.Release()
		}
		delete(p.samplers, binding)
	}
	for binding, buf := range p.buffers {
		if buf != nil {
			buf.Release()
		}
		delete(p.buffers, binding)
	}

	if p.bindGroup != nil {
		p.bindGroup.Release()
		p.bindGroup = nil
	}
	if p.bindGroupLayout != nil {
		p.bindGroupLayout.Release()
		p.bindGroupLayout = nil
	}
	if p.vertexBuffer != nil {
		p.vertexBuffer.Release()
		p.vertexBuffer = nil
	}
	if p.indexBuffer != nil {
		p.indexBuffer.Release()
		p.indexBuffer = nil
	}
}
