package bind_group_provider

import "github.com/cogentcore/webgpu/wgpu"

// BindGroupProviderOption configures a BindGroupProvider during construction.
type BindGroupProviderOption func(*provider)

// WithBindGroupLayout pre-seeds the provider with an existing bind group
// layout. The renderer binds against a pre-seeded layout instead of creating
// one from the layout descriptor, which lets several providers of the same
// shape (for example per-object transform groups) share a single layout
// object.
//
// Parameters:
//   - bgl: the layout to share
//
// Returns:
//   - BindGroupProviderOption: the option
func WithBindGroupLayout(bgl *wgpu.BindGroupLayout) BindGroupProviderOption {
	return func(p *provider) {
		p.bindGroupLayout = bgl
	}
}

// WithBuffer pre-seeds the provider with an existing buffer at a binding
// index. The renderer skips buffer creation for pre-seeded bindings, so two
// providers can alias the same uniform buffer and a single WriteBuffers
// update feeds both.
//
// Parameters:
//   - binding: the binding index within the group
//   - buf: the buffer to alias
//
// Returns:
//   - BindGroupProviderOption: the option
func WithBuffer(binding int, buf *wgpu.Buffer) BindGroupProviderOption {
	return func(p *provider) {
		p.buffers[binding] = buf
	}
}
