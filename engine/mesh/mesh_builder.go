package mesh

import (
	"github.com/Carmen-Shannon/glint-go/engine/renderer/bind_group_provider"
)

// MeshBuilderOption is a functional option for configuring a Mesh via NewMesh.
type MeshBuilderOption func(*mesh)

// WithName is an option builder that sets the name of the Mesh.
//
// Parameters:
//   - name: the mesh identifier
//
// Returns:
//   - MeshBuilderOption: a function that applies the name option to a mesh
func WithName(name string) MeshBuilderOption {
	return func(m *mesh) {
		m.name = name
	}
}

// WithVertices is an option builder that sets the vertex slice of the Mesh.
//
// Parameters:
//   - vertices: the vertices to set
//
// Returns:
//   - MeshBuilderOption: a function that applies the vertices option to a mesh
func WithVertices(vertices []GPUVertex) MeshBuilderOption {
	return func(m *mesh) {
		m.vertices = vertices
	}
}

// WithIndices is an option builder that sets the triangle index slice of the Mesh.
//
// Parameters:
//   - indices: the indices to set
//
// Returns:
//   - MeshBuilderOption: a function that applies the indices option to a mesh
func WithIndices(indices []uint32) MeshBuilderOption {
	return func(m *mesh) {
		m.indices = indices
	}
}

// WithBoundingRadius is an option builder that manually sets the bounding sphere radius,
// replacing the value NewMesh would otherwise compute from the vertices. Useful when a
// deliberately conservative bound is wanted, such as for a mesh that will be scaled up.
//
// Parameters:
//   - radius: the bounding radius to set
//
// Returns:
//   - MeshBuilderOption: a function that applies the bounding radius option to a mesh
func WithBoundingRadius(radius float32) MeshBuilderOption {
	return func(m *mesh) {
		m.boundingRadius = radius
	}
}

// WithMeshProvider is an option builder that sets the BindGroupProvider for mesh GPU resources.
//
// Parameters:
//   - provider: the BindGroupProvider holding vertex/index buffers and bind group data
//
// Returns:
//   - MeshBuilderOption: a function that applies the mesh provider option to a mesh
func WithMeshProvider(provider bind_group_provider.BindGroupProvider) MeshBuilderOption {
	return func(m *mesh) {
		m.meshProvider = provider
	}
}
