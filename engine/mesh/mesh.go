package mesh

import (
	"strconv"
	"sync/atomic"

	"github.com/Carmen-Shannon/glint-go/common"
	"github.com/Carmen-Shannon/glint-go/engine/renderer/bind_group_provider"
)

// meshCount feeds unique names for auto-created bind group providers.
var meshCount atomic.Uint64

// mesh is the implementation of the Mesh interface.
type mesh struct {
	name           string
	vertices       []GPUVertex
	indices        []uint32
	vertexData     []byte
	indexData      []byte
	boundingRadius float32
	meshProvider   bind_group_provider.BindGroupProvider
}

// Mesh defines the interface for triangle geometry.
// A Mesh holds indexed vertex data in two forms: typed slices for CPU-side
// rasterization and their marshaled byte forms for GPU buffer upload. Geometry
// is supplied programmatically; there is no asset loading here.
type Mesh interface {
	// Name returns the mesh identifier.
	//
	// Returns:
	//   - string: the mesh name
	Name() string

	// Vertices returns the typed vertex slice.
	//
	// Returns:
	//   - []GPUVertex: the mesh vertices
	Vertices() []GPUVertex

	// Indices returns the triangle index slice. Every three consecutive
	// indices form one triangle.
	//
	// Returns:
	//   - []uint32: the triangle indices
	Indices() []uint32

	// VertexData returns the raw vertex bytes for GPU upload.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// IndexData returns the raw index bytes for GPU upload.
	//
	// Returns:
	//   - []byte: the index data
	IndexData() []byte

	// IndexCount returns the number of indices in the mesh.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// TriangleCount returns the number of triangles in the mesh.
	//
	// Returns:
	//   - int: the triangle count
	TriangleCount() int

	// BoundingRadius returns the bounding sphere radius for this mesh, measured
	// as the maximum vertex distance from the origin. Used by frustum culling.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32

	// MeshProvider returns the BindGroupProvider carrying this mesh's GPU
	// vertex and index buffers.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	MeshProvider() bind_group_provider.BindGroupProvider

	// SetMeshProvider replaces the BindGroupProvider for this mesh.
	//
	// Parameters:
	//   - provider: the provider to set
	SetMeshProvider(provider bind_group_provider.BindGroupProvider)
}

var _ Mesh = &mesh{}

// NewMesh creates a Mesh from vertex and index slices supplied via options.
// The marshaled GPU byte forms are built once at construction. The bounding
// radius is computed from the vertices unless overridden with
// WithBoundingRadius, and a uniquely named BindGroupProvider is created
// unless one is supplied with WithMeshProvider.
//
// Parameters:
//   - options: a variadic list of MeshBuilderOption functions to configure the Mesh
//
// Returns:
//   - Mesh: a new instance of Mesh configured with the provided options
func NewMesh(options ...MeshBuilderOption) Mesh {
	m := &mesh{}
	for _, opt := range options {
		opt(m)
	}
	if m.meshProvider == nil {
		m.meshProvider = bind_group_provider.NewBindGroupProvider(
			"mesh_" + strconv.FormatUint(meshCount.Add(1), 10),
		)
	}
	if m.boundingRadius == 0 {
		m.boundingRadius = ComputeBoundingRadius(m.vertices)
	}
	m.vertexData = common.SliceToBytes(m.vertices)
	m.indexData = common.SliceToBytes(m.indices)
	return m
}

func (m *mesh) Name() string {
	return m.name
}

func (m *mesh) Vertices() []GPUVertex {
	return m.vertices
}

func (m *mesh) Indices() []uint32 {
	return m.indices
}

func (m *mesh) VertexData() []byte {
	return m.vertexData
}

func (m *mesh) IndexData() []byte {
	return m.indexData
}

func (m *mesh) IndexCount() int {
	return len(m.indices)
}

func (m *mesh) TriangleCount() int {
	return len(m.indices) / 3
}

func (m *mesh) BoundingRadius() float32 {
	return m.boundingRadius
}

func (m *mesh) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}

func (m *mesh) SetMeshProvider(provider bind_group_provider.BindGroupProvider) {
	m.meshProvider = provider
}
