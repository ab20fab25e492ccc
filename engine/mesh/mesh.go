package mesh

import (
	"github.com/prismatik/showroom/engine/renderer/bind_group_provider"
)

// meshImpl is the implementation of the Mesh interface.
type meshImpl struct {
	name                  string
	meshProvider          bind_group_provider.BindGroupProvider
	boundingRadius        float32
	vertexData, indexData []byte
	indexCount            int
}

// Mesh defines the interface for a GPU-ready product mesh.
// A Mesh is a container holding serialized vertex/index data and a BindGroupProvider
// for the GPU buffers built from it. It is produced by the primitive generators in
// this package or assembled directly from pre-serialized data.
type Mesh interface {
	// Name retrieves the mesh identifier.
	//
	// Returns:
	//   - string: the mesh name
	Name() string

	// MeshProvider retrieves the BindGroupProvider holding GPU mesh resources.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	MeshProvider() bind_group_provider.BindGroupProvider

	// VertexData returns the raw serialized vertex data for this mesh.
	//
	// Returns:
	//   - []byte: the vertex data
	VertexData() []byte

	// IndexData returns the raw serialized index data for this mesh.
	//
	// Returns:
	//   - []byte: the index data
	IndexData() []byte

	// IndexCount returns the number of indices in the mesh.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// BoundingRadius returns the bounding sphere radius for this mesh, measured as
	// the maximum vertex distance from the origin. Used by frustum culling.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32

	// SetVertexData sets the raw vertex data for this mesh.
	//
	// Parameters:
	//   - data: the vertex data to set
	SetVertexData(data []byte)

	// SetIndexData sets the raw index data for this mesh.
	//
	// Parameters:
	//   - data: the index data to set
	SetIndexData(data []byte)

	// SetIndexCount sets the number of indices in the mesh.
	//
	// Parameters:
	//   - count: the index count to set
	SetIndexCount(count int)
}

var _ Mesh = &meshImpl{}

// NewMesh creates a new Mesh instance with the specified options applied.
//
// Parameters:
//   - options: a variadic list of MeshBuilderOption functions to configure the Mesh
//
// Returns:
//   - Mesh: a new instance of Mesh configured with the provided options
func NewMesh(options ...MeshBuilderOption) Mesh {
	m := &meshImpl{}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *meshImpl) Name() string {
	return m.name
}

func (m *meshImpl) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}

func (m *meshImpl) VertexData() []byte {
	return m.vertexData
}

func (m *meshImpl) SetVertexData(data []byte) {
	m.vertexData = data
}

func (m *meshImpl) IndexData() []byte {
	return m.indexData
}

func (m *meshImpl) SetIndexData(data []byte) {
	m.indexData = data
}

func (m *meshImpl) IndexCount() int {
	return m.indexCount
}

func (m *meshImpl) SetIndexCount(count int) {
	m.indexCount = count
}

func (m *meshImpl) BoundingRadius() float32 {
	return m.boundingRadius
}
