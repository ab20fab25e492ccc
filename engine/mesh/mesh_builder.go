package mesh

import (
	"github.com/prismatik/showroom/engine/renderer/bind_group_provider"
)

// MeshBuilderOption is a functional option for configuring a Mesh via NewMesh.
type MeshBuilderOption func(*meshImpl)

// WithName is an option builder that sets the name of the Mesh.
//
// Parameters:
//   - name: the mesh identifier
//
// Returns:
//   - MeshBuilderOption: a function that applies the name option to a mesh
func WithName(name string) MeshBuilderOption {
	return func(m *meshImpl) {
		m.name = name
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
	return func(m *meshImpl) {
		m.meshProvider = provider
	}
}

// WithBoundingRadius is an option builder that manually sets the bounding sphere radius.
// Use this to override the auto-computed value from ComputeBoundingRadius when a manually
// tuned conservative bound is preferred.
//
// Parameters:
//   - radius: the bounding radius to set
//
// Returns:
//   - MeshBuilderOption: a function that applies the bounding radius option to a mesh
func WithBoundingRadius(radius float32) MeshBuilderOption {
	return func(m *meshImpl) {
		m.boundingRadius = radius
	}
}

// WithVertices is an option builder that serializes a vertex slice into the mesh's
// vertex data and computes its bounding radius.
//
// Parameters:
//   - vertices: the vertex data to serialize and set
//
// Returns:
//   - MeshBuilderOption: a function that applies the vertices option to a mesh
func WithVertices(vertices []GPUVertex) MeshBuilderOption {
	return func(m *meshImpl) {
		m.vertexData = MarshalVertices(vertices)
		m.boundingRadius = ComputeBoundingRadius(vertices)
	}
}

// WithIndices is an option builder that serializes an index slice into the mesh's
// index data and sets the index count.
//
// Parameters:
//   - indices: the index data to serialize and set
//
// Returns:
//   - MeshBuilderOption: a function that applies the indices option to a mesh
func WithIndices(indices []uint32) MeshBuilderOption {
	return func(m *meshImpl) {
		m.indexData = MarshalIndices(indices)
		m.indexCount = len(indices)
	}
}

// WithVertexData is an option builder that sets the raw vertex data for this mesh.
//
// Parameters:
//   - data: the vertex data to set
//
// Returns:
//   - MeshBuilderOption: a function that applies the vertex data option to a mesh
func WithVertexData(data []byte) MeshBuilderOption {
	return func(m *meshImpl) {
		m.vertexData = data
	}
}

// WithIndexData is an option builder that sets the raw index data for this mesh.
//
// Parameters:
//   - data: the index data to set
//
// Returns:
//   - MeshBuilderOption: a function that applies the index data option to a mesh
func WithIndexData(data []byte) MeshBuilderOption {
	return func(m *meshImpl) {
		m.indexData = data
	}
}

// WithIndexCount is an option builder that sets the number of indices in the mesh.
//
// Parameters:
//   - count: the index count to set
//
// Returns:
//   - MeshBuilderOption: a function that applies the index count option to a mesh
func WithIndexCount(count int) MeshBuilderOption {
	return func(m *meshImpl) {
		m.indexCount = count
	}
}
