// primitives.go generates GPU-ready meshes for the basic shapes a product is assembled
// from. Each generator returns a Mesh with serialized vertex/index data and a computed
// bounding radius; GPU buffers are created later when the mesh provider is initialized
// against a renderer.
package mesh

import (
	"github.com/chewxy/math32"

	"github.com/prismatik/showroom/engine/renderer/bind_group_provider"
)

// NewBoxMesh generates an axis-aligned box centered at the origin with flat-shaded
// faces. Each face carries its own four vertices so normals stay hard across edges.
//
// Parameters:
//   - name: the mesh identifier
//   - width, height, depth: full extents along x, y, z
//
// Returns:
//   - Mesh: the generated mesh
func NewBoxMesh(name string, width, height, depth float32) Mesh {
	hx, hy, hz := width/2, height/2, depth/2

	// face order: +x, -x, +y, -y, +z, -z
	faces := []struct {
		normal  [3]float32
		corners [4][3]float32
	}{
		{[3]float32{1, 0, 0}, [4][3]float32{{hx, -hy, hz}, {hx, -hy, -hz}, {hx, hy, -hz}, {hx, hy, hz}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-hx, -hy, -hz}, {-hx, -hy, hz}, {-hx, hy, hz}, {-hx, hy, -hz}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-hx, hy, hz}, {hx, hy, hz}, {hx, hy, -hz}, {-hx, hy, -hz}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-hx, -hy, -hz}, {hx, -hy, -hz}, {hx, -hy, hz}, {-hx, -hy, hz}}},
		{[3]float32{0, 0, 1}, [4][3]float32{{-hx, -hy, hz}, {hx, -hy, hz}, {hx, hy, hz}, {-hx, hy, hz}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{hx, -hy, -hz}, {-hx, -hy, -hz}, {-hx, hy, -hz}, {hx, hy, -hz}}},
	}

	uvs := [4][2]float32{{0, 1}, {1, 1}, {1, 0}, {0, 0}}

	vertices := make([]GPUVertex, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range faces {
		base := uint32(len(vertices))
		for i, c := range f.corners {
			vertices = append(vertices, GPUVertex{
				Position: c,
				Normal:   f.normal,
				TexCoord: uvs[i],
			})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}

	return NewMesh(
		WithName(name),
		WithMeshProvider(bind_group_provider.NewBindGroupProvider(name+" Mesh")),
		WithVertices(vertices),
		WithIndices(indices),
	)
}

// NewSphereMesh generates a UV sphere centered at the origin.
//
// Parameters:
//   - name: the mesh identifier
//   - radius: the sphere radius
//   - segments: longitudinal subdivisions (minimum 3)
//   - rings: latitudinal subdivisions (minimum 2)
//
// Returns:
//   - Mesh: the generated mesh
func NewSphereMesh(name string, radius float32, segments, rings int) Mesh {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}

	vertices := make([]GPUVertex, 0, (segments+1)*(rings+1))
	for ring := 0; ring <= rings; ring++ {
		v := float32(ring) / float32(rings)
		theta := v * math32.Pi
		sinT, cosT := math32.Sin(theta), math32.Cos(theta)
		for seg := 0; seg <= segments; seg++ {
			u := float32(seg) / float32(segments)
			phi := u * 2 * math32.Pi
			sinP, cosP := math32.Sin(phi), math32.Cos(phi)

			n := [3]float32{sinT * cosP, cosT, sinT * sinP}
			vertices = append(vertices, GPUVertex{
				Position: [3]float32{n[0] * radius, n[1] * radius, n[2] * radius},
				Normal:   n,
				TexCoord: [2]float32{u, v},
			})
		}
	}

	indices := make([]uint32, 0, segments*rings*6)
	stride := uint32(segments + 1)
	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			a := uint32(ring)*stride + uint32(seg)
			b := a + stride
			indices = append(indices, a, b, a+1, a+1, b, b+1)
		}
	}

	return NewMesh(
		WithName(name),
		WithMeshProvider(bind_group_provider.NewBindGroupProvider(name+" Mesh")),
		WithVertices(vertices),
		WithIndices(indices),
	)
}

// NewPlaneMesh generates a flat quad in the xz plane at y=0, facing +y.
//
// Parameters:
//   - name: the mesh identifier
//   - width, depth: full extents along x and z
//
// Returns:
//   - Mesh: the generated mesh
func NewPlaneMesh(name string, width, depth float32) Mesh {
	hx, hz := width/2, depth/2
	n := [3]float32{0, 1, 0}

	vertices := []GPUVertex{
		{Position: [3]float32{-hx, 0, hz}, Normal: n, TexCoord: [2]float32{0, 1}},
		{Position: [3]float32{hx, 0, hz}, Normal: n, TexCoord: [2]float32{1, 1}},
		{Position: [3]float32{hx, 0, -hz}, Normal: n, TexCoord: [2]float32{1, 0}},
		{Position: [3]float32{-hx, 0, -hz}, Normal: n, TexCoord: [2]float32{0, 0}},
	}

	return NewMesh(
		WithName(name),
		WithMeshProvider(bind_group_provider.NewBindGroupProvider(name+" Mesh")),
		WithVertices(vertices),
		WithIndices([]uint32{0, 1, 2, 0, 2, 3}),
	)
}

// NewCylinderMesh generates a capped cylinder centered at the origin with its axis
// along y. The side wall is smooth-shaded; cap rims carry duplicate vertices so the
// caps stay flat.
//
// Parameters:
//   - name: the mesh identifier
//   - radius: the cylinder radius
//   - height: the full height along y
//   - segments: radial subdivisions (minimum 3)
//
// Returns:
//   - Mesh: the generated mesh
func NewCylinderMesh(name string, radius, height float32, segments int) Mesh {
	if segments < 3 {
		segments = 3
	}
	hy := height / 2

	vertices := make([]GPUVertex, 0, (segments+1)*2+segments*2+2)
	indices := make([]uint32, 0, segments*12)

	// side wall
	for seg := 0; seg <= segments; seg++ {
		u := float32(seg) / float32(segments)
		phi := u * 2 * math32.Pi
		sinP, cosP := math32.Sin(phi), math32.Cos(phi)
		n := [3]float32{cosP, 0, sinP}
		vertices = append(vertices,
			GPUVertex{Position: [3]float32{n[0] * radius, -hy, n[2] * radius}, Normal: n, TexCoord: [2]float32{u, 1}},
			GPUVertex{Position: [3]float32{n[0] * radius, hy, n[2] * radius}, Normal: n, TexCoord: [2]float32{u, 0}},
		)
	}
	for seg := 0; seg < segments; seg++ {
		a := uint32(seg * 2)
		indices = append(indices, a, a+2, a+1, a+1, a+2, a+3)
	}

	// caps
	for _, c := range []struct {
		y      float32
		normal [3]float32
	}{
		{hy, [3]float32{0, 1, 0}},
		{-hy, [3]float32{0, -1, 0}},
	} {
		center := uint32(len(vertices))
		vertices = append(vertices, GPUVertex{
			Position: [3]float32{0, c.y, 0},
			Normal:   c.normal,
			TexCoord: [2]float32{0.5, 0.5},
		})
		rim := uint32(len(vertices))
		for seg := 0; seg < segments; seg++ {
			phi := float32(seg) / float32(segments) * 2 * math32.Pi
			sinP, cosP := math32.Sin(phi), math32.Cos(phi)
			vertices = append(vertices, GPUVertex{
				Position: [3]float32{cosP * radius, c.y, sinP * radius},
				Normal:   c.normal,
				TexCoord: [2]float32{cosP/2 + 0.5, sinP/2 + 0.5},
			})
		}
		for seg := 0; seg < segments; seg++ {
			next := rim + uint32((seg+1)%segments)
			if c.normal[1] > 0 {
				indices = append(indices, center, next, rim+uint32(seg))
			} else {
				indices = append(indices, center, rim+uint32(seg), next)
			}
		}
	}

	return NewMesh(
		WithName(name),
		WithMeshProvider(bind_group_provider.NewBindGroupProvider(name+" Mesh")),
		WithVertices(vertices),
		WithIndices(indices),
	)
}
