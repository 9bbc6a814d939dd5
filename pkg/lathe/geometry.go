package lathe

import (
	"math"

	"github.com/chazu/kiln/pkg/kernel"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Normals returns smooth per-vertex normals. Each face contributes its
// unnormalized cross product, so larger faces weigh more. Vertices that
// only touch degenerate faces get +Y.
func (m *Mesh) Normals() []v3.Vec {
	acc := make([]v3.Vec, len(m.Vertices))
	for _, tri := range m.Triangles {
		a, b, c := m.Vertices[tri[0]], m.Vertices[tri[1]], m.Vertices[tri[2]]
		n := b.Sub(a).Cross(c.Sub(a))
		for _, idx := range tri {
			acc[idx] = acc[idx].Add(n)
		}
	}
	for i, n := range acc {
		if l := n.Length(); l > 1e-12 {
			acc[i] = n.MulScalar(1 / l)
		} else {
			acc[i] = v3.Vec{X: 0, Y: 1, Z: 0}
		}
	}
	return acc
}

// Bounds returns the axis-aligned bounding box of the current vertices.
func (m *Mesh) Bounds() sdf.Box3 {
	if len(m.Vertices) == 0 {
		return sdf.Box3{}
	}
	lower, upper := m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		lower = v3.Vec{X: math.Min(lower.X, v.X), Y: math.Min(lower.Y, v.Y), Z: math.Min(lower.Z, v.Z)}
		upper = v3.Vec{X: math.Max(upper.X, v.X), Y: math.Max(upper.Y, v.Y), Z: math.Max(upper.Z, v.Z)}
	}
	return sdf.Box3{Min: lower, Max: upper}
}

// Buffers flattens the mesh into render buffers with fresh normals.
func (m *Mesh) Buffers() *kernel.Mesh {
	normals := m.Normals()
	out := &kernel.Mesh{
		Vertices: make([]float32, 0, 3*len(m.Vertices)),
		Normals:  make([]float32, 0, 3*len(normals)),
		UVs:      make([]float32, 0, 2*len(m.UVs)),
		Indices:  make([]uint32, 0, 3*len(m.Triangles)),
		Name:     "pot",
	}
	for i, v := range m.Vertices {
		n := normals[i]
		out.Vertices = append(out.Vertices, float32(v.X), float32(v.Y), float32(v.Z))
		out.Normals = append(out.Normals, float32(n.X), float32(n.Y), float32(n.Z))
	}
	for _, uv := range m.UVs {
		out.UVs = append(out.UVs, float32(uv.U), float32(uv.V))
	}
	for _, tri := range m.Triangles {
		out.Indices = append(out.Indices, tri[0], tri[1], tri[2])
	}
	return out
}
