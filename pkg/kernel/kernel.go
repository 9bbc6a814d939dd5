// Package kernel defines the flat geometry buffers handed to a renderer.
// Producers (the lathe engine) fill a Mesh; hosts upload it as-is and may
// use it for collision. Nothing here knows how the geometry was made.
package kernel

import "fmt"

// Validate checks that the buffers are mutually consistent: whole
// vertices, one normal and one UV per vertex, whole triangles, and every
// index in range.
func (m *Mesh) Validate() error {
	if len(m.Vertices)%3 != 0 {
		return fmt.Errorf("kernel: vertex buffer length %d is not a multiple of 3", len(m.Vertices))
	}
	n := m.VertexCount()
	if len(m.Normals) != 0 && len(m.Normals) != 3*n {
		return fmt.Errorf("kernel: %d normals for %d vertices", len(m.Normals)/3, n)
	}
	if len(m.UVs) != 0 && len(m.UVs) != 2*n {
		return fmt.Errorf("kernel: %d uvs for %d vertices", len(m.UVs)/2, n)
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("kernel: index buffer length %d is not a multiple of 3", len(m.Indices))
	}
	for i, idx := range m.Indices {
		if int(idx) >= n {
			return fmt.Errorf("kernel: index %d at %d out of range (%d vertices)", idx, i, n)
		}
	}
	return nil
}
