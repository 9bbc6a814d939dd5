package lathe

import (
	"fmt"
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Wall identifies which surface a vertex was created on.
type Wall int

const (
	WallOuter Wall = iota
	WallInner
	WallCap
)

func (w Wall) String() string {
	switch w {
	case WallOuter:
		return "outer"
	case WallInner:
		return "inner"
	case WallCap:
		return "cap"
	default:
		return "unknown"
	}
}

// Tag records where a vertex came from at generation time.
type Tag struct {
	Ring int  `json:"ring"`
	Wall Wall `json:"wall"`
}

// Triangle holds three vertex indices.
type Triangle [3]uint32

// UV is a texture coordinate.
type UV struct {
	U, V float64
}

// Mesh is a generated lathe mesh. Vertices are mutated in place by Deform;
// everything else is fixed until the mesh is regenerated.
type Mesh struct {
	Profile   Profile
	Vertices  []v3.Vec
	Rest      []v3.Vec // snapshot taken by Generate, never mutated
	Tags      []Tag
	Triangles []Triangle
	UVs       []UV

	wallCount int // first cap vertex index
}

// Generate builds the mesh for p. It panics if p is invalid; call
// p.Validate first when the profile comes from user input.
//
// Layout: the outer wall as rows 0..Rings of Segments+1 columns, then the
// inner wall in the same order, then the top cap as interleaved
// outer/inner pairs. The seam column is duplicated so U can run from 1
// down to 0 without wrapping.
func Generate(p Profile) *Mesh {
	if err := p.Validate(); err != nil {
		panic(fmt.Sprintf("lathe: %v", err))
	}

	cols := p.Segments + 1
	rows := p.Rings + 1
	wallCount := 2 * rows * cols
	total := wallCount + 2*cols

	m := &Mesh{
		Profile:   p,
		Vertices:  make([]v3.Vec, 0, total),
		Tags:      make([]Tag, 0, total),
		UVs:       make([]UV, 0, total),
		Triangles: make([]Triangle, 0, 4*p.Rings*p.Segments+2*p.Segments+2),
		wallCount: wallCount,
	}

	m.addWall(p.OuterRadius, WallOuter)
	m.addWall(p.InnerRadius, WallInner)
	m.addCap()

	m.Rest = make([]v3.Vec, len(m.Vertices))
	copy(m.Rest, m.Vertices)
	return m
}

// Reset discards all deformation by generating a fresh mesh.
func Reset(p Profile) *Mesh {
	return Generate(p)
}

// angle returns the revolve angle of segment s.
func (p Profile) angle(s int) float64 {
	return float64(s) / float64(p.Segments) * math.Pi * 2
}

func ringPoint(radius, theta, y float64) v3.Vec {
	return v3.Vec{X: radius * math.Sin(theta), Y: y, Z: radius * math.Cos(theta)}
}

func (m *Mesh) addWall(radius float64, wall Wall) {
	p := m.Profile
	cols := p.Segments + 1
	start := uint32(len(m.Vertices))

	for row := 0; row <= p.Rings; row++ {
		y := float64(row) * p.RingHeight
		for s := 0; s <= p.Segments; s++ {
			m.Vertices = append(m.Vertices, ringPoint(radius, p.angle(s), y))
			m.Tags = append(m.Tags, Tag{Ring: row, Wall: wall})
			m.UVs = append(m.UVs, UV{
				U: 1 - float64(s)/float64(p.Segments),
				V: float64(row) / float64(p.Rings),
			})
		}
	}

	at := func(row, s int) uint32 {
		return start + uint32(row*cols+s)
	}
	for row := 0; row < p.Rings; row++ {
		for s := 0; s < p.Segments; s++ {
			b0, t0 := at(row, s), at(row+1, s)
			b1, t1 := at(row, s+1), at(row+1, s+1)
			if wall == WallOuter {
				m.Triangles = append(m.Triangles, Triangle{b0, b1, t0}, Triangle{b1, t1, t0})
			} else {
				m.Triangles = append(m.Triangles, Triangle{b0, t0, b1}, Triangle{b1, t0, t1})
			}
		}
	}
}

func (m *Mesh) addCap() {
	p := m.Profile
	top := p.Height()
	first := uint32(len(m.Vertices))

	for s := 0; s <= p.Segments; s++ {
		theta := p.angle(s)
		m.Vertices = append(m.Vertices,
			ringPoint(p.OuterRadius, theta, top),
			ringPoint(p.InnerRadius, theta, top))
		m.Tags = append(m.Tags,
			Tag{Ring: p.Rings, Wall: WallCap},
			Tag{Ring: p.Rings, Wall: WallCap})
		m.UVs = append(m.UVs,
			UV{U: 0.5 + 0.5*math.Cos(theta), V: 0.5 + 0.5*math.Sin(theta)},
			UV{U: 0.5 + 0.25*math.Cos(theta), V: 0.5 + 0.25*math.Sin(theta)})
	}

	last := uint32(len(m.Vertices)) - 1
	for i := first; i < last-1; i += 2 {
		m.Triangles = append(m.Triangles, Triangle{i, i + 3, i + 1}, Triangle{i, i + 2, i + 3})
	}
	// Close the seam between the duplicated first and last columns.
	m.Triangles = append(m.Triangles,
		Triangle{last - 1, first + 1, last},
		Triangle{last - 1, first, first + 1})
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices)
}

// WallVertexCount returns the number of wall vertices; cap vertices follow them.
func (m *Mesh) WallVertexCount() int {
	return m.wallCount
}

// IsCap reports whether vertex i belongs to the top cap.
func (m *Mesh) IsCap(i int) bool {
	return i >= m.wallCount
}

// IsBase reports whether vertex i started below baseHeight.
func (m *Mesh) IsBase(i int, baseHeight float64) bool {
	return m.Rest[i].Y < baseHeight
}

// Clone returns a deep copy of the mesh.
func (m *Mesh) Clone() *Mesh {
	c := &Mesh{
		Profile:   m.Profile,
		Vertices:  append([]v3.Vec(nil), m.Vertices...),
		Rest:      append([]v3.Vec(nil), m.Rest...),
		Tags:      append([]Tag(nil), m.Tags...),
		Triangles: append([]Triangle(nil), m.Triangles...),
		UVs:       append([]UV(nil), m.UVs...),
		wallCount: m.wallCount,
	}
	return c
}
