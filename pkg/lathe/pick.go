package lathe

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/samber/lo"
)

// missReach is how far outside the outer radius a missed pointer can be
// and still be pulled onto the silhouette, as a multiple of the radius.
const missReach = 1.5

const rayEpsilon = 1e-9

// edgeEpsilon widens each triangle by a hair in barycentric terms so a ray
// through a shared edge, such as the seam, hits one of its neighbours.
const edgeEpsilon = 1e-9

// Hit is the nearest intersection of a ray with the mesh.
type Hit struct {
	Point    v3.Vec
	Normal   v3.Vec // face normal of the hit triangle
	Distance float64
	Triangle int
}

// ProjectMiss turns a pointer that missed the mesh into a stroke origin.
// planeHit is where the pointer ray meets a horizontal plane, in mesh-local
// space. The point is pushed onto the outer silhouette along its bearing
// from the axis, with its height clamped to the pot. ok is false when the
// pointer is too far from the pot to sculpt.
func (p Profile) ProjectMiss(planeHit v3.Vec) (v3.Vec, bool) {
	d := math.Hypot(planeHit.X, planeHit.Z)
	if d >= p.OuterRadius*missReach {
		return v3.Vec{}, false
	}
	dir := v3.Vec{X: 0, Y: 0, Z: 1}
	if d > 0 {
		dir = v3.Vec{X: planeHit.X / d, Y: 0, Z: planeHit.Z / d}
	}
	origin := dir.MulScalar(p.OuterRadius)
	origin.Y = lo.Clamp(planeHit.Y, 0, p.Height())
	return origin, true
}

// Raycast returns the nearest triangle hit along the ray. dir need not be
// normalized; Distance is measured in units of dir.
func (m *Mesh) Raycast(origin, dir v3.Vec) (Hit, bool) {
	best := Hit{Distance: math.Inf(1), Triangle: -1}
	for ti, tri := range m.Triangles {
		a, b, c := m.Vertices[tri[0]], m.Vertices[tri[1]], m.Vertices[tri[2]]
		t, ok := intersect(origin, dir, a, b, c)
		if !ok || t >= best.Distance {
			continue
		}
		best = Hit{
			Point:    origin.Add(dir.MulScalar(t)),
			Normal:   (&sdf.Triangle3{a, b, c}).Normal(),
			Distance: t,
			Triangle: ti,
		}
	}
	return best, best.Triangle >= 0
}

// intersect is the Moller-Trumbore ray/triangle test. Both faces count.
func intersect(origin, dir, a, b, c v3.Vec) (float64, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := dir.Cross(e2)
	det := e1.Dot(p)
	if math.Abs(det) < rayEpsilon {
		return 0, false
	}
	inv := 1 / det
	s := origin.Sub(a)
	u := s.Dot(p) * inv
	if u < -edgeEpsilon || u > 1+edgeEpsilon {
		return 0, false
	}
	q := s.Cross(e1)
	v := dir.Dot(q) * inv
	if v < -edgeEpsilon || u+v > 1+edgeEpsilon {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t <= rayEpsilon {
		return 0, false
	}
	return t, true
}
