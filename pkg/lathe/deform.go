package lathe

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/samber/lo"
)

// verticalThreshold is the smallest vertical pointer delta that lifts or
// presses the clay.
const verticalThreshold = 0.01

// verticalScale damps vertical motion relative to radial motion.
const verticalScale = 0.5

// Stroke is one pointer sample applied to the mesh.
type Stroke struct {
	Origin   v3.Vec  // contact point, mesh-local
	DX       float64 // horizontal pointer delta: positive pulls out, negative pushes in
	DY       float64 // vertical pointer delta
	Strength float64 // see StrengthForLevel
}

// Deform applies s to every vertex within prm.Reach rings of the stroke
// origin. Radial changes keep each vertex's angle around the axis and are
// clamped to [MinRadius, MaxRadius]. Vertical changes skip base and cap
// vertices and are clamped to [BaseHeight, TopHeight].
func Deform(m *Mesh, s Stroke, prm Params) {
	ringHeight := m.Profile.RingHeight
	lift := math.Abs(s.DY) > verticalThreshold

	for i, v := range m.Vertices {
		heightDelta := math.Abs(s.Origin.Y-v.Y) / ringHeight
		if heightDelta >= prm.Reach {
			continue
		}
		f := falloff(heightDelta / prm.Reach)

		r := math.Hypot(v.X, v.Z)
		r = lo.Clamp(r+s.DX*s.Strength*f, prm.MinRadius, prm.MaxRadius)
		theta := math.Atan2(v.Z, v.X)
		v.X = r * math.Cos(theta)
		v.Z = r * math.Sin(theta)

		if lift && !m.IsCap(i) && !m.IsBase(i, prm.BaseHeight) {
			v.Y = lo.Clamp(v.Y+s.DY*s.Strength*verticalScale*f, prm.BaseHeight, prm.TopHeight)
		}
		m.Vertices[i] = v
	}
}

// falloff maps a normalized distance in [0, 1) to a weight, 1 at the
// center easing to 0 at the edge.
func falloff(t float64) float64 {
	return math.Cos(t * math.Pi / 2)
}
