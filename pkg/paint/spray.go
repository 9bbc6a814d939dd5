package paint

import (
	"math"

	"github.com/gen2brain/raylib-go/easings"
	"github.com/gogpu/gg"
	"github.com/samber/lo"
)

// Falloff maps a normalized distance from the spray center, 0 at the center
// and 1 at the edge, to a blend amount in [0, 1].
type Falloff func(t float64) float64

// Spray falloff curves. Each runs from 1 at the center to 0 at the edge.
var (
	EaseInOut = curve(easings.CubicInOut)
	SineInOut = curve(easings.SineInOut)
	QuadInOut = curve(easings.QuadInOut)
	Linear    = curve(easings.LinearNone)
)

// DefaultFalloff is the spray curve used when none is given.
var DefaultFalloff = EaseInOut

func curve(ease func(t, b, c, d float32) float32) Falloff {
	return func(t float64) float64 {
		return float64(ease(float32(lo.Clamp(t, 0, 1)), 1, -1, 1))
	}
}

// Falloffs lists the curves by name.
var Falloffs = map[string]Falloff{
	"ease-in-out": EaseInOut,
	"sine":        SineInOut,
	"quad":        QuadInOut,
	"linear":      Linear,
}

// Spray blends every pixel within radius of center toward col by
// falloff(distance/radius). The stamp is clipped to the canvas and does not
// wrap. A nil falloff uses DefaultFalloff.
func (c *Canvas) Spray(center Point, radius float64, col gg.RGBA, falloff Falloff) {
	if radius <= 0 {
		return
	}
	if falloff == nil {
		falloff = DefaultFalloff
	}
	cx, cy := int(math.Round(center.X)), int(math.Round(center.Y))
	r := int(math.Ceil(radius))
	x0, x1 := max(cx-r, 0), min(cx+r, c.size-1)
	y0, y1 := max(cy-r, 0), min(cy+r, c.size-1)

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			t := math.Hypot(float64(x-cx), float64(y-cy)) / radius
			if t > 1 {
				continue
			}
			cur := c.pix.GetPixel(x, y)
			c.pix.SetPixel(x, y, cur.Lerp(col, lo.Clamp(falloff(t), 0, 1)))
		}
	}
	c.pix.NotifyPixelsChanged()
}
