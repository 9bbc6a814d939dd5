package paint

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/samber/lo"
)

// maxBrushSteps bounds the stamps laid down between two samples.
const maxBrushSteps = 200

// StrokeBrush paints a hard round brush from from to to. With no from it
// stamps a single disc at to. Otherwise the horizontal delta takes the
// short way around the seam and discs are stamped along the corrected
// segment. The returned point is where the next segment should start: its
// X is from.X plus the corrected delta, so it keeps counting past the seam.
func (c *Canvas) StrokeBrush(from *Point, to Point, radius float64, col gg.RGBA) Point {
	px := premul(col)
	if from == nil {
		c.disc(int(math.Round(to.X)), int(math.Round(to.Y)), radius, px)
		c.pix.NotifyPixelsChanged()
		return Point{X: to.X, Y: math.Round(to.Y)}
	}

	half := float64(c.size) / 2
	dx := to.X - from.X
	if dx > half {
		dx -= float64(c.size)
	} else if dx < -half {
		dx += float64(c.size)
	}
	dy := to.Y - from.Y

	steps := int(lo.Clamp(math.Ceil(math.Hypot(dx, dy)*2), 1, maxBrushSteps))
	maxRow := float64(c.size - 1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := c.wrapf(from.X + dx*t)
		y := int(lo.Clamp(math.Round(from.Y+dy*t), 0, maxRow))
		c.disc(x, y, radius, px)
	}
	c.pix.NotifyPixelsChanged()
	return Point{X: from.X + dx, Y: math.Round(to.Y)}
}

// Brush continues the current stroke to p, tracking the unwrapped position
// between calls. Begin or Commit starts the next call from scratch.
func (c *Canvas) Brush(p Point, radius float64, col gg.RGBA) {
	next := c.StrokeBrush(c.last, p, radius, col)
	c.last = &next
}

// LastStroke returns where the current stroke last painted.
func (c *Canvas) LastStroke() (Point, bool) {
	if c.last == nil {
		return Point{}, false
	}
	return *c.last, true
}

// disc fills every pixel with ox^2+oy^2 <= radius^2 around (cx, cy).
// Columns wrap; rows outside the canvas are skipped.
func (c *Canvas) disc(cx, cy int, radius float64, px [4]uint8) {
	r := int(math.Ceil(radius))
	r2 := radius * radius
	for oy := -r; oy <= r; oy++ {
		y := cy + oy
		if y < 0 || y >= c.size {
			continue
		}
		for ox := -r; ox <= r; ox++ {
			if float64(ox*ox+oy*oy) > r2 {
				continue
			}
			c.pix.SetPixelPremul(c.wrap(cx+ox), y, px[0], px[1], px[2], px[3])
		}
	}
}
