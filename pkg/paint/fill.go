package paint

import (
	"image"
	"math"

	"github.com/gogpu/gg"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// sameColorEpsilon is the per-channel difference below which the seed is
// considered already filled.
const sameColorEpsilon = 0.01

// FloodFill replaces the 4-connected region around seed whose colors lie
// within tolerance (Euclidean RGB distance) of the seed's original color.
// Columns wrap across the seam; rows stop at the top and bottom edges.
// A seed row outside the canvas, or a seed already colored col, does nothing.
func (c *Canvas) FloodFill(seed image.Point, col gg.RGBA, tolerance float64) {
	x, y := c.wrap(seed.X), seed.Y
	if y < 0 || y >= c.size {
		return
	}
	target := c.pix.GetPixel(x, y)
	if sameColor(target, col) {
		return
	}

	ref := rgb(target)
	matches := func(x, y int) bool {
		return rgb(c.pix.GetPixel(x, y)).DistanceRgb(ref) <= tolerance
	}

	px := premul(col)
	visited := make([]bool, c.size*c.size)
	stack := []image.Point{{X: x, Y: y}}
	visited[y*c.size+x] = true

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !matches(p.X, p.Y) {
			continue
		}
		c.pix.SetPixelPremul(p.X, p.Y, px[0], px[1], px[2], px[3])

		for _, n := range [4]image.Point{
			{X: c.wrap(p.X + 1), Y: p.Y},
			{X: c.wrap(p.X - 1), Y: p.Y},
			{X: p.X, Y: p.Y + 1},
			{X: p.X, Y: p.Y - 1},
		} {
			if n.Y < 0 || n.Y >= c.size || visited[n.Y*c.size+n.X] {
				continue
			}
			visited[n.Y*c.size+n.X] = true
			if matches(n.X, n.Y) {
				stack = append(stack, n)
			}
		}
	}
	c.pix.NotifyPixelsChanged()
}

func rgb(c gg.RGBA) colorful.Color {
	return colorful.Color{R: c.R, G: c.G, B: c.B}
}

func sameColor(a, b gg.RGBA) bool {
	return math.Abs(a.R-b.R) < sameColorEpsilon &&
		math.Abs(a.G-b.G) < sameColorEpsilon &&
		math.Abs(a.B-b.B) < sameColorEpsilon
}
