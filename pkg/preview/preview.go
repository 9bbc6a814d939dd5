// Package preview renders a paint canvas into a terminal using half-block
// cells, two texels per cell.
package preview

import (
	"github.com/chazu/kiln/pkg/paint"
	"github.com/gdamore/tcell/v2"
	"github.com/gogpu/gg"
	"github.com/samber/lo"
)

// HalfBlock is drawn in every cell; its foreground is the upper texel and
// its background the lower one.
const HalfBlock = '▀'

// Draw samples the canvas onto the whole screen. It does not call Show.
func Draw(screen tcell.Screen, c *paint.Canvas) {
	w, h := screen.Size()
	if w <= 0 || h <= 0 || c == nil {
		return
	}
	n := c.Size()
	for cy := 0; cy < h; cy++ {
		top := sample(cy*2, h*2, n)
		bottom := sample(cy*2+1, h*2, n)
		for cx := 0; cx < w; cx++ {
			x := sample(cx, w, n)
			style := tcell.StyleDefault.
				Foreground(Color(c.At(x, top))).
				Background(Color(c.At(x, bottom)))
			screen.SetContent(cx, cy, HalfBlock, nil, style)
		}
	}
}

// Color converts a straight-alpha canvas color to a terminal true color.
// Alpha is dropped.
func Color(c gg.RGBA) tcell.Color {
	return tcell.NewRGBColor(channel(c.R), channel(c.G), channel(c.B))
}

// sample maps cell i of cells onto a texel of an n-texel axis, taking the
// texel under the cell centre.
func sample(i, cells, n int) int {
	return lo.Clamp((2*i+1)*n/(2*cells), 0, n-1)
}

func channel(v float64) int32 {
	return int32(lo.Clamp(v*255+0.5, 0, 255))
}

// Show draws the canvas and blocks until a key is pressed, redrawing on
// resize. The screen must already be initialised.
func Show(screen tcell.Screen, c *paint.Canvas) {
	Draw(screen, c)
	screen.Show()
	for {
		switch screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			screen.Sync()
			Draw(screen, c)
			screen.Show()
		case *tcell.EventKey:
			return
		}
	}
}
