// Package paint is a raster painter for a square texture that wraps around
// a cylinder: columns wrap at the seam, rows clamp. It offers a continuous
// brush, a soft spray, a tolerance flood fill and a bounded undo history.
//
// A Canvas is not safe for concurrent use.
package paint

import (
	"errors"
	"fmt"
	"math"

	"github.com/gogpu/gg"
	"github.com/samber/lo"
)

const (
	// DefaultSize is the texture edge length in pixels.
	DefaultSize = 1024
	// DefaultHistory is how many canvas states are kept for undo, counting
	// the current one.
	DefaultHistory = 10
	// DefaultTolerance is the flood fill RGB distance threshold.
	DefaultTolerance = 0.1
	// SprayMultiplier scales the brush radius for the spray tool.
	SprayMultiplier = 2

	// MaxSize bounds the texture edge length; a canvas holds 4*size*size
	// bytes per history state.
	MaxSize = 8192
	// MaxHistory bounds the undo capacity.
	MaxHistory = 64
)

// ErrInvalidSize reports a canvas size or history capacity that cannot be
// constructed.
var ErrInvalidSize = errors.New("paint: invalid canvas size")

// Point is a texture-space position. X is continuous and may lie outside
// [0, size) while a stroke accumulates wraps; Y is a row.
type Point struct {
	X, Y float64
}

// Canvas is a size x size RGBA texture with undo history.
type Canvas struct {
	size    int
	pix     *gg.Pixmap
	history *history

	drawing bool
	last    *Point
}

// ValidateSize reports whether NewCanvas would accept size and capacity.
func ValidateSize(size, capacity int) error {
	if size <= 0 || size > MaxSize {
		return fmt.Errorf("%w: size %d must be in [1, %d]", ErrInvalidSize, size, MaxSize)
	}
	if capacity < 1 || capacity > MaxHistory {
		return fmt.Errorf("%w: history capacity %d must be in [1, %d]", ErrInvalidSize, capacity, MaxHistory)
	}
	return nil
}

// NewCanvas returns a canvas filled with bg. The filled canvas is the first
// history entry. It panics if ValidateSize fails.
func NewCanvas(size int, bg gg.RGBA, capacity int) *Canvas {
	if err := ValidateSize(size, capacity); err != nil {
		panic(err.Error())
	}
	c := &Canvas{
		size:    size,
		pix:     gg.NewPixmap(size, size),
		history: newHistory(capacity),
	}
	c.pix.Clear(bg)
	c.history.push(c.pix.Data())
	return c
}

// Size returns the edge length in pixels.
func (c *Canvas) Size() int { return c.size }

// Pixmap returns the backing pixel buffer. Hosts read it for upload and must
// not write to it.
func (c *Canvas) Pixmap() *gg.Pixmap { return c.pix }

// At returns the straight-alpha color of a pixel. The column wraps; rows
// outside the canvas read as transparent.
func (c *Canvas) At(x, y int) gg.RGBA {
	return c.pix.GetPixel(c.wrap(x), y)
}

// Drawing reports whether a stroke is in progress.
func (c *Canvas) Drawing() bool { return c.drawing }

// UndoDepth returns how many undos would currently succeed.
func (c *Canvas) UndoDepth() int { return c.history.len() - 1 }

// Begin starts a stroke. The state to return to on undo is the top of the
// history, so edits made outside a Begin/Commit pair belong to the next
// commit.
func (c *Canvas) Begin() {
	c.drawing = true
	c.last = nil
}

// Commit ends the current stroke and records the result.
func (c *Canvas) Commit() {
	c.history.push(c.pix.Data())
	c.drawing = false
	c.last = nil
}

// Cancel discards the stroke in progress without recording it.
func (c *Canvas) Cancel() {
	if !c.drawing {
		return
	}
	c.restore()
	c.drawing = false
	c.last = nil
}

// Undo restores the canvas to the state before the most recent stroke.
// During a drag it discards the stroke in progress instead. It returns
// false when there is nothing to undo.
func (c *Canvas) Undo() bool {
	if c.drawing {
		c.Cancel()
		return true
	}
	if !c.history.pop() {
		return false
	}
	c.restore()
	return true
}

// Clear fills the canvas with col and starts a fresh history.
func (c *Canvas) Clear(col gg.RGBA) {
	c.pix.Clear(col)
	c.pix.NotifyPixelsChanged()
	c.history.reset()
	c.history.push(c.pix.Data())
	c.drawing = false
	c.last = nil
}

func (c *Canvas) restore() {
	copy(c.pix.Data(), c.history.top())
	c.pix.NotifyPixelsChanged()
}

// wrap maps any column onto [0, size).
func (c *Canvas) wrap(x int) int {
	x %= c.size
	if x < 0 {
		x += c.size
	}
	return x
}

// wrapf is wrap for continuous positions.
func (c *Canvas) wrapf(x float64) int {
	return c.wrap(int(math.Floor(math.Mod(x, float64(c.size)))))
}

// premul converts a straight-alpha color to the pixmap's byte layout,
// quantizing the same way Pixmap.Clear does.
func premul(col gg.RGBA) [4]uint8 {
	p := col.Premultiply()
	return [4]uint8{toByte(p.R), toByte(p.G), toByte(p.B), toByte(p.A)}
}

func toByte(v float64) uint8 {
	return uint8(lo.Clamp(v*255, 0, 255))
}
