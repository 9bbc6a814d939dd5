package session

import (
	"math"

	"github.com/chazu/kiln/pkg/paint"
	v2 "github.com/deadsy/sdfx/vec/v2"
	"github.com/gogpu/gg"
)

// EaselConfig configures an Easel.
type EaselConfig struct {
	TextureSize int
	History     int
	Background  gg.RGBA

	RectWidth   float64 // on-screen canvas width in UI pixels
	HeightScale float64 // canvas height per unit of pottery height
	MinHeight   float64 // smallest on-screen canvas height
	BrushSize   float64 // brush radius in UI pixels
}

// DefaultEaselConfig returns the settings of the coloring stage.
func DefaultEaselConfig() EaselConfig {
	return EaselConfig{
		TextureSize: paint.DefaultSize,
		History:     paint.DefaultHistory,
		Background:  gg.White,
		RectWidth:   800,
		HeightScale: 1.2,
		MinHeight:   400,
		BrushSize:   20,
	}
}

// CanvasRect returns the on-screen canvas size for a pot of the given
// height.
func (c EaselConfig) CanvasRect(potteryHeight float64) v2.Vec {
	return v2.Vec{X: c.RectWidth, Y: math.Max(potteryHeight*c.HeightScale, c.MinHeight)}
}

// Easel paints the pottery texture through an on-screen rect. The primary
// button paints with the current tool, holding the secondary button
// suspends painting and the undo shortcut reverts the last stroke.
type Easel struct {
	cfg     EaselConfig
	rect    v2.Vec
	painter *paint.Painter
	wasLeft bool
}

// NewEasel creates a blank canvas sized for a pot of the given height. It
// panics if the texture size or history is invalid.
func NewEasel(cfg EaselConfig, potteryHeight float64) *Easel {
	c := paint.NewCanvas(cfg.TextureSize, cfg.Background, cfg.History)
	return &Easel{
		cfg:     cfg,
		rect:    cfg.CanvasRect(potteryHeight),
		painter: paint.NewPainter(c),
	}
}

// Painter returns the tool state, for picking colors and tools.
func (e *Easel) Painter() *paint.Painter { return e.painter }

// Canvas returns the painted texture.
func (e *Easel) Canvas() *paint.Canvas { return e.painter.Canvas }

// Rect returns the on-screen canvas size.
func (e *Easel) Rect() v2.Vec { return e.rect }

// SetBrushSize sets the brush radius in UI pixels.
func (e *Easel) SetBrushSize(px float64) { e.cfg.BrushSize = px }

// Clear wipes the canvas to the background color and forgets history.
func (e *Easel) Clear() {
	e.painter.Canvas.Clear(e.cfg.Background)
	e.wasLeft = false
}

// TexturePoint maps a rect-local pointer position to texture space.
func (e *Easel) TexturePoint(local v2.Vec) paint.Point {
	n := float64(e.cfg.TextureSize)
	return paint.Point{
		X: (local.X + e.rect.X/2) / e.rect.X * n,
		Y: (local.Y + e.rect.Y/2) / e.rect.Y * n,
	}
}

// Tick processes one frame of input.
func (e *Easel) Tick(_ float64, in Input) {
	if in.Undo {
		e.painter.Undo()
	}
	e.painter.Radius = e.cfg.BrushSize / e.rect.X * float64(e.cfg.TextureSize)
	pt := e.TexturePoint(in.Pointer)

	switch {
	case in.Left && !e.wasLeft:
		if in.Right {
			e.painter.BeginStroke()
		} else {
			e.painter.PointerDown(pt)
		}
	case in.Left:
		if !in.Right {
			e.painter.PointerDrag(pt)
		}
	case e.wasLeft:
		e.painter.PointerUp()
	}
	e.wasLeft = in.Left
}
