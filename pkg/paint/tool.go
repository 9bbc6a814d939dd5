package paint

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gg"
)

// Tool selects what a pointer drag does.
type Tool int

const (
	ToolBrush Tool = iota
	ToolSpray
	ToolBucket
)

func (t Tool) String() string {
	switch t {
	case ToolBrush:
		return "brush"
	case ToolSpray:
		return "spray"
	case ToolBucket:
		return "bucket"
	}
	return fmt.Sprintf("Tool(%d)", int(t))
}

// ParseTool is the inverse of Tool.String.
func ParseTool(s string) (Tool, error) {
	for _, t := range []Tool{ToolBrush, ToolSpray, ToolBucket} {
		if t.String() == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("paint: unknown tool %q", s)
}

// Painter drives a Canvas from pointer events. Pointer down begins a
// stroke, drags extend it and pointer up commits it. The bucket fills and
// commits on pointer down.
type Painter struct {
	Canvas    *Canvas
	Color     gg.RGBA
	Radius    float64 // brush radius in texels; the spray uses SprayMultiplier times this
	Falloff   Falloff
	Tolerance float64

	tool    Tool
	painted bool // the open stroke has touched the canvas
}

// NewPainter returns a brush painter with default settings.
func NewPainter(c *Canvas) *Painter {
	return &Painter{
		Canvas:    c,
		Color:     gg.Black,
		Radius:    4,
		Falloff:   DefaultFalloff,
		Tolerance: DefaultTolerance,
	}
}

// Tool returns the active tool.
func (p *Painter) Tool() Tool { return p.tool }

// SetTool switches tools. Switching during a drag is refused.
func (p *Painter) SetTool(t Tool) bool {
	if p.Canvas.Drawing() {
		return false
	}
	p.tool = t
	return true
}

// PointerDown starts a stroke at pt.
func (p *Painter) PointerDown(pt Point) {
	if p.Canvas.Drawing() {
		return
	}
	if p.tool == ToolBucket {
		p.Canvas.Begin()
		p.Canvas.FloodFill(image.Pt(int(math.Round(pt.X)), int(math.Round(pt.Y))), p.Color, p.Tolerance)
		p.Canvas.Commit()
		return
	}
	p.Canvas.Begin()
	p.apply(pt)
}

// BeginStroke opens a stroke without painting, for a press that arrives
// while drawing is suspended. Later drags paint into it; a stroke that
// never painted is dropped on PointerUp. The bucket ignores it.
func (p *Painter) BeginStroke() {
	if p.Canvas.Drawing() || p.tool == ToolBucket {
		return
	}
	p.Canvas.Begin()
	p.painted = false
}

// PointerDrag extends the stroke to pt. It does nothing when idle.
func (p *Painter) PointerDrag(pt Point) {
	if !p.Canvas.Drawing() {
		return
	}
	p.apply(pt)
}

// PointerUp commits the stroke.
func (p *Painter) PointerUp() {
	if !p.Canvas.Drawing() {
		return
	}
	if !p.painted {
		p.Canvas.Cancel()
		return
	}
	p.Canvas.Commit()
}

// Undo reverts the most recent stroke, or the one in progress.
func (p *Painter) Undo() bool {
	return p.Canvas.Undo()
}

func (p *Painter) apply(pt Point) {
	p.painted = true
	switch p.tool {
	case ToolBrush:
		p.Canvas.Brush(pt, p.Radius, p.Color)
	case ToolSpray:
		p.Canvas.Spray(pt, p.Radius*SprayMultiplier, p.Color, p.Falloff)
	}
}
