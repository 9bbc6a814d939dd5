package engine

import (
	"github.com/chazu/kiln/pkg/lathe"
	"github.com/chazu/kiln/pkg/paint"
	"github.com/gogpu/gg"
)

// DefaultLevel is the sculpting strength level a script starts with.
const DefaultLevel = 5

// Workbench is the state a session script builds up: the pot on the wheel
// and the texture on the easel. Either may be nil if the script never
// touched it.
type Workbench struct {
	Profile lathe.Profile
	Params  lathe.Params
	Level   float64 // sculpting strength level, sticky across strokes
	Mesh    *lathe.Mesh
	Strokes int // sculpt strokes applied since the last reset

	Painter    *paint.Painter
	Background gg.RGBA

	Warnings []EvalWarning
}

func newWorkbench() *Workbench {
	p := lathe.DefaultProfile()
	return &Workbench{
		Profile:    p,
		Params:     lathe.DefaultParams(p),
		Level:      DefaultLevel,
		Background: gg.White,
	}
}

// Canvas returns the painted texture, or nil.
func (w *Workbench) Canvas() *paint.Canvas {
	if w.Painter == nil {
		return nil
	}
	return w.Painter.Canvas
}

// shape replaces the pot with a fresh blank for p.
func (w *Workbench) shape(p lathe.Profile) {
	reach := w.Params.Reach
	w.Profile = p
	w.Params = lathe.DefaultParams(p)
	w.Params.Reach = reach
	w.Mesh = lathe.Generate(p)
	w.Strokes = 0
}

// finish records warnings about state the script left dangling.
func (w *Workbench) finish() {
	if w.Painter != nil && w.Painter.Canvas.Drawing() {
		w.Warnings = append(w.Warnings, EvalWarning{
			Message: "script ended during a stroke; the stroke was not committed, call (up) to keep it",
		})
	}
}

// mesh returns the pot, throwing a default blank on first use.
func (w *Workbench) mesh() *lathe.Mesh {
	if w.Mesh == nil {
		w.shape(w.Profile)
	}
	return w.Mesh
}

// painter returns the easel, stretching a default canvas on first use.
func (w *Workbench) painter() *paint.Painter {
	if w.Painter == nil {
		w.Painter = paint.NewPainter(paint.NewCanvas(paint.DefaultSize, w.Background, paint.DefaultHistory))
	}
	return w.Painter
}
