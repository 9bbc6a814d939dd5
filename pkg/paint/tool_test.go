package paint

import (
	"testing"

	"github.com/gogpu/gg"
)

func TestParseTool(t *testing.T) {
	for _, tool := range []Tool{ToolBrush, ToolSpray, ToolBucket} {
		got, err := ParseTool(tool.String())
		if err != nil || got != tool {
			t.Errorf("ParseTool(%q) = %v, %v", tool.String(), got, err)
		}
	}
	if _, err := ParseTool("airbrush"); err == nil {
		t.Error("ParseTool accepted an unknown tool")
	}
	if s := Tool(9).String(); s != "Tool(9)" {
		t.Errorf("unknown tool String() = %q", s)
	}
}

func TestPainterBrushStroke(t *testing.T) {
	p := NewPainter(NewCanvas(64, gg.White, DefaultHistory))
	p.Radius = 1

	p.PointerDown(Point{X: 10, Y: 10})
	if !p.Canvas.Drawing() {
		t.Fatal("PointerDown did not start a stroke")
	}
	p.PointerDrag(Point{X: 30, Y: 10})
	p.PointerUp()

	if p.Canvas.Drawing() {
		t.Error("PointerUp did not end the stroke")
	}
	if p.Canvas.UndoDepth() != 1 {
		t.Errorf("UndoDepth() = %d, want 1", p.Canvas.UndoDepth())
	}
	for x := 10; x <= 30; x++ {
		if !painted(p.Canvas, x, 10) {
			t.Fatalf("column %d not painted", x)
		}
	}
}

func TestPainterBeginStroke(t *testing.T) {
	t.Run("dropped when nothing was painted", func(t *testing.T) {
		p := NewPainter(NewCanvas(16, gg.White, DefaultHistory))
		p.BeginStroke()
		if !p.Canvas.Drawing() {
			t.Fatal("BeginStroke did not open a stroke")
		}
		p.PointerUp()
		if p.Canvas.Drawing() || p.Canvas.UndoDepth() != 0 {
			t.Errorf("empty stroke recorded: drawing %v, depth %d", p.Canvas.Drawing(), p.Canvas.UndoDepth())
		}
	})
	t.Run("later drags paint into it", func(t *testing.T) {
		p := NewPainter(NewCanvas(16, gg.White, DefaultHistory))
		p.Radius = 1
		p.BeginStroke()
		p.PointerDrag(Point{X: 4, Y: 4})
		p.PointerUp()
		if p.Canvas.UndoDepth() != 1 || !painted(p.Canvas, 4, 4) {
			t.Errorf("drag after BeginStroke not committed: depth %d", p.Canvas.UndoDepth())
		}
	})
	t.Run("bucket ignores it", func(t *testing.T) {
		p := NewPainter(NewCanvas(16, gg.White, DefaultHistory))
		p.SetTool(ToolBucket)
		p.BeginStroke()
		if p.Canvas.Drawing() {
			t.Error("bucket opened a stroke")
		}
	})
}

func TestPainterIgnoresDragWhenIdle(t *testing.T) {
	p := NewPainter(NewCanvas(16, gg.White, DefaultHistory))
	before := snapshot(p.Canvas)
	p.PointerDrag(Point{X: 4, Y: 4})
	p.PointerUp()
	if string(before) != string(snapshot(p.Canvas)) {
		t.Error("idle drag painted")
	}
	if p.Canvas.UndoDepth() != 0 {
		t.Error("idle pointer up committed a stroke")
	}
}

func TestPainterBucketCommitsOnDown(t *testing.T) {
	p := NewPainter(NewCanvas(8, gg.White, DefaultHistory))
	if !p.SetTool(ToolBucket) {
		t.Fatal("SetTool refused while idle")
	}
	p.Color = gg.Red
	p.PointerDown(Point{X: 2.4, Y: 3.6})

	if p.Canvas.Drawing() {
		t.Error("bucket left the canvas drawing")
	}
	if p.Canvas.UndoDepth() != 1 {
		t.Errorf("UndoDepth() = %d, want 1", p.Canvas.UndoDepth())
	}
	if p.Canvas.At(7, 7) != gg.Red {
		t.Error("bucket did not fill the canvas")
	}
	if !p.Undo() || p.Canvas.At(7, 7) != gg.White {
		t.Error("undo did not revert the fill")
	}
}

func TestPainterSprayUsesMultiplier(t *testing.T) {
	p := NewPainter(NewCanvas(64, gg.White, DefaultHistory))
	p.SetTool(ToolSpray)
	p.Radius = 4
	p.Falloff = Linear

	p.PointerDown(Point{X: 32, Y: 32})
	p.PointerUp()

	// Linear falloff over radius 8: a quarter of the way out blends 75%.
	if got := p.Canvas.At(34, 32).R; got < 0.2 || got > 0.3 {
		t.Errorf("R at distance 2 = %g, want about 0.25", got)
	}
	if got := p.Canvas.At(39, 32).R; got == 1 {
		t.Error("spray did not reach distance 7")
	}
}

func TestPainterRefusesToolSwitchMidDrag(t *testing.T) {
	p := NewPainter(NewCanvas(16, gg.White, DefaultHistory))
	p.PointerDown(Point{X: 3, Y: 3})
	if p.SetTool(ToolBucket) {
		t.Error("SetTool succeeded during a drag")
	}
	if p.Tool() != ToolBrush {
		t.Errorf("Tool() = %v, want brush", p.Tool())
	}
	p.PointerUp()
	if !p.SetTool(ToolSpray) {
		t.Error("SetTool refused after the drag")
	}
}
