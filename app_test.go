package main

import (
	"encoding/base64"
	"os"
	"testing"
)

// TestE2EVaseExample exercises the full pipeline: Lisp source → engine →
// workbench → buffers and texture. This is the same path the CLI takes.
func TestE2EVaseExample(t *testing.T) {
	app := NewApp(nil)

	source, err := os.ReadFile("examples/vase.kiln")
	if err != nil {
		t.Fatalf("failed to read vase.kiln: %v", err)
	}

	result := app.Evaluate(string(source))

	// No errors expected.
	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error (line %d): %s", e.Line, e.Message)
		}
		t.FailNow()
	}

	if len(result.Meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(result.Meshes))
	}
	m := result.Meshes[0]

	// 24 rings x 48 segments: two walls plus the two cap seams.
	wantVerts := 2*25*49 + 2*49
	if got := len(m.Vertices) / 3; got != wantVerts {
		t.Errorf("vertex count = %d, want %d", got, wantVerts)
	}
	if len(m.Normals) != len(m.Vertices) {
		t.Errorf("normals = %d floats, want %d", len(m.Normals), len(m.Vertices))
	}
	if len(m.UVs) != 2*wantVerts {
		t.Errorf("uvs = %d floats, want %d", len(m.UVs), 2*wantVerts)
	}
	if len(m.Indices) == 0 || len(m.Indices)%3 != 0 {
		t.Errorf("indices = %d, want whole triangles", len(m.Indices))
	}
	if m.Strokes != 3 {
		t.Errorf("strokes = %d, want 3", m.Strokes)
	}
	if m.Color == "" {
		t.Error("mesh has no color assigned")
	}

	c := result.Canvas
	if c == nil {
		t.Fatal("expected a canvas")
	}
	if c.Size != 256 {
		t.Errorf("canvas size = %d, want 256", c.Size)
	}
	// stroke, three sprays and a fill
	if c.UndoDepth != 5 {
		t.Errorf("undo depth = %d, want 5", c.UndoDepth)
	}
	if c.Tool != "bucket" {
		t.Errorf("tool = %q, want bucket", c.Tool)
	}
	png, err := base64.StdEncoding.DecodeString(c.Texture)
	if err != nil {
		t.Fatalf("texture is not base64: %v", err)
	}
	if len(png) < 8 || string(png[1:4]) != "PNG" {
		t.Error("texture is not a PNG")
	}
}

// TestE2EEmptySource ensures the pipeline handles empty input gracefully.
func TestE2EEmptySource(t *testing.T) {
	app := NewApp(nil)
	result := app.Evaluate("")

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors for empty source: %v", result.Errors)
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes for empty source, got %d", len(result.Meshes))
	}
	if result.Canvas != nil {
		t.Error("expected no canvas for empty source")
	}
}

// TestE2ESyntaxError ensures eval errors are reported, not fatal errors.
func TestE2ESyntaxError(t *testing.T) {
	app := NewApp(nil)
	result := app.Evaluate("(lathe :rings 4")

	if len(result.Errors) == 0 {
		t.Fatal("expected eval errors for syntax error")
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes on error, got %d", len(result.Meshes))
	}
}

// TestE2ESingleLathe ensures a bare blank renders one mesh and no canvas.
func TestE2ESingleLathe(t *testing.T) {
	app := NewApp(nil)
	result := app.Evaluate(`(lathe)`)

	if len(result.Errors) > 0 {
		for _, e := range result.Errors {
			t.Errorf("eval error: %s", e.Message)
		}
		t.FailNow()
	}
	if len(result.Meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(result.Meshes))
	}
	if result.Meshes[0].Name != "pot" {
		t.Errorf("expected mesh name 'pot', got %q", result.Meshes[0].Name)
	}
	if result.Meshes[0].Height != 2 {
		t.Errorf("height = %g, want 2", result.Meshes[0].Height)
	}
	if result.Canvas != nil {
		t.Error("lathe alone should not stretch a canvas")
	}
}
