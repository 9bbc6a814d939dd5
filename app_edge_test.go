package main

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// 1. Empty editor: empty string -> 0 meshes, 0 errors, no canvas.
//    (TestE2EEmptySource already exists; this verifies additional invariants.)
// ---------------------------------------------------------------------------

func TestE2EEmptySourceExtended(t *testing.T) {
	app := NewApp(nil)
	result := app.Evaluate("")

	if len(result.Errors) != 0 {
		t.Errorf("expected 0 errors for empty source, got %d", len(result.Errors))
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes for empty source, got %d", len(result.Meshes))
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected 0 warnings for empty source, got %d", len(result.Warnings))
	}
	// Ensure slices are non-nil (JSON should serialize as [] not null).
	if result.Meshes == nil {
		t.Error("Meshes should be non-nil empty slice, got nil")
	}
	if result.Errors == nil {
		t.Error("Errors should be non-nil empty slice, got nil")
	}
	if result.Warnings == nil {
		t.Error("Warnings should be non-nil empty slice, got nil")
	}

	out, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `"meshes":[]`) {
		t.Errorf("meshes should serialize as [], got %s", out)
	}
	if strings.Contains(string(out), `"canvas"`) {
		t.Errorf("canvas should be omitted, got %s", out)
	}
}

// ---------------------------------------------------------------------------
// 2. Syntax error mid-expression: unmatched parens -> eval error, 0 meshes.
// ---------------------------------------------------------------------------

func TestE2ESyntaxErrorWithLineInfo(t *testing.T) {
	app := NewApp(nil)

	// Put valid code on line 1, broken code on line 2 so line info is meaningful.
	source := "(lathe)\n(sculpt :dx 10"
	result := app.Evaluate(source)

	if len(result.Errors) == 0 {
		t.Fatal("expected at least one eval error for unmatched parens")
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes on syntax error, got %d", len(result.Meshes))
	}

	e := result.Errors[0]
	if e.Message == "" {
		t.Error("syntax error should have a non-empty message")
	}
	t.Logf("syntax error: line=%d, col=%d, message=%q", e.Line, e.Col, e.Message)
}

func TestE2ESyntaxErrorSingleLineMissingParen(t *testing.T) {
	app := NewApp(nil)

	result := app.Evaluate("(+ 1 2")

	if len(result.Errors) == 0 {
		t.Fatal("expected eval error for missing closing paren")
	}
	if result.Errors[0].Message == "" {
		t.Error("error message should not be empty")
	}
}

// ---------------------------------------------------------------------------
// 3. Bad blanks: invalid profiles are reported, never panic.
// ---------------------------------------------------------------------------

func TestE2EInnerWiderThanOuter(t *testing.T) {
	app := NewApp(nil)

	result := app.Evaluate(`(lathe :outer 1.0 :inner 1.2)`)

	if len(result.Errors) == 0 {
		t.Fatal("expected eval error for inner radius >= outer radius")
	}
	if !strings.Contains(result.Errors[0].Message, "inner radius") {
		t.Errorf("expected error mentioning the inner radius, got: %v", result.Errors)
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes on error, got %d", len(result.Meshes))
	}
}

func TestE2ETooFewSegments(t *testing.T) {
	app := NewApp(nil)

	result := app.Evaluate(`(lathe :segments 2)`)

	if len(result.Errors) == 0 {
		t.Fatal("expected eval error for a two-segment blank")
	}
	if !strings.Contains(result.Errors[0].Message, "segments") {
		t.Errorf("expected error mentioning segments, got: %v", result.Errors)
	}
}

func TestE2EZeroRingHeight(t *testing.T) {
	app := NewApp(nil)

	result := app.Evaluate(`(lathe :ring-height 0)`)

	if len(result.Errors) == 0 {
		t.Fatal("expected eval error for zero ring height")
	}
}

// ---------------------------------------------------------------------------
// 4. Canvas misuse: bad sizes and interleaved strokes.
// ---------------------------------------------------------------------------

func TestE2EZeroCanvasSize(t *testing.T) {
	app := NewApp(nil)

	result := app.Evaluate(`(canvas :size 0)`)

	if len(result.Errors) == 0 {
		t.Fatal("expected eval error for a zero-size canvas")
	}
	if result.Canvas != nil {
		t.Error("expected no canvas on error")
	}
}

func TestE2EOversizedCanvas(t *testing.T) {
	app := NewApp(nil)

	result := app.Evaluate(`(canvas :size 100000)`)

	if len(result.Errors) == 0 {
		t.Fatal("expected eval error for an oversized canvas")
	}
	if strings.Contains(result.Errors[0].Message, "timed out") {
		t.Errorf("oversized canvas should be rejected up front, got %q", result.Errors[0].Message)
	}
}

func TestE2EOneShotDuringStroke(t *testing.T) {
	app := NewApp(nil)

	source := `
(canvas :size 32)
(down 4 4)
(fill 10 10)
`
	result := app.Evaluate(source)

	if len(result.Errors) == 0 {
		t.Fatal("expected eval error for fill during an open stroke")
	}
	if !strings.Contains(result.Errors[0].Message, "(up)") {
		t.Errorf("expected error pointing at (up), got: %v", result.Errors)
	}
}

func TestE2EOpenStrokeIsNotCommitted(t *testing.T) {
	app := NewApp(nil)

	source := `
(canvas :size 32)
(down 4 4)
(drag 20 4)
`
	result := app.Evaluate(source)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Canvas == nil {
		t.Fatal("expected a canvas")
	}
	if result.Canvas.UndoDepth != 0 {
		t.Errorf("undo depth = %d, want 0 for an uncommitted stroke", result.Canvas.UndoDepth)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0].Message, "(up)") {
		t.Errorf("expected one warning about the open stroke, got %v", result.Warnings)
	}
}

// ---------------------------------------------------------------------------
// 5. Rapid evaluation (debounce simulation): no panics, no data races.
//    Run with `go test -race` to detect data races.
// ---------------------------------------------------------------------------

func TestE2ERapidEvaluation(t *testing.T) {
	// Note: we call Evaluate sequentially because zygomys has internal
	// global state that is not safe for concurrent sandbox creation.
	app := NewApp(nil)

	sources := []string{
		`(lathe :rings 4 :segments 8)`,
		`(sculpt :dx 10)`,
		`(+ 1 2)`,
		``,
		`(canvas :size 16) (stroke 0 0 15 15)`,
		`(lathe :rings 30 :segments 60)`,
		`(+ 100 200)`,
		``,
		`(canvas :size 16) (tool :bucket) (fill 1 1)`,
		`(sculpt :y 0.5 :dx -10 :level 10)`,
	}

	for i, source := range sources {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("iteration %d panicked: %v", i, r)
				}
			}()
			_ = app.Evaluate(source)
		}()
	}
}

func TestE2ERapidEvaluationAlternating(t *testing.T) {
	// Ensures the engine recovers cleanly between error and success states.
	app := NewApp(nil)

	sources := []string{
		`(lathe)`,
		`(lathe :rings`,
		``,
		`(tool :chisel)`,
		`(canvas :size 16) (stroke 1 1 8 8)`,
		`(+ 1 2)`,
		`;; just a comment`,
		`(sculpt :dx 5)`,
		`(undefined-func 1 2 3)`,
		`(canvas :size 16) (undo)`,
	}

	for i, source := range sources {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("iteration %d panicked on source %q: %v", i, source, r)
				}
			}()
			_ = app.Evaluate(source)
		}()
	}
}

// ---------------------------------------------------------------------------
// 6. Large blanks: a dense profile -> valid mesh without crash.
// ---------------------------------------------------------------------------

func TestE2ELargeProfile(t *testing.T) {
	app := NewApp(nil)

	result := app.Evaluate(`(lathe :rings 120 :segments 180 :ring-height 0.02)`)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors for a dense blank: %v", result.Errors)
	}
	if len(result.Meshes) != 1 {
		t.Fatalf("expected 1 mesh, got %d", len(result.Meshes))
	}
	m := result.Meshes[0]
	if len(m.Vertices) == 0 || len(m.Normals) == 0 || len(m.Indices) == 0 {
		t.Error("dense mesh should have vertices, normals and indices")
	}
}

func TestE2EOversculpting(t *testing.T) {
	app := NewApp(nil)

	// Pull far past the radius limits in both directions.
	source := `
(lathe)
(sculpt :dx 100000 :level 10 :reach 4)
(sculpt :y 0.3 :dx -100000)
`
	result := app.Evaluate(source)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	m := result.Meshes[0]
	for _, f := range m.Vertices {
		if math.IsNaN(float64(f)) {
			t.Fatal("oversculpting produced NaN vertices")
		}
	}
}

// ---------------------------------------------------------------------------
// 7. Comments only: source that is only comments -> 0 meshes, 0 errors.
// ---------------------------------------------------------------------------

func TestE2ECommentsOnly(t *testing.T) {
	app := NewApp(nil)

	source := `
;; This is a comment
;; Another comment
; And another
`
	result := app.Evaluate(source)

	if len(result.Errors) > 0 {
		t.Errorf("unexpected errors for comments-only source: %v", result.Errors)
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes for comments-only source, got %d", len(result.Meshes))
	}
}

func TestE2EWhitespaceOnly(t *testing.T) {
	app := NewApp(nil)
	result := app.Evaluate("   \n\t\n   \n")

	if len(result.Errors) != 0 {
		t.Errorf("expected 0 errors for whitespace-only source, got %d", len(result.Errors))
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes for whitespace-only source, got %d", len(result.Meshes))
	}
}

// ---------------------------------------------------------------------------
// 8. Nested expressions: def with arithmetic, then use in a call.
// ---------------------------------------------------------------------------

func TestE2ENestedArithmeticDef(t *testing.T) {
	app := NewApp(nil)

	source := `
(def rings (* 4 5))
(def wall (- 1.0 0.08))
(lathe :rings rings :inner wall)
`
	result := app.Evaluate(source)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if got := len(result.Meshes[0].Vertices) / 3; got != 2*21*41+2*41 {
		t.Errorf("vertex count = %d, want %d", got, 2*21*41+2*41)
	}
}

func TestE2ERadiusFeedsStroke(t *testing.T) {
	app := NewApp(nil)

	// Paint a band whose thickness follows the pot's belly.
	source := `
(lathe)
(sculpt :dx 20)
(canvas :size 64)
(radius (* 4 (radius-at 10)))
(stroke 0 32 63 32)
`
	result := app.Evaluate(source)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Canvas == nil || result.Canvas.UndoDepth != 1 {
		t.Fatalf("expected one committed stroke, got %+v", result.Canvas)
	}
}

// ---------------------------------------------------------------------------
// 9. CLI: run writes JSON and the texture file.
// ---------------------------------------------------------------------------

func TestRunWritesTexture(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "pot.kiln")
	texture := filepath.Join(dir, "pot.png")
	if err := os.WriteFile(script, []byte(`(canvas :size 32) (stroke 0 16 31 16)`), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	log := slog.New(slog.DiscardHandler)
	if err := run(log, script, texture, false, &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	var result EvalResult
	if err := json.Unmarshal(out.Bytes(), &result); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if result.Canvas == nil || result.Canvas.Size != 32 {
		t.Errorf("unexpected canvas in output: %+v", result.Canvas)
	}
	if info, err := os.Stat(texture); err != nil || info.Size() == 0 {
		t.Errorf("texture not written: %v", err)
	}
}

func TestRunReportsScriptErrors(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "bad.kiln")
	if err := os.WriteFile(script, []byte(`(lathe :segments 1)`), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	err := run(slog.New(slog.DiscardHandler), script, "", false, &out)
	if err == nil {
		t.Fatal("expected run to fail")
	}
	if !strings.Contains(out.String(), `"errors"`) {
		t.Errorf("errors should still be printed, got %s", out.String())
	}
}

func TestRunTextureWithoutCanvas(t *testing.T) {
	dir := t.TempDir()
	script := filepath.Join(dir, "plain.kiln")
	if err := os.WriteFile(script, []byte(`(lathe)`), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	err := run(slog.New(slog.DiscardHandler), script, filepath.Join(dir, "x.png"), false, &out)
	if err == nil || !strings.Contains(err.Error(), "no texture") {
		t.Errorf("err = %v, want a missing texture error", err)
	}
}
