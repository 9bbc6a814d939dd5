package main

import (
	"bytes"
	"encoding/base64"
	"log/slog"

	"github.com/chazu/kiln/pkg/engine"
	"github.com/chazu/kiln/pkg/kernel"
	"github.com/chazu/kiln/pkg/paint"
)

// clayColor tints the pot until a texture is bound to it.
const clayColor = "#B8734E"

// App ties the script engine to the JSON result consumed by hosts.
type App struct {
	engine *engine.Engine
	log    *slog.Logger
}

// MeshData is the JSON-serializable pot mesh.
type MeshData struct {
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
	UVs      []float32 `json:"uvs"`
	Indices  []uint32  `json:"indices"`
	Name     string    `json:"name"`
	Color    string    `json:"color"`
	Strokes  int       `json:"strokes"`
	Height   float64   `json:"height"`
}

// CanvasData describes the painted texture. Texture is a base64 PNG.
type CanvasData struct {
	Size      int    `json:"size"`
	UndoDepth int    `json:"undoDepth"`
	Tool      string `json:"tool"`
	Texture   string `json:"texture"`
}

// EvalErrorData is a JSON-serializable eval error.
type EvalErrorData struct {
	Line    int    `json:"line"`
	Col     int    `json:"col"`
	Message string `json:"message"`
}

// EvalResult is the full result of running a session script.
type EvalResult struct {
	Meshes   []MeshData      `json:"meshes"`
	Canvas   *CanvasData     `json:"canvas,omitempty"`
	Errors   []EvalErrorData `json:"errors"`
	Warnings []EvalErrorData `json:"warnings"`
}

// NewApp creates a new App. A nil logger discards output.
func NewApp(log *slog.Logger) *App {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &App{
		engine: engine.NewEngine(),
		log:    log,
	}
}

// Evaluate runs a session script and returns the pot and texture it
// produced, or the errors that stopped it.
func (a *App) Evaluate(source string) EvalResult {
	result, _ := a.evaluate(source)
	return result
}

// evaluate is Evaluate plus the workbench, which is nil on any error.
func (a *App) evaluate(source string) (EvalResult, *engine.Workbench) {
	result := EvalResult{
		Meshes:   []MeshData{},
		Errors:   []EvalErrorData{},
		Warnings: []EvalErrorData{},
	}

	// Step 1: Replay the script against a fresh workbench.
	wb, evalErrs, err := a.engine.Evaluate(source)
	if err != nil {
		// Fatal error (panic, timeout, etc.)
		a.log.Error("evaluate fatal error", "err", err)
		result.Errors = append(result.Errors, EvalErrorData{Message: err.Error()})
		return result, nil
	}

	// Step 2: Convert eval errors to the output format.
	if len(evalErrs) > 0 {
		for _, e := range evalErrs {
			result.Errors = append(result.Errors, EvalErrorData{
				Line:    e.Line,
				Col:     e.Col,
				Message: e.Message,
			})
		}
		return result, nil
	}

	for _, w := range wb.Warnings {
		result.Warnings = append(result.Warnings, EvalErrorData{
			Line:    w.Line,
			Col:     w.Col,
			Message: w.Message,
		})
	}

	// Step 3: Flatten the pot into render buffers.
	if wb.Mesh != nil {
		buf := wb.Mesh.Buffers()
		if err := buf.Validate(); err != nil {
			a.log.Error("invalid mesh buffers", "err", err)
			result.Errors = append(result.Errors, EvalErrorData{Message: "mesh generation failed: " + err.Error()})
			return result, nil
		}
		result.Meshes = append(result.Meshes, meshData(buf, wb))
	}

	// Step 4: Encode the texture.
	if c := wb.Canvas(); c != nil {
		data, err := canvasData(c, wb.Painter.Tool())
		if err != nil {
			a.log.Error("encode texture", "err", err)
			result.Errors = append(result.Errors, EvalErrorData{Message: "texture encoding failed: " + err.Error()})
			return result, nil
		}
		result.Canvas = data
	}

	a.log.Debug("evaluated", "meshes", len(result.Meshes), "canvas", result.Canvas != nil)
	return result, wb
}

func meshData(buf *kernel.Mesh, wb *engine.Workbench) MeshData {
	return MeshData{
		Vertices: buf.Vertices,
		Normals:  buf.Normals,
		UVs:      buf.UVs,
		Indices:  buf.Indices,
		Name:     buf.Name,
		Color:    clayColor,
		Strokes:  wb.Strokes,
		Height:   wb.Profile.Height(),
	}
}

func canvasData(c *paint.Canvas, tool paint.Tool) (*CanvasData, error) {
	var png bytes.Buffer
	if err := c.Pixmap().EncodePNG(&png); err != nil {
		return nil, err
	}
	return &CanvasData{
		Size:      c.Size(),
		UndoDepth: c.UndoDepth(),
		Tool:      tool.String(),
		Texture:   base64.StdEncoding.EncodeToString(png.Bytes()),
	}, nil
}
