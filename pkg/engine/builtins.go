package engine

import (
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/chazu/kiln/pkg/lathe"
	"github.com/chazu/kiln/pkg/paint"
	v3 "github.com/deadsy/sdfx/vec/v3"
	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/gogpu/gg"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource transforms Kiln Lisp source code before passing it to
// zygomys. It performs two transformations:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal)
//     This avoids the need to register keyword symbols as globals, which
//     would conflict with user-defined variables of the same name.
//
//  2. Kebab-case to underscore: radius-at -> radius_at
//     zygomys does not allow hyphens in identifiers (it interprets them
//     as the subtraction operator). This converts kebab-case identifiers
//     to underscore form outside of strings and comments.
//
// Both transformations respect string literal boundaries and line comments.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		// Skip double-quoted string literals.
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Skip backtick-quoted string literals.
		if b[i] == '`' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Convert ; line comments to // comments for zygomys.
		// zygomys uses // for line comments, not the traditional Lisp ;.
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			// Skip additional ; characters (;; style).
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		// Transform :keyword to "__kw_keyword".
		if b[i] == ':' && i+1 < len(b) {
			// Preserve := (assignment operator).
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			// Check for keyword: colon followed by a letter.
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := string(b[i+1 : j])
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		// Transform kebab-case identifiers: alpha-alpha -> alpha_alpha.
		// Only when hyphen sits between identifier characters (not a minus operator).
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

func isIdentStartChar(c byte) bool {
	return isLetter(c)
}


// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

// sexpColor wraps a gg.RGBA so (rgb ...) can feed (color ...) and friends.
type sexpColor struct {
	c gg.RGBA
}

func (c *sexpColor) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(rgb %.3g %.3g %.3g %.3g)", c.c.R, c.c.G, c.c.B, c.c.A)
}
func (c *sexpColor) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW checks if a Sexp is a preprocessed keyword string.
// Returns the keyword name (without prefix) and true if it is.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
// Keywords are identified by the __kw_ prefix added during preprocessing.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				// Keyword at end with no value: treat as flag with nil.
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

// float stores the keyword's value in dst when the keyword is present.
func (a kwArgs) float(key string, dst *float64) error {
	v, ok := a.kw[key]
	if !ok {
		return nil
	}
	f, err := toFloat64(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = f
	return nil
}

// int is float for whole numbers.
func (a kwArgs) int(key string, dst *int) error {
	v, ok := a.kw[key]
	if !ok {
		return nil
	}
	n, err := toInt(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

// floats converts every positional argument to a number.
func (a kwArgs) floats() ([]float64, error) {
	out := make([]float64, len(a.positional))
	for i, s := range a.positional {
		f, err := toFloat64(s)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		out[i] = f
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

// toFloat64 extracts a float64 from a Sexp (SexpInt or SexpFloat).
func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

// toInt extracts a whole number from a Sexp.
func toInt(s zygo.Sexp) (int, error) {
	f, err := toFloat64(s)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("expected whole number, got %g", f)
	}
	return int(f), nil
}

// toString extracts a string from a Sexp.
func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString extracts a keyword name or plain string from a Sexp.
// Handles both preprocessed keywords (__kw_brush) and plain strings ("brush").
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], nil
	}
	return str.S, nil
}

// toColor accepts a hex string ("#rrggbb", "#rgb", with optional alpha) or
// the result of (rgb ...).
func toColor(s zygo.Sexp) (gg.RGBA, error) {
	if c, ok := s.(*sexpColor); ok {
		return c.c, nil
	}
	hex, err := toString(s)
	if err != nil {
		return gg.RGBA{}, fmt.Errorf("expected color: %w", err)
	}
	c, err := gg.ParseHex(hex)
	if err != nil {
		return gg.RGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}
	return c, nil
}

// toPoint reads an x y pair of texture coordinates.
func toPoint(args []zygo.Sexp) (paint.Point, error) {
	if len(args) != 2 {
		return paint.Point{}, fmt.Errorf("expected x and y, got %d arguments", len(args))
	}
	x, err := toFloat64(args[0])
	if err != nil {
		return paint.Point{}, fmt.Errorf("x: %w", err)
	}
	y, err := toFloat64(args[1])
	if err != nil {
		return paint.Point{}, fmt.Errorf("y: %w", err)
	}
	return paint.Point{X: x, Y: y}, nil
}

func pixelOf(p paint.Point) image.Point {
	return image.Pt(int(math.Round(p.X)), int(math.Round(p.Y)))
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs all Kiln DSL builtins into a zygomys environment.
// The builtins operate on the provided Workbench, shaping and painting it
// during evaluation.
//
// Source code must be preprocessed with preprocessSource() before evaluation so
// that :keyword tokens are converted to recognizable string literals.
func registerBuiltins(env *zygo.Zlisp, wb *Workbench) {
	registerWheel(env, wb)
	registerEasel(env, wb)
}

func registerWheel(env *zygo.Zlisp, wb *Workbench) {

	// -----------------------------------------------------------------------
	// (lathe :rings 20 :segments 40 :ring-height 0.1 :outer 1.0 :inner 0.9)
	// -----------------------------------------------------------------------
	env.AddFunction("lathe", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		p := lathe.DefaultProfile()

		for _, err := range []error{
			pa.int("rings", &p.Rings),
			pa.int("segments", &p.Segments),
			pa.float("ring-height", &p.RingHeight),
			pa.float("outer", &p.OuterRadius),
			pa.float("inner", &p.InnerRadius),
		} {
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("lathe: %w", err)
			}
		}
		if err := p.Validate(); err != nil {
			return zygo.SexpNull, fmt.Errorf("lathe: %w", err)
		}

		wb.shape(p)
		return &zygo.SexpInt{Val: int64(wb.Mesh.VertexCount())}, nil
	})

	// -----------------------------------------------------------------------
	// (sculpt :y 1.0 :dx 10 :dy 0 :level 5 :reach 2)
	//
	// :level and :reach stick for later strokes, like tuning on the wheel.
	// -----------------------------------------------------------------------
	env.AddFunction("sculpt", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		m := wb.mesh()

		y := wb.Profile.Height() / 2
		var dx, dy float64
		level, reach := wb.Level, wb.Params.Reach
		for _, err := range []error{
			pa.float("y", &y),
			pa.float("dx", &dx),
			pa.float("dy", &dy),
			pa.float("level", &level),
			pa.float("reach", &reach),
		} {
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("sculpt: %w", err)
			}
		}
		wb.Level = lathe.ClampLevel(level)
		wb.Params.Reach = lathe.ClampReach(reach)

		lathe.Deform(m, lathe.Stroke{
			Origin:   v3.Vec{X: 0, Y: y, Z: wb.Profile.OuterRadius},
			DX:       dx,
			DY:       dy,
			Strength: lathe.StrengthForLevel(wb.Level),
		}, wb.Params)
		wb.Strokes++

		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (reset)
	// -----------------------------------------------------------------------
	env.AddFunction("reset", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		wb.Mesh = lathe.Reset(wb.Profile)
		wb.Strokes = 0
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (radius-at ring segment) -> outer wall radius
	//
	// Note: registered as "radius_at"; the preprocessor rewrites radius-at.
	// -----------------------------------------------------------------------
	env.AddFunction("radius_at", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) < 1 || len(args) > 2 {
			return zygo.SexpNull, fmt.Errorf("radius-at requires a ring and an optional segment")
		}
		ring, err := toInt(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("radius-at: ring: %w", err)
		}
		seg := 0
		if len(args) == 2 {
			if seg, err = toInt(args[1]); err != nil {
				return zygo.SexpNull, fmt.Errorf("radius-at: segment: %w", err)
			}
		}
		p := wb.Profile
		if ring < 0 || ring > p.Rings || seg < 0 || seg > p.Segments {
			return zygo.SexpNull, fmt.Errorf("radius-at: ring %d segment %d outside the %dx%d wall",
				ring, seg, p.Rings, p.Segments)
		}
		v := wb.mesh().Vertices[ring*(p.Segments+1)+seg]
		return &zygo.SexpFloat{Val: math.Hypot(v.X, v.Z)}, nil
	})
}

func registerEasel(env *zygo.Zlisp, wb *Workbench) {

	// idle guards one-shot operations that would corrupt a stroke in progress.
	idle := func(op string) error {
		if wb.Painter != nil && wb.Painter.Canvas.Drawing() {
			return fmt.Errorf("%s: a stroke is in progress, call (up) first", op)
		}
		return nil
	}

	// -----------------------------------------------------------------------
	// (canvas :size 1024 :background "#ffffff" :history 10)
	// -----------------------------------------------------------------------
	env.AddFunction("canvas", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		size, history := paint.DefaultSize, paint.DefaultHistory
		if err := pa.int("size", &size); err != nil {
			return zygo.SexpNull, fmt.Errorf("canvas: %w", err)
		}
		if err := pa.int("history", &history); err != nil {
			return zygo.SexpNull, fmt.Errorf("canvas: %w", err)
		}
		bg := gg.White
		if v, ok := pa.kw["background"]; ok {
			c, err := toColor(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("canvas: background: %w", err)
			}
			bg = c
		}
		if err := paint.ValidateSize(size, history); err != nil {
			return zygo.SexpNull, fmt.Errorf("canvas: %w", err)
		}

		wb.Background = bg
		wb.Painter = paint.NewPainter(paint.NewCanvas(size, bg, history))
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (tool :brush) (tool :spray) (tool :bucket)
	// -----------------------------------------------------------------------
	env.AddFunction("tool", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("tool requires exactly one of :brush, :spray or :bucket")
		}
		kw, err := toKeywordString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("tool: %w", err)
		}
		t, err := paint.ParseTool(kw)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("tool: %w", err)
		}
		if !wb.painter().SetTool(t) {
			return zygo.SexpNull, fmt.Errorf("tool: cannot switch tools during a stroke")
		}
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (rgb 0.8 0.3 0.1) (rgb 0.8 0.3 0.1 0.5)
	// -----------------------------------------------------------------------
	env.AddFunction("rgb", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		vals, err := parseArgs(args).floats()
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rgb: %w", err)
		}
		switch len(vals) {
		case 3:
			return &sexpColor{c: gg.RGB(vals[0], vals[1], vals[2])}, nil
		case 4:
			return &sexpColor{c: gg.RGBA2(vals[0], vals[1], vals[2], vals[3])}, nil
		}
		return zygo.SexpNull, fmt.Errorf("rgb requires 3 or 4 components, got %d", len(vals))
	})

	// -----------------------------------------------------------------------
	// (color "#8b4513")
	// -----------------------------------------------------------------------
	env.AddFunction("color", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("color requires exactly one argument")
		}
		c, err := toColor(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("color: %w", err)
		}
		wb.painter().Color = c
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (radius 6)
	// -----------------------------------------------------------------------
	env.AddFunction("radius", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("radius requires exactly one argument")
		}
		r, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("radius: %w", err)
		}
		if r < 0 {
			return zygo.SexpNull, fmt.Errorf("radius: must not be negative, got %g", r)
		}
		wb.painter().Radius = r
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (falloff :ease-in-out) (falloff :sine) (falloff :quad) (falloff :linear)
	// -----------------------------------------------------------------------
	env.AddFunction("falloff", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("falloff requires exactly one curve name")
		}
		kw, err := toKeywordString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("falloff: %w", err)
		}
		f, ok := paint.Falloffs[kw]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("falloff: unknown curve %q", kw)
		}
		wb.painter().Falloff = f
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (tolerance 0.1)
	// -----------------------------------------------------------------------
	env.AddFunction("tolerance", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("tolerance requires exactly one argument")
		}
		t, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("tolerance: %w", err)
		}
		wb.painter().Tolerance = t
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (down x y) (drag x y) (up)
	// -----------------------------------------------------------------------
	env.AddFunction("down", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pt, err := toPoint(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("down: %w", err)
		}
		if err := idle("down"); err != nil {
			return zygo.SexpNull, err
		}
		wb.painter().PointerDown(pt)
		return zygo.SexpNull, nil
	})

	env.AddFunction("drag", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pt, err := toPoint(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("drag: %w", err)
		}
		wb.painter().PointerDrag(pt)
		return zygo.SexpNull, nil
	})

	env.AddFunction("up", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		wb.painter().PointerUp()
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (stroke x0 y0 x1 y1 ...) -> down, drags, up with the current tool
	// -----------------------------------------------------------------------
	env.AddFunction("stroke", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		vals, err := parseArgs(args).floats()
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("stroke: %w", err)
		}
		if len(vals) < 2 || len(vals)%2 != 0 {
			return zygo.SexpNull, fmt.Errorf("stroke requires x y pairs, got %d numbers", len(vals))
		}
		if err := idle("stroke"); err != nil {
			return zygo.SexpNull, err
		}
		p := wb.painter()
		p.PointerDown(paint.Point{X: vals[0], Y: vals[1]})
		for i := 2; i < len(vals); i += 2 {
			p.PointerDrag(paint.Point{X: vals[i], Y: vals[i+1]})
		}
		p.PointerUp()
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (spray x y) -> one soft stamp as its own stroke
	// -----------------------------------------------------------------------
	env.AddFunction("spray", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pt, err := toPoint(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("spray: %w", err)
		}
		if err := idle("spray"); err != nil {
			return zygo.SexpNull, err
		}
		p := wb.painter()
		p.Canvas.Begin()
		p.Canvas.Spray(pt, p.Radius*paint.SprayMultiplier, p.Color, p.Falloff)
		p.Canvas.Commit()
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (fill x y :tolerance 0.1)
	// -----------------------------------------------------------------------
	env.AddFunction("fill", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		pt, err := toPoint(pa.positional)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("fill: %w", err)
		}
		p := wb.painter()
		tol := p.Tolerance
		if err := pa.float("tolerance", &tol); err != nil {
			return zygo.SexpNull, fmt.Errorf("fill: %w", err)
		}
		if err := idle("fill"); err != nil {
			return zygo.SexpNull, err
		}
		p.Canvas.Begin()
		p.Canvas.FloodFill(pixelOf(pt), p.Color, tol)
		p.Canvas.Commit()
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (undo) -> true if a stroke was reverted
	// -----------------------------------------------------------------------
	env.AddFunction("undo", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		return &zygo.SexpBool{Val: wb.painter().Undo()}, nil
	})

	// -----------------------------------------------------------------------
	// (clear) (clear "#000000")
	// -----------------------------------------------------------------------
	env.AddFunction("clear", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		c := wb.Background
		if len(args) > 0 {
			var err error
			if c, err = toColor(args[0]); err != nil {
				return zygo.SexpNull, fmt.Errorf("clear: %w", err)
			}
		}
		wb.painter().Canvas.Clear(c)
		return zygo.SexpNull, nil
	})

	// -----------------------------------------------------------------------
	// (pixel x y) -> "#rrggbb"
	// -----------------------------------------------------------------------
	env.AddFunction("pixel", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pt, err := toPoint(args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("pixel: %w", err)
		}
		px := pixelOf(pt)
		c := wb.painter().Canvas.At(px.X, px.Y)
		return &zygo.SexpStr{S: colorful.Color{R: c.R, G: c.G, B: c.B}.Hex()}, nil
	})
}
