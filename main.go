// Command kiln replays a pottery session script: it throws and sculpts a
// pot on the wheel, paints its wrap-around texture, and prints the result
// as JSON. With -preview the texture is shown in the terminal.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/chazu/kiln/pkg/engine"
	"github.com/chazu/kiln/pkg/preview"
	"github.com/gdamore/tcell/v2"
)

func main() {
	var (
		script  = flag.String("script", "", "session script to run (default stdin)")
		texture = flag.String("texture", "", "write the painted texture to this PNG file")
		show    = flag.Bool("preview", false, "show the texture in the terminal until a key is pressed")
		verbose = flag.Bool("v", false, "log evaluation details to stderr")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	if *verbose {
		engine.SetLogger(log.With("component", "engine"))
	}

	if err := run(log, *script, *texture, *show, os.Stdout); err != nil {
		log.Error("kiln failed", "err", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger, script, texture string, show bool, out io.Writer) error {
	source, err := readScript(script)
	if err != nil {
		return err
	}

	app := NewApp(log)
	result, wb := app.evaluate(string(source))

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	if wb == nil {
		return fmt.Errorf("script failed with %d error(s)", len(result.Errors))
	}

	c := wb.Canvas()
	if texture != "" {
		if c == nil {
			return fmt.Errorf("script painted nothing, no texture to write")
		}
		if err := c.Pixmap().SavePNG(texture); err != nil {
			return fmt.Errorf("write texture: %w", err)
		}
		log.Info("texture written", "path", texture, "size", c.Size())
	}

	if show && c != nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		defer screen.Fini()
		preview.Show(screen, c)
	}
	return nil
}

func readScript(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
