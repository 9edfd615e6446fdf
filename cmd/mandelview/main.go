// Command mandelview shows the Mandelbrot set in a GPU-presented window.
//
// Drag with the left button to zoom into a rectangle. The toolbar applies
// tint presets; Reset also returns to the full set. Keys: R resets, Escape
// cancels a drag or closes the palette, S saves the field as PNG.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/gogpu"
	"github.com/gogpu/mandelview"
)

const appTitle = "mandelview"

func main() {
	var (
		width     = flag.Int("width", 1280, "initial window width")
		height    = flag.Int("height", 800, "initial window height")
		workers   = flag.Int("workers", 0, "row workers (0 = GOMAXPROCS)")
		maxPixels = flag.Int("max-pixels", 0, "largest field in pixels (0 = unlimited)")
		cached    = flag.Int("cache", 8, "recent fields kept so reset and presets skip evaluation (0 = off)")
		outDir    = flag.String("snapshots", ".", "directory for S key snapshots")
		verbose   = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	mandelview.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	eng, err := mandelview.NewEngine(
		mandelview.WithWorkers(*workers),
		mandelview.WithMaxPixels(*maxPixels),
		mandelview.WithFieldCache(*cached),
		mandelview.WithBusyHook(func(busy bool) {
			if busy {
				mandelview.Logger().Debug("computing field")
			}
		}),
	)
	if err != nil {
		log.Fatalf("engine: %v", err)
	}

	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(appTitle).
		WithSize(*width, *height))

	v := newViewer(eng, *outDir)
	app.OnDraw(func(dc *gogpu.Context) {
		v.draw(dc, app.GPUContextProvider())
	})

	events := app.EventSource()
	events.OnMousePress(v.onPress)
	events.OnMouseMove(v.onMove)
	events.OnMouseRelease(v.onRelease)
	events.OnKeyPress(v.onKey)

	app.OnClose(func() {
		v.close()
		_ = eng.Close()
	})

	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}
