// Command mandelrender renders a Mandelbrot window to a PNG file without
// opening a window.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gogpu/mandelview"
)

func main() {
	var (
		width   = flag.Int("width", 1280, "image width")
		height  = flag.Int("height", 776, "image height")
		output  = flag.String("output", "mandel.png", "output file")
		from    = flag.String("from", "", "window corner, e.g. (-1.9-1i)")
		to      = flag.String("to", "", "opposite window corner, e.g. (0.6+1i)")
		tintArg = flag.String("tint", "", "tint as r,g,b in [0,1]")
		preset  = flag.String("preset", "", "tint preset (Reset, Red, Green, Blue)")
		workers = flag.Int("workers", 0, "row workers (0 = GOMAXPROCS, 1 = serial)")
		status  = flag.Bool("status", false, "draw the status bar above the field")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	mandelview.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))

	window, err := parseWindow(*from, *to)
	if err != nil {
		log.Fatalf("window: %v", err)
	}
	tint, err := parseTint(*tintArg, *preset)
	if err != nil {
		log.Fatalf("tint: %v", err)
	}

	vp := mandelview.Viewport{Width: *width, Height: *height}
	start := time.Now()
	var buf *mandelview.PixelBuffer
	if *workers == 1 {
		buf, err = mandelview.RenderSerial(vp, window, tint)
	} else {
		buf, err = mandelview.RenderParallel(vp, window, tint, *workers)
	}
	if err != nil {
		log.Fatalf("render: %v", err)
	}
	elapsed := time.Since(start)

	if *status {
		img := withStatus(buf, mandelview.Stats{
			Window:        window,
			Tint:          tint,
			Magnification: window.Magnification(mandelview.DefaultWindow),
			Renders:       1,
			LastRender:    elapsed,
			Width:         buf.Width(),
			Height:        buf.Height(),
		})
		err = mandelview.WritePNG(*output, img)
	} else {
		err = buf.SavePNG(*output)
	}
	if err != nil {
		log.Fatalf("Failed to save: %v", err)
	}

	log.Printf("Saved %s (%dx%d) %s in %v\n", *output, buf.Width(), buf.Height(), window, elapsed)
}
