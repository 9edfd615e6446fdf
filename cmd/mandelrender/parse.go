package main

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/gogpu/mandelview"
	"github.com/gogpu/mandelview/internal/hud"
)

var errTintFormat = errors.New("want r,g,b")

// parseWindow builds a window from two complex literals. Empty values fall
// back to the matching corner of mandelview.DefaultWindow.
func parseWindow(from, to string) (mandelview.ComplexWindow, error) {
	w := mandelview.DefaultWindow
	if from != "" {
		c, err := strconv.ParseComplex(from, 128)
		if err != nil {
			return w, fmt.Errorf("from: %w", err)
		}
		w.From = c
	}
	if to != "" {
		c, err := strconv.ParseComplex(to, 128)
		if err != nil {
			return w, fmt.Errorf("to: %w", err)
		}
		w.To = c
	}
	if err := w.Validate(); err != nil {
		return w, err
	}
	return w, nil
}

// parseTint resolves a preset name or an r,g,b triple. A preset wins when
// both are given.
func parseTint(rgb, preset string) (mandelview.Tint, error) {
	if preset != "" {
		p, ok := mandelview.LookupPreset(preset)
		if !ok {
			return mandelview.DefaultTint, fmt.Errorf("unknown preset %q", preset)
		}
		return p.Tint, nil
	}
	if rgb == "" {
		return mandelview.DefaultTint, nil
	}
	parts := strings.Split(rgb, ",")
	if len(parts) != 3 {
		return mandelview.DefaultTint, fmt.Errorf("%q: %w", rgb, errTintFormat)
	}
	var ch [3]float64
	for i, s := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return mandelview.DefaultTint, fmt.Errorf("%q: %w", rgb, err)
		}
		ch[i] = v
	}
	return mandelview.Tint{R: ch[0], G: ch[1], B: ch[2]}.Clamp(), nil
}

// withStatus stacks the status bar on top of the field, the way the viewer
// lays out its window.
func withStatus(buf *mandelview.PixelBuffer, st mandelview.Stats) *image.RGBA {
	tb := hud.NewToolbar()
	w, h := buf.Width(), buf.Height()+tb.Height()
	f := hud.NewFrame(w, h)
	f.Clear()
	f.Compose(buf, mandelview.Viewport{Y: tb.Height(), Width: buf.Width(), Height: buf.Height()})
	tb.Draw(f.Image(), st.Tint, hud.StatusLine(st))
	return f.Image()
}
