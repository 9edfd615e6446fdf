package mandelview

import (
	"github.com/gogpu/mandelview/internal/parallel"
)

// frame is the immutable input of one recompute. It is captured before the
// fan-out so row tasks never read engine state.
type frame struct {
	window ComplexWindow
	tint   Tint
	width  int
	height int
}

// row fills one row of buf. Rows write disjoint byte ranges.
func (f frame) row(buf *PixelBuffer, y int) {
	pix := buf.data[y*f.width*4 : (y+1)*f.width*4]
	for x := 0; x < f.width; x++ {
		c := f.tint.Shade(Escape(f.window.At(x, y, f.width, f.height)))
		i := x * 4
		pix[i+0] = c.R
		pix[i+1] = c.G
		pix[i+2] = c.B
		pix[i+3] = c.A
	}
}

func newFrame(vp Viewport, w ComplexWindow, t Tint) frame {
	return frame{window: w, tint: t, width: vp.Width, height: vp.Height}
}

// RenderSerial computes the field for vp row by row on the calling goroutine.
// It is the reference the parallel recompute must match bit for bit.
func RenderSerial(vp Viewport, w ComplexWindow, t Tint) (*PixelBuffer, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if vp.Empty() {
		return &PixelBuffer{}, nil
	}
	buf, err := NewPixelBuffer(vp.Width, vp.Height)
	if err != nil {
		return nil, err
	}
	f := newFrame(vp, w, t)
	for y := 0; y < f.height; y++ {
		f.row(buf, y)
	}
	return buf, nil
}

// RenderParallel computes the field for vp with one task per row spread over
// a temporary pool of the given size (GOMAXPROCS when workers <= 0).
func RenderParallel(vp Viewport, w ComplexWindow, t Tint, workers int) (*PixelBuffer, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	if vp.Empty() {
		return &PixelBuffer{}, nil
	}
	buf, err := NewPixelBuffer(vp.Width, vp.Height)
	if err != nil {
		return nil, err
	}
	pool := parallel.NewWorkerPool(workers)
	defer pool.Close()

	f := newFrame(vp, w, t)
	pool.For(f.height, func(y int) { f.row(buf, y) })
	return buf, nil
}
