package hud

import (
	"image"
	"image/color"
	"math"

	"github.com/gogpu/mandelview"
	"golang.org/x/image/draw"
)

// Background fills whatever the toolbar and field leave uncovered.
var Background = color.RGBA{R: 0x1e, G: 0x1e, B: 0x1e, A: 0xff}

// Frame is the full window image handed to the GPU each frame.
type Frame struct {
	img *image.RGBA
}

// NewFrame allocates a frame of the given size.
func NewFrame(width, height int) *Frame {
	return &Frame{img: image.NewRGBA(image.Rect(0, 0, width, height))}
}

// Resize reallocates the frame when the window size changes.
func (f *Frame) Resize(width, height int) {
	if f.img.Rect.Dx() == width && f.img.Rect.Dy() == height {
		return
	}
	f.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Image returns the frame's backing image.
func (f *Frame) Image() *image.RGBA {
	return f.img
}

// Clear fills the frame with the background colour.
func (f *Frame) Clear() {
	fillRect(f.img, f.img.Rect, Background)
}

// Compose copies the field into the frame at the viewport origin.
// Pixels falling outside the frame are clipped.
func (f *Frame) Compose(buf *mandelview.PixelBuffer, vp mandelview.Viewport) {
	if buf == nil || buf.Empty() {
		return
	}
	draw.Copy(f.img, image.Pt(vp.X, vp.Y), buf.Image(), buf.Bounds(), draw.Src, nil)
}

// Outline draws the in-progress selection rectangle.
func (f *Frame) Outline(sel mandelview.SelectionRect, c color.RGBA) {
	r := image.Rect(
		int(math.Floor(sel.TopLeft.X)), int(math.Floor(sel.TopLeft.Y)),
		int(math.Ceil(sel.BottomRight.X))+1, int(math.Ceil(sel.BottomRight.Y))+1,
	)
	strokeRect(f.img, r, c)
}
