package mandelview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
)

// ErrBufferTooLarge is returned when a pixel buffer cannot be allocated for
// the requested viewport. The buffer keeps its previous contents.
var ErrBufferTooLarge = errors.New("mandelview: pixel buffer too large")

// PixelBuffer is a row-major grid of opaque RGBA pixels, one per screen
// pixel of the viewport it was computed for.
//
// The engine owns the buffer; consumers must treat it as read-only.
type PixelBuffer struct {
	width  int
	height int
	data   []uint8 // RGBA, 4 bytes per pixel
}

// NewPixelBuffer allocates a buffer of the given size.
func NewPixelBuffer(width, height int) (*PixelBuffer, error) {
	b := &PixelBuffer{}
	if err := b.resize(width, height, math.MaxInt); err != nil {
		return nil, err
	}
	return b, nil
}

// Width returns the width of the buffer in pixels.
func (b *PixelBuffer) Width() int {
	return b.width
}

// Height returns the height of the buffer in pixels.
func (b *PixelBuffer) Height() int {
	return b.height
}

// Len returns the number of pixels.
func (b *PixelBuffer) Len() int {
	return b.width * b.height
}

// Empty reports whether the buffer holds no pixels.
func (b *PixelBuffer) Empty() bool {
	return b.width == 0 || b.height == 0
}

// Data returns the raw pixel data (RGBA format).
func (b *PixelBuffer) Data() []uint8 {
	return b.data
}

// RGBAAt returns the colour at (x, y), or the zero colour out of bounds.
func (b *PixelBuffer) RGBAAt(x, y int) color.RGBA {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return color.RGBA{}
	}
	i := (y*b.width + x) * 4
	return color.RGBA{R: b.data[i], G: b.data[i+1], B: b.data[i+2], A: b.data[i+3]}
}

// Image returns an *image.RGBA sharing the buffer's memory.
func (b *PixelBuffer) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    b.data,
		Stride: b.width * 4,
		Rect:   image.Rect(0, 0, b.width, b.height),
	}
}

// ToImage copies the buffer into a new image.RGBA.
func (b *PixelBuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.width, b.height))
	copy(img.Pix, b.data)
	return img
}

// Equal reports whether both buffers have the same size and pixels.
func (b *PixelBuffer) Equal(o *PixelBuffer) bool {
	if b.width != o.width || b.height != o.height {
		return false
	}
	for i := range b.data {
		if b.data[i] != o.data[i] {
			return false
		}
	}
	return true
}

// SavePNG saves the buffer to a PNG file.
func (b *PixelBuffer) SavePNG(path string) error {
	if b.Empty() {
		return fmt.Errorf("mandelview: save %s: empty buffer", path)
	}
	return WritePNG(path, b.Image())
}

// WritePNG encodes img as PNG into a new file at path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// At implements the image.Image interface.
func (b *PixelBuffer) At(x, y int) color.Color {
	return b.RGBAAt(x, y)
}

// Bounds implements the image.Image interface.
func (b *PixelBuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// ColorModel implements the image.Image interface.
func (b *PixelBuffer) ColorModel() color.Model {
	return color.RGBAModel
}

// resize makes room for width*height pixels. Existing capacity is reused
// since every pixel is rewritten by the next recompute. On failure the
// buffer is left untouched.
func (b *PixelBuffer) resize(width, height, maxPixels int) error {
	if width < 0 || height < 0 {
		return fmt.Errorf("%w: %dx%d", ErrBufferTooLarge, width, height)
	}
	if height != 0 && width > maxPixels/height {
		return fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrBufferTooLarge, width, height, maxPixels)
	}
	n := width * height
	if n > (math.MaxInt-1)/4 {
		return fmt.Errorf("%w: %dx%d", ErrBufferTooLarge, width, height)
	}
	if cap(b.data) >= n*4 {
		b.data = b.data[:n*4]
	} else {
		data, err := allocPixels(n)
		if err != nil {
			return fmt.Errorf("%dx%d: %w", width, height, err)
		}
		b.data = data
	}
	b.width, b.height = width, height
	return nil
}

// allocPixels turns the runtime panic raised for an impossible slice length
// into ErrBufferTooLarge.
func allocPixels(n int) (data []uint8, err error) {
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, fmt.Errorf("%w: %v", ErrBufferTooLarge, r)
		}
	}()
	return make([]uint8, n*4), nil
}
