// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpucanvas

import (
	"errors"
	"fmt"
	"image"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/mandelview"
)

// Common errors returned by Canvas operations.
var (
	// ErrCanvasClosed is returned when operations are attempted on a closed canvas.
	ErrCanvasClosed = errors.New("gpucanvas: canvas is closed")

	// ErrInvalidDimensions is returned when width or height is invalid.
	ErrInvalidDimensions = errors.New("gpucanvas: invalid dimensions")

	// ErrNilProvider is returned when a nil DeviceProvider is passed.
	ErrNilProvider = errors.New("gpucanvas: nil DeviceProvider")

	// ErrSizeMismatch is returned by Upload when the image does not match the canvas.
	ErrSizeMismatch = errors.New("gpucanvas: image size does not match canvas")

	// ErrInvalidRenderer is returned when the draw context cannot create textures.
	ErrInvalidRenderer = errors.New("gpucanvas: draw context has no TextureCreator")

	// ErrNilDrawer is returned when RenderTo is given a nil TextureDrawer.
	ErrNilDrawer = errors.New("gpucanvas: nil TextureDrawer")
)

// textureDestroyer matches the Destroy method of gogpu textures.
type textureDestroyer interface {
	Destroy()
}

// Canvas holds one window-sized RGBA frame and the GPU texture it is
// presented through.
type Canvas struct {
	provider    gpucontext.DeviceProvider
	format      gputypes.TextureFormat
	pix         []byte // tightly packed RGBA, width*height*4
	texture     gpucontext.Texture
	oldTexture  gpucontext.Texture // replaced texture awaiting destruction
	dirty       bool               // pix changed since last upload
	sizeChanged bool               // texture must be recreated
	width       int
	height      int
	closed      bool
}

// New creates a canvas. The provider should come from
// gogpu.App.GPUContextProvider().
func New(provider gpucontext.DeviceProvider, width, height int) (*Canvas, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}

	c := &Canvas{
		provider: provider,
		format:   provider.SurfaceFormat(),
		pix:      make([]byte, width*height*4),
		width:    width,
		height:   height,
		dirty:    true,
	}
	info := provider.AdapterInfo()
	mandelview.Logger().Debug("gpucanvas created",
		"width", width, "height", height,
		"surface", c.format.String(),
		"adapter", info.Name,
		"adapterType", info.Type.String())
	return c, nil
}

// Upload copies img into the canvas and marks it dirty. img must have the
// canvas size; its origin may be anywhere.
func (c *Canvas) Upload(img *image.RGBA) error {
	if c.closed {
		return ErrCanvasClosed
	}
	r := img.Rect
	if r.Dx() != c.width || r.Dy() != c.height {
		return fmt.Errorf("%w: image %dx%d, canvas %dx%d",
			ErrSizeMismatch, r.Dx(), r.Dy(), c.width, c.height)
	}
	rowBytes := c.width * 4
	for y := 0; y < c.height; y++ {
		src := img.Pix[y*img.Stride : y*img.Stride+rowBytes]
		copy(c.pix[y*rowBytes:(y+1)*rowBytes], src)
	}
	c.dirty = true
	return nil
}

// Resize changes canvas dimensions and clears the pixels. The texture is
// recreated on the next render.
func (c *Canvas) Resize(width, height int) error {
	if c.closed {
		return ErrCanvasClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	if c.width == width && c.height == height {
		return nil
	}

	c.pix = make([]byte, width*height*4)
	c.width = width
	c.height = height
	c.sizeChanged = true
	c.dirty = true
	return nil
}

// Close destroys the textures. Close is idempotent.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true

	destroy(c.oldTexture)
	c.oldTexture = nil
	destroy(c.texture)
	c.texture = nil

	c.pix = nil
	c.provider = nil
	return nil
}

func destroy(t gpucontext.Texture) {
	if t == nil {
		return
	}
	if d, ok := t.(textureDestroyer); ok {
		d.Destroy()
	}
}
