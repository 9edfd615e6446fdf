// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpucanvas

import (
	"fmt"

	"github.com/gogpu/gpucontext"
)

// RenderTo uploads pending pixels and draws the canvas at (0, 0).
//
// The dc parameter should be obtained from gogpu.Context.AsTextureDrawer().
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    canvas.RenderTo(dc.AsTextureDrawer())
//	})
func (c *Canvas) RenderTo(dc gpucontext.TextureDrawer) error {
	return c.RenderToPosition(dc, 0, 0)
}

// RenderToPosition uploads pending pixels and draws the canvas at (x, y).
func (c *Canvas) RenderToPosition(dc gpucontext.TextureDrawer, x, y float32) error {
	if c.closed {
		return ErrCanvasClosed
	}
	if dc == nil {
		return ErrNilDrawer
	}
	if err := c.flush(dc); err != nil {
		return err
	}
	return dc.DrawTexture(c.texture, x, y)
}

// flush brings the GPU texture up to date with pix.
func (c *Canvas) flush(dc gpucontext.TextureDrawer) error {
	if c.sizeChanged {
		if c.texture != nil {
			destroy(c.oldTexture)
			c.oldTexture = c.texture
			c.texture = nil
		}
		c.sizeChanged = false
	}

	if c.texture != nil {
		if !c.dirty {
			return nil
		}
		if updater, ok := c.texture.(gpucontext.TextureUpdater); ok {
			if err := updater.UpdateData(c.pix); err != nil {
				return fmt.Errorf("gpucanvas: texture update failed: %w", err)
			}
			c.dirty = false
			return nil
		}
		// Not updatable in place: recreate it below.
		destroy(c.oldTexture)
		c.oldTexture = c.texture
		c.texture = nil
	}

	creator := dc.TextureCreator()
	if creator == nil {
		return ErrInvalidRenderer
	}
	// NewTextureFromRGBA waits for the GPU while writing, so the replaced
	// texture is no longer referenced once it returns.
	tex, err := creator.NewTextureFromRGBA(c.width, c.height, c.pix)
	if err != nil {
		return fmt.Errorf("gpucanvas: NewTextureFromRGBA failed: %w", err)
	}
	c.texture = tex
	c.dirty = false

	destroy(c.oldTexture)
	c.oldTexture = nil
	return nil
}
