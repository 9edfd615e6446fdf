// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gpucanvas presents CPU-composed frames in a gogpu window.
//
// The data flow is:
//
//	*image.RGBA (frame) -> Canvas (CPU copy) -> GPU texture -> window
//
// # Usage
//
//	canvas, err := gpucanvas.New(app.GPUContextProvider(), w, h)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer canvas.Close()
//
//	app.OnDraw(func(dc *gogpu.Context) {
//	    _ = canvas.Upload(frame)
//	    _ = canvas.RenderTo(dc.AsTextureDrawer())
//	})
//
// The texture is created lazily on the first render, updated in place while
// the size is unchanged, and recreated after Resize. The replaced texture is
// destroyed only after its successor has been written, since in-flight
// command buffers may still sample it.
//
// # Thread Safety
//
// Canvas is NOT safe for concurrent use. Use it from the draw callback.
package gpucanvas
