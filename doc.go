// Package mandelview renders an interactively zoomable Mandelbrot set.
//
// # Overview
//
// The package owns the parts of a fractal viewer that are independent of any
// window system:
//
//   - [Escape], the escape-time kernel mapping one complex number to a pixel value
//   - [ComplexWindow], the region of the complex plane mapped onto the screen
//   - [Engine], which recomputes a [PixelBuffer] when the viewport size, the
//     [Tint] or the window changes, and turns mouse drags into zooms
//
// A frame driver (see cmd/mandelview) calls [Engine.Update] once per frame with
// the current [Viewport], draws the returned buffer, and forwards pointer input
// through [Engine.HandlePointer].
//
// # Quick Start
//
//	eng, err := mandelview.NewEngine()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer eng.Close()
//
//	buf, err := eng.Update(mandelview.Viewport{Width: 800, Height: 600})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	_ = buf.SavePNG("mandel.png")
//
// # Coordinate System
//
// Screen coordinates have their origin at the top-left, Y increasing down.
// The window's From corner maps to the viewport origin, To to the
// bottom-right, so imaginary values increase down the screen.
//
// # Concurrency
//
// A recompute fans out one task per row over a fixed worker pool and joins
// before Update returns. Rows write disjoint slices of the buffer and read an
// immutable snapshot of the window, tint and viewport, so the result is
// identical to [RenderSerial] regardless of scheduling.
package mandelview

// Version is the current version of the module.
const Version = "0.1.0"
