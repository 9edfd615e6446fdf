package mandelview

import "math"

// Option configures an Engine during creation.
//
// Example:
//
//	eng, err := mandelview.NewEngine(
//	    mandelview.WithWorkers(4),
//	    mandelview.WithTint(mandelview.Tint{R: 1, G: .1}),
//	)
type Option func(*options)

type options struct {
	workers      int
	window       ComplexWindow
	tint         Tint
	minSelection float64
	maxPixels    int
	fieldCache   int
	busyHook     func(busy bool)
}

func defaultOptions() options {
	return options{
		workers:      0, // GOMAXPROCS
		window:       DefaultWindow,
		tint:         DefaultTint,
		minSelection: MinSelection,
		maxPixels:    math.MaxInt,
	}
}

// WithWorkers sets the size of the row worker pool.
// Zero or negative uses GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithWindow sets the startup window. Reset returns to it.
func WithWindow(w ComplexWindow) Option {
	return func(o *options) {
		o.window = w
	}
}

// WithTint sets the initial tint.
func WithTint(t Tint) Option {
	return func(o *options) {
		o.tint = t.Clamp()
	}
}

// WithMinSelection sets how many pixels a drag must exceed on both axes
// before it zooms.
func WithMinSelection(px float64) Option {
	return func(o *options) {
		o.minSelection = px
	}
}

// WithMaxPixels caps the pixel buffer. Viewports larger than this fail
// with ErrBufferTooLarge instead of allocating.
func WithMaxPixels(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxPixels = n
		}
	}
}

// WithFieldCache keeps up to n recently shown fields. An invalidated field
// whose window, tint and size match a kept one is restored by copying
// instead of being evaluated again. Zero disables the cache.
func WithFieldCache(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.fieldCache = n
		}
	}
}

// WithBusyHook registers fn to be called with true before a recompute starts
// and false after it finishes, on the goroutine calling Update. Drivers use
// it to show a wait cursor. fn runs with the engine locked and must not call
// back into it.
func WithBusyHook(fn func(busy bool)) Option {
	return func(o *options) {
		o.busyHook = fn
	}
}
