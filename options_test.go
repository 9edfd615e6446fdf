package mandelview

import (
	"math"
	"testing"
)

// TestDefaultOptions tests the values NewEngine starts from.
func TestDefaultOptions(t *testing.T) {
	o := defaultOptions()
	if o.window != DefaultWindow {
		t.Errorf("window = %v, want DefaultWindow", o.window)
	}
	if o.tint != DefaultTint {
		t.Errorf("tint = %v, want DefaultTint", o.tint)
	}
	if o.minSelection != MinSelection {
		t.Errorf("minSelection = %v, want %d", o.minSelection, MinSelection)
	}
	if o.maxPixels != math.MaxInt {
		t.Errorf("maxPixels = %d, want unlimited", o.maxPixels)
	}
	if o.busyHook != nil {
		t.Error("busyHook set by default")
	}
}

func TestOptionsApply(t *testing.T) {
	w := ComplexWindow{From: -1 - 1i, To: 1 + 1i}
	o := defaultOptions()
	for _, opt := range []Option{
		WithWorkers(3),
		WithWindow(w),
		WithTint(Tint{R: 4, G: .5, B: -2}),
		WithMinSelection(25),
		WithMaxPixels(1 << 20),
		WithBusyHook(func(bool) {}),
	} {
		opt(&o)
	}
	if o.workers != 3 || o.window != w || o.minSelection != 25 || o.maxPixels != 1<<20 {
		t.Errorf("options = %+v", o)
	}
	if o.tint != (Tint{R: 1, G: .5, B: 0}) {
		t.Errorf("tint = %v, want clamped", o.tint)
	}
	if o.busyHook == nil {
		t.Error("busyHook not set")
	}
}

// TestWithMaxPixelsIgnoresNonPositive keeps zero meaning "no limit" for flags.
func TestWithMaxPixelsIgnoresNonPositive(t *testing.T) {
	o := defaultOptions()
	WithMaxPixels(0)(&o)
	WithMaxPixels(-5)(&o)
	if o.maxPixels != math.MaxInt {
		t.Errorf("maxPixels = %d, want unlimited", o.maxPixels)
	}
}

// TestWithMinSelection tests that a larger threshold rejects a drag the
// default would accept.
func TestWithMinSelection(t *testing.T) {
	e := newTestEngine(t, WithMinSelection(50))
	mustUpdate(t, e, Viewport{Width: 400, Height: 300})
	drag(e, Pt(10, 10), Pt(50, 50))
	if w := e.Window(); w != DefaultWindow {
		t.Errorf("40px drag zoomed with a 50px threshold: %v", w)
	}
	drag(e, Pt(10, 10), Pt(70, 70))
	if w := e.Window(); w == DefaultWindow {
		t.Error("60px drag did not zoom")
	}
}
