package mandelview

import (
	"errors"
	"fmt"
	"math"
)

// ErrDegenerateWindow is returned when a window would have zero, negative or
// non-finite extent on either axis.
var ErrDegenerateWindow = errors.New("mandelview: degenerate complex window")

// ComplexWindow is the rectangle of the complex plane mapped onto the screen.
// From holds the minimum real and imaginary parts and maps to the top-left of
// the viewport; To holds the maxima and maps to the bottom-right.
type ComplexWindow struct {
	From, To complex128
}

// DefaultWindow frames the whole set.
var DefaultWindow = ComplexWindow{
	From: complex(-1.9, -1),
	To:   complex(0.6, 1),
}

// Span returns the real and imaginary extents of the window.
func (w ComplexWindow) Span() (re, im float64) {
	return real(w.To) - real(w.From), imag(w.To) - imag(w.From)
}

// Validate reports ErrDegenerateWindow unless both spans are positive and finite.
func (w ComplexWindow) Validate() error {
	re, im := w.Span()
	if !(re > 0) || !(im > 0) || math.IsInf(re, 0) || math.IsInf(im, 0) {
		return fmt.Errorf("%w: from=%v to=%v", ErrDegenerateWindow, w.From, w.To)
	}
	return nil
}

// At maps the pixel at column col and row row of a width x height grid onto
// the window. Column 0 maps to real(From); column width maps to real(To).
func (w ComplexWindow) At(col, row, width, height int) complex128 {
	re, im := w.Span()
	return complex(
		re*float64(col)/float64(width)+real(w.From),
		im*float64(row)/float64(height)+imag(w.From),
	)
}

// Magnification returns how many times smaller w is than ref along the real axis.
func (w ComplexWindow) Magnification(ref ComplexWindow) float64 {
	re, _ := w.Span()
	refRe, _ := ref.Span()
	if re <= 0 {
		return 0
	}
	return refRe / re
}

func (w ComplexWindow) String() string {
	return fmt.Sprintf("[%g%+gi .. %g%+gi]", real(w.From), imag(w.From), real(w.To), imag(w.To))
}
