package mandelview

import (
	"errors"
	"fmt"
)

// MinSelection is the size in pixels a drag must exceed on both axes to
// commit a zoom.
const MinSelection = 10

var (
	// ErrNoSelection is returned when a zoom is requested without both corners placed.
	ErrNoSelection = errors.New("mandelview: no selection")

	// ErrSelectionTooSmall is returned when a drag is too small to commit a zoom.
	ErrSelectionTooSmall = errors.New("mandelview: selection too small")

	// ErrEmptyViewport is returned when the viewport has no area.
	ErrEmptyViewport = errors.New("mandelview: empty viewport")
)

// SelectionRect is the screen-space rectangle of a mouse drag.
// Both corners start unset.
type SelectionRect struct {
	TopLeft, BottomRight Point
}

// NewSelection returns an unset selection.
func NewSelection() SelectionRect {
	return SelectionRect{TopLeft: unset, BottomRight: unset}
}

// IsSet reports whether both corners have been placed.
func (s SelectionRect) IsSet() bool {
	return s.TopLeft.IsSet() && s.BottomRight.IsSet()
}

// Normalize swaps components independently so that TopLeft <= BottomRight
// on each axis.
func (s SelectionRect) Normalize() SelectionRect {
	if s.TopLeft.X > s.BottomRight.X {
		s.TopLeft.X, s.BottomRight.X = s.BottomRight.X, s.TopLeft.X
	}
	if s.TopLeft.Y > s.BottomRight.Y {
		s.TopLeft.Y, s.BottomRight.Y = s.BottomRight.Y, s.TopLeft.Y
	}
	return s
}

// Width returns the horizontal extent; only meaningful after Normalize.
func (s SelectionRect) Width() float64 {
	return s.BottomRight.X - s.TopLeft.X
}

// Height returns the vertical extent; only meaningful after Normalize.
func (s SelectionRect) Height() float64 {
	return s.BottomRight.Y - s.TopLeft.Y
}

// Viewport is the on-screen rectangle the field is drawn into.
// X and Y are the screen position of the top-left pixel.
type Viewport struct {
	X, Y          int
	Width, Height int
}

// Empty reports whether the viewport has no pixels.
func (vp Viewport) Empty() bool {
	return vp.Width <= 0 || vp.Height <= 0
}

// SameSize reports whether both viewports have identical dimensions.
func (vp Viewport) SameSize(o Viewport) bool {
	return vp.Width == o.Width && vp.Height == o.Height
}

// Contains reports whether p lies in the plot area. The top edge is
// exclusive: the row at Y belongs to whatever sits above the plot.
func (vp Viewport) Contains(p Point) bool {
	return p.X >= float64(vp.X) && p.X < float64(vp.X+vp.Width) &&
		p.Y > float64(vp.Y) && p.Y < float64(vp.Y+vp.Height)
}

// ZoomWindow maps a finished selection onto the complex plane and returns
// the window it covers. The selection must exceed minSize pixels on both axes.
func ZoomWindow(w ComplexWindow, vp Viewport, sel SelectionRect, minSize float64) (ComplexWindow, error) {
	if vp.Empty() {
		return w, ErrEmptyViewport
	}
	if !sel.IsSet() {
		return w, ErrNoSelection
	}
	sel = sel.Normalize()
	selW, selH := sel.Width(), sel.Height()
	if !(selW > minSize) || !(selH > minSize) {
		return w, fmt.Errorf("%w: %gx%g", ErrSelectionTooSmall, selW, selH)
	}

	spanRe, spanIm := w.Span()
	perPxRe := spanRe / float64(vp.Width)
	perPxIm := spanIm / float64(vp.Height)

	deltaRe := (sel.TopLeft.X - float64(vp.X)) * perPxRe
	deltaIm := (sel.TopLeft.Y - float64(vp.Y)) * perPxIm

	from := w.From + complex(deltaRe, deltaIm)
	zoomed := ComplexWindow{
		From: from,
		To:   from + complex(selW*perPxRe, selH*perPxIm),
	}
	if err := zoomed.Validate(); err != nil {
		return w, err
	}
	return zoomed, nil
}
