package mandelview

import (
	"fmt"
	"image/color"
	"strings"
)

// Tint scales the scalar escape value per channel to produce a colour.
// Each channel is in the range [0, 1].
type Tint struct {
	R, G, B float64
}

// Shade returns the opaque colour for escape value v.
func (t Tint) Shade(v uint8) color.RGBA {
	f := float64(v)
	return color.RGBA{
		R: uint8(clamp255(f * t.R)),
		G: uint8(clamp255(f * t.G)),
		B: uint8(clamp255(f * t.B)),
		A: 255,
	}
}

// Outline returns the inverse of the tint, used for the selection rectangle
// so it stays visible over the tinted field.
func (t Tint) Outline() color.RGBA {
	return color.RGBA{
		R: uint8(clamp255(255 - t.R*255)),
		G: uint8(clamp255(255 - t.G*255)),
		B: uint8(clamp255(255 - t.B*255)),
		A: 255,
	}
}

// Clamp returns t with every channel forced into [0, 1].
func (t Tint) Clamp() Tint {
	return Tint{R: clamp01(t.R), G: clamp01(t.G), B: clamp01(t.B)}
}

// Color returns the tint itself as an opaque colour, for swatches.
func (t Tint) Color() color.RGBA {
	c := t.Clamp()
	return color.RGBA{
		R: uint8(c.R * 255),
		G: uint8(c.G * 255),
		B: uint8(c.B * 255),
		A: 255,
	}
}

func (t Tint) String() string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", t.R, t.G, t.B)
}

// clamp255 restricts a value to [0, 255] range.
func clamp255(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 255 {
		return 255
	}
	return x
}

func clamp01(x float64) float64 {
	if x < 0 || x != x {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Preset is a named tint. The reset preset also restores the startup window.
type Preset struct {
	Name  string
	Tint  Tint
	Reset bool
}

// Presets mirrors the toolbar: Reset, Red, Green, Blue.
var Presets = []Preset{
	{Name: "Reset", Tint: Tint{R: 1, G: 1, B: 1}, Reset: true},
	{Name: "Red", Tint: Tint{R: 1, G: .1, B: 0}},
	{Name: "Green", Tint: Tint{R: 0, G: 1, B: 0}},
	{Name: "Blue", Tint: Tint{R: 0, G: 0, B: 1}},
}

// DefaultTint leaves the escape value as grey.
var DefaultTint = Tint{R: 1, G: 1, B: 1}

// LookupPreset finds a preset by name, ignoring case.
func LookupPreset(name string) (Preset, bool) {
	for _, p := range Presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}
