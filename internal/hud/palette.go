package hud

import (
	"image"
	"image/color"

	"github.com/gogpu/mandelview"
)

const (
	paletteCols   = 4
	paletteSwatch = 20
	paletteGap    = 4
	palettePad    = 6
)

// paletteTints are offered by the Tint popup.
var paletteTints = []mandelview.Tint{
	{R: 1, G: 1, B: 1},
	{R: 1, G: .1, B: 0},
	{R: 0, G: 1, B: 0},
	{R: 0, G: 0, B: 1},
	{R: 1, G: 1, B: 0},
	{R: 0, G: 1, B: 1},
	{R: 1, G: 0, B: 1},
	{R: 1, G: .6, B: .2},
}

// Palette is the modal tint picker opened from the toolbar.
type Palette struct {
	origin image.Point
	open   bool
}

func newPalette(origin image.Point) *Palette {
	return &Palette{origin: origin}
}

func (p *Palette) rows() int {
	return (len(paletteTints) + paletteCols - 1) / paletteCols
}

func (p *Palette) bounds() image.Rectangle {
	w := 2*palettePad + paletteCols*paletteSwatch + (paletteCols-1)*paletteGap
	h := 2*palettePad + p.rows()*paletteSwatch + (p.rows()-1)*paletteGap
	return image.Rectangle{Min: p.origin, Max: p.origin.Add(image.Pt(w, h))}
}

func (p *Palette) swatch(i int) image.Rectangle {
	col, row := i%paletteCols, i/paletteCols
	tl := p.origin.Add(image.Pt(
		palettePad+col*(paletteSwatch+paletteGap),
		palettePad+row*(paletteSwatch+paletteGap),
	))
	return image.Rectangle{Min: tl, Max: tl.Add(image.Pt(paletteSwatch, paletteSwatch))}
}

// pick returns the tint under pt, if any.
func (p *Palette) pick(pt image.Point) (mandelview.Tint, bool) {
	for i, t := range paletteTints {
		if pt.In(p.swatch(i)) {
			return t, true
		}
	}
	return mandelview.Tint{}, false
}

func (p *Palette) draw(dst *image.RGBA, current mandelview.Tint) {
	b := p.bounds()
	fillRect(dst, b, color.RGBA{R: 0x2d, G: 0x2d, B: 0x30, A: 0xff})
	strokeRect(dst, b, dimTextColor)
	for i, t := range paletteTints {
		r := p.swatch(i)
		fillRect(dst, r, t.Color())
		if t == current {
			strokeRect(dst, r.Inset(-2), textColor)
		}
	}
}
