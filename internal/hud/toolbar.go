// Package hud draws the viewer's toolbar, tint palette, selection outline
// and status line into the frame image, and hit-tests clicks on them.
package hud

import (
	"image"
	"image/color"

	"github.com/gogpu/mandelview"
)

const (
	// ToolbarHeight is the height of the strip above the field. The field's
	// viewport starts at this Y.
	ToolbarHeight = 24

	buttonPadX  = 8
	buttonGap   = 4
	buttonTop   = 3
	buttonH     = 18
	baselineOff = 13
	swatchSize  = 12
)

// CommandKind says what a click on the HUD asks the engine to do.
type CommandKind int

const (
	// CommandNone means the click was absorbed without effect on the field.
	CommandNone CommandKind = iota
	// CommandPreset applies Command.Preset.
	CommandPreset
	// CommandTint applies Command.Tint.
	CommandTint
)

// Command is the result of a HUD click.
type Command struct {
	Kind   CommandKind
	Preset mandelview.Preset
	Tint   mandelview.Tint
}

// buttonColors are the button faces, matched to preset names.
var buttonColors = map[string]color.RGBA{
	"Reset": {R: 128, G: 128, B: 128, A: 255},
	"Red":   {R: 255, A: 255},
	"Green": {G: 128, A: 255},
	"Blue":  {B: 204, A: 255},
}

type button struct {
	rect   image.Rectangle
	label  string
	face   color.RGBA
	preset mandelview.Preset
}

// Toolbar is the preset strip plus the Tint button and its palette popup.
type Toolbar struct {
	buttons []button
	tint    image.Rectangle
	palette *Palette
}

// NewToolbar lays out one button per preset followed by the Tint button.
func NewToolbar() *Toolbar {
	tb := &Toolbar{}
	x := buttonGap
	for _, p := range mandelview.Presets {
		w := textWidth(p.Name) + 2*buttonPadX
		face, ok := buttonColors[p.Name]
		if !ok {
			face = p.Tint.Color()
		}
		tb.buttons = append(tb.buttons, button{
			rect:   image.Rect(x, buttonTop, x+w, buttonTop+buttonH),
			label:  p.Name,
			face:   face,
			preset: p,
		})
		x += w + buttonGap
	}
	x += buttonGap
	tb.tint = image.Rect(x, buttonTop, x+swatchSize+buttonGap+textWidth("Tint")+buttonPadX, buttonTop+buttonH)
	tb.palette = newPalette(image.Pt(tb.tint.Min.X, ToolbarHeight+2))
	return tb
}

// Height returns the height reserved above the field.
func (tb *Toolbar) Height() int {
	return ToolbarHeight
}

// OverlayOpen reports whether the palette popup is showing. While it is,
// pointer input belongs to the popup.
func (tb *Toolbar) OverlayOpen() bool {
	return tb.palette.open
}

// CloseOverlay hides the palette and reports whether it was open.
func (tb *Toolbar) CloseOverlay() bool {
	was := tb.palette.open
	tb.palette.open = false
	return was
}

// Click hit-tests a primary-button press at p. consumed is false when the
// press belongs to the field.
func (tb *Toolbar) Click(p image.Point) (cmd Command, consumed bool) {
	if tb.palette.open {
		if t, ok := tb.palette.pick(p); ok {
			tb.palette.open = false
			return Command{Kind: CommandTint, Tint: t}, true
		}
		if !p.In(tb.palette.bounds()) {
			// A click outside a popup dismisses it and goes nowhere else.
			tb.palette.open = false
		}
		return Command{}, true
	}

	for _, b := range tb.buttons {
		if p.In(b.rect) {
			return Command{Kind: CommandPreset, Preset: b.preset}, true
		}
	}
	if p.In(tb.tint) {
		tb.palette.open = true
		return Command{}, true
	}
	return Command{}, p.Y < ToolbarHeight
}

// Draw paints the toolbar, the status text right of the buttons, and the
// palette when open. current is the engine's tint, shown on the Tint button.
func (tb *Toolbar) Draw(dst *image.RGBA, current mandelview.Tint, status string) {
	w := dst.Rect.Dx()
	fillRect(dst, image.Rect(0, 0, w, ToolbarHeight), Background)

	for _, b := range tb.buttons {
		fillRect(dst, b.rect, b.face)
		drawText(dst, b.rect.Min.X+buttonPadX, b.rect.Min.Y+baselineOff, b.label, contrast(b.face))
	}

	sw := image.Rect(tb.tint.Min.X, tb.tint.Min.Y+(buttonH-swatchSize)/2,
		tb.tint.Min.X+swatchSize, tb.tint.Min.Y+(buttonH-swatchSize)/2+swatchSize)
	fillRect(dst, sw, current.Color())
	strokeRect(dst, sw, textColor)
	drawText(dst, sw.Max.X+buttonGap, tb.tint.Min.Y+baselineOff, "Tint", textColor)

	if status != "" {
		x := tb.tint.Max.X + 4*buttonGap
		if x < w {
			drawText(dst, x, buttonTop+baselineOff, status, dimTextColor)
		}
	}

	if tb.palette.open {
		tb.palette.draw(dst, current)
	}
}

var (
	textColor    = color.RGBA{R: 230, G: 230, B: 230, A: 255}
	dimTextColor = color.RGBA{R: 160, G: 160, B: 160, A: 255}
)
