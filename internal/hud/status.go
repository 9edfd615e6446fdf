package hud

import (
	"github.com/gogpu/mandelview"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// StatusLine summarises the engine state for the toolbar.
func StatusLine(st mandelview.Stats) string {
	re, im := st.Window.Span()
	return printer.Sprintf("zoom %.1fx  re %.6g (+%.3g)  im %.6g (+%.3g)  %d ms",
		st.Magnification,
		real(st.Window.From), re,
		imag(st.Window.From), im,
		st.LastRender.Milliseconds())
}
