package main

import (
	"fmt"
	"image"
	"log"
	"path/filepath"

	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/mandelview"
	"github.com/gogpu/mandelview/integration/gpucanvas"
	"github.com/gogpu/mandelview/internal/hud"
)

// viewer is the per-window frame driver. Every callback runs on the gogpu
// main loop.
type viewer struct {
	eng     *mandelview.Engine
	toolbar *hud.Toolbar
	frame   *hud.Frame
	canvas  *gpucanvas.Canvas

	// scale converts the logical pointer coordinates gogpu reports into
	// framebuffer pixels, the space the frame and the field live in.
	scale float64

	outDir    string
	snapshots int
}

func newViewer(eng *mandelview.Engine, outDir string) *viewer {
	return &viewer{
		eng:     eng,
		toolbar: hud.NewToolbar(),
		frame:   hud.NewFrame(1, 1),
		scale:   1,
		outDir:  outDir,
	}
}

// viewport returns the field rectangle for a window of the given size.
func (v *viewer) viewport(w, h int) mandelview.Viewport {
	top := v.toolbar.Height()
	return mandelview.Viewport{X: 0, Y: top, Width: w, Height: h - top}
}

func (v *viewer) draw(dc *gogpu.Context, provider gpucontext.DeviceProvider) {
	w, h := dc.FramebufferSize()
	if w <= 0 || h <= 0 {
		return
	}
	if s := dc.ScaleFactor(); s > 0 {
		v.scale = s
	}

	if v.canvas == nil {
		if provider == nil {
			return
		}
		c, err := gpucanvas.New(provider, w, h)
		if err != nil {
			log.Fatalf("canvas: %v", err)
		}
		v.canvas = c
	}
	if err := v.canvas.Resize(w, h); err != nil {
		log.Printf("canvas resize: %v", err)
		return
	}
	v.frame.Resize(w, h)

	vp := v.viewport(w, h)
	// On allocation failure the engine logs and hands back the last field.
	buf, _ := v.eng.Update(vp)

	v.frame.Clear()
	v.frame.Compose(buf, vp)
	tint := v.eng.Tint()
	if sel, ok := v.eng.Selection(); ok {
		v.frame.Outline(sel, tint.Outline())
	}
	v.toolbar.Draw(v.frame.Image(), tint, hud.StatusLine(v.eng.Stats()))

	if err := v.canvas.Upload(v.frame.Image()); err != nil {
		log.Printf("canvas upload: %v", err)
		return
	}
	if err := v.canvas.RenderTo(dc.AsTextureDrawer()); err != nil {
		log.Printf("render: %v", err)
	}
}

func (v *viewer) apply(cmd hud.Command) {
	switch cmd.Kind {
	case hud.CommandPreset:
		v.eng.ApplyPreset(cmd.Preset)
	case hud.CommandTint:
		v.eng.SetTint(cmd.Tint)
	}
}

func (v *viewer) onPress(button gpucontext.MouseButton, x, y float64) {
	if button != gpucontext.MouseButtonLeft {
		return
	}
	p := v.device(x, y)
	cmd, consumed := v.toolbar.Click(image.Pt(int(p.X), int(p.Y)))
	v.apply(cmd)
	if consumed {
		return
	}
	v.eng.HandlePointer(v.event(mandelview.PointerDown, x, y))
}

func (v *viewer) onMove(x, y float64) {
	v.eng.HandlePointer(v.event(mandelview.PointerMove, x, y))
}

func (v *viewer) onRelease(button gpucontext.MouseButton, x, y float64) {
	if button != gpucontext.MouseButtonLeft {
		return
	}
	v.eng.HandlePointer(v.event(mandelview.PointerUp, x, y))
}

func (v *viewer) event(kind mandelview.PointerKind, x, y float64) mandelview.PointerEvent {
	return mandelview.PointerEvent{
		Kind:    kind,
		Pos:     v.device(x, y),
		Overlay: v.toolbar.OverlayOpen(),
	}
}

// device maps a logical pointer position onto framebuffer pixels.
func (v *viewer) device(x, y float64) mandelview.Point {
	return mandelview.Pt(x*v.scale, y*v.scale)
}

func (v *viewer) onKey(key gpucontext.Key, _ gpucontext.Modifiers) {
	switch key {
	case gpucontext.KeyR:
		v.eng.Reset()
	case gpucontext.KeyEscape:
		if !v.toolbar.CloseOverlay() {
			v.eng.CancelSelection()
		}
	case gpucontext.KeyS:
		v.snapshot()
	}
}

func (v *viewer) snapshot() {
	buf := v.eng.Buffer()
	if buf.Empty() {
		return
	}
	v.snapshots++
	path := filepath.Join(v.outDir, fmt.Sprintf("mandel-%03d.png", v.snapshots))
	if err := buf.SavePNG(path); err != nil {
		log.Printf("snapshot: %v", err)
		return
	}
	mandelview.Logger().Info("snapshot saved", "path", path, "window", v.eng.Window().String())
}

func (v *viewer) close() {
	if v.canvas != nil {
		_ = v.canvas.Close()
		v.canvas = nil
	}
}
