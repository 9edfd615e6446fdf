package mandelview

import (
	"errors"
	"sync"
	"testing"
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	e, err := NewEngine(append([]Option{WithWorkers(4)}, opts...)...)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	t.Cleanup(func() { _ = e.Close() })
	return e
}

// drag performs a complete press, move and release.
func drag(e *Engine, from, to Point) {
	e.HandlePointer(PointerEvent{Kind: PointerDown, Pos: from})
	e.HandlePointer(PointerEvent{Kind: PointerMove, Pos: to})
	e.HandlePointer(PointerEvent{Kind: PointerUp, Pos: to})
}

func mustUpdate(t *testing.T, e *Engine, vp Viewport) *PixelBuffer {
	t.Helper()
	buf, err := e.Update(vp)
	if err != nil {
		t.Fatalf("Update(%+v): %v", vp, err)
	}
	return buf
}

func TestNewEngineRejectsDegenerateWindow(t *testing.T) {
	_, err := NewEngine(WithWindow(ComplexWindow{From: 1, To: 1}))
	if !errors.Is(err, ErrDegenerateWindow) {
		t.Errorf("err = %v, want ErrDegenerateWindow", err)
	}
}

func TestEngineUpdateIsIdempotent(t *testing.T) {
	e := newTestEngine(t)
	vp := Viewport{Width: 40, Height: 30}

	a := mustUpdate(t, e, vp)
	b := mustUpdate(t, e, vp)
	if a != b {
		t.Error("second Update returned a different buffer")
	}
	if got := e.Stats().Renders; got != 1 {
		t.Errorf("Renders = %d, want 1", got)
	}

	// Moving the viewport without resizing it keeps the field.
	mustUpdate(t, e, Viewport{X: 5, Y: 7, Width: 40, Height: 30})
	if got := e.Stats().Renders; got != 1 {
		t.Errorf("Renders after move = %d, want 1", got)
	}

	buf := mustUpdate(t, e, Viewport{Width: 41, Height: 30})
	if buf.Width() != 41 || buf.Height() != 30 {
		t.Errorf("buffer = %dx%d, want 41x30", buf.Width(), buf.Height())
	}
	if got := e.Stats().Renders; got != 2 {
		t.Errorf("Renders after resize = %d, want 2", got)
	}
}

func TestEngineMatchesSerial(t *testing.T) {
	zoomed := ComplexWindow{From: -0.8 + 0.05i, To: -0.7 + 0.15i}
	for _, w := range []ComplexWindow{DefaultWindow, zoomed} {
		for _, workers := range []int{1, 2, 3, 8} {
			for _, vp := range []Viewport{{Width: 64, Height: 64}, {Width: 67, Height: 43}} {
				e := newTestEngine(t, WithWorkers(workers), WithWindow(w))
				got := mustUpdate(t, e, vp)
				want, err := RenderSerial(vp, w, DefaultTint)
				if err != nil {
					t.Fatal(err)
				}
				if !got.Equal(want) {
					t.Errorf("workers=%d %dx%d %v: parallel field differs from serial",
						workers, vp.Width, vp.Height, w)
				}
			}
		}
	}
}

func TestRenderParallelMatchesSerial(t *testing.T) {
	vp := Viewport{Width: 90, Height: 70}
	tint := Tint{R: 1, G: .1}
	want, err := RenderSerial(vp, DefaultWindow, tint)
	if err != nil {
		t.Fatal(err)
	}
	got, err := RenderParallel(vp, DefaultWindow, tint, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(want) {
		t.Error("RenderParallel differs from RenderSerial")
	}
}

func TestRenderRejectsDegenerateWindow(t *testing.T) {
	vp := Viewport{Width: 4, Height: 4}
	bad := ComplexWindow{From: 1, To: 0}
	if _, err := RenderSerial(vp, bad, DefaultTint); !errors.Is(err, ErrDegenerateWindow) {
		t.Errorf("RenderSerial err = %v", err)
	}
	if _, err := RenderParallel(vp, bad, DefaultTint, 2); !errors.Is(err, ErrDegenerateWindow) {
		t.Errorf("RenderParallel err = %v", err)
	}
}

func TestEngineFieldCorners(t *testing.T) {
	e := newTestEngine(t)
	buf := mustUpdate(t, e, Viewport{Width: 100, Height: 80})
	// Pixel (0,0) maps to From, which lies outside the set.
	want := DefaultTint.Shade(Escape(DefaultWindow.From))
	if got := buf.RGBAAt(0, 0); got != want {
		t.Errorf("pixel (0,0) = %v, want %v", got, want)
	}
	// The last row is computed too.
	c := DefaultWindow.At(50, 79, 100, 80)
	if got, want := buf.RGBAAt(50, 79), DefaultTint.Shade(Escape(c)); got != want {
		t.Errorf("pixel (50,79) = %v, want %v", got, want)
	}
}

func TestRenderUsesWindowMapping(t *testing.T) {
	w := ComplexWindow{From: -0.75 - 0.2i, To: -0.6 + 0.1i}
	buf, err := RenderSerial(Viewport{Width: 13, Height: 7}, w, DefaultTint)
	if err != nil {
		t.Fatal(err)
	}
	for y := range 7 {
		for x := range 13 {
			want := DefaultTint.Shade(Escape(w.At(x, y, 13, 7)))
			if got := buf.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestEngineEmptyViewport(t *testing.T) {
	e := newTestEngine(t)
	vp := Viewport{Width: 32, Height: 32}
	mustUpdate(t, e, vp)

	for _, empty := range []Viewport{{Width: 32}, {Height: 32}, {Width: -3, Height: 5}} {
		buf := mustUpdate(t, e, empty)
		if !buf.Empty() {
			t.Errorf("Update(%+v) returned %dx%d buffer", empty, buf.Width(), buf.Height())
		}
	}
	if got := e.Stats().Renders; got != 1 {
		t.Errorf("Renders after collapse = %d, want 1", got)
	}

	// Restoring the size reuses the computed field.
	buf := mustUpdate(t, e, vp)
	if buf.Width() != 32 || e.Stats().Renders != 1 {
		t.Errorf("restore: %dx%d, renders %d", buf.Width(), buf.Height(), e.Stats().Renders)
	}
}

func TestEngineZoom(t *testing.T) {
	e := newTestEngine(t, WithWindow(ComplexWindow{From: -2 - 1i, To: 1 + 1i}))
	vp := Viewport{Width: 800, Height: 600}
	mustUpdate(t, e, vp)

	drag(e, Pt(400, 300), Pt(500, 350))

	w := e.Window()
	if !nearC(w.From, -0.5) {
		t.Errorf("From = %v, want -0.5+0i", w.From)
	}
	if re, im := w.Span(); !near(re, 0.375) || !near(im, 1.0/6) {
		t.Errorf("Span = (%v, %v)", re, im)
	}
	if e.Capturing() {
		t.Error("still capturing after release")
	}
	if _, ok := e.Selection(); ok {
		t.Error("selection survived the release")
	}

	mustUpdate(t, e, vp)
	st := e.Stats()
	if st.Renders != 2 {
		t.Errorf("Renders = %d, want 2", st.Renders)
	}
	if !near(st.Magnification, 8) {
		t.Errorf("Magnification = %v, want 8", st.Magnification)
	}
}

func TestEngineDragPastWindowEdge(t *testing.T) {
	tests := []struct {
		name string
		to   Point
		want SelectionRect
	}{
		{"left", Pt(-5, 200), SelectionRect{TopLeft: Pt(-5, 200), BottomRight: Pt(400, 300)}},
		{"top", Pt(600, -12), SelectionRect{TopLeft: Pt(400, -12), BottomRight: Pt(600, 300)}},
		{"top left", Pt(-1, -1), SelectionRect{TopLeft: Pt(-1, -1), BottomRight: Pt(400, 300)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)
			vp := Viewport{Y: 24, Width: 800, Height: 600}
			mustUpdate(t, e, vp)

			e.HandlePointer(PointerEvent{Kind: PointerDown, Pos: Pt(400, 300)})
			e.HandlePointer(PointerEvent{Kind: PointerMove, Pos: tt.to})
			sel, ok := e.Selection()
			if !ok {
				t.Fatal("outline hidden while the pointer is outside the window")
			}
			if sel != tt.want {
				t.Errorf("Selection() = %+v, want %+v", sel, tt.want)
			}

			e.HandlePointer(PointerEvent{Kind: PointerUp, Pos: tt.to})
			want, err := ZoomWindow(DefaultWindow, vp, tt.want, MinSelection)
			if err != nil {
				t.Fatalf("ZoomWindow: %v", err)
			}
			if got := e.Window(); got == DefaultWindow || !nearC(got.From, want.From) || !nearC(got.To, want.To) {
				t.Errorf("window = %v, want %v", got, want)
			}
		})
	}
}

func TestEngineSmallDragsDoNotZoom(t *testing.T) {
	tests := []struct {
		name     string
		from, to Point
		move     bool
	}{
		{"click without move", Pt(100, 100), Pt(100, 100), false},
		{"ten pixels", Pt(100, 100), Pt(110, 200), true},
		{"thin", Pt(100, 100), Pt(300, 104), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEngine(t)
			vp := Viewport{Width: 400, Height: 300}
			mustUpdate(t, e, vp)

			e.HandlePointer(PointerEvent{Kind: PointerDown, Pos: tt.from})
			if tt.move {
				e.HandlePointer(PointerEvent{Kind: PointerMove, Pos: tt.to})
			}
			if !e.HandlePointer(PointerEvent{Kind: PointerUp, Pos: tt.to}) {
				t.Fatal("release not consumed")
			}

			if w := e.Window(); w != DefaultWindow {
				t.Errorf("window changed to %v", w)
			}
			mustUpdate(t, e, vp)
			if got := e.Stats().Renders; got != 1 {
				t.Errorf("Renders = %d, want 1", got)
			}
		})
	}
}

func TestEngineResetRestoresStartupWindow(t *testing.T) {
	start := ComplexWindow{From: -2 - 1.25i, To: 0.75 + 1.25i}
	e := newTestEngine(t, WithWindow(start))
	vp := Viewport{Width: 640, Height: 480}
	mustUpdate(t, e, vp)

	drag(e, Pt(100, 100), Pt(400, 300))
	drag(e, Pt(20, 20), Pt(300, 200))
	drag(e, Pt(600, 400), Pt(200, 150))
	if e.Window() == start {
		t.Fatal("drags did not zoom")
	}

	e.Reset()
	if got := e.Window(); got != start {
		t.Errorf("Window() after Reset = %v, want %v", got, start)
	}
	before := e.Stats().Renders
	mustUpdate(t, e, vp)
	if got := e.Stats().Renders; got != before+1 {
		t.Errorf("Reset did not invalidate: renders %d -> %d", before, got)
	}
}

func TestEngineOverlaySuppressesPointer(t *testing.T) {
	e := newTestEngine(t)
	mustUpdate(t, e, Viewport{Width: 400, Height: 300})

	if e.HandlePointer(PointerEvent{Kind: PointerDown, Pos: Pt(50, 50), Overlay: true}) {
		t.Error("down consumed under an overlay")
	}
	if e.Capturing() {
		t.Fatal("capture started under an overlay")
	}

	e.HandlePointer(PointerEvent{Kind: PointerDown, Pos: Pt(50, 50)})
	e.HandlePointer(PointerEvent{Kind: PointerMove, Pos: Pt(200, 200)})
	if e.HandlePointer(PointerEvent{Kind: PointerUp, Pos: Pt(200, 200), Overlay: true}) {
		t.Error("up consumed under an overlay")
	}
	if !e.Capturing() {
		t.Error("overlay event ended the drag")
	}
	if w := e.Window(); w != DefaultWindow {
		t.Errorf("overlay event zoomed to %v", w)
	}
}

func TestEngineDownOutsidePlot(t *testing.T) {
	e := newTestEngine(t)
	mustUpdate(t, e, Viewport{Y: 24, Width: 400, Height: 300})

	for _, p := range []Point{Pt(10, 10), Pt(10, 24), Pt(500, 100)} {
		if e.HandlePointer(PointerEvent{Kind: PointerDown, Pos: p}) {
			t.Errorf("down at %v consumed", p)
		}
	}
	if e.HandlePointer(PointerEvent{Kind: PointerMove, Pos: Pt(50, 50)}) {
		t.Error("move without capture consumed")
	}
	if e.HandlePointer(PointerEvent{Kind: PointerUp, Pos: Pt(50, 50)}) {
		t.Error("up without capture consumed")
	}
}

func TestEngineSelectionNormalized(t *testing.T) {
	e := newTestEngine(t)
	mustUpdate(t, e, Viewport{Width: 400, Height: 300})

	e.HandlePointer(PointerEvent{Kind: PointerDown, Pos: Pt(150, 120)})
	if _, ok := e.Selection(); ok {
		t.Error("selection reported before the first move")
	}
	if e.HandlePointer(PointerEvent{Kind: PointerDown, Pos: Pt(10, 10)}) {
		t.Error("second down consumed while dragging")
	}
	e.HandlePointer(PointerEvent{Kind: PointerMove, Pos: Pt(40, 60)})

	sel, ok := e.Selection()
	if !ok {
		t.Fatal("no selection while dragging")
	}
	want := SelectionRect{TopLeft: Pt(40, 60), BottomRight: Pt(150, 120)}
	if sel != want {
		t.Errorf("Selection() = %+v, want %+v", sel, want)
	}

	e.CancelSelection()
	if e.Capturing() {
		t.Error("CancelSelection left capture on")
	}
	if e.HandlePointer(PointerEvent{Kind: PointerUp, Pos: Pt(40, 60)}) {
		t.Error("release after cancel consumed")
	}
	if w := e.Window(); w != DefaultWindow {
		t.Errorf("cancelled drag zoomed to %v", w)
	}
}

func TestEngineTintInvalidates(t *testing.T) {
	e := newTestEngine(t)
	vp := Viewport{Width: 48, Height: 32}
	mustUpdate(t, e, vp)

	red := Tint{R: 1, G: .1}
	e.SetTint(red)
	got := mustUpdate(t, e, vp)
	want, _ := RenderSerial(vp, DefaultWindow, red)
	if !got.Equal(want) {
		t.Error("field not recoloured after SetTint")
	}

	// Re-applying the same tint still recomputes.
	e.SetTint(red)
	mustUpdate(t, e, vp)
	if got := e.Stats().Renders; got != 3 {
		t.Errorf("Renders = %d, want 3", got)
	}

	e.SetTint(Tint{R: 2, G: -1})
	if got := e.Tint(); got != (Tint{R: 1}) {
		t.Errorf("Tint() = %v, want clamped (1, 0, 0)", got)
	}
}

func TestEngineApplyPreset(t *testing.T) {
	e := newTestEngine(t)
	vp := Viewport{Width: 400, Height: 300}
	mustUpdate(t, e, vp)
	drag(e, Pt(50, 50), Pt(250, 200))
	zoomed := e.Window()

	blue, _ := LookupPreset("Blue")
	e.ApplyPreset(blue)
	if e.Window() != zoomed {
		t.Error("colour preset changed the window")
	}
	if e.Tint() != blue.Tint {
		t.Errorf("Tint() = %v, want %v", e.Tint(), blue.Tint)
	}

	reset, _ := LookupPreset("Reset")
	e.ApplyPreset(reset)
	if e.Window() != DefaultWindow || e.Tint() != DefaultTint {
		t.Errorf("after Reset preset: %v %v", e.Window(), e.Tint())
	}
}

func TestEngineBufferTooLarge(t *testing.T) {
	e := newTestEngine(t, WithMaxPixels(100))
	small := Viewport{Width: 8, Height: 8}
	before := mustUpdate(t, e, small).ToImage()

	buf, err := e.Update(Viewport{Width: 20, Height: 20})
	if !errors.Is(err, ErrBufferTooLarge) {
		t.Fatalf("err = %v, want ErrBufferTooLarge", err)
	}
	if buf.Width() != 8 || buf.Height() != 8 {
		t.Fatalf("returned %dx%d, want the previous 8x8 field", buf.Width(), buf.Height())
	}
	if string(buf.Data()) != string(before.Pix) {
		t.Error("failed resize changed the previous pixels")
	}
	want, _ := RenderSerial(small, DefaultWindow, DefaultTint)
	if !buf.Equal(want) {
		t.Error("returned field differs from the 8x8 render")
	}

	// Retrying the same size fails again without panicking.
	if _, err := e.Update(Viewport{Width: 20, Height: 20}); !errors.Is(err, ErrBufferTooLarge) {
		t.Errorf("retry err = %v", err)
	}

	buf = mustUpdate(t, e, small)
	if buf.Width() != 8 {
		t.Errorf("width = %d after recovery", buf.Width())
	}
}

func TestEngineBusyHook(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []bool
	)
	e := newTestEngine(t, WithBusyHook(func(busy bool) {
		mu.Lock()
		calls = append(calls, busy)
		mu.Unlock()
	}))
	mustUpdate(t, e, Viewport{Width: 16, Height: 16})
	mustUpdate(t, e, Viewport{Width: 16, Height: 16})

	mu.Lock()
	defer mu.Unlock()
	if len(calls) != 2 || !calls[0] || calls[1] {
		t.Errorf("busy hook calls = %v, want [true false]", calls)
	}
	if e.Busy() {
		t.Error("Busy() after recompute")
	}
}

func TestEngineClose(t *testing.T) {
	e, err := NewEngine()
	if err != nil {
		t.Fatal(err)
	}
	mustUpdate(t, e, Viewport{Width: 8, Height: 8})
	if err := e.Close(); err != nil {
		t.Fatal(err)
	}
	if err := e.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
	if _, err := e.Update(Viewport{Width: 8, Height: 8}); !errors.Is(err, ErrEngineClosed) {
		t.Errorf("Update after Close err = %v", err)
	}
	if e.HandlePointer(PointerEvent{Kind: PointerDown, Pos: Pt(2, 2)}) {
		t.Error("HandlePointer consumed after Close")
	}
}

func TestEngineConcurrentReaders(t *testing.T) {
	e := newTestEngine(t)
	vp := Viewport{Width: 32, Height: 24}
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 20 {
				_ = e.Stats()
				_, _ = e.Selection()
				_ = e.Busy()
			}
		}()
	}
	for range 5 {
		mustUpdate(t, e, vp)
		e.Invalidate()
	}
	wg.Wait()
	if got := e.Stats().Renders; got != 5 {
		t.Errorf("Renders = %d, want 5", got)
	}
}

func TestPointerKindString(t *testing.T) {
	for k, want := range map[PointerKind]string{PointerDown: "down", PointerMove: "move", PointerUp: "up", 9: "PointerKind(9)"} {
		if got := k.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", k, got, want)
		}
	}
}

func BenchmarkEngineRecompute(b *testing.B) {
	e, err := NewEngine()
	if err != nil {
		b.Fatal(err)
	}
	defer e.Close()
	vp := Viewport{Width: 320, Height: 200}
	b.ReportAllocs()
	for b.Loop() {
		e.Invalidate()
		if _, err := e.Update(vp); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRenderSerial(b *testing.B) {
	vp := Viewport{Width: 320, Height: 200}
	for b.Loop() {
		if _, err := RenderSerial(vp, DefaultWindow, DefaultTint); err != nil {
			b.Fatal(err)
		}
	}
}

func TestEngineFieldCache(t *testing.T) {
	e := newTestEngine(t, WithFieldCache(4))
	vp := Viewport{Width: 64, Height: 48}
	home := mustUpdate(t, e, vp).ToImage()

	drag(e, Pt(5, 5), Pt(40, 30))
	mustUpdate(t, e, vp)
	e.Reset()
	buf := mustUpdate(t, e, vp)

	st := e.Stats()
	if st.Renders != 3 || st.CacheHits != 1 {
		t.Errorf("Renders = %d, CacheHits = %d; want 3, 1", st.Renders, st.CacheHits)
	}
	want, _ := RenderSerial(vp, DefaultWindow, DefaultTint)
	if !buf.Equal(want) {
		t.Error("cached field differs from a fresh render")
	}
	if got := buf.ToImage(); string(got.Pix) != string(home.Pix) {
		t.Error("restored field differs from the first one")
	}

	// A different size is a different field.
	mustUpdate(t, e, Viewport{Width: 32, Height: 48})
	st = e.Stats()
	if st.CacheHits != 1 || st.CachedFields != 3 {
		t.Errorf("after resize: CacheHits = %d, CachedFields = %d; want 1, 3", st.CacheHits, st.CachedFields)
	}

	if err := e.Close(); err != nil {
		t.Fatal(err)
	}
	if got := e.Stats().CachedFields; got != 0 {
		t.Errorf("CachedFields after Close = %d", got)
	}
}

func TestEngineFieldCacheDisabled(t *testing.T) {
	e := newTestEngine(t)
	vp := Viewport{Width: 16, Height: 16}
	mustUpdate(t, e, vp)
	e.Invalidate()
	mustUpdate(t, e, vp)
	if got := e.Stats().CacheHits; got != 0 {
		t.Errorf("CacheHits = %d without a cache", got)
	}
}
