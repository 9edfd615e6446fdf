package mandelview

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/mandelview/internal/cache"
	"github.com/gogpu/mandelview/internal/parallel"
)

// ErrEngineClosed is returned by Update after Close.
var ErrEngineClosed = errors.New("mandelview: engine is closed")

// PointerKind is the edge a PointerEvent reports.
type PointerKind uint8

const (
	PointerDown PointerKind = iota
	PointerMove
	PointerUp
)

func (k PointerKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	default:
		return fmt.Sprintf("PointerKind(%d)", uint8(k))
	}
}

// PointerEvent is one primary-button mouse signal in screen coordinates.
// Overlay is true while a modal UI element (a popup) is open; such events
// are not consumed and leave the selection state as it was.
type PointerEvent struct {
	Kind    PointerKind
	Pos     Point
	Overlay bool
}

// Stats describes the engine state for status displays.
type Stats struct {
	Window        ComplexWindow
	Tint          Tint
	Magnification float64       // startup span / current span, real axis
	Renders       int           // completed recomputes, cached or not
	CacheHits     int           // recomputes restored from the field cache
	CachedFields  int           // fields held by the field cache
	LastRender    time.Duration // duration of the most recent recompute
	Width, Height int           // size of the current buffer
}

// fieldKey identifies a computed field for the field cache.
type fieldKey struct {
	window        ComplexWindow
	tint          Tint
	width, height int
}

// Engine owns the complex window, the pixel buffer and the selection state
// of one viewer. Construct it once and thread it through the frame loop.
//
// Update and HandlePointer are normally called from the frame goroutine.
// All methods are safe for concurrent use; a recompute holds the engine lock
// until every row has been written.
type Engine struct {
	mu     sync.Mutex
	opts   options
	pool   *parallel.WorkerPool
	fields *cache.Cache[fieldKey, []uint8] // nil unless WithFieldCache

	home   ComplexWindow
	window ComplexWindow
	tint   Tint

	buf      *PixelBuffer
	computed Viewport // viewport the buffer holds, meaningful while valid
	valid    bool
	failed   Viewport // last size that could not be allocated
	viewport Viewport // viewport of the latest Update

	sel       SelectionRect
	capturing bool

	busy       atomic.Bool
	renders    int
	lastRender time.Duration
	closed     bool
}

// NewEngine creates an engine showing the startup window (DefaultWindow
// unless WithWindow is given) and starts its worker pool.
func NewEngine(opts ...Option) (*Engine, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.window.Validate(); err != nil {
		return nil, fmt.Errorf("mandelview: startup window: %w", err)
	}

	e := &Engine{
		opts:   o,
		pool:   parallel.NewWorkerPool(o.workers),
		home:   o.window,
		window: o.window,
		tint:   o.tint,
		buf:    &PixelBuffer{},
		sel:    NewSelection(),
	}
	capacity := 0
	if o.fieldCache > 0 {
		e.fields = cache.New[fieldKey, []uint8](o.fieldCache)
		capacity = e.fields.Capacity()
	}
	Logger().Debug("engine created",
		"workers", e.pool.Workers(),
		"fieldCache", capacity,
		"window", e.window.String(),
		"tint", e.tint.String())
	return e, nil
}

// Update returns the pixel buffer for vp, recomputing it first when the
// viewport size differs from the buffer's or the buffer was invalidated by
// a zoom, reset or tint change. Identical consecutive calls recompute once.
//
// A viewport with no area yields an empty buffer and no recompute. If the
// buffer cannot be grown, the previous buffer is returned together with an
// error wrapping ErrBufferTooLarge.
func (e *Engine) Update(vp Viewport) (*PixelBuffer, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return e.buf, ErrEngineClosed
	}
	e.viewport = vp
	if vp.Empty() {
		return &PixelBuffer{}, nil
	}
	if e.valid && e.computed.SameSize(vp) {
		return e.buf, nil
	}

	// The resize must be complete before any row task starts.
	if err := e.buf.resize(vp.Width, vp.Height, e.opts.maxPixels); err != nil {
		if !e.failed.SameSize(vp) {
			Logger().Warn("pixel buffer allocation failed",
				"width", vp.Width, "height", vp.Height, "err", err)
		}
		e.failed = vp
		e.valid = false
		return e.buf, err
	}
	e.failed = Viewport{}
	e.recompute(vp)
	return e.buf, nil
}

func (e *Engine) recompute(vp Viewport) {
	f := newFrame(vp, e.window, e.tint)
	buf := e.buf
	key := fieldKey{window: e.window, tint: e.tint, width: vp.Width, height: vp.Height}

	e.setBusy(true)
	start := time.Now()
	cached := false
	if e.fields != nil {
		var pix []uint8
		if pix, cached = e.fields.Get(key); cached {
			copy(buf.data, pix)
		}
	}
	if !cached {
		e.pool.For(f.height, func(y int) { f.row(buf, y) })
		if e.fields != nil {
			e.fields.Set(key, append([]uint8(nil), buf.data...))
		}
	}
	e.lastRender = time.Since(start)
	e.setBusy(false)

	e.computed = vp
	e.valid = true
	e.renders++
	Logger().Debug("recompute",
		"width", vp.Width, "height", vp.Height,
		"window", e.window.String(),
		"cached", cached,
		"elapsed", e.lastRender)
}

func (e *Engine) setBusy(busy bool) {
	e.busy.Store(busy)
	if e.opts.busyHook != nil {
		e.opts.busyHook(busy)
	}
}

// Busy reports whether a recompute is in flight. Advisory only.
func (e *Engine) Busy() bool {
	return e.busy.Load()
}

// HandlePointer feeds one mouse signal into the selection state machine and
// reports whether it was consumed.
//
//	Idle     --down in plot area--> Dragging (capture on)
//	Dragging --move-->              Dragging (bottom-right follows)
//	Dragging --up-->                Idle     (zoom if large enough)
//
// Events with Overlay set are ignored.
func (e *Engine) HandlePointer(ev PointerEvent) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if ev.Overlay || e.closed {
		return false
	}

	switch ev.Kind {
	case PointerDown:
		if e.capturing || !e.viewport.Contains(ev.Pos) {
			return false
		}
		e.sel = SelectionRect{TopLeft: ev.Pos, BottomRight: unset}
		e.capturing = true
		Logger().Debug("selection started", "x", ev.Pos.X, "y", ev.Pos.Y)
		return true

	case PointerMove:
		if !e.capturing {
			return false
		}
		e.sel.BottomRight = ev.Pos
		return true

	case PointerUp:
		if !e.capturing {
			return false
		}
		e.capturing = false
		if e.sel.BottomRight.IsSet() {
			e.sel.BottomRight = ev.Pos
		}
		e.commit()
		e.sel = NewSelection()
		return true
	}
	return false
}

// commit turns the finished selection into a new window when it is large
// enough. The previous window is kept otherwise.
func (e *Engine) commit() {
	zoomed, err := ZoomWindow(e.window, e.viewport, e.sel, e.opts.minSelection)
	switch {
	case err == nil:
		e.window = zoomed
		e.valid = false
		Logger().Info("zoom",
			"window", zoomed.String(),
			"magnification", zoomed.Magnification(e.home))
	case errors.Is(err, ErrDegenerateWindow):
		Logger().Warn("zoom rejected", "err", err)
	default:
		Logger().Debug("selection discarded", "err", err)
	}
}

// Reset restores the startup window and clears any selection.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.window = e.home
	e.clearSelection()
	e.valid = false
	Logger().Info("reset", "window", e.window.String())
}

// SetTint replaces the tint and clears any selection. The next Update
// recomputes even if the tint is unchanged.
func (e *Engine) SetTint(t Tint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.tint = t.Clamp()
	e.clearSelection()
	e.valid = false
	Logger().Info("tint", "tint", e.tint.String())
}

// ApplyPreset applies a toolbar preset: its tint always, and the startup
// window too when it is a reset preset. The change is a single transition.
func (e *Engine) ApplyPreset(p Preset) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if p.Reset {
		e.window = e.home
	}
	e.tint = p.Tint.Clamp()
	e.clearSelection()
	e.valid = false
	Logger().Info("preset", "name", p.Name, "window", e.window.String(), "tint", e.tint.String())
}

// CancelSelection abandons an in-progress drag without zooming.
func (e *Engine) CancelSelection() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.clearSelection()
}

func (e *Engine) clearSelection() {
	e.sel = NewSelection()
	e.capturing = false
}

// Invalidate forces the next Update to recompute.
func (e *Engine) Invalidate() {
	e.mu.Lock()
	e.valid = false
	e.mu.Unlock()
}

// Window returns the current complex window.
func (e *Engine) Window() ComplexWindow {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.window
}

// Tint returns the current tint.
func (e *Engine) Tint() Tint {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tint
}

// Selection returns the current selection, normalized, and whether both
// corners are placed so that an outline can be drawn.
func (e *Engine) Selection() (SelectionRect, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.sel.IsSet() {
		return e.sel, false
	}
	return e.sel.Normalize(), true
}

// Capturing reports whether a drag is in progress.
func (e *Engine) Capturing() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.capturing
}

// Buffer returns the most recently computed buffer without recomputing.
func (e *Engine) Buffer() *PixelBuffer {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf
}

// Stats returns a snapshot of the engine state.
func (e *Engine) Stats() Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	st := Stats{
		Window:        e.window,
		Tint:          e.tint,
		Magnification: e.window.Magnification(e.home),
		Renders:       e.renders,
		LastRender:    e.lastRender,
		Width:         e.buf.width,
		Height:        e.buf.height,
	}
	if e.fields != nil {
		cs := e.fields.Stats()
		st.CacheHits = int(cs.Hits)
		st.CachedFields = cs.Len
	}
	return st
}

// Close stops the worker pool and drops cached fields. Close is idempotent.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return nil
	}
	e.closed = true
	e.pool.Close()
	if e.fields != nil {
		e.fields.Clear()
	}
	return nil
}
