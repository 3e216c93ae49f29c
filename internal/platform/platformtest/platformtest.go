// Package platformtest provides a scripted in-memory platform backend for
// tests that must run without a display.
package platformtest

import (
	"errors"
	"fmt"
	"image"

	"github.com/1broseidon/iconwin/internal/icon"
	"github.com/1broseidon/iconwin/internal/platform"
)

// ErrScriptExhausted is returned by NextEvent once every scripted event has
// been delivered.
var ErrScriptExhausted = errors.New("platformtest: no more scripted events")

// Backend hands out a single scripted Window.
type Backend struct {
	KindValue icon.Kind
	CreateErr error

	// Window is returned by CreateWindow.
	Window  *Window
	Created []platform.WindowOptions
	Closed  bool
}

var _ platform.Backend = (*Backend)(nil)

// NewBackend returns an X11-kind backend whose window delivers events in
// order.
func NewBackend(events ...platform.EventKind) *Backend {
	return &Backend{KindValue: icon.KindX11, Window: NewWindow(events...)}
}

func (b *Backend) Kind() icon.Kind { return b.KindValue }

func (b *Backend) CreateWindow(opts platform.WindowOptions) (platform.Window, error) {
	if b.CreateErr != nil {
		return nil, b.CreateErr
	}
	b.Created = append(b.Created, opts)
	b.Window.Options = opts
	b.Window.record("create")
	return b.Window, nil
}

func (b *Backend) Close() error {
	b.Closed = true
	return nil
}

// Window records every call made on it.
type Window struct {
	Options platform.WindowOptions
	Events  []platform.Event

	IconErr         error
	CursorErr       error
	SystemCursorErr error
	DestroyErr      error
	// PanicOn makes Dispatch panic for the given event kind.
	PanicOn platform.EventKind

	Calls         []string
	Icons         []*icon.NativeImage
	Cursors       []*icon.NativeImage
	Hotspots      []image.Point
	SystemCursors []platform.SystemCursor
	Dispatched    []platform.EventKind
	Destroyed     int
	// OpenScopes counts iterations begun but not yet ended.
	OpenScopes int

	next int
}

var _ platform.Window = (*Window)(nil)

// NewWindow returns a window that delivers events in order.
func NewWindow(events ...platform.EventKind) *Window {
	w := &Window{}
	for _, k := range events {
		w.Events = append(w.Events, platform.Event{Kind: k})
	}
	return w
}

func (w *Window) record(format string, args ...any) {
	w.Calls = append(w.Calls, fmt.Sprintf(format, args...))
}

func (w *Window) SetIcon(img *icon.NativeImage) error {
	w.record("set-icon")
	if w.IconErr != nil {
		return w.IconErr
	}
	w.Icons = append(w.Icons, img)
	return nil
}

func (w *Window) SetCursor(img *icon.NativeImage, hotspot image.Point) error {
	w.record("set-cursor")
	if w.CursorErr != nil {
		return w.CursorErr
	}
	w.Cursors = append(w.Cursors, img)
	w.Hotspots = append(w.Hotspots, hotspot)
	return nil
}

func (w *Window) SetSystemCursor(c platform.SystemCursor) error {
	w.record("system-cursor:%s", c)
	if w.SystemCursorErr != nil {
		return w.SystemCursorErr
	}
	w.SystemCursors = append(w.SystemCursors, c)
	return nil
}

func (w *Window) BeginIteration() func() {
	w.record("begin")
	w.OpenScopes++
	return func() {
		w.OpenScopes--
		w.record("end")
	}
}

func (w *Window) NextEvent() (platform.Event, error) {
	w.record("next")
	if w.next >= len(w.Events) {
		return platform.Event{}, ErrScriptExhausted
	}
	ev := w.Events[w.next]
	w.next++
	return ev, nil
}

func (w *Window) Dispatch(ev platform.Event) {
	w.record("dispatch:%s", ev.Kind)
	if w.PanicOn != platform.EventOther && ev.Kind == w.PanicOn {
		panic(fmt.Sprintf("platformtest: dispatch of %s", ev.Kind))
	}
	w.Dispatched = append(w.Dispatched, ev.Kind)
}

func (w *Window) Destroy() error {
	w.record("destroy")
	w.Destroyed++
	return w.DestroyErr
}

// Remaining reports how many scripted events have not been delivered.
func (w *Window) Remaining() int { return len(w.Events) - w.next }
