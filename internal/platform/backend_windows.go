//go:build windows

package platform

import (
	"fmt"
	"image"

	"github.com/1broseidon/iconwin/internal/icon"
	"github.com/1broseidon/iconwin/internal/win32"
)

// WindowsBackend creates Win32 windows on the calling (locked) thread.
type WindowsBackend struct{}

var _ Backend = (*WindowsBackend)(nil)

// New opens the platform backend for this build.
func New(BackendOptions) (Backend, error) {
	return &WindowsBackend{}, nil
}

// Kind reports the icon encoding this backend consumes.
func (b *WindowsBackend) Kind() icon.Kind { return icon.KindWin32 }

// Close is a no-op; Win32 has no connection to tear down.
func (b *WindowsBackend) Close() error { return nil }

// CreateWindow registers a class and creates a visible top-level window.
func (b *WindowsBackend) CreateWindow(opts WindowOptions) (Window, error) {
	w, err := win32.CreateWindow(win32.WindowConfig{
		Title:       opts.Title,
		X:           opts.Bounds.X,
		Y:           opts.Bounds.Y,
		Width:       opts.Bounds.Width,
		Height:      opts.Bounds.Height,
		Titled:      opts.Style.Has(StyleTitled),
		Closable:    opts.Style.Has(StyleClosable),
		Resizable:   opts.Style.Has(StyleResizable),
		Minimizable: opts.Style.Has(StyleMiniaturizable),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWindowCreationFailed, err)
	}
	return &windowsWindow{win: w}, nil
}

type windowsWindow struct {
	win *win32.Window
}

func nativeImage(img *icon.NativeImage) win32.Image {
	return win32.Image{Width: img.Width, Height: img.Height, BGRA: img.Pix, Mask: img.Mask}
}

func (w *windowsWindow) SetIcon(img *icon.NativeImage) error {
	if err := expectFormat(img, icon.FormatBGRAWithMask); err != nil {
		return err
	}
	if err := w.win.SetIcon(nativeImage(img)); err != nil {
		return fmt.Errorf("%w: icon: %v", ErrResourceAllocationFailed, err)
	}
	return nil
}

func (w *windowsWindow) SetCursor(img *icon.NativeImage, hotspot image.Point) error {
	if err := expectFormat(img, icon.FormatBGRAWithMask); err != nil {
		return err
	}
	if err := w.win.SetImageCursor(nativeImage(img), hotspot.X, hotspot.Y); err != nil {
		return fmt.Errorf("%w: cursor: %v", ErrResourceAllocationFailed, err)
	}
	return nil
}

func (w *windowsWindow) SetSystemCursor(c SystemCursor) error {
	id := uint16(win32.IDC_ARROW)
	switch c {
	case SystemIBeam:
		id = win32.IDC_IBEAM
	case SystemWait:
		id = win32.IDC_WAIT
	}
	if err := w.win.SetStockCursor(id); err != nil {
		return fmt.Errorf("%w: %s cursor: %v", ErrResourceAllocationFailed, c, err)
	}
	return nil
}

// BeginIteration has nothing to scope on Win32.
func (w *windowsWindow) BeginIteration() func() { return func() {} }

func (w *windowsWindow) NextEvent() (Event, error) {
	m, ok, err := w.win.NextMessage()
	if err != nil {
		return Event{}, err
	}
	if !ok {
		return Event{Kind: EventCloseRequested}, nil
	}
	return Event{Kind: translateMessage(m.Message), Native: m}, nil
}

func translateMessage(msg uint32) EventKind {
	switch msg {
	case win32.WM_LBUTTONDOWN:
		return EventPrimaryPress
	case win32.WM_LBUTTONUP:
		return EventPrimaryRelease
	case win32.WM_RBUTTONUP:
		return EventSecondaryRelease
	case win32.WM_KEYDOWN:
		return EventKeyPress
	case win32.WM_KEYUP:
		return EventKeyRelease
	case win32.WM_CLOSEREQUESTED:
		return EventCloseRequested
	}
	return EventOther
}

func (w *windowsWindow) Dispatch(ev Event) {
	if m, ok := ev.Native.(win32.Msg); ok {
		w.win.Dispatch(&m)
	}
}

func (w *windowsWindow) Destroy() error {
	w.win.Destroy()
	return nil
}
