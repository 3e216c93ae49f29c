//go:build darwin

package platform

import (
	"fmt"
	"image"

	"github.com/1broseidon/iconwin/internal/cocoa"
	"github.com/1broseidon/iconwin/internal/icon"
)

// DarwinBackend drives AppKit on the main thread.
type DarwinBackend struct{}

var _ Backend = (*DarwinBackend)(nil)

// New opens the platform backend for this build.
func New(BackendOptions) (Backend, error) {
	cocoa.Init()
	return &DarwinBackend{}, nil
}

// Kind reports the icon encoding this backend consumes.
func (b *DarwinBackend) Kind() icon.Kind { return icon.KindCocoa }

// Close is a no-op; NSApplication lives for the whole process.
func (b *DarwinBackend) Close() error { return nil }

// CreateWindow creates, activates and shows an NSWindow.
func (b *DarwinBackend) CreateWindow(opts WindowOptions) (Window, error) {
	var mask uint
	for _, m := range []struct {
		flag StyleFlags
		bit  uint
	}{
		{StyleTitled, cocoa.StyleMaskTitled},
		{StyleClosable, cocoa.StyleMaskClosable},
		{StyleMiniaturizable, cocoa.StyleMaskMiniaturizable},
		{StyleResizable, cocoa.StyleMaskResizable},
	} {
		if opts.Style.Has(m.flag) {
			mask |= m.bit
		}
	}

	w, err := cocoa.CreateWindow(cocoa.WindowConfig{
		Title:     opts.Title,
		X:         opts.Bounds.X,
		Y:         opts.Bounds.Y,
		Width:     opts.Bounds.Width,
		Height:    opts.Bounds.Height,
		StyleMask: mask,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWindowCreationFailed, err)
	}
	return &darwinWindow{win: w}, nil
}

type darwinWindow struct {
	win *cocoa.Window
}

// SetIcon sets the application (Dock) icon; AppKit has no per-window icon.
func (w *darwinWindow) SetIcon(img *icon.NativeImage) error {
	if err := expectFormat(img, icon.FormatRGBA); err != nil {
		return err
	}
	if err := cocoa.SetAppIcon(img.Pix, img.Width, img.Height); err != nil {
		return fmt.Errorf("%w: icon: %v", ErrResourceAllocationFailed, err)
	}
	return nil
}

func (w *darwinWindow) SetCursor(img *icon.NativeImage, hotspot image.Point) error {
	if err := expectFormat(img, icon.FormatRGBA); err != nil {
		return err
	}
	if err := w.win.SetImageCursor(img.Pix, img.Width, img.Height, hotspot.X, hotspot.Y); err != nil {
		return fmt.Errorf("%w: cursor: %v", ErrResourceAllocationFailed, err)
	}
	return nil
}

// SetSystemCursor maps SystemWait to the closest public AppKit cursor.
func (w *darwinWindow) SetSystemCursor(c SystemCursor) error {
	which := cocoa.CursorArrow
	switch c {
	case SystemIBeam:
		which = cocoa.CursorIBeam
	case SystemWait:
		which = cocoa.CursorWait
	}
	if err := w.win.SetSystemCursor(which); err != nil {
		return fmt.Errorf("%w: %s cursor: %v", ErrResourceAllocationFailed, c, err)
	}
	return nil
}

// BeginIteration opens an autorelease pool that lives until the returned
// func is called.
func (w *darwinWindow) BeginIteration() func() { return cocoa.PushPool() }

func (w *darwinWindow) NextEvent() (Event, error) {
	ev := cocoa.NextEvent()
	return Event{Kind: translateEvent(ev), Native: ev}, nil
}

func translateEvent(ev cocoa.Event) EventKind {
	switch ev.Type {
	case cocoa.EventLeftMouseDown:
		return EventPrimaryPress
	case cocoa.EventLeftMouseUp:
		return EventPrimaryRelease
	case cocoa.EventRightMouseUp:
		return EventSecondaryRelease
	case cocoa.EventKeyDown:
		return EventKeyPress
	case cocoa.EventKeyUp:
		return EventKeyRelease
	}
	if ev.IsClose() {
		return EventCloseRequested
	}
	return EventOther
}

func (w *darwinWindow) Dispatch(ev Event) {
	if e, ok := ev.Native.(cocoa.Event); ok {
		cocoa.Send(e)
	}
}

func (w *darwinWindow) Destroy() error {
	w.win.Destroy()
	return nil
}
