//go:build linux

package platform

import (
	"fmt"
	"image"

	"github.com/1broseidon/iconwin/internal/icon"
	"github.com/1broseidon/iconwin/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
)

// LinuxBackend wraps an X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ Backend = (*LinuxBackend)(nil)

// New opens the platform backend for this build.
func New(opts BackendOptions) (Backend, error) {
	return NewLinuxBackend(opts.Display)
}

// NewLinuxBackend creates a Linux backend by opening an X11 connection.
func NewLinuxBackend(display string) (*LinuxBackend, error) {
	conn, err := x11.NewConnection(display)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect to X11: %v", ErrWindowCreationFailed, err)
	}
	return &LinuxBackend{conn: conn}, nil
}

// Kind reports the icon encoding this backend consumes.
func (b *LinuxBackend) Kind() icon.Kind { return icon.KindX11 }

// Close disconnects from the X server.
func (b *LinuxBackend) Close() error {
	if b != nil && b.conn != nil {
		b.conn.Close()
		b.conn = nil
	}
	return nil
}

// CreateWindow creates and maps a decorated top-level window.
func (b *LinuxBackend) CreateWindow(opts WindowOptions) (Window, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("%w: x11 backend connection is nil", ErrWindowCreationFailed)
	}
	w, err := b.conn.CreateWindow(x11.WindowConfig{
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
	return &linuxWindow{conn: b.conn, win: w}, nil
}

type linuxWindow struct {
	conn      *x11.Connection
	win       *x11.Window
	destroyed bool
}

func (w *linuxWindow) SetIcon(img *icon.NativeImage) error {
	if err := expectFormat(img, icon.FormatARGB32Prefixed); err != nil {
		return err
	}
	if err := w.win.SetIcon(img.Words()); err != nil {
		return fmt.Errorf("%w: _NET_WM_ICON: %v", ErrResourceAllocationFailed, err)
	}
	return nil
}

func (w *linuxWindow) SetCursor(img *icon.NativeImage, hotspot image.Point) error {
	if err := expectFormat(img, icon.FormatARGB32Premultiplied); err != nil {
		return err
	}
	if err := w.win.DefineImageCursor(img.Width, img.Height, img.Words(), hotspot.X, hotspot.Y); err != nil {
		return fmt.Errorf("%w: cursor: %v", ErrResourceAllocationFailed, err)
	}
	return nil
}

func (w *linuxWindow) SetSystemCursor(c SystemCursor) error {
	glyph := uint16(x11.GlyphArrow)
	switch c {
	case SystemIBeam:
		glyph = x11.GlyphIBeam
	case SystemWait:
		glyph = x11.GlyphWait
	}
	if err := w.win.DefineFontCursor(glyph); err != nil {
		return fmt.Errorf("%w: %s cursor: %v", ErrResourceAllocationFailed, c, err)
	}
	return nil
}

// BeginIteration has nothing to scope on X11.
func (w *linuxWindow) BeginIteration() func() { return func() {} }

func (w *linuxWindow) NextEvent() (Event, error) {
	ev, err := w.conn.NextEvent()
	if err != nil {
		return Event{}, err
	}
	return Event{Kind: translateX11(ev, w.win.ID(), w.conn.IsDeleteRequest), Native: ev}, nil
}

// translateX11 classifies an X event. Events aimed at windows other than win
// are EventOther. isDelete reports whether a client message is the
// WM_DELETE_WINDOW protocol message.
func translateX11(ev any, win xproto.Window, isDelete func(xproto.ClientMessageEvent) bool) EventKind {
	switch e := ev.(type) {
	case xproto.ButtonPressEvent:
		if e.Event == win && e.Detail == xproto.ButtonIndex1 {
			return EventPrimaryPress
		}
	case xproto.ButtonReleaseEvent:
		if e.Event != win {
			return EventOther
		}
		switch e.Detail {
		case xproto.ButtonIndex1:
			return EventPrimaryRelease
		case xproto.ButtonIndex3:
			return EventSecondaryRelease
		}
	case xproto.KeyPressEvent:
		if e.Event == win {
			return EventKeyPress
		}
	case xproto.KeyReleaseEvent:
		if e.Event == win {
			return EventKeyRelease
		}
	case xproto.ClientMessageEvent:
		if e.Window == win && isDelete(e) {
			return EventCloseRequested
		}
	case xproto.DestroyNotifyEvent:
		if e.Window == win {
			return EventCloseRequested
		}
	}
	return EventOther
}

// Dispatch flushes pending requests. The X server does its own redraw and
// focus bookkeeping, so there is no client-side default handler to run.
func (w *linuxWindow) Dispatch(Event) {
	w.conn.Flush()
}

func (w *linuxWindow) Destroy() error {
	if w.destroyed {
		return nil
	}
	w.destroyed = true
	w.win.Destroy()
	return nil
}
