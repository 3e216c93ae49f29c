package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/motif"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// WindowConfig describes a top-level window to create.
type WindowConfig struct {
	Title         string
	X, Y          int
	Width, Height int
	Titled        bool
	Closable      bool
	Resizable     bool
	Minimizable   bool
}

// inputMask selects the events the pump translates. Release events are
// needed for the primary and secondary button triggers.
const inputMask = xproto.EventMaskExposure |
	xproto.EventMaskKeyPress | xproto.EventMaskKeyRelease |
	xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease |
	xproto.EventMaskStructureNotify

// Window is a top-level X window together with the cursor currently
// defined on it.
type Window struct {
	conn   *Connection
	win    *xwindow.Window
	cursor xproto.Cursor
}

// CreateWindow creates, decorates and maps a top-level window.
func (c *Connection) CreateWindow(cfg WindowConfig) (*Window, error) {
	win, err := xwindow.Generate(c.XUtil)
	if err != nil {
		return nil, err
	}

	screen := c.XUtil.Screen()
	// Value list order follows the bit positions of the mask (low to high):
	// CwBackPixel, CwBorderPixel, CwEventMask.
	err = win.CreateChecked(c.Root,
		cfg.X, cfg.Y, cfg.Width, cfg.Height,
		xproto.CwBackPixel|xproto.CwBorderPixel|xproto.CwEventMask,
		screen.WhitePixel, screen.BlackPixel, inputMask,
	)
	if err != nil {
		return nil, err
	}

	w := &Window{conn: c, win: win}
	if err := w.applyHints(cfg); err != nil {
		w.Destroy()
		return nil, err
	}

	win.Map()
	return w, nil
}

func (w *Window) applyHints(cfg WindowConfig) error {
	xu := w.conn.XUtil
	id := w.win.Id

	if err := icccm.WmNameSet(xu, id, cfg.Title); err != nil {
		return fmt.Errorf("set WM_NAME: %w", err)
	}
	// _NET_WM_NAME is optional; not every WM reads it.
	ewmh.WmNameSet(xu, id, cfg.Title)

	if err := icccm.WmProtocolsSet(xu, id, []string{"WM_DELETE_WINDOW"}); err != nil {
		return fmt.Errorf("set WM_PROTOCOLS: %w", err)
	}

	nh := &icccm.NormalHints{
		Flags:  icccm.SizeHintPPosition | icccm.SizeHintPSize,
		X:      cfg.X,
		Y:      cfg.Y,
		Width:  uint(cfg.Width),
		Height: uint(cfg.Height),
	}
	if !cfg.Resizable {
		nh.Flags |= icccm.SizeHintPMinSize | icccm.SizeHintPMaxSize
		nh.MinWidth, nh.MaxWidth = uint(cfg.Width), uint(cfg.Width)
		nh.MinHeight, nh.MaxHeight = uint(cfg.Height), uint(cfg.Height)
	}
	if err := icccm.WmNormalHintsSet(xu, id, nh); err != nil {
		return fmt.Errorf("set WM_NORMAL_HINTS: %w", err)
	}

	return motif.WmHintsSet(xu, id, motifHints(cfg))
}

// motifHints maps the style booleans onto _MOTIF_WM_HINTS, which most window
// managers honour for decorations and the functions offered on the frame.
func motifHints(cfg WindowConfig) *motif.Hints {
	mh := &motif.Hints{
		Flags:      motif.HintFunctions | motif.HintDecorations,
		Function:   motif.FunctionMove,
		Decoration: motif.DecorationBorder,
	}
	if cfg.Titled {
		mh.Decoration |= motif.DecorationTitle | motif.DecorationMenu
	}
	if cfg.Closable {
		mh.Function |= motif.FunctionClose
	}
	if cfg.Resizable {
		mh.Function |= motif.FunctionResize | motif.FunctionMaximize
		mh.Decoration |= motif.DecorationResizeH | motif.DecorationMaximize
	}
	if cfg.Minimizable {
		mh.Function |= motif.FunctionMinimize
		mh.Decoration |= motif.DecorationMinimize
	}
	return mh
}

// ID returns the X window id.
func (w *Window) ID() xproto.Window {
	return w.win.Id
}

// Destroy frees the defined cursor and destroys the window. The icon lives in
// a window property and goes with it.
func (w *Window) Destroy() {
	if w.cursor != 0 {
		xproto.FreeCursor(w.conn.XUtil.Conn(), w.cursor)
		w.cursor = 0
	}
	w.win.Destroy()
	w.conn.XUtil.Sync()
}
