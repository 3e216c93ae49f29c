package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/render"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window

	renderReady bool
	argbFormat  render.Pictformat
}

// NewConnection establishes a connection to the X11 server. An empty display
// name uses $DISPLAY.
func NewConnection(display string) (*Connection, error) {
	var (
		xu  *xgbutil.XUtil
		err error
	)
	if display == "" {
		xu, err = xgbutil.NewConn()
	} else {
		xu, err = xgbutil.NewConnDisplay(display)
	}
	if err != nil {
		return nil, err
	}

	c := &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}

	// RENDER is only needed for ARGB cursors; font cursors still work
	// without it.
	if err := c.initRender(); err != nil {
		xgbutil.Logger.Printf("RENDER unavailable, custom cursors disabled: %v", err)
	}
	return c, nil
}

// initRender finds the 32-bit direct picture format with an 8-bit alpha
// channel at bits 24-31, which is the layout ARGB cursor images use.
func (c *Connection) initRender() error {
	if err := render.Init(c.XUtil.Conn()); err != nil {
		return err
	}
	reply, err := render.QueryPictFormats(c.XUtil.Conn()).Reply()
	if err != nil {
		return err
	}
	for _, f := range reply.Formats {
		d := f.Direct
		if f.Type == render.PictTypeDirect && f.Depth == 32 &&
			d.AlphaShift == 24 && d.AlphaMask == 0xff &&
			d.RedShift == 16 && d.RedMask == 0xff &&
			d.GreenShift == 8 && d.GreenMask == 0xff &&
			d.BlueShift == 0 && d.BlueMask == 0xff {
			c.argbFormat = f.Id
			c.renderReady = true
			return nil
		}
	}
	return fmt.Errorf("no ARGB32 picture format")
}

// imageLSBFirst reports whether the server expects image data least
// significant byte first.
func (c *Connection) imageLSBFirst() bool {
	return c.XUtil.Setup().ImageByteOrder == xproto.ImageOrderLSBFirst
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}
