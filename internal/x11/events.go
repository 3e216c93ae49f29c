package x11

import (
	"errors"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xevent"
)

// ErrConnectionClosed is returned when the server connection goes away while
// waiting for an event.
var ErrConnectionClosed = errors.New("x11 connection closed")

// NextEvent blocks until the server delivers an event. Protocol errors from
// unchecked requests are returned as errors.
func (c *Connection) NextEvent() (xgb.Event, error) {
	if xevent.Empty(c.XUtil) {
		ev, xerr := c.XUtil.Conn().WaitForEvent()
		if ev == nil && xerr == nil {
			return nil, ErrConnectionClosed
		}
		xevent.Enqueue(c.XUtil, ev, xerr)
		// Drain whatever else arrived so the queue reflects server order.
		xevent.Read(c.XUtil, false)
	}

	ev, xerr := xevent.Dequeue(c.XUtil)
	if xerr != nil {
		return nil, xerr
	}
	return ev, nil
}

// IsDeleteRequest reports whether ev is a WM_DELETE_WINDOW client message,
// which window managers send when the title-bar close button is used.
func (c *Connection) IsDeleteRequest(ev xproto.ClientMessageEvent) bool {
	return icccm.IsDeleteProtocol(c.XUtil, xevent.ClientMessageEvent{ClientMessageEvent: &ev})
}

// Flush waits for the server to process outstanding requests.
func (c *Connection) Flush() {
	c.XUtil.Sync()
}
