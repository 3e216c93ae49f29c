package x11

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/BurntSushi/xgb/render"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xcursor"
)

// Font cursor glyphs used for the stock cursors.
const (
	GlyphArrow = xcursor.LeftPtr
	GlyphIBeam = xcursor.XTerm
	GlyphWait  = xcursor.Watch
)

// DefineImageCursor builds an ARGB cursor from premultiplied 0xAARRGGBB
// pixels and defines it on the window. The cursor it replaces is freed.
func (w *Window) DefineImageCursor(width, height int, pixels []uint32, hotX, hotY int) error {
	if err := checkCursorGeometry(width, height, hotX, hotY); err != nil {
		return err
	}
	if len(pixels) != width*height {
		return fmt.Errorf("cursor holds %d pixels, expected %dx%d", len(pixels), width, height)
	}
	cursor, err := w.conn.createImageCursor(width, height, pixels, hotX, hotY)
	if err != nil {
		return err
	}
	w.define(cursor)
	return nil
}

// checkCursorGeometry rejects sizes and hotspots that do not fit the 16-bit
// fields of the pixmap and cursor requests.
func checkCursorGeometry(width, height, hotX, hotY int) error {
	if width <= 0 || height <= 0 || width > math.MaxUint16 || height > math.MaxUint16 {
		return fmt.Errorf("cursor size %dx%d out of range", width, height)
	}
	if hotX < 0 || hotY < 0 || hotX >= width || hotY >= height {
		return fmt.Errorf("cursor hotspot (%d,%d) outside %dx%d", hotX, hotY, width, height)
	}
	return nil
}

// DefineFontCursor defines one of the core cursor font glyphs on the window.
func (w *Window) DefineFontCursor(glyph uint16) error {
	cursor, err := xcursor.CreateCursor(w.conn.XUtil, glyph)
	if err != nil {
		return err
	}
	w.define(cursor)
	return nil
}

// define installs cursor on the window and frees the previously defined one.
// The server keeps a cursor alive while a window references it, so freeing
// the old id after the change is safe.
func (w *Window) define(cursor xproto.Cursor) {
	old := w.cursor
	w.win.Change(xproto.CwCursor, uint32(cursor))
	w.cursor = cursor
	if old != 0 {
		xproto.FreeCursor(w.conn.XUtil.Conn(), old)
	}
}

// createImageCursor uploads pixels into a depth-32 pixmap, wraps it in an
// ARGB picture and asks RENDER for a cursor. The pixmap, picture and GC are
// released before returning; the cursor keeps its own copy.
func (c *Connection) createImageCursor(width, height int, pixels []uint32, hotX, hotY int) (xproto.Cursor, error) {
	if !c.renderReady {
		return 0, fmt.Errorf("RENDER extension with ARGB32 format not available")
	}
	conn := c.XUtil.Conn()

	pix, err := xproto.NewPixmapId(conn)
	if err != nil {
		return 0, err
	}
	if err := xproto.CreatePixmapChecked(conn, 32, pix, xproto.Drawable(c.Root),
		uint16(width), uint16(height)).Check(); err != nil {
		return 0, fmt.Errorf("create pixmap: %w", err)
	}
	defer xproto.FreePixmap(conn, pix)

	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		return 0, err
	}
	if err := xproto.CreateGCChecked(conn, gc, xproto.Drawable(pix), 0, nil).Check(); err != nil {
		return 0, fmt.Errorf("create gc: %w", err)
	}
	defer xproto.FreeGC(conn, gc)

	data := make([]byte, len(pixels)*4)
	order := binary.ByteOrder(binary.LittleEndian)
	if !c.imageLSBFirst() {
		order = binary.BigEndian
	}
	for i, p := range pixels {
		order.PutUint32(data[i*4:], p)
	}
	if err := xproto.PutImageChecked(conn, xproto.ImageFormatZPixmap, xproto.Drawable(pix), gc,
		uint16(width), uint16(height), 0, 0, 0, 32, data).Check(); err != nil {
		return 0, fmt.Errorf("put image: %w", err)
	}

	pic, err := render.NewPictureId(conn)
	if err != nil {
		return 0, err
	}
	if err := render.CreatePictureChecked(conn, pic, xproto.Drawable(pix), c.argbFormat, 0, nil).Check(); err != nil {
		return 0, fmt.Errorf("create picture: %w", err)
	}
	defer render.FreePicture(conn, pic)

	cursor, err := xproto.NewCursorId(conn)
	if err != nil {
		return 0, err
	}
	if err := render.CreateCursorChecked(conn, cursor, pic, uint16(hotX), uint16(hotY)).Check(); err != nil {
		return 0, fmt.Errorf("create cursor: %w", err)
	}
	return cursor, nil
}
