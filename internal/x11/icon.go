package x11

import (
	"fmt"

	"github.com/BurntSushi/xgbutil/ewmh"
)

// SetIcon replaces _NET_WM_ICON with a single icon. words is the property
// payload: width, height, then one 0xAARRGGBB word per pixel.
func (w *Window) SetIcon(words []uint32) error {
	if len(words) < 2 {
		return fmt.Errorf("icon property too short: %d words", len(words))
	}
	width, height := uint(words[0]), uint(words[1])
	if uint(len(words)-2) != width*height {
		return fmt.Errorf("icon property holds %d pixels, header says %dx%d", len(words)-2, width, height)
	}

	data := make([]uint, len(words)-2)
	for i, v := range words[2:] {
		data[i] = uint(v)
	}
	return ewmh.WmIconSet(w.conn.XUtil, w.win.Id, []ewmh.WmIcon{{
		Width:  width,
		Height: height,
		Data:   data,
	}})
}
