//go:build windows

package win32

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Image is a 32bpp BGRA color plane plus a 1bpp AND mask, the two bitmaps
// CreateIconIndirect combines.
type Image struct {
	Width, Height int
	BGRA          []byte
	Mask          []byte
}

// createIconHandle builds an HICON (icon true) or HCURSOR (icon false).
// The intermediate bitmaps are deleted before returning.
func createIconHandle(img Image, icon bool, hotX, hotY int) (windows.Handle, error) {
	if len(img.BGRA) != img.Width*img.Height*4 {
		return 0, fmt.Errorf("color plane holds %d bytes, expected %d", len(img.BGRA), img.Width*img.Height*4)
	}

	bi := bitmapV5Header{
		Width:       int32(img.Width),
		Height:      -int32(img.Height), // top-down rows
		Planes:      1,
		BitCount:    32,
		Compression: BI_BITFIELDS,
		RedMask:     0x00ff0000,
		GreenMask:   0x0000ff00,
		BlueMask:    0x000000ff,
		AlphaMask:   0xff000000,
	}
	bi.Size = uint32(unsafe.Sizeof(bi))

	dc, _, _ := _GetDC.Call(0)
	var bits unsafe.Pointer
	color, _, err := _CreateDIBSection.Call(dc, uintptr(unsafe.Pointer(&bi)), DIB_RGB_COLORS,
		uintptr(unsafe.Pointer(&bits)), 0, 0)
	_ReleaseDC.Call(0, dc)
	if color == 0 || bits == nil {
		return 0, fmt.Errorf("CreateDIBSection failed: %v", err)
	}
	defer deleteObject(windows.Handle(color))
	copy(unsafe.Slice((*byte)(bits), len(img.BGRA)), img.BGRA)

	var maskBits uintptr
	if len(img.Mask) > 0 {
		maskBits = uintptr(unsafe.Pointer(&img.Mask[0]))
	}
	mask, _, err := _CreateBitmap.Call(uintptr(img.Width), uintptr(img.Height), 1, 1, maskBits)
	if mask == 0 {
		return 0, fmt.Errorf("CreateBitmap failed: %v", err)
	}
	defer deleteObject(windows.Handle(mask))

	ii := iconInfo{
		XHotspot: uint32(hotX),
		YHotspot: uint32(hotY),
		HbmMask:  windows.Handle(mask),
		HbmColor: windows.Handle(color),
	}
	if icon {
		ii.FIcon = 1
	}
	h, _, err := _CreateIconIndirect.Call(uintptr(unsafe.Pointer(&ii)))
	if h == 0 {
		return 0, fmt.Errorf("CreateIconIndirect failed: %v", err)
	}
	return windows.Handle(h), nil
}
