//go:build windows

// Package win32 is a thin typed layer over the user32 and gdi32 calls needed
// to run one top-level window with a custom icon and cursor.
package win32

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

type Point struct {
	X, Y int32
}

type Msg struct {
	Hwnd     windows.Handle
	Message  uint32
	WParam   uintptr
	LParam   uintptr
	Time     uint32
	Pt       Point
	LPrivate uint32
}

type wndClassEx struct {
	CbSize        uint32
	Style         uint32
	LpfnWndProc   uintptr
	CnClsExtra    int32
	CbWndExtra    int32
	HInstance     windows.Handle
	HIcon         windows.Handle
	HCursor       windows.Handle
	HbrBackground windows.Handle
	LpszMenuName  *uint16
	LpszClassName *uint16
	HIconSm       windows.Handle
}

type bitmapV5Header struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
	RedMask       uint32
	GreenMask     uint32
	BlueMask      uint32
	AlphaMask     uint32
	CSType        uint32
	Endpoints     [36]byte
	GammaRed      uint32
	GammaGreen    uint32
	GammaBlue     uint32
	Intent        uint32
	ProfileData   uint32
	ProfileSize   uint32
	Reserved      uint32
}

type iconInfo struct {
	FIcon    int32
	XHotspot uint32
	YHotspot uint32
	HbmMask  windows.Handle
	HbmColor windows.Handle
}

const (
	CS_HREDRAW = 0x0002
	CS_VREDRAW = 0x0001
	CS_NOCLOSE = 0x0200

	WS_OVERLAPPED  = 0x00000000
	WS_CAPTION     = 0x00C00000
	WS_SYSMENU     = 0x00080000
	WS_THICKFRAME  = 0x00040000
	WS_MINIMIZEBOX = 0x00020000
	WS_MAXIMIZEBOX = 0x00010000
	WS_BORDER      = 0x00800000

	SW_SHOW = 5

	WM_CLOSE       = 0x0010
	WM_QUIT        = 0x0012
	WM_SETCURSOR   = 0x0020
	WM_SETICON     = 0x0080
	WM_KEYDOWN     = 0x0100
	WM_KEYUP       = 0x0101
	WM_LBUTTONDOWN = 0x0201
	WM_LBUTTONUP   = 0x0202
	WM_RBUTTONUP   = 0x0205
	WM_APP         = 0x8000

	// WM_CLOSEREQUESTED is posted by the window procedure in place of
	// destroying the window on WM_CLOSE.
	WM_CLOSEREQUESTED = WM_APP + 1

	ICON_SMALL = 0
	ICON_BIG   = 1

	HTCLIENT = 1

	IDC_ARROW = 32512
	IDC_IBEAM = 32513
	IDC_WAIT  = 32514

	BI_BITFIELDS   = 3
	DIB_RGB_COLORS = 0
)

// Class long indices, negative as defined by the API.
const (
	gclpHCursor = -12
	gclpHIcon   = -14
)

var (
	kernel32          = windows.NewLazySystemDLL("kernel32.dll")
	_GetModuleHandleW = kernel32.NewProc("GetModuleHandleW")

	user32              = windows.NewLazySystemDLL("user32.dll")
	_CreateIconIndirect = user32.NewProc("CreateIconIndirect")
	_CreateWindowExW    = user32.NewProc("CreateWindowExW")
	_DefWindowProcW     = user32.NewProc("DefWindowProcW")
	_DestroyCursor      = user32.NewProc("DestroyCursor")
	_DestroyIcon        = user32.NewProc("DestroyIcon")
	_DestroyWindow      = user32.NewProc("DestroyWindow")
	_DispatchMessageW   = user32.NewProc("DispatchMessageW")
	_GetDC              = user32.NewProc("GetDC")
	_GetMessageW        = user32.NewProc("GetMessageW")
	_LoadCursorW        = user32.NewProc("LoadCursorW")
	_PostMessageW       = user32.NewProc("PostMessageW")
	_RegisterClassExW   = user32.NewProc("RegisterClassExW")
	_ReleaseDC          = user32.NewProc("ReleaseDC")
	_SendMessageW       = user32.NewProc("SendMessageW")
	_SetClassLongPtrW   = user32.NewProc("SetClassLongPtrW")
	_SetClassLongW      = user32.NewProc("SetClassLongW")
	_SetCursor          = user32.NewProc("SetCursor")
	_ShowWindow         = user32.NewProc("ShowWindow")
	_TranslateMessage   = user32.NewProc("TranslateMessage")
	_UnregisterClassW   = user32.NewProc("UnregisterClassW")
	_UpdateWindow       = user32.NewProc("UpdateWindow")

	gdi32              = windows.NewLazySystemDLL("gdi32.dll")
	_CreateBitmap      = gdi32.NewProc("CreateBitmap")
	_CreateDIBSection  = gdi32.NewProc("CreateDIBSection")
	_DeleteObject      = gdi32.NewProc("DeleteObject")
)

func GetModuleHandle() (windows.Handle, error) {
	h, _, err := _GetModuleHandleW.Call(0)
	if h == 0 {
		return 0, fmt.Errorf("GetModuleHandleW failed: %v", err)
	}
	return windows.Handle(h), nil
}

func registerClass(wc *wndClassEx) (uint16, error) {
	a, _, err := _RegisterClassExW.Call(uintptr(unsafe.Pointer(wc)))
	if a == 0 {
		return 0, fmt.Errorf("RegisterClassExW failed: %v", err)
	}
	return uint16(a), nil
}

func unregisterClass(cls uint16, inst windows.Handle) {
	_UnregisterClassW.Call(uintptr(cls), uintptr(inst))
}

func createWindowEx(exStyle uint32, cls uint16, title string, style uint32, x, y, w, h int32, inst windows.Handle) (windows.Handle, error) {
	wname, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return 0, err
	}
	hwnd, _, err := _CreateWindowExW.Call(
		uintptr(exStyle),
		uintptr(cls),
		uintptr(unsafe.Pointer(wname)),
		uintptr(style),
		uintptr(x), uintptr(y),
		uintptr(w), uintptr(h),
		0, 0,
		uintptr(inst),
		0)
	if hwnd == 0 {
		return 0, fmt.Errorf("CreateWindowExW failed: %v", err)
	}
	return windows.Handle(hwnd), nil
}

func defWindowProc(hwnd windows.Handle, msg uint32, wparam, lparam uintptr) uintptr {
	r, _, _ := _DefWindowProcW.Call(uintptr(hwnd), uintptr(msg), wparam, lparam)
	return r
}

func destroyWindow(hwnd windows.Handle) {
	_DestroyWindow.Call(uintptr(hwnd))
}

func showWindow(hwnd windows.Handle, cmd int32) {
	_ShowWindow.Call(uintptr(hwnd), uintptr(cmd))
}

func updateWindow(hwnd windows.Handle) {
	_UpdateWindow.Call(uintptr(hwnd))
}

// getMessage returns -1 on error, 0 on WM_QUIT and a positive value
// otherwise.
func getMessage(m *Msg) int32 {
	r, _, _ := _GetMessageW.Call(uintptr(unsafe.Pointer(m)), 0, 0, 0)
	return int32(r)
}

func translateMessage(m *Msg) {
	_TranslateMessage.Call(uintptr(unsafe.Pointer(m)))
}

func dispatchMessage(m *Msg) {
	_DispatchMessageW.Call(uintptr(unsafe.Pointer(m)))
}

func postMessage(hwnd windows.Handle, msg uint32, wparam, lparam uintptr) error {
	r, _, err := _PostMessageW.Call(uintptr(hwnd), uintptr(msg), wparam, lparam)
	if r == 0 {
		return fmt.Errorf("PostMessageW failed: %v", err)
	}
	return nil
}

func sendMessage(hwnd windows.Handle, msg uint32, wparam, lparam uintptr) uintptr {
	r, _, _ := _SendMessageW.Call(uintptr(hwnd), uintptr(msg), wparam, lparam)
	return r
}

// setClassLong uses SetClassLongPtrW where it exists; 32-bit user32 only
// exports SetClassLongW.
func setClassLong(hwnd windows.Handle, index int32, value uintptr) {
	if _SetClassLongPtrW.Find() == nil {
		_SetClassLongPtrW.Call(uintptr(hwnd), uintptr(index), value)
		return
	}
	_SetClassLongW.Call(uintptr(hwnd), uintptr(index), value)
}

func loadCursor(id uint16) (windows.Handle, error) {
	h, _, err := _LoadCursorW.Call(0, uintptr(id))
	if h == 0 {
		return 0, fmt.Errorf("LoadCursorW failed: %v", err)
	}
	return windows.Handle(h), nil
}

func setCursor(h windows.Handle) {
	_SetCursor.Call(uintptr(h))
}

func destroyIcon(h windows.Handle) {
	_DestroyIcon.Call(uintptr(h))
}

func destroyCursor(h windows.Handle) {
	_DestroyCursor.Call(uintptr(h))
}

func deleteObject(h windows.Handle) {
	_DeleteObject.Call(uintptr(h))
}
