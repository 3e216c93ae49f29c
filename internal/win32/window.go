//go:build windows

package win32

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Window handles and the message loop are tied to the creating thread.
func init() {
	runtime.LockOSThread()
}

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

// Window is a top-level window with the icon and cursor handles it owns.
type Window struct {
	hwnd     windows.Handle
	class    uint16
	instance windows.Handle

	icon         windows.Handle
	cursor       windows.Handle
	cursorCustom bool
}

var (
	windowsByHandle sync.Map // windows.Handle -> *Window
	wndProcCallback = windows.NewCallback(windowProc)
	classCounter    int
)

func windowProc(hwnd windows.Handle, msg uint32, wparam, lparam uintptr) uintptr {
	switch msg {
	case WM_CLOSE:
		// Closing is decided by the event pump, not by DefWindowProc.
		postMessage(hwnd, WM_CLOSEREQUESTED, 0, 0)
		return 0
	case WM_SETCURSOR:
		if v, ok := windowsByHandle.Load(hwnd); ok && lparam&0xffff == HTCLIENT {
			if w := v.(*Window); w.cursor != 0 {
				setCursor(w.cursor)
				return 1
			}
		}
	}
	return defWindowProc(hwnd, msg, wparam, lparam)
}

// CreateWindow registers a window class and creates, shows and paints the
// window.
func CreateWindow(cfg WindowConfig) (*Window, error) {
	inst, err := GetModuleHandle()
	if err != nil {
		return nil, err
	}

	classCounter++
	className, err := windows.UTF16PtrFromString(fmt.Sprintf("IconwinWindowClass%d", classCounter))
	if err != nil {
		return nil, err
	}
	arrow, err := loadCursor(IDC_ARROW)
	if err != nil {
		return nil, err
	}

	wc := wndClassEx{
		Style:         CS_HREDRAW | CS_VREDRAW,
		LpfnWndProc:   wndProcCallback,
		HInstance:     inst,
		HCursor:       arrow,
		LpszClassName: className,
	}
	if !cfg.Closable {
		wc.Style |= CS_NOCLOSE
	}
	wc.CbSize = uint32(unsafe.Sizeof(wc))
	cls, err := registerClass(&wc)
	if err != nil {
		return nil, err
	}

	hwnd, err := createWindowEx(0, cls, cfg.Title, windowStyle(cfg),
		int32(cfg.X), int32(cfg.Y), int32(cfg.Width), int32(cfg.Height), inst)
	if err != nil {
		unregisterClass(cls, inst)
		return nil, err
	}

	w := &Window{hwnd: hwnd, class: cls, instance: inst}
	windowsByHandle.Store(hwnd, w)
	showWindow(hwnd, SW_SHOW)
	updateWindow(hwnd)
	return w, nil
}

func windowStyle(cfg WindowConfig) uint32 {
	style := uint32(WS_OVERLAPPED | WS_BORDER)
	if cfg.Titled {
		style |= WS_CAPTION | WS_SYSMENU
	}
	if cfg.Resizable {
		style |= WS_THICKFRAME | WS_MAXIMIZEBOX
	}
	if cfg.Minimizable {
		style |= WS_MINIMIZEBOX | WS_SYSMENU
	}
	return style
}

// SetIcon replaces the big and small window icons and the class icon.
func (w *Window) SetIcon(img Image) error {
	h, err := createIconHandle(img, true, 0, 0)
	if err != nil {
		return err
	}
	sendMessage(w.hwnd, WM_SETICON, ICON_BIG, uintptr(h))
	sendMessage(w.hwnd, WM_SETICON, ICON_SMALL, uintptr(h))
	setClassLong(w.hwnd, gclpHIcon, uintptr(h))
	if w.icon != 0 {
		destroyIcon(w.icon)
	}
	w.icon = h
	return nil
}

// SetImageCursor installs a cursor built from img.
func (w *Window) SetImageCursor(img Image, hotX, hotY int) error {
	h, err := createIconHandle(img, false, hotX, hotY)
	if err != nil {
		return err
	}
	w.installCursor(h, true)
	return nil
}

// SetStockCursor installs one of the shared IDC_* cursors.
func (w *Window) SetStockCursor(id uint16) error {
	h, err := loadCursor(id)
	if err != nil {
		return err
	}
	w.installCursor(h, false)
	return nil
}

// installCursor sets h as class and current cursor. Only cursors created
// from images are destroyed when replaced; stock cursors are shared.
func (w *Window) installCursor(h windows.Handle, custom bool) {
	setClassLong(w.hwnd, gclpHCursor, uintptr(h))
	setCursor(h)
	old, oldCustom := w.cursor, w.cursorCustom
	w.cursor, w.cursorCustom = h, custom
	if old != 0 && oldCustom {
		destroyCursor(old)
	}
}

// NextMessage blocks in GetMessageW. ok is false once WM_QUIT arrives.
func (w *Window) NextMessage() (m Msg, ok bool, err error) {
	switch r := getMessage(&m); {
	case r < 0:
		return m, false, fmt.Errorf("GetMessageW failed")
	case r == 0:
		return m, false, nil
	}
	return m, true, nil
}

// Dispatch runs the default translation and window procedure for m.
func (w *Window) Dispatch(m *Msg) {
	translateMessage(m)
	dispatchMessage(m)
}

// Handle returns the HWND.
func (w *Window) Handle() windows.Handle { return w.hwnd }

// Destroy destroys the window and every handle it owns.
func (w *Window) Destroy() {
	if w.hwnd == 0 {
		return
	}
	windowsByHandle.Delete(w.hwnd)
	destroyWindow(w.hwnd)
	w.hwnd = 0
	if w.icon != 0 {
		destroyIcon(w.icon)
		w.icon = 0
	}
	if w.cursor != 0 && w.cursorCustom {
		destroyCursor(w.cursor)
	}
	w.cursor = 0
	unregisterClass(w.class, w.instance)
}
