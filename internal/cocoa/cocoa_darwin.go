//go:build darwin

// Package cocoa is a thin cgo adapter over AppKit: one NSWindow, the
// application icon, NSCursor objects and the NSApplication event queue.
package cocoa

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework Cocoa
#include <stdlib.h>
#include "cocoa_darwin.h"
*/
import "C"

import (
	"errors"
	"fmt"
	"runtime"
	"unsafe"
)

// AppKit must be driven from the main thread.
func init() {
	runtime.LockOSThread()
}

// NSWindowStyleMask bits.
const (
	StyleMaskTitled         = 1 << 0
	StyleMaskClosable       = 1 << 1
	StyleMaskMiniaturizable = 1 << 2
	StyleMaskResizable      = 1 << 3
)

// NSEventType values the event pump translates.
const (
	EventLeftMouseDown      = 1
	EventLeftMouseUp        = 2
	EventRightMouseUp       = 4
	EventKeyDown            = 10
	EventKeyUp              = 11
	EventApplicationDefined = 15
)

// CloseSubtype marks the application-defined event posted when the user
// presses the close button.
const CloseSubtype = C.ICONWIN_CLOSE_SUBTYPE

// System cursor selectors.
const (
	CursorArrow = C.ICONWIN_CURSOR_ARROW
	CursorIBeam = C.ICONWIN_CURSOR_IBEAM
	CursorWait  = C.ICONWIN_CURSOR_WAIT
)

var errNilObject = errors.New("AppKit returned nil")

// Event is one dequeued NSEvent. It is only valid until the autorelease
// pool it was dequeued in is drained.
type Event struct {
	Type    uint
	Subtype int
	ptr     unsafe.Pointer
}

// IsClose reports whether ev is the close request posted by the window
// delegate.
func (ev Event) IsClose() bool {
	return ev.Type == EventApplicationDefined && ev.Subtype == CloseSubtype
}

// WindowConfig describes the window to create. Coordinates are in screen
// points with the origin at the bottom-left.
type WindowConfig struct {
	Title         string
	X, Y          int
	Width, Height int
	StyleMask     uint
}

// Window is an NSWindow plus the cursor installed for it.
type Window struct {
	ptr    unsafe.Pointer
	cursor unsafe.Pointer
}

// Init creates the shared NSApplication.
func Init() {
	C.iconwin_init_app()
}

// CreateWindow creates, activates and shows a window.
func CreateWindow(cfg WindowConfig) (*Window, error) {
	title := C.CString(cfg.Title)
	defer C.free(unsafe.Pointer(title))

	ptr := C.iconwin_create_window(C.double(cfg.X), C.double(cfg.Y),
		C.double(cfg.Width), C.double(cfg.Height), C.ulong(cfg.StyleMask), title)
	if ptr == nil {
		return nil, fmt.Errorf("NSWindow: %w", errNilObject)
	}
	return &Window{ptr: ptr}, nil
}

// SetAppIcon installs rgba (straight alpha, row-major) as the application
// icon.
func SetAppIcon(rgba []byte, width, height int) error {
	if err := checkPixels(rgba, width, height); err != nil {
		return err
	}
	if C.iconwin_set_app_icon((*C.uint8_t)(unsafe.Pointer(&rgba[0])), C.int(width), C.int(height)) == 0 {
		return fmt.Errorf("NSImage: %w", errNilObject)
	}
	return nil
}

// SetImageCursor builds an NSCursor from rgba and makes it current.
func (w *Window) SetImageCursor(rgba []byte, width, height, hotX, hotY int) error {
	if err := checkPixels(rgba, width, height); err != nil {
		return err
	}
	c := C.iconwin_create_cursor((*C.uint8_t)(unsafe.Pointer(&rgba[0])), C.int(width), C.int(height),
		C.double(hotX), C.double(hotY))
	if c == nil {
		return fmt.Errorf("NSCursor: %w", errNilObject)
	}
	w.install(c)
	return nil
}

// SetSystemCursor makes one of the shared AppKit cursors current.
func (w *Window) SetSystemCursor(which int) error {
	c := C.iconwin_system_cursor(C.int(which))
	if c == nil {
		return fmt.Errorf("NSCursor %d: %w", which, errNilObject)
	}
	w.install(c)
	return nil
}

// install sets c and then releases the cursor it replaces.
func (w *Window) install(c unsafe.Pointer) {
	C.iconwin_set_cursor(c)
	old := w.cursor
	w.cursor = c
	if old != nil {
		C.iconwin_release(old)
	}
}

// PushPool opens an autorelease pool and returns the func that drains it.
func PushPool() func() {
	pool := C.iconwin_pool_push()
	return func() { C.iconwin_pool_pop(pool) }
}

// NextEvent blocks until AppKit has an event.
func NextEvent() Event {
	var typ C.ulong
	var sub C.long
	ptr := C.iconwin_next_event(&typ, &sub)
	return Event{Type: uint(typ), Subtype: int(sub), ptr: ptr}
}

// Send hands ev back to NSApplication for default handling.
func Send(ev Event) {
	if ev.ptr != nil {
		C.iconwin_send_event(ev.ptr)
	}
}

// Destroy closes the window and releases it and its cursor.
func (w *Window) Destroy() {
	if w.ptr == nil {
		return
	}
	C.iconwin_destroy_window(w.ptr)
	w.ptr = nil
	if w.cursor != nil {
		C.iconwin_release(w.cursor)
		w.cursor = nil
	}
}

func checkPixels(rgba []byte, width, height int) error {
	if width <= 0 || height <= 0 || len(rgba) != width*height*4 {
		return fmt.Errorf("invalid %dx%d image with %d bytes", width, height, len(rgba))
	}
	return nil
}
