// Package cursor tracks which cursor a window shows and installs it.
package cursor

import (
	"fmt"
	"image"

	"github.com/1broseidon/iconwin/internal/icon"
	"github.com/1broseidon/iconwin/internal/platform"
)

// State is the cursor currently installed on a window.
type State int

const (
	// StateUnset means nothing has been installed yet.
	StateUnset State = iota
	// StateCustom is the image cursor built from the window icon.
	StateCustom
	// StateDefault is the system arrow.
	StateDefault
	// StateAlternate is the text (I-beam) cursor.
	StateAlternate
	// StateBusy is the wait cursor.
	StateBusy
)

func (s State) String() string {
	switch s {
	case StateUnset:
		return "unset"
	case StateCustom:
		return "custom"
	case StateDefault:
		return "default"
	case StateAlternate:
		return "alternate"
	case StateBusy:
		return "busy"
	default:
		return "unknown"
	}
}

// Installer is the part of a window the controller drives.
type Installer interface {
	SetCursor(img *icon.NativeImage, hotspot image.Point) error
	SetSystemCursor(c platform.SystemCursor) error
}

// Controller owns the cursor state of one window.
type Controller struct {
	win     Installer
	custom  *icon.NativeImage
	hotspot image.Point

	state   State
	history []State
}

// NewController returns a controller for win. custom may be nil, in which
// case StateCustom falls back to the system arrow.
func NewController(win Installer, custom *icon.NativeImage, hotspot image.Point) *Controller {
	return &Controller{win: win, custom: custom, hotspot: hotspot}
}

// Install puts the custom cursor on the window. It is not recorded in
// History.
func (c *Controller) Install() error {
	if err := c.install(StateCustom); err != nil {
		return err
	}
	c.state = StateCustom
	return nil
}

// Set installs the cursor for s. Setting the current state again is a no-op,
// except for StateCustom which is always re-installed. On error the state is
// unchanged.
func (c *Controller) Set(s State) error {
	if s == c.state && s != StateCustom {
		return nil
	}
	if err := c.install(s); err != nil {
		return err
	}
	c.state = s
	c.history = append(c.history, s)
	return nil
}

func (c *Controller) install(s State) error {
	switch s {
	case StateCustom:
		if c.custom == nil {
			return c.win.SetSystemCursor(platform.SystemArrow)
		}
		return c.win.SetCursor(c.custom, c.hotspot)
	case StateDefault:
		return c.win.SetSystemCursor(platform.SystemArrow)
	case StateAlternate:
		return c.win.SetSystemCursor(platform.SystemIBeam)
	case StateBusy:
		return c.win.SetSystemCursor(platform.SystemWait)
	}
	return fmt.Errorf("cannot install cursor state %s", s)
}

// State returns the installed cursor state.
func (c *Controller) State() State { return c.state }

// History returns every state applied by Set, oldest first.
func (c *Controller) History() []State {
	out := make([]State, len(c.history))
	copy(out, c.history)
	return out
}
