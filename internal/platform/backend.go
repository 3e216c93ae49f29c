package platform

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/1broseidon/iconwin/internal/icon"
)

var (
	// ErrWindowCreationFailed means the native subsystem returned no window,
	// typically because no display or session is reachable.
	ErrWindowCreationFailed = errors.New("window creation failed")

	// ErrResourceAllocationFailed means a native icon or cursor object could
	// not be constructed or installed.
	ErrResourceAllocationFailed = errors.New("resource allocation failed")

	// ErrUnsupportedPlatform is returned by New on systems without a backend.
	ErrUnsupportedPlatform = errors.New("no windowing backend for this platform")
)

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// StyleFlags selects window decorations.
type StyleFlags uint

const (
	StyleTitled StyleFlags = 1 << iota
	StyleClosable
	StyleMiniaturizable
	StyleResizable
)

// StyleStandard is a decorated, resizable top-level window.
const StyleStandard = StyleTitled | StyleClosable | StyleMiniaturizable | StyleResizable

var styleNames = []struct {
	flag StyleFlags
	name string
}{
	{StyleTitled, "titled"},
	{StyleClosable, "closable"},
	{StyleMiniaturizable, "miniaturizable"},
	{StyleResizable, "resizable"},
}

// ParseStyle maps a style name to its flag.
func ParseStyle(name string) (StyleFlags, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, s := range styleNames {
		if s.name == name {
			return s.flag, true
		}
	}
	return 0, false
}

// Has reports whether all bits of f are set.
func (s StyleFlags) Has(f StyleFlags) bool { return s&f == f }

func (s StyleFlags) String() string {
	var parts []string
	for _, n := range styleNames {
		if s.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	if len(parts) == 0 {
		return "borderless"
	}
	return strings.Join(parts, "|")
}

// WindowOptions describes the window created at startup.
type WindowOptions struct {
	Title  string
	Bounds Rect
	Style  StyleFlags
}

// SystemCursor names a stock cursor provided by the windowing system.
type SystemCursor int

const (
	SystemArrow SystemCursor = iota
	SystemIBeam
	SystemWait
)

func (c SystemCursor) String() string {
	switch c {
	case SystemArrow:
		return "arrow"
	case SystemIBeam:
		return "ibeam"
	case SystemWait:
		return "wait"
	}
	return "unknown"
}

// EventKind is the backend-neutral classification of a native event.
type EventKind int

const (
	EventOther EventKind = iota
	EventPrimaryPress
	EventPrimaryRelease
	EventSecondaryRelease
	EventCloseRequested
	EventKeyPress
	EventKeyRelease
)

func (k EventKind) String() string {
	switch k {
	case EventPrimaryPress:
		return "primary-press"
	case EventPrimaryRelease:
		return "primary-release"
	case EventSecondaryRelease:
		return "secondary-release"
	case EventCloseRequested:
		return "close-requested"
	case EventKeyPress:
		return "key-press"
	case EventKeyRelease:
		return "key-release"
	}
	return "other"
}

// Event is one translated native event. Native carries the backend's own
// event value so Dispatch can forward it to default processing.
type Event struct {
	Kind   EventKind
	Native any
}

// Window is a native top-level window. Implementations are bound to the
// thread that created them and are not safe for concurrent use.
type Window interface {
	// SetIcon installs the window/taskbar/dock icon, releasing any icon it
	// replaces.
	SetIcon(img *icon.NativeImage) error
	// SetCursor installs a custom cursor image with the given hotspot,
	// releasing any cursor it replaces.
	SetCursor(img *icon.NativeImage, hotspot image.Point) error
	// SetSystemCursor installs a stock cursor, releasing any cursor it
	// replaces.
	SetSystemCursor(c SystemCursor) error
	// BeginIteration acquires per-iteration native scope. The returned func
	// must be called when the iteration ends.
	BeginIteration() func()
	// NextEvent blocks until the next native event arrives.
	NextEvent() (Event, error)
	// Dispatch forwards ev to the native default processing.
	Dispatch(ev Event)
	// Destroy releases the window, icon and cursor. Calling it twice is safe.
	Destroy() error
}

// Backend abstracts window-system operations across platforms. One variant
// is compiled in per target OS.
type Backend interface {
	Kind() icon.Kind
	CreateWindow(opts WindowOptions) (Window, error)
	Close() error
}

// BackendOptions configures New.
type BackendOptions struct {
	// Display is the X11 display name. Empty uses $DISPLAY. Ignored by
	// other backends.
	Display string
}

// expectFormat rejects images encoded for a different backend or layout.
func expectFormat(img *icon.NativeImage, want icon.Format) error {
	if img == nil {
		return fmt.Errorf("%w: nil image", icon.ErrUnsupportedTarget)
	}
	if img.Format != want {
		return fmt.Errorf("%w: got %s image, backend needs %s", icon.ErrUnsupportedTarget, img.Format, want)
	}
	return nil
}
