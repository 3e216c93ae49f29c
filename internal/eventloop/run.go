package eventloop

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/1broseidon/iconwin/internal/cursor"
	"github.com/1broseidon/iconwin/internal/icon"
	"github.com/1broseidon/iconwin/internal/platform"
)

// ErrHotspotOutOfBounds is returned when the cursor hotspot lies outside
// the icon.
var ErrHotspotOutOfBounds = errors.New("cursor hotspot outside icon")

// Options configures Run.
type Options struct {
	Window platform.WindowOptions
	// Icon is the source for both the window icon and the custom cursor.
	// Nil uses icon.Default().
	Icon      *icon.Icon
	Hotspot   image.Point
	KeyPolicy KeyPolicy
}

// Run opens a window on b, installs the icon and custom cursor, pumps events
// until the loop stops and destroys the window on every exit path.
//
// Encoding happens before the window exists so bad pixel data never leaves
// a window on screen. Icon and cursor install failures wrapping
// platform.ErrResourceAllocationFailed are logged and the window runs with
// the system icon or cursor.
func Run(b platform.Backend, opts Options, logger *slog.Logger) (err error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	ic := opts.Icon
	if ic == nil {
		ic = icon.Default()
	}
	hot := opts.Hotspot
	if !hot.In(image.Rect(0, 0, ic.Width(), ic.Height())) {
		return fmt.Errorf("%w: %v not in %dx%d", ErrHotspotOutOfBounds, hot, ic.Width(), ic.Height())
	}
	iconImg, err := icon.Encode(ic, b.Kind(), icon.TargetIcon)
	if err != nil {
		return fmt.Errorf("encode window icon: %w", err)
	}
	cursorImg, err := icon.Encode(ic, b.Kind(), icon.TargetCursor)
	if err != nil {
		return fmt.Errorf("encode cursor: %w", err)
	}
	cursorImg.Hotspot = hot

	win, err := b.CreateWindow(opts.Window)
	if err != nil {
		return err
	}
	logger.Info("window created",
		"backend", b.Kind().String(),
		"title", opts.Window.Title,
		"width", opts.Window.Bounds.Width,
		"height", opts.Window.Bounds.Height,
		"style", opts.Window.Style.String())

	defer func() {
		if derr := win.Destroy(); derr != nil {
			logger.Error("destroy window failed", "error", derr)
			if err == nil {
				err = fmt.Errorf("destroy window: %w", derr)
			}
		}
		logger.Debug("window destroyed")
	}()

	if err := degrade(win.SetIcon(iconImg), "window icon", logger); err != nil {
		return err
	}

	cursors := cursor.NewController(win, cursorImg, hot)
	if err := degrade(cursors.Install(), "custom cursor", logger); err != nil {
		return err
	}

	pump := NewPump(win, cursors, opts.KeyPolicy, logger)
	if err := pump.Run(); err != nil {
		return err
	}
	logger.Info("event loop stopped", "cursor_transitions", len(pump.Transitions()))
	return nil
}

// degrade swallows resource allocation failures after logging them.
func degrade(err error, what string, logger *slog.Logger) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, platform.ErrResourceAllocationFailed) {
		logger.Warn("continuing without "+what, "error", err)
		return nil
	}
	return fmt.Errorf("install %s: %w", what, err)
}
