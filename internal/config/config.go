package config

import (
	"fmt"
	"image"
	"log/slog"
	"strings"

	"github.com/1broseidon/iconwin/internal/eventloop"
	"github.com/1broseidon/iconwin/internal/icon"
	"github.com/1broseidon/iconwin/internal/platform"
)

// Point is a pixel coordinate inside the icon.
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// IconConfig replaces the built-in 3x3 icon.
type IconConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// Pixels holds one RRGGBBAA hex string per pixel, row-major.
	Pixels []string `yaml:"pixels"`
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	// Level controls logging verbosity: debug, info, warn, error
	Level string `yaml:"level"`
	// File is the log file path; empty logs to stderr
	File string `yaml:"file,omitempty"`
}

// Config is the effective configuration.
type Config struct {
	Title     string        `yaml:"title"`
	X         int           `yaml:"x"`
	Y         int           `yaml:"y"`
	Width     int           `yaml:"width"`
	Height    int           `yaml:"height"`
	Style     []string      `yaml:"style"`
	KeyPolicy string        `yaml:"key_policy"`
	Hotspot   Point         `yaml:"hotspot"`
	Display   string        `yaml:"display"`
	Icon      *IconConfig   `yaml:"icon,omitempty"`
	Logging   LoggingConfig `yaml:"logging"`
}

// DefaultConfig returns a 200x200 standard decorated window using the
// built-in icon.
func DefaultConfig() *Config {
	return &Config{
		Title:     "iconwin",
		X:         200,
		Y:         200,
		Width:     200,
		Height:    200,
		Style:     []string{"titled", "closable", "resizable", "miniaturizable"},
		KeyPolicy: "quit",
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks every field and returns the first problem as a
// *ValidationError.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return &ValidationError{Path: "title", Err: fmt.Errorf("title is required")}
	}
	if c.Width <= 0 {
		return &ValidationError{Path: "width", Err: fmt.Errorf("width must be > 0")}
	}
	if c.Height <= 0 {
		return &ValidationError{Path: "height", Err: fmt.Errorf("height must be > 0")}
	}
	for i, name := range c.Style {
		if _, ok := platform.ParseStyle(name); !ok {
			return &ValidationError{Path: "style", Err: fmt.Errorf("style[%d] %q must be one of: titled, closable, miniaturizable, resizable", i, name)}
		}
	}
	if _, err := eventloop.ParseKeyPolicy(c.KeyPolicy); err != nil {
		return &ValidationError{Path: "key_policy", Err: err}
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return &ValidationError{Path: "logging.level", Err: err}
	}

	ic, err := c.BuildIcon()
	if err != nil {
		return &ValidationError{Path: "icon", Err: err}
	}
	if c.Hotspot.X < 0 || c.Hotspot.Y < 0 || c.Hotspot.X >= ic.Width() || c.Hotspot.Y >= ic.Height() {
		return &ValidationError{Path: "hotspot", Err: fmt.Errorf("hotspot (%d,%d) must lie inside the %dx%d icon", c.Hotspot.X, c.Hotspot.Y, ic.Width(), ic.Height())}
	}
	return nil
}

// StyleFlags folds the style names into flags. An empty list is a
// borderless window.
func (c *Config) StyleFlags() (platform.StyleFlags, error) {
	var flags platform.StyleFlags
	for _, name := range c.Style {
		f, ok := platform.ParseStyle(name)
		if !ok {
			return 0, fmt.Errorf("unknown style %q", name)
		}
		flags |= f
	}
	return flags, nil
}

// BuildIcon returns the configured icon, or the built-in one when none is
// configured.
func (c *Config) BuildIcon() (*icon.Icon, error) {
	if c.Icon == nil {
		return icon.Default(), nil
	}
	return icon.FromHex(c.Icon.Width, c.Icon.Height, c.Icon.Pixels)
}

// RunOptions converts the config into event loop options.
func (c *Config) RunOptions() (eventloop.Options, error) {
	style, err := c.StyleFlags()
	if err != nil {
		return eventloop.Options{}, err
	}
	policy, err := eventloop.ParseKeyPolicy(c.KeyPolicy)
	if err != nil {
		return eventloop.Options{}, err
	}
	ic, err := c.BuildIcon()
	if err != nil {
		return eventloop.Options{}, err
	}
	return eventloop.Options{
		Window: platform.WindowOptions{
			Title:  c.Title,
			Bounds: platform.Rect{X: c.X, Y: c.Y, Width: c.Width, Height: c.Height},
			Style:  style,
		},
		Icon:      ic,
		Hotspot:   image.Pt(c.Hotspot.X, c.Hotspot.Y),
		KeyPolicy: policy,
	}, nil
}

// ParseLevel maps a level name to a slog level. "warning" is accepted as an
// alias for "warn".
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("level %q must be one of: debug, info, warn, error", s)
}
