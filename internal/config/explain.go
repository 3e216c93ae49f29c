package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Explain returns the effective value at a dotted YAML path and the source
// that set it.
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	parts := strings.Split(path, ".")
	leaf := func(v any) (any, error) {
		if len(parts) != 1 {
			return nil, fmt.Errorf("unknown path: %s", path)
		}
		return v, nil
	}
	switch parts[0] {
	case "title":
		return leaf(cfg.Title)
	case "x":
		return leaf(cfg.X)
	case "y":
		return leaf(cfg.Y)
	case "width":
		return leaf(cfg.Width)
	case "height":
		return leaf(cfg.Height)
	case "style":
		return leaf(cfg.Style)
	case "key_policy":
		return leaf(cfg.KeyPolicy)
	case "display":
		return leaf(cfg.Display)
	case "hotspot":
		if len(parts) == 1 {
			return cfg.Hotspot, nil
		}
		if len(parts) == 2 {
			switch parts[1] {
			case "x":
				return cfg.Hotspot.X, nil
			case "y":
				return cfg.Hotspot.Y, nil
			}
		}
	case "icon":
		if len(parts) == 1 {
			if cfg.Icon == nil {
				return "builtin", nil
			}
			return *cfg.Icon, nil
		}
		if cfg.Icon == nil {
			return nil, fmt.Errorf("icon is not configured")
		}
		if len(parts) == 2 {
			switch parts[1] {
			case "width":
				return cfg.Icon.Width, nil
			case "height":
				return cfg.Icon.Height, nil
			case "pixels":
				return cfg.Icon.Pixels, nil
			}
		}
	case "logging":
		if len(parts) == 1 {
			return cfg.Logging, nil
		}
		if len(parts) == 2 {
			switch parts[1] {
			case "level":
				return cfg.Logging.Level, nil
			case "file":
				return cfg.Logging.File, nil
			}
		}
	}
	return nil, fmt.Errorf("unknown path: %s", path)
}

// Marshal renders the effective config as YAML.
func Marshal(cfg *Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// SaveTo validates cfg and writes it to path, creating the parent
// directory. An empty path writes to DefaultConfigPath. Includes are not
// preserved; the file receives the merged effective values.
func SaveTo(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if path == "" {
		p, err := DefaultConfigPath()
		if err != nil {
			return err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
