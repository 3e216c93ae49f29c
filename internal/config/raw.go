package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		// Not present.
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawPoint struct {
	X *int `yaml:"x"`
	Y *int `yaml:"y"`
}

type RawLoggingConfig struct {
	Level *string `yaml:"level"`
	File  *string `yaml:"file"`
}

// RawConfig mirrors Config with every field optional so that merged files
// only override what they set.
type RawConfig struct {
	Include IncludeList `yaml:"include"`

	Title     *string           `yaml:"title"`
	X         *int              `yaml:"x"`
	Y         *int              `yaml:"y"`
	Width     *int              `yaml:"width"`
	Height    *int              `yaml:"height"`
	Style     *[]string         `yaml:"style"`
	KeyPolicy *string           `yaml:"key_policy"`
	Hotspot   *RawPoint         `yaml:"hotspot"`
	Display   *string           `yaml:"display"`
	Icon      *IconConfig       `yaml:"icon"`
	Logging   *RawLoggingConfig `yaml:"logging"`
}

// merge returns r overridden by every field set in o. The icon is replaced
// as a whole.
func (r RawConfig) merge(o RawConfig) RawConfig {
	out := r
	out.Include = nil
	if o.Title != nil {
		out.Title = o.Title
	}
	if o.X != nil {
		out.X = o.X
	}
	if o.Y != nil {
		out.Y = o.Y
	}
	if o.Width != nil {
		out.Width = o.Width
	}
	if o.Height != nil {
		out.Height = o.Height
	}
	if o.Style != nil {
		out.Style = o.Style
	}
	if o.KeyPolicy != nil {
		out.KeyPolicy = o.KeyPolicy
	}
	if o.Hotspot != nil {
		hp := RawPoint{}
		if out.Hotspot != nil {
			hp = *out.Hotspot
		}
		if o.Hotspot.X != nil {
			hp.X = o.Hotspot.X
		}
		if o.Hotspot.Y != nil {
			hp.Y = o.Hotspot.Y
		}
		out.Hotspot = &hp
	}
	if o.Display != nil {
		out.Display = o.Display
	}
	if o.Icon != nil {
		out.Icon = o.Icon
	}
	if o.Logging != nil {
		lc := RawLoggingConfig{}
		if out.Logging != nil {
			lc = *out.Logging
		}
		if o.Logging.Level != nil {
			lc.Level = o.Logging.Level
		}
		if o.Logging.File != nil {
			lc.File = o.Logging.File
		}
		out.Logging = &lc
	}
	return out
}

// BuildEffectiveConfig applies raw on top of DefaultConfig.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()
	if raw.Title != nil {
		cfg.Title = *raw.Title
	}
	if raw.X != nil {
		cfg.X = *raw.X
	}
	if raw.Y != nil {
		cfg.Y = *raw.Y
	}
	if raw.Width != nil {
		cfg.Width = *raw.Width
	}
	if raw.Height != nil {
		cfg.Height = *raw.Height
	}
	if raw.Style != nil {
		cfg.Style = append([]string(nil), (*raw.Style)...)
	}
	if raw.KeyPolicy != nil {
		cfg.KeyPolicy = *raw.KeyPolicy
	}
	if raw.Hotspot != nil {
		if raw.Hotspot.X != nil {
			cfg.Hotspot.X = *raw.Hotspot.X
		}
		if raw.Hotspot.Y != nil {
			cfg.Hotspot.Y = *raw.Hotspot.Y
		}
	}
	if raw.Display != nil {
		cfg.Display = *raw.Display
	}
	if raw.Icon != nil {
		ic := *raw.Icon
		ic.Pixels = append([]string(nil), raw.Icon.Pixels...)
		cfg.Icon = &ic
	}
	if raw.Logging != nil {
		if raw.Logging.Level != nil {
			cfg.Logging.Level = *raw.Logging.Level
		}
		if raw.Logging.File != nil {
			cfg.Logging.File = *raw.Logging.File
		}
	}
	return cfg
}
