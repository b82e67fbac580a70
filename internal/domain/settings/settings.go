// Package settings loads desktop layout tunables from a TOML file and
// translates them into window manager configuration.
package settings

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/glasspane/webtop/internal/domain/wm"
)

// Settings holds user-tunable desktop preferences. Zero values fall
// back to the built-in layout defaults.
type Settings struct {
	Wallpaper string `toml:"wallpaper"`
	Theme     string `toml:"theme"`
	Layout    Layout `toml:"layout"`
}

// Layout overrides individual window layout constants.
type Layout struct {
	Margin        int `toml:"margin"`
	TaskbarHeight int `toml:"taskbar_height"`
	MinWidth      int `toml:"min_width"`
	MinHeight     int `toml:"min_height"`
	CascadeStep   int `toml:"cascade_step"`
	DefaultWidth  int `toml:"default_width"`
	DefaultHeight int `toml:"default_height"`
}

// Default returns the stock desktop settings.
func Default() *Settings {
	return &Settings{
		Wallpaper: "default.jpg",
		Theme:     "light",
	}
}

// Load reads settings from a TOML file. An empty path or a missing
// file yields the defaults; a malformed file is an error.
func Load(path string) (*Settings, error) {
	s := Default()
	if path == "" {
		return s, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read settings: %w", err)
	}

	if err := toml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	return s, nil
}

// Save writes settings back to disk as TOML.
func Save(path string, s *Settings) error {
	data, err := toml.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// WindowConfig applies layout overrides on top of the stock window
// manager configuration. Zero-valued fields keep the defaults.
func (s *Settings) WindowConfig() wm.Config {
	cfg := wm.DefaultConfig()
	if s.Layout.Margin > 0 {
		cfg.Margin = s.Layout.Margin
	}
	if s.Layout.TaskbarHeight > 0 {
		cfg.TaskbarHeight = s.Layout.TaskbarHeight
	}
	if s.Layout.MinWidth > 0 {
		cfg.MinWidth = s.Layout.MinWidth
	}
	if s.Layout.MinHeight > 0 {
		cfg.MinHeight = s.Layout.MinHeight
	}
	if s.Layout.CascadeStep > 0 {
		cfg.CascadeStep = s.Layout.CascadeStep
	}
	if s.Layout.DefaultWidth > 0 {
		cfg.DefaultWidth = s.Layout.DefaultWidth
	}
	if s.Layout.DefaultHeight > 0 {
		cfg.DefaultHeight = s.Layout.DefaultHeight
	}
	return cfg
}
