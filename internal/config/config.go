package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"

	"gridview/table"
)

// Config mirrors the appearance file at ~/.config/gridview/appearance.toml.
// Every field is optional; unset fields keep the widget defaults.
type Config struct {
	Colors ColorConfig `toml:"colors"`
}

// ColorConfig holds the configurable palette. Row colors are backgrounds,
// header is a foreground.
type ColorConfig struct {
	Header    string `toml:"header"`
	OddRow    string `toml:"odd_row"`
	EvenRow   string `toml:"even_row"`
	Hover     string `toml:"hover"`
	HoverText string `toml:"hover_text"`
}

func defaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "gridview", "appearance.toml"), nil
}

// Load reads the appearance file at path, or the default location when
// path is empty. A missing file is not an error and yields an empty
// config.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := defaultPath()
		if err != nil {
			return &Config{}, err
		}
		path = p
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return &Config{}, nil
		}
		return &Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Styles maps the configured colors onto the widget's style set, keeping
// the defaults for anything unset.
func (c *Config) Styles() table.Styles {
	s := table.DefaultStyles()
	if c.Colors.Header != "" {
		s.Header = s.Header.Foreground(lipgloss.Color(c.Colors.Header))
	}
	if c.Colors.OddRow != "" {
		s.OddRow = s.OddRow.Background(lipgloss.Color(c.Colors.OddRow))
	}
	if c.Colors.EvenRow != "" {
		s.EvenRow = s.EvenRow.Background(lipgloss.Color(c.Colors.EvenRow))
	}
	if c.Colors.Hover != "" {
		s.Hover = s.Hover.Background(lipgloss.Color(c.Colors.Hover))
	}
	if c.Colors.HoverText != "" {
		s.Hover = s.Hover.Foreground(lipgloss.Color(c.Colors.HoverText))
	}
	return s
}
