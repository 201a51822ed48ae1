package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Colors.Header != "" {
		t.Errorf("missing file produced colors: %+v", cfg.Colors)
	}
}

func TestLoadAppliesColors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appearance.toml")
	content := `
[colors]
header = "#ff0000"
even_row = "#101010"
hover = "#00ff00"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	s := cfg.Styles()
	if got := s.Header.GetForeground(); got != lipgloss.Color("#ff0000") {
		t.Errorf("header foreground = %v", got)
	}
	if got := s.EvenRow.GetBackground(); got != lipgloss.Color("#101010") {
		t.Errorf("even row background = %v", got)
	}
	if got := s.Hover.GetBackground(); got != lipgloss.Color("#00ff00") {
		t.Errorf("hover background = %v", got)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "appearance.toml")
	if err := os.WriteFile(path, []byte("[colors\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed TOML")
	}
}
