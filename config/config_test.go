package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.SavePath != "~/.wayfarer/save.db" {
		t.Fatalf("save path = %q", cfg.SavePath)
	}
	if cfg.WindowWidth != 1280 || cfg.WindowHeight != 720 {
		t.Fatalf("window = %dx%d", cfg.WindowWidth, cfg.WindowHeight)
	}
	if cfg.Debug || cfg.Scene != "" {
		t.Fatalf("unexpected overrides: %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("WAYFARER_SCENE", "forest")
	t.Setenv("WAYFARER_DEBUG", "true")
	t.Setenv("WAYFARER_WINDOW_WIDTH", "800")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Scene != "forest" || !cfg.Debug || cfg.WindowWidth != 800 {
		t.Fatalf("overrides not applied: %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		want  string
	}{
		{"not an int", "WAYFARER_WINDOW_HEIGHT", "tall", "parse env:"},
		{"not a bool", "WAYFARER_DEBUG", "sometimes", "parse env:"},
		{"zero width", "WAYFARER_WINDOW_WIDTH", "0", "must be positive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
}
