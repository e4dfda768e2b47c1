package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Service.BaseURL != "http://localhost:3000" {
		t.Errorf("expected default base URL 'http://localhost:3000', got %q", cfg.Service.BaseURL)
	}
	if cfg.Service.DashboardURL != "http://localhost:5173" {
		t.Errorf("expected default dashboard URL 'http://localhost:5173', got %q", cfg.Service.DashboardURL)
	}
	if cfg.Explore.Limit != 12 {
		t.Errorf("expected limit 12, got %d", cfg.Explore.Limit)
	}
	if cfg.Explore.Depth != 1 {
		t.Errorf("expected depth 1, got %d", cfg.Explore.Depth)
	}
	if cfg.Explore.DefaultCategory != "my-movie-picks" {
		t.Errorf("expected default category 'my-movie-picks', got %q", cfg.Explore.DefaultCategory)
	}
	if cfg.UI.Theme != "auto" {
		t.Errorf("expected theme 'auto', got %q", cfg.UI.Theme)
	}
}

func TestServiceTimeout(t *testing.T) {
	s := ServiceConfig{TimeoutSeconds: 25}
	if got := s.Timeout(); got != 25*time.Second {
		t.Errorf("expected 25s, got %v", got)
	}

	s = ServiceConfig{}
	if got := s.Timeout(); got != 0 {
		t.Errorf("expected 0 for unset timeout, got %v", got)
	}

	s = ServiceConfig{TimeoutSeconds: -3}
	if got := s.Timeout(); got != 0 {
		t.Errorf("expected 0 for negative timeout, got %v", got)
	}
}

func TestDashboardHref(t *testing.T) {
	tests := []struct {
		dashboard string
		route     string
		expected  string
	}{
		{"http://localhost:5173", "/movies/m-1", "http://localhost:5173/movies/m-1"},
		{"http://localhost:5173/", "/series/s-9", "http://localhost:5173/series/s-9"},
		{"http://localhost:5173", "", ""},
		{"", "/movies/m-1", ""},
	}

	for _, tt := range tests {
		s := ServiceConfig{DashboardURL: tt.dashboard}
		if got := s.DashboardHref(tt.route); got != tt.expected {
			t.Errorf("DashboardHref(%q) with base %q = %q, want %q", tt.route, tt.dashboard, got, tt.expected)
		}
	}
}

func TestLoadFrom_NonExistent(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("expected no error for missing file, got: %v", err)
	}
	if cfg.Explore.Limit != 12 {
		t.Errorf("expected default config, got limit %d", cfg.Explore.Limit)
	}
}

func TestLoadFrom_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
service:
  base_url: https://media.example.net
  dashboard_url: https://watch.example.net
  timeout_seconds: 30

explore:
  limit: 20
  depth: 2
  cross_media: true
  default_category: hidden-gems

recent:
  path: ~/state/reel.db

ui:
  theme: dark
  reduced_motion: true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Service.BaseURL != "https://media.example.net" {
		t.Errorf("expected base_url 'https://media.example.net', got %q", cfg.Service.BaseURL)
	}
	if cfg.Service.TimeoutSeconds != 30 {
		t.Errorf("expected timeout_seconds 30, got %d", cfg.Service.TimeoutSeconds)
	}
	if cfg.Explore.Limit != 20 {
		t.Errorf("expected limit 20, got %d", cfg.Explore.Limit)
	}
	if cfg.Explore.Depth != 2 {
		t.Errorf("expected depth 2, got %d", cfg.Explore.Depth)
	}
	if !cfg.Explore.CrossMedia {
		t.Error("expected cross_media true")
	}
	if cfg.Explore.DefaultCategory != "hidden-gems" {
		t.Errorf("expected default_category 'hidden-gems', got %q", cfg.Explore.DefaultCategory)
	}

	// Recent path should have ~ expanded
	home, _ := os.UserHomeDir()
	expectedPath := filepath.Join(home, "state/reel.db")
	if cfg.Recent.Path != expectedPath {
		t.Errorf("expected expanded path %q, got %q", expectedPath, cfg.Recent.Path)
	}

	if cfg.UI.Theme != "dark" {
		t.Errorf("expected theme 'dark', got %q", cfg.UI.Theme)
	}
	if !cfg.UI.ReducedMotion {
		t.Error("expected reduced_motion true")
	}
}

func TestLoadFrom_PartialConfigKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := `
explore:
  limit: 8
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Explore.Limit != 8 {
		t.Errorf("expected limit 8, got %d", cfg.Explore.Limit)
	}
	if cfg.Service.BaseURL != "http://localhost:3000" {
		t.Errorf("expected default base URL preserved, got %q", cfg.Service.BaseURL)
	}
	if cfg.Explore.DefaultCategory != "my-movie-picks" {
		t.Errorf("expected default category preserved, got %q", cfg.Explore.DefaultCategory)
	}
}

func TestLoadFrom_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	if err := os.WriteFile(path, []byte("{{invalid yaml"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFrom(path)
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := Config{
		Service: ServiceConfig{
			BaseURL:        "http://localhost:9000",
			DashboardURL:   "http://localhost:9001",
			TimeoutSeconds: 5,
		},
		Explore: ExploreConfig{
			Limit:           16,
			Depth:           3,
			CrossMedia:      true,
			DefaultCategory: "top-series",
		},
		Recent: RecentConfig{Path: "/var/lib/reel/recent.db"},
		UI:     UIConfig{Theme: "light", HideLegend: true},
	}

	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load after save failed: %v", err)
	}

	if loaded.Service.BaseURL != "http://localhost:9000" {
		t.Errorf("expected 'http://localhost:9000', got %q", loaded.Service.BaseURL)
	}
	if loaded.Explore.Limit != 16 {
		t.Errorf("expected limit 16, got %d", loaded.Explore.Limit)
	}
	if !loaded.Explore.CrossMedia {
		t.Error("expected cross_media preserved")
	}
	if loaded.Recent.Path != "/var/lib/reel/recent.db" {
		t.Errorf("expected recent path preserved, got %q", loaded.Recent.Path)
	}
	if loaded.UI.Theme != "light" {
		t.Errorf("expected 'light', got %q", loaded.UI.Theme)
	}
	if !loaded.UI.HideLegend {
		t.Error("expected hide_legend preserved")
	}
}

func TestSaveTo_CreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deeper", "config.yaml")

	if err := SaveTo(DefaultConfig(), path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected config file to exist: %v", err)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home dir")
	}

	tests := []struct {
		input    string
		expected string
	}{
		{"~/foo", filepath.Join(home, "foo")},
		{"~/", filepath.Join(home, "")},
		{"/absolute", "/absolute"},
		{"relative", "relative"},
		{"", ""},
	}

	for _, tt := range tests {
		got := expandHome(tt.input)
		if got != tt.expected {
			t.Errorf("expandHome(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestConfigDir_XDGOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	got := ConfigDir()
	expected := filepath.Join(dir, "reel")
	if got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestDataDir_XDGOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dir)

	got := DataDir()
	expected := filepath.Join(dir, "reel")
	if got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}

func TestStateDir_XDGOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_STATE_HOME", dir)

	got := StateDir()
	expected := filepath.Join(dir, "reel")
	if got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}
