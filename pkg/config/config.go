// Package config handles loading and saving reel configuration.
//
// Configuration follows the XDG Base Directory specification:
//   - Config:  ~/.config/reel/config.yaml
//   - Data:    ~/.local/share/reel/ (graph snapshots, trail reports)
//   - State:   ~/.local/state/reel/ (recent searches)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ServiceConfig points reel at the recommendation service and the dashboard
// web app that node links open in.
type ServiceConfig struct {
	BaseURL        string `yaml:"base_url,omitempty"`
	DashboardURL   string `yaml:"dashboard_url,omitempty"`
	TimeoutSeconds int    `yaml:"timeout_seconds,omitempty"`
}

// Timeout returns the per-request timeout as a duration, or 0 when unset.
func (s ServiceConfig) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// DashboardHref joins a node's detail route onto the dashboard URL.
// Returns "" when either side is missing.
func (s ServiceConfig) DashboardHref(route string) string {
	if route == "" || s.DashboardURL == "" {
		return ""
	}
	return strings.TrimRight(s.DashboardURL, "/") + route
}

// ExploreConfig holds the graph fetch defaults.
type ExploreConfig struct {
	Limit           int    `yaml:"limit,omitempty"`            // Max nodes per graph fetch
	Depth           int    `yaml:"depth,omitempty"`            // Traversal depth for focused fetches
	CrossMedia      bool   `yaml:"cross_media,omitempty"`      // Mix movies and series in browse graphs
	DefaultCategory string `yaml:"default_category,omitempty"` // Category opened by --robot-browse with no argument
}

// RecentConfig controls recent-search persistence.
type RecentConfig struct {
	Path string `yaml:"path,omitempty"` // State database path; empty means the XDG default
}

// UIConfig holds UI preference settings.
type UIConfig struct {
	Theme         string `yaml:"theme,omitempty"`          // dark, light, auto
	ReducedMotion bool   `yaml:"reduced_motion,omitempty"` // Slow the loading readout refresh
	HideLegend    bool   `yaml:"hide_legend,omitempty"`    // Drop the edge-kind legend from the graph panel
}

// Config is the top-level configuration for reel.
type Config struct {
	Service ServiceConfig `yaml:"service,omitempty"`
	Explore ExploreConfig `yaml:"explore,omitempty"`
	Recent  RecentConfig  `yaml:"recent,omitempty"`
	UI      UIConfig      `yaml:"ui,omitempty"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Service: ServiceConfig{
			BaseURL:        "http://localhost:3000",
			DashboardURL:   "http://localhost:5173",
			TimeoutSeconds: 10,
		},
		Explore: ExploreConfig{
			Limit:           12,
			Depth:           1,
			DefaultCategory: "my-movie-picks",
		},
		UI: UIConfig{
			Theme: "auto",
		},
	}
}

// ConfigDir returns the XDG config directory for reel.
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "reel")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "reel")
}

// DataDir returns the XDG data directory for reel.
func DataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "reel")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "share", "reel")
}

// StateDir returns the XDG state directory for reel.
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "reel")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local", "state", "reel")
}

// ConfigPath returns the full path to config.yaml.
func ConfigPath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// Load reads the config file from the XDG config directory.
// Returns DefaultConfig if the file doesn't exist.
func Load() (Config, error) {
	path := ConfigPath()
	if path == "" {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads config from a specific path.
// Returns DefaultConfig if the file doesn't exist.
func LoadFrom(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Recent.Path = expandHome(cfg.Recent.Path)

	return cfg, nil
}

// Save writes the config to the XDG config directory.
func Save(cfg Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(cfg, path)
}

// SaveTo writes the config to a specific path.
func SaveTo(cfg Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
