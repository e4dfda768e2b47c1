package datasource

import (
	"os"
	"path/filepath"
	"strings"
)

// StatePath resolves where the state database lives. Precedence: the
// REEL_STATE_DB environment variable, then the configured path, then
// XDG_STATE_HOME, then ~/.local/state/reel/recent.db.
func StatePath(configured string) string {
	if p := os.Getenv("REEL_STATE_DB"); p != "" {
		return expandHome(p)
	}
	if configured != "" {
		return expandHome(configured)
	}
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "reel", "recent.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// No home to anchor to; fall back to a dotdir in the cwd.
		return filepath.Join(".reel", "recent.db")
	}
	return filepath.Join(home, ".local", "state", "reel", "recent.db")
}

func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
