package main

import (
	"os"
	"strings"
)

// init runs before Bubble Tea acquires the terminal.
//
// In PTY/TTY capture environments, Bubble Tea's startup triggers
// Lipgloss/Termenv background detection, which can emit OSC/DSR control
// sequences to stdout. Those sequences are harmless in a real terminal but
// corrupt robot-mode JSON for parsers reading the pipe. Termenv skips TTY
// probing when CI is set, so robot-mode invocations are marked
// non-interactive early.
func init() {
	if os.Getenv("CI") != "" {
		return
	}

	if !shouldSuppressTTYQueries(os.Args, os.Getenv("REEL_ROBOT") == "1", os.Getenv("REEL_TEST_MODE") != "") {
		return
	}

	_ = os.Setenv("CI", "1")
}

func shouldSuppressTTYQueries(args []string, envRobot, envTest bool) bool {
	if envRobot || envTest {
		return true
	}

	for _, arg := range args {
		if strings.HasPrefix(arg, "--robot-") {
			return true
		}
		switch arg {
		case "--version", "--help":
			return true
		}
	}

	return false
}
