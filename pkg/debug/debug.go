// Package debug provides conditional debug logging for reel.
//
// Debug logging is enabled by setting the REEL_DEBUG environment variable:
//
//	REEL_DEBUG=1 reel --robot-search "heist thriller"
//
// Messages go to stderr with timestamps. While the TUI owns the terminal,
// stderr writes would corrupt the display, so REEL_DEBUG_FILE redirects the
// log to a file instead:
//
//	REEL_DEBUG=1 REEL_DEBUG_FILE=/tmp/reel.log reel
//
// When disabled (default), all debug functions are no-ops with zero overhead.
//
// Usage:
//
//	import "github.com/vanderheijden86/reelgraph/pkg/debug"
//
//	func myFunc() {
//	    debug.Log("fetching %d nodes", limit)
//	    // ...
//	    debug.LogTiming("myFunc", elapsed)
//	}
package debug

import (
	"log"
	"os"
	"time"
)

var (
	// enabled is true when the REEL_DEBUG env var is set
	enabled bool
	// logger writes to stderr or REEL_DEBUG_FILE with a [REEL] prefix
	logger *log.Logger
)

func init() {
	if os.Getenv("REEL_DEBUG") == "" {
		return
	}
	enabled = true
	logger = newLogger()
}

func newLogger() *log.Logger {
	out := os.Stderr
	if path := os.Getenv("REEL_DEBUG_FILE"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err == nil {
			out = f
		}
	}
	return log.New(out, "[REEL] ", log.Ltime|log.Lmicroseconds)
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	return enabled
}

// SetEnabled allows programmatic control of debug logging.
func SetEnabled(e bool) {
	enabled = e
	if e && logger == nil {
		logger = newLogger()
	}
}

// Log writes a debug message if debug logging is enabled.
// Uses printf-style formatting.
func Log(format string, args ...any) {
	if !enabled {
		return
	}
	logger.Printf(format, args...)
}

// LogTiming writes a timing message if debug logging is enabled.
func LogTiming(name string, d time.Duration) {
	if !enabled {
		return
	}
	logger.Printf("%s took %v", name, d)
}

// LogFunc returns a function that logs a debug message when called.
// Useful for deferred logging:
//
//	defer debug.LogFunc("myFunc done")()
func LogFunc(msg string) func() {
	if !enabled {
		return func() {}
	}
	return func() {
		logger.Print(msg)
	}
}

// LogEnterExit logs function entry and exit with timing.
// Usage:
//
//	func myFunc() {
//	    defer debug.LogEnterExit("myFunc")()
//	    // ...
//	}
func LogEnterExit(name string) func() {
	if !enabled {
		return func() {}
	}
	logger.Printf("-> %s", name)
	start := time.Now()
	return func() {
		logger.Printf("<- %s (%v)", name, time.Since(start))
	}
}

// Trace is an alias for LogEnterExit for convenience.
var Trace = LogEnterExit

// Dump logs a value with its type for debugging complex structures.
func Dump(name string, v any) {
	if !enabled {
		return
	}
	logger.Printf("%s: %T = %+v", name, v, v)
}

// Section logs a section header for visual organization in debug output.
func Section(name string) {
	if !enabled {
		return
	}
	logger.Printf("=== %s ===", name)
}
