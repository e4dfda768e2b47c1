package main_test

import (
	"context"
	"io"
	"os"
	"testing"
	"time"
)

// TestTUIExploreSmoke launches the TUI briefly to ensure it initializes and
// exits cleanly. REEL_TUI_AUTOCLOSE_MS keeps it from hanging in CI.
func TestTUIExploreSmoke(t *testing.T) {
	skipIfNoScript(t)
	reel := buildReelBinary(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cmd := scriptTUICommand(ctx, reel)
	cmd.Dir = t.TempDir()
	cmd.Env = append(os.Environ(), xdgEnv(t)...)
	cmd.Env = append(cmd.Env,
		"TERM=xterm-256color",
		"REEL_TUI_AUTOCLOSE_MS=1500",
	)

	ensureCmdStdinCloses(t, ctx, cmd, 3*time.Second)
	out, err := runCmdToFile(t, cmd)
	if ctx.Err() == context.DeadlineExceeded {
		t.Skipf("skipping TUI smoke: timed out (likely TTY/OS mismatch); output:\n%s", out)
	}
	if err != nil {
		t.Fatalf("TUI run failed: %v\n%s", err, out)
	}
}

// TestTUISearchKeystrokes drives a search against a stub service while the
// auto-close timer runs, to catch panics and deadlocks in the fetch path.
func TestTUISearchKeystrokes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping keystroke TUI test in short mode")
	}
	skipIfNoScript(t)
	reel := buildReelBinary(t)
	srv := startStubService(t)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	cmd := scriptTUICommand(ctx, reel)
	if cmd == nil {
		t.Skip("skipping: script command not available on this platform")
	}
	cmd.Dir = t.TempDir()
	cmd.Env = append(os.Environ(), xdgEnv(t)...)
	cmd.Env = append(cmd.Env,
		"TERM=xterm-256color",
		"REEL_TUI_AUTOCLOSE_MS=3000",
		"REEL_SERVICE_URL="+srv.URL,
	)

	stdinR, stdinW := io.Pipe()
	cmd.Stdin = stdinR
	t.Cleanup(func() {
		_ = stdinW.Close()
		_ = stdinR.Close()
	})
	// Some `script` implementations keep the pseudo-TTY session open until
	// stdin is closed, even if the child process has exited.
	time.AfterFunc(5*time.Second, func() { _ = stdinW.Close() })

	// Open the search bar, type a query, submit, then wander the graph.
	go func() {
		keys := []string{"/", "noir heist", "\r", "j", "j", "\r", "u"}
		for _, k := range keys {
			select {
			case <-ctx.Done():
				return
			case <-time.After(200 * time.Millisecond):
			}
			if _, err := io.WriteString(stdinW, k); err != nil {
				return
			}
		}
	}()

	out, err := runCmdToFile(t, cmd)
	if ctx.Err() == context.DeadlineExceeded {
		t.Skipf("skipping keystroke TUI test: timed out (likely TTY/OS mismatch); output:\n%s", out)
	}
	if err != nil {
		t.Fatalf("TUI run failed: %v\n%s", err, out)
	}
}
