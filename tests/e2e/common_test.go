package main_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

var reelBinaryPath string
var reelBinaryDir string

var (
	scriptTUISupported      = true
	scriptTUIDisabledReason string
)

func TestMain(m *testing.M) {
	// Prevent any test from accidentally opening a browser
	os.Setenv("REEL_NO_BROWSER", "1")
	os.Setenv("REEL_TEST_MODE", "1")

	// Build the binary once for all tests
	if err := buildReelOnce(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build reel binary: %v\n", err)
		os.Exit(1)
	}

	scriptTUISupported, scriptTUIDisabledReason = detectScriptTUICapability(reelBinaryPath)

	code := m.Run()
	if reelBinaryDir != "" {
		_ = os.RemoveAll(reelBinaryDir)
	}
	os.Exit(code)
}

func buildReelOnce() error {
	tempDir, err := os.MkdirTemp("", "reel-e2e-build-*")
	if err != nil {
		return err
	}
	reelBinaryDir = tempDir

	binName := "reel"
	if runtime.GOOS == "windows" {
		binName += ".exe"
	}
	binPath := filepath.Join(tempDir, binName)

	cmd := exec.Command("go", "build", "-o", binPath, "../../cmd/reel")
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("go build failed: %v\n%s", err, out)
	}

	reelBinaryPath = binPath
	return nil
}

// buildReelBinary returns the path to the pre-built binary.
func buildReelBinary(t *testing.T) string {
	t.Helper()
	if reelBinaryPath == "" {
		t.Fatal("reel binary not built")
	}
	return reelBinaryPath
}

// xdgEnv returns environment overrides that isolate the child process from
// the developer's real config, data, and state directories.
func xdgEnv(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()
	return []string{
		"XDG_CONFIG_HOME=" + filepath.Join(dir, "config"),
		"XDG_DATA_HOME=" + filepath.Join(dir, "data"),
		"XDG_STATE_HOME=" + filepath.Join(dir, "state"),
	}
}

// Canned service payloads in the dashboard backend's wire shape.
const (
	healthJSON = `{"status":"ok"}`

	searchGraphJSON = `{"graph":{
		"nodes":[
			{"id":"m1","mediaType":"movie","title":"Static Harbor"},
			{"id":"m2","mediaType":"movie","title":"Paper Comet"},
			{"id":"s1","mediaType":"series","title":"Echo District"}
		],
		"edges":[
			{"source":"m1","target":"m2","kind":"sharedGenre","weight":0.6},
			{"source":"m2","target":"s1","kind":"thematicCluster","weight":0.5}
		]}}`

	browseGraphJSON = `{"graph":{
		"nodes":[
			{"id":"m1","mediaType":"movie","title":"Static Harbor"},
			{"id":"s1","mediaType":"series","title":"Echo District"}
		],
		"edges":[
			{"source":"m1","target":"s1","kind":"castOverlap","weight":0.8}
		]}}`

	similarGraphJSON = `{"graph":{
		"nodes":[
			{"id":"m1","mediaType":"movie","title":"Static Harbor","isCenter":true},
			{"id":"m2","mediaType":"movie","title":"Paper Comet"}
		],
		"edges":[
			{"source":"m1","target":"m2","kind":"sharedGenre","weight":0.5}
		]}}`
)

// startStubService runs an in-process recommendation service that answers
// the endpoints the reel binary fetches from.
func startStubService(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	serve := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, body)
		}
	}
	mux.HandleFunc("/api/health", serve(healthJSON))
	mux.HandleFunc("/api/similarity/search", serve(searchGraphJSON))
	mux.HandleFunc("/api/similarity/nodes/", serve(similarGraphJSON))
	mux.HandleFunc("/api/recommendations/", serve(browseGraphJSON))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func detectScriptTUICapability(reelPath string) (bool, string) {
	if _, err := exec.LookPath("script"); err != nil {
		return false, "script command not available"
	}
	if runtime.GOOS != "linux" && runtime.GOOS != "darwin" {
		return false, "script TUI harness unsupported on this OS"
	}
	if reelPath == "" {
		return false, "reel binary path is empty"
	}

	tempDir, err := os.MkdirTemp("", "reel-e2e-tui-cap-*")
	if err != nil {
		return false, fmt.Sprintf("failed to create temp dir: %v", err)
	}
	defer func() { _ = os.RemoveAll(tempDir) }()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	cmd := scriptTUICommand(ctx, reelPath)
	if cmd == nil {
		return false, "script command unavailable"
	}
	cmd.Dir = tempDir
	cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"REEL_TUI_AUTOCLOSE_MS=250",
		"XDG_CONFIG_HOME="+filepath.Join(tempDir, "config"),
		"XDG_DATA_HOME="+filepath.Join(tempDir, "data"),
		"XDG_STATE_HOME="+filepath.Join(tempDir, "state"),
	)

	outFile := filepath.Join(tempDir, "script.out")
	f, err := os.Create(outFile)
	if err != nil {
		return false, fmt.Sprintf("failed to create output file: %v", err)
	}
	cmd.Stdout = f
	cmd.Stderr = f

	runErr := cmd.Run()
	_ = f.Close()

	if ctx.Err() == context.DeadlineExceeded {
		return false, "reel did not auto-exit under script (PTY/CI mismatch)"
	}
	if runErr != nil {
		return false, fmt.Sprintf("script TUI run failed: %v", runErr)
	}

	return true, ""
}

// skipIfNoScript skips the test if the script command is unavailable.
func skipIfNoScript(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("script"); err != nil {
		t.Skip("skipping: script command not available")
	}
	if !scriptTUISupported {
		if scriptTUIDisabledReason != "" {
			t.Skipf("skipping: %s", scriptTUIDisabledReason)
		}
		t.Skip("skipping: script-based TUI harness unavailable")
	}
}

// scriptTUICommand creates an exec.Cmd that runs the reel binary under
// `script` to provide a pseudo-TTY for TUI tests.
func scriptTUICommand(ctx context.Context, reelPath string, args ...string) *exec.Cmd {
	if _, err := exec.LookPath("script"); err != nil {
		return nil
	}

	switch runtime.GOOS {
	case "darwin":
		scriptArgs := []string{"-q", "/dev/null", reelPath}
		scriptArgs = append(scriptArgs, args...)
		return exec.CommandContext(ctx, "script", scriptArgs...)

	case "linux":
		cmdStr := reelPath
		for _, arg := range args {
			if strings.ContainsAny(arg, " \t") {
				cmdStr += " \"" + arg + "\""
			} else {
				cmdStr += " " + arg
			}
		}
		return exec.CommandContext(ctx, "script", "-q", "-e", "-f", "-c", cmdStr, "/dev/null")

	default:
		return nil
	}
}

// ensureCmdStdinCloses wires a controllable stdin for command execution.
func ensureCmdStdinCloses(t *testing.T, ctx context.Context, cmd *exec.Cmd, closeAfter time.Duration) {
	t.Helper()
	if cmd == nil || cmd.Stdin != nil {
		return
	}
	stdinR, stdinW := io.Pipe()
	cmd.Stdin = stdinR
	t.Cleanup(func() {
		_ = stdinW.Close()
		_ = stdinR.Close()
	})

	go func() {
		select {
		case <-ctx.Done():
			_ = stdinW.Close()
		case <-time.After(closeAfter):
			_ = stdinW.Close()
		}
	}()
}

// runCmdToFile runs a command and captures stdout+stderr to a temp file.
func runCmdToFile(t *testing.T, cmd *exec.Cmd) ([]byte, error) {
	t.Helper()
	if cmd == nil {
		return nil, fmt.Errorf("nil cmd")
	}

	outPath := filepath.Join(t.TempDir(), "cmd.out")
	f, err := os.Create(outPath)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	cmd.Stdout = f
	cmd.Stderr = f

	runErr := cmd.Run()
	_ = f.Close()

	out, readErr := os.ReadFile(outPath)
	if readErr != nil {
		return nil, fmt.Errorf("read output file: %w (run err: %v)", readErr, runErr)
	}
	return out, runErr
}
