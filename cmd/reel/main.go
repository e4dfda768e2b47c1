package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/vanderheijden86/reelgraph/internal/api"
	"github.com/vanderheijden86/reelgraph/internal/datasource"
	"github.com/vanderheijden86/reelgraph/pkg/config"
	"github.com/vanderheijden86/reelgraph/pkg/debug"
	"github.com/vanderheijden86/reelgraph/pkg/explore"
	"github.com/vanderheijden86/reelgraph/pkg/model"
	"github.com/vanderheijden86/reelgraph/pkg/ui"
	"github.com/vanderheijden86/reelgraph/pkg/version"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	help := flag.Bool("help", false, "Show help")
	versionFlag := flag.Bool("version", false, "Show version")
	setupFlag := flag.Bool("setup", false, "Run the interactive setup wizard and exit")
	cfgPathFlag := flag.String("config", "", "Config file path (default: XDG config dir)")
	serviceURL := flag.String("service-url", "", "Recommendation service base URL (overrides REEL_SERVICE_URL and config)")

	robotSearch := flag.String("robot-search", "", "Print the graph for a search query as JSON and exit")
	robotBrowse := flag.String("robot-browse", "", "Print the graph for a browse category as JSON and exit (empty value uses the configured default)")
	robotSimilar := flag.String("robot-similar", "", "Print the similarity neighborhood of a node ID as JSON and exit (requires --type)")
	robotInsightsFlag := flag.Bool("robot-insights", false, "Print structural insights for the default browse category as JSON and exit")

	snapshotPath := flag.String("snapshot", "", "With a --robot-* mode: also render the fetched graph to this .svg or .png path")
	limitFlag := flag.Int("limit", 0, "Max titles per graph fetch (overrides config)")
	depthFlag := flag.Int("depth", 0, "Traversal depth for similarity fetches (overrides config)")
	typeFlag := flag.String("type", "", "Media type filter: movie or series")
	crossMedia := flag.Bool("cross-media", false, "Mix movies and series in browse graphs")
	noCrossMedia := flag.Bool("no-cross-media", false, "Keep browse graphs to a single media type")
	flag.Parse()

	setFlags := map[string]bool{}
	flag.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })

	if *help {
		fmt.Println("Usage: reel [options]")
		fmt.Println("\nA TUI explorer for your media recommendation graph.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *versionFlag {
		fmt.Printf("reel %s\n", version.Version)
		os.Exit(0)
	}

	cfgPath := *cfgPathFlag
	if cfgPath == "" {
		cfgPath = config.ConfigPath()
	}
	cfg, cfgErr := config.LoadFrom(cfgPath)
	if cfgErr != nil {
		if *cfgPathFlag != "" {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", cfgErr)
			os.Exit(1)
		}
		// Non-fatal: continue with defaults
		cfg = config.DefaultConfig()
	}

	if *setupFlag {
		if err := runSetup(cfg, cfgPath); err != nil {
			fmt.Fprintf(os.Stderr, "Setup failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// CLI flags override env vars, env vars override the config file.
	cfg.Service.BaseURL = resolveServiceURL(*serviceURL, os.Getenv("REEL_SERVICE_URL"), cfg.Service.BaseURL)

	cfg, filter, err := applyExploreOverrides(cfg, exploreOverrides{
		limit:        *limitFlag,
		depth:        *depthFlag,
		mediaType:    *typeFlag,
		crossMedia:   *crossMedia,
		noCrossMedia: *noCrossMedia,
		envCross:     os.Getenv("REEL_CROSS_MEDIA"),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	mode, err := robotModes{
		search:   setFlags["robot-search"],
		browse:   setFlags["robot-browse"],
		similar:  setFlags["robot-similar"],
		insights: *robotInsightsFlag,
	}.pick()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if mode == "" && *snapshotPath != "" {
		fmt.Fprintln(os.Stderr, "Error: --snapshot requires one of the --robot-* modes")
		os.Exit(2)
	}

	var opts []api.Option
	if d := cfg.Service.Timeout(); d > 0 {
		opts = append(opts, api.WithTimeout(d))
	}
	client, err := api.New(cfg.Service.BaseURL, opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'reel --setup' to point reel at your recommendation service.")
		os.Exit(1)
	}

	if mode != "" {
		args := robotArgs{
			query:    *robotSearch,
			category: *robotBrowse,
			nodeID:   *robotSimilar,
			filter:   filter,
			snapshot: *snapshotPath,
		}
		if err := runRobot(os.Stdout, client, cfg, mode, args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	// Recent searches persist across runs; the TUI works without them.
	var store explore.RecentStore
	if s, err := datasource.OpenRecentStore(datasource.StatePath(cfg.Recent.Path)); err != nil {
		debug.Log("cmd: recent store unavailable: %v", err)
	} else {
		store = s
		defer s.Close()
	}

	// Only watch a config file that exists, otherwise the watcher would
	// report a missing path on every startup before first --setup.
	watchPath := cfgPath
	if _, err := os.Stat(watchPath); err != nil {
		watchPath = ""
	}

	m := ui.NewModel(cfg, watchPath, client, store)
	if err := runTUIProgram(m); err != nil {
		fmt.Fprintf(os.Stderr, "Error running reel: %v\n", err)
		os.Exit(1)
	}
}

// runSetup walks the huh wizard, health-checks the service, and writes the
// resulting config.
func runSetup(cfg config.Config, path string) error {
	w := config.NewWizard(cfg)
	w.SetPing(pingService)

	out, err := w.Run()
	if err != nil {
		return err
	}

	if path == "" {
		if err := config.Save(out); err != nil {
			return err
		}
		path = config.ConfigPath()
	} else if err := config.SaveTo(out, path); err != nil {
		return err
	}

	fmt.Printf("\nConfig written to %s\n", path)
	fmt.Println("Run 'reel' to start exploring.")
	return nil
}

func pingService(ctx context.Context, baseURL string, timeout time.Duration) error {
	client, err := api.New(baseURL, api.WithTimeout(timeout))
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return client.Health(ctx)
}

// resolveServiceURL applies the base URL precedence: CLI flag over env var,
// env var over config file.
func resolveServiceURL(flagURL, envURL, cfgURL string) string {
	if s := strings.TrimSpace(flagURL); s != "" {
		return s
	}
	if s := strings.TrimSpace(envURL); s != "" {
		return s
	}
	return cfgURL
}

type exploreOverrides struct {
	limit        int
	depth        int
	mediaType    string
	crossMedia   bool
	noCrossMedia bool
	envCross     string
}

// applyExploreOverrides folds CLI flag and env overrides into the explore
// settings and parses the media type filter.
func applyExploreOverrides(cfg config.Config, ov exploreOverrides) (config.Config, model.MediaType, error) {
	if ov.crossMedia && ov.noCrossMedia {
		return cfg, model.MediaAny, errors.New("--cross-media and --no-cross-media are mutually exclusive")
	}
	switch {
	case ov.crossMedia:
		cfg.Explore.CrossMedia = true
	case ov.noCrossMedia:
		cfg.Explore.CrossMedia = false
	case strings.TrimSpace(ov.envCross) != "":
		v := strings.TrimSpace(ov.envCross)
		cfg.Explore.CrossMedia = v == "1" || strings.EqualFold(v, "true")
	}

	if ov.limit > 0 {
		cfg.Explore.Limit = ov.limit
	}
	if ov.depth > 0 {
		cfg.Explore.Depth = ov.depth
	}

	filter, err := model.ParseMediaType(ov.mediaType)
	if err != nil {
		return cfg, model.MediaAny, fmt.Errorf("invalid --type: %w", err)
	}
	return cfg, filter, nil
}

type robotModes struct {
	search, browse, similar, insights bool
}

// pick returns the single requested robot mode, "" when none was asked for,
// or an error when the flags conflict.
func (r robotModes) pick() (string, error) {
	var picked []string
	if r.search {
		picked = append(picked, robotModeSearch)
	}
	if r.browse {
		picked = append(picked, robotModeBrowse)
	}
	if r.similar {
		picked = append(picked, robotModeSimilar)
	}
	if r.insights {
		picked = append(picked, robotModeInsights)
	}
	switch len(picked) {
	case 0:
		return "", nil
	case 1:
		return picked[0], nil
	}
	return "", fmt.Errorf("--robot-%s are mutually exclusive", strings.Join(picked, " and --robot-"))
}

func runTUIProgram(m ui.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	// REEL_TUI_AUTOCLOSE_MS is handled inside the model (ui.AutoCloseCmd).

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
		return nil
	}
	return err
}
