// This file implements the interactive setup wizard for --setup.
// It walks through service endpoints, explore defaults, and UI preferences,
// then verifies the recommendation service is reachable.
package config

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"

	"github.com/vanderheijden86/reelgraph/pkg/model"
)

// PingFunc checks that the recommendation service at baseURL is reachable.
// The wizard uses it for the final connectivity check; cmd wires it to the
// API client's health endpoint.
type PingFunc func(ctx context.Context, baseURL string, timeout time.Duration) error

// Wizard handles the interactive setup flow.
type Wizard struct {
	cfg  Config
	ping PingFunc
}

// NewWizard creates a setup wizard pre-filled from cfg.
func NewWizard(cfg Config) *Wizard {
	return &Wizard{cfg: cfg}
}

// SetPing installs the service connectivity check. Without one the
// verification step is skipped.
func (w *Wizard) SetPing(ping PingFunc) {
	w.ping = ping
}

// isTerminal checks if stdin is connected to a terminal
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// newForm creates a form with appropriate settings based on TTY detection
func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if !isTerminal() {
		form = form.WithAccessible(true)
	}
	return form
}

// Run executes the interactive wizard flow and returns the collected config.
// The caller is responsible for saving it.
func (w *Wizard) Run() (Config, error) {
	w.printBanner()

	if err := w.collectService(); err != nil {
		return w.cfg, err
	}
	if err := w.collectExplore(); err != nil {
		return w.cfg, err
	}
	if err := w.collectUI(); err != nil {
		return w.cfg, err
	}
	if err := w.checkService(); err != nil {
		return w.cfg, err
	}

	return w.cfg, nil
}

func (w *Wizard) printBanner() {
	fmt.Println("")
	fmt.Println("╔══════════════════════════════════════════════════════════╗")
	fmt.Println("║                  reel → Explore setup                    ║")
	fmt.Println("╠══════════════════════════════════════════════════════════╣")
	fmt.Println("║  This wizard will:                                       ║")
	fmt.Println("║    1. Point reel at your recommendation service           ║")
	fmt.Println("║    2. Set graph fetch defaults                            ║")
	fmt.Println("║    3. Pick UI preferences                                 ║")
	fmt.Println("║                                                          ║")
	fmt.Println("║  Press Ctrl+C anytime to cancel                          ║")
	fmt.Println("╚══════════════════════════════════════════════════════════╝")
	fmt.Println("")
}

func (w *Wizard) collectService() error {
	fmt.Println("Step 1: Service")
	fmt.Println("────────────────────────────")

	form := newForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Recommendation service URL").
				Description("Base URL of the media service API").
				Value(&w.cfg.Service.BaseURL).
				Validate(validateBaseURL),
			huh.NewInput().
				Title("Dashboard URL").
				Description("Web dashboard that node links open in (optional)").
				Value(&w.cfg.Service.DashboardURL).
				Validate(validateOptionalURL),
			huh.NewSelect[int]().
				Title("Request timeout").
				Options(
					huh.NewOption("5 seconds", 5),
					huh.NewOption("10 seconds", 10),
					huh.NewOption("30 seconds", 30),
				).
				Value(&w.cfg.Service.TimeoutSeconds),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	fmt.Println("")
	return nil
}

func (w *Wizard) collectExplore() error {
	fmt.Println("Step 2: Explore Defaults")
	fmt.Println("────────────────────────────")

	categories := make([]huh.Option[string], 0, len(model.Categories()))
	for _, c := range model.Categories() {
		categories = append(categories, huh.NewOption(c.Label(), c.Slug()))
	}

	form := newForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Graph size").
				Description("Max nodes per fetched graph").
				Options(
					huh.NewOption("Small (8 nodes)", 8),
					huh.NewOption("Standard (12 nodes)", 12),
					huh.NewOption("Large (20 nodes)", 20),
				).
				Value(&w.cfg.Explore.Limit),
			huh.NewSelect[int]().
				Title("Traversal depth").
				Description("How many hops a focused graph expands").
				Options(
					huh.NewOption("Direct neighbors only", 1),
					huh.NewOption("Two hops", 2),
				).
				Value(&w.cfg.Explore.Depth),
			huh.NewConfirm().
				Title("Mix movies and series in browse graphs?").
				Value(&w.cfg.Explore.CrossMedia).
				Affirmative("Yes, cross-media").
				Negative("No, keep them apart"),
			huh.NewSelect[string]().
				Title("Default browse category").
				Options(categories...).
				Value(&w.cfg.Explore.DefaultCategory),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	fmt.Println("")
	return nil
}

func (w *Wizard) collectUI() error {
	fmt.Println("Step 3: UI Preferences")
	fmt.Println("────────────────────────────")

	form := newForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Theme").
				Options(
					huh.NewOption("Match terminal (auto)", "auto"),
					huh.NewOption("Dark", "dark"),
					huh.NewOption("Light", "light"),
				).
				Value(&w.cfg.UI.Theme),
			huh.NewConfirm().
				Title("Reduce motion?").
				Description("Slows the animated loading readout").
				Value(&w.cfg.UI.ReducedMotion),
		),
	)

	if err := form.Run(); err != nil {
		return err
	}

	fmt.Println("")
	return nil
}

func (w *Wizard) checkService() error {
	fmt.Println("Step 4: Connectivity Check")
	fmt.Println("────────────────────────────")

	if w.ping == nil {
		fmt.Println("– Skipped (no checker wired)")
		fmt.Println("")
		return nil
	}

	timeout := w.cfg.Service.Timeout()
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := w.ping(ctx, w.cfg.Service.BaseURL, timeout); err != nil {
		fmt.Printf("✗ Service unreachable: %v\n", err)
		fmt.Println("")

		var saveAnyway bool = true
		form := newForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title("Save this configuration anyway?").
					Description("reel will retry the service on launch").
					Value(&saveAnyway).
					Affirmative("Yes, save").
					Negative("No, abort"),
			),
		)
		if err := form.Run(); err != nil {
			return err
		}
		if !saveAnyway {
			return fmt.Errorf("setup aborted: service unreachable")
		}
		fmt.Println("")
		return nil
	}

	fmt.Printf("✓ Service healthy at %s\n", w.cfg.Service.BaseURL)
	fmt.Println("")
	return nil
}

func validateBaseURL(s string) error {
	if s == "" {
		return fmt.Errorf("service URL is required")
	}
	return validateOptionalURL(s)
}

func validateOptionalURL(s string) error {
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("not a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL must start with http:// or https://")
	}
	if u.Host == "" {
		return fmt.Errorf("URL is missing a host")
	}
	return nil
}
