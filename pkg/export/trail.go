package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vanderheijden86/reelgraph/pkg/metrics"
	"github.com/vanderheijden86/reelgraph/pkg/model"
)

// TrailOptions controls trail report generation.
type TrailOptions struct {
	Title        string                  // Report heading; defaults to "Exploration trail"
	Entries      []model.NavigationEntry // Hops taken so far, oldest first
	Current      *model.GraphNode        // Node focused right now, nil outside focus
	Graph        *model.GraphData        // Graph around Current, nil outside focus
	Searches     []string                // Recent search queries, newest first
	DashboardURL string                  // When set, titles link into the dashboard
}

// GenerateTrail renders the exploration trail as a markdown report:
// the hops taken, the node in focus with its connections, and recent
// searches. The output is meant to be pasted into notes or a PR.
func GenerateTrail(opts TrailOptions) (string, error) {
	defer metrics.Timer(metrics.TrailRender)()

	if len(opts.Entries) == 0 && opts.Current == nil && len(opts.Searches) == 0 {
		return "", fmt.Errorf("nothing to report: no trail, focus, or searches")
	}

	title := opts.Title
	if title == "" {
		title = "Exploration trail"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	sb.WriteString(fmt.Sprintf("*Generated: %s*\n\n", time.Now().Format(time.RFC1123)))

	if len(opts.Entries) > 0 || opts.Current != nil {
		sb.WriteString("## Trail\n\n")
		sb.WriteString("| # | Title | Type |\n|---|-------|------|\n")
		for i, e := range opts.Entries {
			sb.WriteString(fmt.Sprintf("| %d | %s | %s |\n",
				i+1, opts.linkTo(e.Title, e.MediaType.Route(e.NodeID)), e.MediaType.Label()))
		}
		if opts.Current != nil {
			sb.WriteString(fmt.Sprintf("| %d | **%s** | %s |\n",
				len(opts.Entries)+1, opts.linkTo(opts.Current.Title, opts.Current.Route()), opts.Current.MediaType.Label()))
		}
		sb.WriteString("\n")
	}

	if opts.Current != nil && opts.Graph != nil && !opts.Graph.IsEmpty() {
		sb.WriteString(fmt.Sprintf("## Now exploring: %s\n\n", opts.Current.Title))

		conns := opts.Graph.Connections(opts.Current.ID)
		if len(conns) > 0 {
			sb.WriteString("| Connected title | Type | Via | Weight |\n|-----------------|------|-----|--------|\n")
			for _, edge := range conns {
				neighbor := opts.Graph.NodeByID(edge.Other(opts.Current.ID))
				if neighbor == nil {
					continue
				}
				weight := "-"
				if edge.Weight > 0 {
					weight = fmt.Sprintf("%.2f", edge.Weight)
				}
				sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
					opts.linkTo(neighbor.Title, neighbor.Route()), neighbor.MediaType.Label(), edge.Kind.Label(), weight))
			}
			sb.WriteString("\n")
		}

		if counts := opts.Graph.KindCounts(); len(counts) > 0 {
			parts := make([]string, 0, len(counts))
			for _, k := range []model.EdgeKind{model.EdgeSharedGenre, model.EdgeCastOverlap, model.EdgeThematic} {
				if n := counts[k]; n > 0 {
					parts = append(parts, fmt.Sprintf("%d %s", n, k.Label()))
				}
			}
			if len(parts) > 0 {
				sb.WriteString(fmt.Sprintf("Connections: %s.\n\n", strings.Join(parts, ", ")))
			}
		}
	}

	if len(opts.Searches) > 0 {
		sb.WriteString("## Recent searches\n\n")
		for _, q := range opts.Searches {
			sb.WriteString(fmt.Sprintf("- %q\n", q))
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// SaveTrail writes the trail report to path, creating parent
// directories as needed.
func SaveTrail(path string, opts TrailOptions) error {
	if path == "" {
		return fmt.Errorf("output path is required")
	}
	content, err := GenerateTrail(opts)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write trail report: %w", err)
	}
	return nil
}

// linkTo wraps a title in a markdown link when a dashboard URL is
// configured, otherwise returns the bare title.
func (o TrailOptions) linkTo(title, route string) string {
	escaped := strings.NewReplacer("|", "/", "\n", " ").Replace(title)
	if o.DashboardURL == "" || route == "" {
		return escaped
	}
	return fmt.Sprintf("[%s](%s%s)", escaped, strings.TrimRight(o.DashboardURL, "/"), route)
}
