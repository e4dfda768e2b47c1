package api

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/reelgraph/pkg/explore"
	"github.com/vanderheijden86/reelgraph/pkg/model"
)

// FocusBundle pairs a node-centered similarity graph with the center's full
// record, the two fetches the detail overlay and the robot similar command
// need together.
type FocusBundle struct {
	Graph  *model.GraphData `json:"graph"`
	Detail *MediaDetail     `json:"detail"`
}

// FetchFocusBundle fetches the similarity graph and the center's detail
// record concurrently. Either failing fails the bundle; a canceled context
// aborts the surviving fetch.
func (c *Client) FetchFocusBundle(ctx context.Context, p explore.FocusParams) (*FocusBundle, error) {
	g, ctx := errgroup.WithContext(ctx)
	b := &FocusBundle{}

	g.Go(func() error {
		graph, err := c.SimilarGraph(ctx, p)
		if err != nil {
			return err
		}
		b.Graph = graph
		return nil
	})
	g.Go(func() error {
		detail, err := c.Detail(ctx, p.MediaType, p.NodeID)
		if err != nil {
			return err
		}
		b.Detail = detail
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return b, nil
}
