package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/vanderheijden86/reelgraph/pkg/metrics"
	"github.com/vanderheijden86/reelgraph/pkg/model"
)

// MediaDetail is the full record for one title. Synopsis is Markdown as
// served by the dashboard backend.
type MediaDetail struct {
	ID        string          `json:"id"`
	MediaType model.MediaType `json:"mediaType"`
	Title     string          `json:"title"`
	Year      int             `json:"year,omitempty"`
	Genres    []string        `json:"genres,omitempty"`
	Rating    float64         `json:"rating,omitempty"`
	Cast      []string        `json:"cast,omitempty"`
	Synopsis  string          `json:"synopsis,omitempty"`
}

// Detail fetches the full record for one title.
func (c *Client) Detail(ctx context.Context, mt model.MediaType, id string) (*MediaDetail, error) {
	defer metrics.Timer(metrics.DetailFetch)()

	if !mt.Valid() {
		return nil, fmt.Errorf("api: Detail: media type %q", mt)
	}
	if id == "" {
		return nil, fmt.Errorf("api: Detail: empty id")
	}

	path := "/api/media/" + string(mt) + "/" + url.PathEscape(id)
	var d MediaDetail
	if err := c.getJSON(ctx, path, nil, &d); err != nil {
		return nil, fmt.Errorf("api: Detail: %w", err)
	}
	if d.ID == "" {
		d.ID = id
	}
	if d.MediaType == model.MediaAny {
		d.MediaType = mt
	}
	return &d, nil
}
