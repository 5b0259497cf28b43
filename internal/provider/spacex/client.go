package spacex

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"launchlist/internal/config"
	"launchlist/internal/domain/launch"
	"launchlist/internal/domain/launchpad"
	"launchlist/internal/domain/page"
	"launchlist/internal/provider"
	"launchlist/internal/provider/base"
)

const (
	endpointLaunchesQuery = "v5/launches/query"
	endpointLaunchpads    = "v4/launchpads"
)

// Client talks to the public SpaceX REST API.
type Client struct {
	http *base.HTTPClient
}

var (
	_ provider.LaunchSource    = (*Client)(nil)
	_ provider.LaunchpadSource = (*Client)(nil)
)

// New builds a client from the upstream configuration.
func New(cfg config.UpstreamCfg) *Client {
	return NewWithHTTP(base.NewHTTPClient("spacex", cfg.BaseURL, base.Options{
		Timeout:    cfg.Timeout,
		RatePerSec: cfg.RatePerSec,
		Burst:      cfg.Burst,
	}))
}

// NewWithHTTP wraps an existing HTTP client.
func NewWithHTTP(h *base.HTTPClient) *Client {
	return &Client{http: h}
}

type queryBody struct {
	Query   map[string]any `json:"query"`
	Options page.Request   `json:"options"`
}

type paginatedDocs struct {
	Docs        []launch.Launch `json:"docs"`
	TotalDocs   int             `json:"totalDocs"`
	Limit       int             `json:"limit"`
	Page        int             `json:"page"`
	TotalPages  int             `json:"totalPages"`
	HasNextPage bool            `json:"hasNextPage"`
	NextPage    *int            `json:"nextPage"`
}

// FetchPage runs a paginated launches query.
func (c *Client) FetchPage(ctx context.Context, req page.Request) (page.Result[launch.Launch], error) {
	const op = "fetch launches page"
	req = req.Normalize()

	resp, err := c.http.PostJSON(ctx, endpointLaunchesQuery, queryBody{
		Query:   map[string]any{},
		Options: req,
	})
	if err != nil {
		return page.Result[launch.Launch]{}, provider.Failure(op, 0, err)
	}
	if !resp.IsSuccess() {
		return page.Result[launch.Launch]{}, provider.Failure(op, resp.StatusCode,
			fmt.Errorf("unexpected response: %s", resp.Snippet(200)))
	}

	var body paginatedDocs
	if err := resp.Decode(&body); err != nil {
		return page.Result[launch.Launch]{}, provider.Failure(op, resp.StatusCode,
			fmt.Errorf("malformed payload: %w", err))
	}

	res := page.Result[launch.Launch]{
		Items:       body.Docs,
		Page:        body.Page,
		TotalPages:  body.TotalPages,
		TotalDocs:   body.TotalDocs,
		HasNextPage: body.HasNextPage,
		NextPage:    body.NextPage,
	}
	if res.Page < 1 {
		res.Page = req.Page
	}
	if res.Items == nil {
		res.Items = []launch.Launch{}
	}
	if !res.HasNextPage {
		res.NextPage = nil
	}
	return res, nil
}

// GetLaunchpad fetches a launchpad by id.
func (c *Client) GetLaunchpad(ctx context.Context, id string) (*launchpad.Launchpad, error) {
	const op = "get launchpad"
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, provider.Failure(op, 0, errors.New("launchpad id is required"))
	}

	resp, err := c.http.Get(ctx, endpointLaunchpads+"/"+url.PathEscape(id))
	if err != nil {
		return nil, provider.Failure(op, 0, err)
	}
	if !resp.IsSuccess() {
		return nil, provider.Failure(op, resp.StatusCode,
			fmt.Errorf("unexpected response: %s", resp.Snippet(200)))
	}

	var pad launchpad.Launchpad
	if err := resp.Decode(&pad); err != nil {
		return nil, provider.Failure(op, resp.StatusCode, fmt.Errorf("malformed payload: %w", err))
	}
	if pad.ID == "" {
		return nil, provider.Failure(op, resp.StatusCode, errors.New("malformed payload: missing id"))
	}
	return &pad, nil
}
