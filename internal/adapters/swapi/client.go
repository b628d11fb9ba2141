// Package swapi is the read-only client for the upstream SWAPI-compatible
// source. It fetches the paginated people collection and individual
// referenced resources (planets, films, species, starships).
package swapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/brownkon/StarWarsApp/internal/domain/model"
	"github.com/brownkon/StarWarsApp/pkg/logger"
	"github.com/brownkon/StarWarsApp/pkg/metrics"
)

// Default client configuration constants.
const (
	defaultBaseURL        = "https://swapi.dev/api"
	defaultRequestTimeout = 10 * time.Second
	defaultMaxPages       = 10
)

// Client talks to the upstream source over HTTP.
type Client struct {
	baseURL  string
	httpc    *http.Client
	maxPages int
	logger   logger.Logger
}

// NewClient creates a new upstream client with configuration options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:  defaultBaseURL,
		httpc:    &http.Client{Timeout: defaultRequestTimeout},
		maxPages: defaultMaxPages,
		logger:   logger.Get().Named("swapi"),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// peoplePage mirrors the upstream pagination envelope.
type peoplePage struct {
	Next    *string              `json:"next"`
	Results []model.RawCharacter `json:"results"`
}

// People fetches every page of the people collection and returns the
// aggregated raw records. The fetch is all-or-nothing: any failed page
// discards everything already accumulated.
func (c *Client) People(ctx context.Context) ([]model.RawCharacter, error) {
	results := make([]model.RawCharacter, 0, 128)
	next := strings.TrimRight(c.baseURL, "/") + "/people/"

	for page := 0; next != "" && page < c.maxPages; page++ {
		body, err := c.get(ctx, next, "people")
		if err != nil {
			return nil, err
		}

		var p peoplePage
		if err := json.Unmarshal(body, &p); err != nil {
			metrics.RecordUpstreamError("malformed")
			return nil, fmt.Errorf("%w: page %q: %v", ErrMalformedPayload, next, err)
		}

		results = append(results, p.Results...)
		if p.Next == nil {
			break
		}
		next = *p.Next
	}

	c.logger.Debug(ctx, "fetched people collection", logger.Int("records", len(results)))
	return results, nil
}

// Resource fetches one referenced entity as a loose document. The
// caller extracts the display field it cares about; everything else
// stays behind the allow-list.
func (c *Client) Resource(ctx context.Context, url string) (map[string]any, error) {
	body, err := c.get(ctx, url, "resource")
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		metrics.RecordUpstreamError("malformed")
		return nil, fmt.Errorf("%w: resource %q: %v", ErrMalformedPayload, url, err)
	}
	return doc, nil
}

// get issues one GET and returns the raw body, classifying failures
// into the package's sentinel kinds.
func (c *Client) get(ctx context.Context, url, resource string) ([]byte, error) {
	metrics.RecordUpstreamRequest(resource)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		metrics.RecordUpstreamError("unreachable")
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		metrics.RecordUpstreamError("unreachable")
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		metrics.RecordUpstreamError("bad_status")
		return nil, fmt.Errorf("%w: %d", ErrBadStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordUpstreamError("unreachable")
		return nil, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	return body, nil
}
