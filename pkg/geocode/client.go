// Package geocode resolves free-text locations to coordinates using the
// Google Geocoding API.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/sells-group/leadscout/internal/lead"
)

const defaultBaseURL = "https://maps.googleapis.com/maps/api/geocode/json"

// ResolutionError indicates the provider returned zero results for a
// location. This is fatal to a search: no bias center can be derived.
type ResolutionError struct {
	Location string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("geocode: no results for %q", e.Location)
}

// Client resolves a human place description ("city, region") to a point.
type Client interface {
	Resolve(ctx context.Context, location string) (lead.Coordinates, error)
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithRateLimit sets the max geocode requests per second.
func WithRateLimit(rps float64) Option {
	return func(c *httpClient) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient creates a Google Geocoding client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
		limiter: rate.NewLimiter(rate.Limit(10), 1),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type geocodeResponse struct {
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
	Status string `json:"status"`
}

// Resolve geocodes location. It returns *ResolutionError when the provider
// has no results; there is no retry here, the caller decides.
func (c *httpClient) Resolve(ctx context.Context, location string) (lead.Coordinates, error) {
	if location == "" {
		return lead.Coordinates{}, eris.New("geocode: location is required")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return lead.Coordinates{}, eris.Wrap(err, "geocode: rate limit")
	}

	params := url.Values{
		"address": {location},
		"key":     {c.apiKey},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return lead.Coordinates{}, eris.Wrap(err, "geocode: build request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return lead.Coordinates{}, eris.Wrap(err, "geocode: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return lead.Coordinates{}, eris.Errorf("geocode: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return lead.Coordinates{}, eris.Wrap(err, "geocode: read response")
	}

	var parsed geocodeResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return lead.Coordinates{}, eris.Wrap(err, "geocode: parse response")
	}

	if parsed.Status != "OK" || len(parsed.Results) == 0 {
		return lead.Coordinates{}, &ResolutionError{Location: location}
	}

	loc := parsed.Results[0].Geometry.Location
	return lead.Coordinates{Latitude: loc.Lat, Longitude: loc.Lng}, nil
}
