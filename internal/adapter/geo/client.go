// Package geo resolves place names to coordinates and elevations using the
// Open-Meteo geocoding and elevation APIs. Both are public, keyless services.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cairnhealth/altitude-risk-service/internal/domain"
	"github.com/cairnhealth/altitude-risk-service/internal/observability"
)

const (
	defaultGeocodeBaseURL   = "https://geocoding-api.open-meteo.com/v1/search"
	defaultElevationBaseURL = "https://api.open-meteo.com/v1/elevation"
)

// Client implements domain.ElevationResolver against the Open-Meteo APIs.
type Client struct {
	httpClient       *http.Client
	geocodeBaseURL   string
	elevationBaseURL string
	metrics          *observability.Metrics
	logger           *slog.Logger
}

// NewClient creates a resolver client with the given request timeout.
func NewClient(timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		geocodeBaseURL:   defaultGeocodeBaseURL,
		elevationBaseURL: defaultElevationBaseURL,
		metrics:          metrics,
		logger:           logger,
	}
}

// ResolvePlace geocodes a place name and then looks up the elevation at the
// resulting coordinates. Returns domain.ErrPlaceNotFound when the geocoder has
// no match. One attempt per upstream call; retry policy is the caller's concern.
func (c *Client) ResolvePlace(ctx context.Context, name string) (domain.PlaceElevation, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		c.metrics.ResolveRequests.WithLabelValues("not_found").Inc()
		return domain.PlaceElevation{}, domain.ErrPlaceNotFound
	}

	place, err := c.geocode(ctx, name)
	if err != nil {
		c.countResolveError(err)
		return domain.PlaceElevation{}, err
	}

	elevation, err := c.elevationAt(ctx, place.Latitude, place.Longitude)
	if err != nil {
		c.countResolveError(err)
		return domain.PlaceElevation{}, err
	}

	place.ElevationMeters = elevation
	c.metrics.ResolveRequests.WithLabelValues("success").Inc()
	return place, nil
}

func (c *Client) countResolveError(err error) {
	if err == domain.ErrPlaceNotFound {
		c.metrics.ResolveRequests.WithLabelValues("not_found").Inc()
		return
	}
	c.metrics.ResolveRequests.WithLabelValues("error").Inc()
}

func (c *Client) geocode(ctx context.Context, name string) (domain.PlaceElevation, error) {
	params := url.Values{
		"name":     {name},
		"count":    {"1"},
		"language": {"en"},
		"format":   {"json"},
	}

	start := time.Now()
	body, err := c.doRequest(ctx, c.geocodeBaseURL+"?"+params.Encode(), "geocode")
	c.metrics.ResolveAPIDuration.WithLabelValues("geocode").Observe(time.Since(start).Seconds())
	if err != nil {
		return domain.PlaceElevation{}, err
	}

	var resp geocodeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return domain.PlaceElevation{}, fmt.Errorf("decode geocode response: %w", err)
	}

	if len(resp.Results) == 0 {
		return domain.PlaceElevation{}, domain.ErrPlaceNotFound
	}

	r := resp.Results[0]
	return domain.PlaceElevation{
		PlaceName:        r.Name,
		FormattedAddress: formatAddress(r),
		Latitude:         r.Latitude,
		Longitude:        r.Longitude,
	}, nil
}

func (c *Client) elevationAt(ctx context.Context, lat, lon float64) (float64, error) {
	params := url.Values{
		"latitude":  {fmt.Sprintf("%.6f", lat)},
		"longitude": {fmt.Sprintf("%.6f", lon)},
	}

	start := time.Now()
	body, err := c.doRequest(ctx, c.elevationBaseURL+"?"+params.Encode(), "elevation")
	c.metrics.ResolveAPIDuration.WithLabelValues("elevation").Observe(time.Since(start).Seconds())
	if err != nil {
		return 0, err
	}

	var resp elevationResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, fmt.Errorf("decode elevation response: %w", err)
	}

	if len(resp.Elevation) == 0 {
		return 0, fmt.Errorf("elevation response has no points")
	}
	return resp.Elevation[0], nil
}

func (c *Client) doRequest(ctx context.Context, fullURL, call string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request: %w", call, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", call, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s API error: status %d: %s", call, resp.StatusCode, body)
	}
	return body, nil
}

// formatAddress joins the place name with its region and country, skipping
// empty components.
func formatAddress(r geocodeResult) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{r.Name, r.Admin1, r.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Open-Meteo API response types.

type geocodeResponse struct {
	Results []geocodeResult `json:"results"`
}

type geocodeResult struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Admin1    string  `json:"admin1"`
	Country   string  `json:"country"`
}

type elevationResponse struct {
	Elevation []float64 `json:"elevation"`
}
