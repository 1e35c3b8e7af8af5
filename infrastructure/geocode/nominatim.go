// Package geocode resolves free-text city names to coordinates through an
// external Nominatim-compatible provider. The backend is a thin relay; no
// results are cached or stored.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	pkgerrors "lifemap-backend/pkg/errors"

	"go.uber.org/zap"
)

// Location is one resolved place
type Location struct {
	Latitude    float64 `json:"lat"`
	Longitude   float64 `json:"lng"`
	DisplayName string  `json:"displayName"`
}

// Client calls the geocoding provider
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a geocoding client
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// nominatimResult is the provider's response shape. Coordinates arrive as
// strings.
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Lookup resolves a city name to its best-match coordinates. An empty
// provider result is a not-found error; provider failures surface as
// external errors, never as made-up coordinates.
func (c *Client) Lookup(ctx context.Context, city string) (*Location, error) {
	if city == "" {
		return nil, pkgerrors.NewValidationError("city is required")
	}

	endpoint := fmt.Sprintf("%s/search?q=%s&format=json&limit=1", c.baseURL, url.QueryEscape(city))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pkgerrors.NewInternalError("failed to build geocode request").WithCause(err)
	}
	req.Header.Set("User-Agent", "lifemap-backend")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.NewExternalError("geocoding", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, pkgerrors.NewExternalError("geocoding",
			fmt.Errorf("provider returned status %d", resp.StatusCode))
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, pkgerrors.NewExternalError("geocoding", err)
	}
	if len(results) == 0 {
		return nil, pkgerrors.NewNotFoundError("location")
	}

	best := results[0]
	lat, err := strconv.ParseFloat(best.Lat, 64)
	if err != nil {
		return nil, pkgerrors.NewExternalError("geocoding", fmt.Errorf("invalid latitude %q", best.Lat))
	}
	lng, err := strconv.ParseFloat(best.Lon, 64)
	if err != nil {
		return nil, pkgerrors.NewExternalError("geocoding", fmt.Errorf("invalid longitude %q", best.Lon))
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return nil, pkgerrors.NewExternalError("geocoding",
			fmt.Errorf("coordinates out of range: %f, %f", lat, lng))
	}

	c.logger.Debug("Geocoded city",
		zap.String("city", city),
		zap.Float64("lat", lat),
		zap.Float64("lng", lng),
	)

	return &Location{
		Latitude:    lat,
		Longitude:   lng,
		DisplayName: shortName(best.DisplayName),
	}, nil
}

// shortName trims the provider's long comma-joined place description down
// to its leading segment
func shortName(displayName string) string {
	if idx := strings.Index(displayName, ","); idx >= 0 {
		return strings.TrimSpace(displayName[:idx])
	}
	return strings.TrimSpace(displayName)
}
