// Package routing resolves road distances for mileage claims using
// OpenStreetMap Nominatim for geocoding and OSRM for driving routes.
package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/garyjia/gov-travel-expense/internal/application/port"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Lookup errors, shared with callers through the port package.
var (
	ErrMissingPlace  = port.ErrMissingPlace
	ErrPlaceNotFound = port.ErrPlaceNotFound
	ErrNoRoute       = port.ErrNoRoute
)

const (
	DefaultNominatimURL = "https://nominatim.openstreetmap.org"
	DefaultOSRMURL      = "https://router.project-osrm.org"
	DefaultUserAgent    = "GovExpense-Distance-Calculator/1.0"
)

// Options configures the client. Zero values fall back to the public
// endpoints, one geocoding request per second and a 10s timeout.
type Options struct {
	NominatimURL      string
	OSRMURL           string
	UserAgent         string
	RequestsPerSecond float64
	Timeout           time.Duration
}

// Client implements port.DistanceProvider.
type Client struct {
	nominatimURL string
	osrmURL      string
	userAgent    string
	http         *http.Client
	limiter      *rate.Limiter
	logger       *zap.Logger
}

// NewClient creates a routing client
func NewClient(opts Options, logger *zap.Logger) *Client {
	if opts.NominatimURL == "" {
		opts.NominatimURL = DefaultNominatimURL
	}
	if opts.OSRMURL == "" {
		opts.OSRMURL = DefaultOSRMURL
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.RequestsPerSecond <= 0 {
		opts.RequestsPerSecond = 1
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	return &Client{
		nominatimURL: strings.TrimRight(opts.NominatimURL, "/"),
		osrmURL:      strings.TrimRight(opts.OSRMURL, "/"),
		userAgent:    opts.UserAgent,
		http:         &http.Client{Timeout: opts.Timeout},
		limiter:      rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1),
		logger:       logger,
	}
}

// RoadDistance geocodes both places and returns the driving distance in
// kilometres rounded to two digits.
func (c *Client) RoadDistance(ctx context.Context, origin, destination string) (*port.RouteDistance, error) {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return nil, ErrMissingPlace
	}

	from, err := c.Geocode(ctx, origin)
	if err != nil {
		return nil, err
	}
	to, err := c.Geocode(ctx, destination)
	if err != nil {
		return nil, err
	}

	meters, err := c.drivingMeters(ctx, from, to)
	if err != nil {
		return nil, err
	}
	km := decimal.NewFromFloat(meters).Div(decimal.NewFromInt(1000)).Round(2)

	c.logger.Info("Road distance resolved",
		zap.String("origin", origin),
		zap.String("destination", destination),
		zap.String("distance_km", km.StringFixed(2)))

	return &port.RouteDistance{
		Origin:      origin,
		Destination: destination,
		From:        from,
		To:          to,
		DistanceKm:  km,
	}, nil
}

type nominatimPlace struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode resolves a free-form place name. Calls are throttled to the
// configured Nominatim request rate.
func (c *Client) Geocode(ctx context.Context, place string) (port.Coordinate, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return port.Coordinate{}, fmt.Errorf("rate limiter: %w", err)
	}

	q := url.Values{}
	q.Set("q", place)
	q.Set("format", "json")
	q.Set("limit", "1")

	var places []nominatimPlace
	if err := c.getJSON(ctx, c.nominatimURL+"/search?"+q.Encode(), &places); err != nil {
		c.logger.Error("Geocoding failed", zap.String("place", place), zap.Error(err))
		return port.Coordinate{}, fmt.Errorf("failed to geocode %q: %w", place, err)
	}
	if len(places) == 0 {
		c.logger.Warn("Place not found", zap.String("place", place))
		return port.Coordinate{}, fmt.Errorf("%w: %s", ErrPlaceNotFound, place)
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return port.Coordinate{}, fmt.Errorf("invalid latitude for %q: %w", place, err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return port.Coordinate{}, fmt.Errorf("invalid longitude for %q: %w", place, err)
	}

	c.logger.Debug("Geocoded place",
		zap.String("place", place),
		zap.String("match", places[0].DisplayName),
		zap.Float64("lat", lat),
		zap.Float64("lon", lon))
	return port.Coordinate{Lat: lat, Lon: lon}, nil
}

type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"` // meters
	} `json:"routes"`
}

func (c *Client) drivingMeters(ctx context.Context, from, to port.Coordinate) (float64, error) {
	// OSRM takes lon,lat pairs
	coords := fmt.Sprintf("%s,%s;%s,%s",
		formatCoord(from.Lon), formatCoord(from.Lat),
		formatCoord(to.Lon), formatCoord(to.Lat))
	endpoint := c.osrmURL + "/route/v1/driving/" + coords + "?overview=false&steps=false"

	var resp osrmResponse
	if err := c.getJSON(ctx, endpoint, &resp); err != nil {
		c.logger.Error("OSRM request failed", zap.Error(err))
		return 0, fmt.Errorf("failed to fetch route: %w", err)
	}
	if resp.Code != "Ok" || len(resp.Routes) == 0 {
		return 0, fmt.Errorf("%w: osrm code %q", ErrNoRoute, resp.Code)
	}
	return resp.Routes[0].Distance, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// OSRM answers unroutable requests with 400 and a JSON code
	if resp.StatusCode >= 500 || (resp.StatusCode >= 300 && resp.StatusCode != http.StatusBadRequest) {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

// Verify interface compliance
var _ port.DistanceProvider = (*Client)(nil)
