package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/BayanAljaar/greenpath/backend/internal/domain"
)

// ORS travel profiles per mode.
var orsProfiles = map[Mode]string{
	ModeWalking: "foot-walking",
	ModeDriving: "driving-car",
}

// ORSProvider implements Provider using the OpenRouteService directions API.
// Transient failures (429, 5xx, network errors) are retried with exponential
// backoff while respecting context cancellation.
type ORSProvider struct {
	client  *http.Client
	apiKey  string
	baseURL string
}

// NewORSProvider constructs an ORSProvider. The base URL is overridable for
// tests and self-hosted instances; empty means the public API.
func NewORSProvider(apiKey, baseURL string) (*ORSProvider, error) {
	if apiKey == "" {
		return nil, errors.New("routing: ORS api key is empty")
	}
	if baseURL == "" {
		baseURL = "https://api.openrouteservice.org"
	}
	return &ORSProvider{
		client:  &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// orsDirectionsResponse is the subset of the GeoJSON directions response the
// provider consumes.
type orsDirectionsResponse struct {
	Features []struct {
		Properties struct {
			Summary struct {
				Distance float64 `json:"distance"` // meters
				Duration float64 `json:"duration"` // seconds
			} `json:"summary"`
		} `json:"properties"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"` // [lon, lat]
		} `json:"geometry"`
	} `json:"features"`
}

// Route implements Provider.
func (o *ORSProvider) Route(ctx context.Context, origin, dest domain.Coordinate, mode Mode) (Route, error) {
	profile, ok := orsProfiles[mode]
	if !ok {
		return Route{}, fmt.Errorf("routing: unsupported mode %q", mode)
	}

	body, err := json.Marshal(map[string]any{
		// ORS expects [lon, lat] pairs.
		"coordinates": [][]float64{
			{origin.Lon, origin.Lat},
			{dest.Lon, dest.Lat},
		},
	})
	if err != nil {
		return Route{}, fmt.Errorf("routing: marshal directions request: %w", err)
	}

	url := o.baseURL + "/v2/directions/" + profile + "/geojson"
	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", o.apiKey)
		req.Header.Set("Accept", "application/json")
		req.Header.Set("Content-Type", "application/json")
		return req, nil
	})
	if err != nil {
		return Route{}, fmt.Errorf("routing: ORS directions: %w", err)
	}
	defer resp.Body.Close()

	var parsed orsDirectionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return Route{}, fmt.Errorf("routing: decode ORS response: %w", err)
	}
	if len(parsed.Features) == 0 {
		return Route{}, errors.New("routing: ORS returned no route")
	}

	feature := parsed.Features[0]
	polyline := make([]domain.Coordinate, 0, len(feature.Geometry.Coordinates))
	for _, pair := range feature.Geometry.Coordinates {
		if len(pair) < 2 {
			continue
		}
		polyline = append(polyline, domain.Coordinate{Lat: pair[1], Lon: pair[0]})
	}

	return Route{
		DistanceKm:      feature.Properties.Summary.Distance / 1000,
		DurationMinutes: feature.Properties.Summary.Duration / 60,
		Polyline:        polyline,
	}, nil
}

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("code %d: %s", e.Code, e.Body)
}

func (o *ORSProvider) do(req *http.Request) (*http.Response, error) {
	resp, err := o.client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, &httpStatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	return resp, nil
}

// doWithRetry retries transient failures (network errors, 429/5xx responses)
// using exponential backoff while respecting context cancellation.
func (o *ORSProvider) doWithRetry(ctx context.Context, makeReq func() (*http.Request, error)) (*http.Response, error) {
	const maxAttempts = 4
	backoff := 200 * time.Millisecond

	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := makeReq()
		if err != nil {
			return nil, fmt.Errorf("make request: %w", err)
		}

		resp, err := o.do(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		retry := false
		var he *httpStatusError
		if errors.As(err, &he) {
			switch he.Code {
			case http.StatusTooManyRequests,
				http.StatusInternalServerError,
				http.StatusBadGateway,
				http.StatusServiceUnavailable,
				http.StatusGatewayTimeout:
				retry = true
			}
		}

		var netErr net.Error
		if !retry && errors.As(err, &netErr) {
			retry = true
		}

		if !retry || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}

		backoff *= 2
	}

	return nil, lastErr
}
