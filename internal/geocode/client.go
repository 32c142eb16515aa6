package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Geocoder resolves a postal address to coordinates. Implementations talk to
// an external provider and are only ever called from the job worker, never
// from a request handler.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (lat, lng float64, err error)
}

type Config struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

type googleGeocoder struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewGoogleGeocoder(cfg Config) Geocoder {
	return &googleGeocoder{
		apiKey:  cfg.APIKey,
		baseURL: cfg.BaseURL,
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

func (g *googleGeocoder) Geocode(ctx context.Context, address string) (float64, float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("create request: %w", err)
	}

	q := req.URL.Query()
	q.Set("address", address)
	q.Set("key", g.apiKey)
	req.URL.RawQuery = q.Encode()

	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("geocode API returned status %d", resp.StatusCode)
	}

	var result struct {
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

	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return 0, 0, fmt.Errorf("decode response: %w", err)
	}

	if result.Status != "OK" {
		return 0, 0, fmt.Errorf("geocode API error: %s", result.Status)
	}
	if len(result.Results) == 0 {
		return 0, 0, fmt.Errorf("no results for address")
	}

	loc := result.Results[0].Geometry.Location
	return loc.Lat, loc.Lng, nil
}

// FormatAddress builds the one-line query string the provider expects.
func FormatAddress(street, city, state, zip string) string {
	return fmt.Sprintf("%s, %s, %s %s", street, city, state, zip)
}
