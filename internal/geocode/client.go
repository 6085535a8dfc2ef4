package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/kharidoapp/checkout-engine/internal/config"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Result is a best-effort reverse-geocode answer. Fields the provider could
// not resolve are empty strings; the caller treats them as ordinary
// user-entered address data.
type Result struct {
	Street  string
	City    string
	Pincode string
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(cfg *config.Geocoder) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// Reverse resolves device coordinates into street/city/pincode. Single
// shot, no retry; the caller decides what a failure means for its flow.
func (c *Client) Reverse(ctx context.Context, lat, lon float64) (*Result, error) {

	query := url.Values{}
	query.Set("format", "jsonv2")
	query.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	query.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build reverse geocode request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reverse geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reverse geocode returned status %d", resp.StatusCode)
	}

	var payload struct {
		Address struct {
			Road     string `json:"road"`
			City     string `json:"city"`
			Postcode string `json:"postcode"`
		} `json:"address"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode reverse geocode response: %w", err)
	}

	return &Result{
		Street:  payload.Address.Road,
		City:    payload.Address.City,
		Pincode: payload.Address.Postcode,
	}, nil
}
