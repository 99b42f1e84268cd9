package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"journal-locations/core/errs"
)

// Client is a ReverseGeocoder backed by a Nominatim-compatible HTTP API.
type Client struct {
	baseURL   string
	userAgent string
	language  string
	http      *http.Client
}

// NewClient creates a geocoding client from config.
func NewClient(cfg Config) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 10
	}
	return &Client{
		baseURL:   cfg.BaseURL,
		userAgent: cfg.UserAgent,
		language:  cfg.Language,
		http:      &http.Client{Timeout: time.Duration(timeout) * time.Second},
	}
}

// reverseResponse mirrors the subset of the Nominatim reverse payload the
// engine reads. Nominatim reports "no data" as an error field in a 200 body.
type reverseResponse struct {
	Error       string `json:"error"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Address     struct {
		HouseNumber   string `json:"house_number"`
		Road          string `json:"road"`
		Neighbourhood string `json:"neighbourhood"`
		Suburb        string `json:"suburb"`
		Postcode      string `json:"postcode"`
		City          string `json:"city"`
		Town          string `json:"town"`
		Village       string `json:"village"`
		County        string `json:"county"`
		State         string `json:"state"`
		Country       string `json:"country"`
	} `json:"address"`
}

// Lookup resolves a coordinate via the provider's reverse endpoint.
// Returns ErrNoData when the provider knows nothing about the coordinate,
// and an errs.ExternalService error for transport and HTTP failures.
func (c *Client) Lookup(ctx context.Context, lat, lng float64) (*Hierarchy, error) {
	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", fmt.Sprintf("%.7f", lat))
	q.Set("lon", fmt.Sprintf("%.7f", lng))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse?"+q.Encode(), http.NoBody)
	if err != nil {
		return nil, errs.ExternalService("building reverse request", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if c.language != "" {
		req.Header.Set("Accept-Language", c.language)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errs.ExternalService("reverse request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNoData
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errs.ExternalService(fmt.Sprintf("reverse returned HTTP %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, errs.ExternalService("reading reverse response", err)
	}

	var parsed reverseResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, errs.ExternalService("decoding reverse response", err)
	}
	if parsed.Error != "" {
		return nil, ErrNoData
	}

	return parsed.toHierarchy(), nil
}

func (r *reverseResponse) toHierarchy() *Hierarchy {
	h := &Hierarchy{
		Name:         r.Name,
		Neighborhood: firstNonEmpty(r.Address.Neighbourhood, r.Address.Suburb),
		PostalCode:   r.Address.Postcode,
		City:         firstNonEmpty(r.Address.City, r.Address.Town, r.Address.Village),
		Subdivision:  r.Address.County,
		Region:       r.Address.State,
		Country:      r.Address.Country,
	}

	if r.Address.Road != "" {
		h.Address = r.Address.Road
		if r.Address.HouseNumber != "" {
			h.Address = r.Address.HouseNumber + " " + r.Address.Road
		}
	}
	if h.Name == "" {
		h.Name = h.Address
	}
	return h
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
