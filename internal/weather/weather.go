// Package weather reads current conditions from a wttr.in style text service.
package weather

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/hyperifyio/skillbridge/internal/fetch"
)

const DefaultBaseURL = "https://wttr.in"

// Format strings understood by wttr.in. A literal backslash-n is turned into a
// line break by the service.
const (
	SummaryFormat = `%l: %c %t %h humidity, %w wind, %p precip`
	DetailFormat  = `%l\n%c %C\nTemp: %t (feels like %f)\nHumidity: %h\nWind: %w\nPrecip: %p\nUV: %u\nSunrise: %S / Sunset: %s`
)

// Report is the combined one-line summary and multi-line detail for a location.
type Report struct {
	Location string `json:"location"`
	Summary  string `json:"summary"`
	Detail   string `json:"detail"`
}

// Client fetches preformatted weather text.
type Client struct {
	BaseURL string
	Client  *fetch.Client
}

// Lookup fetches the summary and then the detail view. The two requests run
// one after the other; either failing fails the lookup.
func (c *Client) Lookup(ctx context.Context, location string) (Report, error) {
	summary, err := c.get(ctx, location, SummaryFormat)
	if err != nil {
		return Report{}, fmt.Errorf("summary: %w", err)
	}
	detail, err := c.get(ctx, location, DetailFormat)
	if err != nil {
		return Report{}, fmt.Errorf("detail: %w", err)
	}
	return Report{Location: location, Summary: summary, Detail: detail}, nil
}

func (c *Client) get(ctx context.Context, location, format string) (string, error) {
	resp, err := c.client().Get(ctx, c.URL(location, format))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Body), nil
}

// URL builds the request URL for location in the given output format.
func (c *Client) URL(location, format string) string {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	return strings.TrimRight(base, "/") + "/" + url.PathEscape(location) + "?format=" + url.QueryEscape(format)
}

func (c *Client) client() *fetch.Client {
	if c.Client != nil {
		return c.Client
	}
	return &fetch.Client{UserAgent: fetch.CurlUserAgent}
}
