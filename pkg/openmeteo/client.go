// Package openmeteo provides a client for the Open-Meteo geocoding and
// forecast APIs.
package openmeteo

import (
	"context"
	"fmt"
	"net/url"

	"github.com/rotisserie/eris"

	"github.com/smhjw/daily-telegram-brief/internal/fetch"
)

// Client defines the Open-Meteo operations.
type Client interface {
	// Search resolves a city name to coordinates.
	Search(ctx context.Context, name string) (*Place, error)
	// Forecast fetches current conditions and today's range for a location.
	Forecast(ctx context.Context, lat, lon float64, timezone string) (*Forecast, error)
}

// Place is a geocoding result.
type Place struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Forecast holds the parsed forecast response.
type Forecast struct {
	Current Current `json:"current"`
	Daily   Daily   `json:"daily"`
}

// Current holds current conditions.
type Current struct {
	Temperature *float64 `json:"temperature_2m"`
	Apparent    *float64 `json:"apparent_temperature"`
	WeatherCode *int     `json:"weather_code"`
	WindSpeed   *float64 `json:"wind_speed_10m"`
}

// Daily holds per-day forecast arrays; index 0 is today.
type Daily struct {
	TemperatureMax []float64 `json:"temperature_2m_max"`
	TemperatureMin []float64 `json:"temperature_2m_min"`
}

type searchResponse struct {
	Results []Place `json:"results"`
}

// Option configures the client.
type Option func(*httpClient)

// WithGeocodingBaseURL sets a custom geocoding base URL (for testing).
func WithGeocodingBaseURL(u string) Option {
	return func(c *httpClient) {
		c.geocodingBaseURL = u
	}
}

// WithForecastBaseURL sets a custom forecast base URL (for testing).
func WithForecastBaseURL(u string) Option {
	return func(c *httpClient) {
		c.forecastBaseURL = u
	}
}

// WithFetcher sets a custom HTTP fetcher.
func WithFetcher(f *fetch.Client) Option {
	return func(c *httpClient) {
		c.fetch = f
	}
}

type httpClient struct {
	geocodingBaseURL string
	forecastBaseURL  string
	fetch            *fetch.Client
}

// NewClient creates a new Open-Meteo client.
func NewClient(opts ...Option) Client {
	c := &httpClient{
		geocodingBaseURL: "https://geocoding-api.open-meteo.com",
		forecastBaseURL:  "https://api.open-meteo.com",
		fetch:            fetch.New(fetch.Options{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Search(ctx context.Context, name string) (*Place, error) {
	params := url.Values{
		"name":     {name},
		"count":    {"1"},
		"language": {"zh"},
		"format":   {"json"},
	}

	var resp searchResponse
	if err := c.fetch.GetJSON(ctx, c.geocodingBaseURL+"/v1/search?"+params.Encode(), &resp); err != nil {
		return nil, eris.Wrap(err, "openmeteo: search")
	}
	if len(resp.Results) == 0 {
		return nil, eris.Errorf("openmeteo: 城市未找到: %s", name)
	}

	place := resp.Results[0]
	if place.Name == "" {
		place.Name = name
	}
	return &place, nil
}

func (c *httpClient) Forecast(ctx context.Context, lat, lon float64, timezone string) (*Forecast, error) {
	params := url.Values{
		"latitude":      {fmt.Sprintf("%.4f", lat)},
		"longitude":     {fmt.Sprintf("%.4f", lon)},
		"current":       {"temperature_2m,apparent_temperature,weather_code,wind_speed_10m"},
		"daily":         {"temperature_2m_max,temperature_2m_min"},
		"forecast_days": {"1"},
		"timezone":      {timezone},
	}

	var resp Forecast
	if err := c.fetch.GetJSON(ctx, c.forecastBaseURL+"/v1/forecast?"+params.Encode(), &resp); err != nil {
		return nil, eris.Wrap(err, "openmeteo: forecast")
	}
	return &resp, nil
}
