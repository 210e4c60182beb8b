// FilePath: internal/weather/weather.go

// Package weather looks up current conditions for a coordinate pair
// through Open-Meteo. The hub only decorates inspection forms with the
// result; a failed lookup degrades to manual entry and never blocks a
// save.
package weather

import (
	"context"
	"fmt"
	"math"

	"github.com/bkeeper/hub/internal/config"
	"github.com/bkeeper/hub/internal/errors"
	"github.com/go-resty/resty/v2"
)

// Snapshot is a current-conditions reading
type Snapshot struct {
	Code        int     `json:"code"`
	Description string  `json:"description"`
	Temperature float64 `json:"temperature"`
	WindSpeed   float64 `json:"wind_speed"`
}

// Summary renders the snapshot the way inspection forms record it
func (s Snapshot) Summary() string {
	return fmt.Sprintf("%s, %d°C, vind %d m/s",
		s.Description, int(math.Round(s.Temperature)), int(math.Round(s.WindSpeed)))
}

// Client fetches weather data over HTTP
type Client struct {
	http     *resty.Client
	timezone string
}

// NewClient creates a weather client from config
func NewClient(cfg config.WeatherConfig) *Client {
	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout)
	return &Client{http: http, timezone: cfg.Timezone}
}

type forecastResponse struct {
	Current struct {
		Temperature float64 `json:"temperature_2m"`
		WeatherCode int     `json:"weather_code"`
		WindSpeed   float64 `json:"wind_speed_10m"`
	} `json:"current"`
}

// Current fetches conditions for a coordinate pair
func (c *Client) Current(ctx context.Context, latitude, longitude float64) (*Snapshot, error) {
	var out forecastResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"latitude":  fmt.Sprintf("%.4f", latitude),
			"longitude": fmt.Sprintf("%.4f", longitude),
			"current":   "temperature_2m,weather_code,wind_speed_10m",
			"timezone":  c.timezone,
		}).
		SetResult(&out).
		Get("/v1/forecast")
	if err != nil {
		return nil, errors.NewNetworkError("weather service unreachable", err)
	}
	if resp.IsError() {
		return nil, errors.NewNetworkError(
			fmt.Sprintf("weather service returned %d", resp.StatusCode()), nil)
	}
	return &Snapshot{
		Code:        out.Current.WeatherCode,
		Description: Describe(out.Current.WeatherCode),
		Temperature: out.Current.Temperature,
		WindSpeed:   out.Current.WindSpeed,
	}, nil
}

// weatherCodes maps WMO condition codes to the Swedish descriptions
// shown on inspection records.
var weatherCodes = map[int]string{
	0:  "Klart",
	1:  "Mestadels klart",
	2:  "Delvis molnigt",
	3:  "Molnigt",
	45: "Dimma",
	48: "Rimfrost",
	51: "Lätt duggregn",
	53: "Måttligt duggregn",
	55: "Kraftigt duggregn",
	56: "Lätt frysande duggregn",
	57: "Kraftigt frysande duggregn",
	61: "Lätt regn",
	63: "Måttligt regn",
	65: "Kraftigt regn",
	66: "Lätt frysande regn",
	67: "Kraftigt frysande regn",
	71: "Lätt snöfall",
	73: "Måttligt snöfall",
	75: "Kraftigt snöfall",
	77: "Snökorn",
	80: "Lätta regnskurar",
	81: "Måttliga regnskurar",
	82: "Kraftiga regnskurar",
	85: "Lätta snöskurar",
	86: "Kraftiga snöskurar",
	95: "Åska",
	96: "Åska med lätt hagel",
	99: "Åska med kraftigt hagel",
}

// Describe translates a WMO weather code
func Describe(code int) string {
	if desc, ok := weatherCodes[code]; ok {
		return desc
	}
	return "Okänt väder"
}
