package weatherapi

import (
	"context"
	"fmt"
	"strings"

	// Packages
	client "github.com/mutablelogic/go-client"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Weather is the response to a current weather query
type Weather struct {
	Query    string   `json:"-"`
	Location Location `json:"location"`
	Current  Current  `json:"current"`
}

type Location struct {
	Name      string  `json:"name"`
	Region    string  `json:"region,omitempty"`
	Country   string  `json:"country,omitempty"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Timezone  string  `json:"tz_id,omitempty"`
	LocalTime string  `json:"localtime,omitempty"`
}

type Current struct {
	LastUpdated string    `json:"last_updated,omitempty"`
	TempC       float64   `json:"temp_c"`
	TempF       float64   `json:"temp_f"`
	FeelsLikeC  float64   `json:"feelslike_c"`
	Condition   Condition `json:"condition"`
	WindKph     float64   `json:"wind_kph"`
	WindDir     string    `json:"wind_dir,omitempty"`
	PressureMb  float64   `json:"pressure_mb"`
	PrecipMm    float64   `json:"precip_mm"`
	Humidity    int       `json:"humidity"`
	Cloud       int       `json:"cloud"`
	VisKm       float64   `json:"vis_km"`
	UV          float64   `json:"uv"`
}

type Condition struct {
	Text string `json:"text"`
	Code int    `json:"code,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Current returns the current weather for a location
func (c *Client) Current(ctx context.Context, req *CurrentRequest) (Weather, error) {
	var response Weather
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("current.json"), client.OptQuery(req.Values(c.key))); err != nil {
		return Weather{}, err
	}
	response.Query = req.Query()
	return response, nil
}

// Place returns the location as "name, region, country", skipping empty parts
func (l Location) Place() string {
	var parts []string
	for _, part := range []string{l.Name, l.Region, l.Country} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, ", ")
}

// Report formats the weather as a short text report
func (w Weather) Report() string {
	place := w.Location.Place()
	if place == "" {
		place = w.Query
	}
	var buf strings.Builder
	fmt.Fprintf(&buf, "Weather for %s:\n", place)
	fmt.Fprintf(&buf, "• Temperature: %.0f°C (feels like %.0f°C)\n", w.Current.TempC, w.Current.FeelsLikeC)
	fmt.Fprintf(&buf, "• Conditions: %s\n", w.Current.Condition.Text)
	fmt.Fprintf(&buf, "• Humidity: %d%%\n", w.Current.Humidity)
	if w.Current.WindDir != "" {
		fmt.Fprintf(&buf, "• Wind: %.0f km/h %s\n", w.Current.WindKph, w.Current.WindDir)
	} else {
		fmt.Fprintf(&buf, "• Wind: %.0f km/h\n", w.Current.WindKph)
	}
	fmt.Fprintf(&buf, "• Pressure: %.0f hPa\n", w.Current.PressureMb)
	fmt.Fprintf(&buf, "• Visibility: %.0f km", w.Current.VisKm)
	if w.Location.LocalTime != "" {
		fmt.Fprintf(&buf, "\n• Local time: %s", w.Location.LocalTime)
	}
	return buf.String()
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (w Weather) String() string {
	return types.Stringify(w)
}
