package weatherapi

import (
	"net/url"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// CurrentRequest asks for the current weather in a city
type CurrentRequest struct {
	City    string `json:"city"`
	Country string `json:"country,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewCurrentRequest returns a request for a city, optionally qualified by a
// country name or code
func NewCurrentRequest(city, country string) *CurrentRequest {
	return &CurrentRequest{
		City:    strings.TrimSpace(city),
		Country: strings.TrimSpace(country),
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Query returns the location as "city" or "city,country"
func (r *CurrentRequest) Query() string {
	if r.Country == "" {
		return r.City
	}
	return r.City + "," + r.Country
}

// Values returns the query parameters for the current.json endpoint
func (r *CurrentRequest) Values(key string) url.Values {
	return url.Values{
		"key": {key},
		"q":   {r.Query()},
	}
}
