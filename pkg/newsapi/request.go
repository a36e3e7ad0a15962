package newsapi

import (
	"net/url"
	"strconv"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// HeadlinesRequest selects top headlines. Empty fields are not sent.
type HeadlinesRequest struct {
	Query    string `json:"q,omitempty"`
	Category string `json:"category,omitempty"`
	Country  string `json:"country,omitempty"`
	PageSize int    `json:"pageSize,omitempty"`
}

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewHeadlinesRequest returns a request for a topic in a country. The
// number of articles is clamped to between one and ten.
func NewHeadlinesRequest(topic, country string, count int) *HeadlinesRequest {
	return &HeadlinesRequest{
		Category: strings.ToLower(strings.TrimSpace(topic)),
		Country:  strings.ToLower(strings.TrimSpace(country)),
		PageSize: min(max(count, 1), maxCount),
	}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Values returns the request as query parameters
func (r *HeadlinesRequest) Values() url.Values {
	result := make(url.Values)
	for key, value := range map[string]string{
		"q":        r.Query,
		"category": r.Category,
		"country":  r.Country,
	} {
		if value != "" {
			result.Set(key, value)
		}
	}
	if r.PageSize > 0 {
		result.Set("pageSize", strconv.Itoa(r.PageSize))
	}
	return result
}
