package duckduckgo

import (
	"strings"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type Answer struct {
	Heading        string  `json:"Heading"`
	AbstractText   string  `json:"AbstractText"`
	AbstractURL    string  `json:"AbstractURL"`
	AbstractSource string  `json:"AbstractSource"`
	Answer         string  `json:"Answer"`
	Direct         []Topic `json:"Results"`
	RelatedTopics  []Topic `json:"RelatedTopics"`
}

// Topic is either a single result or a named group of results
type Topic struct {
	Text     string  `json:"Text,omitempty"`
	FirstURL string  `json:"FirstURL,omitempty"`
	Name     string  `json:"Name,omitempty"`
	Topics   []Topic `json:"Topics,omitempty"`
}

type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (a Answer) String() string {
	return types.Stringify(a)
}

func (r Result) String() string {
	return types.Stringify(r)
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Results flattens the answer into a list of results
func (a Answer) Results() []Result {
	var result []Result
	if a.AbstractText != "" {
		title := a.Heading
		if a.AbstractSource != "" {
			title += " - " + a.AbstractSource
		}
		result = append(result, Result{Title: title, URL: a.AbstractURL, Snippet: a.AbstractText})
	}
	if a.Answer != "" {
		result = append(result, Result{Title: a.Heading, Snippet: a.Answer})
	}
	result = appendTopics(result, a.Direct)
	result = appendTopics(result, a.RelatedTopics)
	return result
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func appendTopics(result []Result, topics []Topic) []Result {
	for _, topic := range topics {
		if len(topic.Topics) > 0 {
			result = appendTopics(result, topic.Topics)
			continue
		}
		if topic.Text == "" {
			continue
		}
		title, _, _ := strings.Cut(topic.Text, " - ")
		result = append(result, Result{Title: title, URL: topic.FirstURL, Snippet: topic.Text})
	}
	return result
}
