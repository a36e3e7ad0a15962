package newsapi

import (
	"context"
	"strings"
	"time"

	// Packages
	client "github.com/mutablelogic/go-client"
	chatbot "github.com/mutablelogic/go-chatbot"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Article is one headline
type Article struct {
	Source      Source    `json:"source"`
	Title       string    `json:"title"`
	Author      string    `json:"author,omitempty"`
	Description string    `json:"description,omitempty"`
	Url         string    `json:"url,omitempty"`
	PublishedAt time.Time `json:"publishedAt,omitzero"`
}

// Source is the publisher of an article
type Source struct {
	Id   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// NewsAPI reports failures in the body with status "error"
type headlines struct {
	Status       string    `json:"status"`
	Code         string    `json:"code,omitempty"`
	Message      string    `json:"message,omitempty"`
	TotalResults int       `json:"totalResults"`
	Articles     []Article `json:"articles"`
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Headlines returns the top headlines matching the request. Removed
// articles, which NewsAPI returns with the title "[Removed]", are skipped.
func (c *Client) Headlines(ctx context.Context, req *HeadlinesRequest) ([]Article, error) {
	var response headlines
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("top-headlines"), client.OptQuery(req.Values())); err != nil {
		return nil, err
	}
	if response.Status != "ok" {
		return nil, response.err()
	}

	result := make([]Article, 0, len(response.Articles))
	for _, article := range response.Articles {
		if title := strings.TrimSpace(article.Title); title == "" || title == "[Removed]" {
			continue
		}
		result = append(result, article)
	}
	return result, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (h headlines) err() error {
	switch {
	case strings.HasPrefix(h.Code, "apiKey"):
		return chatbot.ErrBadParameter.Withf("%s: %s", h.Code, h.Message)
	case strings.HasPrefix(h.Code, "parameter"):
		return chatbot.ErrBadParameter.Withf("%s: %s", h.Code, h.Message)
	default:
		return chatbot.ErrInternalServerError.Withf("%s: %s", h.Code, h.Message)
	}
}
