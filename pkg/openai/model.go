package openai

import (
	"context"
	"slices"
	"strings"
	"time"

	// Packages
	humanize "github.com/dustin/go-humanize"
	table "github.com/mutablelogic/go-chatbot/pkg/ui/table"
	client "github.com/mutablelogic/go-client"
	types "github.com/mutablelogic/go-server/pkg/types"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Model is an entry of the models endpoint
type Model struct {
	Name      string `json:"id"`
	CreatedAt int64  `json:"created,omitempty"`
	OwnedBy   string `json:"owned_by,omitempty"`
}

// ModelTable implements table.TableData for a list of models
type ModelTable []Model

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ListModels returns the models available to the key, sorted by name
func (c *Client) ListModels(ctx context.Context) ([]Model, error) {
	var response struct {
		Data []Model `json:"data"`
	}
	if err := c.DoWithContext(ctx, nil, &response, client.OptPath("models")); err != nil {
		return nil, err
	}
	slices.SortFunc(response.Data, func(a, b Model) int {
		return strings.Compare(a.Name, b.Name)
	})
	return response.Data, nil
}

// Created returns when the model was published, or the zero time
func (m Model) Created() time.Time {
	if m.CreatedAt <= 0 {
		return time.Time{}
	}
	return time.Unix(m.CreatedAt, 0)
}

///////////////////////////////////////////////////////////////////////////////
// TABLE

func (t ModelTable) Header() []string {
	return []string{"MODEL", "OWNER", "CREATED"}
}

func (t ModelTable) Len() int {
	return len(t)
}

func (t ModelTable) Row(i int) []any {
	created := ""
	if when := t[i].Created(); !when.IsZero() {
		created = humanize.Time(when)
	}
	return []any{table.Bold{Value: t[i].Name}, t[i].OwnedBy, created}
}

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (m Model) String() string {
	return types.Stringify(m)
}
