package tool

import (
	"context"
	"fmt"

	// Packages
	chatbot "github.com/mutablelogic/go-chatbot"
	schema "github.com/mutablelogic/go-chatbot/pkg/schema"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Source enumerates candidate tools for discovery
type Source interface {
	// Name identifies the source in discovery warnings
	Name() string

	// Candidates returns the tools this source can construct
	Candidates(ctx context.Context) ([]Candidate, error)
}

// Candidate is a tool which has been found but not yet constructed
type Candidate struct {
	Name string
	New  func() (Tool, error)
}

// Report is the outcome of discovery
type Report struct {
	Registered []string         `json:"registered"`
	Warnings   []schema.Warning `json:"warnings,omitempty"`
}

type static struct {
	name  string
	tools []Tool
}

var _ Source = (*static)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// Static returns a source of already constructed tools
func Static(name string, tools ...Tool) Source {
	return &static{name: name, tools: tools}
}

// NewCandidate returns a candidate constructed by fn
func NewCandidate(name string, fn func() (Tool, error)) Candidate {
	return Candidate{Name: name, New: fn}
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Discover enumerates each source and registers every candidate it returns.
// A candidate which fails to construct or register is recorded as a warning
// and does not prevent the other candidates from loading.
func (r *Registry) Discover(ctx context.Context, sources ...Source) *Report {
	report := new(Report)
	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			report.warn(schema.NewWarning(source.Name(), "", err))
			continue
		}
		candidates, err := source.Candidates(ctx)
		if err != nil {
			report.warn(schema.NewWarning(source.Name(), "", err))
		}
		for _, candidate := range candidates {
			t, err := construct(candidate)
			if err == nil {
				err = r.Register(t)
			}
			if err != nil {
				report.warn(schema.NewWarning(source.Name(), candidate.Name, err))
				continue
			}
			report.Registered = append(report.Registered, t.Spec().Name)
		}
	}
	for _, w := range report.Warnings {
		r.logger.Warn("tool discovery", "source", w.Source, "candidate", w.Name, "error", w.Error)
	}
	r.warnings = append(r.warnings, report.Warnings...)
	return report
}

///////////////////////////////////////////////////////////////////////////////
// STATIC SOURCE

func (s *static) Name() string {
	return s.name
}

func (s *static) Candidates(context.Context) ([]Candidate, error) {
	result := make([]Candidate, 0, len(s.tools))
	for i, t := range s.tools {
		name := fmt.Sprintf("#%d", i)
		if t != nil {
			name = t.Spec().Name
		}
		result = append(result, NewCandidate(name, func() (Tool, error) {
			return t, nil
		}))
	}
	return result, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// construct runs a candidate's constructor, converting a panic into an error
func construct(candidate Candidate) (t Tool, err error) {
	defer func() {
		if v := recover(); v != nil {
			t, err = nil, chatbot.ErrInternalServerError.Withf("panic: %v", v)
		}
	}()
	if candidate.New == nil {
		return nil, chatbot.ErrBadParameter.With("candidate has no constructor")
	}
	if t, err = candidate.New(); err != nil {
		return nil, err
	} else if t == nil {
		return nil, chatbot.ErrBadParameter.With("constructor returned no tool")
	}
	return t, nil
}

func (r *Report) warn(w schema.Warning) {
	r.Warnings = append(r.Warnings, w)
}
