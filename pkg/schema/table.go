package schema

import (
	"fmt"
	"strings"

	// Packages
	uitable "github.com/mutablelogic/go-chatbot/pkg/ui/table"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// ToolTable implements table.TableData for a list of tools.
type ToolTable []ToolSpec

// ParameterTable implements table.TableData for the parameters of one tool.
type ParameterTable ToolSpec

// WarningTable implements table.TableData for discovery warnings.
type WarningTable []Warning

// PropertyTable implements table.TableData for a list of key/value pairs.
type PropertyTable []Property

// Property is a labelled value
type Property struct {
	Key   string
	Value any
}

///////////////////////////////////////////////////////////////////////////////
// TOOL TABLE (LIST)

func (t ToolTable) Header() []string {
	return []string{"NAME", "DESCRIPTION", "PARAMETERS"}
}

func (t ToolTable) Len() int {
	return len(t)
}

func (t ToolTable) Row(i int) []any {
	spec := t[i]
	params := fmt.Sprintf("%d total, %d required", len(spec.Parameters), len(spec.Required()))
	return []any{uitable.Bold{Value: spec.Name}, spec.Description, params}
}

///////////////////////////////////////////////////////////////////////////////
// PARAMETER TABLE (TOOL DETAILS)

func (t ParameterTable) Header() []string {
	return []string{"PARAMETER", "TYPE", "REQUIRED", "DESCRIPTION", "VALUES"}
}

func (t ParameterTable) Len() int {
	return len(t.Parameters)
}

func (t ParameterTable) Row(i int) []any {
	p := t.Parameters[i]
	var required any = "no"
	if p.Required {
		required = uitable.Bold{Value: "yes"}
	}
	var values []string
	for _, e := range p.Enum {
		values = append(values, fmt.Sprint(e))
	}
	result := strings.Join(values, ", ")
	if p.Default != nil {
		if result != "" {
			result += " "
		}
		result += fmt.Sprintf("(default %v)", p.Default)
	}
	return []any{p.Name, string(p.Type), required, p.Description, result}
}

///////////////////////////////////////////////////////////////////////////////
// WARNING TABLE (LIST)

func (t WarningTable) Header() []string {
	return []string{"SOURCE", "CANDIDATE", "ERROR"}
}

func (t WarningTable) Len() int {
	return len(t)
}

func (t WarningTable) Row(i int) []any {
	w := t[i]
	return []any{w.Source, w.Name, w.Error}
}

///////////////////////////////////////////////////////////////////////////////
// PROPERTY TABLE

func (t PropertyTable) Header() []string {
	return []string{"", ""}
}

func (t PropertyTable) Len() int {
	return len(t)
}

func (t PropertyTable) Row(i int) []any {
	return []any{uitable.Bold{Value: t[i].Key}, t[i].Value}
}
