/*
calculator implements a tool which evaluates arithmetic expressions
with github.com/expr-lang/expr
*/
package calculator

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	// Packages
	expr "github.com/expr-lang/expr"
	chatbot "github.com/mutablelogic/go-chatbot"
	schema "github.com/mutablelogic/go-chatbot/pkg/schema"
	tool "github.com/mutablelogic/go-chatbot/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type calculator struct {
	options []expr.Option
}

var _ tool.Tool = (*calculator)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	toolName        = "calculator"
	toolDescription = "Perform mathematical calculations including basic arithmetic, trigonometry, and more."
	maxNodes        = 500
)

var (
	constants = map[string]any{
		"pi": math.Pi,
		"e":  math.E,
	}
	unary = map[string]func(float64) float64{
		"sin":  math.Sin,
		"cos":  math.Cos,
		"tan":  math.Tan,
		"sqrt": math.Sqrt,
		"log":  math.Log10,
		"ln":   math.Log,
		"exp":  math.Exp,
	}
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

func New() tool.Tool {
	options := []expr.Option{
		expr.Env(constants),
		expr.MaxNodes(maxNodes),
		expr.Function("pow", func(params ...any) (any, error) {
			if len(params) != 2 {
				return nil, fmt.Errorf("pow expects 2 arguments, got %d", len(params))
			}
			x, err := toFloat(params[0])
			if err != nil {
				return nil, err
			}
			y, err := toFloat(params[1])
			if err != nil {
				return nil, err
			}
			return math.Pow(x, y), nil
		}),
	}
	for name, fn := range unary {
		options = append(options, expr.Function(name, func(params ...any) (any, error) {
			if len(params) != 1 {
				return nil, fmt.Errorf("%s expects 1 argument, got %d", name, len(params))
			}
			x, err := toFloat(params[0])
			if err != nil {
				return nil, err
			}
			return fn(x), nil
		}))
	}
	return &calculator{options: options}
}

///////////////////////////////////////////////////////////////////////////////
// TOOL INTERFACE

func (c *calculator) Spec() schema.ToolSpec {
	return schema.ToolSpec{
		Name:        toolName,
		Description: toolDescription,
		Parameters: []schema.ToolParameter{
			schema.NewParameter("expression", schema.TypeString, "The mathematical expression to evaluate (e.g., '2 + 3 * 4', 'sin(45)', 'sqrt(16)')", true),
		},
	}
}

func (c *calculator) Execute(_ context.Context, args schema.Args) (string, error) {
	input := strings.ToLower(strings.TrimSpace(args.String("expression")))
	if input == "" {
		return "", chatbot.ErrBadParameter.With("missing expression")
	}

	value, err := c.Eval(input)
	if err != nil {
		return "", chatbot.ErrBadParameter.Withf("error calculating %q: %v", input, err)
	}

	return "Result: " + format(value), nil
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Eval compiles and runs an expression, returning a finite number
func (c *calculator) Eval(input string) (float64, error) {
	program, err := expr.Compile(input, c.options...)
	if err != nil {
		return 0, err
	}
	result, err := expr.Run(program, constants)
	if err != nil {
		return 0, err
	}
	value, err := toFloat(result)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("result is not a finite number")
	}
	return value, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func toFloat(v any) (float64, error) {
	switch v := v.(type) {
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case uint:
		return float64(v), nil
	case uint64:
		return float64(v), nil
	}
	return 0, fmt.Errorf("not a number: %v", v)
}

func format(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', 12, 64)
}
