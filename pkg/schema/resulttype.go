package schema

import (
	"encoding/json"
	"fmt"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// ResultType is why a model call, or a whole exchange, finished
type ResultType uint

////////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	ResultStop             ResultType = iota // The model answered
	ResultMaxTokens                          // The answer was cut off at the token limit
	ResultBlocked                            // A content filter stopped the answer
	ResultToolCall                           // The model asked for tools
	ResultError                              // The provider reported an error
	ResultOther                              // Any other finish reason
	ResultMaxIterations                      // The tool round limit was reached
	ResultModelUnavailable                   // The model could not be reached
)

// Wire names, indexed by ResultType
var resultNames = [...]string{
	ResultStop:             "stop",
	ResultMaxTokens:        "max_tokens",
	ResultBlocked:          "blocked",
	ResultToolCall:         "tool_call",
	ResultError:            "error",
	ResultOther:            "other",
	ResultMaxIterations:    "max_iterations",
	ResultModelUnavailable: "model_unavailable",
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// ParseResultType returns the result type for a wire name
func ParseResultType(name string) (ResultType, error) {
	for i, n := range resultNames {
		if n == name {
			return ResultType(i), nil
		}
	}
	return ResultOther, fmt.Errorf("unknown result type: %q", name)
}

// Final reports whether the exchange ended without the model asking for
// more tools
func (r ResultType) Final() bool {
	return r != ResultToolCall
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (r ResultType) String() string {
	if int(r) < len(resultNames) {
		return resultNames[r]
	}
	return "unknown"
}

////////////////////////////////////////////////////////////////////////////////
// JSON

func (r ResultType) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *ResultType) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	result, err := ParseResultType(name)
	if err != nil {
		return err
	}
	*r = result
	return nil
}
