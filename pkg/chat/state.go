package chat

///////////////////////////////////////////////////////////////////////////////
// TYPES

// State of a session within the chat loop
type State uint32

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	AwaitingUserInput State = iota // Idle, waiting for the next message
	ModelCall                      // Waiting for the model
	ToolDispatch                   // Running a batch of tool calls
	FinalResponse                  // Reply is being returned
)

///////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (s State) String() string {
	switch s {
	case AwaitingUserInput:
		return "awaiting_user_input"
	case ModelCall:
		return "model_call"
	case ToolDispatch:
		return "tool_dispatch"
	case FinalResponse:
		return "final_response"
	default:
		return "unknown"
	}
}
