package schema

import (
	"time"

	// Packages
	types "github.com/mutablelogic/go-server/pkg/types"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Transcript is a saved conversation with metadata about the session which
// produced it
type Transcript struct {
	Metadata     TranscriptMeta `json:"metadata"`
	Conversation *Conversation  `json:"conversation"`
}

// TranscriptMeta describes a saved conversation
type TranscriptMeta struct {
	Timestamp    time.Time `json:"timestamp"`
	MessageCount int       `json:"message_count"`
	Model        string    `json:"model"`
	API          string    `json:"api"`
}

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTranscript returns a transcript of the conversation. The message count
// is the number of user messages exchanged.
func NewTranscript(conversation *Conversation, model, api string) *Transcript {
	return &Transcript{
		Metadata: TranscriptMeta{
			Timestamp:    time.Now(),
			MessageCount: conversation.Count(RoleUser),
			Model:        model,
			API:          api,
		},
		Conversation: conversation.Copy(),
	}
}

////////////////////////////////////////////////////////////////////////////////
// STRINGIFY

func (t Transcript) String() string {
	return types.Stringify(t)
}
