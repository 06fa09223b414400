package model

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

// TranscriptStore records conversation turns for audit and recall. The state
// machine never reads from it; conversational continuity always comes from
// the history the client resubmits.
type TranscriptStore interface {
	// AddTurn appends one turn to the conversation transcript.
	AddTurn(ctx context.Context, conversationID string, message *schema.Message) error

	// LoadTranscript retrieves the recorded transcript for a conversation.
	LoadTranscript(ctx context.Context, conversationID string) ([]*schema.Message, error)

	// ClearTranscript removes the recorded transcript for a conversation.
	ClearTranscript(ctx context.Context, conversationID string) error

	// TurnCount returns the number of recorded turns.
	TurnCount(ctx context.Context, conversationID string) (int, error)
}
