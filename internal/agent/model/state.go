package model

import (
	"github.com/cloudwego/eino/schema"
)

// Stage identifies the active node of the conversation state machine.
type Stage string

const (
	StageInitial         Stage = "initial"
	StageEventExtraction Stage = "event_extraction"
	StageNftCreation     Stage = "nft_creation"
	StageCompleted       Stage = "completed"
)

// Operation tracks which high-level task the agent is working on. It advances
// monotonically within a run and never regresses.
type Operation string

const (
	OperationNone            Operation = ""
	OperationIntroducing     Operation = "introducing"
	OperationExtractingEvent Operation = "extracting_event"
	OperationFinalizing      Operation = "finalizing"
)

// StageMessage is one assistant-authored output line produced by a stage.
// A nil Ticket means plain text; a non-nil Ticket carries the structured
// payload the stage produced alongside the text.
type StageMessage struct {
	Text   string
	Ticket *TicketObject
}

// ConversationState is the value threaded through the stage handlers. A fresh
// state is built per inbound request from the caller-supplied utterance and
// history; nothing survives the request. Continuity across turns comes from
// the caller resubmitting the full prior history on every call.
type ConversationState struct {
	// Input is the latest user utterance. Required, non-empty.
	Input string

	// History holds the prior turns in conversation order.
	History []*schema.Message

	// Messages collects the lines emitted during the current stage only.
	// Each stage handler starts from an empty slice.
	Messages []StageMessage

	Operation Operation
	Stage     Stage

	// EventName and EventDate accumulate across stages. Once set they are
	// never cleared within a run; both must be non-empty before the
	// finalize stage runs.
	EventName string
	EventDate string

	// Ticket is produced only by the finalize stage and exists iff the
	// state has reached StageCompleted through it.
	Ticket *TicketObject
}

// NewConversationState builds the initial state for one run.
func NewConversationState(input string, history []*schema.Message) ConversationState {
	return ConversationState{
		Input:     input,
		History:   history,
		Operation: OperationNone,
		Stage:     StageInitial,
	}
}
