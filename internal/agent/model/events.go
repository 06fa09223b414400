package model

import (
	"encoding/json"
)

// Wire event types pushed to the client over the response stream, in emission
// order within a run: one loading, then message/wager events as stages produce
// them, then error (on failure) and exactly one end.
const (
	EventLoading = "loading"
	EventMessage = "message"
	EventWager   = "wager"
	EventError   = "error"
	EventEnd     = "end"
)

// ErrorPayload carries the failure description of an error event.
type ErrorPayload struct {
	Message string `json:"message"`
}

// StreamEvent is one discrete unit pushed to the client. The JSON shape
// depends on the event type, so marshalling is implemented by hand:
//
//	{"type":"loading","content":"...","wager":null}
//	{"type":"message","content":"...","wager":null}
//	{"type":"wager","content":"...","wager":{...}}
//	{"type":"error","payload":{"message":"..."}}
//	{"type":"end"}
type StreamEvent struct {
	Type    string
	Content string
	Wager   *TicketObject
	Payload *ErrorPayload
}

func (e StreamEvent) MarshalJSON() ([]byte, error) {
	switch e.Type {
	case EventError:
		return json.Marshal(struct {
			Type    string        `json:"type"`
			Payload *ErrorPayload `json:"payload"`
		}{e.Type, e.Payload})
	case EventEnd:
		return json.Marshal(struct {
			Type string `json:"type"`
		}{e.Type})
	default:
		return json.Marshal(struct {
			Type    string        `json:"type"`
			Content string        `json:"content"`
			Wager   *TicketObject `json:"wager"`
		}{e.Type, e.Content, e.Wager})
	}
}

func LoadingEvent(content string) StreamEvent {
	return StreamEvent{Type: EventLoading, Content: content}
}

func MessageEvent(content string) StreamEvent {
	return StreamEvent{Type: EventMessage, Content: content}
}

func WagerEvent(content string, ticket *TicketObject) StreamEvent {
	return StreamEvent{Type: EventWager, Content: content, Wager: ticket}
}

func ErrorEvent(message string) StreamEvent {
	return StreamEvent{Type: EventError, Payload: &ErrorPayload{Message: message}}
}

func EndEvent() StreamEvent {
	return StreamEvent{Type: EventEnd}
}
