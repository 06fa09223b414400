package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cloudwego/eino/schema"

	"github.com/shreyan001/adaptic-backend/internal/agent/history"
	"github.com/shreyan001/adaptic-backend/internal/agent/model"
	logx "github.com/shreyan001/adaptic-backend/pkg/logger"
)

// AgentRequest is the inbound payload of one conversational turn. The client
// carries the full prior history on every call; conversation_id is optional
// and only enables transcript recording.
type AgentRequest struct {
	Input          string         `json:"input"`
	ChatHistory    []history.Turn `json:"chat_history"`
	ConversationID string         `json:"conversation_id"`
}

// handleAgent validates the request, opens the event stream, and relays the
// controller's wire events to the client as they are produced.
func (s *Server) handleAgent(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	var req AgentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Input) == "" {
		s.writeError(w, http.StatusBadRequest, "input is required")
		return
	}

	st := model.NewConversationState(req.Input, history.ToMessages(req.ChatHistory))

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")

	emit := func(ev model.StreamEvent) {
		data, err := json.Marshal(ev)
		if err != nil {
			logx.Error().Err(err).Str("event_type", ev.Type).Msg("failed to marshal stream event")
			return
		}
		if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
			logx.Debug().Err(err).Msg("client went away while streaming")
			return
		}
		flusher.Flush()
	}

	final := s.controller.Run(r.Context(), st, emit)

	s.recordTranscript(req, final)
}

// recordTranscript appends this turn to the conversation transcript when a
// conversation_id was supplied and a store is configured. Best effort: the
// stream has already closed, so failures are only logged.
func (s *Server) recordTranscript(req AgentRequest, final model.ConversationState) {
	if s.transcripts == nil || strings.TrimSpace(req.ConversationID) == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	turns := []*schema.Message{schema.UserMessage(req.Input)}
	for _, msg := range final.Messages {
		if strings.TrimSpace(msg.Text) == "" {
			continue
		}
		turns = append(turns, schema.AssistantMessage(msg.Text, nil))
	}

	for _, turn := range turns {
		if err := s.transcripts.AddTurn(ctx, req.ConversationID, turn); err != nil {
			logx.Error().
				Err(err).
				Str("conversation_id", req.ConversationID).
				Msg("failed to record transcript turn")
			return
		}
	}
}
