package stages

import (
	"context"
	"fmt"
	"strings"

	"github.com/shreyan001/adaptic-backend/internal/agent/model"
	"github.com/shreyan001/adaptic-backend/internal/agent/prompts"
	logx "github.com/shreyan001/adaptic-backend/pkg/logger"
)

// intentKeywords signal a desire to create an event or issue tickets. The
// introduce stage matches them against the lowercased input and skips the
// model call entirely when one is present.
var intentKeywords = []string{"create", "event", "ticket", "nft", "deploy", "contract"}

func hasIntentKeyword(input string) bool {
	lowered := strings.ToLower(input)
	for _, kw := range intentKeywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// introduce handles the Initial stage. Intent keywords route straight to
// extraction without speaking; otherwise the model answers with the platform
// introduction and the run ends.
func (m *Machine) introduce(ctx context.Context, st model.ConversationState) (model.ConversationState, outcome, error) {
	if hasIntentKeyword(st.Input) {
		logx.Debug().Msg("Intent keyword matched, routing to event extraction")
		st.Operation = model.OperationExtractingEvent
		return st, outcomeIntentMatched, nil
	}

	st.Operation = model.OperationIntroducing
	systemPrompt, err := prompts.RenderIntroSystem(ctx)
	if err != nil {
		return st, outcomeNone, fmt.Errorf("render intro prompt: %w", err)
	}

	reply, err := m.caller.Generate(ctx, systemPrompt, st.History, st.Input)
	if err != nil {
		return st, outcomeNone, fmt.Errorf("introduce stage model call: %w", err)
	}

	st.Messages = append(st.Messages, model.StageMessage{Text: reply})
	return st, outcomeIntroduced, nil
}

// extractEvent handles the EventExtraction stage. The model either confirms
// both fields via the completion marker, or asks a clarifying question the
// caller must answer in a later request.
func (m *Machine) extractEvent(ctx context.Context, st model.ConversationState) (model.ConversationState, outcome, error) {
	st.Operation = model.OperationExtractingEvent

	systemPrompt, err := prompts.RenderExtractionSystem(ctx, st.EventName, st.EventDate)
	if err != nil {
		return st, outcomeNone, fmt.Errorf("render extraction prompt: %w", err)
	}

	reply, err := m.caller.Generate(ctx, systemPrompt, st.History, st.Input)
	if err != nil {
		return st, outcomeNone, fmt.Errorf("extraction stage model call: %w", err)
	}

	name, date, ok := ParseExtractionReply(reply)
	if !ok {
		// Clarifying question for the user; the next request resumes here.
		st.Messages = append(st.Messages, model.StageMessage{Text: reply})
		return st, outcomeAwaitingInput, nil
	}

	// Extracted dates are trusted as the model reports them; no server-side
	// syntax check beyond the two-field split.
	st.EventName = name
	st.EventDate = date
	logx.Debug().Str("event_name", name).Str("event_date", date).Msg("Event fields extracted")
	return st, outcomeExtracted, nil
}

// finalizeTicket handles the NftCreation stage. No model call: the ticket
// object is synthesized deterministically from the collected fields plus the
// fixed contract defaults.
func (m *Machine) finalizeTicket(ctx context.Context, st model.ConversationState) (model.ConversationState, outcome, error) {
	st.Operation = model.OperationFinalizing

	ticket := model.NewTicketObject(st.EventName, st.EventDate, m.now())
	st.Ticket = ticket

	summary := fmt.Sprintf(
		"Your ticket setup is ready! Event: %s on %s. Tickets are priced at %s %s with a maximum supply of %d (transferable: %t, burnable: %t).",
		ticket.EventName, ticket.EventDate,
		ticket.Price, ticket.Currency, ticket.MaxSupply,
		ticket.Transferable, ticket.Burnable,
	)
	st.Messages = append(st.Messages, model.StageMessage{Text: summary, Ticket: ticket})
	return st, outcomeFinalized, nil
}
