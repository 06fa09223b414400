package stages

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shreyan001/adaptic-backend/internal/agent/model"
	logx "github.com/shreyan001/adaptic-backend/pkg/logger"
)

// DefaultMaxStageSteps caps stage executions per run so the machine
// terminates even if a stage keeps re-entering itself.
const DefaultMaxStageSteps = 100

// ErrStepBudgetExceeded is returned when a run exhausts its stage-execution
// budget without reaching the terminal stage.
var ErrStepBudgetExceeded = errors.New("stage step budget exceeded")

// outcome is the condition a stage handler observed; together with the
// current stage it selects the next stage from the transition table.
type outcome string

const (
	outcomeNone          outcome = ""
	outcomeIntentMatched outcome = "intent_matched"
	outcomeIntroduced    outcome = "introduced"
	outcomeExtracted     outcome = "extracted"
	outcomeAwaitingInput outcome = "awaiting_input"
	outcomeFinalized     outcome = "finalized"
)

// transitions is the complete edge set of the conversation stage DAG.
// Completed is the single terminal node and has no outgoing edges.
var transitions = map[model.Stage]map[outcome]model.Stage{
	model.StageInitial: {
		outcomeIntentMatched: model.StageEventExtraction,
		outcomeIntroduced:    model.StageCompleted,
	},
	model.StageEventExtraction: {
		outcomeExtracted:     model.StageNftCreation,
		outcomeAwaitingInput: model.StageEventExtraction,
	},
	model.StageNftCreation: {
		outcomeFinalized: model.StageCompleted,
	},
}

type handler func(ctx context.Context, st model.ConversationState) (model.ConversationState, outcome, error)

// Machine executes the conversation stage handlers against the transition
// table. It holds no per-run state and is safe to share across requests.
type Machine struct {
	caller   model.ModelCaller
	maxSteps int
	now      func() time.Time
	handlers map[model.Stage]handler
}

// NewMachine builds a Machine around the given model capability. A maxSteps
// of zero or less falls back to DefaultMaxStageSteps.
func NewMachine(caller model.ModelCaller, maxSteps int) (*Machine, error) {
	if caller == nil {
		return nil, fmt.Errorf("model caller is nil")
	}
	if maxSteps <= 0 {
		maxSteps = DefaultMaxStageSteps
	}

	m := &Machine{
		caller:   caller,
		maxSteps: maxSteps,
		now:      time.Now,
	}
	m.handlers = map[model.Stage]handler{
		model.StageInitial:         m.introduce,
		model.StageEventExtraction: m.extractEvent,
		model.StageNftCreation:     m.finalizeTicket,
	}
	return m, nil
}

// step executes the handler for the current stage and advances the stage per
// the transition table. Messages are reset so they hold only this stage's
// output.
func (m *Machine) step(ctx context.Context, st model.ConversationState) (model.ConversationState, outcome, error) {
	h, ok := m.handlers[st.Stage]
	if !ok {
		return st, outcomeNone, fmt.Errorf("no handler for stage %q", st.Stage)
	}

	from := st.Stage
	st.Messages = nil
	st, out, err := h(ctx, st)
	if err != nil {
		return st, outcomeNone, err
	}

	next, ok := transitions[from][out]
	if !ok {
		return st, outcomeNone, fmt.Errorf("no transition from stage %q on outcome %q", from, out)
	}

	logx.Debug().
		Str("from", string(from)).
		Str("outcome", string(out)).
		Str("to", string(next)).
		Msg("Stage transition")
	st.Stage = next
	return st, out, nil
}

// Run drives the state machine from the given state until the terminal stage
// is reached or a stage reports it is awaiting further user input. observe,
// when non-nil, is called after every stage with the stage that produced the
// output and the messages it emitted, in execution order.
func (m *Machine) Run(
	ctx context.Context,
	st model.ConversationState,
	observe func(produced model.Stage, messages []model.StageMessage),
) (model.ConversationState, error) {
	steps := 0
	for st.Stage != model.StageCompleted {
		if steps >= m.maxSteps {
			logx.Error().Int("max_steps", m.maxSteps).Msg("Run exhausted its stage step budget")
			return st, ErrStepBudgetExceeded
		}
		if err := ctx.Err(); err != nil {
			return st, err
		}

		from := st.Stage
		next, out, err := m.step(ctx, st)
		if err != nil {
			return st, err
		}
		st = next
		steps++

		if observe != nil && len(st.Messages) > 0 {
			observe(from, st.Messages)
		}

		if out == outcomeAwaitingInput {
			// The caller must resubmit with the next turn appended to
			// history before the conversation can advance.
			break
		}
	}
	return st, nil
}
