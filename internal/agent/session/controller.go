package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/shreyan001/adaptic-backend/internal/agent/model"
	"github.com/shreyan001/adaptic-backend/internal/agent/stages"
	logx "github.com/shreyan001/adaptic-backend/pkg/logger"
)

// DefaultRunTimeout bounds the wall clock of one run, covering every model
// call it makes.
const DefaultRunTimeout = 120 * time.Second

const (
	loadingContent  = "Thinking..."
	fallbackContent = "Sorry, something went wrong on our side. Please try sending your message again."
	timeoutContent  = "the request timed out before the agent could finish"
	stepBudgetMsg   = "the agent could not complete the request"
)

// Controller executes one state-machine run per inbound request and turns
// stage output into the ordered wire-event sequence. It owns cancellation:
// the run is bound to the caller's context (client disconnect) plus a fixed
// wall-clock timeout, and the timer is released on every exit path.
type Controller struct {
	machine *stages.Machine
	timeout time.Duration
}

func NewController(machine *stages.Machine, timeout time.Duration) *Controller {
	if timeout <= 0 {
		timeout = DefaultRunTimeout
	}
	return &Controller{machine: machine, timeout: timeout}
}

// Run drives one state-machine run, emitting each wire event as soon as it is
// produced. Every run ends with exactly one end event, on success and on
// failure alike. The final conversation state is returned for transcript
// recording.
func (c *Controller) Run(ctx context.Context, st model.ConversationState, emit func(model.StreamEvent)) model.ConversationState {
	runID := uuid.NewString()
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	logx.Debug().Str("run_id", runID).Str("stage", string(st.Stage)).Msg("Run started")

	// One loading event per run, before any stage output.
	emit(model.LoadingEvent(loadingContent))

	emitted := false
	onStage := func(produced model.Stage, messages []model.StageMessage) {
		for _, msg := range messages {
			// No stage output after cancellation; the transport still
			// gets its end event below.
			if ctx.Err() != nil {
				return
			}
			if msg.Ticket != nil && produced == model.StageNftCreation {
				emit(model.WagerEvent(msg.Text, msg.Ticket))
			} else {
				emit(model.MessageEvent(msg.Text))
			}
			emitted = true
		}
	}

	final, err := c.machine.Run(ctx, st, onStage)
	if err != nil {
		logx.Error().Str("run_id", runID).Err(err).Msg("Run failed")
		if !emitted {
			emit(model.MessageEvent(fallbackContent))
		}
		emit(model.ErrorEvent(describeFailure(err)))
		emit(model.EndEvent())
		return final
	}

	logx.Debug().
		Str("run_id", runID).
		Str("stage", string(final.Stage)).
		Str("operation", string(final.Operation)).
		Msg("Run completed")
	emit(model.EndEvent())
	return final
}

// describeFailure maps run errors to the description carried by the error
// event. Budget exhaustion and timeouts get fixed generic descriptions.
func describeFailure(err error) string {
	switch {
	case errors.Is(err, stages.ErrStepBudgetExceeded):
		return stepBudgetMsg
	case errors.Is(err, context.DeadlineExceeded):
		return timeoutContent
	case errors.Is(err, context.Canceled):
		return "the request was canceled"
	default:
		return err.Error()
	}
}
