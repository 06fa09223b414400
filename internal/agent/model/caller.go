package model

import (
	"context"

	"github.com/cloudwego/eino/schema"
)

// ModelCaller is the opaque language-model capability a stage may use at most
// once per execution. Implementations must honour ctx cancellation and be
// safe to call concurrently from multiple in-flight runs.
type ModelCaller interface {
	// Generate invokes the model with a system prompt, the prior turn
	// history, and the current user input as the final human turn, and
	// returns the raw reply text.
	Generate(ctx context.Context, systemPrompt string, history []*schema.Message, input string) (string, error)
}

// ModelCallerFunc adapts a plain function to the ModelCaller interface.
type ModelCallerFunc func(ctx context.Context, systemPrompt string, history []*schema.Message, input string) (string, error)

func (f ModelCallerFunc) Generate(ctx context.Context, systemPrompt string, history []*schema.Message, input string) (string, error) {
	return f(ctx, systemPrompt, history, input)
}
