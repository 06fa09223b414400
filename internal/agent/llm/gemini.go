package llm

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/gemini"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"github.com/shreyan001/adaptic-backend/internal/agent/model"
	logx "github.com/shreyan001/adaptic-backend/pkg/logger"
)

// Config holds what is needed to construct the Gemini-backed caller.
type Config struct {
	APIKey  string
	BaseURL string
	Model   model.AgentModelConfig
}

// GeminiCaller implements model.ModelCaller on top of the Eino Gemini chat
// model. A single instance is shared by all in-flight runs; the underlying
// client is safe for concurrent use.
type GeminiCaller struct {
	chatModel *gemini.ChatModel
	modelName string
}

// NewGeminiCaller creates the shared chat model for the agent.
func NewGeminiCaller(ctx context.Context, cfg Config) (*GeminiCaller, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions.BaseURL = cfg.BaseURL
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		logx.Error().Err(err).Msg("Error creating Gemini client")
		return nil, fmt.Errorf("error creating Gemini client: %w", err)
	}

	chatModel, err := gemini.NewChatModel(ctx, &gemini.Config{
		Client:      client,
		Model:       cfg.Model.Model,
		Temperature: &cfg.Model.Temperature,
		MaxTokens:   &cfg.Model.MaxTokens,
	})
	if err != nil {
		logx.Error().Err(err).Msg("Error creating agent chat model")
		return nil, fmt.Errorf("error creating agent chat model: %w", err)
	}

	return &GeminiCaller{chatModel: chatModel, modelName: cfg.Model.Model}, nil
}

// Generate invokes the model with the system prompt, prior history, and the
// current input as the final human turn, returning the raw reply text.
func (g *GeminiCaller) Generate(ctx context.Context, systemPrompt string, history []*schema.Message, input string) (string, error) {
	messages := make([]*schema.Message, 0, len(history)+2)
	messages = append(messages, schema.SystemMessage(systemPrompt))
	messages = append(messages, history...)
	messages = append(messages, schema.UserMessage(input))

	out, err := g.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if out == nil {
		return "", fmt.Errorf("gemini generate: empty response")
	}

	g.logUsage(out)
	return out.Content, nil
}

// logUsage computes and logs USD cost for the call when usage is reported.
func (g *GeminiCaller) logUsage(out *schema.Message) {
	if out.ResponseMeta == nil || out.ResponseMeta.Usage == nil {
		return
	}
	usage := out.ResponseMeta.Usage
	pricing := model.ResolvePricing(g.modelName)
	inC, outC, totalC := model.ComputeCost(usage, pricing)
	logx.Debug().
		Str("model", g.modelName).
		Int("prompt_tokens", usage.PromptTokens).
		Int("completion_tokens", usage.CompletionTokens).
		Int("total_tokens", usage.TotalTokens).
		Float64("input_cost_usd", inC).
		Float64("output_cost_usd", outC).
		Float64("total_cost_usd", totalC).
		Msg("LLM usage")
}

var _ model.ModelCaller = (*GeminiCaller)(nil)
