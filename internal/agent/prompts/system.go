package prompts

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

//go:embed template/intro_prompt.txt
var introSystemPrompt string

//go:embed template/extraction_prompt.txt
var extractionSystemPrompt string

// MissingSentinel is substituted for a field the extraction stage has not
// collected yet, so the model can see what is still outstanding.
const MissingSentinel = "Missing"

// RenderIntroSystem renders the static introduction system prompt via the
// Eino prompt component. The template carries no placeholders; routing it
// through the component keeps prompt callbacks possible.
func RenderIntroSystem(ctx context.Context) (string, error) {
	return renderSystem(ctx, introSystemPrompt)
}

// RenderExtractionSystem renders the extraction system prompt with the
// currently collected event fields substituted in.
func RenderExtractionSystem(ctx context.Context, eventName, eventDate string) (string, error) {
	content := Render(extractionSystemPrompt, map[string]string{
		"eventName": orMissing(eventName),
		"eventDate": orMissing(eventDate),
	})
	return renderSystem(ctx, content)
}

func orMissing(v string) string {
	if strings.TrimSpace(v) == "" {
		return MissingSentinel
	}
	return v
}

// renderSystem wraps already-substituted content in the Eino prompt component
// using a messages placeholder, so literal braces in the copy survive intact.
func renderSystem(ctx context.Context, content string) (string, error) {
	tpl := prompt.FromMessages(
		schema.FString,
		schema.MessagesPlaceholder("system_messages", false),
	)
	msgs, err := tpl.Format(ctx, map[string]any{
		"system_messages": []*schema.Message{schema.SystemMessage(content)},
	})
	if err != nil {
		return "", fmt.Errorf("system prompt render: %w", err)
	}
	if len(msgs) == 0 || msgs[0] == nil {
		return "", fmt.Errorf("system prompt render: empty result")
	}
	return msgs[0].Content, nil
}
