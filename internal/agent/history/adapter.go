package history

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/schema"
	logx "github.com/shreyan001/adaptic-backend/pkg/logger"
)

// Role labels recognized on the wire. Matching is case-insensitive; anything
// unrecognized is treated as a human turn with a logged diagnostic.
const (
	RoleHuman     = "human"
	RoleAssistant = "assistant"
	RoleAI        = "ai"
)

// Turn is one historical utterance as submitted by the client. It accepts
// both the object form {"role":"human","content":"hi"} and the two-element
// array form ["human","hi"] the existing JS client sends.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func (t *Turn) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "[") {
		var pair []string
		if err := json.Unmarshal(data, &pair); err != nil {
			return fmt.Errorf("history turn pair: %w", err)
		}
		if len(pair) != 2 {
			return fmt.Errorf("history turn pair: expected 2 elements, got %d", len(pair))
		}
		t.Role = pair[0]
		t.Content = pair[1]
		return nil
	}

	type alias Turn
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return fmt.Errorf("history turn object: %w", err)
	}
	*t = Turn(a)
	return nil
}

// ToMessages converts wire-level turns into the ordered message sequence
// the model consumes. Order is preserved exactly; empty input yields an
// empty (nil) result.
func ToMessages(turns []Turn) []*schema.Message {
	if len(turns) == 0 {
		return nil
	}
	msgs := make([]*schema.Message, 0, len(turns))
	for _, t := range turns {
		switch strings.ToLower(strings.TrimSpace(t.Role)) {
		case RoleHuman:
			msgs = append(msgs, schema.UserMessage(t.Content))
		case RoleAssistant, RoleAI:
			msgs = append(msgs, schema.AssistantMessage(t.Content, nil))
		default:
			logx.Warn().Str("role", t.Role).Msg("Unrecognized history role label, treating as human")
			msgs = append(msgs, schema.UserMessage(t.Content))
		}
	}
	return msgs
}
