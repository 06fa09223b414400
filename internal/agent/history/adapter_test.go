package history

import (
	"encoding/json"
	"testing"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMessagesPreservesOrder(t *testing.T) {
	msgs := ToMessages([]Turn{
		{Role: "human", Content: "a"},
		{Role: "ai", Content: "b"},
	})
	require.Len(t, msgs, 2)
	assert.Equal(t, schema.User, msgs[0].Role)
	assert.Equal(t, "a", msgs[0].Content)
	assert.Equal(t, schema.Assistant, msgs[1].Role)
	assert.Equal(t, "b", msgs[1].Content)
}

func TestToMessagesRoleMatchingIsCaseInsensitive(t *testing.T) {
	msgs := ToMessages([]Turn{
		{Role: "Human", Content: "a"},
		{Role: "ASSISTANT", Content: "b"},
		{Role: "Ai", Content: "c"},
	})
	require.Len(t, msgs, 3)
	assert.Equal(t, schema.User, msgs[0].Role)
	assert.Equal(t, schema.Assistant, msgs[1].Role)
	assert.Equal(t, schema.Assistant, msgs[2].Role)
}

func TestToMessagesUnknownRoleFallsBackToHuman(t *testing.T) {
	msgs := ToMessages([]Turn{{Role: "system", Content: "x"}})
	require.Len(t, msgs, 1)
	assert.Equal(t, schema.User, msgs[0].Role)
	assert.Equal(t, "x", msgs[0].Content)
}

func TestToMessagesEmptyInput(t *testing.T) {
	assert.Empty(t, ToMessages(nil))
	assert.Empty(t, ToMessages([]Turn{}))
}

func TestTurnUnmarshalObjectForm(t *testing.T) {
	var turn Turn
	require.NoError(t, json.Unmarshal([]byte(`{"role":"human","content":"hi"}`), &turn))
	assert.Equal(t, Turn{Role: "human", Content: "hi"}, turn)
}

func TestTurnUnmarshalPairForm(t *testing.T) {
	var turn Turn
	require.NoError(t, json.Unmarshal([]byte(`["ai","hello"]`), &turn))
	assert.Equal(t, Turn{Role: "ai", Content: "hello"}, turn)
}

func TestTurnUnmarshalRejectsBadPair(t *testing.T) {
	var turn Turn
	assert.Error(t, json.Unmarshal([]byte(`["ai","hello","extra"]`), &turn))
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &turn))
}
