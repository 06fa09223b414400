package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadingAndMessageEventsCarryNullWager(t *testing.T) {
	b, err := json.Marshal(LoadingEvent("Thinking..."))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"loading","content":"Thinking...","wager":null}`, string(b))

	b, err = json.Marshal(MessageEvent("hello"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"message","content":"hello","wager":null}`, string(b))
}

func TestWagerEventCarriesTicket(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	ticket := NewTicketObject("Summer Gala", "25/12/2025", now)

	b, err := json.Marshal(WagerEvent("done", ticket))
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(b, &decoded))
	assert.Equal(t, "wager", decoded["type"])
	assert.Equal(t, "done", decoded["content"])
	wager, ok := decoded["wager"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Summer Gala", wager["eventName"])
	assert.Equal(t, "25/12/2025", wager["eventDate"])
}

func TestErrorEventShape(t *testing.T) {
	b, err := json.Marshal(ErrorEvent("boom"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"error","payload":{"message":"boom"}}`, string(b))
}

func TestEndEventShape(t *testing.T) {
	b, err := json.Marshal(EndEvent())
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"end"}`, string(b))
}

func TestNewTicketObjectAppliesDefaultsAndFallbacks(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	ticket := NewTicketObject("  ", "", now)
	assert.Equal(t, UnknownEventName, ticket.EventName)
	assert.Equal(t, UnknownEventDate, ticket.EventDate)
	assert.Equal(t, DefaultTicketPrice, ticket.Price)
	assert.Equal(t, DefaultTicketCurrency, ticket.Currency)
	assert.Equal(t, DefaultMaxSupply, ticket.MaxSupply)
	assert.Equal(t, DefaultTransferable, ticket.Transferable)
	assert.Equal(t, DefaultBurnable, ticket.Burnable)
	assert.Equal(t, now, ticket.CreatedAt)
}
