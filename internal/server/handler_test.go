package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shreyan001/adaptic-backend/internal/agent/model"
	"github.com/shreyan001/adaptic-backend/internal/agent/session"
	"github.com/shreyan001/adaptic-backend/internal/agent/stages"
)

type stubCaller struct {
	reply   string
	history []*schema.Message
}

func (s *stubCaller) Generate(_ context.Context, _ string, history []*schema.Message, _ string) (string, error) {
	s.history = history
	return s.reply, nil
}

func newTestServer(t *testing.T, caller model.ModelCaller) *Server {
	t.Helper()
	machine, err := stages.NewMachine(caller, 0)
	require.NoError(t, err)
	controller := session.NewController(machine, time.Second)
	return New(model.ServerConfig{Addr: ":0", AllowedOrigin: "*"}, controller, nil)
}

// decodeStream parses the data: frames of an SSE body into events.
func decodeStream(t *testing.T, body string) []map[string]any {
	t.Helper()
	var events []map[string]any
	for _, line := range strings.Split(body, "\n") {
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var ev map[string]any
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev))
		events = append(events, ev)
	}
	return events
}

func postAgent(t *testing.T, s *Server, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/agent", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHandleAgentRejectsMissingInput(t *testing.T) {
	s := newTestServer(t, &stubCaller{reply: "hi"})

	rec := postAgent(t, s, `{"input":"  "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "input is required")
	assert.NotContains(t, rec.Body.String(), "data:")
}

func TestHandleAgentRejectsMalformedBody(t *testing.T) {
	s := newTestServer(t, &stubCaller{reply: "hi"})

	rec := postAgent(t, s, `{"input": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postAgent(t, s, `{"input":"hi","chat_history":[["human"]]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleAgentStreamsIntroduction(t *testing.T) {
	s := newTestServer(t, &stubCaller{reply: "Welcome to Adaptic!"})

	rec := postAgent(t, s, `{"input":"hello there"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/event-stream", rec.Header().Get("Content-Type"))

	events := decodeStream(t, rec.Body.String())
	require.Len(t, events, 3)
	assert.Equal(t, "loading", events[0]["type"])
	assert.Equal(t, "message", events[1]["type"])
	assert.Equal(t, "Welcome to Adaptic!", events[1]["content"])
	assert.Equal(t, "end", events[2]["type"])
}

func TestHandleAgentStreamsTicketFlow(t *testing.T) {
	s := newTestServer(t, &stubCaller{reply: "EXTRACTION_COMPLETE: Summer Gala | 25/12/2025"})

	rec := postAgent(t, s, `{"input":"create a ticket for my event"}`)
	events := decodeStream(t, rec.Body.String())
	require.Len(t, events, 3)
	assert.Equal(t, "loading", events[0]["type"])
	assert.Equal(t, "wager", events[1]["type"])
	wager, ok := events[1]["wager"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Summer Gala", wager["eventName"])
	assert.Equal(t, "end", events[2]["type"])
}

func TestHandleAgentAcceptsPairFormHistory(t *testing.T) {
	caller := &stubCaller{reply: "Welcome back!"}
	s := newTestServer(t, caller)

	rec := postAgent(t, s, `{"input":"hello again","chat_history":[["human","hi"],["ai","hello!"]]}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, caller.history, 2)
	assert.Equal(t, schema.User, caller.history[0].Role)
	assert.Equal(t, "hi", caller.history[0].Content)
	assert.Equal(t, schema.Assistant, caller.history[1].Role)
	assert.Equal(t, "hello!", caller.history[1].Content)
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, &stubCaller{reply: "hi"})

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
