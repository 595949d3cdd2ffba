package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"

	"chatpump/internal/model"
)

func postChat(t *testing.T, orc *Orchestrator, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(body))
	rec := httptest.NewRecorder()
	Handler(orc)(rec, req)
	return rec
}

func TestHandlerRejectsMalformedBody(t *testing.T) {
	deps := newTestDeps()

	rec := postChat(t, deps.orc, `{"message": `)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body errorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Error)
}

func TestHandlerRejectsEmptyMessage(t *testing.T) {
	deps := newTestDeps()

	rec := postChat(t, deps.orc, `{"message": "   "}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandlerRejectsWrongMethod(t *testing.T) {
	deps := newTestDeps()
	req := httptest.NewRequest(http.MethodGet, "/chat", nil)
	rec := httptest.NewRecorder()

	Handler(deps.orc)(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandlerReturnsRawCompletionJSON(t *testing.T) {
	deps := newTestDeps()

	rec := postChat(t, deps.orc, `{"message": "Como aumentar vendas?"}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp openai.ChatCompletionResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "resposta da IA", resp.Choices[0].Message.Content)
}

func TestHandlerMapsUpstreamFailureTo500(t *testing.T) {
	deps := newTestDeps()
	deps.completer.err = &openai.APIError{HTTPStatusCode: 429, Message: "rate limited"}

	rec := postChat(t, deps.orc, `{"message": "oi"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body errorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "OpenAI API error: 429", body.Error)
}

type fakeHistoryStore struct {
	msgs []model.ChatMessage
	err  error
}

func (f *fakeHistoryStore) ListBySession(_ context.Context, _ string) ([]model.ChatMessage, error) {
	return f.msgs, f.err
}

func TestHistoryHandlerRequiresSessionID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/chat/history", nil)
	rec := httptest.NewRecorder()

	HistoryHandler(&fakeHistoryStore{})(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistoryHandlerReturnsMessages(t *testing.T) {
	store := &fakeHistoryStore{msgs: []model.ChatMessage{
		{Role: "user", Content: "oi"},
		{Role: "assistant", Content: "olá"},
	}}
	req := httptest.NewRequest(http.MethodGet, "/chat/history?session_id=s1", nil)
	rec := httptest.NewRecorder()

	HistoryHandler(store)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var msgs []model.ChatMessage
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msgs))
	assert.Len(t, msgs, 2)
}
