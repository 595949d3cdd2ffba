package plan

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"

	"chatpump/internal/chat"
	"chatpump/internal/model"
)

type fakeThemeStore struct {
	theme *model.ThemePrompt
	err   error
}

func (f *fakeThemeStore) GetThemePrompt(_ context.Context, _ string) (*model.ThemePrompt, error) {
	return f.theme, f.err
}

type fakeProfileStore struct {
	ent  *model.EntrepreneurProfile
	comp *model.CompanyProfile
}

func (f *fakeProfileStore) GetEntrepreneur(_ context.Context, _ string) (*model.EntrepreneurProfile, error) {
	return f.ent, nil
}

func (f *fakeProfileStore) GetCompany(_ context.Context, _ string) (*model.CompanyProfile, error) {
	return f.comp, nil
}

type fakeKeyStore struct {
	key string
}

func (f *fakeKeyStore) GetAPIKey(_ context.Context, _ string) (string, error) {
	return f.key, nil
}

type fakeCompleter struct {
	gotReq openai.ChatCompletionRequest
	resp   openai.ChatCompletionResponse
	err    error
}

func (f *fakeCompleter) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.gotReq = req
	return f.resp, f.err
}

func newTestGenerator(theme *model.ThemePrompt) (*Generator, *fakeCompleter) {
	completer := &fakeCompleter{
		resp: openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{
				{Message: openai.ChatCompletionMessage{Role: "assistant", Content: "plano gerado"}},
			},
		},
	}
	g := &Generator{
		Themes:    &fakeThemeStore{theme: theme},
		Profiles:  &fakeProfileStore{ent: &model.EntrepreneurProfile{FullName: "Ana"}},
		Keys:      &fakeKeyStore{key: "sk-teste"},
		Model:     "gpt-4o-mini",
		NewClient: func(string) chat.Completer { return completer },
	}
	return g, completer
}

func TestGenerateRequiresActionPlanTheme(t *testing.T) {
	cases := []struct {
		name  string
		theme *model.ThemePrompt
	}{
		{"tema inexistente", nil},
		{"plano de ação desabilitado", &model.ThemePrompt{PatternPrompt: "PADRÃO", ActionPlan: false}},
		{"sem pattern_prompt", &model.ThemePrompt{ActionPlan: true}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, _ := newTestGenerator(tc.theme)
			_, err := g.Generate(context.Background(), PlanRequest{ThemeID: "t1"})
			assert.ErrorIs(t, err, ErrNoActionPlan)
		})
	}
}

func TestGenerateComposesPatternWithProfile(t *testing.T) {
	g, completer := newTestGenerator(&model.ThemePrompt{
		ThemeID:       "t1",
		PatternPrompt: "PADRÃO DO PLANO",
		ActionPlan:    true,
	})

	resp, err := g.Generate(context.Background(), PlanRequest{ThemeID: "t1", UserEmail: "ana@pump.ia"})
	assert.NoError(t, err)
	assert.Equal(t, "plano gerado", resp.Choices[0].Message.Content)

	systemPrompt := completer.gotReq.Messages[0].Content
	assert.True(t, strings.HasPrefix(systemPrompt, "PADRÃO DO PLANO\n\n"))
	assert.Contains(t, systemPrompt, "nome: Ana")

	// Sem instrução própria o cliente recebe a mensagem padrão
	assert.Equal(t, defaultPlanMessage, completer.gotReq.Messages[1].Content)
	assert.Equal(t, 500, completer.gotReq.MaxTokens)
}

func TestHandlerReturns404WithoutActionPlan(t *testing.T) {
	g, _ := newTestGenerator(nil)
	req := httptest.NewRequest(http.MethodPost, "/action-plan", strings.NewReader(`{"themeId": "t1"}`))
	rec := httptest.NewRecorder()

	Handler(g)(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerGeneratesPlan(t *testing.T) {
	g, _ := newTestGenerator(&model.ThemePrompt{ThemeID: "t1", PatternPrompt: "PADRÃO", ActionPlan: true})
	req := httptest.NewRequest(http.MethodPost, "/action-plan", strings.NewReader(`{"themeId": "t1"}`))
	rec := httptest.NewRecorder()

	Handler(g)(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp openai.ChatCompletionResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "plano gerado", resp.Choices[0].Message.Content)
}

func TestHandlerRequiresThemeID(t *testing.T) {
	g, _ := newTestGenerator(nil)
	req := httptest.NewRequest(http.MethodPost, "/action-plan", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	Handler(g)(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
