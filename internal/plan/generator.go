// Package plan gera planos de ação (plano de negócios) a partir do
// pattern_prompt do tema, reaproveitando o gateway de chat.
package plan

import (
	"context"
	"errors"
	"log"

	openai "github.com/sashabaranov/go-openai"

	"chatpump/internal/chat"
	"chatpump/internal/model"
)

// ErrNoActionPlan indica tema sem gerador de plano habilitado.
var ErrNoActionPlan = errors.New("tema não possui plano de ação configurado")

// defaultPlanMessage é usada quando o cliente não manda instrução própria.
const defaultPlanMessage = "Gere o plano de ação para o meu negócio."

type ThemeStore interface {
	GetThemePrompt(ctx context.Context, themeID string) (*model.ThemePrompt, error)
}

type PlanRequest struct {
	ThemeID   string `json:"themeId"`
	UserEmail string `json:"userEmail,omitempty"`
	Message   string `json:"message,omitempty"`
}

// Generator compõe o prompt do plano: pattern_prompt do tema mais o
// fragmento de perfil do usuário quando disponível.
type Generator struct {
	Themes   ThemeStore
	Profiles chat.ProfileStore
	Keys     chat.KeyStore

	Model       string
	FallbackKey string
	NewClient   func(apiKey string) chat.Completer
}

func (g *Generator) Generate(ctx context.Context, req PlanRequest) (openai.ChatCompletionResponse, error) {
	theme, err := g.Themes.GetThemePrompt(ctx, req.ThemeID)
	if err != nil {
		log.Printf("[Plan] Erro ao buscar prompt do tema %s: %v", req.ThemeID, err)
		theme = nil
	}
	if theme == nil || !theme.ActionPlan || theme.PatternPrompt == "" {
		return openai.ChatCompletionResponse{}, ErrNoActionPlan
	}

	systemPrompt := theme.PatternPrompt
	if req.UserEmail != "" {
		if frags := g.loadProfileFragments(ctx, req.UserEmail); frags != nil {
			systemPrompt = systemPrompt + "\n\n" + frags.Fragment2
		}
	}

	apiKey, err := g.resolveAPIKey(ctx)
	if err != nil {
		return openai.ChatCompletionResponse{}, err
	}

	message := req.Message
	if message == "" {
		message = defaultPlanMessage
	}

	messages := chat.BuildMessages(systemPrompt, nil, message)
	payload := chat.NewChatRequest(g.Model, messages)

	return chat.CallOpenAI(ctx, g.NewClient(apiKey), payload)
}

func (g *Generator) loadProfileFragments(ctx context.Context, userEmail string) *chat.ProfileFragments {
	ent, err := g.Profiles.GetEntrepreneur(ctx, userEmail)
	if err != nil {
		log.Printf("[Plan] Erro ao buscar perfil do empreendedor %s: %v", userEmail, err)
		ent = nil
	}
	comp, err := g.Profiles.GetCompany(ctx, userEmail)
	if err != nil {
		log.Printf("[Plan] Erro ao buscar perfil da empresa %s: %v", userEmail, err)
		comp = nil
	}
	return chat.BuildProfileFragments(ent, comp)
}

func (g *Generator) resolveAPIKey(ctx context.Context) (string, error) {
	key, err := g.Keys.GetAPIKey(ctx, chat.OpenAIModelKey)
	if err != nil {
		log.Printf("[Plan] Erro ao buscar chave em modelkeys: %v", err)
	}
	if key == "" {
		key = g.FallbackKey
	}
	if key == "" {
		return "", chat.ErrMissingAPIKey
	}
	return key, nil
}
