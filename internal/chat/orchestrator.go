package chat

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	openai "github.com/sashabaranov/go-openai"

	"chatpump/internal/model"
)

// OpenAIModelKey identifica a credencial do provedor na tabela modelkeys.
const OpenAIModelKey = "OpenAI"

// ErrMissingAPIKey é o único erro de configuração fatal do pipeline.
var ErrMissingAPIKey = errors.New("chave de API do OpenAI não configurada")

type ProfileStore interface {
	GetEntrepreneur(ctx context.Context, userEmail string) (*model.EntrepreneurProfile, error)
	GetCompany(ctx context.Context, userEmail string) (*model.CompanyProfile, error)
}

type MessageStore interface {
	ListRecent(ctx context.Context, sessionID string, limit int) ([]model.ChatMessage, error)
	Append(ctx context.Context, msg model.ChatMessage) error
}

type KeyStore interface {
	GetAPIKey(ctx context.Context, modelName string) (string, error)
}

// Orchestrator coordena o pipeline de montagem de prompt: estado da sessão,
// componentes de sistema, fragmentos de perfil, chamada à IA e auditoria.
type Orchestrator struct {
	Fragments FragmentStore
	Profiles  ProfileStore
	Messages  MessageStore
	Logs      LogStore
	Keys      KeyStore
	Cache     HistoryCache // opcional

	Model       string
	FallbackKey string

	// NewClient cria o cliente do provedor com a chave resolvida por
	// requisição (a chave mora no banco, não no processo).
	NewClient func(apiKey string) Completer
}

// ProcessChatMessage executa uma rodada completa de chat.
//
// Leituras de tema, perfil e histórico degradam para ausência em caso de
// erro; apenas a falta da chave de API e a falha da própria chamada à IA
// interrompem a requisição.
func (o *Orchestrator) ProcessChatMessage(ctx context.Context, req ChatRequest) (openai.ChatCompletionResponse, error) {
	history := o.loadHistory(ctx, req.SessionID)

	// Primeira interação: sessão nova ou sem mensagens anteriores
	isFirstInteraction := req.SessionID == "" || len(history) == 0
	hasFurtivePrompt := req.FurtivePrompt != nil && req.FurtivePrompt.Text != ""

	set := GetSystemPrompts(ctx, o.Fragments, req.ThemeID)
	o.resolveThemeTitle(ctx, req.ThemeID, set)

	frags := o.loadProfileFragments(ctx, req.UserEmail)

	injectProfile := isFirstInteraction || hasFurtivePrompt
	systemPrompt := AssembleSystemPrompt(injectProfile, set, frags)

	finalUserMessage := req.Message
	if hasFurtivePrompt {
		finalUserMessage = req.FurtivePrompt.Text + " " + req.Message
	}

	apiKey, err := o.resolveAPIKey(ctx)
	if err != nil {
		return openai.ChatCompletionResponse{}, err
	}

	messages := BuildMessages(systemPrompt, history, finalUserMessage)
	payload := NewChatRequest(o.Model, messages)

	resp, err := CallOpenAI(ctx, o.NewClient(apiKey), payload)
	if err != nil {
		return openai.ChatCompletionResponse{}, err
	}

	o.persistTurn(ctx, req, resp)

	// Auditoria fora do caminho da resposta: o log nunca bloqueia o chat.
	// O system_prompt gravado é a mesma string enviada à IA.
	rawPayload, _ := json.Marshal(payload)
	go SavePromptLog(o.Logs, model.PromptLog{
		UserEmail:    req.UserEmail,
		SystemPrompt: systemPrompt,
		UserMessage:  req.Message,
		FullPayload:  rawPayload,
	})

	return resp, nil
}

// loadHistory monta a janela das últimas mensagens da sessão. Tenta o cache
// redis primeiro e cai para o Postgres; qualquer erro vira histórico vazio.
func (o *Orchestrator) loadHistory(ctx context.Context, sessionID string) []model.ChatMessage {
	if sessionID == "" {
		return nil
	}

	if o.Cache != nil {
		if cached, err := o.Cache.Get(ctx, sessionID); err == nil && len(cached) > 0 {
			return lastN(cached, historyLimit)
		}
	}

	history, err := o.Messages.ListRecent(ctx, sessionID, historyLimit)
	if err != nil {
		log.Printf("[Orchestrator] Erro ao carregar histórico da sessão %s: %v", sessionID, err)
		return nil
	}
	return history
}

// resolveThemeTitle garante um título para a linha "Contexto do tema" quando
// a linha de theme_prompts não traz título próprio.
func (o *Orchestrator) resolveThemeTitle(ctx context.Context, themeID string, set *SystemPromptSet) {
	if themeID == "" || set.Theme == nil || set.Theme.Title != "" {
		return
	}
	name, err := o.Fragments.GetThemeName(ctx, themeID)
	if err != nil {
		log.Printf("[Orchestrator] Erro ao buscar nome do tema %s: %v", themeID, err)
		return
	}
	set.Theme.Title = name
}

func (o *Orchestrator) loadProfileFragments(ctx context.Context, userEmail string) *ProfileFragments {
	if userEmail == "" {
		return nil
	}

	ent, err := o.Profiles.GetEntrepreneur(ctx, userEmail)
	if err != nil {
		log.Printf("[Orchestrator] Erro ao buscar perfil do empreendedor %s: %v", userEmail, err)
		ent = nil
	}

	comp, err := o.Profiles.GetCompany(ctx, userEmail)
	if err != nil {
		log.Printf("[Orchestrator] Erro ao buscar perfil da empresa %s: %v", userEmail, err)
		comp = nil
	}

	return BuildProfileFragments(ent, comp)
}

func (o *Orchestrator) resolveAPIKey(ctx context.Context) (string, error) {
	key, err := o.Keys.GetAPIKey(ctx, OpenAIModelKey)
	if err != nil {
		log.Printf("[Orchestrator] Erro ao buscar chave em modelkeys: %v", err)
	}
	if key == "" {
		key = o.FallbackKey
	}
	if key == "" {
		return "", ErrMissingAPIKey
	}
	return key, nil
}

// persistTurn grava a pergunta crua e a resposta no banco e no cache. A
// mensagem do usuário é salva sem o prefixo furtivo: o texto furtivo não
// aparece no histórico exibido.
func (o *Orchestrator) persistTurn(ctx context.Context, req ChatRequest, resp openai.ChatCompletionResponse) {
	if req.SessionID == "" {
		return
	}

	answer := ""
	if len(resp.Choices) > 0 {
		answer = resp.Choices[0].Message.Content
	}

	turn := []model.ChatMessage{
		{SessionID: req.SessionID, Role: openai.ChatMessageRoleUser, Content: req.Message},
		{SessionID: req.SessionID, Role: openai.ChatMessageRoleAssistant, Content: answer},
	}

	for _, msg := range turn {
		if err := o.Messages.Append(ctx, msg); err != nil {
			log.Printf("[Orchestrator] Erro ao salvar mensagem da sessão %s: %v", req.SessionID, err)
		}
		if o.Cache != nil {
			if err := o.Cache.Append(ctx, req.SessionID, msg); err != nil {
				log.Printf("[Orchestrator] Erro ao atualizar cache da sessão %s: %v", req.SessionID, err)
			}
		}
	}
}
