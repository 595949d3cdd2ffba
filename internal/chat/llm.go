package chat

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"chatpump/internal/model"
)

// Parâmetros fixos de toda chamada de chat-completion.
const (
	chatTemperature      = 0.7
	chatMaxTokens        = 500
	chatTopP             = 1
	chatFrequencyPenalty = 0
	chatPresencePenalty  = 0
)

// Completer é o que o gateway precisa do cliente OpenAI.
type Completer interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// BuildMessages monta a sequência [system] + histórico + [user].
func BuildMessages(systemPrompt string, history []model.ChatMessage, userMessage string) []openai.ChatCompletionMessage {
	messages := []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
	}

	for _, m := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userMessage,
	})

	return messages
}

// NewChatRequest cria o payload de formato fixo enviado ao provedor.
func NewChatRequest(modelName string, messages []openai.ChatCompletionMessage) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model:            modelName,
		Messages:         messages,
		Temperature:      chatTemperature,
		MaxTokens:        chatMaxTokens,
		TopP:             chatTopP,
		FrequencyPenalty: chatFrequencyPenalty,
		PresencePenalty:  chatPresencePenalty,
	}
}

// CallOpenAI executa a chamada em uma única tentativa, sem retry. Respostas
// não-2xx viram erro com o status HTTP na mensagem.
func CallOpenAI(ctx context.Context, client Completer, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	// Log do envio com estimativa de tokens (1 token ~= 4 caracteres)
	var sb strings.Builder
	for _, msg := range req.Messages {
		sb.WriteString(fmt.Sprintf("=== ROLE: %s ===\n%s\n\n", msg.Role, msg.Content))
	}
	fullContent := sb.String()
	log.Printf("[LLM] Enviando payload: %d caracteres | ~%d tokens estimados", len(fullContent), len(fullContent)/4)

	resp, err := client.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return resp, fmt.Errorf("OpenAI API error: %d", apiErr.HTTPStatusCode)
		}
		return resp, fmt.Errorf("falha na chamada ao OpenAI: %w", err)
	}

	return resp, nil
}
