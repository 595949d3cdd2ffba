package chat

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"chatpump/internal/model"
)

const (
	sessionTTL = 30 * time.Minute
	// historyLimit é a janela de contexto: apenas as últimas 6 mensagens da
	// sessão seguem para a IA, sem resumo do que ficou de fora.
	historyLimit = 6
)

// HistoryCache é o cache quente do histórico de sessão. O Postgres
// (chat_messages) continua sendo a fonte durável.
type HistoryCache interface {
	Get(ctx context.Context, sessionID string) ([]model.ChatMessage, error)
	Append(ctx context.Context, sessionID string, msg model.ChatMessage) error
}

type SessionStore struct {
	Client *redis.Client
}

func (s *SessionStore) Get(ctx context.Context, sessionID string) ([]model.ChatMessage, error) {
	val, err := s.Client.Get(ctx, sessionID).Result()
	if err != nil {
		// Cache miss ou redis fora: o chamador recarrega do banco
		return nil, nil
	}

	var msgs []model.ChatMessage
	if err := json.Unmarshal([]byte(val), &msgs); err != nil {
		return nil, nil
	}
	return msgs, nil
}

func (s *SessionStore) Append(ctx context.Context, sessionID string, msg model.ChatMessage) error {
	history, _ := s.Get(ctx, sessionID)
	history = append(history, msg)
	history = lastN(history, historyLimit)

	b, err := json.Marshal(history)
	if err != nil {
		return err
	}
	return s.Client.Set(ctx, sessionID, b, sessionTTL).Err()
}

// lastN devolve as n mensagens mais recentes preservando a ordem cronológica.
func lastN(msgs []model.ChatMessage, n int) []model.ChatMessage {
	if len(msgs) > n {
		return msgs[len(msgs)-n:]
	}
	return msgs
}
