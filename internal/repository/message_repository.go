package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"chatpump/internal/model"
)

type MessageRepository struct {
	DB *pgxpool.Pool
}

// ListRecent devolve as últimas `limit` mensagens da sessão em ordem
// cronológica (a janela de contexto enviada à IA).
func (r *MessageRepository) ListRecent(ctx context.Context, sessionID string, limit int) ([]model.ChatMessage, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, session_id, role, content, created_at
		FROM chat_messages
		WHERE session_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []model.ChatMessage
	for rows.Next() {
		var m model.ChatMessage
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// A query traz do mais novo para o mais antigo; inverte para cronológico
	for i, j := 0, len(msgs)-1; i < j; i, j = i+1, j-1 {
		msgs[i], msgs[j] = msgs[j], msgs[i]
	}
	return msgs, nil
}

// ListBySession devolve o histórico completo da sessão (renderização da UI).
func (r *MessageRepository) ListBySession(ctx context.Context, sessionID string) ([]model.ChatMessage, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, session_id, role, content, created_at
		FROM chat_messages
		WHERE session_id = $1
		ORDER BY created_at
	`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []model.ChatMessage
	for rows.Next() {
		var m model.ChatMessage
		if err := rows.Scan(&m.ID, &m.SessionID, &m.Role, &m.Content, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, m)
	}
	return msgs, rows.Err()
}

func (r *MessageRepository) Append(ctx context.Context, msg model.ChatMessage) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO chat_messages (id, session_id, role, content, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`, uuid.New(), msg.SessionID, msg.Role, msg.Content)
	return err
}
