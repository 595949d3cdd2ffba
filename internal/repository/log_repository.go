package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"chatpump/internal/model"
)

type LogRepository struct {
	DB *pgxpool.Pool
}

func (r *LogRepository) Save(ctx context.Context, entry model.PromptLog) error {
	_, err := r.DB.Exec(ctx, `
		INSERT INTO prompt_logs (id, user_email, system_prompt, user_message, full_payload, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
	`, uuid.New(), entry.UserEmail, entry.SystemPrompt, entry.UserMessage, entry.FullPayload)
	return err
}

// ListByEmail devolve os logs do usuário, do mais recente para o mais antigo
// (consulta da tela administrativa).
func (r *LogRepository) ListByEmail(ctx context.Context, userEmail string) ([]model.PromptLog, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, user_email, system_prompt, user_message, full_payload, created_at
		FROM prompt_logs
		WHERE user_email = $1
		ORDER BY created_at DESC
	`, userEmail)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []model.PromptLog
	for rows.Next() {
		var l model.PromptLog
		if err := rows.Scan(&l.ID, &l.UserEmail, &l.SystemPrompt, &l.UserMessage, &l.FullPayload, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
