package chat

import (
	"context"
	"log"
	"time"

	"chatpump/internal/model"
)

// LogStore persiste os registros de auditoria de prompt.
type LogStore interface {
	Save(ctx context.Context, entry model.PromptLog) error
}

const promptLogTimeout = 10 * time.Second

// SavePromptLog grava o registro de auditoria em melhor esforço: visitantes
// anônimos não são logados e falha de gravação nunca chega ao chamador.
// O orquestrador dispara esta função em uma goroutine própria, fora do
// caminho de resposta do chat.
func SavePromptLog(store LogStore, entry model.PromptLog) {
	if entry.UserEmail == "" {
		return
	}

	// Contexto próprio: a requisição HTTP já pode ter sido encerrada
	ctx, cancel := context.WithTimeout(context.Background(), promptLogTimeout)
	defer cancel()

	if err := store.Save(ctx, entry); err != nil {
		log.Printf("[PromptLog] Falha ao gravar log de prompt para %s: %v", entry.UserEmail, err)
	}
}
