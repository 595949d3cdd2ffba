// Package admin expõe as consultas administrativas: logs de prompt e
// visualizador de schema do banco.
package admin

import (
	"context"
	"encoding/json"
	"net/http"

	"chatpump/internal/model"
	"chatpump/internal/repository"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: msg})
}

type PromptLogStore interface {
	ListByEmail(ctx context.Context, userEmail string) ([]model.PromptLog, error)
}

// PromptLogsHandler atende GET /admin/prompt-logs?email=...
func PromptLogsHandler(store PromptLogStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeJSONError(w, http.StatusMethodNotAllowed, "método não permitido")
			return
		}

		email := r.URL.Query().Get("email")
		if email == "" {
			writeJSONError(w, http.StatusBadRequest, "email é obrigatório")
			return
		}

		logs, err := store.ListByEmail(r.Context(), email)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if logs == nil {
			logs = []model.PromptLog{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(logs)
	}
}

type SchemaStore interface {
	ListTables() ([]repository.TableInfo, error)
}

// SchemaHandler atende GET /admin/schema.
func SchemaHandler(store SchemaStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeJSONError(w, http.StatusMethodNotAllowed, "método não permitido")
			return
		}

		tables, err := store.ListTables()
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(tables)
	}
}
