package chat

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"chatpump/internal/model"
	"chatpump/internal/observability"
)

// ChatRequest é o corpo aceito em POST /chat. O schema é validado na borda:
// corpo malformado ou mensagem vazia devolvem 400 antes do orquestrador.
type ChatRequest struct {
	Message       string         `json:"message"`
	ThemeID       string         `json:"themeId,omitempty"`
	UserEmail     string         `json:"userEmail,omitempty"`
	FurtivePrompt *FurtivePrompt `json:"furtivePrompt,omitempty"`
	SessionID     string         `json:"sessionId,omitempty"`
}

// FurtivePrompt é a instrução oculta do card de sugestão escolhido pelo
// usuário; o texto é prefixado à mensagem sem aparecer na UI.
type FurtivePrompt struct {
	Text string `json:"text"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: msg})
}

// Handler atende POST /chat. Sucesso devolve o JSON bruto da resposta de
// chat-completion do provedor (a UI lê choices[0].message.content).
func Handler(orc *Orchestrator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSONError(w, http.StatusMethodNotAllowed, "método não permitido")
			return
		}

		var req ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "corpo da requisição inválido")
			return
		}
		if strings.TrimSpace(req.Message) == "" {
			writeJSONError(w, http.StatusBadRequest, "mensagem não pode ser vazia")
			return
		}

		observability.ChatRequestsTotal.Inc()
		log.Printf("[Chat] Requisição recebida. SessionID: %s | Tema: %s", req.SessionID, req.ThemeID)

		resp, err := orc.ProcessChatMessage(r.Context(), req)
		if err != nil {
			observability.ChatFailuresTotal.Inc()
			writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

// HistoryStore é a leitura de histórico usada pela tela de conversa.
type HistoryStore interface {
	ListBySession(ctx context.Context, sessionID string) ([]model.ChatMessage, error)
}

// HistoryHandler atende GET /chat/history?session_id=...
func HistoryHandler(store HistoryStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			writeJSONError(w, http.StatusMethodNotAllowed, "método não permitido")
			return
		}

		sessionID := r.URL.Query().Get("session_id")
		if sessionID == "" {
			writeJSONError(w, http.StatusBadRequest, "session_id é obrigatório")
			return
		}

		msgs, err := store.ListBySession(r.Context(), sessionID)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if msgs == nil {
			msgs = []model.ChatMessage{}
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(msgs)
	}
}
