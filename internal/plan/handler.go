package plan

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"chatpump/internal/observability"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: msg})
}

// Handler atende POST /action-plan.
func Handler(g *Generator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSONError(w, http.StatusMethodNotAllowed, "método não permitido")
			return
		}

		var req PlanRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, http.StatusBadRequest, "corpo da requisição inválido")
			return
		}
		if strings.TrimSpace(req.ThemeID) == "" {
			writeJSONError(w, http.StatusBadRequest, "themeId é obrigatório")
			return
		}

		resp, err := g.Generate(r.Context(), req)
		if errors.Is(err, ErrNoActionPlan) {
			writeJSONError(w, http.StatusNotFound, err.Error())
			return
		}
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err.Error())
			return
		}

		observability.ActionPlansTotal.Inc()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}
