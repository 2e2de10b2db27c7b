package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/xavierca1/ligue-crm/internal/usecase"
)

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondError mapeia DomainError para 4xx e o resto para 5xx. errors.As
// para continuar acertando o status mesmo com o erro embrulhado.
func respondError(w http.ResponseWriter, err error) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		status := http.StatusBadRequest
		if strings.HasSuffix(de.Code, "_NOT_FOUND") {
			status = http.StatusNotFound
		}
		respondJSON(w, status, errorResponse{Code: de.Code, Message: de.Message})
		return
	}

	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		respondJSON(w, http.StatusInternalServerError, errorResponse{Code: te.Code, Message: te.Message})
		return
	}

	respondJSON(w, http.StatusInternalServerError, errorResponse{Code: "INTERNAL_ERROR", Message: err.Error()})
}
