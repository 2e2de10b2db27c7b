package handlers

import (
	"net/http"

	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type ReportHandler struct {
	ReportUC *usecase.ReportingUseCase
}

func NewReportHandler(reportUC *usecase.ReportingUseCase) *ReportHandler {
	return &ReportHandler{ReportUC: reportUC}
}

func (h *ReportHandler) Handle(w http.ResponseWriter, r *http.Request) {
	report, err := h.ReportUC.Execute(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}
