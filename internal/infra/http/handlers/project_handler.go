package handlers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-crm/internal/infra/queue"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type ProjectHandler struct {
	CreateProjectUC *usecase.CreateProjectUseCase
	EnrichUC        *usecase.EnrichLeadsUseCase
	ExportUC        *usecase.ExportCSVUseCase
	ProjectRepo     usecase.ProjectRepositoryInterface
	Producer        usecase.QueueProducerInterface
}

func NewProjectHandler(
	createUC *usecase.CreateProjectUseCase,
	enrichUC *usecase.EnrichLeadsUseCase,
	exportUC *usecase.ExportCSVUseCase,
	projectRepo usecase.ProjectRepositoryInterface,
	producer usecase.QueueProducerInterface,
) *ProjectHandler {
	return &ProjectHandler{
		CreateProjectUC: createUC,
		EnrichUC:        enrichUC,
		ExportUC:        exportUC,
		ProjectRepo:     projectRepo,
		Producer:        producer,
	}
}

func (h *ProjectHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateProjectInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	output, err := h.CreateProjectUC.Execute(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, output)
}

func (h *ProjectHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	projects, err := h.ProjectRepo.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectId")

	project, err := h.ProjectRepo.FindByID(r.Context(), projectID)
	if err != nil {
		http.Error(w, "Projeto não encontrado", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectId")

	if err := h.ProjectRepo.Delete(r.Context(), projectID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProjectHandler) HandleLoadMore(w http.ResponseWriter, r *http.Request) {
	var input usecase.LoadMoreInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}
	input.ProjectID = chi.URLParam(r, "projectId")

	output, err := h.CreateProjectUC.LoadMore(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, output)
}

// HandleEnrich roda a pipeline na própria requisição (a UI acompanha pelo
// GET do projeto).
func (h *ProjectHandler) HandleEnrich(w http.ResponseWriter, r *http.Request) {
	var input usecase.EnrichLeadsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}
	input.ProjectID = chi.URLParam(r, "projectId")

	output, err := h.EnrichUC.Execute(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, output)
}

// HandleEnrichAsync publica o job na fila e devolve 202.
func (h *ProjectHandler) HandleEnrichAsync(w http.ResponseWriter, r *http.Request) {
	var input usecase.EnrichLeadsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}
	projectID := chi.URLParam(r, "projectId")

	job := queue.EnrichmentJob{
		ProjectID: projectID,
		LeadIDs:   input.LeadIDs,
		Requested: time.Now().Format(time.RFC3339),
	}
	if err := h.Producer.PublishEnrichmentJob(r.Context(), job); err != nil {
		log.Printf("❌ Falha ao publicar job de enriquecimento: %v", err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

func (h *ProjectHandler) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "projectId")

	output, err := h.ExportUC.Execute(r.Context(), projectID)
	if err != nil {
		respondError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", output.Filename))
	w.WriteHeader(http.StatusOK)
	w.Write(output.Content)
}
