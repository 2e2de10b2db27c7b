package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type ScriptHandler struct {
	ScriptUC   *usecase.ScriptUseCase
	ScriptRepo usecase.ScriptRepositoryInterface
}

func NewScriptHandler(scriptUC *usecase.ScriptUseCase, repo usecase.ScriptRepositoryInterface) *ScriptHandler {
	return &ScriptHandler{ScriptUC: scriptUC, ScriptRepo: repo}
}

func (h *ScriptHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var input usecase.GenerateScriptInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	script, err := h.ScriptUC.Generate(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, script)
}

type createScriptRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

func (h *ScriptHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createScriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	script, err := entity.NewScript(req.Name, req.Content)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.ScriptRepo.Create(r.Context(), script); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, script)
}

func (h *ScriptHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	scripts, err := h.ScriptRepo.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, scripts)
}

type updateScriptRequest struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

func (h *ScriptHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req updateScriptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	script, err := h.ScriptRepo.FindByID(r.Context(), chi.URLParam(r, "scriptId"))
	if err != nil {
		http.Error(w, "Script não encontrado", http.StatusNotFound)
		return
	}

	if req.Name != "" {
		script.Name = req.Name
	}
	script.Content = req.Content

	if err := h.ScriptRepo.Update(r.Context(), script); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, script)
}

func (h *ScriptHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.ScriptRepo.Delete(r.Context(), chi.URLParam(r, "scriptId")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRender interpola o script: com leadId usa os dados reais, sem ele
// entra em modo preview com os valores demo.
func (h *ScriptHandler) HandleRender(w http.ResponseWriter, r *http.Request) {
	scriptID := chi.URLParam(r, "scriptId")
	leadID := r.URL.Query().Get("leadId")

	var content string
	var err error
	if leadID != "" {
		content, err = h.ScriptUC.RenderForLead(r.Context(), scriptID, leadID)
	} else {
		content, err = h.ScriptUC.RenderPreview(r.Context(), scriptID)
	}
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"content": content})
}
