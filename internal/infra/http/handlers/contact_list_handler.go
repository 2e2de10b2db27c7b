package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type ContactListHandler struct {
	ListUC   *usecase.ContactListUseCase
	ListRepo usecase.ContactListRepositoryInterface
}

func NewContactListHandler(listUC *usecase.ContactListUseCase, repo usecase.ContactListRepositoryInterface) *ContactListHandler {
	return &ContactListHandler{ListUC: listUC, ListRepo: repo}
}

func (h *ContactListHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateContactListInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	list, err := h.ListUC.Create(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, list)
}

func (h *ContactListHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	lists, err := h.ListRepo.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, lists)
}

func (h *ContactListHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	list, err := h.ListRepo.FindByID(r.Context(), chi.URLParam(r, "listId"))
	if err != nil {
		http.Error(w, "Lista não encontrada", http.StatusNotFound)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

func (h *ContactListHandler) HandleCopyLeads(w http.ResponseWriter, r *http.Request) {
	var input usecase.CopyLeadsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}
	input.ListID = chi.URLParam(r, "listId")

	copied, err := h.ListUC.CopyLeads(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"copied": copied})
}

type setStageRequest struct {
	Stage string `json:"stage"`
}

func (h *ContactListHandler) HandleSetStage(w http.ResponseWriter, r *http.Request) {
	var req setStageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.ListUC.SetStage(r.Context(), chi.URLParam(r, "listId"), req.Stage); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ContactListHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.ListUC.Delete(r.Context(), chi.URLParam(r, "listId")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
