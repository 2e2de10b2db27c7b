package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type CallHandler struct {
	Sessions *usecase.CallSessionManager
}

func NewCallHandler(sessions *usecase.CallSessionManager) *CallHandler {
	return &CallHandler{Sessions: sessions}
}

type startCallRequest struct {
	LeadID string `json:"lead_id"`
}

func (h *CallHandler) HandleStart(w http.ResponseWriter, r *http.Request) {
	var req startCallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	session, err := h.Sessions.Start(r.Context(), req.LeadID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, session.Snapshot())
}

func (h *CallHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	session, err := h.Sessions.Get(chi.URLParam(r, "sessionId"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session.Snapshot())
}

type callEventRequest struct {
	Event string `json:"event"`
}

// HandleEvent aplica um botão do assistente na máquina de estados.
func (h *CallHandler) HandleEvent(w http.ResponseWriter, r *http.Request) {
	var req callEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	session, err := h.Sessions.Apply(chi.URLParam(r, "sessionId"), usecase.CallEvent(req.Event))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session.Snapshot())
}

func (h *CallHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateCallSessionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	session, err := h.Sessions.Update(chi.URLParam(r, "sessionId"), input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session.Snapshot())
}

type recordingRequest struct {
	Active bool   `json:"active"`
	Ref    string `json:"ref,omitempty"` // referência opaca do blob gravado
}

func (h *CallHandler) HandleRecording(w http.ResponseWriter, r *http.Request) {
	var req recordingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}

	session, err := h.Sessions.SetRecording(chi.URLParam(r, "sessionId"), req.Active, req.Ref)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, session.Snapshot())
}

func (h *CallHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	callLog, err := h.Sessions.Save(r.Context(), chi.URLParam(r, "sessionId"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, callLog)
}

// HandleCancel fecha o assistente sem gravar nada no lead.
func (h *CallHandler) HandleCancel(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Cancel(chi.URLParam(r, "sessionId")); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
