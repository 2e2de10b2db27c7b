package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

type LeadHandler struct {
	ManageUC *usecase.ManageLeadsUseCase
}

func NewLeadHandler(manageUC *usecase.ManageLeadsUseCase) *LeadHandler {
	return &LeadHandler{ManageUC: manageUC}
}

func (h *LeadHandler) HandleAddManual(w http.ResponseWriter, r *http.Request) {
	var input usecase.AddLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}
	input.ProjectID = chi.URLParam(r, "projectId")

	lead, err := h.ManageUC.AddManual(r.Context(), input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, lead)
}

func (h *LeadHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var input usecase.UpdateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "JSON inválido: "+err.Error(), http.StatusBadRequest)
		return
	}
	leadID := chi.URLParam(r, "leadId")

	lead, err := h.ManageUC.UpdateFields(r.Context(), leadID, input)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "leadId")

	if err := h.ManageUC.Remove(r.Context(), leadID); err != nil {
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type CaptureLeadRequest struct {
	Email   string `json:"email"`
	Company string `json:"company,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

type CaptureLeadResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// CaptureHandler atende o formulário público de captura, com rate limit por
// IP: é a única rota sem autenticação de rede interna.
type CaptureHandler struct {
	LeadRepo    CaptureRepository
	rateLimiter *RateLimiter
}

// CaptureRepository é o caminho do formulário público (upsert por e-mail).
type CaptureRepository interface {
	UpsertCaptured(ctx context.Context, lead *entity.Lead) error
}

func NewCaptureHandler(repo CaptureRepository) *CaptureHandler {
	return &CaptureHandler{
		LeadRepo:    repo,
		rateLimiter: NewRateLimiter(10, time.Minute),
	}
}

func (h *CaptureHandler) HandleCapture(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	clientIP := getClientIP(r)
	if !h.rateLimiter.Allow(clientIP) {
		respondJSON(w, http.StatusTooManyRequests, CaptureLeadResponse{
			Success: false,
			Message: "Too many requests. Please try again later.",
		})
		return
	}

	var req CaptureLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, CaptureLeadResponse{
			Success: false,
			Message: "Invalid JSON",
		})
		return
	}

	if req.Email == "" {
		respondJSON(w, http.StatusBadRequest, CaptureLeadResponse{
			Success: false,
			Message: "Email is required",
		})
		return
	}

	company := req.Company
	if company == "" {
		company = req.Email
	}

	lead, err := entity.NewLead(company)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, CaptureLeadResponse{Success: false, Message: err.Error()})
		return
	}
	lead.Email = req.Email
	lead.Phone = req.Phone
	lead.Recompute()

	if err := h.LeadRepo.UpsertCaptured(ctx, lead); err != nil {
		respondJSON(w, http.StatusInternalServerError, CaptureLeadResponse{
			Success: false,
			Message: "Failed to capture lead",
		})
		return
	}

	respondJSON(w, http.StatusOK, CaptureLeadResponse{Success: true})
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

type RateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	limit    int
	window   time.Duration
}

type visitor struct {
	count     int
	lastReset time.Time
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		visitors: make(map[string]*visitor),
		limit:    limit,
		window:   window,
	}

	go rl.cleanup()
	return rl
}

func (rl *RateLimiter) Allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	v, exists := rl.visitors[ip]
	now := time.Now()

	if !exists {
		rl.visitors[ip] = &visitor{count: 1, lastReset: now}
		return true
	}

	if now.Sub(v.lastReset) > rl.window {
		v.count = 1
		v.lastReset = now
		return true
	}

	v.count++
	return v.count <= rl.limit
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rl.mu.Lock()
		now := time.Now()
		for ip, v := range rl.visitors {
			if now.Sub(v.lastReset) > rl.window*2 {
				delete(rl.visitors, ip)
			}
		}
		rl.mu.Unlock()
	}
}
