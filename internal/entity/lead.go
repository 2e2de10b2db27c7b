package entity

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrLeadNotFound = errors.New("lead not found")

// Status do Lead no funil
const (
	LeadStatusNew       = "NEW"
	LeadStatusContacted = "CONTACTED"
	LeadStatusQualified = "QUALIFIED"
	LeadStatusLost      = "LOST"
)

const (
	EmailStatusUnverified = "UNVERIFIED"
	EmailStatusVerified   = "VERIFIED"
	EmailStatusGuessed    = "GUESSED"
)

const (
	ConfidenceLow    = "LOW"
	ConfidenceMedium = "MEDIUM"
	ConfidenceHigh   = "HIGH"
)

// Entidade: Lead
type Lead struct {
	ID            string `json:"id"`
	ProjectID     string `json:"project_id,omitempty"`
	ContactListID string `json:"contact_list_id,omitempty"`

	CompanyName string  `json:"company_name"`
	Category    string  `json:"category,omitempty"`
	Address     string  `json:"address,omitempty"`
	Website     string  `json:"website,omitempty"`
	Phone       string  `json:"phone,omitempty"`
	Email       string  `json:"email,omitempty"`
	EmailStatus string  `json:"email_status,omitempty"` // UNVERIFIED, VERIFIED, GUESSED
	CEOName     string  `json:"ceo_name,omitempty"`
	Description string  `json:"description,omitempty"`
	Notes       string  `json:"notes,omitempty"`
	Rating      float64 `json:"rating,omitempty"`
	ReviewCount int     `json:"review_count,omitempty"`
	SourceURL   string  `json:"source_url,omitempty"`

	Status     string `json:"status"`     // NEW, CONTACTED, QUALIFIED, LOST
	Score      int    `json:"score"`      // 0-100, derivado dos campos acima
	Confidence string `json:"confidence"` // LOW, MEDIUM, HIGH

	// Flag transiente: enriquecimento em andamento. Faz parte do estado da
	// pipeline, não do significado do lead.
	IsEnriching bool `json:"is_enriching"`

	CallLogs        []CallLog  `json:"call_logs,omitempty"` // mais recente primeiro
	LastCallResult  string     `json:"last_call_result,omitempty"`
	AppointmentDate *time.Time `json:"appointment_date,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Factory
func NewLead(companyName string) (*Lead, error) {
	lead := &Lead{
		ID:          uuid.New().String(),
		CompanyName: companyName,
		EmailStatus: EmailStatusUnverified,
		Status:      LeadStatusNew,
		Confidence:  ConfidenceLow,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := lead.Validate(); err != nil {
		return nil, err
	}

	lead.Recompute()
	return lead, nil
}

func (l *Lead) Validate() error {
	if strings.TrimSpace(l.CompanyName) == "" {
		return errors.New("company name is required")
	}
	return nil
}

// ComputeScore é função pura dos campos do lead: soma ponderada com teto 100.
// email +25, website +25, CEO +15, telefone +15, fonte confiável +10,
// rating >= 4.0 +10.
func (l *Lead) ComputeScore() int {
	score := 0
	if strings.TrimSpace(l.Email) != "" {
		score += 25
	}
	if strings.TrimSpace(l.Website) != "" {
		score += 25
	}
	if strings.TrimSpace(l.CEOName) != "" {
		score += 15
	}
	if strings.TrimSpace(l.Phone) != "" {
		score += 15
	}
	if strings.TrimSpace(l.SourceURL) != "" {
		score += 10
	}
	if l.Rating >= 4.0 {
		score += 10
	}
	if score > 100 {
		score = 100
	}
	return score
}

// ComputeConfidence deriva o nível de confiança dos dados de contato:
// HIGH exige email + CEO + website; MEDIUM basta email ou CEO.
func (l *Lead) ComputeConfidence() string {
	hasEmail := strings.TrimSpace(l.Email) != ""
	hasCEO := strings.TrimSpace(l.CEOName) != ""
	hasWebsite := strings.TrimSpace(l.Website) != ""

	switch {
	case hasEmail && hasCEO && hasWebsite:
		return ConfidenceHigh
	case hasEmail || hasCEO:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// Recompute atualiza os campos derivados (score e confiança). Chamar sempre
// que um campo de origem mudar.
func (l *Lead) Recompute() {
	l.Score = l.ComputeScore()
	l.Confidence = l.ComputeConfidence()
}

// EnrichmentResult é o retorno parcial do enriquecimento externo.
type EnrichmentResult struct {
	Website     string `json:"website,omitempty"`
	CEOName     string `json:"ceo_name,omitempty"`
	Email       string `json:"email,omitempty"`
	EmailStatus string `json:"email_status,omitempty"`
	Description string `json:"description,omitempty"`
	SourceURL   string `json:"source_url,omitempty"`
}

func (r EnrichmentResult) IsEmpty() bool {
	return r.Website == "" && r.CEOName == "" && r.Email == "" &&
		r.EmailStatus == "" && r.Description == "" && r.SourceURL == ""
}

// ApplyEnrichment faz o merge dos campos retornados pelo enriquecimento.
// Campo vazio no resultado nunca apaga valor existente.
func (l *Lead) ApplyEnrichment(res EnrichmentResult) {
	if res.Website != "" {
		l.Website = res.Website
	}
	if res.CEOName != "" {
		l.CEOName = res.CEOName
	}
	if res.Email != "" {
		l.Email = res.Email
	}
	if res.EmailStatus != "" {
		l.EmailStatus = res.EmailStatus
	}
	if res.Description != "" {
		l.Description = res.Description
	}
	if res.SourceURL != "" {
		l.SourceURL = res.SourceURL
	}
	l.Recompute()
	l.UpdatedAt = time.Now()
}

// PrependCallLog adiciona um registro de ligação no topo do histórico e
// atualiza os campos de "última ligação". O registro em si é imutável.
func (l *Lead) PrependCallLog(cl CallLog) {
	l.CallLogs = append([]CallLog{cl}, l.CallLogs...)
	l.LastCallResult = cl.Outcome
	if cl.Appointment != nil {
		appt := *cl.Appointment
		l.AppointmentDate = &appt
	}
	if l.Status == LeadStatusNew {
		l.Status = LeadStatusContacted
	}
	l.UpdatedAt = time.Now()
}

// NameMatches compara nomes de empresa sem diferenciar maiúsculas.
func (l *Lead) NameMatches(name string) bool {
	return strings.EqualFold(strings.TrimSpace(l.CompanyName), strings.TrimSpace(name))
}
