package usecase

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
)

// Estados do assistente de ligação
type CallState string

const (
	StateConnect       CallState = "CONNECT"
	StateReachedWhom   CallState = "REACHED_WHOM"
	StateGatekeeper    CallState = "GATEKEEPER_PATH"
	StateDecisionMaker CallState = "DM_PATH"
	StateInterest      CallState = "INTEREST_SUBPATH"
	StateAppointment   CallState = "APPOINTMENT"
	StateSummary       CallState = "SUMMARY"
)

// Eventos (cada um é um botão do assistente)
type CallEvent string

const (
	EventConnected     CallEvent = "connected"
	EventNoAnswer      CallEvent = "no_answer"
	EventGatekeeper    CallEvent = "gatekeeper"
	EventDecisionMaker CallEvent = "decision_maker"
	EventTransferred   CallEvent = "transferred"
	EventBlocked       CallEvent = "blocked"
	EventInterested    CallEvent = "interested"
	EventNotInterested CallEvent = "not_interested"
	EventBookMeeting   CallEvent = "book_meeting"
	EventSendInfo      CallEvent = "send_info"
	EventConfirm       CallEvent = "confirm"
	EventCancel        CallEvent = "cancel"
)

type callTransition struct {
	Next    CallState
	Outcome string // preenchido quando a transição fecha um resultado
}

// Tabela de transições. Evento fora da tabela é transição ilegal e vira
// DomainError, nunca muda o estado.
var callTransitions = map[CallState]map[CallEvent]callTransition{
	StateConnect: {
		EventConnected: {Next: StateReachedWhom},
		EventNoAnswer:  {Next: StateSummary, Outcome: entity.OutcomeNoAnswer},
	},
	StateReachedWhom: {
		EventGatekeeper:    {Next: StateGatekeeper},
		EventDecisionMaker: {Next: StateDecisionMaker},
	},
	StateGatekeeper: {
		EventTransferred: {Next: StateDecisionMaker},
		EventBlocked:     {Next: StateSummary, Outcome: entity.OutcomeGatekeeperBlocked},
	},
	StateDecisionMaker: {
		EventInterested:    {Next: StateInterest},
		EventNotInterested: {Next: StateSummary, Outcome: entity.OutcomeNotInterested},
	},
	StateInterest: {
		EventBookMeeting: {Next: StateAppointment},
		EventSendInfo:    {Next: StateSummary, Outcome: entity.OutcomeInterested},
	},
	StateAppointment: {
		EventConfirm: {Next: StateSummary, Outcome: entity.OutcomeAppointmentSet},
		EventCancel:  {Next: StateSummary, Outcome: entity.OutcomeInterested},
	},
}

// CallSession vive só em memória enquanto o assistente está aberto.
// Fechar sem salvar descarta tudo (política discard-on-cancel).
type CallSession struct {
	ID       string    `json:"id"`
	LeadID   string    `json:"lead_id"`
	LeadName string    `json:"lead_name"`
	State    CallState `json:"state"`
	Outcome  string    `json:"outcome,omitempty"`

	AppointmentDate string `json:"appointment_date,omitempty"` // YYYY-MM-DD
	AppointmentTime string `json:"appointment_time,omitempty"` // HH:MM

	Recording    bool   `json:"recording"`
	RecordingRef string `json:"recording_ref,omitempty"`

	Notes             string               `json:"notes,omitempty"`
	SentimentOverride string               `json:"sentiment_override,omitempty"`
	Analysis          *entity.CallAnalysis `json:"analysis,omitempty"`
	AnalysisPending   bool                 `json:"analysis_pending"`

	StartedAt time.Time `json:"started_at"`

	mu             sync.Mutex
	analysisIssued bool
	saved          bool
}

// Snapshot devolve uma cópia da sessão para serialização. O ponteiro vivo
// nunca vai direto para o encoder: a análise em background escreve em
// AnalysisPending/Analysis sob o lock, e o JSON seria lido sem ele.
func (s *CallSession) Snapshot() *CallSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &CallSession{
		ID:                s.ID,
		LeadID:            s.LeadID,
		LeadName:          s.LeadName,
		State:             s.State,
		Outcome:           s.Outcome,
		AppointmentDate:   s.AppointmentDate,
		AppointmentTime:   s.AppointmentTime,
		Recording:         s.Recording,
		RecordingRef:      s.RecordingRef,
		Notes:             s.Notes,
		SentimentOverride: s.SentimentOverride,
		Analysis:          s.Analysis,
		AnalysisPending:   s.AnalysisPending,
		StartedAt:         s.StartedAt,
	}
}

// CallSessionManager guarda as sessões abertas e aplica a máquina de estados.
type CallSessionManager struct {
	LeadRepo LeadRepositoryInterface
	Analyzer CallAnalyzer
	Email    EmailService

	// Remetente usado no e-mail de "send info"
	MyCompany string

	mu       sync.Mutex
	sessions map[string]*CallSession
}

func NewCallSessionManager(leadRepo LeadRepositoryInterface, analyzer CallAnalyzer, email EmailService, myCompany string) *CallSessionManager {
	return &CallSessionManager{
		LeadRepo:  leadRepo,
		Analyzer:  analyzer,
		Email:     email,
		MyCompany: myCompany,
		sessions:  make(map[string]*CallSession),
	}
}

func (m *CallSessionManager) Start(ctx context.Context, leadID string) (*CallSession, error) {
	lead, err := m.LeadRepo.FindByID(ctx, leadID)
	if err != nil {
		return nil, &DomainError{Code: "LEAD_NOT_FOUND", Message: "lead inválido: " + err.Error()}
	}

	session := &CallSession{
		ID:        uuid.New().String(),
		LeadID:    lead.ID,
		LeadName:  lead.CompanyName,
		State:     StateConnect,
		StartedAt: time.Now(),
	}

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	return session, nil
}

func (m *CallSessionManager) Get(sessionID string) (*CallSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, &DomainError{Code: "SESSION_NOT_FOUND", Message: "sessão não encontrada"}
	}
	return session, nil
}

// Apply processa um evento do assistente. Transição ilegal não altera nada.
func (m *CallSessionManager) Apply(sessionID string, event CallEvent) (*CallSession, error) {
	session, err := m.Get(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.State == StateSummary {
		return nil, &DomainError{Code: "ILLEGAL_TRANSITION", Message: "call already reached summary"}
	}

	transition, ok := callTransitions[session.State][event]
	if !ok {
		return nil, &DomainError{
			Code:    "ILLEGAL_TRANSITION",
			Message: "event '" + string(event) + "' is not valid in state '" + string(session.State) + "'",
		}
	}

	// Confirmar agendamento exige data preenchida.
	if session.State == StateAppointment && event == EventConfirm &&
		strings.TrimSpace(session.AppointmentDate) == "" {
		return nil, &DomainError{Code: "APPOINTMENT_DATE_REQUIRED", Message: "appointment date is required"}
	}

	session.State = transition.Next
	if transition.Outcome != "" {
		session.Outcome = transition.Outcome
	}

	if session.State == StateSummary {
		// Gravação ainda ativa é encerrada à força antes de fechar o
		// resultado.
		session.Recording = false
		m.issueAnalysis(session)
	}

	return session, nil
}

// issueAnalysis dispara a análise da ligação exatamente uma vez por sessão.
// Chamado com session.mu já em posse.
func (m *CallSessionManager) issueAnalysis(session *CallSession) {
	if session.analysisIssued {
		return
	}
	session.analysisIssued = true
	session.AnalysisPending = true

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		analysis, err := m.Analyzer.AnalyzeCall(ctx, session.Outcome, session.LeadName)

		session.mu.Lock()
		defer session.mu.Unlock()
		session.AnalysisPending = false
		if err != nil {
			// Análise é best-effort: o resumo continua utilizável sem ela.
			log.Printf("⚠️ Análise da ligação falhou para '%s': %v", session.LeadName, err)
			return
		}
		session.Analysis = analysis
	}()
}

type UpdateCallSessionInput struct {
	AppointmentDate   *string `json:"appointment_date,omitempty"`
	AppointmentTime   *string `json:"appointment_time,omitempty"`
	Notes             *string `json:"notes,omitempty"`
	SentimentOverride *string `json:"sentiment_override,omitempty"`
}

// Update mexe nos campos livres da sessão (data, notas, override de
// sentimento). Não passa pela tabela de transições.
func (m *CallSessionManager) Update(sessionID string, input UpdateCallSessionInput) (*CallSession, error) {
	session, err := m.Get(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if input.AppointmentDate != nil {
		session.AppointmentDate = *input.AppointmentDate
	}
	if input.AppointmentTime != nil {
		session.AppointmentTime = *input.AppointmentTime
	}
	if input.Notes != nil {
		session.Notes = *input.Notes
	}
	if input.SentimentOverride != nil {
		session.SentimentOverride = *input.SentimentOverride
	}

	return session, nil
}

// SetRecording liga/desliga a gravação. Ortogonal à máquina de estados: vale
// em qualquer estado não terminal.
func (m *CallSessionManager) SetRecording(sessionID string, active bool, ref string) (*CallSession, error) {
	session, err := m.Get(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.State == StateSummary && active {
		return nil, &DomainError{Code: "ILLEGAL_RECORDING", Message: "cannot start recording after summary"}
	}

	session.Recording = active
	if ref != "" {
		session.RecordingRef = ref
	}

	return session, nil
}

// Save monta o CallLog final e grava no lead exatamente uma vez. A sessão
// é descartada em seguida.
func (m *CallSessionManager) Save(ctx context.Context, sessionID string) (*entity.CallLog, error) {
	session, err := m.Get(sessionID)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.State != StateSummary {
		return nil, &DomainError{Code: "NOT_IN_SUMMARY", Message: "call has not reached an outcome yet"}
	}
	if session.saved {
		return nil, &DomainError{Code: "ALREADY_SAVED", Message: "call log already saved"}
	}

	lead, err := m.LeadRepo.FindByID(ctx, session.LeadID)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	var appointment *time.Time
	if session.Outcome == entity.OutcomeAppointmentSet {
		t, err := composeAppointment(session.AppointmentDate, session.AppointmentTime)
		if err != nil {
			return nil, &DomainError{Code: "INVALID_APPOINTMENT", Message: err.Error()}
		}
		appointment = &t
	}

	analysis := session.finalAnalysis()

	callLog := entity.NewCallLog(session.Outcome, session.Notes, session.RecordingRef, appointment, analysis)
	lead.PrependCallLog(callLog)

	if err := m.LeadRepo.AppendCallLog(ctx, lead, callLog); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	session.saved = true

	middleware.RecordCallLogged(session.Outcome)

	// Resultado "Interested" com e-mail conhecido dispara o material por
	// e-mail em background, sem bloquear o save.
	if session.Outcome == entity.OutcomeInterested && lead.Email != "" && m.Email != nil {
		to, name := lead.Email, lead.CompanyName
		go func() {
			if err := m.Email.SendLeadInfo(to, name, m.MyCompany); err != nil {
				log.Printf("⚠️ Falha ao enviar material para %s: %v", to, err)
			}
		}()
	}

	m.mu.Lock()
	delete(m.sessions, sessionID)
	m.mu.Unlock()

	log.Printf("📞 Ligação registrada: %s -> %s", session.LeadName, session.Outcome)

	return &callLog, nil
}

// Cancel fecha a sessão sem persistir nada no lead.
func (m *CallSessionManager) Cancel(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[sessionID]; !ok {
		return &DomainError{Code: "SESSION_NOT_FOUND", Message: "sessão não encontrada"}
	}
	delete(m.sessions, sessionID)
	return nil
}

// finalAnalysis combina a análise da IA com o override de sentimento do
// usuário. Chamado com session.mu em posse.
func (s *CallSession) finalAnalysis() *entity.CallAnalysis {
	if s.Analysis == nil {
		if s.SentimentOverride == "" {
			return nil
		}
		return &entity.CallAnalysis{
			Confidence: entity.ConfidenceLow,
			Sentiment:  s.SentimentOverride,
		}
	}

	final := *s.Analysis
	final.Takeaways = append([]string(nil), s.Analysis.Takeaways...)
	if s.SentimentOverride != "" {
		final.Sentiment = s.SentimentOverride
	}
	return &final
}

func composeAppointment(date, hour string) (time.Time, error) {
	if hour == "" {
		hour = "09:00"
	}
	return time.Parse("2006-01-02 15:04", strings.TrimSpace(date)+" "+strings.TrimSpace(hour))
}
