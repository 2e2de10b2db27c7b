package entity

import (
	"time"

	"github.com/google/uuid"
)

// Resultados terminais de uma ligação
const (
	OutcomeNoAnswer          = "No Answer"
	OutcomeGatekeeperBlocked = "Gatekeeper Blocked"
	OutcomeNotInterested     = "Not Interested"
	OutcomeInterested        = "Interested"
	OutcomeAppointmentSet    = "Appointment Set"
)

const (
	SentimentPositive = "POSITIVE"
	SentimentNeutral  = "NEUTRAL"
	SentimentNegative = "NEGATIVE"
)

// CallLog é um registro imutável: depois de criado nunca é alterado,
// só adicionado ao topo do histórico do lead.
type CallLog struct {
	ID           string        `json:"id"`
	Timestamp    time.Time     `json:"timestamp"`
	Outcome      string        `json:"outcome"`
	Notes        string        `json:"notes,omitempty"`
	RecordingRef string        `json:"recording_ref,omitempty"`
	Appointment  *time.Time    `json:"appointment,omitempty"`
	Analysis     *CallAnalysis `json:"analysis,omitempty"`
}

// Value Object: CallAnalysis
type CallAnalysis struct {
	Score      int      `json:"score"`     // 0-100
	Adherence  int      `json:"adherence"` // 0-100, aderência ao script
	Confidence string   `json:"confidence"`
	Sentiment  string   `json:"sentiment"`
	Takeaways  []string `json:"takeaways,omitempty"`
}

func NewCallLog(outcome, notes, recordingRef string, appointment *time.Time, analysis *CallAnalysis) CallLog {
	return CallLog{
		ID:           uuid.New().String(),
		Timestamp:    time.Now(),
		Outcome:      outcome,
		Notes:        notes,
		RecordingRef: recordingRef,
		Appointment:  appointment,
		Analysis:     analysis,
	}
}
