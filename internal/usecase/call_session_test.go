package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// fakeEmailService entrega por canal para o teste observar o envio async.
type fakeEmailService struct {
	sent chan string
}

func newFakeEmailService() *fakeEmailService {
	return &fakeEmailService{sent: make(chan string, 1)}
}

func (f *fakeEmailService) SendLeadInfo(to, leadName, myCompany string) error {
	f.sent <- to
	return nil
}

func newWizardFixture(t *testing.T) (*CallSessionManager, *MockLeadRepository, *MockAnalyzer, *entity.Lead) {
	t.Helper()

	lead, err := entity.NewLead("Acme Plumbing")
	assert.NoError(t, err)

	mockLeadRepo := new(MockLeadRepository)
	mockAnalyzer := new(MockAnalyzer)
	mockLeadRepo.On("FindByID", mock.Anything, lead.ID).Return(lead, nil)

	manager := NewCallSessionManager(mockLeadRepo, mockAnalyzer, newFakeEmailService(), "Ligue")
	return manager, mockLeadRepo, mockAnalyzer, lead
}

func sessionState(s *CallSession) (CallState, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.State, s.Outcome, s.AnalysisPending
}

// TestCallWizardAppointmentFlow - caminho completo até agendar reunião,
// incluindo a trava de data obrigatória
func TestCallWizardAppointmentFlow(t *testing.T) {
	ctx := context.Background()
	manager, mockLeadRepo, mockAnalyzer, lead := newWizardFixture(t)

	analysis := &entity.CallAnalysis{Score: 82, Adherence: 70, Confidence: entity.ConfidenceHigh, Sentiment: entity.SentimentPositive}
	mockAnalyzer.On("AnalyzeCall", mock.Anything, entity.OutcomeAppointmentSet, "Acme Plumbing").Return(analysis, nil)
	mockLeadRepo.On("AppendCallLog", ctx, lead, mock.Anything).Return(nil)

	session, err := manager.Start(ctx, lead.ID)
	assert.NoError(t, err)
	assert.Equal(t, StateConnect, session.State)

	for _, event := range []CallEvent{EventConnected, EventDecisionMaker, EventInterested, EventBookMeeting} {
		_, err = manager.Apply(session.ID, event)
		assert.NoError(t, err)
	}
	state, _, _ := sessionState(session)
	assert.Equal(t, StateAppointment, state)

	// Confirmar sem data é bloqueado e não muda o estado
	_, err = manager.Apply(session.ID, EventConfirm)
	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "APPOINTMENT_DATE_REQUIRED", domainErr.Code)
	state, _, _ = sessionState(session)
	assert.Equal(t, StateAppointment, state)

	date, hour := "2026-09-15", "14:30"
	_, err = manager.Update(session.ID, UpdateCallSessionInput{AppointmentDate: &date, AppointmentTime: &hour})
	assert.NoError(t, err)

	_, err = manager.Apply(session.ID, EventConfirm)
	assert.NoError(t, err)
	state, outcome, _ := sessionState(session)
	assert.Equal(t, StateSummary, state)
	assert.Equal(t, entity.OutcomeAppointmentSet, outcome)

	// A análise chega em background
	assert.Eventually(t, func() bool {
		_, _, pending := sessionState(session)
		return !pending
	}, 2*time.Second, 10*time.Millisecond)

	callLog, err := manager.Save(ctx, session.ID)
	assert.NoError(t, err)
	assert.Equal(t, entity.OutcomeAppointmentSet, callLog.Outcome)
	assert.NotNil(t, callLog.Appointment)
	expected := time.Date(2026, 9, 15, 14, 30, 0, 0, time.UTC)
	assert.True(t, callLog.Appointment.Equal(expected))
	assert.Equal(t, analysis.Score, callLog.Analysis.Score)

	// O lead reflete a ligação antes mesmo do retorno
	assert.Equal(t, entity.OutcomeAppointmentSet, lead.LastCallResult)
	assert.Equal(t, entity.LeadStatusContacted, lead.Status)

	// Sessão é descartada no save: segunda tentativa falha
	_, err = manager.Save(ctx, session.ID)
	assert.Error(t, err)

	mockAnalyzer.AssertNumberOfCalls(t, "AnalyzeCall", 1)
	mockLeadRepo.AssertNumberOfCalls(t, "AppendCallLog", 1)
}

// TestCallWizardTransitionTable - cada transição definida leva ao estado
// e resultado esperados
func TestCallWizardTransitionTable(t *testing.T) {
	cases := []struct {
		from    CallState
		event   CallEvent
		next    CallState
		outcome string
	}{
		{StateConnect, EventConnected, StateReachedWhom, ""},
		{StateConnect, EventNoAnswer, StateSummary, entity.OutcomeNoAnswer},
		{StateReachedWhom, EventGatekeeper, StateGatekeeper, ""},
		{StateReachedWhom, EventDecisionMaker, StateDecisionMaker, ""},
		{StateGatekeeper, EventTransferred, StateDecisionMaker, ""},
		{StateGatekeeper, EventBlocked, StateSummary, entity.OutcomeGatekeeperBlocked},
		{StateDecisionMaker, EventInterested, StateInterest, ""},
		{StateDecisionMaker, EventNotInterested, StateSummary, entity.OutcomeNotInterested},
		{StateInterest, EventBookMeeting, StateAppointment, ""},
		{StateInterest, EventSendInfo, StateSummary, entity.OutcomeInterested},
		{StateAppointment, EventConfirm, StateSummary, entity.OutcomeAppointmentSet},
		{StateAppointment, EventCancel, StateSummary, entity.OutcomeInterested},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"/"+string(tc.event), func(t *testing.T) {
			ctx := context.Background()
			manager, _, mockAnalyzer, lead := newWizardFixture(t)
			mockAnalyzer.On("AnalyzeCall", mock.Anything, mock.Anything, mock.Anything).Return(&entity.CallAnalysis{}, nil)

			session, err := manager.Start(ctx, lead.ID)
			assert.NoError(t, err)

			session.mu.Lock()
			session.State = tc.from
			session.AppointmentDate = "2026-09-15"
			session.mu.Unlock()

			_, err = manager.Apply(session.ID, tc.event)
			assert.NoError(t, err)

			state, outcome, _ := sessionState(session)
			assert.Equal(t, tc.next, state)
			assert.Equal(t, tc.outcome, outcome)
		})
	}
}

// TestCallWizardIllegalTransitions - evento fora da tabela não muda nada
func TestCallWizardIllegalTransitions(t *testing.T) {
	cases := []struct {
		from  CallState
		event CallEvent
	}{
		{StateConnect, EventBookMeeting},
		{StateConnect, EventInterested},
		{StateReachedWhom, EventConfirm},
		{StateGatekeeper, EventNoAnswer},
		{StateDecisionMaker, EventTransferred},
		{StateInterest, EventConnected},
		{StateAppointment, EventDecisionMaker},
	}

	for _, tc := range cases {
		t.Run(string(tc.from)+"/"+string(tc.event), func(t *testing.T) {
			ctx := context.Background()
			manager, _, _, lead := newWizardFixture(t)

			session, err := manager.Start(ctx, lead.ID)
			assert.NoError(t, err)

			session.mu.Lock()
			session.State = tc.from
			session.mu.Unlock()

			_, err = manager.Apply(session.ID, tc.event)

			var domainErr *DomainError
			assert.ErrorAs(t, err, &domainErr)
			assert.Equal(t, "ILLEGAL_TRANSITION", domainErr.Code)

			state, outcome, _ := sessionState(session)
			assert.Equal(t, tc.from, state)
			assert.Empty(t, outcome)
		})
	}
}

// TestCallWizardSummaryIsTerminal - depois do resumo nenhum evento é aceito
// e a análise só é disparada uma vez
func TestCallWizardSummaryIsTerminal(t *testing.T) {
	ctx := context.Background()
	manager, _, mockAnalyzer, lead := newWizardFixture(t)
	mockAnalyzer.On("AnalyzeCall", mock.Anything, entity.OutcomeNoAnswer, mock.Anything).Return(&entity.CallAnalysis{}, nil)

	session, err := manager.Start(ctx, lead.ID)
	assert.NoError(t, err)

	_, err = manager.Apply(session.ID, EventNoAnswer)
	assert.NoError(t, err)

	for _, event := range []CallEvent{EventConnected, EventNoAnswer, EventConfirm} {
		_, err = manager.Apply(session.ID, event)
		assert.Error(t, err)
	}

	assert.Eventually(t, func() bool {
		_, _, pending := sessionState(session)
		return !pending
	}, 2*time.Second, 10*time.Millisecond)

	mockAnalyzer.AssertNumberOfCalls(t, "AnalyzeCall", 1)
}

// TestCallWizardAnalysisFailureDegrades - análise é best-effort: resumo e
// save continuam funcionando sem ela
func TestCallWizardAnalysisFailureDegrades(t *testing.T) {
	ctx := context.Background()
	manager, mockLeadRepo, mockAnalyzer, lead := newWizardFixture(t)
	mockAnalyzer.On("AnalyzeCall", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("provider down"))
	mockLeadRepo.On("AppendCallLog", ctx, lead, mock.Anything).Return(nil)

	session, err := manager.Start(ctx, lead.ID)
	assert.NoError(t, err)

	_, err = manager.Apply(session.ID, EventNoAnswer)
	assert.NoError(t, err)

	assert.Eventually(t, func() bool {
		_, _, pending := sessionState(session)
		return !pending
	}, 2*time.Second, 10*time.Millisecond)

	callLog, err := manager.Save(ctx, session.ID)
	assert.NoError(t, err)
	assert.Nil(t, callLog.Analysis)
}

// TestCallWizardCancelDiscards - cancelar descarta tudo: nada encosta no lead
func TestCallWizardCancelDiscards(t *testing.T) {
	ctx := context.Background()
	manager, mockLeadRepo, mockAnalyzer, lead := newWizardFixture(t)
	mockAnalyzer.On("AnalyzeCall", mock.Anything, mock.Anything, mock.Anything).Return(&entity.CallAnalysis{}, nil)

	session, err := manager.Start(ctx, lead.ID)
	assert.NoError(t, err)

	notes := "cliente pediu retorno semana que vem"
	_, err = manager.Update(session.ID, UpdateCallSessionInput{Notes: &notes})
	assert.NoError(t, err)

	_, err = manager.Apply(session.ID, EventNoAnswer)
	assert.NoError(t, err)

	assert.NoError(t, manager.Cancel(session.ID))

	_, err = manager.Get(session.ID)
	assert.Error(t, err)

	assert.Empty(t, lead.CallLogs)
	assert.Empty(t, lead.LastCallResult)
	assert.Equal(t, entity.LeadStatusNew, lead.Status)
	mockLeadRepo.AssertNotCalled(t, "AppendCallLog", mock.Anything, mock.Anything, mock.Anything)
}

// TestCallWizardSaveRequiresSummary
func TestCallWizardSaveRequiresSummary(t *testing.T) {
	ctx := context.Background()
	manager, _, _, lead := newWizardFixture(t)

	session, err := manager.Start(ctx, lead.ID)
	assert.NoError(t, err)

	_, err = manager.Save(ctx, session.ID)

	var domainErr *DomainError
	assert.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_IN_SUMMARY", domainErr.Code)
}

// TestCallWizardRecordingForceStopped - gravação ativa é encerrada ao entrar
// no resumo e não pode ser religada
func TestCallWizardRecordingForceStopped(t *testing.T) {
	ctx := context.Background()
	manager, _, mockAnalyzer, lead := newWizardFixture(t)
	mockAnalyzer.On("AnalyzeCall", mock.Anything, mock.Anything, mock.Anything).Return(&entity.CallAnalysis{}, nil)

	session, err := manager.Start(ctx, lead.ID)
	assert.NoError(t, err)

	_, err = manager.SetRecording(session.ID, true, "rec-001")
	assert.NoError(t, err)
	assert.True(t, session.Recording)

	_, err = manager.Apply(session.ID, EventNoAnswer)
	assert.NoError(t, err)

	session.mu.Lock()
	recording, ref := session.Recording, session.RecordingRef
	session.mu.Unlock()
	assert.False(t, recording)
	assert.Equal(t, "rec-001", ref)

	_, err = manager.SetRecording(session.ID, true, "")
	assert.Error(t, err)
}

// TestCallWizardInterestedSendsEmail - resultado Interested com e-mail
// conhecido dispara o material em background
func TestCallWizardInterestedSendsEmail(t *testing.T) {
	ctx := context.Background()
	manager, mockLeadRepo, mockAnalyzer, lead := newWizardFixture(t)
	lead.Email = "owner@acme.com"

	email := newFakeEmailService()
	manager.Email = email

	mockAnalyzer.On("AnalyzeCall", mock.Anything, entity.OutcomeInterested, mock.Anything).Return(&entity.CallAnalysis{Sentiment: entity.SentimentNeutral}, nil)
	mockLeadRepo.On("AppendCallLog", ctx, lead, mock.Anything).Return(nil)

	session, err := manager.Start(ctx, lead.ID)
	assert.NoError(t, err)

	for _, event := range []CallEvent{EventConnected, EventDecisionMaker, EventInterested, EventSendInfo} {
		_, err = manager.Apply(session.ID, event)
		assert.NoError(t, err)
	}

	assert.Eventually(t, func() bool {
		_, _, pending := sessionState(session)
		return !pending
	}, 2*time.Second, 10*time.Millisecond)

	// Override do usuário vence o sentimento da IA no registro final
	override := entity.SentimentNegative
	_, err = manager.Update(session.ID, UpdateCallSessionInput{SentimentOverride: &override})
	assert.NoError(t, err)

	callLog, err := manager.Save(ctx, session.ID)
	assert.NoError(t, err)
	assert.Equal(t, entity.SentimentNegative, callLog.Analysis.Sentiment)

	select {
	case to := <-email.sent:
		assert.Equal(t, "owner@acme.com", to)
	case <-time.After(2 * time.Second):
		t.Fatal("e-mail de material não foi enviado")
	}
}

// TestCallWizardDefaultAppointmentHour - sem hora informada assume 09:00
func TestCallWizardDefaultAppointmentHour(t *testing.T) {
	parsed, err := composeAppointment("2026-10-01", "")
	assert.NoError(t, err)
	assert.Equal(t, 9, parsed.Hour())
	assert.Equal(t, 0, parsed.Minute())

	_, err = composeAppointment("not-a-date", "10:00")
	assert.Error(t, err)
}

// TestCallWizardSnapshotDuringAnalysis - o polling do resumo serializa uma
// cópia da sessão enquanto a análise escreve nela em background
func TestCallWizardSnapshotDuringAnalysis(t *testing.T) {
	ctx := context.Background()
	manager, _, mockAnalyzer, lead := newWizardFixture(t)

	analysis := &entity.CallAnalysis{Score: 40, Confidence: entity.ConfidenceLow, Sentiment: entity.SentimentNeutral}
	mockAnalyzer.On("AnalyzeCall", mock.Anything, entity.OutcomeNoAnswer, "Acme Plumbing").
		After(30*time.Millisecond).Return(analysis, nil)

	session, err := manager.Start(ctx, lead.ID)
	assert.NoError(t, err)
	_, err = manager.Apply(session.ID, EventNoAnswer)
	assert.NoError(t, err)

	// Serializa em loop apertado enquanto a goroutine de análise roda; com
	// -race qualquer leitura da sessão viva fora do lock aparece aqui
	assert.Eventually(t, func() bool {
		snap := session.Snapshot()
		if _, err := json.Marshal(snap); err != nil {
			return false
		}
		return !snap.AnalysisPending && snap.Analysis != nil
	}, 2*time.Second, time.Millisecond)

	snap := session.Snapshot()
	assert.Equal(t, 40, snap.Analysis.Score)

	// A cópia é independente: mexer nela não encosta na sessão viva
	snap.Outcome = "EDITED"
	_, outcome, _ := sessionState(session)
	assert.Equal(t, entity.OutcomeNoAnswer, outcome)
}
