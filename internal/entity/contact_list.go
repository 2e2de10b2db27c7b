package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrContactListNotFound = errors.New("contact list not found")

// Estágios de pipeline de uma lista de contatos
const (
	StageCold      = "COLD"
	StageQualified = "QUALIFIED"
	StageProposal  = "PROPOSAL"
	StageClosing   = "CLOSING"
	StageClosed    = "CLOSED"
)

// PipelineStages na ordem do funil. A ordem importa para o relatório.
var PipelineStages = []string{StageCold, StageQualified, StageProposal, StageClosing, StageClosed}

// Entidade: ContactList, coleção curada pelo usuário. Leads copiados de um
// projeto viram cópias independentes (novo ID), nunca compartilham registro.
type ContactList struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Stage string  `json:"stage"` // COLD, QUALIFIED, PROPOSAL, CLOSING, CLOSED
	Leads []*Lead `json:"leads,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Factory
func NewContactList(name, stage string) (*ContactList, error) {
	if stage == "" {
		stage = StageCold
	}

	cl := &ContactList{
		ID:        uuid.New().String(),
		Name:      name,
		Stage:     stage,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := cl.Validate(); err != nil {
		return nil, err
	}

	return cl, nil
}

func (cl *ContactList) Validate() error {
	if cl.Name == "" {
		return errors.New("name is required")
	}
	if !ValidStage(cl.Stage) {
		return errors.New("invalid pipeline stage")
	}
	return nil
}

func ValidStage(stage string) bool {
	for _, s := range PipelineStages {
		if s == stage {
			return true
		}
	}
	return false
}

// CopyLead duplica um lead para dentro da lista: novo ID, histórico zerado de
// vínculo com o projeto de origem, demais campos preservados.
func (cl *ContactList) CopyLead(src *Lead) *Lead {
	cp := *src
	cp.ID = uuid.New().String()
	cp.ProjectID = ""
	cp.ContactListID = cl.ID
	cp.IsEnriching = false
	cp.CallLogs = append([]CallLog(nil), src.CallLogs...)
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = time.Now()
	cl.Leads = append(cl.Leads, &cp)
	return &cp
}
