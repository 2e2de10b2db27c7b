package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// FunnelStep é um estágio do pipeline com contagem e percentuais relativos.
type FunnelStep struct {
	Stage     string `json:"stage"`
	Count     int    `json:"count"`
	PctOfBase int    `json:"pct_of_base"` // relativo ao primeiro estágio
	PctOfPrev int    `json:"pct_of_prev"` // relativo ao estágio anterior
}

type ReportOutput struct {
	TotalProjects        int            `json:"total_projects"`
	TotalLeads           int            `json:"total_leads"`
	AverageScore         int            `json:"average_score"`
	LeadsByStatus        map[string]int `json:"leads_by_status"`
	CallsByOutcome       map[string]int `json:"calls_by_outcome"`
	Funnel               []FunnelStep   `json:"funnel"`
	UpcomingAppointments int            `json:"upcoming_appointments"`
}

// ReportingUseCase agrega números para o dashboard: totais, leads por
// status, ligações por resultado e o funil de pipeline das listas.
type ReportingUseCase struct {
	ProjectRepo     ProjectRepositoryInterface
	ContactListRepo ContactListRepositoryInterface
}

func NewReportingUseCase(projectRepo ProjectRepositoryInterface, listRepo ContactListRepositoryInterface) *ReportingUseCase {
	return &ReportingUseCase{ProjectRepo: projectRepo, ContactListRepo: listRepo}
}

func (uc *ReportingUseCase) Execute(ctx context.Context) (*ReportOutput, error) {
	projects, err := uc.ProjectRepo.List(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}
	lists, err := uc.ContactListRepo.List(ctx)
	if err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	out := &ReportOutput{
		TotalProjects:  len(projects),
		LeadsByStatus:  make(map[string]int),
		CallsByOutcome: make(map[string]int),
	}

	scoreSum := 0
	now := time.Now()

	countLead := func(l *entity.Lead) {
		out.TotalLeads++
		scoreSum += l.Score
		out.LeadsByStatus[l.Status]++
		for _, cl := range l.CallLogs {
			out.CallsByOutcome[cl.Outcome]++
		}
		if l.AppointmentDate != nil && l.AppointmentDate.After(now) {
			out.UpcomingAppointments++
		}
	}

	for _, p := range projects {
		for _, l := range p.Leads {
			countLead(l)
		}
	}

	stageCounts := make(map[string]int)
	for _, cl := range lists {
		stageCounts[cl.Stage] += len(cl.Leads)
		for _, l := range cl.Leads {
			countLead(l)
		}
	}

	if out.TotalLeads > 0 {
		out.AverageScore = scoreSum / out.TotalLeads
	}

	out.Funnel = buildFunnel(stageCounts)

	return out, nil
}

// buildFunnel monta os estágios na ordem do pipeline, com percentuais sobre
// o estágio base (primeiro com contagem) e sobre o anterior.
func buildFunnel(counts map[string]int) []FunnelStep {
	base := counts[entity.PipelineStages[0]]
	if base == 0 {
		// sem base explícita, usa o maior estágio como referência
		for _, s := range entity.PipelineStages {
			if counts[s] > base {
				base = counts[s]
			}
		}
	}

	steps := make([]FunnelStep, 0, len(entity.PipelineStages))
	prev := 0
	for i, s := range entity.PipelineStages {
		c := counts[s]
		step := FunnelStep{Stage: s, Count: c, PctOfBase: percent(c, base)}
		if i == 0 {
			step.PctOfPrev = 100
		} else {
			step.PctOfPrev = percent(c, prev)
		}
		steps = append(steps, step)
		prev = c
	}
	return steps
}

func percent(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (100 * a) / b
}
