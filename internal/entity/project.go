package entity

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrProjectNotFound = errors.New("project not found")

// Status do Project (uma rodada de busca)
const (
	ProjectStatusDraft     = "DRAFT"
	ProjectStatusFetching  = "FETCHING"
	ProjectStatusEnriching = "ENRICHING"
	ProjectStatusCompleted = "COMPLETED"
)

// Entidade: Project, uma busca nomeada com filtros e os leads que ela trouxe.
type Project struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Industry string `json:"industry"`
	Location string `json:"location"`
	Limit    int    `json:"limit"`

	// Pós-filtros aplicados sobre o resultado da busca
	MustHaveWebsite bool    `json:"must_have_website"`
	MinRating       float64 `json:"min_rating"`

	Status string  `json:"status"` // DRAFT, FETCHING, ENRICHING, COMPLETED
	Leads  []*Lead `json:"leads,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Factory
func NewProject(name, industry, location string, limit int) (*Project, error) {
	p := &Project{
		ID:        uuid.New().String(),
		Name:      name,
		Industry:  industry,
		Location:  location,
		Limit:     limit,
		Status:    ProjectStatusDraft,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Project) Validate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.Industry == "" {
		return errors.New("industry is required")
	}
	if p.Location == "" {
		return errors.New("location is required")
	}
	if p.Limit <= 0 {
		return errors.New("limit must be positive")
	}
	return nil
}

// ContainsName diz se o projeto já tem um lead com esse nome de empresa
// (comparação case-insensitive, a regra de deduplicação da busca).
func (p *Project) ContainsName(companyName string) bool {
	for _, l := range p.Leads {
		if l.NameMatches(companyName) {
			return true
		}
	}
	return false
}

// LeadNames devolve os nomes atuais, usados como excludeNames no load-more.
func (p *Project) LeadNames() []string {
	names := make([]string, 0, len(p.Leads))
	for _, l := range p.Leads {
		names = append(names, l.CompanyName)
	}
	return names
}

// AnyEnriching indica se algum lead ainda está com enriquecimento em voo.
func (p *Project) AnyEnriching() bool {
	for _, l := range p.Leads {
		if l.IsEnriching {
			return true
		}
	}
	return false
}
