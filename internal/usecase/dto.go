package usecase

// SearchResult é o registro parcial que a busca externa devolve por empresa.
type SearchResult struct {
	CompanyName string  `json:"company_name"`
	Category    string  `json:"category"`
	Address     string  `json:"address"`
	Website     string  `json:"website"`
	Phone       string  `json:"phone"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"review_count"`
	SourceURL   string  `json:"source_url"`
}

type CreateProjectInput struct {
	Name            string  `json:"name"`
	Industry        string  `json:"industry"`
	Location        string  `json:"location"`
	Limit           int     `json:"limit"`
	MustHaveWebsite bool    `json:"must_have_website"`
	MinRating       float64 `json:"min_rating"`
}

type CreateProjectOutput struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	LeadCount int    `json:"lead_count"`
	Msg       string `json:"msg"`
}

type LoadMoreInput struct {
	ProjectID string `json:"project_id"`
	Limit     int    `json:"limit"`
}

type LoadMoreOutput struct {
	Added     int `json:"added"`
	LeadCount int `json:"lead_count"`
}

type UpdateLeadInput struct {
	Website     *string  `json:"website,omitempty"`
	Phone       *string  `json:"phone,omitempty"`
	Email       *string  `json:"email,omitempty"`
	EmailStatus *string  `json:"email_status,omitempty"`
	CEOName     *string  `json:"ceo_name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
	Status      *string  `json:"status,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
}

type EnrichLeadsInput struct {
	ProjectID string   `json:"project_id"`
	LeadIDs   []string `json:"lead_ids,omitempty"` // vazio = todos os leads do projeto
}

type EnrichLeadsOutput struct {
	Enriched int    `json:"enriched"`
	Failed   int    `json:"failed"`
	Skipped  bool   `json:"skipped"` // rodada substituída por outra mais nova
	Status   string `json:"status"`  // status final do projeto
}

type GenerateScriptInput struct {
	Name string `json:"name"`
	Goal string `json:"goal"`
	Tone string `json:"tone"`
}
