package entity

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
)

var ErrScriptNotFound = errors.New("script not found")

// Entidade: Script, template rich-text (HTML) com tokens {{variavel}}.
type Script struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Goal    string `json:"goal,omitempty"`
	Tone    string `json:"tone,omitempty"`
	Content string `json:"content"` // HTML com {{tokens}}

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Factory
func NewScript(name, content string) (*Script, error) {
	s := &Script{
		ID:        uuid.New().String(),
		Name:      name,
		Content:   content,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Script) Validate() error {
	if s.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

var scriptTokenRe = regexp.MustCompile(`\{\{\s*([a-zA-Z][a-zA-Z0-9]*)\s*\}\}`)

// Interpolate substitui tokens {{chave}} por correspondência exata de chave.
// Token sem valor conhecido fica intacto no texto (não é erro).
func (s *Script) Interpolate(vars map[string]string) string {
	return scriptTokenRe.ReplaceAllStringFunc(s.Content, func(tok string) string {
		key := scriptTokenRe.FindStringSubmatch(tok)[1]
		if val, ok := vars[key]; ok {
			return val
		}
		return tok
	})
}

// ScriptVarsForLead monta o conjunto fixo de variáveis a partir de um lead.
// company/companyName e ceo/ceoName são aliases aceitos no template.
func ScriptVarsForLead(l *Lead, myName, myCompany string) map[string]string {
	return map[string]string{
		"leadName":    l.CompanyName,
		"company":     l.CompanyName,
		"companyName": l.CompanyName,
		"category":    l.Category,
		"ceo":         l.CEOName,
		"ceoName":     l.CEOName,
		"myName":      myName,
		"myCompany":   myCompany,
	}
}

// ScriptPreviewVars são os valores demo usados no modo preview do editor.
func ScriptPreviewVars() map[string]string {
	return map[string]string{
		"leadName":    "Acme Plumbing",
		"company":     "Acme Plumbing",
		"companyName": "Acme Plumbing",
		"category":    "Plumbing Services",
		"ceo":         "Jane Cooper",
		"ceoName":     "Jane Cooper",
		"myName":      "Alex",
		"myCompany":   "Ligue",
	}
}
