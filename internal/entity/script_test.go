package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestInterpolateReplacesKnownTokens - substituição por chave exata
func TestInterpolateReplacesKnownTokens(t *testing.T) {
	s := &Script{Content: "<p>Hi {{leadName}}, this is {{myName}} from {{myCompany}}.</p>"}

	out := s.Interpolate(map[string]string{
		"leadName":  "Acme Plumbing",
		"myName":    "Alex",
		"myCompany": "Ligue",
	})

	assert.Equal(t, "<p>Hi Acme Plumbing, this is Alex from Ligue.</p>", out)
}

// TestInterpolateUnknownTokenStaysIntact - token desconhecido não é erro
func TestInterpolateUnknownTokenStaysIntact(t *testing.T) {
	s := &Script{Content: "Hello {{leadName}}, about {{budget}}..."}

	out := s.Interpolate(map[string]string{"leadName": "Acme"})

	assert.Equal(t, "Hello Acme, about {{budget}}...", out)
}

// TestInterpolateWhitespaceInsideBraces - {{ chave }} também é aceito
func TestInterpolateWhitespaceInsideBraces(t *testing.T) {
	s := &Script{Content: "Hi {{ leadName }}!"}

	out := s.Interpolate(map[string]string{"leadName": "Acme"})

	assert.Equal(t, "Hi Acme!", out)
}

// TestInterpolateRepeatedToken - mesma chave pode aparecer várias vezes
func TestInterpolateRepeatedToken(t *testing.T) {
	s := &Script{Content: "{{company}}: porque {{company}} merece mais."}

	out := s.Interpolate(map[string]string{"company": "Acme"})

	assert.Equal(t, "Acme: porque Acme merece mais.", out)
}

// TestInterpolateEmptyValueErasesToken - valor vazio conhecido substitui por nada
func TestInterpolateEmptyValueErasesToken(t *testing.T) {
	s := &Script{Content: "CEO: {{ceo}}."}

	out := s.Interpolate(map[string]string{"ceo": ""})

	assert.Equal(t, "CEO: .", out)
}

// TestScriptVarsForLeadAliases - company/companyName e ceo/ceoName são aliases
func TestScriptVarsForLeadAliases(t *testing.T) {
	lead := &Lead{CompanyName: "Acme Plumbing", Category: "Plumbing", CEOName: "Jane Cooper"}

	vars := ScriptVarsForLead(lead, "Alex", "Ligue")

	assert.Equal(t, "Acme Plumbing", vars["leadName"])
	assert.Equal(t, vars["company"], vars["companyName"])
	assert.Equal(t, vars["ceo"], vars["ceoName"])
	assert.Equal(t, "Alex", vars["myName"])
	assert.Equal(t, "Ligue", vars["myCompany"])
}

// TestScriptPreviewVarsCoverAllTokens - preview preenche o conjunto fixo inteiro
func TestScriptPreviewVarsCoverAllTokens(t *testing.T) {
	preview := ScriptPreviewVars()
	forLead := ScriptVarsForLead(&Lead{CompanyName: "x"}, "y", "z")

	for key := range forLead {
		assert.Contains(t, preview, key)
		assert.NotEmpty(t, preview[key])
	}
}

func TestNewScriptRequiresName(t *testing.T) {
	_, err := NewScript("", "<p>conteúdo</p>")
	assert.Error(t, err)

	s, err := NewScript("Cold Call v1", "<p>conteúdo</p>")
	assert.NoError(t, err)
	assert.NotEmpty(t, s.ID)
}
