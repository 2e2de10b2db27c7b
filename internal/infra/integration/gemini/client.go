package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"google.golang.org/genai"

	"github.com/xavierca1/ligue-crm/internal/entity"
	"github.com/xavierca1/ligue-crm/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-crm/internal/usecase"
)

const defaultModel = "gemini-2.5-flash"

// Client fala com a API generativa. Todas as operações são best-effort:
// resposta ilegível vira resultado vazio, nunca erro fatal para a pipeline.
type Client struct {
	genai *genai.Client
	model string
}

// NewClient cria o cliente. Sem API key o cliente nasce "desconfigurado":
// busca e enriquecimento devolvem vazio, análise cai na heurística local.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	if apiKey == "" {
		log.Println("⚠️ Gemini: GEMINI_API_KEY não configurada, operando em modo heurístico")
		return &Client{model: defaultModel}, nil
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("falha ao criar cliente Gemini: %w", err)
	}

	return &Client{genai: gc, model: defaultModel}, nil
}

func (c *Client) Configured() bool {
	return c.genai != nil
}

// generateJSON faz uma chamada prompt-in / best-effort-JSON-out.
func (c *Client) generateJSON(ctx context.Context, prompt string) (string, error) {
	resp, err := c.genai.Models.GenerateContent(ctx, c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{ResponseMIMEType: "application/json"},
	)
	if err != nil {
		middleware.RecordIntegrationError("gemini")
		return "", err
	}
	return resp.Text(), nil
}

// SearchBusinesses busca empresas por ramo e região. Pode devolver menos que
// limit; quem chama deduplica e aplica pós-filtros.
func (c *Client) SearchBusinesses(ctx context.Context, industry, location string, limit int, excludeNames []string) ([]usecase.SearchResult, error) {
	if !c.Configured() {
		return nil, nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "List up to %d real businesses in the %q industry located in %q. ", limit, industry, location)
	sb.WriteString("Respond with a JSON array where each element has the keys: ")
	sb.WriteString(`company_name, category, address, website, phone, rating (number 0-5), review_count (integer), source_url. `)
	sb.WriteString("Unknown fields must be empty strings or 0.")
	if len(excludeNames) > 0 {
		fmt.Fprintf(&sb, " Exclude these businesses: %s.", strings.Join(excludeNames, "; "))
	}

	raw, err := c.generateJSON(ctx, sb.String())
	if err != nil {
		return nil, err
	}

	cleaned := ExtractJSONArray(raw)
	if cleaned == "" {
		return nil, nil
	}

	var results []usecase.SearchResult
	if err := json.Unmarshal([]byte(cleaned), &results); err != nil {
		log.Printf("⚠️ Gemini: resposta de busca ilegível: %v", err)
		return nil, nil
	}

	return results, nil
}

// EnrichLead pede os campos que faltam para um lead. Resposta ruim vira
// resultado vazio: "não enriqueceu" é o modo de falha padrão.
func (c *Client) EnrichLead(ctx context.Context, lead *entity.Lead) (entity.EnrichmentResult, error) {
	if !c.Configured() {
		return entity.EnrichmentResult{}, nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Find public contact data for the business %q", lead.CompanyName)
	if lead.Address != "" {
		fmt.Fprintf(&sb, " at %q", lead.Address)
	}
	if lead.Website != "" {
		fmt.Fprintf(&sb, " (website %s)", lead.Website)
	}
	sb.WriteString(". Respond with a JSON object with the keys: ")
	sb.WriteString(`website, ceo_name, email, email_status (one of VERIFIED, GUESSED, UNVERIFIED), description, source_url. `)
	sb.WriteString("Unknown fields must be empty strings.")

	raw, err := c.generateJSON(ctx, sb.String())
	if err != nil {
		return entity.EnrichmentResult{}, err
	}

	cleaned := ExtractJSONObject(raw)
	if cleaned == "" {
		return entity.EnrichmentResult{}, nil
	}

	var res entity.EnrichmentResult
	if err := json.Unmarshal([]byte(cleaned), &res); err != nil {
		log.Printf("⚠️ Gemini: resposta de enriquecimento ilegível para '%s': %v", lead.CompanyName, err)
		return entity.EnrichmentResult{}, nil
	}

	return res, nil
}

// AnalyzeCall avalia a ligação pelo resultado. Sem API (ou com resposta
// ruim) cai na heurística determinística local.
func (c *Client) AnalyzeCall(ctx context.Context, outcome, leadName string) (*entity.CallAnalysis, error) {
	if !c.Configured() {
		return HeuristicAnalysis(outcome, leadName), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "A cold call to the business %q ended with the outcome %q. ", leadName, outcome)
	sb.WriteString("Evaluate the call. Respond with a JSON object with the keys: ")
	sb.WriteString(`score (integer 0-100), adherence (integer 0-100), confidence (LOW, MEDIUM or HIGH), `)
	sb.WriteString(`sentiment (POSITIVE, NEUTRAL or NEGATIVE), takeaways (array of short strings).`)

	raw, err := c.generateJSON(ctx, sb.String())
	if err != nil {
		return HeuristicAnalysis(outcome, leadName), nil
	}

	cleaned := ExtractJSONObject(raw)
	if cleaned == "" {
		return HeuristicAnalysis(outcome, leadName), nil
	}

	var analysis entity.CallAnalysis
	if err := json.Unmarshal([]byte(cleaned), &analysis); err != nil {
		log.Printf("⚠️ Gemini: análise ilegível (%s): %v", outcome, err)
		return HeuristicAnalysis(outcome, leadName), nil
	}
	clampAnalysis(&analysis)

	return &analysis, nil
}

// GenerateScript gera um template de script com tokens {{variavel}}.
func (c *Client) GenerateScript(ctx context.Context, goal, tone string) (string, error) {
	if !c.Configured() {
		return defaultScriptTemplate, nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Write a cold-call script in HTML. Goal: %q. Tone: %q. ", goal, tone)
	sb.WriteString("Use only these placeholders where data should be filled at call time: ")
	sb.WriteString("{{leadName}}, {{company}}, {{category}}, {{ceo}}, {{myName}}, {{myCompany}}. ")
	sb.WriteString("Respond with a JSON object with a single key: content.")

	raw, err := c.generateJSON(ctx, sb.String())
	if err != nil {
		return "", err
	}

	cleaned := ExtractJSONObject(raw)
	if cleaned != "" {
		var out struct {
			Content string `json:"content"`
		}
		if err := json.Unmarshal([]byte(cleaned), &out); err == nil && out.Content != "" {
			return out.Content, nil
		}
	}

	// Resposta fora do contrato: usa o texto cru se houver, senão o default.
	if strings.TrimSpace(raw) != "" {
		return StripCodeFences(raw), nil
	}
	return defaultScriptTemplate, nil
}

func clampAnalysis(a *entity.CallAnalysis) {
	if a.Score < 0 {
		a.Score = 0
	}
	if a.Score > 100 {
		a.Score = 100
	}
	if a.Adherence < 0 {
		a.Adherence = 0
	}
	if a.Adherence > 100 {
		a.Adherence = 100
	}
	if a.Sentiment == "" {
		a.Sentiment = entity.SentimentNeutral
	}
	if a.Confidence == "" {
		a.Confidence = entity.ConfidenceMedium
	}
}

const defaultScriptTemplate = `<p>Hi, this is {{myName}} from {{myCompany}}.</p>` +
	`<p>Am I speaking with someone at {{company}}? We help businesses in the ` +
	`{{category}} space and I'd love 30 seconds of your time.</p>`
