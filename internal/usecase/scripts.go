package usecase

import (
	"context"
	"log"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

type ScriptUseCase struct {
	ScriptRepo ScriptRepositoryInterface
	LeadRepo   LeadRepositoryInterface
	Generator  ScriptGenerator

	MyName    string
	MyCompany string
}

func NewScriptUseCase(scriptRepo ScriptRepositoryInterface, leadRepo LeadRepositoryInterface, generator ScriptGenerator, myName, myCompany string) *ScriptUseCase {
	return &ScriptUseCase{
		ScriptRepo: scriptRepo,
		LeadRepo:   leadRepo,
		Generator:  generator,
		MyName:     myName,
		MyCompany:  myCompany,
	}
}

// Generate pede um template novo à IA e persiste como script.
func (uc *ScriptUseCase) Generate(ctx context.Context, input GenerateScriptInput) (*entity.Script, error) {
	if input.Name == "" {
		return nil, &DomainError{Code: "VALIDATION_ERROR", Message: "name is required"}
	}

	content, err := uc.Generator.GenerateScript(ctx, input.Goal, input.Tone)
	if err != nil {
		log.Printf("⚠️ Geração de script falhou (%s/%s): %v", input.Goal, input.Tone, err)
		return nil, &TechnicalError{Code: "GENERATION_ERROR", Message: "script generation failed: " + err.Error()}
	}

	script, err := entity.NewScript(input.Name, content)
	if err != nil {
		return nil, &DomainError{Code: "INVALID_SCRIPT", Message: err.Error()}
	}
	script.Goal = input.Goal
	script.Tone = input.Tone

	if err := uc.ScriptRepo.Create(ctx, script); err != nil {
		return nil, &TechnicalError{Code: "DATABASE_ERROR", Message: err.Error()}
	}

	return script, nil
}

// RenderForLead interpola o script com os dados reais de um lead (hora da
// ligação).
func (uc *ScriptUseCase) RenderForLead(ctx context.Context, scriptID, leadID string) (string, error) {
	script, err := uc.ScriptRepo.FindByID(ctx, scriptID)
	if err != nil {
		return "", &DomainError{Code: "SCRIPT_NOT_FOUND", Message: "script inválido: " + err.Error()}
	}
	lead, err := uc.LeadRepo.FindByID(ctx, leadID)
	if err != nil {
		return "", &DomainError{Code: "LEAD_NOT_FOUND", Message: "lead inválido: " + err.Error()}
	}

	return script.Interpolate(entity.ScriptVarsForLead(lead, uc.MyName, uc.MyCompany)), nil
}

// RenderPreview interpola com os valores demo do editor.
func (uc *ScriptUseCase) RenderPreview(ctx context.Context, scriptID string) (string, error) {
	script, err := uc.ScriptRepo.FindByID(ctx, scriptID)
	if err != nil {
		return "", &DomainError{Code: "SCRIPT_NOT_FOUND", Message: "script inválido: " + err.Error()}
	}

	return script.Interpolate(entity.ScriptPreviewVars()), nil
}
