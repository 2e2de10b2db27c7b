package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xavierca1/ligue-crm/internal/entity"
)

// Ordem fixa das colunas do export. Campos de texto livre saem entre aspas
// quando necessário (vírgulas embutidas nunca quebram a linha).
var csvHeader = []string{
	"Company Name", "Lead Score", "Category", "Address", "Website", "Phone",
	"Email", "Email Status", "CEO", "Description", "Status", "Last Call",
	"Setting Date", "Source URL",
}

type ExportCSVUseCase struct {
	ProjectRepo ProjectRepositoryInterface
}

func NewExportCSVUseCase(projectRepo ProjectRepositoryInterface) *ExportCSVUseCase {
	return &ExportCSVUseCase{ProjectRepo: projectRepo}
}

type ExportCSVOutput struct {
	Filename string
	Content  []byte
}

func (uc *ExportCSVUseCase) Execute(ctx context.Context, projectID string) (*ExportCSVOutput, error) {
	project, err := uc.ProjectRepo.FindByID(ctx, projectID)
	if err != nil {
		return nil, &DomainError{Code: "PROJECT_NOT_FOUND", Message: "projeto inválido: " + err.Error()}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, &TechnicalError{Code: "EXPORT_ERROR", Message: err.Error()}
	}

	for _, lead := range project.Leads {
		if err := w.Write(leadCSVRow(lead)); err != nil {
			return nil, &TechnicalError{Code: "EXPORT_ERROR", Message: err.Error()}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, &TechnicalError{Code: "EXPORT_ERROR", Message: err.Error()}
	}

	return &ExportCSVOutput{
		Filename: CSVFilename(project.Name),
		Content:  buf.Bytes(),
	}, nil
}

func leadCSVRow(l *entity.Lead) []string {
	settingDate := ""
	if l.AppointmentDate != nil {
		settingDate = l.AppointmentDate.Format("2006-01-02 15:04")
	}

	return []string{
		l.CompanyName,
		fmt.Sprintf("%d", l.Score),
		l.Category,
		l.Address,
		l.Website,
		l.Phone,
		l.Email,
		l.EmailStatus,
		l.CEOName,
		l.Description,
		l.Status,
		l.LastCallResult,
		settingDate,
		l.SourceURL,
	}
}

// CSVFilename: espaços do nome do projeto viram underscore.
func CSVFilename(projectName string) string {
	return strings.ReplaceAll(projectName, " ", "_") + "_leads.csv"
}
