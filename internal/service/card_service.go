package service

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/praja-edu/results-portal-api/internal/models"
	"github.com/praja-edu/results-portal-api/internal/scope"
	appErrors "github.com/praja-edu/results-portal-api/pkg/errors"
	"github.com/praja-edu/results-portal-api/pkg/export"
)

type cardRepository interface {
	AccessCardRows(ctx context.Context, schoolID, classID string) ([]models.AccessCardRow, error)
}

// CardService produces the QR access-card data for a school: one row per
// student carrying the public result URL their token resolves to, either as
// JSON for the frontend card renderer or as a CSV/PDF download.
type CardService struct {
	repo          cardRepository
	csv           *export.CSVExporter
	pdf           *export.PDFExporter
	publicBaseURL string
	logger        *zap.Logger
}

// NewCardService constructs a CardService instance.
func NewCardService(repo cardRepository, csv *export.CSVExporter, pdf *export.PDFExporter, publicBaseURL string, logger *zap.Logger) *CardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CardService{repo: repo, csv: csv, pdf: pdf, publicBaseURL: publicBaseURL, logger: logger}
}

// Rows returns the access-card rows for one school, optionally one class.
func (s *CardService) Rows(ctx context.Context, caller *models.JWTClaims, schoolID, classID string) ([]models.AccessCardRow, error) {
	if schoolID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "school_id is required")
	}
	if err := scope.Authorize(scope.FromClaims(caller), scope.FromQuery("", "", schoolID)); err != nil {
		return nil, err
	}

	// class_id=all means the whole school.
	if classID == "all" {
		classID = ""
	}
	rows, err := s.repo.AccessCardRows(ctx, schoolID, classID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch access cards")
	}
	for i := range rows {
		rows[i].PublicURL = fmt.Sprintf("%s/student/%s", s.publicBaseURL, rows[i].AccessToken)
	}
	if rows == nil {
		rows = []models.AccessCardRow{}
	}
	return rows, nil
}

// ExportCSV renders the access-card rows as a CSV download.
func (s *CardService) ExportCSV(ctx context.Context, caller *models.JWTClaims, schoolID, classID string) ([]byte, error) {
	rows, err := s.Rows(ctx, caller, schoolID, classID)
	if err != nil {
		return nil, err
	}
	payload, err := s.csv.Render(cardDataset(rows))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	return payload, nil
}

// ExportPDF renders the access-card rows as a printable PDF table.
func (s *CardService) ExportPDF(ctx context.Context, caller *models.JWTClaims, schoolID, classID string) ([]byte, error) {
	rows, err := s.Rows(ctx, caller, schoolID, classID)
	if err != nil {
		return nil, err
	}
	title := "Student Result Access Cards"
	if len(rows) > 0 {
		title = fmt.Sprintf("%s - %s", rows[0].SchoolName, title)
	}
	payload, err := s.pdf.Render(cardDataset(rows), title)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
	}
	return payload, nil
}

func cardDataset(rows []models.AccessCardRow) export.Dataset {
	data := export.Dataset{
		Headers: []string{"Student", "PEN", "Class", "School", "Result URL"},
	}
	for _, row := range rows {
		data.Rows = append(data.Rows, map[string]string{
			"Student":    row.StudentName,
			"PEN":        row.PENNumber,
			"Class":      strconv.Itoa(row.GradeLevel),
			"School":     row.SchoolName,
			"Result URL": row.PublicURL,
		})
	}
	return data
}
