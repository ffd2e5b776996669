package service

import (
	"context"
	"strconv"

	"go.uber.org/zap"

	"github.com/campusworks/srms-api/internal/models"
	appErrors "github.com/campusworks/srms-api/pkg/errors"
	"github.com/campusworks/srms-api/pkg/export"
)

type rosterProvider interface {
	AdminStudentsView(ctx context.Context) ([]models.StudentSummary, error)
}

// Export formats supported for the roster download.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

// ExportService renders the admin student roster as a downloadable file.
type ExportService struct {
	roster rosterProvider
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(roster rosterProvider, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		roster: roster,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
}

// StudentsSummary renders the roster in the requested format and returns
// the bytes with their content type.
func (s *ExportService) StudentsSummary(ctx context.Context, format string) ([]byte, string, error) {
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}

	summaries, err := s.roster.AdminStudentsView(ctx)
	if err != nil {
		return nil, "", err
	}

	dataset := export.Dataset{
		Headers: []string{"Student ID", "Name", "Year", "Branch", "Section", "Attendance %", "Avg Marks", "Fee Total", "Fee Paid", "Fee Balance", "Fee Status"},
		Rows:    make([]map[string]string, 0, len(summaries)),
	}
	for _, row := range summaries {
		dataset.Rows = append(dataset.Rows, map[string]string{
			"Student ID":   row.StudentID,
			"Name":         row.Name,
			"Year":         row.Year,
			"Branch":       row.Branch,
			"Section":      row.Section,
			"Attendance %": strconv.Itoa(row.AttendancePercentage),
			"Avg Marks":    strconv.Itoa(row.AvgMarks),
			"Fee Total":    strconv.FormatFloat(row.FeeTotal, 'f', -1, 64),
			"Fee Paid":     strconv.FormatFloat(row.FeePaid, 'f', -1, 64),
			"Fee Balance":  strconv.FormatFloat(row.FeeBalance, 'f', -1, 64),
			"Fee Status":   string(row.FeeStatus),
		})
	}

	if format == ExportFormatPDF {
		data, err := s.pdf.Render(dataset, "Student Roster")
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return data, "application/pdf", nil
	}

	data, err := s.csv.Render(dataset)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	return data, "text/csv", nil
}
