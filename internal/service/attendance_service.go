package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusworks/srms-api/internal/models"
	appErrors "github.com/campusworks/srms-api/pkg/errors"
)

type attendanceRepository interface {
	Append(ctx context.Context, record models.AttendanceRecord) error
	ByStudent(ctx context.Context, studentID string) ([]models.AttendanceRecord, error)
}

// MarkAttendanceRequest records one student's presence on one date.
type MarkAttendanceRequest struct {
	Date      string                  `json:"date" validate:"required"`
	StudentID string                  `json:"studentId" validate:"required"`
	Status    models.AttendanceStatus `json:"status" validate:"required"`
}

// BulkAttendanceEntry is one row of a bulk attendance submission.
type BulkAttendanceEntry struct {
	StudentID string                  `json:"studentId"`
	Status    models.AttendanceStatus `json:"status"`
}

// AttendanceService records attendance entries. The collection is
// append-only; the same (date, student) pair may be recorded more than once
// and every entry counts.
type AttendanceService struct {
	repo      attendanceRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceService constructs an AttendanceService.
func NewAttendanceService(repo attendanceRepository, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, validator: validate, logger: logger}
}

// Mark appends one attendance entry.
func (s *AttendanceService) Mark(ctx context.Context, req MarkAttendanceRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "missing required fields")
	}
	if !req.Status.Valid() {
		return appErrors.Clone(appErrors.ErrValidation, "status must be present or absent")
	}

	return s.repo.Append(ctx, models.AttendanceRecord{
		Date:      req.Date,
		StudentID: req.StudentID,
		Status:    req.Status,
	})
}

// BulkMark appends one entry per row for a single date. Rows with a missing
// student or status are skipped, matching the single-row leniency of the
// form-driven clients. It returns how many entries were recorded.
func (s *AttendanceService) BulkMark(ctx context.Context, date string, entries []BulkAttendanceEntry) (int, error) {
	if date == "" || len(entries) == 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "date and attendance entries are required")
	}

	recorded := 0
	for _, entry := range entries {
		if entry.StudentID == "" || !entry.Status.Valid() {
			s.logger.Warn("skipping invalid bulk attendance entry",
				zap.String("date", date),
				zap.String("student_id", entry.StudentID))
			continue
		}
		if err := s.repo.Append(ctx, models.AttendanceRecord{
			Date:      date,
			StudentID: entry.StudentID,
			Status:    entry.Status,
		}); err != nil {
			return recorded, err
		}
		recorded++
	}
	return recorded, nil
}

// ForStudent returns a student's attendance log with its stats.
func (s *AttendanceService) ForStudent(ctx context.Context, studentID string) (*models.AttendanceSummary, error) {
	records, err := s.repo.ByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return &models.AttendanceSummary{
		Records: records,
		Stats:   AttendanceStats(records),
	}, nil
}
