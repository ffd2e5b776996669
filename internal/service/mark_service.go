package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusworks/srms-api/internal/models"
	appErrors "github.com/campusworks/srms-api/pkg/errors"
)

type markRepository interface {
	Append(ctx context.Context, record models.MarkRecord) error
}

// AddMarkRequest records one exam score. Marks is a pointer so an explicit
// zero score passes validation.
type AddMarkRequest struct {
	StudentID string   `json:"studentId" validate:"required"`
	Subject   string   `json:"subject" validate:"required"`
	Term      string   `json:"term" validate:"required"`
	Marks     *float64 `json:"marks" validate:"required"`
}

// MarkService appends exam scores.
type MarkService struct {
	repo      markRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewMarkService constructs a MarkService.
func NewMarkService(repo markRepository, validate *validator.Validate, logger *zap.Logger) *MarkService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MarkService{repo: repo, validator: validate, logger: logger}
}

// Add appends one mark record.
func (s *MarkService) Add(ctx context.Context, req AddMarkRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "missing required fields")
	}

	return s.repo.Append(ctx, models.MarkRecord{
		StudentID: req.StudentID,
		Subject:   req.Subject,
		Term:      req.Term,
		Marks:     *req.Marks,
	})
}
