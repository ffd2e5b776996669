package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusworks/srms-api/internal/models"
	"github.com/campusworks/srms-api/internal/store"
	appErrors "github.com/campusworks/srms-api/pkg/errors"
)

type teacherRepository interface {
	FindByID(ctx context.Context, teacherID string) (*models.Teacher, error)
	All(ctx context.Context) ([]models.Teacher, error)
	Create(ctx context.Context, teacher models.Teacher) error
	Patch(ctx context.Context, teacherID string, patch store.Record) (bool, error)
	Delete(ctx context.Context, teacherID string) (bool, error)
}

// CreateTeacherRequest holds the payload for registering a teacher.
type CreateTeacherRequest struct {
	TeacherID string `json:"teacherId" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Subject   string `json:"subject"`
	Password  string `json:"password" validate:"required"`
}

// TeacherService handles admin-side teacher management.
type TeacherService struct {
	repo      teacherRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherService constructs a TeacherService.
func NewTeacherService(repo teacherRepository, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{repo: repo, validator: validate, logger: logger}
}

// Create registers a new teacher with a hashed credential.
func (s *TeacherService) Create(ctx context.Context, req CreateTeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "missing required fields")
	}

	existing, err := s.repo.FindByID(ctx, req.TeacherID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "teacher ID already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	teacher := models.Teacher{
		TeacherID: req.TeacherID,
		Name:      req.Name,
		Subject:   req.Subject,
		Password:  string(hash),
	}

	if err := s.repo.Create(ctx, teacher); err != nil {
		return nil, err
	}

	s.logger.Info("teacher created", zap.String("teacher_id", teacher.TeacherID))
	sanitized := teacher.Sanitized()
	return &sanitized, nil
}

// Update merges fields into the teacher record; the primary key and the
// credential stay protected.
func (s *TeacherService) Update(ctx context.Context, teacherID string, patch map[string]any) error {
	delete(patch, "teacherId")
	delete(patch, "password")

	found, err := s.repo.Patch(ctx, teacherID, store.Record(patch))
	if err != nil {
		return err
	}
	if !found {
		return appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}
	return nil
}

// Delete removes the teacher record.
func (s *TeacherService) Delete(ctx context.Context, teacherID string) error {
	removed, err := s.repo.Delete(ctx, teacherID)
	if err != nil {
		return err
	}
	if !removed {
		return appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}
	s.logger.Info("teacher deleted", zap.String("teacher_id", teacherID))
	return nil
}

// List returns every teacher without credentials.
func (s *TeacherService) List(ctx context.Context) ([]models.Teacher, error) {
	teachers, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	sanitized := make([]models.Teacher, 0, len(teachers))
	for _, teacher := range teachers {
		sanitized = append(sanitized, teacher.Sanitized())
	}
	return sanitized, nil
}
