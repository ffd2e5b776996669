package service

import (
	"context"
	"strconv"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusworks/srms-api/internal/models"
	"github.com/campusworks/srms-api/internal/store"
	appErrors "github.com/campusworks/srms-api/pkg/errors"
)

type studentRepository interface {
	FindByID(ctx context.Context, studentID string) (*models.Student, error)
	All(ctx context.Context) ([]models.Student, error)
	Create(ctx context.Context, student models.Student) error
	Patch(ctx context.Context, studentID string, patch store.Record) (bool, error)
	Delete(ctx context.Context, studentID string) (bool, error)
}

// CreateStudentRequest holds the payload for registering a student.
type CreateStudentRequest struct {
	StudentID   string  `json:"studentId" validate:"required"`
	Name        string  `json:"name" validate:"required"`
	DOB         string  `json:"dob"`
	Year        string  `json:"year"`
	Branch      string  `json:"branch"`
	Section     string  `json:"section"`
	Club        string  `json:"club"`
	Hostel      string  `json:"hostel"`
	Password    string  `json:"password" validate:"required"`
	ParentPhone string  `json:"parentPhone" validate:"required"`
	FeeTotal    float64 `json:"feeTotal"`
}

// StudentService handles admin-side student management.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs a StudentService.
func NewStudentService(repo studentRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, validator: validate, logger: logger}
}

// Create registers a new student. The raw password is hashed here; the
// storage layer only ever sees the opaque hash.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "missing required fields")
	}

	existing, err := s.repo.FindByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "student ID already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	student := models.Student{
		StudentID:   req.StudentID,
		Name:        req.Name,
		DOB:         req.DOB,
		Year:        req.Year,
		Branch:      req.Branch,
		Section:     req.Section,
		Club:        req.Club,
		Hostel:      req.Hostel,
		Password:    string(hash),
		ParentPhone: req.ParentPhone,
		FeeTotal:    req.FeeTotal,
		FeePaid:     0,
		FeeStatus:   models.FeeStatusPending,
	}

	if err := s.repo.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info("student created", zap.String("student_id", student.StudentID))
	sanitized := student.Sanitized()
	return &sanitized, nil
}

// Update merges the given fields into the student record. The primary key
// and the credential cannot be changed through this path; fee figures are
// coerced to numbers when they arrive as strings.
func (s *StudentService) Update(ctx context.Context, studentID string, patch map[string]any) error {
	delete(patch, "studentId")
	delete(patch, "password")
	coerceNumber(patch, "feeTotal")
	coerceNumber(patch, "feePaid")

	found, err := s.repo.Patch(ctx, studentID, store.Record(patch))
	if err != nil {
		return err
	}
	if !found {
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return nil
}

// Delete removes the student record.
func (s *StudentService) Delete(ctx context.Context, studentID string) error {
	removed, err := s.repo.Delete(ctx, studentID)
	if err != nil {
		return err
	}
	if !removed {
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	s.logger.Info("student deleted", zap.String("student_id", studentID))
	return nil
}

// List returns sanitized students matching the class filter.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, error) {
	students, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]models.Student, 0, len(students))
	for _, student := range students {
		if filter.Matches(student) {
			matched = append(matched, student.Sanitized())
		}
	}
	return matched, nil
}

// coerceNumber converts a string field to float64 in place. JSON numbers
// already arrive as float64; form-encoded bodies deliver strings.
func coerceNumber(patch map[string]any, key string) {
	raw, ok := patch[key]
	if !ok {
		return
	}
	if str, ok := raw.(string); ok {
		if n, err := strconv.ParseFloat(str, 64); err == nil {
			patch[key] = n
		}
	}
}
