package service

import (
	"context"
	"crypto/subtle"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusworks/srms-api/internal/models"
	"github.com/campusworks/srms-api/internal/store"
	appErrors "github.com/campusworks/srms-api/pkg/errors"
)

// Role names accepted at login.
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
	RoleParent  = "parent"
)

type authStudentRepository interface {
	FindByID(ctx context.Context, studentID string) (*models.Student, error)
	FindByParentPhone(ctx context.Context, phone string) (*models.Student, error)
	Patch(ctx context.Context, studentID string, patch store.Record) (bool, error)
}

type authTeacherRepository interface {
	FindByID(ctx context.Context, teacherID string) (*models.Teacher, error)
	Patch(ctx context.Context, teacherID string, patch store.Record) (bool, error)
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	Secret        string
	Expiration    time.Duration
	Issuer        string
	AdminID       string
	AdminPassword string
	AdminName     string
}

// Claims is the JWT payload for an authenticated session.
type Claims struct {
	Role string `json:"role"`
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// LoginRequest is the payload for logging in under any role. Parents use
// their registered phone number as the ID.
type LoginRequest struct {
	Role     string `json:"role" validate:"required"`
	ID       string `json:"id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest rotates a student's or teacher's credential.
type ChangePasswordRequest struct {
	Role        string `json:"role" validate:"required"`
	ID          string `json:"id" validate:"required"`
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

// Session is returned on successful login.
type Session struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	User  any    `json:"user"`
}

// AuthService verifies credentials and issues tokens. Hashing and
// verification happen only here; records carry the hash as an opaque string.
type AuthService struct {
	students  authStudentRepository
	teachers  authTeacherRepository
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService constructs an AuthService.
func NewAuthService(students authStudentRepository, teachers authTeacherRepository, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{students: students, teachers: teachers, validator: validate, logger: logger, config: config}
}

// Login authenticates any of the four roles and returns a session token.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "missing required fields")
	}

	switch req.Role {
	case RoleAdmin:
		return s.loginAdmin(req)
	case RoleTeacher:
		return s.loginTeacher(ctx, req)
	case RoleStudent, RoleParent:
		return s.loginStudentOrParent(ctx, req)
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid role")
	}
}

func (s *AuthService) loginAdmin(req LoginRequest) (*Session, error) {
	idOK := subtle.ConstantTimeCompare([]byte(req.ID), []byte(s.config.AdminID)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(req.Password), []byte(s.config.AdminPassword)) == 1
	if !idOK || !passOK {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid credentials")
	}
	return s.session(RoleAdmin, s.config.AdminID, s.config.AdminName, map[string]string{
		"id":   s.config.AdminID,
		"name": s.config.AdminName,
	})
}

func (s *AuthService) loginTeacher(ctx context.Context, req LoginRequest) (*Session, error) {
	teacher, err := s.teachers.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if teacher == nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "user not found")
	}
	if bcrypt.CompareHashAndPassword([]byte(teacher.Password), []byte(req.Password)) != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid password")
	}
	return s.session(RoleTeacher, teacher.TeacherID, teacher.Name, teacher.Sanitized())
}

func (s *AuthService) loginStudentOrParent(ctx context.Context, req LoginRequest) (*Session, error) {
	var student *models.Student
	var err error
	if req.Role == RoleParent {
		student, err = s.students.FindByParentPhone(ctx, req.ID)
	} else {
		student, err = s.students.FindByID(ctx, req.ID)
	}
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "user not found")
	}
	if bcrypt.CompareHashAndPassword([]byte(student.Password), []byte(req.Password)) != nil {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid password")
	}
	return s.session(req.Role, req.ID, student.Name, student.Sanitized())
}

func (s *AuthService) session(role, id, name string, user any) (*Session, error) {
	now := time.Now().UTC()
	claims := Claims{
		Role: role,
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id,
			Issuer:    s.config.Issuer,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.Expiration)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.Secret))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign token")
	}
	s.logger.Info("login", zap.String("role", role), zap.String("subject", id))
	return &Session{Token: token, Role: role, User: user}, nil
}

// ValidateToken parses and verifies a session token.
func (s *AuthService) ValidateToken(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid or expired token")
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}

// ChangePassword rotates the credential for a student or teacher after
// verifying the current one.
func (s *AuthService) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "missing required fields")
	}

	var currentHash string
	switch req.Role {
	case RoleStudent:
		student, err := s.students.FindByID(ctx, req.ID)
		if err != nil {
			return err
		}
		if student == nil {
			return appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		currentHash = student.Password
	case RoleTeacher:
		teacher, err := s.teachers.FindByID(ctx, req.ID)
		if err != nil {
			return err
		}
		if teacher == nil {
			return appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		currentHash = teacher.Password
	default:
		return appErrors.Clone(appErrors.ErrValidation, "invalid role")
	}

	if bcrypt.CompareHashAndPassword([]byte(currentHash), []byte(req.OldPassword)) != nil {
		return appErrors.Clone(appErrors.ErrInvalidCredentials, "current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	patch := store.Record{"password": string(hash)}
	if req.Role == RoleStudent {
		_, err = s.students.Patch(ctx, req.ID, patch)
	} else {
		_, err = s.teachers.Patch(ctx, req.ID, patch)
	}
	if err != nil {
		return err
	}

	s.logger.Info("password changed", zap.String("role", req.Role), zap.String("subject", req.ID))
	return nil
}
