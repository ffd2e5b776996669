package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/campusworks/srms-api/internal/models"
	"github.com/campusworks/srms-api/internal/store"
	appErrors "github.com/campusworks/srms-api/pkg/errors"
)

type studentLedger interface {
	FindByID(ctx context.Context, studentID string) (*models.Student, error)
	Patch(ctx context.Context, studentID string, patch store.Record) (bool, error)
}

type paymentLedger interface {
	Count(ctx context.Context) (int, error)
	Append(ctx context.Context, record models.PaymentRecord) error
	All(ctx context.Context) ([]models.PaymentRecord, error)
}

// RecordPaymentRequest is the payload for recording a fee payment.
type RecordPaymentRequest struct {
	StudentID   string  `json:"studentId" validate:"required"`
	Amount      float64 `json:"amount" validate:"required"`
	Mode        string  `json:"mode"`
	Note        string  `json:"note"`
	ParentPhone string  `json:"parentPhone"`
}

// PaymentService implements the one operation with a cross-collection write:
// append a payment, then fold the amount into the student's fee state.
//
// Payment IDs keep the legacy "P%04d" format derived from the current ledger
// length. The in-process race between count and append is closed by mu, but
// two processes over the same data directory can still collide; the append
// and the student update are also not atomic with each other, so a crash in
// between leaves the payment recorded and the balance un-applied.
type PaymentService struct {
	students  studentLedger
	payments  paymentLedger
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time

	mu sync.Mutex
}

// NewPaymentService constructs a PaymentService.
func NewPaymentService(students studentLedger, payments paymentLedger, validate *validator.Validate, logger *zap.Logger) *PaymentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentService{
		students:  students,
		payments:  payments,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// Record validates and persists a payment, then updates the student's
// cumulative fee state. Validation happens before any write.
func (s *PaymentService) Record(ctx context.Context, req RecordPaymentRequest) (*models.PaymentReceipt, error) {
	if req.Amount <= 0 {
		return nil, appErrors.Clone(appErrors.ErrInvalidAmount, "invalid payment amount")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "missing required fields")
	}

	student, err := s.students.FindByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	count, err := s.payments.Count(ctx)
	if err != nil {
		return nil, err
	}

	mode := req.Mode
	if mode == "" {
		mode = "online"
	}
	parentPhone := req.ParentPhone
	if parentPhone == "" {
		parentPhone = student.ParentPhone
	}

	payment := models.PaymentRecord{
		PaymentID:   fmt.Sprintf("P%04d", count+1),
		StudentID:   req.StudentID,
		ParentPhone: parentPhone,
		Amount:      req.Amount,
		Date:        s.now().Format("2006-01-02"),
		Mode:        mode,
		Note:        req.Note,
	}

	if err := s.payments.Append(ctx, payment); err != nil {
		return nil, err
	}

	newFeePaid := student.FeePaid + req.Amount
	newStatus := models.FeeStatusFor(newFeePaid, student.FeeTotal)
	found, err := s.students.Patch(ctx, req.StudentID, store.Record{
		"feePaid":   newFeePaid,
		"feeStatus": string(newStatus),
	})
	if err != nil {
		// The payment is already on the ledger; surface the failure
		// instead of hiding the inconsistency.
		s.logger.Error("payment recorded but student fee state not updated",
			zap.String("payment_id", payment.PaymentID),
			zap.String("student_id", req.StudentID),
			zap.Error(err))
		return nil, err
	}
	if !found {
		s.logger.Error("payment recorded but student record vanished",
			zap.String("payment_id", payment.PaymentID),
			zap.String("student_id", req.StudentID))
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	s.logger.Info("payment recorded",
		zap.String("payment_id", payment.PaymentID),
		zap.String("student_id", req.StudentID),
		zap.Float64("amount", req.Amount))

	return &models.PaymentReceipt{
		Payment:    payment,
		NewBalance: student.FeeTotal - newFeePaid,
	}, nil
}

// List returns the full payment ledger for the admin view.
func (s *PaymentService) List(ctx context.Context) ([]models.PaymentRecord, error) {
	return s.payments.All(ctx)
}
