package service

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/campusworks/srms-api/internal/models"
	appErrors "github.com/campusworks/srms-api/pkg/errors"
)

type studentReader interface {
	FindByID(ctx context.Context, studentID string) (*models.Student, error)
	FindByParentPhone(ctx context.Context, phone string) (*models.Student, error)
	All(ctx context.Context) ([]models.Student, error)
}

type attendanceReader interface {
	ByStudent(ctx context.Context, studentID string) ([]models.AttendanceRecord, error)
	All(ctx context.Context) ([]models.AttendanceRecord, error)
}

type markReader interface {
	ByStudent(ctx context.Context, studentID string) ([]models.MarkRecord, error)
	All(ctx context.Context) ([]models.MarkRecord, error)
}

type paymentReader interface {
	ByStudent(ctx context.Context, studentID string) ([]models.PaymentRecord, error)
	All(ctx context.Context) ([]models.PaymentRecord, error)
}

// AttendanceStats summarises attendance records. The percentage uses
// half-up integer rounding and is 0 for an empty set.
func AttendanceStats(records []models.AttendanceRecord) models.AttendanceStats {
	stats := models.AttendanceStats{Total: len(records)}
	for _, rec := range records {
		if rec.Status == models.AttendanceStatusPresent {
			stats.Present++
		}
	}
	stats.Absent = stats.Total - stats.Present
	if stats.Total > 0 {
		stats.Percentage = int(math.Round(float64(stats.Present) / float64(stats.Total) * 100))
	}
	return stats
}

// AverageMarks is the rounded arithmetic mean of the scores, 0 when empty.
func AverageMarks(records []models.MarkRecord) int {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for _, rec := range records {
		sum += rec.Marks
	}
	return int(math.Round(sum / float64(len(records))))
}

// FeeBalance is feeTotal minus feePaid. Overpayment yields a negative
// balance; it is never clamped.
func FeeBalance(student models.Student) float64 {
	return student.FeeTotal - student.FeePaid
}

// AggregationService computes read-only views joining a student's records
// across the attendance, marks and payment collections.
type AggregationService struct {
	students   studentReader
	attendance attendanceReader
	marks      markReader
	payments   paymentReader
	logger     *zap.Logger
}

// NewAggregationService constructs an AggregationService.
func NewAggregationService(students studentReader, attendance attendanceReader, marks markReader, payments paymentReader, logger *zap.Logger) *AggregationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AggregationService{
		students:   students,
		attendance: attendance,
		marks:      marks,
		payments:   payments,
		logger:     logger,
	}
}

// StudentView builds the joined profile for one student ID.
func (s *AggregationService) StudentView(ctx context.Context, studentID string) (*models.ProfileView, error) {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return s.profile(ctx, *student)
}

// ParentView is the same join keyed by parent phone. When several students
// share a phone the first in file order wins.
func (s *AggregationService) ParentView(ctx context.Context, parentPhone string) (*models.ProfileView, error) {
	student, err := s.students.FindByParentPhone(ctx, parentPhone)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no student found for this parent")
	}
	return s.profile(ctx, *student)
}

func (s *AggregationService) profile(ctx context.Context, student models.Student) (*models.ProfileView, error) {
	attendance, err := s.attendance.ByStudent(ctx, student.StudentID)
	if err != nil {
		return nil, err
	}
	marks, err := s.marks.ByStudent(ctx, student.StudentID)
	if err != nil {
		return nil, err
	}
	payments, err := s.payments.ByStudent(ctx, student.StudentID)
	if err != nil {
		return nil, err
	}

	return &models.ProfileView{
		Student: student.Sanitized(),
		Attendance: models.AttendanceSummary{
			Records: attendance,
			Stats:   AttendanceStats(attendance),
		},
		Marks:      marks,
		Payments:   payments,
		FeeBalance: FeeBalance(student),
	}, nil
}

// AdminStudentsView attaches attendance percentage, average marks and fee
// balance to every student for the admin roster.
func (s *AggregationService) AdminStudentsView(ctx context.Context) ([]models.StudentSummary, error) {
	students, err := s.students.All(ctx)
	if err != nil {
		return nil, err
	}
	attendance, err := s.attendance.All(ctx)
	if err != nil {
		return nil, err
	}
	marks, err := s.marks.All(ctx)
	if err != nil {
		return nil, err
	}

	attendanceByStudent := make(map[string][]models.AttendanceRecord)
	for _, rec := range attendance {
		attendanceByStudent[rec.StudentID] = append(attendanceByStudent[rec.StudentID], rec)
	}
	marksByStudent := make(map[string][]models.MarkRecord)
	for _, rec := range marks {
		marksByStudent[rec.StudentID] = append(marksByStudent[rec.StudentID], rec)
	}

	summaries := make([]models.StudentSummary, 0, len(students))
	for _, student := range students {
		summaries = append(summaries, models.StudentSummary{
			Student:              student.Sanitized(),
			AttendancePercentage: AttendanceStats(attendanceByStudent[student.StudentID]).Percentage,
			AvgMarks:             AverageMarks(marksByStudent[student.StudentID]),
			FeeBalance:           FeeBalance(student),
		})
	}
	return summaries, nil
}
