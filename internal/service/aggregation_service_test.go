package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusworks/srms-api/internal/models"
	"github.com/campusworks/srms-api/internal/repository"
	"github.com/campusworks/srms-api/internal/store"
	appErrors "github.com/campusworks/srms-api/pkg/errors"
)

func TestAttendanceStats(t *testing.T) {
	records := make([]models.AttendanceRecord, 0, 10)
	for i := 0; i < 7; i++ {
		records = append(records, models.AttendanceRecord{StudentID: "S1", Status: models.AttendanceStatusPresent})
	}
	for i := 0; i < 3; i++ {
		records = append(records, models.AttendanceRecord{StudentID: "S1", Status: models.AttendanceStatusAbsent})
	}

	stats := AttendanceStats(records)
	assert.Equal(t, 10, stats.Total)
	assert.Equal(t, 7, stats.Present)
	assert.Equal(t, 3, stats.Absent)
	assert.Equal(t, 70, stats.Percentage)
}

func TestAttendanceStatsEmpty(t *testing.T) {
	stats := AttendanceStats(nil)
	assert.Equal(t, models.AttendanceStats{}, stats)
}

func TestAttendanceStatsRoundsHalfUp(t *testing.T) {
	records := []models.AttendanceRecord{
		{Status: models.AttendanceStatusPresent},
		{Status: models.AttendanceStatusPresent},
		{Status: models.AttendanceStatusAbsent},
	}
	// 2/3 = 66.67, rounds to 67.
	assert.Equal(t, 67, AttendanceStats(records).Percentage)

	records = []models.AttendanceRecord{
		{Status: models.AttendanceStatusPresent},
		{Status: models.AttendanceStatusAbsent},
	}
	// 1/2 = 50 exactly.
	assert.Equal(t, 50, AttendanceStats(records).Percentage)
}

func TestAverageMarks(t *testing.T) {
	records := []models.MarkRecord{
		{Marks: 80},
		{Marks: 75},
	}
	// 77.5 rounds up to 78.
	assert.Equal(t, 78, AverageMarks(records))
	assert.Equal(t, 0, AverageMarks(nil))
}

func TestFeeBalanceNeverClamped(t *testing.T) {
	assert.Equal(t, float64(30000), FeeBalance(models.Student{FeeTotal: 50000, FeePaid: 20000}))
	assert.Equal(t, float64(-5000), FeeBalance(models.Student{FeeTotal: 0, FeePaid: 5000}))
}

func newAggregationFixture(t *testing.T) (*AggregationService, *store.MemoryStore) {
	t.Helper()
	mem := store.NewMemoryStore()
	svc := NewAggregationService(
		repository.NewStudentRepository(mem),
		repository.NewAttendanceRepository(mem),
		repository.NewMarkRepository(mem),
		repository.NewPaymentRepository(mem),
		nil,
	)
	return svc, mem
}

func seedProfileData(t *testing.T, mem *store.MemoryStore) {
	t.Helper()
	ctx := context.Background()
	students := repository.NewStudentRepository(mem)
	attendance := repository.NewAttendanceRepository(mem)
	marks := repository.NewMarkRepository(mem)
	payments := repository.NewPaymentRepository(mem)

	require.NoError(t, students.Create(ctx, models.Student{
		StudentID:   "S1001",
		Name:        "Rahul Sharma",
		Password:    "hashed-secret",
		ParentPhone: "9876543210",
		FeeTotal:    50000,
		FeePaid:     20000,
		FeeStatus:   models.FeeStatusPending,
	}))
	require.NoError(t, attendance.Append(ctx, models.AttendanceRecord{Date: "2026-01-05", StudentID: "S1001", Status: models.AttendanceStatusPresent}))
	require.NoError(t, attendance.Append(ctx, models.AttendanceRecord{Date: "2026-01-06", StudentID: "S1001", Status: models.AttendanceStatusAbsent}))
	require.NoError(t, attendance.Append(ctx, models.AttendanceRecord{Date: "2026-01-05", StudentID: "S9", Status: models.AttendanceStatusPresent}))
	require.NoError(t, marks.Append(ctx, models.MarkRecord{StudentID: "S1001", Subject: "Maths", Term: "Mid1", Marks: 80}))
	require.NoError(t, marks.Append(ctx, models.MarkRecord{StudentID: "S1001", Subject: "Physics", Term: "Mid1", Marks: 75}))
	require.NoError(t, payments.Append(ctx, models.PaymentRecord{PaymentID: "P0001", StudentID: "S1001", Amount: 20000, Date: "2026-01-10"}))
}

func TestStudentViewJoinsCollections(t *testing.T) {
	svc, mem := newAggregationFixture(t)
	seedProfileData(t, mem)

	view, err := svc.StudentView(context.Background(), "S1001")
	require.NoError(t, err)

	assert.Equal(t, "Rahul Sharma", view.Student.Name)
	assert.Empty(t, view.Student.Password)
	assert.Len(t, view.Attendance.Records, 2)
	assert.Equal(t, 50, view.Attendance.Stats.Percentage)
	assert.Len(t, view.Marks, 2)
	assert.Len(t, view.Payments, 1)
	assert.Equal(t, float64(30000), view.FeeBalance)
}

func TestStudentViewUnknownID(t *testing.T) {
	svc, _ := newAggregationFixture(t)

	_, err := svc.StudentView(context.Background(), "S9999")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestParentViewFirstStudentWinsOnSharedPhone(t *testing.T) {
	svc, mem := newAggregationFixture(t)
	ctx := context.Background()
	students := repository.NewStudentRepository(mem)

	require.NoError(t, students.Create(ctx, models.Student{StudentID: "S1", Name: "Elder", ParentPhone: "9000000000"}))
	require.NoError(t, students.Create(ctx, models.Student{StudentID: "S2", Name: "Younger", ParentPhone: "9000000000"}))

	view, err := svc.ParentView(ctx, "9000000000")
	require.NoError(t, err)
	assert.Equal(t, "S1", view.Student.StudentID)
}

func TestParentViewUnknownPhone(t *testing.T) {
	svc, _ := newAggregationFixture(t)

	_, err := svc.ParentView(context.Background(), "0000000000")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestAdminStudentsView(t *testing.T) {
	svc, mem := newAggregationFixture(t)
	seedProfileData(t, mem)
	ctx := context.Background()

	students := repository.NewStudentRepository(mem)
	require.NoError(t, students.Create(ctx, models.Student{
		StudentID: "S1002",
		Name:      "Priya Patel",
		Password:  "hashed-secret",
		FeeTotal:  50000,
		FeePaid:   50000,
		FeeStatus: models.FeeStatusPaid,
	}))

	summaries, err := svc.AdminStudentsView(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	first := summaries[0]
	assert.Equal(t, "S1001", first.StudentID)
	assert.Equal(t, 50, first.AttendancePercentage)
	assert.Equal(t, 78, first.AvgMarks)
	assert.Equal(t, float64(30000), first.FeeBalance)
	assert.Empty(t, first.Password)

	second := summaries[1]
	assert.Equal(t, "S1002", second.StudentID)
	assert.Equal(t, 0, second.AttendancePercentage)
	assert.Equal(t, 0, second.AvgMarks)
	assert.Equal(t, float64(0), second.FeeBalance)
}
