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

func newAttendanceFixture(t *testing.T) (*AttendanceService, *repository.AttendanceRepository) {
	t.Helper()
	mem := store.NewMemoryStore()
	repo := repository.NewAttendanceRepository(mem)
	return NewAttendanceService(repo, nil, nil), repo
}

func TestMarkAttendance(t *testing.T) {
	svc, repo := newAttendanceFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Mark(ctx, MarkAttendanceRequest{
		Date: "2026-01-05", StudentID: "S1", Status: models.AttendanceStatusPresent,
	}))

	records, err := repo.ByStudent(ctx, "S1")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2026-01-05", records[0].Date)
}

func TestMarkAttendanceRejectsUnknownStatus(t *testing.T) {
	svc, _ := newAttendanceFixture(t)

	err := svc.Mark(context.Background(), MarkAttendanceRequest{
		Date: "2026-01-05", StudentID: "S1", Status: "late",
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestMarkAttendanceAllowsDuplicateEntries(t *testing.T) {
	svc, repo := newAttendanceFixture(t)
	ctx := context.Background()

	req := MarkAttendanceRequest{Date: "2026-01-05", StudentID: "S1", Status: models.AttendanceStatusPresent}
	require.NoError(t, svc.Mark(ctx, req))
	require.NoError(t, svc.Mark(ctx, req))

	records, err := repo.ByStudent(ctx, "S1")
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestBulkMarkSkipsInvalidRows(t *testing.T) {
	svc, repo := newAttendanceFixture(t)
	ctx := context.Background()

	recorded, err := svc.BulkMark(ctx, "2026-01-05", []BulkAttendanceEntry{
		{StudentID: "S1", Status: models.AttendanceStatusPresent},
		{StudentID: "", Status: models.AttendanceStatusPresent},
		{StudentID: "S2", Status: "late"},
		{StudentID: "S3", Status: models.AttendanceStatusAbsent},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, recorded)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestBulkMarkRequiresDateAndEntries(t *testing.T) {
	svc, _ := newAttendanceFixture(t)
	ctx := context.Background()

	_, err := svc.BulkMark(ctx, "", []BulkAttendanceEntry{{StudentID: "S1", Status: models.AttendanceStatusPresent}})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	_, err = svc.BulkMark(ctx, "2026-01-05", nil)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestAttendanceForStudent(t *testing.T) {
	svc, _ := newAttendanceFixture(t)
	ctx := context.Background()

	entries := []BulkAttendanceEntry{
		{StudentID: "S1", Status: models.AttendanceStatusPresent},
		{StudentID: "S1", Status: models.AttendanceStatusAbsent},
		{StudentID: "S2", Status: models.AttendanceStatusPresent},
	}
	_, err := svc.BulkMark(ctx, "2026-01-05", entries)
	require.NoError(t, err)

	summary, err := svc.ForStudent(ctx, "S1")
	require.NoError(t, err)
	assert.Len(t, summary.Records, 2)
	assert.Equal(t, 50, summary.Stats.Percentage)

	empty, err := svc.ForStudent(ctx, "S9")
	require.NoError(t, err)
	assert.Empty(t, empty.Records)
	assert.Equal(t, 0, empty.Stats.Percentage)
}
