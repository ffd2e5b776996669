package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/campusworks/srms-api/pkg/errors"
)

func newExportFixture(t *testing.T) *ExportService {
	t.Helper()
	svc, mem := newAggregationFixture(t)
	seedProfileData(t, mem)
	return NewExportService(svc, nil)
}

func TestExportStudentsSummaryCSV(t *testing.T) {
	svc := newExportFixture(t)

	data, contentType, err := svc.StudentsSummary(context.Background(), ExportFormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)

	body := string(data)
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "Student ID")
	assert.Contains(t, lines[0], "Fee Balance")
	assert.Contains(t, lines[1], "S1001")
	assert.Contains(t, lines[1], "Rahul Sharma")
	assert.Contains(t, lines[1], "30000")
	assert.NotContains(t, body, "hashed-secret")
}

func TestExportStudentsSummaryPDF(t *testing.T) {
	svc := newExportFixture(t)

	data, contentType, err := svc.StudentsSummary(context.Background(), ExportFormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", contentType)
	require.NotEmpty(t, data)
	assert.True(t, strings.HasPrefix(string(data), "%PDF"))
}

func TestExportStudentsSummaryBadFormat(t *testing.T) {
	svc := newExportFixture(t)

	_, _, err := svc.StudentsSummary(context.Background(), "xlsx")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}
