package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusworks/srms-api/internal/models"
	"github.com/campusworks/srms-api/internal/repository"
	"github.com/campusworks/srms-api/internal/store"
)

func TestSeedPopulatesAllCollections(t *testing.T) {
	mem := store.NewMemoryStore()
	seeder := NewSeeder(mem, nil)

	written, err := seeder.Seed(context.Background())
	require.NoError(t, err)
	assert.True(t, written)

	ctx := context.Background()
	students, err := repository.NewStudentRepository(mem).All(ctx)
	require.NoError(t, err)
	require.Len(t, students, 5)
	assert.Equal(t, "S1001", students[0].StudentID)
	assert.Equal(t, "Rahul Sharma", students[0].Name)
	assert.Equal(t, float64(50000), students[0].FeeTotal)
	assert.Equal(t, float64(20000), students[0].FeePaid)
	assert.Equal(t, models.FeeStatusPending, students[0].FeeStatus)
	assert.Equal(t, models.FeeStatusPaid, students[1].FeeStatus)
	for _, student := range students {
		assert.NotEmpty(t, student.Password)
		assert.NotEqual(t, "student123", student.Password)
	}

	teachers, err := repository.NewTeacherRepository(mem).All(ctx)
	require.NoError(t, err)
	require.Len(t, teachers, 3)
	assert.Equal(t, "T101", teachers[0].TeacherID)

	attendance, err := repository.NewAttendanceRepository(mem).All(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, attendance)

	marks, err := repository.NewMarkRepository(mem).ByStudent(ctx, "S1001")
	require.NoError(t, err)
	assert.NotEmpty(t, marks)

	payments, err := repository.NewPaymentRepository(mem).All(ctx)
	require.NoError(t, err)
	require.Len(t, payments, 6)
	assert.Equal(t, "P0001", payments[0].PaymentID)
}

func TestSeedIsIdempotent(t *testing.T) {
	mem := store.NewMemoryStore()
	seeder := NewSeeder(mem, nil)
	ctx := context.Background()

	written, err := seeder.Seed(ctx)
	require.NoError(t, err)
	require.True(t, written)

	before, err := mem.ReadAll(store.CollectionStudents)
	require.NoError(t, err)

	written, err = seeder.Seed(ctx)
	require.NoError(t, err)
	assert.False(t, written)

	after, err := mem.ReadAll(store.CollectionStudents)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestSeedSkipsWhenStudentsExist(t *testing.T) {
	mem := store.NewMemoryStore()
	require.NoError(t, mem.Append(store.CollectionStudents, store.Record{"studentId": "S9000"}))

	written, err := NewSeeder(mem, nil).Seed(context.Background())
	require.NoError(t, err)
	assert.False(t, written)

	students, err := mem.ReadAll(store.CollectionStudents)
	require.NoError(t, err)
	require.Len(t, students, 1)
	assert.Equal(t, "S9000", students[0]["studentId"])
}
