package repository

import (
	"context"

	"github.com/campusworks/srms-api/internal/models"
	"github.com/campusworks/srms-api/internal/store"
)

// AttendanceRepository manages the append-only attendance collection.
type AttendanceRepository struct {
	store store.Store
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(s store.Store) *AttendanceRepository {
	return &AttendanceRepository{store: s}
}

// Append records one attendance entry.
func (r *AttendanceRepository) Append(ctx context.Context, record models.AttendanceRecord) error {
	rec, err := encode(record)
	if err != nil {
		return storageErr(err)
	}
	if err := r.store.Append(store.CollectionAttendance, rec); err != nil {
		return storageErr(err)
	}
	return nil
}

// ByStudent returns every attendance entry for the student in file order.
func (r *AttendanceRepository) ByStudent(ctx context.Context, studentID string) ([]models.AttendanceRecord, error) {
	recs, err := r.store.FindMany(store.CollectionAttendance, fieldEquals("studentId", studentID))
	if err != nil {
		return nil, storageErr(err)
	}
	records, err := decodeAll[models.AttendanceRecord](recs)
	if err != nil {
		return nil, storageErr(err)
	}
	return records, nil
}

// All returns the full attendance log.
func (r *AttendanceRepository) All(ctx context.Context) ([]models.AttendanceRecord, error) {
	recs, err := r.store.FindMany(store.CollectionAttendance, nil)
	if err != nil {
		return nil, storageErr(err)
	}
	records, err := decodeAll[models.AttendanceRecord](recs)
	if err != nil {
		return nil, storageErr(err)
	}
	return records, nil
}
