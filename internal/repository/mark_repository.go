package repository

import (
	"context"

	"github.com/campusworks/srms-api/internal/models"
	"github.com/campusworks/srms-api/internal/store"
)

// MarkRepository manages the append-only marks collection.
type MarkRepository struct {
	store store.Store
}

// NewMarkRepository constructs a MarkRepository.
func NewMarkRepository(s store.Store) *MarkRepository {
	return &MarkRepository{store: s}
}

// Append records one mark entry.
func (r *MarkRepository) Append(ctx context.Context, record models.MarkRecord) error {
	rec, err := encode(record)
	if err != nil {
		return storageErr(err)
	}
	if err := r.store.Append(store.CollectionMarks, rec); err != nil {
		return storageErr(err)
	}
	return nil
}

// ByStudent returns every mark for the student in file order.
func (r *MarkRepository) ByStudent(ctx context.Context, studentID string) ([]models.MarkRecord, error) {
	recs, err := r.store.FindMany(store.CollectionMarks, fieldEquals("studentId", studentID))
	if err != nil {
		return nil, storageErr(err)
	}
	records, err := decodeAll[models.MarkRecord](recs)
	if err != nil {
		return nil, storageErr(err)
	}
	return records, nil
}

// All returns every mark record.
func (r *MarkRepository) All(ctx context.Context) ([]models.MarkRecord, error) {
	recs, err := r.store.FindMany(store.CollectionMarks, nil)
	if err != nil {
		return nil, storageErr(err)
	}
	records, err := decodeAll[models.MarkRecord](recs)
	if err != nil {
		return nil, storageErr(err)
	}
	return records, nil
}
