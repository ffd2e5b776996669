package repository

import (
	"context"

	"github.com/campusworks/srms-api/internal/models"
	"github.com/campusworks/srms-api/internal/store"
)

// TeacherRepository manages the teachers collection.
type TeacherRepository struct {
	store store.Store
}

// NewTeacherRepository constructs a TeacherRepository.
func NewTeacherRepository(s store.Store) *TeacherRepository {
	return &TeacherRepository{store: s}
}

// FindByID returns the teacher with the given ID, or nil when absent.
func (r *TeacherRepository) FindByID(ctx context.Context, teacherID string) (*models.Teacher, error) {
	rec, err := r.store.Find(store.CollectionTeachers, fieldEquals("teacherId", teacherID))
	if err != nil {
		return nil, storageErr(err)
	}
	if rec == nil {
		return nil, nil
	}
	teacher, err := decode[models.Teacher](rec)
	if err != nil {
		return nil, storageErr(err)
	}
	return &teacher, nil
}

// All returns every teacher in file order.
func (r *TeacherRepository) All(ctx context.Context) ([]models.Teacher, error) {
	recs, err := r.store.FindMany(store.CollectionTeachers, nil)
	if err != nil {
		return nil, storageErr(err)
	}
	teachers, err := decodeAll[models.Teacher](recs)
	if err != nil {
		return nil, storageErr(err)
	}
	return teachers, nil
}

// Create appends a new teacher record.
func (r *TeacherRepository) Create(ctx context.Context, teacher models.Teacher) error {
	rec, err := encode(teacher)
	if err != nil {
		return storageErr(err)
	}
	if err := r.store.Append(store.CollectionTeachers, rec); err != nil {
		return storageErr(err)
	}
	return nil
}

// Patch merges fields into the first record with the ID.
func (r *TeacherRepository) Patch(ctx context.Context, teacherID string, patch store.Record) (bool, error) {
	found, err := r.store.Update(store.CollectionTeachers, fieldEquals("teacherId", teacherID), patch)
	if err != nil {
		return false, storageErr(err)
	}
	return found, nil
}

// Delete removes every record carrying the ID.
func (r *TeacherRepository) Delete(ctx context.Context, teacherID string) (bool, error) {
	removed, err := r.store.Remove(store.CollectionTeachers, fieldEquals("teacherId", teacherID))
	if err != nil {
		return false, storageErr(err)
	}
	return removed, nil
}
