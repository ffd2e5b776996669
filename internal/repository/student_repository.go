package repository

import (
	"context"

	"github.com/campusworks/srms-api/internal/models"
	"github.com/campusworks/srms-api/internal/store"
)

// StudentRepository manages the students collection.
type StudentRepository struct {
	store store.Store
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(s store.Store) *StudentRepository {
	return &StudentRepository{store: s}
}

// FindByID returns the student with the given ID, or nil when absent.
func (r *StudentRepository) FindByID(ctx context.Context, studentID string) (*models.Student, error) {
	return r.findOne(fieldEquals("studentId", studentID))
}

// FindByParentPhone returns the first student (file order) registered under
// the phone. Shared phones resolve to the earliest record.
func (r *StudentRepository) FindByParentPhone(ctx context.Context, phone string) (*models.Student, error) {
	return r.findOne(fieldEquals("parentPhone", phone))
}

func (r *StudentRepository) findOne(pred store.Predicate) (*models.Student, error) {
	rec, err := r.store.Find(store.CollectionStudents, pred)
	if err != nil {
		return nil, storageErr(err)
	}
	if rec == nil {
		return nil, nil
	}
	student, err := decode[models.Student](rec)
	if err != nil {
		return nil, storageErr(err)
	}
	return &student, nil
}

// All returns every student in file order.
func (r *StudentRepository) All(ctx context.Context) ([]models.Student, error) {
	recs, err := r.store.FindMany(store.CollectionStudents, nil)
	if err != nil {
		return nil, storageErr(err)
	}
	students, err := decodeAll[models.Student](recs)
	if err != nil {
		return nil, storageErr(err)
	}
	return students, nil
}

// Create appends a new student record.
func (r *StudentRepository) Create(ctx context.Context, student models.Student) error {
	rec, err := encode(student)
	if err != nil {
		return storageErr(err)
	}
	if err := r.store.Append(store.CollectionStudents, rec); err != nil {
		return storageErr(err)
	}
	return nil
}

// Patch merges the given fields into the first record with the ID and
// reports whether the student exists.
func (r *StudentRepository) Patch(ctx context.Context, studentID string, patch store.Record) (bool, error) {
	found, err := r.store.Update(store.CollectionStudents, fieldEquals("studentId", studentID), patch)
	if err != nil {
		return false, storageErr(err)
	}
	return found, nil
}

// Delete removes every record carrying the ID and reports whether any
// existed.
func (r *StudentRepository) Delete(ctx context.Context, studentID string) (bool, error) {
	removed, err := r.store.Remove(store.CollectionStudents, fieldEquals("studentId", studentID))
	if err != nil {
		return false, storageErr(err)
	}
	return removed, nil
}
