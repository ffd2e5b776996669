package repository

import (
	"context"

	"github.com/campusworks/srms-api/internal/models"
	"github.com/campusworks/srms-api/internal/store"
)

// PaymentRepository manages the append-only payments collection.
type PaymentRepository struct {
	store store.Store
}

// NewPaymentRepository constructs a PaymentRepository.
func NewPaymentRepository(s store.Store) *PaymentRepository {
	return &PaymentRepository{store: s}
}

// Append records one payment.
func (r *PaymentRepository) Append(ctx context.Context, record models.PaymentRecord) error {
	rec, err := encode(record)
	if err != nil {
		return storageErr(err)
	}
	if err := r.store.Append(store.CollectionPayments, rec); err != nil {
		return storageErr(err)
	}
	return nil
}

// ByStudent returns every payment for the student in file order.
func (r *PaymentRepository) ByStudent(ctx context.Context, studentID string) ([]models.PaymentRecord, error) {
	recs, err := r.store.FindMany(store.CollectionPayments, fieldEquals("studentId", studentID))
	if err != nil {
		return nil, storageErr(err)
	}
	records, err := decodeAll[models.PaymentRecord](recs)
	if err != nil {
		return nil, storageErr(err)
	}
	return records, nil
}

// All returns the full payment ledger.
func (r *PaymentRepository) All(ctx context.Context) ([]models.PaymentRecord, error) {
	recs, err := r.store.FindMany(store.CollectionPayments, nil)
	if err != nil {
		return nil, storageErr(err)
	}
	records, err := decodeAll[models.PaymentRecord](recs)
	if err != nil {
		return nil, storageErr(err)
	}
	return records, nil
}

// Count returns how many payments exist. Payment IDs derive from it.
func (r *PaymentRepository) Count(ctx context.Context) (int, error) {
	recs, err := r.store.ReadAll(store.CollectionPayments)
	if err != nil {
		return 0, storageErr(err)
	}
	return len(recs), nil
}
