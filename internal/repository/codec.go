// Package repository provides typed access to the record collections on top
// of the generic store primitives.
package repository

import (
	"encoding/json"

	"github.com/campusworks/srms-api/internal/store"
	appErrors "github.com/campusworks/srms-api/pkg/errors"
)

// encode converts a typed model into a schema-loose store record.
func encode(v any) (store.Record, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var rec store.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// decode converts a store record back into a typed model. Unknown fields in
// the record are dropped from the typed view but survive on disk because
// updates go through the store's patch merge.
func decode[T any](rec store.Record) (T, error) {
	var out T
	raw, err := json.Marshal(rec)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, err
	}
	return out, nil
}

func decodeAll[T any](recs []store.Record) ([]T, error) {
	out := make([]T, 0, len(recs))
	for _, rec := range recs {
		v, err := decode[T](rec)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// fieldEquals matches records whose string field equals want.
func fieldEquals(key, want string) store.Predicate {
	return func(rec store.Record) bool {
		v, _ := rec[key].(string)
		return v == want
	}
}

// storageErr normalises an underlying store failure into the typed error
// callers can distinguish from lookups and validation.
func storageErr(err error) error {
	return appErrors.Wrap(err, appErrors.ErrStorage.Code, appErrors.ErrStorage.Status, appErrors.ErrStorage.Message)
}
