// Package store implements the record storage layer: named collections of
// flat JSON records persisted one object per line. The persisted files are
// the single source of truth; nothing is cached between calls.
package store

// Record is one schema-loose JSON object in a collection.
type Record map[string]any

// Predicate selects records. It must not mutate its argument.
type Predicate func(Record) bool

// Store exposes the six collection primitives. Update patches only the first
// matching record (file order); Remove drops every match. The asymmetric
// multiplicities are deliberate and relied upon by callers.
type Store interface {
	// ReadAll returns every persisted record in file order. A collection
	// that was never written reads as empty, not as an error.
	ReadAll(collection string) ([]Record, error)

	// WriteAll replaces the whole collection with the given records, in
	// the given order. The prior content is gone once this returns.
	WriteAll(collection string, records []Record) error

	// Append adds one record as the new final line without rewriting the
	// existing content.
	Append(collection string, record Record) error

	// Find returns the first record satisfying pred, or nil when nothing
	// matches. Absence is not an error.
	Find(collection string, pred Predicate) (Record, error)

	// FindMany returns all matching records in file order. A nil predicate
	// matches everything.
	FindMany(collection string, pred Predicate) ([]Record, error)

	// Update merges patch into the first record matching pred (patch keys
	// overwrite, all other fields are preserved) and rewrites the
	// collection. It reports whether a match was found.
	Update(collection string, pred Predicate, patch Record) (bool, error)

	// Remove deletes all records matching pred and rewrites the
	// collection. It reports whether the collection shrank; no match means
	// no write.
	Remove(collection string, pred Predicate) (bool, error)
}

// Collection names used by the application. Each maps to one backing file.
const (
	CollectionStudents   = "students"
	CollectionTeachers   = "teachers"
	CollectionAttendance = "attendance"
	CollectionMarks      = "marks"
	CollectionPayments   = "payments"
)

func clone(r Record) Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func merge(dst Record, patch Record) Record {
	out := clone(dst)
	for k, v := range patch {
		out[k] = v
	}
	return out
}
