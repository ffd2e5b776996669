package store

import "time"

// Observer receives the duration of each store operation.
type Observer func(op, collection string, d time.Duration)

type instrumented struct {
	next    Store
	observe Observer
}

// Instrument wraps a Store so every operation reports its duration to the
// observer. A nil observer returns next unchanged.
func Instrument(next Store, observe Observer) Store {
	if observe == nil {
		return next
	}
	return &instrumented{next: next, observe: observe}
}

func (s *instrumented) ReadAll(collection string) ([]Record, error) {
	defer s.track("read_all", collection)()
	return s.next.ReadAll(collection)
}

func (s *instrumented) WriteAll(collection string, records []Record) error {
	defer s.track("write_all", collection)()
	return s.next.WriteAll(collection, records)
}

func (s *instrumented) Append(collection string, record Record) error {
	defer s.track("append", collection)()
	return s.next.Append(collection, record)
}

func (s *instrumented) Find(collection string, pred Predicate) (Record, error) {
	defer s.track("find", collection)()
	return s.next.Find(collection, pred)
}

func (s *instrumented) FindMany(collection string, pred Predicate) ([]Record, error) {
	defer s.track("find_many", collection)()
	return s.next.FindMany(collection, pred)
}

func (s *instrumented) Update(collection string, pred Predicate, patch Record) (bool, error) {
	defer s.track("update", collection)()
	return s.next.Update(collection, pred, patch)
}

func (s *instrumented) Remove(collection string, pred Predicate) (bool, error) {
	defer s.track("remove", collection)()
	return s.next.Remove(collection, pred)
}

func (s *instrumented) track(op, collection string) func() {
	start := time.Now()
	return func() {
		s.observe(op, collection, time.Since(start))
	}
}
