package store

import "sync"

// MemoryStore is an in-memory Store with the same contract as FileStore.
// It backs tests so they never touch the filesystem.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string][]Record
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string][]Record)}
}

func (s *MemoryStore) ReadAll(collection string) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneAll(s.collections[collection]), nil
}

func (s *MemoryStore) WriteAll(collection string, records []Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[collection] = cloneAll(records)
	return nil
}

func (s *MemoryStore) Append(collection string, record Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collections[collection] = append(s.collections[collection], clone(record))
	return nil
}

func (s *MemoryStore) Find(collection string, pred Predicate) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range s.collections[collection] {
		if pred(rec) {
			return clone(rec), nil
		}
	}
	return nil, nil
}

func (s *MemoryStore) FindMany(collection string, pred Predicate) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	matched := make([]Record, 0)
	for _, rec := range s.collections[collection] {
		if pred == nil || pred(rec) {
			matched = append(matched, clone(rec))
		}
	}
	return matched, nil
}

func (s *MemoryStore) Update(collection string, pred Predicate, patch Record) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := s.collections[collection]
	for i, rec := range records {
		if pred(rec) {
			records[i] = merge(rec, patch)
			return true, nil
		}
	}
	return false, nil
}

func (s *MemoryStore) Remove(collection string, pred Predicate) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := s.collections[collection]
	kept := make([]Record, 0, len(records))
	for _, rec := range records {
		if !pred(rec) {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(records) {
		return false, nil
	}
	s.collections[collection] = kept
	return true, nil
}

func cloneAll(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		out = append(out, clone(rec))
	}
	return out
}
