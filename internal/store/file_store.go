package store

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// FileStore persists each collection as a line-delimited JSON file under a
// base directory. A per-collection mutex serializes access so the
// read-all/mutate/write-all cycle of Update and Remove cannot interleave
// with other writers in this process.
type FileStore struct {
	dir    string
	logger *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewFileStore ensures the base directory exists and returns a handle.
func NewFileStore(dir string, logger *zap.Logger) (*FileStore, error) {
	if dir == "" {
		dir = "./data"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStore{dir: dir, logger: logger, locks: make(map[string]*sync.Mutex)}, nil
}

// Dir exposes the base directory (useful for debugging).
func (s *FileStore) Dir() string {
	return s.dir
}

func (s *FileStore) path(collection string) string {
	return filepath.Join(s.dir, collection+".txt")
}

func (s *FileStore) lock(collection string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[collection]
	if !ok {
		l = &sync.Mutex{}
		s.locks[collection] = l
	}
	return l
}

// ReadAll returns every record in file order. Malformed lines are skipped
// and logged, never fatal.
func (s *FileStore) ReadAll(collection string) ([]Record, error) {
	l := s.lock(collection)
	l.Lock()
	defer l.Unlock()
	return s.readAll(collection)
}

func (s *FileStore) readAll(collection string) ([]Record, error) {
	f, err := os.Open(s.path(collection))
	if err != nil {
		if os.IsNotExist(err) {
			return []Record{}, nil
		}
		return nil, fmt.Errorf("open collection %s: %w", collection, err)
	}
	defer f.Close() //nolint:errcheck

	records := make([]Record, 0)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			s.logger.Warn("skipping malformed record line",
				zap.String("collection", collection),
				zap.Int("line", lineNo),
				zap.Error(err))
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read collection %s: %w", collection, err)
	}
	return records, nil
}

// WriteAll replaces the collection content, one JSON object per line with a
// trailing newline per record.
func (s *FileStore) WriteAll(collection string, records []Record) error {
	l := s.lock(collection)
	l.Lock()
	defer l.Unlock()
	return s.writeAll(collection, records)
}

func (s *FileStore) writeAll(collection string, records []Record) error {
	buf := &bytes.Buffer{}
	for _, rec := range records {
		line, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode record for %s: %w", collection, err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	if err := os.WriteFile(s.path(collection), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write collection %s: %w", collection, err)
	}
	return nil
}

// Append adds one record as a new final line. This is the hot path for
// attendance, marks and payments, so the existing content is never reread.
func (s *FileStore) Append(collection string, record Record) error {
	l := s.lock(collection)
	l.Lock()
	defer l.Unlock()

	line, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode record for %s: %w", collection, err)
	}
	f, err := os.OpenFile(s.path(collection), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open collection %s: %w", collection, err)
	}
	defer f.Close() //nolint:errcheck
	if _, err := f.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("append to collection %s: %w", collection, err)
	}
	return nil
}

// Find returns the first matching record or nil.
func (s *FileStore) Find(collection string, pred Predicate) (Record, error) {
	records, err := s.ReadAll(collection)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if pred(rec) {
			return rec, nil
		}
	}
	return nil, nil
}

// FindMany returns all matching records, or everything when pred is nil.
func (s *FileStore) FindMany(collection string, pred Predicate) ([]Record, error) {
	records, err := s.ReadAll(collection)
	if err != nil {
		return nil, err
	}
	if pred == nil {
		return records, nil
	}
	matched := make([]Record, 0)
	for _, rec := range records {
		if pred(rec) {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

// Update patches the first match only, even when several records satisfy
// pred. Later matches stay untouched.
func (s *FileStore) Update(collection string, pred Predicate, patch Record) (bool, error) {
	l := s.lock(collection)
	l.Lock()
	defer l.Unlock()

	records, err := s.readAll(collection)
	if err != nil {
		return false, err
	}
	found := false
	for i, rec := range records {
		if pred(rec) {
			records[i] = merge(rec, patch)
			found = true
			break
		}
	}
	if !found {
		return false, nil
	}
	if err := s.writeAll(collection, records); err != nil {
		return false, err
	}
	return true, nil
}

// Remove drops every matching record. Nothing is written when no record
// matches.
func (s *FileStore) Remove(collection string, pred Predicate) (bool, error) {
	l := s.lock(collection)
	l.Lock()
	defer l.Unlock()

	records, err := s.readAll(collection)
	if err != nil {
		return false, err
	}
	kept := make([]Record, 0, len(records))
	for _, rec := range records {
		if !pred(rec) {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(records) {
		return false, nil
	}
	if err := s.writeAll(collection, kept); err != nil {
		return false, err
	}
	return true, nil
}
