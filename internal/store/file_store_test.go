package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	s, err := NewFileStore(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestFileStoreReadAllMissingCollection(t *testing.T) {
	s := newTestFileStore(t)

	records, err := s.ReadAll("students")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFileStoreAppendThenReadAll(t *testing.T) {
	s := newTestFileStore(t)

	require.NoError(t, s.Append("students", Record{"studentId": "S1001", "name": "Rahul"}))
	require.NoError(t, s.Append("students", Record{"studentId": "S1002", "name": "Priya"}))

	records, err := s.ReadAll("students")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "S1001", records[0]["studentId"])
	assert.Equal(t, "S1002", records[1]["studentId"])
}

func TestFileStoreAppendCreatesFileWithTrailingNewline(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, s.Append("marks", Record{"studentId": "S1001", "marks": 80}))

	raw, err := os.ReadFile(filepath.Join(dir, "marks.txt"))
	require.NoError(t, err)
	require.NotEmpty(t, raw)
	assert.Equal(t, byte('\n'), raw[len(raw)-1])
}

func TestFileStoreSkipsMalformedLines(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, zap.NewNop())
	require.NoError(t, err)

	content := `{"studentId":"S1001"}
not json at all
{"studentId":"S1002"}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "students.txt"), []byte(content), 0o644))

	records, err := s.ReadAll("students")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "S1001", records[0]["studentId"])
	assert.Equal(t, "S1002", records[1]["studentId"])
}

func TestFileStoreWriteAllReplacesContent(t *testing.T) {
	s := newTestFileStore(t)

	require.NoError(t, s.Append("teachers", Record{"teacherId": "T101"}))
	require.NoError(t, s.WriteAll("teachers", []Record{{"teacherId": "T201"}, {"teacherId": "T202"}}))

	records, err := s.ReadAll("teachers")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "T201", records[0]["teacherId"])
}

func TestFileStoreFindAbsent(t *testing.T) {
	s := newTestFileStore(t)

	rec, err := s.Find("students", func(r Record) bool { return true })
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestFileStoreFindReturnsFirstMatch(t *testing.T) {
	s := newTestFileStore(t)

	require.NoError(t, s.Append("students", Record{"studentId": "S1", "branch": "CSE"}))
	require.NoError(t, s.Append("students", Record{"studentId": "S2", "branch": "CSE"}))

	rec, err := s.Find("students", func(r Record) bool { return r["branch"] == "CSE" })
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "S1", rec["studentId"])
}

func TestFileStoreUpdatePatchesFirstMatchOnly(t *testing.T) {
	s := newTestFileStore(t)

	require.NoError(t, s.Append("students", Record{"studentId": "S1", "branch": "CSE", "club": "Robotics"}))
	require.NoError(t, s.Append("students", Record{"studentId": "S2", "branch": "CSE", "club": "Music"}))

	found, err := s.Update("students", func(r Record) bool { return r["branch"] == "CSE" }, Record{"section": "B"})
	require.NoError(t, err)
	assert.True(t, found)

	records, err := s.ReadAll("students")
	require.NoError(t, err)
	require.Len(t, records, 2)

	// First match gains the patched field, keeps the rest.
	assert.Equal(t, "B", records[0]["section"])
	assert.Equal(t, "Robotics", records[0]["club"])

	// Later matches stay untouched.
	_, patched := records[1]["section"]
	assert.False(t, patched)
	assert.Equal(t, "Music", records[1]["club"])
}

func TestFileStoreUpdateNoMatch(t *testing.T) {
	s := newTestFileStore(t)

	require.NoError(t, s.Append("students", Record{"studentId": "S1"}))

	found, err := s.Update("students", func(r Record) bool { return r["studentId"] == "S9" }, Record{"club": "Chess"})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestFileStoreRemoveAllMatches(t *testing.T) {
	s := newTestFileStore(t)

	require.NoError(t, s.Append("attendance", Record{"studentId": "S1", "date": "2026-01-05"}))
	require.NoError(t, s.Append("attendance", Record{"studentId": "S2", "date": "2026-01-05"}))
	require.NoError(t, s.Append("attendance", Record{"studentId": "S1", "date": "2026-01-06"}))

	removed, err := s.Remove("attendance", func(r Record) bool { return r["studentId"] == "S1" })
	require.NoError(t, err)
	assert.True(t, removed)

	records, err := s.ReadAll("attendance")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "S2", records[0]["studentId"])
}

func TestFileStoreRemoveNoMatchIsNoOp(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, zap.NewNop())
	require.NoError(t, err)

	require.NoError(t, s.Append("attendance", Record{"studentId": "S1"}))
	before, err := os.ReadFile(filepath.Join(dir, "attendance.txt"))
	require.NoError(t, err)

	removed, err := s.Remove("attendance", func(r Record) bool { return false })
	require.NoError(t, err)
	assert.False(t, removed)

	after, err := os.ReadFile(filepath.Join(dir, "attendance.txt"))
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestFileStoreUpdatePreservesUnknownFields(t *testing.T) {
	s := newTestFileStore(t)

	require.NoError(t, s.Append("students", Record{"studentId": "S1", "legacyCode": "X42"}))

	found, err := s.Update("students", func(r Record) bool { return r["studentId"] == "S1" }, Record{"club": "Chess"})
	require.NoError(t, err)
	require.True(t, found)

	rec, err := s.Find("students", func(r Record) bool { return r["studentId"] == "S1" })
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "X42", rec["legacyCode"])
	assert.Equal(t, "Chess", rec["club"])
}

func TestFileStoreFindManyNilPredicate(t *testing.T) {
	s := newTestFileStore(t)

	require.NoError(t, s.Append("marks", Record{"studentId": "S1"}))
	require.NoError(t, s.Append("marks", Record{"studentId": "S2"}))

	records, err := s.FindMany("marks", nil)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
