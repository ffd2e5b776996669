package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreAppendThenReadAll(t *testing.T) {
	s := NewMemoryStore()

	require.NoError(t, s.Append("students", Record{"studentId": "S1"}))
	require.NoError(t, s.Append("students", Record{"studentId": "S2"}))

	records, err := s.ReadAll("students")
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "S1", records[0]["studentId"])
	assert.Equal(t, "S2", records[1]["studentId"])
}

func TestMemoryStoreIsolatesCallersFromInternalState(t *testing.T) {
	s := NewMemoryStore()

	rec := Record{"studentId": "S1", "club": "Chess"}
	require.NoError(t, s.Append("students", rec))
	rec["club"] = "Robotics"

	stored, err := s.Find("students", func(r Record) bool { return r["studentId"] == "S1" })
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "Chess", stored["club"])

	// Mutating a returned record must not leak back into the store either.
	stored["club"] = "Music"
	again, err := s.Find("students", func(r Record) bool { return r["studentId"] == "S1" })
	require.NoError(t, err)
	assert.Equal(t, "Chess", again["club"])
}

func TestMemoryStoreUpdateFirstMatchOnly(t *testing.T) {
	s := NewMemoryStore()

	require.NoError(t, s.Append("students", Record{"studentId": "S1", "branch": "CSE"}))
	require.NoError(t, s.Append("students", Record{"studentId": "S2", "branch": "CSE"}))

	found, err := s.Update("students", func(r Record) bool { return r["branch"] == "CSE" }, Record{"year": float64(3)})
	require.NoError(t, err)
	assert.True(t, found)

	records, err := s.ReadAll("students")
	require.NoError(t, err)
	assert.Equal(t, float64(3), records[0]["year"])
	_, patched := records[1]["year"]
	assert.False(t, patched)
}

func TestMemoryStoreRemoveAllMatches(t *testing.T) {
	s := NewMemoryStore()

	require.NoError(t, s.Append("marks", Record{"studentId": "S1"}))
	require.NoError(t, s.Append("marks", Record{"studentId": "S1"}))
	require.NoError(t, s.Append("marks", Record{"studentId": "S2"}))

	removed, err := s.Remove("marks", func(r Record) bool { return r["studentId"] == "S1" })
	require.NoError(t, err)
	assert.True(t, removed)

	records, err := s.ReadAll("marks")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "S2", records[0]["studentId"])
}

func TestMemoryStoreRemoveNoMatch(t *testing.T) {
	s := NewMemoryStore()

	require.NoError(t, s.Append("marks", Record{"studentId": "S1"}))

	removed, err := s.Remove("marks", func(r Record) bool { return false })
	require.NoError(t, err)
	assert.False(t, removed)
}
