package models

// MarkRecord is one exam score for a student. Term is a free-form exam
// period label; no score range is enforced.
type MarkRecord struct {
	StudentID string  `json:"studentId"`
	Subject   string  `json:"subject"`
	Term      string  `json:"term"`
	Marks     float64 `json:"marks"`
}
