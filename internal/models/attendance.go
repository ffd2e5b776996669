package models

// AttendanceStatus marks a student present or absent on one date.
type AttendanceStatus string

const (
	AttendanceStatusPresent AttendanceStatus = "present"
	AttendanceStatusAbsent  AttendanceStatus = "absent"
)

// Valid returns true when the status is a supported value.
func (s AttendanceStatus) Valid() bool {
	return s == AttendanceStatusPresent || s == AttendanceStatusAbsent
}

// AttendanceRecord is one attendance entry. Duplicate (date, studentId)
// entries are allowed and all counted.
type AttendanceRecord struct {
	Date      string           `json:"date"`
	StudentID string           `json:"studentId"`
	Status    AttendanceStatus `json:"status"`
}

// AttendanceStats summarises a set of attendance records.
type AttendanceStats struct {
	Total      int `json:"total"`
	Present    int `json:"present"`
	Absent     int `json:"absent"`
	Percentage int `json:"percentage"`
}

// AttendanceSummary couples the raw records with their stats.
type AttendanceSummary struct {
	Records []AttendanceRecord `json:"records"`
	Stats   AttendanceStats    `json:"stats"`
}
