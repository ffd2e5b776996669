package models

// FeeStatus is the cached fee state on a student record. It must hold that
// the status is paid exactly when feePaid >= feeTotal.
type FeeStatus string

const (
	FeeStatusPending FeeStatus = "pending"
	FeeStatusPaid    FeeStatus = "paid"
)

// FeeStatusFor derives the status from the fee figures.
func FeeStatusFor(feePaid, feeTotal float64) FeeStatus {
	if feePaid >= feeTotal {
		return FeeStatusPaid
	}
	return FeeStatusPending
}

// Student represents a learner registered in the institution. Field names
// match the persisted records byte for byte.
type Student struct {
	StudentID   string    `json:"studentId"`
	Name        string    `json:"name"`
	DOB         string    `json:"dob"`
	Year        string    `json:"year"`
	Branch      string    `json:"branch"`
	Section     string    `json:"section"`
	Club        string    `json:"club"`
	Hostel      string    `json:"hostel"`
	Password    string    `json:"password,omitempty"`
	ParentPhone string    `json:"parentPhone"`
	FeeTotal    float64   `json:"feeTotal"`
	FeePaid     float64   `json:"feePaid"`
	FeeStatus   FeeStatus `json:"feeStatus"`
}

// Sanitized returns a copy with the credential stripped. Every outward
// payload goes through this.
func (s Student) Sanitized() Student {
	s.Password = ""
	return s
}

// StudentFilter narrows class listings for the teacher view.
type StudentFilter struct {
	Year    string
	Branch  string
	Section string
}

// Matches reports whether the student falls under the filter. Empty filter
// fields match everything.
func (f StudentFilter) Matches(s Student) bool {
	if f.Year != "" && s.Year != f.Year {
		return false
	}
	if f.Branch != "" && s.Branch != f.Branch {
		return false
	}
	if f.Section != "" && s.Section != f.Section {
		return false
	}
	return true
}

// StudentSummary is one row of the admin roster with derived figures
// attached.
type StudentSummary struct {
	Student
	AttendancePercentage int     `json:"attendancePercentage"`
	AvgMarks             int     `json:"avgMarks"`
	FeeBalance           float64 `json:"feeBalance"`
}

// ProfileView is the joined read for the student and parent dashboards.
type ProfileView struct {
	Student    Student           `json:"student"`
	Attendance AttendanceSummary `json:"attendance"`
	Marks      []MarkRecord      `json:"marks"`
	Payments   []PaymentRecord   `json:"payments"`
	FeeBalance float64           `json:"feeBalance"`
}
