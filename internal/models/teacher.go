package models

// Teacher represents a member of the teaching staff.
type Teacher struct {
	TeacherID string `json:"teacherId"`
	Name      string `json:"name"`
	Subject   string `json:"subject"`
	Password  string `json:"password,omitempty"`
}

// Sanitized returns a copy with the credential stripped.
func (t Teacher) Sanitized() Teacher {
	t.Password = ""
	return t
}
