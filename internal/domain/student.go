package domain

import "strings"

// Student is the client-side shape of a student record.
// ID is assigned by the server; StudentID is the human-facing id and
// cannot change once the student exists.
type Student struct {
	ID          int64  `json:"id,omitempty"`
	StudentID   string `json:"studentId" validate:"required"`
	FirstName   string `json:"firstName" validate:"required"`
	LastName    string `json:"lastName" validate:"required"`
	Email       string `json:"email" validate:"required,student_email"`
	PhoneNumber string `json:"phoneNumber,omitempty" validate:"omitempty,phone10"`
}

func (s Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// Label is the selection label used by pickers: "Ann Lee (S100)".
func (s Student) Label() string {
	return s.FullName() + " (" + s.StudentID + ")"
}
