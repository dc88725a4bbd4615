package screens

import (
	"fmt"

	"enrollment-console/internal/domain"
)

type StudentList = List[domain.Student]

func NewStudentList(svc StudentService) *StudentList {
	return NewList(ListConfig[domain.Student]{
		Title:  "Students",
		Noun:   "students",
		Fetch:  svc.List,
		Delete: svc.Delete,
		Key:    func(s domain.Student) int64 { return s.ID },
		Fields: func(s domain.Student) []string {
			return []string{s.StudentID, s.FirstName, s.LastName, s.Email}
		},
		ConfirmText: "Delete Student",
		Confirm: func(s domain.Student) string {
			return fmt.Sprintf("Are you sure you want to delete %s %s?", s.FirstName, s.LastName)
		},
		LoadFailed:   "Failed to load students",
		Deleted:      "Student deleted successfully",
		DeleteFailed: "Failed to delete student",
	})
}
