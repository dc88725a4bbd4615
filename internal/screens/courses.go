package screens

import (
	"fmt"

	"enrollment-console/internal/domain"
)

type CourseList = List[domain.Course]

func NewCourseList(svc CourseService) *CourseList {
	return NewList(ListConfig[domain.Course]{
		Title:  "Courses",
		Noun:   "courses",
		Fetch:  svc.List,
		Delete: svc.Delete,
		Key:    func(c domain.Course) int64 { return c.ID },
		Fields: func(c domain.Course) []string {
			return []string{c.CourseCode, c.Name, c.Description}
		},
		ConfirmText: "Delete Course",
		Confirm: func(c domain.Course) string {
			return fmt.Sprintf("Are you sure you want to delete %s (%s)?", c.Name, c.CourseCode)
		},
		LoadFailed:   "Failed to load courses",
		Deleted:      "Course deleted successfully",
		DeleteFailed: "Failed to delete course",
	})
}
