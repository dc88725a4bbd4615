package screens

import (
	"context"

	"enrollment-console/internal/domain"
)

// EnrollmentList is read-only apart from dropping an active enrollment.
type EnrollmentList struct {
	*List[domain.Enrollment]
	svc EnrollmentService
}

func NewEnrollmentList(svc EnrollmentService) *EnrollmentList {
	return &EnrollmentList{
		List: NewList(ListConfig[domain.Enrollment]{
			Title: "Enrollments",
			Noun:  "enrollments",
			Fetch: svc.List,
			Key:   func(e domain.Enrollment) int64 { return e.ID },
			Fields: func(e domain.Enrollment) []string {
				return []string{e.StudentID, e.CourseCode, string(e.Status), e.Semester}
			},
			LoadFailed: "Failed to load enrollments",
		}),
		svc: svc,
	}
}

// Drop drops the enrollment with id and shows the server's updated row.
func (l *EnrollmentList) Drop(ctx context.Context, id int64) error {
	e, ok := l.Find(id)
	if !ok {
		return ErrNotFound
	}
	updated, err := l.svc.Drop(ctx, e.StudentID, e.CourseCode)
	if err != nil {
		l.alert.Failure(err, "Failed to drop course")
		return err
	}
	if updated != nil && updated.ID == id {
		l.replace(*updated)
	} else {
		e.Status = domain.StatusDropped
		l.replace(e)
	}
	l.alert.Success("Course dropped successfully")
	return nil
}
