package screens

import (
	"context"
	"errors"

	"enrollment-console/internal/concurrency"
	"enrollment-console/internal/domain"
	"enrollment-console/internal/reqstate"
)

// StudentDetail shows one student with their courses and enrollment history.
type StudentDetail struct {
	students    StudentService
	courses     CourseService
	enrollments EnrollmentService
	id          int64

	Student     *domain.Student
	Courses     []domain.Course
	Enrollments []domain.Enrollment

	state reqstate.State[struct{}]
	alert reqstate.Alert
}

func NewStudentDetail(students StudentService, courses CourseService, enrollments EnrollmentService, id int64) *StudentDetail {
	return &StudentDetail{students: students, courses: courses, enrollments: enrollments, id: id}
}

// Load fetches the student, then its enrollments and enrolled courses together.
// Both lists are keyed by the student's internal id.
func (d *StudentDetail) Load(ctx context.Context) error {
	err := reqstate.Run(ctx, &d.state, func(ctx context.Context) (struct{}, error) {
		s, err := d.students.Get(ctx, d.id)
		if err != nil {
			return struct{}{}, err
		}
		var (
			enrollments []domain.Enrollment
			courses     []domain.Course
		)
		errs := concurrency.All(ctx,
			func(ctx context.Context) (err error) {
				enrollments, err = d.enrollments.ListByStudent(ctx, d.id)
				return err
			},
			func(ctx context.Context) (err error) {
				courses, err = d.courses.ListEnrolledByStudent(ctx, d.id)
				return err
			},
		)
		if len(errs) > 0 {
			return struct{}{}, errors.Join(errs...)
		}
		d.Student, d.Enrollments, d.Courses = s, enrollments, courses
		return struct{}{}, nil
	})
	if err != nil {
		d.alert.Failure(err, "Failed to load student data")
	}
	return err
}

// Drop drops the student from the course, then reloads everything.
func (d *StudentDetail) Drop(ctx context.Context, courseCode string) error {
	if d.Student == nil {
		return ErrNotFound
	}
	if _, err := d.enrollments.Drop(ctx, d.Student.StudentID, courseCode); err != nil {
		d.alert.Failure(err, "Failed to drop course")
		return err
	}
	if err := d.Load(ctx); err != nil {
		return err
	}
	d.alert.Success("Course dropped successfully")
	return nil
}

func (d *StudentDetail) CoursesEmpty() (string, bool) {
	return "No courses enrolled", len(d.Courses) == 0
}

func (d *StudentDetail) EnrollmentsEmpty() (string, bool) {
	return "No enrollment history", len(d.Enrollments) == 0
}

func (d *StudentDetail) Loading() bool { return d.state.Loading() }

func (d *StudentDetail) Alert() reqstate.Alert { return d.alert }

func (d *StudentDetail) DismissAlert() { d.alert.Dismiss() }
