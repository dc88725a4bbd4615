package screens

import (
	"context"
	"errors"

	"enrollment-console/internal/concurrency"
	"enrollment-console/internal/reqstate"
)

type Stats struct {
	Students    int
	Courses     int
	Enrollments int
}

// Dashboard counts students, courses and enrollments, fetched together.
type Dashboard struct {
	students    StudentService
	courses     CourseService
	enrollments EnrollmentService

	state reqstate.State[Stats]
}

func NewDashboard(students StudentService, courses CourseService, enrollments EnrollmentService) *Dashboard {
	return &Dashboard{students: students, courses: courses, enrollments: enrollments}
}

// Load keeps the previous counts if any of the three calls fails.
func (d *Dashboard) Load(ctx context.Context) error {
	return reqstate.Run(ctx, &d.state, func(ctx context.Context) (Stats, error) {
		var st Stats
		errs := concurrency.All(ctx,
			func(ctx context.Context) error {
				list, err := d.students.List(ctx)
				st.Students = len(list)
				return err
			},
			func(ctx context.Context) error {
				list, err := d.courses.List(ctx)
				st.Courses = len(list)
				return err
			},
			func(ctx context.Context) error {
				list, err := d.enrollments.List(ctx)
				st.Enrollments = len(list)
				return err
			},
		)
		if len(errs) > 0 {
			return Stats{}, errors.Join(errs...)
		}
		return st, nil
	})
}

func (d *Dashboard) Stats() Stats { return d.state.Data }

func (d *Dashboard) Loading() bool { return d.state.Loading() }

func (d *Dashboard) Err() error { return d.state.Err }
