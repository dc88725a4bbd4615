package screens

import (
	"context"
	"errors"

	"enrollment-console/internal/concurrency"
	"enrollment-console/internal/domain"
	"enrollment-console/internal/reqstate"
)

// CourseDetail shows one course with its roster and weekly meetings.
type CourseDetail struct {
	courses     CourseService
	enrollments EnrollmentService
	schedules   ScheduleService
	id          int64

	Course      *domain.Course
	Enrollments []domain.Enrollment
	Schedules   []domain.Schedule

	state reqstate.State[struct{}]
	alert reqstate.Alert
}

func NewCourseDetail(courses CourseService, enrollments EnrollmentService, schedules ScheduleService, id int64) *CourseDetail {
	return &CourseDetail{courses: courses, enrollments: enrollments, schedules: schedules, id: id}
}

func (d *CourseDetail) Load(ctx context.Context) error {
	err := reqstate.Run(ctx, &d.state, func(ctx context.Context) (struct{}, error) {
		var (
			course      *domain.Course
			enrollments []domain.Enrollment
			schedules   []domain.Schedule
		)
		errs := concurrency.All(ctx,
			func(ctx context.Context) (err error) {
				course, err = d.courses.Get(ctx, d.id)
				return err
			},
			func(ctx context.Context) (err error) {
				enrollments, err = d.enrollments.ListByCourse(ctx, d.id)
				return err
			},
			func(ctx context.Context) (err error) {
				schedules, err = d.schedules.ListByCourse(ctx, d.id)
				return err
			},
		)
		if len(errs) > 0 {
			return struct{}{}, errors.Join(errs...)
		}
		domain.SortSchedules(schedules)
		d.Course, d.Enrollments, d.Schedules = course, enrollments, schedules
		return struct{}{}, nil
	})
	if err != nil {
		d.alert.Failure(err, "Failed to load course data")
	}
	return err
}

// Roster returns the enrollments still active.
func (d *CourseDetail) Roster() []domain.Enrollment {
	var out []domain.Enrollment
	for _, e := range d.Enrollments {
		if e.Status == domain.StatusEnrolled {
			out = append(out, e)
		}
	}
	return out
}

func (d *CourseDetail) Loading() bool { return d.state.Loading() }

func (d *CourseDetail) Alert() reqstate.Alert { return d.alert }

func (d *CourseDetail) DismissAlert() { d.alert.Dismiss() }
