// Package screens holds the state behind each console screen: what is
// loaded, what is filtered, which dialog or alert is open. Rendering is
// left to the caller. A screen is driven by one user at a time and is not
// safe for concurrent use.
package screens

import (
	"context"
	"errors"

	"enrollment-console/internal/domain"
)

var (
	ErrNotFound  = errors.New("screens: no such row")
	ErrInvalid   = errors.New("screens: form has errors")
	ErrImmutable = errors.New("screens: field cannot change after creation")
	ErrNoTarget  = errors.New("screens: nothing to confirm")
	ErrNotSaved  = errors.New("screens: save the record first")
)

type StudentService interface {
	List(ctx context.Context) ([]domain.Student, error)
	Get(ctx context.Context, id int64) (*domain.Student, error)
	Create(ctx context.Context, s domain.Student) (*domain.Student, error)
	Update(ctx context.Context, id int64, s domain.Student) (*domain.Student, error)
	Delete(ctx context.Context, id int64) error
}

type CourseService interface {
	List(ctx context.Context) ([]domain.Course, error)
	Get(ctx context.Context, id int64) (*domain.Course, error)
	ListEnrolledByStudent(ctx context.Context, studentID int64) ([]domain.Course, error)
	Create(ctx context.Context, in domain.CourseInput) (*domain.Course, error)
	Update(ctx context.Context, id int64, in domain.CourseInput) (*domain.Course, error)
	Delete(ctx context.Context, id int64) error
	AddPrerequisite(ctx context.Context, code, prerequisite string) error
	RemovePrerequisite(ctx context.Context, code, prerequisite string) error
}

type EnrollmentService interface {
	List(ctx context.Context) ([]domain.Enrollment, error)
	ListByStudent(ctx context.Context, studentID int64) ([]domain.Enrollment, error)
	ListByCourse(ctx context.Context, courseID int64) ([]domain.Enrollment, error)
	Drop(ctx context.Context, studentID, courseCode string) (*domain.Enrollment, error)
}

type ScheduleService interface {
	List(ctx context.Context) ([]domain.Schedule, error)
	ListByCourse(ctx context.Context, courseID int64) ([]domain.Schedule, error)
	ListBySemester(ctx context.Context, semester string) ([]domain.Schedule, error)
	StudentSchedule(ctx context.Context, studentID, semester string) ([]domain.Schedule, error)
}
