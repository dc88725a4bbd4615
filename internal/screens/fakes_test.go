package screens

import (
	"context"
	"errors"
	"sync"

	"enrollment-console/internal/domain"
)

var errNotFound = errors.New("404")

type fakeStudents struct {
	list      []domain.Student
	listErr   error
	getErr    error
	saveErr   error
	deleteErr error

	created []domain.Student
	updated map[int64]domain.Student
	deleted []int64
}

func (f *fakeStudents) List(context.Context) ([]domain.Student, error) {
	return append([]domain.Student(nil), f.list...), f.listErr
}

func (f *fakeStudents) Get(_ context.Context, id int64) (*domain.Student, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for _, s := range f.list {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeStudents) Create(_ context.Context, s domain.Student) (*domain.Student, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.created = append(f.created, s)
	s.ID = int64(100 + len(f.created))
	return &s, nil
}

func (f *fakeStudents) Update(_ context.Context, id int64, s domain.Student) (*domain.Student, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	if f.updated == nil {
		f.updated = map[int64]domain.Student{}
	}
	f.updated[id] = s
	s.ID = id
	return &s, nil
}

func (f *fakeStudents) Delete(_ context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeCourses struct {
	mu sync.Mutex

	list      []domain.Course
	listErr   error
	enrolled  map[int64][]domain.Course
	saveErr   error
	deleteErr error
	prereqErr error

	saved   []domain.CourseInput
	prereqs []string
	calls   []string
}

func (f *fakeCourses) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call)
}

func (f *fakeCourses) List(context.Context) ([]domain.Course, error) {
	f.record("list")
	return append([]domain.Course(nil), f.list...), f.listErr
}

func (f *fakeCourses) Get(_ context.Context, id int64) (*domain.Course, error) {
	for _, c := range f.list {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, errNotFound
}

func (f *fakeCourses) ListEnrolledByStudent(_ context.Context, studentID int64) ([]domain.Course, error) {
	f.record("enrolled")
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.enrolled[studentID], nil
}

func (f *fakeCourses) Create(_ context.Context, in domain.CourseInput) (*domain.Course, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.saved = append(f.saved, in)
	return &domain.Course{ID: 50, CourseCode: in.CourseCode, Name: in.Name}, nil
}

func (f *fakeCourses) Update(_ context.Context, id int64, in domain.CourseInput) (*domain.Course, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.saved = append(f.saved, in)
	return &domain.Course{ID: id, CourseCode: in.CourseCode, Name: in.Name}, nil
}

func (f *fakeCourses) Delete(context.Context, int64) error {
	return f.deleteErr
}

func (f *fakeCourses) AddPrerequisite(_ context.Context, code, prerequisite string) error {
	if f.prereqErr != nil {
		return f.prereqErr
	}
	f.prereqs = append(f.prereqs, "+"+code+">"+prerequisite)
	return nil
}

func (f *fakeCourses) RemovePrerequisite(_ context.Context, code, prerequisite string) error {
	if f.prereqErr != nil {
		return f.prereqErr
	}
	f.prereqs = append(f.prereqs, "-"+code+">"+prerequisite)
	return nil
}

type fakeEnrollments struct {
	mu sync.Mutex

	list      []domain.Enrollment
	listErr   error
	byStudent map[int64][]domain.Enrollment
	byCourse  map[int64][]domain.Enrollment
	dropErr   error

	byStudentCalls []int64
	dropped        []domain.EnrollRequest
}

func (f *fakeEnrollments) List(context.Context) ([]domain.Enrollment, error) {
	return append([]domain.Enrollment(nil), f.list...), f.listErr
}

func (f *fakeEnrollments) ListByStudent(_ context.Context, id int64) ([]domain.Enrollment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.byStudentCalls = append(f.byStudentCalls, id)
	return f.byStudent[id], f.listErr
}

func (f *fakeEnrollments) ListByCourse(_ context.Context, id int64) ([]domain.Enrollment, error) {
	return f.byCourse[id], f.listErr
}

func (f *fakeEnrollments) Drop(_ context.Context, studentID, courseCode string) (*domain.Enrollment, error) {
	if f.dropErr != nil {
		return nil, f.dropErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.dropped = append(f.dropped, domain.EnrollRequest{StudentID: studentID, CourseCode: courseCode})
	for id, list := range f.byStudent {
		f.byStudent[id] = nil
		for _, e := range list {
			if e.CourseCode == courseCode {
				e.Status = domain.StatusDropped
			}
			f.byStudent[id] = append(f.byStudent[id], e)
		}
	}
	for _, e := range f.list {
		if e.StudentID == studentID && e.CourseCode == courseCode {
			e.Status = domain.StatusDropped
			return &e, nil
		}
	}
	return &domain.Enrollment{StudentID: studentID, CourseCode: courseCode, Status: domain.StatusDropped}, nil
}

type fakeSchedules struct {
	list  []domain.Schedule
	err   error
	calls []string
}

func (f *fakeSchedules) List(context.Context) ([]domain.Schedule, error) {
	f.calls = append(f.calls, "all")
	return append([]domain.Schedule(nil), f.list...), f.err
}

func (f *fakeSchedules) ListByCourse(_ context.Context, id int64) ([]domain.Schedule, error) {
	f.calls = append(f.calls, "course")
	return append([]domain.Schedule(nil), f.list...), f.err
}

func (f *fakeSchedules) ListBySemester(_ context.Context, semester string) ([]domain.Schedule, error) {
	f.calls = append(f.calls, "semester:"+semester)
	return append([]domain.Schedule(nil), f.list...), f.err
}

func (f *fakeSchedules) StudentSchedule(_ context.Context, studentID, semester string) ([]domain.Schedule, error) {
	f.calls = append(f.calls, "student:"+studentID+":"+semester)
	return append([]domain.Schedule(nil), f.list...), f.err
}
