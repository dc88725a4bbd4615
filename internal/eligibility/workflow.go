// Package eligibility runs the three-stage enrollment wizard: pick a student,
// pick an eligible course and semester, then confirm once the prerequisite,
// time-conflict and capacity checks have all passed.
package eligibility

import (
	"context"
	"errors"
	"slices"
	"sync"

	"go.uber.org/zap"

	"enrollment-console/internal/domain"
	"enrollment-console/internal/reqstate"
)

const (
	msgLoadFailed    = "Failed to load data"
	msgCoursesFailed = "Failed to load available courses"
	msgChecksFailed  = "Failed to check enrollment requirements"
	msgEnrolled      = "Student enrolled successfully"
	msgEnrollFailed  = "Failed to enroll student"
	defaultSemester  = "Fall 2023"
)

var (
	ErrNoStudent       = errors.New("eligibility: no student selected")
	ErrNoCourse        = errors.New("eligibility: no course selected")
	ErrNoSemester      = errors.New("eligibility: no semester selected")
	ErrWrongStage      = errors.New("eligibility: action not available at this stage")
	ErrNotAvailable    = errors.New("eligibility: course is not available to this student")
	ErrUnknownSemester = errors.New("eligibility: unknown semester")
	ErrNotEligible     = errors.New("eligibility: not every check has passed")
	ErrBusy            = errors.New("eligibility: enrollment already in progress")
)

type StudentLister interface {
	List(ctx context.Context) ([]domain.Student, error)
}

// CourseLister takes the student's internal id.
type CourseLister interface {
	ListAvailableForStudent(ctx context.Context, studentID int64) ([]domain.Course, error)
}

// Enroller takes the student's external id throughout.
type Enroller interface {
	CheckPrerequisites(ctx context.Context, studentID, courseCode string) (bool, error)
	CheckTimeConflict(ctx context.Context, studentID, courseCode, semester string) (bool, error)
	CheckCapacity(ctx context.Context, courseCode string) (bool, error)
	Enroll(ctx context.Context, studentID, courseCode string) (*domain.Enrollment, error)
}

type Option func(*Workflow)

func WithLogger(l *zap.Logger) Option {
	return func(w *Workflow) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithSemesters sets the semester choices. def must be one of them.
func WithSemesters(def string, all []string) Option {
	return func(w *Workflow) {
		if len(all) == 0 {
			return
		}
		w.semesters = slices.Clone(all)
		w.defaultSemester = all[0]
		if slices.Contains(all, def) {
			w.defaultSemester = def
		}
	}
}

// Workflow is safe for concurrent use. Check results land on their own
// goroutines; a result from an abandoned round is dropped.
type Workflow struct {
	studentSvc StudentLister
	courseSvc  CourseLister
	enroller   Enroller
	logger     *zap.Logger

	semesters       []string
	defaultSemester string

	mu        sync.Mutex
	state     State
	students  []domain.Student
	semester  string
	round     uint64
	enrolling bool
	alert     reqstate.Alert

	wg sync.WaitGroup
}

func New(students StudentLister, courses CourseLister, enroller Enroller, opts ...Option) *Workflow {
	w := &Workflow{
		studentSvc:      students,
		courseSvc:       courses,
		enroller:        enroller,
		logger:          zap.NewNop(),
		semesters:       []string{defaultSemester, "Spring 2024", "Summer 2024"},
		defaultSemester: defaultSemester,
		state:           SelectStudent{},
	}
	for _, opt := range opts {
		opt(w)
	}
	w.semester = w.defaultSemester
	return w
}

// Load fetches the student picker's options.
func (w *Workflow) Load(ctx context.Context) error {
	list, err := w.studentSvc.List(ctx)

	w.mu.Lock()
	defer w.mu.Unlock()
	if err != nil {
		w.alert.Error(msgLoadFailed)
		return err
	}
	w.students = list
	return nil
}

func (w *Workflow) Students() []domain.Student {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.students)
}

// FindStudent looks a loaded student up by external id.
func (w *Workflow) FindStudent(studentID string) (domain.Student, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, s := range w.students {
		if s.StudentID == studentID {
			return s, true
		}
	}
	return domain.Student{}, false
}

// SelectStudent picks the student. From a later stage it restarts the wizard
// at the first stage with the course cleared.
func (w *Workflow) SelectStudent(s domain.Student) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.round++
	w.state = SelectStudent{Student: &s}
}

// SelectCourse picks one of the available courses. On the confirm stage it
// goes back to course selection and the checks are discarded.
func (w *Workflow) SelectCourse(c domain.Course) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var sc SelectCourse
	switch st := w.state.(type) {
	case SelectCourse:
		sc = st
	case Confirm:
		sc = SelectCourse{Student: st.Student, Available: st.available, Semester: st.Semester}
	default:
		return ErrWrongStage
	}

	idx := slices.IndexFunc(sc.Available, func(a domain.Course) bool {
		return a.ID == c.ID && a.CourseCode == c.CourseCode
	})
	if idx < 0 {
		return ErrNotAvailable
	}
	picked := sc.Available[idx]
	sc.Course = &picked
	w.round++
	w.state = sc
	return nil
}

// SetSemester changes the term used by the time-conflict check.
func (w *Workflow) SetSemester(semester string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !slices.Contains(w.semesters, semester) {
		return ErrUnknownSemester
	}
	w.semester = semester
	switch st := w.state.(type) {
	case SelectCourse:
		st.Semester = semester
		w.state = st
	case Confirm:
		if st.Semester == semester {
			return nil
		}
		course := st.Course
		w.round++
		w.state = SelectCourse{Student: st.Student, Available: st.available, Course: &course, Semester: semester}
	}
	return nil
}

// Next advances one stage. Entering course selection fetches the eligible
// courses; entering confirmation starts the three checks.
func (w *Workflow) Next(ctx context.Context) error {
	w.mu.Lock()
	switch st := w.state.(type) {
	case SelectStudent:
		if st.Student == nil {
			w.mu.Unlock()
			return ErrNoStudent
		}
		student := *st.Student
		round := w.round
		w.mu.Unlock()
		return w.enterCourseSelection(ctx, student, round)

	case SelectCourse:
		defer w.mu.Unlock()
		if st.Course == nil {
			return ErrNoCourse
		}
		if st.Semester == "" {
			return ErrNoSemester
		}
		w.round++
		w.state = Confirm{
			Student:   st.Student,
			Course:    *st.Course,
			Semester:  st.Semester,
			Checks:    inProgress(),
			available: st.Available,
		}
		w.startChecks(ctx, w.round, st.Student.StudentID, st.Course.CourseCode, st.Semester)
		return nil

	default:
		w.mu.Unlock()
		return ErrWrongStage
	}
}

func (w *Workflow) enterCourseSelection(ctx context.Context, student domain.Student, round uint64) error {
	list, err := w.courseSvc.ListAvailableForStudent(ctx, student.ID)

	w.mu.Lock()
	defer w.mu.Unlock()
	if round != w.round {
		return nil
	}
	if err != nil {
		w.alert.Error(msgCoursesFailed)
		return err
	}
	w.round++
	w.state = SelectCourse{Student: student, Available: list, Semester: w.semester}
	return nil
}

// Back goes one stage back, keeping the selections and discarding any checks.
func (w *Workflow) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch st := w.state.(type) {
	case SelectCourse:
		student := st.Student
		w.round++
		w.state = SelectStudent{Student: &student}
	case Confirm:
		course := st.Course
		w.round++
		w.state = SelectCourse{Student: st.Student, Available: st.available, Course: &course, Semester: st.Semester}
	}
}

// Enroll performs the enrollment once every check has passed. On success the
// wizard returns to the first stage with nothing selected.
func (w *Workflow) Enroll(ctx context.Context) error {
	w.mu.Lock()
	st, ok := w.state.(Confirm)
	if !ok {
		w.mu.Unlock()
		return ErrWrongStage
	}
	if !st.Checks.CanEnroll() {
		w.mu.Unlock()
		return ErrNotEligible
	}
	if w.enrolling {
		w.mu.Unlock()
		return ErrBusy
	}
	w.enrolling = true
	round := w.round
	w.mu.Unlock()

	_, err := w.enroller.Enroll(ctx, st.Student.StudentID, st.Course.CourseCode)

	w.mu.Lock()
	defer w.mu.Unlock()
	w.enrolling = false
	if err != nil {
		w.alert.Failure(err, msgEnrollFailed)
		return err
	}
	w.logger.Info("student enrolled",
		zap.String("student_id", st.Student.StudentID),
		zap.String("course_code", st.Course.CourseCode),
		zap.String("semester", st.Semester),
	)
	w.alert.Success(msgEnrolled)
	if round == w.round {
		w.round++
		w.state = SelectStudent{}
	}
	return nil
}

// Wait blocks until every check started so far has returned.
func (w *Workflow) Wait() {
	w.wg.Wait()
}

func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	if sc, ok := w.state.(SelectCourse); ok {
		sc.Available = slices.Clone(sc.Available)
		return sc
	}
	return w.state
}

// Checks returns the current outcomes, all NotChecked outside confirmation.
func (w *Workflow) Checks() Checks {
	w.mu.Lock()
	defer w.mu.Unlock()
	if st, ok := w.state.(Confirm); ok {
		return st.Checks
	}
	return Checks{}
}

func (w *Workflow) Alert() reqstate.Alert {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.alert
}

func (w *Workflow) DismissAlert() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.alert.Dismiss()
}

func (w *Workflow) Semesters() []string {
	return slices.Clone(w.semesters)
}

func (w *Workflow) Semester() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.semester
}
