package eligibility

import "enrollment-console/internal/domain"

type Stage int

const (
	StageSelectStudent Stage = iota
	StageSelectCourse
	StageConfirm
)

func (s Stage) String() string {
	switch s {
	case StageSelectCourse:
		return "Select Course"
	case StageConfirm:
		return "Confirm Enrollment"
	default:
		return "Select Student"
	}
}

// State is one of SelectStudent, SelectCourse or Confirm.
type State interface {
	Stage() Stage
}

// SelectStudent is the initial stage. Student is nil until one is chosen.
type SelectStudent struct {
	Student *domain.Student
}

// SelectCourse offers only the courses the server says the student may take.
type SelectCourse struct {
	Student   domain.Student
	Available []domain.Course
	Course    *domain.Course
	Semester  string
}

// Confirm carries the three check outcomes for a fixed selection.
type Confirm struct {
	Student  domain.Student
	Course   domain.Course
	Semester string
	Checks   Checks

	available []domain.Course
}

func (SelectStudent) Stage() Stage { return StageSelectStudent }
func (SelectCourse) Stage() Stage  { return StageSelectCourse }
func (Confirm) Stage() Stage       { return StageConfirm }

type CheckStatus int

const (
	NotChecked CheckStatus = iota
	InProgress
	Passed
	Failed
)

func (c CheckStatus) String() string {
	switch c {
	case InProgress:
		return "checking"
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	default:
		return "not checked"
	}
}

// Checks holds one outcome per requirement.
// TimeConflict is Passed when the server reports no conflict.
type Checks struct {
	Prerequisites CheckStatus
	TimeConflict  CheckStatus
	Capacity      CheckStatus
}

// CanEnroll is true only when every check resolved to Passed.
func (c Checks) CanEnroll() bool {
	return c.Prerequisites == Passed && c.TimeConflict == Passed && c.Capacity == Passed
}

func (c Checks) Pending() bool {
	return c.Prerequisites == InProgress || c.TimeConflict == InProgress || c.Capacity == InProgress
}

func inProgress() Checks {
	return Checks{Prerequisites: InProgress, TimeConflict: InProgress, Capacity: InProgress}
}

func resolved(ok bool) CheckStatus {
	if ok {
		return Passed
	}
	return Failed
}
