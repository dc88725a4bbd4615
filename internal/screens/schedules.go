package screens

import (
	"context"

	"enrollment-console/internal/domain"
	"enrollment-console/internal/reqstate"
)

// ScheduleView lists meetings for a semester, optionally for one student,
// ordered by weekday and start time.
type ScheduleView struct {
	svc ScheduleService

	Semester  string
	StudentID string

	state reqstate.State[[]domain.Schedule]
	alert reqstate.Alert
}

func NewScheduleView(svc ScheduleService, semester string) *ScheduleView {
	return &ScheduleView{svc: svc, Semester: semester}
}

func (v *ScheduleView) Load(ctx context.Context) error {
	err := reqstate.Run(ctx, &v.state, func(ctx context.Context) ([]domain.Schedule, error) {
		var (
			list []domain.Schedule
			err  error
		)
		switch {
		case v.StudentID != "" && v.Semester != "":
			list, err = v.svc.StudentSchedule(ctx, v.StudentID, v.Semester)
		case v.Semester != "":
			list, err = v.svc.ListBySemester(ctx, v.Semester)
		default:
			list, err = v.svc.List(ctx)
		}
		if err != nil {
			return nil, err
		}
		domain.SortSchedules(list)
		return list, nil
	})
	if err != nil {
		v.alert.Failure(err, "Failed to load schedules")
	}
	return err
}

func (v *ScheduleView) Rows() []domain.Schedule { return v.state.Data }

func (v *ScheduleView) Loading() bool { return v.state.Loading() }

func (v *ScheduleView) EmptyState() (string, bool) {
	if v.state.Loading() || len(v.state.Data) > 0 {
		return "", false
	}
	if v.StudentID != "" {
		return "No classes scheduled for " + v.StudentID + " in " + v.Semester, true
	}
	return "No schedules found", true
}

func (v *ScheduleView) Alert() reqstate.Alert { return v.alert }

func (v *ScheduleView) DismissAlert() { v.alert.Dismiss() }
