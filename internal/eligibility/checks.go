package eligibility

import (
	"context"

	"go.uber.org/zap"
)

type checkKind int

const (
	checkPrerequisites checkKind = iota
	checkTimeConflict
	checkCapacity
)

func (k checkKind) String() string {
	switch k {
	case checkTimeConflict:
		return "time_conflict"
	case checkCapacity:
		return "capacity"
	default:
		return "prerequisites"
	}
}

// startChecks issues the three checks for round. Callers hold mu.
func (w *Workflow) startChecks(ctx context.Context, round uint64, studentID, courseCode, semester string) {
	w.wg.Add(3)
	go w.runCheck(ctx, round, checkPrerequisites, func(ctx context.Context) (bool, error) {
		return w.enroller.CheckPrerequisites(ctx, studentID, courseCode)
	})
	go w.runCheck(ctx, round, checkTimeConflict, func(ctx context.Context) (bool, error) {
		conflict, err := w.enroller.CheckTimeConflict(ctx, studentID, courseCode, semester)
		return !conflict, err
	})
	go w.runCheck(ctx, round, checkCapacity, func(ctx context.Context) (bool, error) {
		return w.enroller.CheckCapacity(ctx, courseCode)
	})
}

// runCheck records one outcome. The first call error abandons the round:
// every check goes back to NotChecked and later results are ignored.
func (w *Workflow) runCheck(ctx context.Context, round uint64, kind checkKind, call func(context.Context) (bool, error)) {
	defer w.wg.Done()

	passed, err := call(ctx)

	w.mu.Lock()
	defer w.mu.Unlock()
	if round != w.round {
		w.logger.Debug("dropping stale check result", zap.Stringer("check", kind))
		return
	}
	st, ok := w.state.(Confirm)
	if !ok {
		return
	}
	if err != nil {
		w.round++
		st.Checks = Checks{}
		w.state = st
		w.alert.Error(msgChecksFailed)
		return
	}

	switch kind {
	case checkPrerequisites:
		st.Checks.Prerequisites = resolved(passed)
	case checkTimeConflict:
		st.Checks.TimeConflict = resolved(passed)
	case checkCapacity:
		st.Checks.Capacity = resolved(passed)
	}
	w.state = st
}
