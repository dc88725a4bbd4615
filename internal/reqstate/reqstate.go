// Package reqstate holds the loading/success/failure bookkeeping every
// screen keeps per request, plus the alert and confirmation dialog models.
package reqstate

import (
	"context"

	"enrollment-console/internal/domain"
	"enrollment-console/internal/httpx"
)

type Status int

const (
	Idle Status = iota
	Loading
	Success
	Failure
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Success:
		return "success"
	case Failure:
		return "failure"
	default:
		return "idle"
	}
}

// State tracks one request. Data keeps its last good value across a failure.
type State[T any] struct {
	Status Status
	Data   T
	Err    error
}

func (s *State[T]) Start() {
	s.Status = Loading
	s.Err = nil
}

func (s *State[T]) Succeed(v T) {
	s.Status = Success
	s.Data = v
	s.Err = nil
}

func (s *State[T]) Fail(err error) {
	s.Status = Failure
	s.Err = err
}

func (s *State[T]) Loading() bool {
	return s.Status == Loading
}

// Run drives st through Start and then Succeed or Fail.
func Run[T any](ctx context.Context, st *State[T], fn func(context.Context) (T, error)) error {
	st.Start()
	v, err := fn(ctx)
	if err != nil {
		st.Fail(err)
		return err
	}
	st.Succeed(v)
	return nil
}

// Alert is the single dismissible notification a screen shows.
type Alert struct {
	Open     bool
	Message  string
	Severity domain.Tone
}

func (a *Alert) Success(msg string) {
	*a = Alert{Open: true, Message: msg, Severity: domain.ToneSuccess}
}

// Failure shows the server's message when it sent one, else fallback.
func (a *Alert) Failure(err error, fallback string) {
	*a = Alert{Open: true, Message: httpx.Message(err, fallback), Severity: domain.ToneError}
}

// Error shows msg as is, ignoring any server message.
func (a *Alert) Error(msg string) {
	*a = Alert{Open: true, Message: msg, Severity: domain.ToneError}
}

func (a *Alert) Dismiss() {
	a.Open = false
}

// Confirm is a yes/no dialog about Target.
type Confirm[T any] struct {
	Open    bool
	Title   string
	Message string
	Target  T
}

func (c *Confirm[T]) Ask(title, message string, target T) {
	*c = Confirm[T]{Open: true, Title: title, Message: message, Target: target}
}

func (c *Confirm[T]) Cancel() {
	var zero T
	*c = Confirm[T]{Target: zero}
}
