package screens

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"enrollment-console/internal/reqstate"
)

// ListConfig describes one entity's list screen.
type ListConfig[T any] struct {
	Title string
	// Noun is the plural used in empty-state text, e.g. "students".
	Noun string

	Fetch func(ctx context.Context) ([]T, error)
	// Delete is nil for read-only lists.
	Delete func(ctx context.Context, id int64) error
	Key    func(T) int64
	// Fields returns the values the search term is matched against.
	Fields func(T) []string
	// ConfirmText is the delete dialog's question about one row.
	ConfirmText string
	Confirm     func(T) string

	LoadFailed   string
	Deleted      string
	DeleteFailed string
}

// List loads a collection once and filters it locally.
type List[T any] struct {
	cfg     ListConfig[T]
	state   reqstate.State[[]T]
	term    string
	alert   reqstate.Alert
	confirm reqstate.Confirm[int64]
}

func NewList[T any](cfg ListConfig[T]) *List[T] {
	return &List[T]{cfg: cfg}
}

func (l *List[T]) Title() string { return l.cfg.Title }

func (l *List[T]) Load(ctx context.Context) error {
	err := reqstate.Run(ctx, &l.state, l.cfg.Fetch)
	if err != nil {
		l.alert.Failure(err, l.cfg.LoadFailed)
	}
	return err
}

func (l *List[T]) Loading() bool { return l.state.Loading() }

func (l *List[T]) Search(term string) {
	l.term = strings.TrimSpace(term)
}

func (l *List[T]) Term() string { return l.term }

// All returns every loaded row, ignoring the search term.
func (l *List[T]) All() []T {
	return slices.Clone(l.state.Data)
}

// Rows returns the loaded rows matching the search term, case-insensitively,
// against any of the configured fields.
func (l *List[T]) Rows() []T {
	if l.term == "" {
		return l.All()
	}
	needle := strings.ToLower(l.term)
	var out []T
	for _, row := range l.state.Data {
		for _, f := range l.cfg.Fields(row) {
			if strings.Contains(strings.ToLower(f), needle) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}

// EmptyState explains an empty table. ok is false when there are rows to show.
func (l *List[T]) EmptyState() (msg string, ok bool) {
	if l.state.Loading() || len(l.Rows()) > 0 {
		return "", false
	}
	if len(l.state.Data) == 0 || l.term == "" {
		return "No " + l.cfg.Noun + " found", true
	}
	return fmt.Sprintf("No %s match %q", l.cfg.Noun, l.term), true
}

func (l *List[T]) Find(id int64) (T, bool) {
	for _, row := range l.state.Data {
		if l.cfg.Key(row) == id {
			return row, true
		}
	}
	var zero T
	return zero, false
}

// AskDelete opens the confirmation dialog for the row with id.
func (l *List[T]) AskDelete(id int64) error {
	if l.cfg.Delete == nil {
		return ErrNotFound
	}
	row, ok := l.Find(id)
	if !ok {
		return ErrNotFound
	}
	l.confirm.Ask(l.cfg.ConfirmText, l.cfg.Confirm(row), id)
	return nil
}

func (l *List[T]) CancelDelete() { l.confirm.Cancel() }

func (l *List[T]) Confirmation() reqstate.Confirm[int64] { return l.confirm }

// ConfirmDelete issues the delete and drops the row only once the server
// acknowledged it. On failure the row stays and an alert is raised.
func (l *List[T]) ConfirmDelete(ctx context.Context) error {
	if !l.confirm.Open {
		return ErrNoTarget
	}
	id := l.confirm.Target
	l.confirm.Cancel()

	if err := l.cfg.Delete(ctx, id); err != nil {
		l.alert.Failure(err, l.cfg.DeleteFailed)
		return err
	}
	l.state.Data = slices.DeleteFunc(l.state.Data, func(row T) bool { return l.cfg.Key(row) == id })
	l.alert.Success(l.cfg.Deleted)
	return nil
}

// replace swaps the row with the same key, if still loaded.
func (l *List[T]) replace(row T) {
	id := l.cfg.Key(row)
	for i := range l.state.Data {
		if l.cfg.Key(l.state.Data[i]) == id {
			l.state.Data[i] = row
			return
		}
	}
}

func (l *List[T]) Alert() reqstate.Alert { return l.alert }

func (l *List[T]) DismissAlert() { l.alert.Dismiss() }
