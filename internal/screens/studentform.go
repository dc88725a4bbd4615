package screens

import (
	"context"
	"fmt"

	"enrollment-console/internal/domain"
	"enrollment-console/internal/reqstate"
	"enrollment-console/internal/validation"
)

// StudentForm creates a student, or edits one when built with EditStudentForm.
type StudentForm struct {
	svc StudentService
	id  int64

	Student domain.Student
	errs    validation.Errors
	state   reqstate.State[*domain.Student]
	alert   reqstate.Alert
}

func NewStudentForm(svc StudentService) *StudentForm {
	return &StudentForm{svc: svc, errs: validation.Errors{}}
}

func EditStudentForm(svc StudentService, id int64) *StudentForm {
	return &StudentForm{svc: svc, id: id, errs: validation.Errors{}}
}

func (f *StudentForm) Editing() bool { return f.id != 0 }

func (f *StudentForm) Title() string {
	if f.Editing() {
		return "Edit Student"
	}
	return "Add New Student"
}

// Load fetches the student being edited. It is a no-op when creating.
func (f *StudentForm) Load(ctx context.Context) error {
	if !f.Editing() {
		return nil
	}
	err := reqstate.Run(ctx, &f.state, func(ctx context.Context) (*domain.Student, error) {
		return f.svc.Get(ctx, f.id)
	})
	if err != nil {
		f.alert.Failure(err, "Failed to load student data")
		return err
	}
	f.Student = *f.state.Data
	return nil
}

// Set changes one field by its JSON name and clears that field's error.
func (f *StudentForm) Set(field, value string) error {
	switch field {
	case "studentId":
		if f.Editing() {
			return ErrImmutable
		}
		f.Student.StudentID = value
	case "firstName":
		f.Student.FirstName = value
	case "lastName":
		f.Student.LastName = value
	case "email":
		f.Student.Email = value
	case "phoneNumber":
		f.Student.PhoneNumber = value
	default:
		return fmt.Errorf("screens: unknown student field %q", field)
	}
	f.errs.Clear(field)
	return nil
}

func (f *StudentForm) Errors() validation.Errors { return f.errs }

// Submit validates locally and, only if that passes, saves. A create resets
// the form for the next entry.
func (f *StudentForm) Submit(ctx context.Context) error {
	f.errs = validation.ValidateStudent(f.Student)
	if !f.errs.Valid() {
		return ErrInvalid
	}

	err := reqstate.Run(ctx, &f.state, func(ctx context.Context) (*domain.Student, error) {
		if f.Editing() {
			return f.svc.Update(ctx, f.id, f.Student)
		}
		return f.svc.Create(ctx, f.Student)
	})
	if err != nil {
		f.alert.Failure(err, "Failed to save student")
		return err
	}

	if f.Editing() {
		f.alert.Success("Student updated successfully")
		return nil
	}
	f.alert.Success("Student created successfully")
	f.Student = domain.Student{}
	return nil
}

// Saved is the server's copy after the last successful submit.
func (f *StudentForm) Saved() *domain.Student { return f.state.Data }

func (f *StudentForm) Loading() bool { return f.state.Loading() }

func (f *StudentForm) Alert() reqstate.Alert { return f.alert }

// DismissAlert closes the alert and returns the route to navigate to, if any.
// Closing a successful edit goes back to the student list.
func (f *StudentForm) DismissAlert() string {
	next := ""
	if f.alert.Severity == domain.ToneSuccess && f.Editing() {
		next = "/students"
	}
	f.alert.Dismiss()
	return next
}
