package screens

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"enrollment-console/internal/domain"
	"enrollment-console/internal/reqstate"
	"enrollment-console/internal/validation"
)

// CourseForm creates or edits a course. Prerequisites can only be edited on
// a course that already exists on the server.
type CourseForm struct {
	svc CourseService
	id  int64

	Course domain.CourseInput
	errs   validation.Errors
	state  reqstate.State[*domain.Course]
	alert  reqstate.Alert
}

func NewCourseForm(svc CourseService) *CourseForm {
	return &CourseForm{svc: svc, errs: validation.Errors{}}
}

func EditCourseForm(svc CourseService, id int64) *CourseForm {
	return &CourseForm{svc: svc, id: id, errs: validation.Errors{}}
}

func (f *CourseForm) Editing() bool { return f.id != 0 }

func (f *CourseForm) Title() string {
	if f.Editing() {
		return "Edit Course"
	}
	return "Add New Course"
}

func (f *CourseForm) Load(ctx context.Context) error {
	if !f.Editing() {
		return nil
	}
	err := reqstate.Run(ctx, &f.state, func(ctx context.Context) (*domain.Course, error) {
		return f.svc.Get(ctx, f.id)
	})
	if err != nil {
		f.alert.Failure(err, "Failed to load course data")
		return err
	}
	f.Course = f.state.Data.Input()
	return nil
}

// Set changes one field by its JSON name and clears that field's error.
func (f *CourseForm) Set(field, value string) error {
	switch field {
	case "courseCode":
		f.Course.CourseCode = value
	case "name":
		f.Course.Name = value
	case "description":
		f.Course.Description = value
	case "creditHours", "maxCapacity":
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			f.errs[field] = "Must be a whole number"
			return nil
		}
		if field == "creditHours" {
			f.Course.CreditHours = n
		} else {
			f.Course.MaxCapacity = n
		}
	default:
		return fmt.Errorf("screens: unknown course field %q", field)
	}
	f.errs.Clear(field)
	return nil
}

func (f *CourseForm) Errors() validation.Errors { return f.errs }

func (f *CourseForm) Submit(ctx context.Context) error {
	if !f.errs.Valid() {
		return ErrInvalid
	}
	f.errs = validation.ValidateCourse(f.Course)
	if !f.errs.Valid() {
		return ErrInvalid
	}

	err := reqstate.Run(ctx, &f.state, func(ctx context.Context) (*domain.Course, error) {
		if f.Editing() {
			return f.svc.Update(ctx, f.id, f.Course)
		}
		return f.svc.Create(ctx, f.Course)
	})
	if err != nil {
		f.alert.Failure(err, "Failed to save course")
		return err
	}

	if f.Editing() {
		f.alert.Success("Course updated successfully")
		return nil
	}
	f.alert.Success("Course created successfully")
	f.Course = domain.CourseInput{}
	return nil
}

func (f *CourseForm) AddPrerequisite(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if !f.Editing() {
		return ErrNotSaved
	}
	if err := f.svc.AddPrerequisite(ctx, f.Course.CourseCode, code); err != nil {
		f.alert.Failure(err, "Failed to add prerequisite")
		return err
	}
	if !slices.Contains(f.Course.PrerequisiteCodes, code) {
		f.Course.PrerequisiteCodes = append(f.Course.PrerequisiteCodes, code)
	}
	f.alert.Success("Prerequisite added successfully")
	return nil
}

func (f *CourseForm) RemovePrerequisite(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	if !f.Editing() {
		return ErrNotSaved
	}
	if err := f.svc.RemovePrerequisite(ctx, f.Course.CourseCode, code); err != nil {
		f.alert.Failure(err, "Failed to remove prerequisite")
		return err
	}
	f.Course.PrerequisiteCodes = slices.DeleteFunc(f.Course.PrerequisiteCodes, func(p string) bool { return p == code })
	f.alert.Success("Prerequisite removed successfully")
	return nil
}

func (f *CourseForm) Saved() *domain.Course { return f.state.Data }

func (f *CourseForm) Loading() bool { return f.state.Loading() }

func (f *CourseForm) Alert() reqstate.Alert { return f.alert }

func (f *CourseForm) DismissAlert() string {
	next := ""
	if f.alert.Severity == domain.ToneSuccess && f.Editing() {
		next = "/courses"
	}
	f.alert.Dismiss()
	return next
}
