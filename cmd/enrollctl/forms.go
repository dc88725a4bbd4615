package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"

	"enrollment-console/internal/domain"
	"enrollment-console/internal/screens"
)

// form is the part of StudentForm and CourseForm the commands drive.
type form interface {
	Set(field, value string) error
}

// setFields copies the flags the user actually passed into the form.
func setFields(fs *flag.FlagSet, f form, fields map[string]string) error {
	var err error
	fs.Visit(func(fl *flag.Flag) {
		field, ok := fields[fl.Name]
		if !ok || err != nil {
			return
		}
		err = f.Set(field, fl.Value.String())
	})
	return err
}

var studentFields = map[string]string{
	"student-id": "studentId",
	"first":      "firstName",
	"last":       "lastName",
	"email":      "email",
	"phone":      "phoneNumber",
}

func (cli *commandLine) studentForm(ctx context.Context, edit bool, args []string) error {
	fs := flag.NewFlagSet("student", flag.ContinueOnError)
	id := fs.Int64("id", 0, "internal id of the student to edit")
	dryRun := fs.Bool("dry-run", false, "show the form without saving")
	fs.String("student-id", "", "student id, e.g. S100")
	fs.String("first", "", "first name")
	fs.String("last", "", "last name")
	fs.String("email", "", "email address")
	fs.String("phone", "", "10 digit phone number")
	if err := fs.Parse(args); err != nil {
		return errHelp
	}

	f := screens.NewStudentForm(cli.students)
	if edit {
		if *id <= 0 {
			fs.Usage()
			return errHelp
		}
		f = screens.EditStudentForm(cli.students, *id)
		if err := f.Load(ctx); err != nil {
			return failed(f.Alert(), err)
		}
	}
	if !*dryRun {
		cli.title(f.Title())
	}

	if err := setFields(fs, f, studentFields); err != nil {
		if errors.Is(err, screens.ErrImmutable) {
			return fmt.Errorf("student id cannot be changed: %w", err)
		}
		return err
	}
	if *dryRun {
		cli.printStudent(f.Student)
		return nil
	}

	if err := f.Submit(ctx); err != nil {
		if errors.Is(err, screens.ErrInvalid) {
			cli.formErrors(f.Errors())
			return err
		}
		return failed(f.Alert(), err)
	}
	cli.alert(f.Alert())
	if s := f.Saved(); s != nil {
		cli.printStudent(*s)
	}
	return nil
}

var courseFields = map[string]string{
	"code":        "courseCode",
	"name":        "name",
	"description": "description",
	"credits":     "creditHours",
	"capacity":    "maxCapacity",
}

func (cli *commandLine) courseForm(ctx context.Context, edit bool, args []string) error {
	fs := flag.NewFlagSet("course", flag.ContinueOnError)
	id := fs.Int64("id", 0, "internal id of the course to edit")
	dryRun := fs.Bool("dry-run", false, "show the form without saving")
	fs.String("code", "", "course code, e.g. CS101")
	fs.String("name", "", "course name")
	fs.String("description", "", "description")
	fs.String("credits", "", "credit hours")
	fs.String("capacity", "", "maximum capacity")
	if err := fs.Parse(args); err != nil {
		return errHelp
	}

	f := screens.NewCourseForm(cli.courses)
	if edit {
		if *id <= 0 {
			fs.Usage()
			return errHelp
		}
		f = screens.EditCourseForm(cli.courses, *id)
		if err := f.Load(ctx); err != nil {
			return failed(f.Alert(), err)
		}
	}
	if !*dryRun {
		cli.title(f.Title())
	}

	if err := setFields(fs, f, courseFields); err != nil {
		return err
	}
	if *dryRun {
		cli.printCourseInput(f.Course)
		return nil
	}

	if err := f.Submit(ctx); err != nil {
		if errors.Is(err, screens.ErrInvalid) {
			cli.formErrors(f.Errors())
			return err
		}
		return failed(f.Alert(), err)
	}
	cli.alert(f.Alert())
	if c := f.Saved(); c != nil {
		cli.printCourse(*c)
	}
	return nil
}

func (cli *commandLine) delete(ctx context.Context, kind string, args []string) error {
	fs := flag.NewFlagSet(kind+"-delete", flag.ContinueOnError)
	id := fs.Int64("id", 0, "internal id")
	yes := fs.Bool("yes", false, "do not ask for confirmation")
	if err := fs.Parse(args); err != nil {
		return errHelp
	}
	if *id <= 0 {
		fs.Usage()
		return errHelp
	}

	if kind == "student" {
		return deleteRow(ctx, cli, screens.NewStudentList(cli.students), *id, *yes)
	}
	return deleteRow(ctx, cli, screens.NewCourseList(cli.courses), *id, *yes)
}

// deleteRow asks before deleting and removes the row only once the server
// has acknowledged.
func deleteRow[T any](ctx context.Context, cli *commandLine, l *screens.List[T], id int64, yes bool) error {
	if err := l.Load(ctx); err != nil {
		return failed(l.Alert(), err)
	}
	if err := l.AskDelete(id); err != nil {
		return fmt.Errorf("%s %d: %w", strings.ToLower(l.Title()), id, err)
	}

	c := l.Confirmation()
	ok, err := cli.confirm(c.Title, c.Message, yes)
	if err != nil || !ok {
		l.CancelDelete()
		if err == nil {
			fmt.Fprintln(cli.out, "Cancelled")
		}
		return err
	}

	if err := l.ConfirmDelete(ctx); err != nil {
		return failed(l.Alert(), err)
	}
	cli.alert(l.Alert())
	return nil
}

func (cli *commandLine) prereq(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("prereq", flag.ContinueOnError)
	code := fs.String("course", "", "course code")
	prereq := fs.String("prereq", "", "prerequisite course code")
	remove := fs.Bool("remove", false, "remove instead of add")
	if err := fs.Parse(args); err != nil {
		return errHelp
	}
	if strings.TrimSpace(*code) == "" || strings.TrimSpace(*prereq) == "" {
		fs.Usage()
		return errHelp
	}

	c, err := cli.courses.GetByCode(ctx, *code)
	if err != nil {
		return fmt.Errorf("load course %s: %w", *code, err)
	}

	f := screens.EditCourseForm(cli.courses, c.ID)
	if err := f.Load(ctx); err != nil {
		return failed(f.Alert(), err)
	}
	if *remove {
		err = f.RemovePrerequisite(ctx, *prereq)
	} else {
		err = f.AddPrerequisite(ctx, *prereq)
	}
	if err != nil {
		return failed(f.Alert(), err)
	}
	cli.alert(f.Alert())
	fmt.Fprintf(cli.out, "%s prerequisites: %s\n", f.Course.CourseCode, joinOrNone(f.Course.PrerequisiteCodes))
	return nil
}

func joinOrNone(codes []string) string {
	if len(codes) == 0 {
		return "none"
	}
	return strings.Join(codes, ", ")
}

func courseByCode(list []domain.Course, code string) (domain.Course, bool) {
	for _, c := range list {
		if strings.EqualFold(c.CourseCode, strings.TrimSpace(code)) {
			return c, true
		}
	}
	return domain.Course{}, false
}
