package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"enrollment-console/internal/eligibility"
	"enrollment-console/internal/screens"
	"enrollment-console/internal/shell"
)

// enroll drives the enrollment wizard from start to finish: select the
// student, select an available course and semester, wait for the three
// checks and enroll only when all of them passed.
func (cli *commandLine) enroll(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("enroll", flag.ContinueOnError)
	studentID := fs.String("student", "", "student id, e.g. S100")
	code := fs.String("course", "", "course code")
	semester := fs.String("semester", "", "semester (default from config)")
	if err := fs.Parse(args); err != nil {
		return errHelp
	}
	if *studentID == "" || *code == "" {
		fs.Usage()
		return errHelp
	}

	route, _ := shell.Resolve("/enrollments/new")
	cli.title(route.Title)

	w := eligibility.New(cli.students, cli.courses, cli.enrollments,
		eligibility.WithLogger(cli.logger),
		eligibility.WithSemesters(cli.cfg.Terms.Default, cli.cfg.Terms.Semesters),
	)
	if err := w.Load(ctx); err != nil {
		return failed(w.Alert(), err)
	}

	student, ok := w.FindStudent(*studentID)
	if !ok {
		return fmt.Errorf("student %s: %w", *studentID, screens.ErrNotFound)
	}
	w.SelectStudent(student)
	if err := w.Next(ctx); err != nil {
		return failed(w.Alert(), err)
	}

	sel, ok := w.State().(eligibility.SelectCourse)
	if !ok {
		return eligibility.ErrWrongStage
	}
	course, ok := courseByCode(sel.Available, *code)
	if !ok {
		return fmt.Errorf("%s for %s: %w", *code, student.StudentID, eligibility.ErrNotAvailable)
	}
	if err := w.SelectCourse(course); err != nil {
		return err
	}
	if *semester != "" {
		if err := w.SetSemester(*semester); err != nil {
			return fmt.Errorf("%s: %w", *semester, err)
		}
	}
	if err := w.Next(ctx); err != nil {
		return failed(w.Alert(), err)
	}
	w.Wait()

	st, _ := w.State().(eligibility.Confirm)
	fmt.Fprintf(cli.out, "Student:  %s\n", student.Label())
	fmt.Fprintf(cli.out, "Course:   %s\n", course.Label())
	fmt.Fprintf(cli.out, "Semester: %s\n", st.Semester)

	checks := w.Checks()
	tw := cli.table()
	fmt.Fprintf(tw, "Prerequisites\t%s\n", checks.Prerequisites)
	fmt.Fprintf(tw, "Time Conflicts\t%s\n", checks.TimeConflict)
	fmt.Fprintf(tw, "Course Capacity\t%s\n", checks.Capacity)
	tw.Flush()

	if a := w.Alert(); a.Open {
		return failed(a, errors.New("eligibility checks did not complete"))
	}
	if !checks.CanEnroll() {
		return eligibility.ErrNotEligible
	}

	if err := w.Enroll(ctx); err != nil {
		return failed(w.Alert(), err)
	}
	cli.alert(w.Alert())
	return nil
}

// drop drops a course from the student's detail page.
func (cli *commandLine) drop(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("drop", flag.ContinueOnError)
	studentID := fs.String("student", "", "student id, e.g. S100")
	code := fs.String("course", "", "course code")
	if err := fs.Parse(args); err != nil {
		return errHelp
	}
	if *studentID == "" || *code == "" {
		fs.Usage()
		return errHelp
	}

	s, err := cli.students.GetByStudentID(ctx, *studentID)
	if err != nil {
		return fmt.Errorf("load student %s: %w", *studentID, err)
	}

	d := screens.NewStudentDetail(cli.students, cli.courses, cli.enrollments, s.ID)
	if err := d.Load(ctx); err != nil {
		return failed(d.Alert(), err)
	}
	if err := d.Drop(ctx, *code); err != nil {
		return failed(d.Alert(), err)
	}
	cli.alert(d.Alert())
	return nil
}

// confirm asks a yes/no question on an interactive terminal. Elsewhere yes
// must already be given.
func (cli *commandLine) confirm(title, message string, yes bool) (bool, error) {
	if yes {
		return true, nil
	}
	if cli.inFd < 0 || !isTerminalFunc(cli.inFd) {
		return false, errNeedYes
	}
	fmt.Fprintf(cli.out, "%s\n%s [y/N]: ", title, message)
	line, err := bufio.NewReader(cli.in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
