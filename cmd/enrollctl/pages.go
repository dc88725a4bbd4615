package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"enrollment-console/internal/domain"
	"enrollment-console/internal/screens"
	"enrollment-console/internal/shell"
)

type pageOpts struct {
	term      string
	semester  string
	studentID string
}

// open renders the page path resolves to.
func (cli *commandLine) open(ctx context.Context, path string, opts pageOpts) error {
	route, params := shell.Resolve(path)
	cli.title(route.Title)

	switch route.Page {
	case shell.PageDashboard:
		return cli.dashboard(ctx)
	case shell.PageStudents:
		return cli.studentList(ctx, opts.term)
	case shell.PageCourses:
		return cli.courseList(ctx, opts.term)
	case shell.PageEnrollments:
		return cli.enrollmentList(ctx, opts.term)
	case shell.PageSchedules:
		semester := opts.semester
		if semester == "" {
			semester = cli.cfg.Terms.Default
		}
		return cli.scheduleView(ctx, semester, opts.studentID)
	case shell.PageStudentDetail, shell.PageCourseDetail, shell.PageStudentEdit, shell.PageCourseEdit:
		id, err := params.ID()
		if err != nil {
			return err
		}
		switch route.Page {
		case shell.PageStudentDetail:
			return cli.studentDetail(ctx, id)
		case shell.PageCourseDetail:
			return cli.courseDetail(ctx, id)
		case shell.PageStudentEdit:
			return cli.studentForm(ctx, true, []string{"-id", fmt.Sprint(id), "-dry-run"})
		default:
			return cli.courseForm(ctx, true, []string{"-id", fmt.Sprint(id), "-dry-run"})
		}
	case shell.PageStudentNew, shell.PageCourseNew, shell.PageEnrollmentNew:
		fmt.Fprintf(cli.out, "Use the %s command to fill in this form.\n", formCommand[route.Page])
		return nil
	default:
		fmt.Fprintf(cli.out, "No page at %s\n", path)
		return fmt.Errorf("page not found: %s", path)
	}
}

var formCommand = map[shell.Page]string{
	shell.PageStudentNew:    "student-new",
	shell.PageCourseNew:     "course-new",
	shell.PageEnrollmentNew: "enroll",
}

func (cli *commandLine) nav(args []string) error {
	fs := flag.NewFlagSet("nav", flag.ContinueOnError)
	path := fs.String("path", "/", "current path")
	if err := fs.Parse(args); err != nil {
		return errHelp
	}
	for _, item := range shell.Nav {
		mark := " "
		if item.Selected(*path) {
			mark = ">"
		}
		fmt.Fprintf(cli.out, "%s %-16s %s\n", mark, item.Text, item.Path)
	}
	return nil
}

func (cli *commandLine) dashboard(ctx context.Context) error {
	d := screens.NewDashboard(cli.students, cli.courses, cli.enrollments)
	if err := d.Load(ctx); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	s := d.Stats()
	tw := cli.table()
	fmt.Fprintf(tw, "Total Students\t%d\n", s.Students)
	fmt.Fprintf(tw, "Total Courses\t%d\n", s.Courses)
	fmt.Fprintf(tw, "Total Enrollments\t%d\n", s.Enrollments)
	return tw.Flush()
}

func (cli *commandLine) studentList(ctx context.Context, term string) error {
	l := screens.NewStudentList(cli.students)
	if err := l.Load(ctx); err != nil {
		return failed(l.Alert(), err)
	}
	l.Search(term)
	if msg, empty := l.EmptyState(); empty {
		fmt.Fprintln(cli.out, msg)
		return nil
	}
	tw := cli.table()
	fmt.Fprintln(tw, "ID\tSTUDENT ID\tNAME\tEMAIL\tPHONE")
	for _, s := range l.Rows() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", s.ID, s.StudentID, s.FullName(), s.Email, s.PhoneNumber)
	}
	return tw.Flush()
}

func (cli *commandLine) courseList(ctx context.Context, term string) error {
	l := screens.NewCourseList(cli.courses)
	if err := l.Load(ctx); err != nil {
		return failed(l.Alert(), err)
	}
	l.Search(term)
	if msg, empty := l.EmptyState(); empty {
		fmt.Fprintln(cli.out, msg)
		return nil
	}
	tw := cli.table()
	fmt.Fprintln(tw, "ID\tCODE\tNAME\tCREDITS\tCAPACITY\tPREREQUISITES")
	for _, c := range l.Rows() {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%s\t%s\n",
			c.ID, c.CourseCode, c.Name, c.CreditHours, capacity(c), strings.Join(c.PrerequisiteCodes, ", "))
	}
	return tw.Flush()
}

func (cli *commandLine) enrollmentList(ctx context.Context, term string) error {
	l := screens.NewEnrollmentList(cli.enrollments)
	if err := l.Load(ctx); err != nil {
		return failed(l.Alert(), err)
	}
	l.Search(term)
	if msg, empty := l.EmptyState(); empty {
		fmt.Fprintln(cli.out, msg)
		return nil
	}
	cli.enrollmentTable(l.Rows(), true)
	return nil
}

func (cli *commandLine) scheduleView(ctx context.Context, semester, studentID string) error {
	v := screens.NewScheduleView(cli.schedules, semester)
	v.StudentID = studentID
	if err := v.Load(ctx); err != nil {
		return failed(v.Alert(), err)
	}
	if msg, empty := v.EmptyState(); empty {
		fmt.Fprintln(cli.out, msg)
		return nil
	}
	cli.scheduleTable(v.Rows())
	return nil
}

func (cli *commandLine) studentDetail(ctx context.Context, id int64) error {
	d := screens.NewStudentDetail(cli.students, cli.courses, cli.enrollments, id)
	if err := d.Load(ctx); err != nil {
		return failed(d.Alert(), err)
	}
	cli.printStudent(*d.Student)

	cli.section("Enrolled Courses")
	if msg, empty := d.CoursesEmpty(); empty {
		fmt.Fprintln(cli.out, msg)
	} else {
		tw := cli.table()
		fmt.Fprintln(tw, "CODE\tNAME\tCREDITS")
		for _, c := range d.Courses {
			fmt.Fprintf(tw, "%s\t%s\t%d\n", c.CourseCode, c.Name, c.CreditHours)
		}
		tw.Flush()
	}

	cli.section("Enrollment History")
	if msg, empty := d.EnrollmentsEmpty(); empty {
		fmt.Fprintln(cli.out, msg)
		return nil
	}
	cli.enrollmentTable(d.Enrollments, false)
	return nil
}

func (cli *commandLine) courseDetail(ctx context.Context, id int64) error {
	d := screens.NewCourseDetail(cli.courses, cli.enrollments, cli.schedules, id)
	if err := d.Load(ctx); err != nil {
		return failed(d.Alert(), err)
	}
	cli.printCourse(*d.Course)

	cli.section("Enrolled Students")
	if roster := d.Roster(); len(roster) == 0 {
		fmt.Fprintln(cli.out, "No students enrolled")
	} else {
		cli.enrollmentTable(roster, false)
	}

	cli.section("Schedule")
	if len(d.Schedules) == 0 {
		fmt.Fprintln(cli.out, "No schedules found")
		return nil
	}
	cli.scheduleTable(d.Schedules)
	return nil
}

func capacity(c domain.Course) string {
	if c.CapacityTone() == domain.ToneError {
		return c.CapacityLabel() + " (full)"
	}
	return c.CapacityLabel()
}
