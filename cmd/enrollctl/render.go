package main

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"enrollment-console/internal/domain"
	"enrollment-console/internal/reqstate"
	"enrollment-console/internal/validation"
)

func (cli *commandLine) title(t string) {
	fmt.Fprintln(cli.out, t)
	fmt.Fprintln(cli.out, strings.Repeat("=", len(t)))
}

func (cli *commandLine) section(t string) {
	fmt.Fprintln(cli.out)
	fmt.Fprintln(cli.out, t)
	fmt.Fprintln(cli.out, strings.Repeat("-", len(t)))
}

func (cli *commandLine) table() *tabwriter.Writer {
	return tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
}

func (cli *commandLine) alert(a reqstate.Alert) {
	if !a.Open {
		return
	}
	fmt.Fprintf(cli.out, "[%s] %s\n", a.Severity, a.Message)
}

// formErrors prints field errors in a stable order.
func (cli *commandLine) formErrors(errs validation.Errors) {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		fmt.Fprintf(cli.out, "  %s: %s\n", f, errs[f])
	}
}

func (cli *commandLine) enrollmentTable(rows []domain.Enrollment, withID bool) {
	tw := cli.table()
	if withID {
		fmt.Fprint(tw, "ID\t")
	}
	fmt.Fprintln(tw, "STUDENT\tCOURSE\tSEMESTER\tDATE\tSTATUS")
	for _, e := range rows {
		if withID {
			fmt.Fprintf(tw, "%d\t", e.ID)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.StudentID, e.CourseCode, e.Semester, e.EnrollmentDate.Date(), e.Status)
	}
	tw.Flush()
}

func (cli *commandLine) scheduleTable(rows []domain.Schedule) {
	tw := cli.table()
	fmt.Fprintln(tw, "DAY\tTIME\tCOURSE\tROOM\tSEMESTER")
	for _, s := range rows {
		start, end := s.Times()
		fmt.Fprintf(tw, "%s\t%s-%s\t%s\t%s\t%s\n", strings.ToUpper(s.DayOfWeek), start, end, s.CourseCode, s.Room, s.Semester)
	}
	tw.Flush()
}

func (cli *commandLine) printStudent(s domain.Student) {
	tw := cli.table()
	fmt.Fprintf(tw, "Student ID\t%s\n", s.StudentID)
	fmt.Fprintf(tw, "Name\t%s\n", s.FullName())
	fmt.Fprintf(tw, "Email\t%s\n", s.Email)
	fmt.Fprintf(tw, "Phone\t%s\n", s.PhoneNumber)
	tw.Flush()
}

func (cli *commandLine) printCourse(c domain.Course) {
	tw := cli.table()
	fmt.Fprintf(tw, "Course Code\t%s\n", c.CourseCode)
	fmt.Fprintf(tw, "Name\t%s\n", c.Name)
	fmt.Fprintf(tw, "Description\t%s\n", c.Description)
	fmt.Fprintf(tw, "Credit Hours\t%d\n", c.CreditHours)
	fmt.Fprintf(tw, "Capacity\t%s\n", capacity(c))
	fmt.Fprintf(tw, "Prerequisites\t%s\n", strings.Join(c.PrerequisiteCodes, ", "))
	tw.Flush()
}

func (cli *commandLine) printCourseInput(c domain.CourseInput) {
	tw := cli.table()
	fmt.Fprintf(tw, "Course Code\t%s\n", c.CourseCode)
	fmt.Fprintf(tw, "Name\t%s\n", c.Name)
	fmt.Fprintf(tw, "Description\t%s\n", c.Description)
	fmt.Fprintf(tw, "Credit Hours\t%d\n", c.CreditHours)
	fmt.Fprintf(tw, "Maximum Capacity\t%d\n", c.MaxCapacity)
	fmt.Fprintf(tw, "Prerequisites\t%s\n", strings.Join(c.PrerequisiteCodes, ", "))
	tw.Flush()
}
