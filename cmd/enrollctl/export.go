package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"enrollment-console/internal/concurrency"
	"enrollment-console/internal/domain"
	"enrollment-console/internal/export"
	"enrollment-console/internal/screens"
	"enrollment-console/internal/sftpclient"
)

var exportFormats = map[string][]string{
	"roster":   {"csv"},
	"schedule": {"csv", "pdf"},
	"catalog":  {"xml"},
}

func (cli *commandLine) export(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	kind := fs.String("kind", "", "roster, schedule or catalog")
	format := fs.String("format", "", "csv, pdf or xml (default: first supported)")
	semester := fs.String("semester", cli.cfg.Terms.Default, "semester for schedule and catalog reports")
	student := fs.String("student", "", "limit the schedule report to one student id")
	dir := fs.String("dir", cli.cfg.Export.Dir, "output directory")
	upload := fs.Bool("sftp", false, "upload the generated file via SFTP")
	if err := fs.Parse(args); err != nil {
		return errHelp
	}

	formats, ok := exportFormats[*kind]
	if !ok {
		fs.Usage()
		return errHelp
	}
	if *format == "" {
		*format = formats[0]
	}
	if !contains(formats, *format) {
		return fmt.Errorf("export: %s reports support %s, not %s", *kind, strings.Join(formats, ", "), *format)
	}

	var (
		render func(io.Writer) error
		label  string
		err    error
	)
	switch *kind {
	case "roster":
		render, err = cli.rosterReport(ctx)
	case "schedule":
		label = strings.TrimSpace(*student + " " + *semester)
		render, err = cli.scheduleReport(ctx, *semester, *student, *format)
	case "catalog":
		label = *semester
		render, err = cli.catalogReport(ctx, *semester)
	}
	if err != nil {
		return err
	}

	p, err := export.Save(*dir, export.FileName(*kind, label, *format), render)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Wrote %s\n", p)

	if *upload {
		return cli.upload(ctx, p)
	}
	return nil
}

func (cli *commandLine) rosterReport(ctx context.Context) (func(io.Writer) error, error) {
	var (
		students    []domain.Student
		enrollments []domain.Enrollment
	)
	errs := concurrency.All(ctx,
		func(ctx context.Context) (err error) {
			students, err = cli.students.List(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			enrollments, err = cli.enrollments.List(ctx)
			return err
		},
	)
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("export: roster: %w", err)
	}

	roster := export.BuildRoster(students, enrollments)
	return func(w io.Writer) error { return export.WriteRosterCSV(w, roster) }, nil
}

func (cli *commandLine) scheduleReport(ctx context.Context, semester, studentID, format string) (func(io.Writer) error, error) {
	v := screens.NewScheduleView(cli.schedules, semester)
	v.StudentID = studentID
	if err := v.Load(ctx); err != nil {
		return nil, failed(v.Alert(), err)
	}
	rows := v.Rows()

	if format == "pdf" {
		title := "Schedule " + semester
		if studentID != "" {
			title = "Schedule " + studentID + " " + semester
		}
		return func(w io.Writer) error { return export.WriteSchedulePDF(w, title, rows) }, nil
	}
	return func(w io.Writer) error { return export.WriteScheduleCSV(w, rows) }, nil
}

func (cli *commandLine) catalogReport(ctx context.Context, semester string) (func(io.Writer) error, error) {
	var (
		courses   []domain.Course
		schedules []domain.Schedule
	)
	errs := concurrency.All(ctx,
		func(ctx context.Context) (err error) {
			courses, err = cli.courses.List(ctx)
			return err
		},
		func(ctx context.Context) (err error) {
			if semester == "" {
				schedules, err = cli.schedules.List(ctx)
			} else {
				schedules, err = cli.schedules.ListBySemester(ctx, semester)
			}
			return err
		},
	)
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("export: catalog: %w", err)
	}
	return func(w io.Writer) error { return export.WriteCatalogXML(w, semester, courses, schedules) }, nil
}

// upload sends a report via SFTP, prompting for the password on a terminal
// when none is configured.
func (cli *commandLine) upload(ctx context.Context, localPath string) error {
	sc := cli.cfg.SFTP
	if !sc.Enabled() {
		return fmt.Errorf("sftp: set SFTP_HOST and SFTP_USER to upload")
	}
	if sc.Pass == "" && cli.inFd >= 0 && isTerminalFunc(cli.inFd) {
		fmt.Fprintf(cli.out, "SFTP password for %s@%s: ", sc.User, sc.Host)
		pwd, err := readPasswordFunc(cli.inFd)
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		sc.Pass = string(pwd)
	}

	name := filepath.Base(localPath)
	if err := sftpclient.UploadFile(ctx, sc, localPath, name, cli.logger); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Uploaded %s to %s:%s\n", name, sc.Host, sc.Dir)
	return nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
