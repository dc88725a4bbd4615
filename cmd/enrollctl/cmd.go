package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"enrollment-console/internal/config"
	"enrollment-console/internal/httpx"
	"enrollment-console/internal/reqstate"
	"enrollment-console/internal/services/courses"
	"enrollment-console/internal/services/enrollments"
	"enrollment-console/internal/services/schedules"
	"enrollment-console/internal/services/students"
	"enrollment-console/internal/shell"
)

var (
	isTerminalFunc   = term.IsTerminal   // mockable
	readPasswordFunc = term.ReadPassword // mockable

	errHelp    = errors.New("help provided")
	errNeedYes = errors.New("stdin is not a terminal: pass -yes to confirm")
)

type commandLine struct {
	cfg    *config.Config
	logger *zap.Logger
	in     io.Reader
	inFd   int
	out    io.Writer

	students    *students.Client
	courses     *courses.Client
	enrollments *enrollments.Client
	schedules   *schedules.Client
}

func newCommandLine(cfg *config.Config, logger *zap.Logger, api *httpx.Client, in io.Reader, out io.Writer) *commandLine {
	cli := &commandLine{
		cfg:         cfg,
		logger:      logger,
		in:          in,
		inFd:        -1,
		out:         out,
		students:    students.New(api),
		courses:     courses.New(api),
		enrollments: enrollments.New(api),
		schedules:   schedules.New(api),
	}
	if f, ok := in.(*os.File); ok {
		cli.inFd = int(f.Fd())
	}
	return cli
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, shell.AppTitle)
	fmt.Fprintln(cli.out, "Usage: enrollctl [-env FILE] COMMAND [flags]")
	fmt.Fprintln(cli.out, "")
	fmt.Fprintln(cli.out, "  dashboard                                     counts of students, courses and enrollments")
	fmt.Fprintln(cli.out, "  open PATH                                     show any page by path, e.g. /students/3")
	fmt.Fprintln(cli.out, "  nav [-path PATH]                              navigation menu")
	fmt.Fprintln(cli.out, "  students [-q TERM]                            list and search students")
	fmt.Fprintln(cli.out, "  student -id N                                 student details")
	fmt.Fprintln(cli.out, "  student-new -student-id ID -first F ...       add a student")
	fmt.Fprintln(cli.out, "  student-edit -id N [-first F ...]             edit a student")
	fmt.Fprintln(cli.out, "  student-delete -id N [-yes]                   delete a student")
	fmt.Fprintln(cli.out, "  courses [-q TERM]                             list and search courses")
	fmt.Fprintln(cli.out, "  course -id N                                  course details")
	fmt.Fprintln(cli.out, "  course-new -code C -name N ...                add a course")
	fmt.Fprintln(cli.out, "  course-edit -id N [-name N ...]               edit a course")
	fmt.Fprintln(cli.out, "  course-delete -id N [-yes]                    delete a course")
	fmt.Fprintln(cli.out, "  prereq -course C -prereq P [-remove]          add or remove a prerequisite")
	fmt.Fprintln(cli.out, "  enrollments [-q TERM]                         list and search enrollments")
	fmt.Fprintln(cli.out, "  enroll -student S -course C [-semester T]     check eligibility and enroll")
	fmt.Fprintln(cli.out, "  drop -student S -course C                     drop a course")
	fmt.Fprintln(cli.out, "  schedules [-semester T] [-student S]          weekly meetings")
	fmt.Fprintln(cli.out, "  export -kind roster|schedule|catalog [-format csv|pdf|xml] [-semester T] [-sftp]")
	fmt.Fprintln(cli.out, "")
	fmt.Fprintln(cli.out, shell.Footer(time.Now().Year()))
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		cli.printUsage()
		return errHelp
	}

	name, rest := args[0], args[1:]
	cli.logger.Debug("command", zap.String("name", name), zap.Strings("args", rest))

	switch name {
	case "dashboard":
		return cli.open(ctx, "/", pageOpts{})
	case "open":
		if len(rest) != 1 {
			cli.printUsage()
			return errHelp
		}
		return cli.open(ctx, rest[0], pageOpts{})
	case "nav":
		return cli.nav(rest)
	case "students", "courses", "enrollments":
		fs := flag.NewFlagSet(name, flag.ContinueOnError)
		q := fs.String("q", "", "search term")
		if err := fs.Parse(rest); err != nil {
			return errHelp
		}
		return cli.open(ctx, "/"+name, pageOpts{term: *q})
	case "student", "course":
		fs := flag.NewFlagSet(name, flag.ContinueOnError)
		id := fs.Int64("id", 0, "internal id")
		if err := fs.Parse(rest); err != nil {
			return errHelp
		}
		if *id <= 0 {
			fs.Usage()
			return errHelp
		}
		return cli.open(ctx, shell.Path("/"+name+"s/:id", *id), pageOpts{})
	case "schedules":
		fs := flag.NewFlagSet(name, flag.ContinueOnError)
		semester := fs.String("semester", cli.cfg.Terms.Default, "semester")
		student := fs.String("student", "", "student id, e.g. S100")
		if err := fs.Parse(rest); err != nil {
			return errHelp
		}
		return cli.open(ctx, "/schedules", pageOpts{semester: *semester, studentID: *student})
	case "student-new", "student-edit":
		return cli.studentForm(ctx, name == "student-edit", rest)
	case "course-new", "course-edit":
		return cli.courseForm(ctx, name == "course-edit", rest)
	case "student-delete", "course-delete":
		return cli.delete(ctx, strings.TrimSuffix(name, "-delete"), rest)
	case "prereq":
		return cli.prereq(ctx, rest)
	case "enroll":
		return cli.enroll(ctx, rest)
	case "drop":
		return cli.drop(ctx, rest)
	case "export":
		return cli.export(ctx, rest)
	default:
		cli.printUsage()
		return errHelp
	}
}

// failed turns a screen's alert into the command's error.
func failed(a reqstate.Alert, err error) error {
	if a.Open && a.Message != "" {
		return fmt.Errorf("%s: %w", a.Message, err)
	}
	return err
}
