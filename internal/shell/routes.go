// Package shell maps paths to pages and describes the navigation chrome.
package shell

import (
	"fmt"
	"strconv"
	"strings"
)

const AppTitle = "Student Course Enrollment System"

type Page int

const (
	PageNotFound Page = iota
	PageDashboard
	PageStudents
	PageStudentNew
	PageStudentEdit
	PageStudentDetail
	PageCourses
	PageCourseNew
	PageCourseEdit
	PageCourseDetail
	PageEnrollments
	PageEnrollmentNew
	PageSchedules
)

type Route struct {
	Pattern string
	Page    Page
	Title   string
}

// Routes is ordered so static segments win over parameters.
var Routes = []Route{
	{"/", PageDashboard, "Dashboard"},
	{"/students", PageStudents, "Students"},
	{"/students/new", PageStudentNew, "Add New Student"},
	{"/students/edit/:id", PageStudentEdit, "Edit Student"},
	{"/students/:id", PageStudentDetail, "Student Details"},
	{"/courses", PageCourses, "Courses"},
	{"/courses/new", PageCourseNew, "Add New Course"},
	{"/courses/edit/:id", PageCourseEdit, "Edit Course"},
	{"/courses/:id", PageCourseDetail, "Course Details"},
	{"/enrollments", PageEnrollments, "Enrollments"},
	{"/enrollments/new", PageEnrollmentNew, "New Enrollment"},
	{"/schedules", PageSchedules, "Schedules"},
}

var notFound = Route{Pattern: "*", Page: PageNotFound, Title: "Page Not Found"}

type Params map[string]string

// ID parses the :id parameter.
func (p Params) ID() (int64, error) {
	raw, ok := p["id"]
	if !ok {
		return 0, fmt.Errorf("shell: route has no id")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("shell: invalid id %q", raw)
	}
	return id, nil
}

// Resolve finds the route for path. Unknown paths resolve to the not-found page.
func Resolve(path string) (Route, Params) {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	got := split(path)
	for _, r := range Routes {
		if params, ok := match(split(r.Pattern), got); ok {
			return r, params
		}
	}
	return notFound, Params{}
}

func split(path string) []string {
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func match(pattern, path []string) (Params, bool) {
	if len(pattern) != len(path) {
		return nil, false
	}
	params := Params{}
	for i, seg := range pattern {
		if strings.HasPrefix(seg, ":") {
			if path[i] == "" {
				return nil, false
			}
			params[seg[1:]] = path[i]
			continue
		}
		if seg != path[i] {
			return nil, false
		}
	}
	return params, true
}

// Path fills a pattern's parameters in order.
func Path(pattern string, params ...any) string {
	segs := split(pattern)
	n := 0
	for i, seg := range segs {
		if strings.HasPrefix(seg, ":") && n < len(params) {
			segs[i] = fmt.Sprint(params[n])
			n++
		}
	}
	return "/" + strings.Join(segs, "/")
}
