package shell

import "fmt"

type NavItem struct {
	Text string
	Path string
}

// Nav is the side drawer, top to bottom.
var Nav = []NavItem{
	{"Dashboard", "/"},
	{"Students", "/students"},
	{"Add Student", "/students/new"},
	{"Courses", "/courses"},
	{"Add Course", "/courses/new"},
	{"Enrollments", "/enrollments"},
	{"New Enrollment", "/enrollments/new"},
	{"Schedules", "/schedules"},
}

// Selected highlights only the exact path.
func (n NavItem) Selected(path string) bool {
	return n.Path == path
}

func Footer(year int) string {
	return fmt.Sprintf("© %d %s", year, AppTitle)
}
