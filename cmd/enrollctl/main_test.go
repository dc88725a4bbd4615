package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"enrollment-console/internal/config"
	"enrollment-console/internal/domain"
	"enrollment-console/internal/httpx"
)

// backend is an in-memory enrollment API.
type backend struct {
	mu       sync.Mutex
	calls    []string
	capacity bool

	students    []domain.Student
	courses     []domain.Course
	enrollments []domain.Enrollment
	schedules   []domain.Schedule
}

func newBackend() *backend {
	return &backend{
		capacity: true,
		students: []domain.Student{
			{ID: 1, StudentID: "S100", FirstName: "Ann", LastName: "Lee", Email: "ann@uni.edu"},
			{ID: 2, StudentID: "S200", FirstName: "Bo", LastName: "Kim", Email: "bo@uni.edu"},
		},
		courses: []domain.Course{
			{ID: 10, CourseCode: "CS101", Name: "Intro to CS", CreditHours: 3, MaxCapacity: 30, CurrentEnrollment: 30},
			{ID: 11, CourseCode: "CS201", Name: "Data Structures", CreditHours: 3, MaxCapacity: 30, PrerequisiteCodes: []string{"CS101"}},
		},
		enrollments: []domain.Enrollment{
			{ID: 100, StudentID: "S100", CourseCode: "CS101", Semester: "Fall 2023", Status: domain.StatusEnrolled},
		},
		schedules: []domain.Schedule{
			{ID: 1, CourseCode: "CS201", DayOfWeek: "WEDNESDAY", StartTime: "13:00:00", EndTime: "14:30:00", Room: "A-1", Semester: "Fall 2023"},
			{ID: 2, CourseCode: "CS101", DayOfWeek: "MONDAY", StartTime: "09:00:00", EndTime: "10:30:00", Room: "B-12", Semester: "Fall 2023"},
		},
	}
}

func (b *backend) called(call string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, c := range b.calls {
		if c == call {
			return true
		}
	}
	return false
}

func (b *backend) handler() http.Handler {
	mux := http.NewServeMux()
	reply := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(v)
	}

	mux.HandleFunc("GET /api/students", func(w http.ResponseWriter, r *http.Request) { reply(w, b.students) })
	mux.HandleFunc("GET /api/students/{id}", func(w http.ResponseWriter, r *http.Request) {
		for _, s := range b.students {
			if r.PathValue("id") == jsonID(s.ID) {
				reply(w, s)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Student not found"}`))
	})
	mux.HandleFunc("GET /api/students/studentId/{sid}", func(w http.ResponseWriter, r *http.Request) {
		for _, s := range b.students {
			if s.StudentID == r.PathValue("sid") {
				reply(w, s)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("POST /api/students", func(w http.ResponseWriter, r *http.Request) {
		var s domain.Student
		json.NewDecoder(r.Body).Decode(&s)
		s.ID = 3
		w.WriteHeader(http.StatusCreated)
		reply(w, s)
	})
	mux.HandleFunc("DELETE /api/students/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	mux.HandleFunc("GET /api/courses", func(w http.ResponseWriter, r *http.Request) { reply(w, b.courses) })
	mux.HandleFunc("GET /api/courses/student/{id}", func(w http.ResponseWriter, r *http.Request) { reply(w, b.courses[:1]) })
	mux.HandleFunc("GET /api/courses/available/student/{id}", func(w http.ResponseWriter, r *http.Request) { reply(w, b.courses[1:]) })

	mux.HandleFunc("GET /api/enrollments", func(w http.ResponseWriter, r *http.Request) { reply(w, b.enrollments) })
	mux.HandleFunc("GET /api/enrollments/student/{id}", func(w http.ResponseWriter, r *http.Request) { reply(w, b.enrollments) })
	mux.HandleFunc("GET /api/enrollments/check-prerequisites", func(w http.ResponseWriter, r *http.Request) { reply(w, true) })
	mux.HandleFunc("GET /api/enrollments/check-time-conflict", func(w http.ResponseWriter, r *http.Request) { reply(w, false) })
	mux.HandleFunc("GET /api/enrollments/check-capacity", func(w http.ResponseWriter, r *http.Request) { reply(w, b.capacity) })
	mux.HandleFunc("POST /api/enrollments/enroll", func(w http.ResponseWriter, r *http.Request) {
		var req domain.EnrollRequest
		json.NewDecoder(r.Body).Decode(&req)
		reply(w, domain.Enrollment{ID: 101, StudentID: req.StudentID, CourseCode: req.CourseCode, Status: domain.StatusEnrolled})
	})
	mux.HandleFunc("POST /api/enrollments/drop", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"status":400,"message":"Student is not enrolled in this course"}`))
	})

	mux.HandleFunc("GET /api/schedules/semester/{semester}", func(w http.ResponseWriter, r *http.Request) {
		var out []domain.Schedule
		for _, s := range b.schedules {
			if s.Semester == r.PathValue("semester") {
				out = append(out, s)
			}
		}
		reply(w, out)
	})

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.calls = append(b.calls, r.Method+" "+r.URL.Path)
		b.mu.Unlock()
		mux.ServeHTTP(w, r)
	})
}

func jsonID(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}

type harness struct {
	api    *backend
	dir    string
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func setup(t *testing.T) *harness {
	t.Helper()
	h := &harness{api: newBackend(), dir: t.TempDir()}
	server := httptest.NewServer(h.api.handler())
	t.Cleanup(server.Close)

	t.Setenv("API_BASE_URL", server.URL+"/api")
	t.Setenv("LOG_LEVEL", "fatal")
	t.Setenv("EXPORT_DIR", filepath.Join(h.dir, "exports"))
	t.Setenv("METRICS_TEXTFILE", "")
	t.Setenv("DEFAULT_SEMESTER", "Fall 2023")
	t.Setenv("SEMESTERS", "Fall 2023,Spring 2024")
	return h
}

func (h *harness) run(t *testing.T, stdin string, args ...string) int {
	t.Helper()
	h.stdout.Reset()
	h.stderr.Reset()
	full := append([]string{"-env", filepath.Join(h.dir, "missing.env")}, args...)
	return realMain(context.Background(), full, strings.NewReader(stdin), &h.stdout, &h.stderr)
}

func TestUsage(t *testing.T) {
	h := setup(t)

	assert.Equal(t, 2, h.run(t, ""))
	assert.Contains(t, h.stdout.String(), "Student Course Enrollment System")
	assert.Contains(t, h.stdout.String(), "enroll -student S -course C")

	assert.Equal(t, 2, h.run(t, "", "bogus"))
}

func TestStudentsSearch(t *testing.T) {
	h := setup(t)

	require.Equal(t, 0, h.run(t, "", "students", "-q", "lee"))
	out := h.stdout.String()
	assert.Contains(t, out, "Students")
	assert.Contains(t, out, "S100")
	assert.NotContains(t, out, "S200")

	require.Equal(t, 0, h.run(t, "", "students", "-q", "zzz"))
	assert.Contains(t, h.stdout.String(), `No students match "zzz"`)
}

func TestCoursesShowCapacity(t *testing.T) {
	h := setup(t)

	require.Equal(t, 0, h.run(t, "", "courses"))
	assert.Contains(t, h.stdout.String(), "30/30 Students (full)")
	assert.Regexp(t, `\s0/30 Students\s`, h.stdout.String())
}

func TestDashboard(t *testing.T) {
	h := setup(t)

	require.Equal(t, 0, h.run(t, "", "dashboard"))
	assert.Contains(t, h.stdout.String(), "Total Students")
	assert.Regexp(t, `Total Courses\s+2`, h.stdout.String())
}

func TestOpenResolvesPaths(t *testing.T) {
	h := setup(t)

	require.Equal(t, 0, h.run(t, "", "open", "/students/1"))
	out := h.stdout.String()
	assert.Contains(t, out, "Student Details")
	assert.Contains(t, out, "Ann Lee")
	assert.Contains(t, out, "Enrollment History")
	assert.True(t, h.api.called("GET /api/courses/student/1"))

	assert.Equal(t, 1, h.run(t, "", "open", "/nope/here"))
	assert.Contains(t, h.stdout.String(), "Page Not Found")
}

func TestStudentDetailServerMessage(t *testing.T) {
	h := setup(t)

	assert.Equal(t, 1, h.run(t, "", "student", "-id", "9"))
	assert.Contains(t, h.stderr.String(), "Student not found")
}

func TestNav(t *testing.T) {
	h := setup(t)

	require.Equal(t, 0, h.run(t, "", "nav", "-path", "/students"))
	assert.Contains(t, h.stdout.String(), "> Students")
	assert.Contains(t, h.stdout.String(), "  Add Student")
}

func TestStudentNewValidatesBeforeSending(t *testing.T) {
	h := setup(t)

	code := h.run(t, "", "student-new", "-student-id", "S300", "-first", "Cy", "-last", "Ng", "-email", "not-an-email", "-phone", "123")
	assert.Equal(t, 1, code)
	assert.Contains(t, h.stdout.String(), "email: Invalid email address")
	assert.Contains(t, h.stdout.String(), "phoneNumber: Phone number must be 10 digits")
	assert.False(t, h.api.called("POST /api/students"))

	code = h.run(t, "", "student-new", "-student-id", "S300", "-first", "Cy", "-last", "Ng", "-email", "cy@uni.edu")
	require.Equal(t, 0, code, h.stderr.String())
	assert.Contains(t, h.stdout.String(), "Student created successfully")
	assert.True(t, h.api.called("POST /api/students"))
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	h := setup(t)

	assert.Equal(t, 1, h.run(t, "", "student-delete", "-id", "1"))
	assert.Contains(t, h.stderr.String(), "pass -yes")
	assert.False(t, h.api.called("DELETE /api/students/1"))

	require.Equal(t, 0, h.run(t, "", "student-delete", "-id", "1", "-yes"))
	assert.Contains(t, h.stdout.String(), "Student deleted successfully")
	assert.True(t, h.api.called("DELETE /api/students/1"))
}

func TestDeletePromptsOnTerminal(t *testing.T) {
	h := setup(t)
	orig := isTerminalFunc
	isTerminalFunc = func(int) bool { return true }
	t.Cleanup(func() { isTerminalFunc = orig })

	cfg, err := config.LoadFile(filepath.Join(h.dir, "missing.env"))
	require.NoError(t, err)
	cfgCLI := func(stdin string) *commandLine {
		cli := newCommandLine(cfg, zap.NewNop(), httpx.New(cfg.API.BaseURL), strings.NewReader(stdin), &h.stdout)
		cli.inFd = 0
		return cli
	}

	h.stdout.Reset()
	require.NoError(t, cfgCLI("n\n").run(context.Background(), []string{"student-delete", "-id", "2"}))
	assert.Contains(t, h.stdout.String(), "Are you sure you want to delete Bo Kim? [y/N]")
	assert.Contains(t, h.stdout.String(), "Cancelled")
	assert.False(t, h.api.called("DELETE /api/students/2"))

	h.stdout.Reset()
	require.NoError(t, cfgCLI("y\n").run(context.Background(), []string{"student-delete", "-id", "2"}))
	assert.True(t, h.api.called("DELETE /api/students/2"))
}

func TestEnroll(t *testing.T) {
	h := setup(t)

	code := h.run(t, "", "enroll", "-student", "S100", "-course", "cs201", "-semester", "Spring 2024")
	require.Equal(t, 0, code, h.stderr.String())
	out := h.stdout.String()
	assert.Contains(t, out, "New Enrollment")
	assert.Regexp(t, `Time Conflicts\s+passed`, out)
	assert.Contains(t, out, "Semester: Spring 2024")
	assert.Contains(t, out, "Student enrolled successfully")
	assert.True(t, h.api.called("GET /api/courses/available/student/1"))
	assert.True(t, h.api.called("POST /api/enrollments/enroll"))
}

func TestEnrollBlockedByCapacity(t *testing.T) {
	h := setup(t)
	h.api.capacity = false

	assert.Equal(t, 1, h.run(t, "", "enroll", "-student", "S100", "-course", "CS201"))
	assert.Regexp(t, `Course Capacity\s+failed`, h.stdout.String())
	assert.False(t, h.api.called("POST /api/enrollments/enroll"))
}

func TestEnrollRejectsUnavailableCourse(t *testing.T) {
	h := setup(t)

	assert.Equal(t, 1, h.run(t, "", "enroll", "-student", "S100", "-course", "CS101"))
	assert.Contains(t, h.stderr.String(), "not available")
	assert.False(t, h.api.called("GET /api/enrollments/check-capacity"))
}

func TestDropShowsServerMessage(t *testing.T) {
	h := setup(t)

	assert.Equal(t, 1, h.run(t, "", "drop", "-student", "S100", "-course", "CS201"))
	assert.Contains(t, h.stderr.String(), "Student is not enrolled in this course")
}

func TestSchedules(t *testing.T) {
	h := setup(t)

	require.Equal(t, 0, h.run(t, "", "schedules"))
	out := h.stdout.String()
	assert.Less(t, strings.Index(out, "MONDAY"), strings.Index(out, "WEDNESDAY"))

	require.Equal(t, 0, h.run(t, "", "schedules", "-semester", "Summer 2024"))
	assert.Contains(t, h.stdout.String(), "No schedules found")
}

func TestExport(t *testing.T) {
	h := setup(t)

	require.Equal(t, 0, h.run(t, "", "export", "-kind", "schedule", "-format", "pdf"))
	b, err := os.ReadFile(filepath.Join(h.dir, "exports", "schedule-fall-2023.pdf"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF-")))

	require.Equal(t, 0, h.run(t, "", "export", "-kind", "roster"))
	b, err = os.ReadFile(filepath.Join(h.dir, "exports", "roster.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(b), "S100,Ann,Lee,ann@uni.edu,,CS101")

	require.Equal(t, 0, h.run(t, "", "export", "-kind", "catalog"))
	b, err = os.ReadFile(filepath.Join(h.dir, "exports", "catalog-fall-2023.xml"))
	require.NoError(t, err)
	assert.Contains(t, string(b), `<Course code="CS201">`)

	assert.Equal(t, 1, h.run(t, "", "export", "-kind", "roster", "-format", "pdf"))
	assert.Equal(t, 1, h.run(t, "", "export", "-kind", "roster", "-sftp"))
	assert.Contains(t, h.stderr.String(), "SFTP_HOST")
}

func TestMetricsTextfile(t *testing.T) {
	h := setup(t)
	p := filepath.Join(h.dir, "enrollctl.prom")
	t.Setenv("METRICS_TEXTFILE", p)

	require.Equal(t, 0, h.run(t, "", "students"))
	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), `enrollment_api_requests_total{endpoint="/students",method="GET",status="200"} 1`)
}
