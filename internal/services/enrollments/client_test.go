package enrollments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enrollment-console/internal/domain"
	"enrollment-console/internal/httpx"
)

func TestChecksSendQueryAndDecodeBooleans(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		switch r.URL.Path {
		case "/api/enrollments/check-prerequisites":
			assert.Equal(t, "S100", q.Get("studentId"))
			assert.Equal(t, "CS101", q.Get("courseCode"))
			w.Write([]byte(`true`))
		case "/api/enrollments/check-time-conflict":
			assert.Equal(t, "Fall 2023", q.Get("semester"))
			w.Write([]byte(`false`))
		case "/api/enrollments/check-capacity":
			assert.Equal(t, "CS101", q.Get("courseCode"))
			assert.Empty(t, q.Get("studentId"))
			w.Write([]byte(`true`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	c := New(httpx.New(server.URL + "/api"))
	ctx := context.Background()

	ok, err := c.CheckPrerequisites(ctx, "S100", "CS101")
	require.NoError(t, err)
	assert.True(t, ok)

	conflict, err := c.CheckTimeConflict(ctx, "S100", "CS101", "Fall 2023")
	require.NoError(t, err)
	assert.False(t, conflict)

	room, err := c.CheckCapacity(ctx, "CS101")
	require.NoError(t, err)
	assert.True(t, room)
}

func TestEnrollAndDropBodies(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.Method+" "+r.URL.Path)
		var req domain.EnrollRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, domain.EnrollRequest{StudentID: "S100", CourseCode: "CS101"}, req)

		status := "ENROLLED"
		if r.URL.Path == "/enrollments/drop" {
			status = "DROPPED"
		}
		w.Write([]byte(`{"id":9,"studentId":"S100","courseCode":"CS101","enrollmentDate":"2023-09-01T10:00:00","status":"` + status + `"}`))
	}))
	defer server.Close()

	c := New(httpx.New(server.URL))
	e, err := c.Enroll(context.Background(), "S100", "CS101")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusEnrolled, e.Status)

	d, err := c.Drop(context.Background(), "S100", "CS101")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDropped, d.Status)

	assert.Equal(t, []string{"POST /enrollments/enroll", "POST /enrollments/drop"}, paths)
}

func TestListEndpoints(t *testing.T) {
	var got []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.URL.Path)
		if r.URL.Path == "/enrollments/3" {
			w.Write([]byte(`{"id":3}`))
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := New(httpx.New(server.URL))
	ctx := context.Background()
	_, err := c.List(ctx)
	require.NoError(t, err)
	_, err = c.Get(ctx, 3)
	require.NoError(t, err)
	_, err = c.ListByStudent(ctx, 4)
	require.NoError(t, err)
	_, err = c.ListByCourse(ctx, 5)
	require.NoError(t, err)

	assert.Equal(t, []string{"/enrollments", "/enrollments/3", "/enrollments/student/4", "/enrollments/course/5"}, got)
}

func TestEnrollFailureSurfacesServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Student is already enrolled in this course"}`))
	}))
	defer server.Close()

	_, err := New(httpx.New(server.URL)).Enroll(context.Background(), "S100", "CS101")
	require.Error(t, err)
	assert.Equal(t, "Student is already enrolled in this course", httpx.Message(err, "Failed to enroll student"))
}
