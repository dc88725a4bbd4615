package students

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

type seen struct {
	method string
	path   string
	body   map[string]any
}

func newServer(t *testing.T, status int, response string, got *seen) *Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.method = r.Method
		got.path = r.URL.EscapedPath()
		got.body = nil
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&got.body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(response))
	}))
	t.Cleanup(server.Close)
	return New(httpx.New(server.URL + "/api"))
}

func TestEndpoints(t *testing.T) {
	ctx := context.Background()
	student := domain.Student{StudentID: "S100", FirstName: "Ann", LastName: "Lee", Email: "ann@x.edu"}

	testCases := []struct {
		name   string
		call   func(c *Client) error
		method string
		path   string
	}{
		{"list", func(c *Client) error { _, err := c.List(ctx); return err }, http.MethodGet, "/api/students"},
		{"get", func(c *Client) error { _, err := c.Get(ctx, 5); return err }, http.MethodGet, "/api/students/5"},
		{"by student id", func(c *Client) error { _, err := c.GetByStudentID(ctx, "S100"); return err }, http.MethodGet, "/api/students/studentId/S100"},
		{"create", func(c *Client) error { _, err := c.Create(ctx, student); return err }, http.MethodPost, "/api/students"},
		{"update", func(c *Client) error { _, err := c.Update(ctx, 5, student); return err }, http.MethodPut, "/api/students/5"},
		{"delete", func(c *Client) error { return c.Delete(ctx, 5) }, http.MethodDelete, "/api/students/5"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var got seen
			response := `{"id":5,"studentId":"S100"}`
			if tc.name == "list" {
				response = `[{"id":5,"studentId":"S100"}]`
			}
			c := newServer(t, http.StatusOK, response, &got)
			require.NoError(t, tc.call(c))
			assert.Equal(t, tc.method, got.method)
			assert.Equal(t, tc.path, got.path)
		})
	}
}

func TestCreatePassesInputThrough(t *testing.T) {
	var got seen
	c := newServer(t, http.StatusCreated, `{"id":11,"studentId":"S100","firstName":"Ann","lastName":"Lee","email":"ann@x.edu"}`, &got)

	created, err := c.Create(context.Background(), domain.Student{StudentID: "S100", FirstName: "Ann", LastName: "Lee", Email: "ann@x.edu"})
	require.NoError(t, err)

	assert.Equal(t, int64(11), created.ID)
	assert.Equal(t, "S100", got.body["studentId"])
	assert.Equal(t, "ann@x.edu", got.body["email"])
	assert.NotContains(t, got.body, "id")
	assert.NotContains(t, got.body, "phoneNumber")
}

func TestServerErrorKeepsPayload(t *testing.T) {
	var got seen
	c := newServer(t, http.StatusConflict, `{"message":"Student ID already exists"}`, &got)

	_, err := c.Create(context.Background(), domain.Student{StudentID: "S100"})
	require.Error(t, err)

	var herr *httpx.HTTPError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, http.StatusConflict, herr.StatusCode)
	assert.Equal(t, "Student ID already exists", httpx.Message(err, "Failed to save student"))
}
