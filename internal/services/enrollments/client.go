// Package enrollments maps enrollment operations and the three eligibility
// checks to single API calls.
package enrollments

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"enrollment-console/internal/domain"
	"enrollment-console/internal/httpx"
)

type Client struct {
	API *httpx.Client
}

func New(api *httpx.Client) *Client {
	return &Client{API: api}
}

func (c *Client) List(ctx context.Context) ([]domain.Enrollment, error) {
	return c.list(ctx, httpx.Route("/enrollments"), "list")
}

func (c *Client) Get(ctx context.Context, id int64) (*domain.Enrollment, error) {
	var out domain.Enrollment
	if err := c.API.Get(ctx, httpx.Route("/enrollments/{id}", strconv.FormatInt(id, 10)), nil, &out); err != nil {
		return nil, fmt.Errorf("enrollments: get %d: %w", id, err)
	}
	return &out, nil
}

// ListByStudent takes the student's internal id.
func (c *Client) ListByStudent(ctx context.Context, studentID int64) ([]domain.Enrollment, error) {
	return c.list(ctx, httpx.Route("/enrollments/student/{studentId}", strconv.FormatInt(studentID, 10)), "list by student")
}

func (c *Client) ListByCourse(ctx context.Context, courseID int64) ([]domain.Enrollment, error) {
	return c.list(ctx, httpx.Route("/enrollments/course/{courseId}", strconv.FormatInt(courseID, 10)), "list by course")
}

// Enroll takes the external student id and the course code.
func (c *Client) Enroll(ctx context.Context, studentID, courseCode string) (*domain.Enrollment, error) {
	var out domain.Enrollment
	req := domain.EnrollRequest{StudentID: studentID, CourseCode: courseCode}
	if err := c.API.Post(ctx, httpx.Route("/enrollments/enroll"), req, &out); err != nil {
		return nil, fmt.Errorf("enrollments: enroll %s in %s: %w", studentID, courseCode, err)
	}
	return &out, nil
}

func (c *Client) Drop(ctx context.Context, studentID, courseCode string) (*domain.Enrollment, error) {
	var out domain.Enrollment
	req := domain.EnrollRequest{StudentID: studentID, CourseCode: courseCode}
	if err := c.API.Post(ctx, httpx.Route("/enrollments/drop"), req, &out); err != nil {
		return nil, fmt.Errorf("enrollments: drop %s from %s: %w", studentID, courseCode, err)
	}
	return &out, nil
}

// CheckPrerequisites reports whether the student meets the course's prerequisites.
func (c *Client) CheckPrerequisites(ctx context.Context, studentID, courseCode string) (bool, error) {
	q := url.Values{}
	q.Set("studentId", studentID)
	q.Set("courseCode", courseCode)
	return c.check(ctx, httpx.Route("/enrollments/check-prerequisites"), q, "check prerequisites")
}

// CheckTimeConflict reports whether a conflict EXISTS. true is bad news.
func (c *Client) CheckTimeConflict(ctx context.Context, studentID, courseCode, semester string) (bool, error) {
	q := url.Values{}
	q.Set("studentId", studentID)
	q.Set("courseCode", courseCode)
	q.Set("semester", semester)
	return c.check(ctx, httpx.Route("/enrollments/check-time-conflict"), q, "check time conflict")
}

// CheckCapacity reports whether the course still has room.
func (c *Client) CheckCapacity(ctx context.Context, courseCode string) (bool, error) {
	q := url.Values{}
	q.Set("courseCode", courseCode)
	return c.check(ctx, httpx.Route("/enrollments/check-capacity"), q, "check capacity")
}

func (c *Client) check(ctx context.Context, ep httpx.Endpoint, q url.Values, op string) (bool, error) {
	var out bool
	if err := c.API.Get(ctx, ep, q, &out); err != nil {
		return false, fmt.Errorf("enrollments: %s: %w", op, err)
	}
	return out, nil
}

func (c *Client) list(ctx context.Context, ep httpx.Endpoint, op string) ([]domain.Enrollment, error) {
	var out []domain.Enrollment
	if err := c.API.Get(ctx, ep, nil, &out); err != nil {
		return nil, fmt.Errorf("enrollments: %s: %w", op, err)
	}
	return out, nil
}
