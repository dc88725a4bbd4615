// Package courses maps each course operation to exactly one API call.
package courses

import (
	"context"
	"fmt"
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

func (c *Client) List(ctx context.Context) ([]domain.Course, error) {
	return c.list(ctx, httpx.Route("/courses"), "list")
}

func (c *Client) Get(ctx context.Context, id int64) (*domain.Course, error) {
	var out domain.Course
	if err := c.API.Get(ctx, httpx.Route("/courses/{id}", strconv.FormatInt(id, 10)), nil, &out); err != nil {
		return nil, fmt.Errorf("courses: get %d: %w", id, err)
	}
	return &out, nil
}

func (c *Client) GetByCode(ctx context.Context, code string) (*domain.Course, error) {
	var out domain.Course
	if err := c.API.Get(ctx, httpx.Route("/courses/code/{code}", code), nil, &out); err != nil {
		return nil, fmt.Errorf("courses: get by code %q: %w", code, err)
	}
	return &out, nil
}

// ListEnrolledByStudent returns the courses the student (internal id) is enrolled in.
func (c *Client) ListEnrolledByStudent(ctx context.Context, studentID int64) ([]domain.Course, error) {
	return c.list(ctx, httpx.Route("/courses/student/{studentId}", strconv.FormatInt(studentID, 10)), "list enrolled")
}

// ListAvailableForStudent returns the courses the server says the student may enroll in.
func (c *Client) ListAvailableForStudent(ctx context.Context, studentID int64) ([]domain.Course, error) {
	return c.list(ctx, httpx.Route("/courses/available/student/{studentId}", strconv.FormatInt(studentID, 10)), "list available")
}

func (c *Client) Create(ctx context.Context, in domain.CourseInput) (*domain.Course, error) {
	var out domain.Course
	if err := c.API.Post(ctx, httpx.Route("/courses"), in, &out); err != nil {
		return nil, fmt.Errorf("courses: create: %w", err)
	}
	return &out, nil
}

func (c *Client) Update(ctx context.Context, id int64, in domain.CourseInput) (*domain.Course, error) {
	var out domain.Course
	if err := c.API.Put(ctx, httpx.Route("/courses/{id}", strconv.FormatInt(id, 10)), in, &out); err != nil {
		return nil, fmt.Errorf("courses: update %d: %w", id, err)
	}
	return &out, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	if err := c.API.Delete(ctx, httpx.Route("/courses/{id}", strconv.FormatInt(id, 10)), nil); err != nil {
		return fmt.Errorf("courses: delete %d: %w", id, err)
	}
	return nil
}

func (c *Client) AddPrerequisite(ctx context.Context, code, prerequisite string) error {
	if err := c.API.Post(ctx, httpx.Route("/courses/{code}/prerequisites/{prereq}", code, prerequisite), nil, nil); err != nil {
		return fmt.Errorf("courses: add prerequisite %s -> %s: %w", code, prerequisite, err)
	}
	return nil
}

func (c *Client) RemovePrerequisite(ctx context.Context, code, prerequisite string) error {
	if err := c.API.Delete(ctx, httpx.Route("/courses/{code}/prerequisites/{prereq}", code, prerequisite), nil); err != nil {
		return fmt.Errorf("courses: remove prerequisite %s -> %s: %w", code, prerequisite, err)
	}
	return nil
}

func (c *Client) list(ctx context.Context, ep httpx.Endpoint, op string) ([]domain.Course, error) {
	var out []domain.Course
	if err := c.API.Get(ctx, ep, nil, &out); err != nil {
		return nil, fmt.Errorf("courses: %s: %w", op, err)
	}
	return out, nil
}
