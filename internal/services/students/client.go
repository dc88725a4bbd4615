// Package students maps each student operation to exactly one API call.
package students

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

func (c *Client) List(ctx context.Context) ([]domain.Student, error) {
	var out []domain.Student
	if err := c.API.Get(ctx, httpx.Route("/students"), nil, &out); err != nil {
		return nil, fmt.Errorf("students: list: %w", err)
	}
	return out, nil
}

func (c *Client) Get(ctx context.Context, id int64) (*domain.Student, error) {
	var out domain.Student
	if err := c.API.Get(ctx, httpx.Route("/students/{id}", strconv.FormatInt(id, 10)), nil, &out); err != nil {
		return nil, fmt.Errorf("students: get %d: %w", id, err)
	}
	return &out, nil
}

// GetByStudentID looks a student up by the human-facing id.
func (c *Client) GetByStudentID(ctx context.Context, studentID string) (*domain.Student, error) {
	var out domain.Student
	if err := c.API.Get(ctx, httpx.Route("/students/studentId/{studentId}", studentID), nil, &out); err != nil {
		return nil, fmt.Errorf("students: get by student id %q: %w", studentID, err)
	}
	return &out, nil
}

func (c *Client) Create(ctx context.Context, s domain.Student) (*domain.Student, error) {
	var out domain.Student
	if err := c.API.Post(ctx, httpx.Route("/students"), s, &out); err != nil {
		return nil, fmt.Errorf("students: create: %w", err)
	}
	return &out, nil
}

func (c *Client) Update(ctx context.Context, id int64, s domain.Student) (*domain.Student, error) {
	var out domain.Student
	if err := c.API.Put(ctx, httpx.Route("/students/{id}", strconv.FormatInt(id, 10)), s, &out); err != nil {
		return nil, fmt.Errorf("students: update %d: %w", id, err)
	}
	return &out, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	if err := c.API.Delete(ctx, httpx.Route("/students/{id}", strconv.FormatInt(id, 10)), nil); err != nil {
		return fmt.Errorf("students: delete %d: %w", id, err)
	}
	return nil
}
