package schedules

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

func (c *Client) List(ctx context.Context) ([]domain.Schedule, error) {
	return c.list(ctx, httpx.Route("/schedules"), "list")
}

func (c *Client) Get(ctx context.Context, id int64) (*domain.Schedule, error) {
	var out domain.Schedule
	if err := c.API.Get(ctx, httpx.Route("/schedules/{id}", strconv.FormatInt(id, 10)), nil, &out); err != nil {
		return nil, fmt.Errorf("schedules: get %d: %w", id, err)
	}
	return &out, nil
}

func (c *Client) ListByCourse(ctx context.Context, courseID int64) ([]domain.Schedule, error) {
	return c.list(ctx, httpx.Route("/schedules/course/{courseId}", strconv.FormatInt(courseID, 10)), "list by course")
}

func (c *Client) ListBySemester(ctx context.Context, semester string) ([]domain.Schedule, error) {
	return c.list(ctx, httpx.Route("/schedules/semester/{semester}", semester), "list by semester")
}

// StudentSchedule takes the external student id.
func (c *Client) StudentSchedule(ctx context.Context, studentID, semester string) ([]domain.Schedule, error) {
	return c.list(ctx, httpx.Route("/schedules/student/{studentId}/semester/{semester}", studentID, semester), "student schedule")
}

func (c *Client) Create(ctx context.Context, s domain.Schedule) (*domain.Schedule, error) {
	var out domain.Schedule
	if err := c.API.Post(ctx, httpx.Route("/schedules"), s, &out); err != nil {
		return nil, fmt.Errorf("schedules: create: %w", err)
	}
	return &out, nil
}

func (c *Client) Update(ctx context.Context, id int64, s domain.Schedule) (*domain.Schedule, error) {
	var out domain.Schedule
	if err := c.API.Put(ctx, httpx.Route("/schedules/{id}", strconv.FormatInt(id, 10)), s, &out); err != nil {
		return nil, fmt.Errorf("schedules: update %d: %w", id, err)
	}
	return &out, nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	if err := c.API.Delete(ctx, httpx.Route("/schedules/{id}", strconv.FormatInt(id, 10)), nil); err != nil {
		return fmt.Errorf("schedules: delete %d: %w", id, err)
	}
	return nil
}

func (c *Client) list(ctx context.Context, ep httpx.Endpoint, op string) ([]domain.Schedule, error) {
	var out []domain.Schedule
	if err := c.API.Get(ctx, ep, nil, &out); err != nil {
		return nil, fmt.Errorf("schedules: %s: %w", op, err)
	}
	return out, nil
}
