package api

import (
	"context"
	"fmt"

	"github.com/stemsi/mentora-cli/internal/model"
)

type coursesResponse struct {
	status
	Courses []model.Course `json:"courses"`
}

// ListCourses returns the user's course catalog.
func (c *Client) ListCourses(ctx context.Context) ([]model.Course, error) {
	var resp coursesResponse
	if err := c.get(ctx, "/courses", nil, &resp); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return resp.Courses, nil
}

type courseResponse struct {
	status
	Course *model.Course `json:"course"`
}

// GetCourse returns one course with its module listing.
func (c *Client) GetCourse(ctx context.Context, courseID string) (*model.Course, error) {
	var resp courseResponse
	if err := c.get(ctx, "/courses/"+courseID, nil, &resp); err != nil {
		return nil, fmt.Errorf("get course: %w", err)
	}
	if resp.Course == nil {
		return nil, &Error{Code: ErrNotFound, Message: "course not found"}
	}
	return resp.Course, nil
}
