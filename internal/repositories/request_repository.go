package repositories

import (
	"context"

	"github.com/entrenouscours/course-service/internal/models"
)

// RequestRepository persists course join-requests.
type RequestRepository interface {
	Create(ctx context.Context, request *models.CourseRequest) error

	// GetWithCourse preloads the parent course for ownership checks.
	GetWithCourse(ctx context.Context, id string) (*models.CourseRequest, error)

	List(ctx context.Context, filters RequestFilters) ([]*models.CourseRequest, int64, error)

	// UpdateStatus writes the decision unconditionally; concurrent
	// decisions are last-write-wins.
	UpdateStatus(ctx context.Context, id string, status models.RequestStatus) error
}
