package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/entrenouscours/course-service/internal/models"
	"github.com/entrenouscours/course-service/internal/repositories"
)

type RequestPostgreSQL struct {
	db      *gorm.DB
	helpers *SharedHelpers
}

func NewRequestPostgreSQL(db *gorm.DB) repositories.RequestRepository {
	return &RequestPostgreSQL{
		db:      db,
		helpers: NewSharedHelpers(db),
	}
}

func (r *RequestPostgreSQL) Create(ctx context.Context, request *models.CourseRequest) error {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		return fmt.Errorf("failed to create course request: %w", err)
	}
	return nil
}

func (r *RequestPostgreSQL) GetWithCourse(ctx context.Context, id string) (*models.CourseRequest, error) {
	var request models.CourseRequest
	err := r.db.WithContext(ctx).
		Preload("Course").
		First(&request, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *RequestPostgreSQL) List(ctx context.Context, filters repositories.RequestFilters) ([]*models.CourseRequest, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.CourseRequest{})
	query = r.helpers.ApplyRequestFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count requests: %w", err)
	}

	query = r.helpers.ApplyPaginationAndSort(query, "created_at", "desc", filters.Limit, filters.Offset)

	var requests []*models.CourseRequest
	if err := query.Find(&requests).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list requests: %w", err)
	}

	return requests, total, nil
}

// UpdateStatus writes the decision unconditionally: a second decision
// overwrites the first (last write wins).
func (r *RequestPostgreSQL) UpdateStatus(ctx context.Context, id string, status models.RequestStatus) error {
	err := r.db.WithContext(ctx).
		Model(&models.CourseRequest{}).
		Where("id = ?", id).
		Update("status", status).Error
	if err != nil {
		return fmt.Errorf("failed to update request status: %w", err)
	}
	return nil
}
