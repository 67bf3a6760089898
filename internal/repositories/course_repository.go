package repositories

import (
	"context"

	"github.com/entrenouscours/course-service/internal/models"
)

// CourseRepository persists courses and their slots. Slots are only
// ever written together with their course; there is no standalone
// slot mutation.
type CourseRepository interface {
	// CreateWithSlots persists the course and its slots in one
	// transaction.
	CreateWithSlots(ctx context.Context, course *models.Course, slots []models.CourseSlot) error

	GetByID(ctx context.Context, id string) (*models.Course, error)
	// GetWithSlots returns the course with slots ordered by start time.
	GetWithSlots(ctx context.Context, id string) (*models.Course, error)

	List(ctx context.Context, filters CourseFilters) ([]*models.Course, int64, error)
	// ListByTeacher returns a teacher's courses with slots and requests
	// for the my-courses dashboard.
	ListByTeacher(ctx context.Context, teacherID string) ([]*models.Course, error)
	// ListAll returns every course with teacher info, newest first
	// (admin course table).
	ListAll(ctx context.Context) ([]*models.Course, error)

	// Delete cascades to slots and requests.
	Delete(ctx context.Context, id string) error

	Count(ctx context.Context) (int64, error)
	// CountRelations returns slot and request counts per course id.
	CountRelations(ctx context.Context, courseIDs []string) (map[string]CourseCounts, error)

	// UpdateImageURL is used by the admin bulk image reseed.
	UpdateImageURL(ctx context.Context, id string, imageURL string) error

	ExistsByID(ctx context.Context, id string) (bool, error)
}
