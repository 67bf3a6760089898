package postgres

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/entrenouscours/course-service/internal/cache"
	"github.com/entrenouscours/course-service/internal/models"
	"github.com/entrenouscours/course-service/internal/repositories"
)

type CoursePostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewCoursePostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.CourseRepository {
	return &CoursePostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

// CreateWithSlots persists the course and its slots atomically and
// invalidates listing caches.
func (r *CoursePostgreSQL) CreateWithSlots(ctx context.Context, course *models.Course, slots []models.CourseSlot) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(course).Error; err != nil {
			return fmt.Errorf("failed to create course: %w", err)
		}
		for i := range slots {
			slots[i].CourseID = course.ID
		}
		if len(slots) > 0 {
			if err := tx.Create(&slots).Error; err != nil {
				return fmt.Errorf("failed to create course slots: %w", err)
			}
		}
		course.Slots = slots
		return nil
	})
	if err != nil {
		return err
	}

	cache.InvalidateCourseCache(ctx, r.cacheManager, course.ID)
	return nil
}

func (r *CoursePostgreSQL) GetByID(ctx context.Context, id string) (*models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).First(&course, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

// GetWithSlots returns the course with slots ordered by start time,
// served through the entity cache.
func (r *CoursePostgreSQL) GetWithSlots(ctx context.Context, id string) (*models.Course, error) {
	cacheKey := fmt.Sprintf("id:%s", id)
	var course models.Course

	err := r.cacheManager.Course.CacheOrExecute(ctx, cacheKey, &course, cache.CourseCacheConfig.TTL, func() (interface{}, error) {
		var dbCourse models.Course
		err := r.db.WithContext(ctx).
			Preload("Slots", func(db *gorm.DB) *gorm.DB {
				return db.Order("course_slots.start_time ASC")
			}).
			First(&dbCourse, "id = ?", id).Error
		if err != nil {
			return nil, err
		}
		return &dbCourse, nil
	})
	if err != nil {
		return nil, err
	}

	return &course, nil
}

func (r *CoursePostgreSQL) List(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Course{})
	query = r.helpers.ApplyCourseFilters(query, filters)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count courses: %w", err)
	}

	query = r.helpers.ApplyPaginationAndSort(query, filters.SortBy, filters.SortOrder, filters.Limit, filters.Offset)

	var courses []*models.Course
	err := query.
		Preload("Teacher").
		Preload("Slots", func(db *gorm.DB) *gorm.DB {
			return db.Order("course_slots.start_time ASC")
		}).
		Find(&courses).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list courses: %w", err)
	}

	return courses, total, nil
}

func (r *CoursePostgreSQL) ListByTeacher(ctx context.Context, teacherID string) ([]*models.Course, error) {
	var courses []*models.Course
	err := r.db.WithContext(ctx).
		Where("teacher_id = ?", teacherID).
		Preload("Slots", func(db *gorm.DB) *gorm.DB {
			return db.Order("course_slots.start_time ASC")
		}).
		Preload("Requests", func(db *gorm.DB) *gorm.DB {
			return db.Order("course_requests.created_at DESC")
		}).
		Order("created_at DESC").
		Find(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list courses by teacher: %w", err)
	}
	return courses, nil
}

func (r *CoursePostgreSQL) ListAll(ctx context.Context) ([]*models.Course, error) {
	var courses []*models.Course
	err := r.db.WithContext(ctx).
		Preload("Teacher").
		Order("created_at DESC").
		Find(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list all courses: %w", err)
	}
	return courses, nil
}

// Delete removes the course; slots and requests go with it through the
// FK cascade.
func (r *CoursePostgreSQL) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", id).Delete(&models.CourseSlot{}).Error; err != nil {
			return fmt.Errorf("failed to delete course slots: %w", err)
		}
		if err := tx.Where("course_id = ?", id).Delete(&models.CourseRequest{}).Error; err != nil {
			return fmt.Errorf("failed to delete course requests: %w", err)
		}
		if err := tx.Delete(&models.Course{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete course: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	cache.InvalidateCourseCache(ctx, r.cacheManager, id)
	return nil
}

func (r *CoursePostgreSQL) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Course{}).Count(&count).Error
	return count, err
}

func (r *CoursePostgreSQL) CountRelations(ctx context.Context, courseIDs []string) (map[string]repositories.CourseCounts, error) {
	result := make(map[string]repositories.CourseCounts, len(courseIDs))
	if len(courseIDs) == 0 {
		return result, nil
	}

	type rowCount struct {
		CourseID string
		Count    int64
	}

	var slotCounts []rowCount
	err := r.db.WithContext(ctx).
		Model(&models.CourseSlot{}).
		Select("course_id, count(*) as count").
		Where("course_id IN ?", courseIDs).
		Group("course_id").
		Scan(&slotCounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count slots: %w", err)
	}

	var requestCounts []rowCount
	err = r.db.WithContext(ctx).
		Model(&models.CourseRequest{}).
		Select("course_id, count(*) as count").
		Where("course_id IN ?", courseIDs).
		Group("course_id").
		Scan(&requestCounts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count requests: %w", err)
	}

	for _, id := range courseIDs {
		result[id] = repositories.CourseCounts{CourseID: id}
	}
	for _, sc := range slotCounts {
		c := result[sc.CourseID]
		c.SlotCount = sc.Count
		result[sc.CourseID] = c
	}
	for _, rc := range requestCounts {
		c := result[rc.CourseID]
		c.RequestCount = rc.Count
		result[rc.CourseID] = c
	}

	return result, nil
}

func (r *CoursePostgreSQL) UpdateImageURL(ctx context.Context, id string, imageURL string) error {
	err := r.db.WithContext(ctx).
		Model(&models.Course{}).
		Where("id = ?", id).
		Update("image_url", imageURL).Error
	if err != nil {
		return fmt.Errorf("failed to update course image: %w", err)
	}

	cache.InvalidateCourseCache(ctx, r.cacheManager, id)
	return nil
}

func (r *CoursePostgreSQL) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Course{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}
