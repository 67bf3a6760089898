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

type DashboardPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewDashboardPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.DashboardRepository {
	return &DashboardPostgreSQL{
		db:           db,
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

// GetPlatformStats serves the admin counters through the stats cache;
// writes invalidate it, so a short TTL covers read bursts only.
func (r *DashboardPostgreSQL) GetPlatformStats(ctx context.Context) (*repositories.PlatformStats, error) {
	var stats repositories.PlatformStats
	err := r.cacheManager.Stats.CacheOrExecute(ctx, "platform", &stats, cache.StatsCacheConfig.TTL, func() (interface{}, error) {
		return r.computePlatformStats(ctx)
	})
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// computePlatformStats runs the seven counts behind the admin panel.
func (r *DashboardPostgreSQL) computePlatformStats(ctx context.Context) (*repositories.PlatformStats, error) {
	stats := &repositories.PlatformStats{}
	db := r.db.WithContext(ctx)

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.TotalUsers, db.Model(&models.User{})},
		{&stats.TotalStudents, db.Model(&models.User{}).Where("role = ?", models.RoleStudent)},
		{&stats.TotalTeachers, db.Model(&models.User{}).Where("role = ?", models.RoleTeacher)},
		{&stats.TotalCourses, db.Model(&models.Course{})},
		{&stats.PendingRequests, db.Model(&models.CourseRequest{}).Where("status = ?", models.RequestPending)},
		{&stats.AcceptedRequests, db.Model(&models.CourseRequest{}).Where("status = ?", models.RequestAccepted)},
		{&stats.DeclinedRequests, db.Model(&models.CourseRequest{}).Where("status = ?", models.RequestDeclined)},
	}

	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, fmt.Errorf("failed to compute platform stats: %w", err)
		}
	}

	return stats, nil
}

// GetOwnerStats aggregates a teacher's courses and the requests
// against them for the my-courses dashboard.
func (r *DashboardPostgreSQL) GetOwnerStats(ctx context.Context, teacherID string) (*repositories.OwnerStats, error) {
	stats := &repositories.OwnerStats{}
	db := r.db.WithContext(ctx)

	if err := db.Model(&models.Course{}).Where("teacher_id = ?", teacherID).Count(&stats.TotalCourses).Error; err != nil {
		return nil, fmt.Errorf("failed to count owned courses: %w", err)
	}

	requestsOnOwned := func(status *models.RequestStatus) *gorm.DB {
		q := db.Model(&models.CourseRequest{}).
			Joins("JOIN courses ON courses.id = course_requests.course_id").
			Where("courses.teacher_id = ?", teacherID)
		if status != nil {
			q = q.Where("course_requests.status = ?", *status)
		}
		return q
	}

	if err := requestsOnOwned(nil).Count(&stats.TotalRequests).Error; err != nil {
		return nil, fmt.Errorf("failed to count requests: %w", err)
	}

	pending, accepted, declined := models.RequestPending, models.RequestAccepted, models.RequestDeclined
	if err := requestsOnOwned(&pending).Count(&stats.PendingRequests).Error; err != nil {
		return nil, fmt.Errorf("failed to count pending requests: %w", err)
	}
	if err := requestsOnOwned(&accepted).Count(&stats.AcceptedRequests).Error; err != nil {
		return nil, fmt.Errorf("failed to count accepted requests: %w", err)
	}
	if err := requestsOnOwned(&declined).Count(&stats.DeclinedRequests).Error; err != nil {
		return nil, fmt.Errorf("failed to count declined requests: %w", err)
	}

	return stats, nil
}
