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

type UserPostgreSQL struct {
	db           *gorm.DB
	helpers      *SharedHelpers
	cacheManager *cache.CacheManager
}

func NewUserPostgreSQL(db *gorm.DB, redisClient *redis.Client) repositories.UserRepository {
	return &UserPostgreSQL{
		db:           db,
		helpers:      NewSharedHelpers(db),
		cacheManager: cache.NewCacheManager(redisClient),
	}
}

// GetByID serves through the user cache; the auth middleware hits this
// on every authenticated request.
func (r *UserPostgreSQL) GetByID(ctx context.Context, id string) (*models.User, error) {
	cacheKey := fmt.Sprintf("id:%s", id)
	var user models.User

	err := r.cacheManager.User.CacheOrExecute(ctx, cacheKey, &user, cache.UserCacheConfig.TTL, func() (interface{}, error) {
		var dbUser models.User
		if err := r.db.WithContext(ctx).First(&dbUser, "id = ?", id).Error; err != nil {
			return nil, err
		}
		return &dbUser, nil
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *UserPostgreSQL) GetWithProfile(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Profile").
		First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpsertFromIdentity creates the user row on first sign-in with the
// default STUDENT role, and refreshes name/email/avatar afterwards.
// The stored role is authoritative and never overwritten here.
func (r *UserPostgreSQL) UpsertFromIdentity(ctx context.Context, user *models.User) (*models.User, error) {
	var existing models.User
	err := r.db.WithContext(ctx).First(&existing, "id = ?", user.ID).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
		if user.Role == "" {
			user.Role = models.RoleStudent
		}
		if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user on first sign-in: %w", err)
		}
		return user, nil
	}

	updates := map[string]interface{}{
		"name":  user.Name,
		"email": user.Email,
		"image": user.Image,
	}
	if err := r.db.WithContext(ctx).Model(&existing).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to refresh user from identity: %w", err)
	}

	cache.InvalidateUserCache(ctx, r.cacheManager, existing.ID)
	return &existing, nil
}

func (r *UserPostgreSQL) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})

	if filters.Role != nil {
		query = query.Where("role = ?", *filters.Role)
	}
	if filters.Query != "" {
		like := "%" + filters.Query + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	query = r.helpers.ApplyPaginationAndSort(query, "created_at", "desc", filters.Limit, filters.Offset)

	var users []*models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}

	return users, total, nil
}

func (r *UserPostgreSQL) UpdateRole(ctx context.Context, id string, role models.UserRole) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(&user).Update("role", role).Error; err != nil {
		return nil, fmt.Errorf("failed to update user role: %w", err)
	}

	cache.InvalidateUserCache(ctx, r.cacheManager, id)
	return &user, nil
}

// Delete removes the user and everything they own.
func (r *UserPostgreSQL) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var courseIDs []string
		if err := tx.Model(&models.Course{}).Where("teacher_id = ?", id).Pluck("id", &courseIDs).Error; err != nil {
			return fmt.Errorf("failed to collect owned courses: %w", err)
		}

		if len(courseIDs) > 0 {
			if err := tx.Where("course_id IN ?", courseIDs).Delete(&models.CourseSlot{}).Error; err != nil {
				return fmt.Errorf("failed to delete owned course slots: %w", err)
			}
			if err := tx.Where("course_id IN ?", courseIDs).Delete(&models.CourseRequest{}).Error; err != nil {
				return fmt.Errorf("failed to delete owned course requests: %w", err)
			}
			if err := tx.Where("id IN ?", courseIDs).Delete(&models.Course{}).Error; err != nil {
				return fmt.Errorf("failed to delete owned courses: %w", err)
			}
		}

		if err := tx.Where("student_id = ?", id).Delete(&models.CourseRequest{}).Error; err != nil {
			return fmt.Errorf("failed to delete user requests: %w", err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Profile{}).Error; err != nil {
			return fmt.Errorf("failed to delete user profile: %w", err)
		}
		if err := tx.Delete(&models.User{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	cache.InvalidateUserCache(ctx, r.cacheManager, id)
	cache.SafeInvalidatePattern(ctx, r.cacheManager.Course, "list:*")
	return nil
}

func (r *UserPostgreSQL) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}
