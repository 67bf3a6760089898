package services

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/entrenouscours/course-service/internal/events"
	"github.com/entrenouscours/course-service/internal/models"
	"github.com/entrenouscours/course-service/internal/repositories"
)

// courseImagePool backs the bulk image reseed. Every course gets a
// random entry, existing images included.
var courseImagePool = []string{
	"https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcSCPsBF4JpEKOvW23Mg1pbXupQJtonURRh-Ag&s",
	"https://img.freepik.com/premium-vector/boy-studying-with-laptop-online-learning-education-vector-illustration_7087-1886.jpg",
	"https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcRIhg-aaxfGQDcxiYNQiIACqfy3M3vwy_JFcQ&s",
	"https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcRlnSRf5gTB_HVJwAyKmpoVW2ujh0yk6Xh82A&s",
	"https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcSgtpPZbG2BUS5k7MQPR45exsq5r7CDnwugmA&s",
}

type adminService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	publisher events.EventPublisher
}

func NewAdminService(repo repositories.Repository, logger *slog.Logger, publisher events.EventPublisher) AdminService {
	return &adminService{
		repo:      repo,
		logger:    logger,
		publisher: publisher,
	}
}

func (s *adminService) GetStats(ctx context.Context) (*AdminStatsResponse, error) {
	stats, err := s.repo.Dashboard().GetPlatformStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load platform stats: %w", err)
	}

	resp := &AdminStatsResponse{}
	resp.Users.Total = stats.TotalUsers
	resp.Users.Students = stats.TotalStudents
	resp.Users.Teachers = stats.TotalTeachers
	resp.Courses.Total = stats.TotalCourses
	resp.Requests.Pending = stats.PendingRequests
	resp.Requests.Accepted = stats.AcceptedRequests
	resp.Requests.Declined = stats.DeclinedRequests
	resp.Requests.Total = stats.PendingRequests + stats.AcceptedRequests + stats.DeclinedRequests
	return resp, nil
}

func (s *adminService) ListUsers(ctx context.Context, filters repositories.UserFilters) (*UserListResponse, error) {
	if filters.Limit <= 0 {
		filters.Limit = 50
	}
	if filters.Limit > 200 {
		filters.Limit = 200
	}

	users, total, err := s.repo.User().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return &UserListResponse{
		Users:  users,
		Total:  total,
		Limit:  filters.Limit,
		Offset: filters.Offset,
	}, nil
}

func (s *adminService) UpdateUserRole(ctx context.Context, id string, role models.UserRole) (*models.User, error) {
	if !role.Valid() {
		return nil, ValidationErrors{{
			Field:   "role",
			Message: "must be STUDENT, TEACHER or ADMIN",
			Value:   role,
			Rule:    "user_role",
		}}
	}

	user, err := s.repo.User().UpdateRole(ctx, id, role)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	s.publishEvent(ctx, events.EventUserRoleChanged, events.RoleChangeEvent{
		UserID: user.ID,
		Role:   role,
	})

	s.logger.Info("User role updated", "user_id", id, "role", role)
	return user, nil
}

func (s *adminService) DeleteUser(ctx context.Context, id string, callerID string) error {
	if id == callerID {
		return NewBusinessRuleError(
			"ADMIN-SELF-DELETE",
			"administrators cannot delete their own account",
			map[string]interface{}{"user_id": id},
		)
	}

	exists, err := s.repo.User().ExistsByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check user: %w", err)
	}
	if !exists {
		return ErrUserNotFound
	}

	if err := s.repo.User().Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("User deleted by admin", "user_id", id, "admin_id", callerID)
	return nil
}

func (s *adminService) ListCourses(ctx context.Context) ([]*AdminCourseResponse, error) {
	courses, err := s.repo.Course().ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	ids := make([]string, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.ID)
	}

	counts, err := s.repo.Course().CountRelations(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count course relations: %w", err)
	}

	out := make([]*AdminCourseResponse, 0, len(courses))
	for _, c := range courses {
		row := &AdminCourseResponse{Course: c}
		if cc, ok := counts[c.ID]; ok {
			row.SlotCount = cc.SlotCount
			row.RequestCount = cc.RequestCount
		}
		out = append(out, row)
	}
	return out, nil
}

func (s *adminService) SeedCourseImages(ctx context.Context) (*SeedImagesResult, error) {
	courses, err := s.repo.Course().ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	if len(courses) == 0 {
		return &SeedImagesResult{Message: "Aucun cours trouvé", Updated: 0}, nil
	}

	for _, c := range courses {
		image := courseImagePool[rand.Intn(len(courseImagePool))]
		if err := s.repo.Course().UpdateImageURL(ctx, c.ID, image); err != nil {
			return nil, fmt.Errorf("failed to update image for course %s: %w", c.ID, err)
		}
	}

	s.logger.Info("Course images reseeded", "updated", len(courses))
	return &SeedImagesResult{
		Message: fmt.Sprintf("%d cours mis à jour avec des images", len(courses)),
		Updated: len(courses),
	}, nil
}

func (s *adminService) publishEvent(ctx context.Context, eventType string, data interface{}) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, eventType, data); err != nil {
		s.logger.Warn("Failed to publish event", "event_type", eventType, "error", err)
	}
}

func formatTime(t time.Time) string {
	return t.Format("2006-01-02 15:04")
}
