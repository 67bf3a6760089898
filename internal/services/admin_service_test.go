package services

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/entrenouscours/course-service/internal/events"
	"github.com/entrenouscours/course-service/internal/models"
	"github.com/entrenouscours/course-service/internal/repositories"
)

func newTestAdminService(repo *mockRepository) (AdminService, *events.MockEventPublisher) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	publisher := events.NewMockEventPublisher(nil)
	return NewAdminService(repo, logger, publisher), publisher
}

func TestAdminService_GetStats_SumsRequestTotal(t *testing.T) {
	repo := newMockRepository()
	service, _ := newTestAdminService(repo)

	repo.users["u1"] = &models.User{ID: "u1", Role: models.RoleStudent}
	repo.users["u2"] = &models.User{ID: "u2", Role: models.RoleTeacher}
	repo.courses["c1"] = &models.Course{ID: "c1"}
	repo.requests["r1"] = &models.CourseRequest{ID: "r1", CourseID: "c1", Status: models.RequestPending}
	repo.requests["r2"] = &models.CourseRequest{ID: "r2", CourseID: "c1", Status: models.RequestAccepted}
	repo.requests["r3"] = &models.CourseRequest{ID: "r3", CourseID: "c1", Status: models.RequestAccepted}
	repo.requests["r4"] = &models.CourseRequest{ID: "r4", CourseID: "c1", Status: models.RequestDeclined}

	stats, err := service.GetStats(context.Background())
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}

	if stats.Users.Total != 2 || stats.Users.Students != 1 || stats.Users.Teachers != 1 {
		t.Errorf("Unexpected user counts: %+v", stats.Users)
	}
	if stats.Courses.Total != 1 {
		t.Errorf("Expected 1 course, got %d", stats.Courses.Total)
	}
	if stats.Requests.Pending != 1 || stats.Requests.Accepted != 2 || stats.Requests.Declined != 1 {
		t.Errorf("Unexpected request counts: %+v", stats.Requests)
	}
	if stats.Requests.Total != 4 {
		t.Errorf("Request total must be the sum of the three statuses, got %d", stats.Requests.Total)
	}
}

func TestAdminService_UpdateUserRole(t *testing.T) {
	repo := newMockRepository()
	service, publisher := newTestAdminService(repo)
	repo.users["u1"] = &models.User{ID: "u1", Role: models.RoleStudent}

	t.Run("rejects unknown role", func(t *testing.T) {
		_, err := service.UpdateUserRole(context.Background(), "u1", models.UserRole("SUPERUSER"))
		var validationErrors ValidationErrors
		if !errors.As(err, &validationErrors) {
			t.Fatalf("Expected validation errors, got %v", err)
		}
		if repo.users["u1"].Role != models.RoleStudent {
			t.Error("Role must be unchanged after a rejected update")
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		if _, err := service.UpdateUserRole(context.Background(), "missing", models.RoleTeacher); !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("Expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("promotes and publishes", func(t *testing.T) {
		publisher.ClearEvents()

		user, err := service.UpdateUserRole(context.Background(), "u1", models.RoleTeacher)
		if err != nil {
			t.Fatalf("UpdateUserRole failed: %v", err)
		}
		if user.Role != models.RoleTeacher {
			t.Errorf("Expected TEACHER, got %s", user.Role)
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 || published[0].Type != events.EventUserRoleChanged {
			t.Errorf("Expected one %s event, got %v", events.EventUserRoleChanged, published)
		}
	})
}

func TestAdminService_DeleteUser(t *testing.T) {
	repo := newMockRepository()
	service, _ := newTestAdminService(repo)
	repo.users["admin"] = &models.User{ID: "admin", Role: models.RoleAdmin}
	repo.users["u1"] = &models.User{ID: "u1", Role: models.RoleStudent}

	t.Run("self-delete is refused", func(t *testing.T) {
		err := service.DeleteUser(context.Background(), "admin", "admin")
		var ruleErr *BusinessRuleError
		if !errors.As(err, &ruleErr) {
			t.Fatalf("Expected BusinessRuleError, got %v", err)
		}
		if ruleErr.Code != "ADMIN-SELF-DELETE" {
			t.Errorf("Unexpected rule code %s", ruleErr.Code)
		}
		if _, ok := repo.users["admin"]; !ok {
			t.Error("Admin account must survive the refused delete")
		}
	})

	t.Run("unknown user", func(t *testing.T) {
		if err := service.DeleteUser(context.Background(), "missing", "admin"); !errors.Is(err, ErrUserNotFound) {
			t.Fatalf("Expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("deletes another user", func(t *testing.T) {
		if err := service.DeleteUser(context.Background(), "u1", "admin"); err != nil {
			t.Fatalf("DeleteUser failed: %v", err)
		}
		if _, ok := repo.users["u1"]; ok {
			t.Error("User should be gone")
		}
	})
}

func TestAdminService_ListUsers_CapsLimit(t *testing.T) {
	repo := newMockRepository()
	service, _ := newTestAdminService(repo)

	resp, err := service.ListUsers(context.Background(), repositories.UserFilters{})
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if resp.Limit != 50 {
		t.Errorf("Expected default limit 50, got %d", resp.Limit)
	}

	resp, err = service.ListUsers(context.Background(), repositories.UserFilters{Limit: 5000})
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if resp.Limit != 200 {
		t.Errorf("Expected limit capped at 200, got %d", resp.Limit)
	}
}

func TestAdminService_SeedCourseImages(t *testing.T) {
	repo := newMockRepository()
	service, _ := newTestAdminService(repo)

	t.Run("no courses", func(t *testing.T) {
		result, err := service.SeedCourseImages(context.Background())
		if err != nil {
			t.Fatalf("SeedCourseImages failed: %v", err)
		}
		if result.Updated != 0 || result.Message != "Aucun cours trouvé" {
			t.Errorf("Unexpected empty result: %+v", result)
		}
	})

	t.Run("assigns pool images to every course", func(t *testing.T) {
		existing := "https://old.example/img.png"
		repo.courses["c1"] = &models.Course{ID: "c1"}
		repo.courses["c2"] = &models.Course{ID: "c2", ImageURL: &existing}

		result, err := service.SeedCourseImages(context.Background())
		if err != nil {
			t.Fatalf("SeedCourseImages failed: %v", err)
		}
		if result.Updated != 2 {
			t.Errorf("Expected 2 courses updated, got %d", result.Updated)
		}

		pool := make(map[string]bool, len(courseImagePool))
		for _, url := range courseImagePool {
			pool[url] = true
		}
		for id, c := range repo.courses {
			if c.ImageURL == nil || !pool[*c.ImageURL] {
				t.Errorf("Course %s should carry a pool image, got %v", id, c.ImageURL)
			}
		}
	})
}
