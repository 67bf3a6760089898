package repositories

import (
	"context"

	"github.com/entrenouscours/course-service/internal/models"
)

// UserRepository persists identity records. Rows are created on first
// sign-in through the identity provider and mutated only by admin
// role changes or profile edits.
type UserRepository interface {
	// GetByID serves through the user cache; the auth middleware reads
	// it on every authenticated request.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetWithProfile preloads the profile extension.
	GetWithProfile(ctx context.Context, id string) (*models.User, error)

	// UpsertFromIdentity creates the user on first sign-in and
	// refreshes name/email/avatar on subsequent ones. The stored role
	// is never overwritten by the identity provider.
	UpsertFromIdentity(ctx context.Context, user *models.User) (*models.User, error)

	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)

	UpdateRole(ctx context.Context, id string, role models.UserRole) (*models.User, error)

	// Delete cascades to the user's profile, courses and requests.
	Delete(ctx context.Context, id string) error

	ExistsByID(ctx context.Context, id string) (bool, error)
}
