package repositories

import (
	"context"

	"github.com/entrenouscours/course-service/internal/models"
)

// ProfileRepository persists the one-to-one user profile extension.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)

	// Upsert creates the profile when absent, otherwise updates it.
	// There is no explicit-create path.
	Upsert(ctx context.Context, profile *models.Profile) error
}
