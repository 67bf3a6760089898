package repositories

import "context"

// DashboardRepository serves the read-only aggregations behind the
// admin stats panel and the owner's my-courses dashboard.
type DashboardRepository interface {
	GetPlatformStats(ctx context.Context) (*PlatformStats, error)
	GetOwnerStats(ctx context.Context, teacherID string) (*OwnerStats, error)
}
