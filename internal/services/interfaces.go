package services

import (
	"context"
	"io"
	"time"

	"github.com/entrenouscours/course-service/internal/models"
	"github.com/entrenouscours/course-service/internal/repositories"
	"github.com/entrenouscours/course-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use business validator types
type CourseCreateRequest = validator.CourseCreateRequest
type SlotRequest = validator.SlotRequest
type RequestCreateRequest = validator.RequestCreateRequest
type RequestDecisionRequest = validator.RequestDecisionRequest
type ProfileUpdateRequest = validator.ProfileUpdateRequest
type RoleUpdateRequest = validator.RoleUpdateRequest
type ChatRequest = validator.ChatRequest
type ChatMessage = validator.ChatMessage

// Identity is the caller as established by the auth middleware.
type Identity struct {
	ID    string
	Name  string
	Email string
}

// CourseResponse decorates a course with its read-time derived
// fields. Joinable and NextSlot are recomputed on every read and are
// never persisted or cached.
type CourseResponse struct {
	*models.Course
	Joinable bool               `json:"joinable"`
	NextSlot *models.CourseSlot `json:"nextSlot,omitempty"`
}

type CourseListResponse struct {
	Courses []*CourseResponse `json:"courses"`
	Total   int64             `json:"total"`
	Limit   int               `json:"limit"`
	Offset  int               `json:"offset"`
}

// MyCoursesResponse is the owner's dashboard: own courses with slots
// and requests plus aggregate request counters.
type MyCoursesResponse struct {
	Courses []*CourseResponse        `json:"courses"`
	Stats   *repositories.OwnerStats `json:"stats"`
}

type SeedResult struct {
	Message string `json:"message"`
	Seeded  bool   `json:"seeded"`
}

// ProfileResponse wraps the stored profile with its derived
// completeness score (0-6, recomputed on every view).
type ProfileResponse struct {
	Profile           *models.Profile `json:"profile"`
	CompletenessScore int             `json:"completenessScore"`
}

// PublicProfileResponse is the anonymous-readable profile view.
type PublicProfileResponse struct {
	User              *PublicUser     `json:"user"`
	Profile           *models.Profile `json:"profile"`
	CompletenessScore int             `json:"completenessScore"`
}

type PublicUser struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Image *string `json:"image,omitempty"`
}

// AdminStatsResponse mirrors the admin panel layout.
type AdminStatsResponse struct {
	Users struct {
		Total    int64 `json:"total"`
		Students int64 `json:"students"`
		Teachers int64 `json:"teachers"`
	} `json:"users"`
	Courses struct {
		Total int64 `json:"total"`
	} `json:"courses"`
	Requests struct {
		Pending  int64 `json:"pending"`
		Accepted int64 `json:"accepted"`
		Declined int64 `json:"declined"`
		Total    int64 `json:"total"`
	} `json:"requests"`
}

type UserListResponse struct {
	Users  []*models.User `json:"users"`
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// AdminCourseResponse is one row of the admin course table.
type AdminCourseResponse struct {
	*models.Course
	SlotCount    int64 `json:"slotCount"`
	RequestCount int64 `json:"requestCount"`
}

type SeedImagesResult struct {
	Message string `json:"message"`
	Updated int    `json:"updated"`
}

// ExportResult is the generated admin workbook.
type ExportResult struct {
	FileName    string
	ContentType string
	Data        []byte
	GeneratedAt time.Time
}

type ChatResponse struct {
	Answer string `json:"answer"`
}

type UploadResult struct {
	URL string `json:"url"`
}

// ===== SERVICE INTERFACES =====

type CourseService interface {
	Create(ctx context.Context, req *CourseCreateRequest, teacherID string) (*models.Course, error)
	Get(ctx context.Context, id string) (*CourseResponse, error)
	List(ctx context.Context, filters repositories.CourseFilters) (*CourseListResponse, error)
	Delete(ctx context.Context, id string, userID string) error
	ListByOwner(ctx context.Context, teacherID string) (*MyCoursesResponse, error)
	SeedDemo(ctx context.Context) (*SeedResult, error)
}

type RequestService interface {
	Create(ctx context.Context, courseID string, req *RequestCreateRequest, student *Identity) (*models.CourseRequest, error)
	Decide(ctx context.Context, requestID string, status models.RequestStatus, userID string) (*models.CourseRequest, error)
	ListByCourse(ctx context.Context, courseID string, userID string) ([]*models.CourseRequest, error)
}

type ProfileService interface {
	GetOwn(ctx context.Context, userID string) (*ProfileResponse, error)
	GetPublic(ctx context.Context, userID string) (*PublicProfileResponse, error)
	Upsert(ctx context.Context, userID string, req *ProfileUpdateRequest) (*ProfileResponse, error)
}

type AdminService interface {
	GetStats(ctx context.Context) (*AdminStatsResponse, error)
	ListUsers(ctx context.Context, filters repositories.UserFilters) (*UserListResponse, error)
	UpdateUserRole(ctx context.Context, id string, role models.UserRole) (*models.User, error)
	DeleteUser(ctx context.Context, id string, callerID string) error
	ListCourses(ctx context.Context) ([]*AdminCourseResponse, error)
	SeedCourseImages(ctx context.Context) (*SeedImagesResult, error)
	Export(ctx context.Context) (*ExportResult, error)
}

type ChatService interface {
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)
}

type UploadService interface {
	SaveCourseImage(ctx context.Context, fileName string, contentType string, size int64, r io.Reader) (*UploadResult, error)
}

// ServiceManager wires every service over shared dependencies.
type ServiceManager interface {
	Course() CourseService
	Request() RequestService
	Profile() ProfileService
	Admin() AdminService
	Chat() ChatService
	Upload() UploadService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
