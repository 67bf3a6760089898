package repositories

import (
	"github.com/entrenouscours/course-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type CourseFilters struct {
	Subject   *string           `json:"subject"`
	Level     *string           `json:"level"`
	OfferType *models.OfferType `json:"offer_type"`
	Modality  *models.Modality  `json:"modality"`
	TeacherID *string           `json:"teacher_id"`
	Limit     int               `json:"limit"`
	Offset    int               `json:"offset"`
	SortBy    string            `json:"sort_by"`    // "created_at", "title", "price_per_hour"
	SortOrder string            `json:"sort_order"` // "asc", "desc"
}

type RequestFilters struct {
	Status    *models.RequestStatus `json:"status"`
	CourseID  *string               `json:"course_id"`
	StudentID *string               `json:"student_id"`
	Limit     int                   `json:"limit"`
	Offset    int                   `json:"offset"`
}

type UserFilters struct {
	Role   *models.UserRole `json:"role"`
	Query  string           `json:"query"` // matches name or email
	Limit  int              `json:"limit"`
	Offset int              `json:"offset"`
}

// ===== SHARED AGGREGATE STRUCTS =====

// PlatformStats backs the admin statistics panel; every field is a
// plain count.
type PlatformStats struct {
	TotalUsers       int64 `json:"total_users"`
	TotalStudents    int64 `json:"total_students"`
	TotalTeachers    int64 `json:"total_teachers"`
	TotalCourses     int64 `json:"total_courses"`
	PendingRequests  int64 `json:"pending_requests"`
	AcceptedRequests int64 `json:"accepted_requests"`
	DeclinedRequests int64 `json:"declined_requests"`
}

// CourseCounts carries the per-course relation counts shown on the
// admin course table.
type CourseCounts struct {
	CourseID     string `json:"course_id"`
	SlotCount    int64  `json:"slot_count"`
	RequestCount int64  `json:"request_count"`
}

// OwnerStats aggregates a teacher's own courses and their requests for
// the my-courses dashboard.
type OwnerStats struct {
	TotalCourses     int64 `json:"total_courses"`
	TotalRequests    int64 `json:"total_requests"`
	PendingRequests  int64 `json:"pending_requests"`
	AcceptedRequests int64 `json:"accepted_requests"`
	DeclinedRequests int64 `json:"declined_requests"`
}
