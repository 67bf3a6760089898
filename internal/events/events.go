package events

import (
	"time"

	"github.com/entrenouscours/course-service/internal/models"
)

// Event types published by the platform.
const (
	EventCourseCreated   = "course.created"
	EventCourseDeleted   = "course.deleted"
	EventRequestCreated  = "course_request.created"
	EventRequestDecided  = "course_request.decided"
	EventUserRoleChanged = "user.role_changed"
)

// Event is the envelope for every published message.
type Event struct {
	ID        string      `json:"id"`
	Type      string      `json:"type"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// CourseEvent carries course lifecycle payloads.
type CourseEvent struct {
	CourseID  string  `json:"course_id"`
	Title     string  `json:"title"`
	TeacherID *string `json:"teacher_id,omitempty"`
}

// RequestEvent carries join-request lifecycle payloads. Status is the
// request's state after the triggering operation.
type RequestEvent struct {
	RequestID    string               `json:"request_id"`
	CourseID     string               `json:"course_id"`
	StudentEmail string               `json:"student_email"`
	Status       models.RequestStatus `json:"status"`
}

// RoleChangeEvent carries admin role mutation payloads.
type RoleChangeEvent struct {
	UserID string          `json:"user_id"`
	Role   models.UserRole `json:"role"`
}
