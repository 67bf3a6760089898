package validator

import (
	"github.com/entrenouscours/course-service/internal/models"
)

// SlotRequest carries one proposed time window. Times arrive as
// RFC 3339 strings; entries with an empty startTime are dropped rather
// than rejected.
type SlotRequest struct {
	StartTime string  `json:"startTime"`
	EndTime   *string `json:"endTime"`
	Location  *string `json:"location" validate:"omitempty,max=200"`
	Notes     *string `json:"notes" validate:"omitempty,max=500"`
}

// CourseCreateRequest represents the request structure for publishing
// a course. Required-field reporting happens in the business
// validator, not through struct tags, so callers get the full
// missingFields list in one response.
type CourseCreateRequest struct {
	Title           string        `json:"title" validate:"omitempty,max=200"`
	Description     string        `json:"description"`
	Subject         string        `json:"subject" validate:"omitempty,max=100"`
	Level           string        `json:"level" validate:"omitempty,max=100"`
	GoogleMeetURL   string        `json:"googleMeetUrl" validate:"omitempty,max=500"`
	ImageURL        *string       `json:"imageUrl" validate:"omitempty,max=500"`
	OfferType       string        `json:"offerType" validate:"omitempty,offer_type"`
	PricePerHour    *float64      `json:"pricePerHour" validate:"omitempty,min=0"`
	Currency        string        `json:"currency" validate:"omitempty,max=10"`
	Modality        string        `json:"modality" validate:"omitempty,modality"`
	Availability    string        `json:"availability" validate:"omitempty,max=500"`
	ExchangeSubject *string       `json:"exchangeSubject" validate:"omitempty,max=100"`
	Capacity        *int          `json:"capacity" validate:"omitempty,min=1"`
	Slots           []SlotRequest `json:"slots"`
}

// RequestCreateRequest represents a student asking to join a course.
type RequestCreateRequest struct {
	PaymentMethod    string  `json:"paymentMethod" validate:"required,payment_method"`
	ProposedTime     string  `json:"proposedTime" validate:"required,max=200"`
	ProposedLocation *string `json:"proposedLocation" validate:"omitempty,max=200"`
	ContactEmail     string  `json:"contactEmail" validate:"required,email"`
	Message          *string `json:"message" validate:"omitempty,max=2000"`
}

// RequestDecisionRequest represents the owner's accept/decline call.
// The status is checked in the service with ValidDecision, not through
// tags.
type RequestDecisionRequest struct {
	Status models.RequestStatus `json:"status"`
}

// ProfileUpdateRequest represents the profile upsert payload. List
// fields are sanitized in the service, struct tags only bound sizes.
type ProfileUpdateRequest struct {
	Bio          *string              `json:"bio" validate:"omitempty,max=2000"`
	Phone        *string              `json:"phone" validate:"omitempty,max=50"`
	Location     *string              `json:"location" validate:"omitempty,max=200"`
	Videos       []string             `json:"videos" validate:"omitempty,max=20"`
	Images       []string             `json:"images" validate:"omitempty,max=20"`
	ProjectLinks []models.ProjectLink `json:"projectLinks" validate:"omitempty,max=20"`
	Certificates []models.Certificate `json:"certificates" validate:"omitempty,max=20"`
	ResumeURL    *string              `json:"resumeUrl" validate:"omitempty,max=500"`
}

// RoleUpdateRequest represents an admin changing a user's role. The
// role is checked in the service with Valid, not through tags.
type RoleUpdateRequest struct {
	Role models.UserRole `json:"role"`
}

// ChatMessage is one prior turn forwarded by the chat widget.
type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required,max=4000"`
}

// ChatRequest represents a chat completion call.
type ChatRequest struct {
	Message string        `json:"message"`
	History []ChatMessage `json:"history" validate:"omitempty,max=20,dive"`
}
