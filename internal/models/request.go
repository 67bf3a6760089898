package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RequestStatus string

const (
	RequestPending  RequestStatus = "PENDING"
	RequestAccepted RequestStatus = "ACCEPTED"
	RequestDeclined RequestStatus = "DECLINED"
)

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "CASH"
	PaymentCard     PaymentMethod = "CARD"
	PaymentExchange PaymentMethod = "EXCHANGE"
)

// CourseRequest is a student's ask to join a course. StudentEmail is
// the primary contact channel and may differ from the identity
// provider email; StudentID is nullable for session-less submissions.
type CourseRequest struct {
	ID        string  `json:"id" gorm:"primaryKey;size:255"`
	CourseID  string  `json:"courseId" gorm:"not null;size:255;index"`
	StudentID *string `json:"studentId" gorm:"size:255;index"`

	StudentName  *string `json:"studentName" gorm:"size:100"`
	StudentEmail string  `json:"studentEmail" gorm:"not null;size:255"`

	PaymentMethod    PaymentMethod `json:"paymentMethod" gorm:"not null;size:20"`
	ProposedTime     string        `json:"proposedTime" gorm:"not null;size:200"`
	ProposedLocation *string       `json:"proposedLocation" gorm:"size:200"`
	Message          *string       `json:"message" gorm:"type:text"`

	Status RequestStatus `json:"status" gorm:"not null;default:PENDING;size:20;index"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Course  *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
	Student *User   `json:"student,omitempty" gorm:"foreignKey:StudentID"`
}

func (r *CourseRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

func (CourseRequest) TableName() string {
	return "course_requests"
}

func (s RequestStatus) Valid() bool {
	switch s {
	case RequestPending, RequestAccepted, RequestDeclined:
		return true
	}
	return false
}

// ValidDecision reports whether the status is one a course owner may
// set on a request.
func (s RequestStatus) ValidDecision() bool {
	return s == RequestAccepted || s == RequestDeclined
}

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentExchange:
		return true
	}
	return false
}
