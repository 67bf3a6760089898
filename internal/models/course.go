package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OfferType string

const (
	OfferPaid     OfferType = "PAID"
	OfferFree     OfferType = "FREE"
	OfferExchange OfferType = "EXCHANGE"
)

type Modality string

const (
	ModalityOnline   Modality = "ONLINE"
	ModalityInPerson Modality = "IN_PERSON"
	ModalityFlexible Modality = "FLEXIBLE"
)

// Course is a published offer. TeacherID is nullable so seeded demo
// courses can exist without an owner; ownership checks must treat a
// missing owner as "nobody owns this".
type Course struct {
	ID            string    `json:"id" gorm:"primaryKey;size:255"`
	Title         string    `json:"title" gorm:"not null;size:200;index"`
	Description   string    `json:"description" gorm:"not null;type:text"`
	Subject       string    `json:"subject" gorm:"not null;size:100;index"`
	Level         string    `json:"level" gorm:"not null;size:100"`
	GoogleMeetURL string    `json:"googleMeetUrl" gorm:"not null;size:500"`
	ImageURL      *string   `json:"imageUrl" gorm:"size:500"`
	OfferType     OfferType `json:"offerType" gorm:"not null;default:PAID;size:20;index"`

	// Meaningful only when OfferType is PAID
	PricePerHour *float64 `json:"pricePerHour"`
	Currency     string   `json:"currency" gorm:"not null;default:TND;size:10"`

	Modality     Modality `json:"modality" gorm:"not null;default:ONLINE;size:20;index"`
	Availability string   `json:"availability" gorm:"not null;size:500"`

	// Meaningful only when OfferType is EXCHANGE
	ExchangeSubject *string `json:"exchangeSubject" gorm:"size:100"`

	Capacity  *int    `json:"capacity"`
	TeacherID *string `json:"teacherId" gorm:"size:255;index"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relations
	Teacher  *User           `json:"teacher,omitempty" gorm:"foreignKey:TeacherID"`
	Slots    []CourseSlot    `json:"slots,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	Requests []CourseRequest `json:"requests,omitempty" gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func (Course) TableName() string {
	return "courses"
}

// CourseSlot is a concrete time window during which the course is
// deliverable. Slots are immutable after creation and removed only by
// the cascading course delete.
type CourseSlot struct {
	ID        string     `json:"id" gorm:"primaryKey;size:255"`
	CourseID  string     `json:"courseId" gorm:"not null;size:255;index"`
	StartTime time.Time  `json:"startTime" gorm:"not null;index"`
	EndTime   *time.Time `json:"endTime"`
	Location  *string    `json:"location" gorm:"size:200"`
	Notes     *string    `json:"notes" gorm:"size:500"`

	CreatedAt time.Time `json:"createdAt"`
}

func (s *CourseSlot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

func (CourseSlot) TableName() string {
	return "course_slots"
}

// ActiveAt reports whether the slot covers the given instant. A slot
// without an end time stays active once started.
func (s CourseSlot) ActiveAt(now time.Time) bool {
	if s.StartTime.After(now) {
		return false
	}
	return s.EndTime == nil || !s.EndTime.Before(now)
}

func (t OfferType) Valid() bool {
	switch t {
	case OfferPaid, OfferFree, OfferExchange:
		return true
	}
	return false
}

func (m Modality) Valid() bool {
	switch m {
	case ModalityOnline, ModalityInPerson, ModalityFlexible:
		return true
	}
	return false
}
