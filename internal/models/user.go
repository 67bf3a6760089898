package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleStudent UserRole = "STUDENT"
	RoleTeacher UserRole = "TEACHER"
	RoleAdmin   UserRole = "ADMIN"
)

// User is created on first successful sign-in through the identity
// provider; role defaults to STUDENT and is only changed by an admin.
type User struct {
	ID    string   `json:"id" gorm:"primaryKey;size:255"`
	Name  string   `json:"name" gorm:"size:100"`
	Email string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Image *string  `json:"image" gorm:"size:500"`
	Role  UserRole `json:"role" gorm:"not null;default:STUDENT;size:20;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Profile  *Profile        `json:"profile,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Courses  []Course        `json:"courses,omitempty" gorm:"foreignKey:TeacherID;constraint:OnDelete:CASCADE"`
	Requests []CourseRequest `json:"requests,omitempty" gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

func (User) TableName() string {
	return "users"
}

func (r UserRole) Valid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	}
	return false
}
