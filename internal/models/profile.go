package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProjectLink is one entry of the profile's project_links JSONB list.
type ProjectLink struct {
	Name        string `json:"name"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// Certificate is one entry of the profile's certificates JSONB list.
type Certificate struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date,omitempty"`
	URL    string `json:"url,omitempty"`
}

// Profile is the optional one-to-one extension of a User. It is only
// ever written through an upsert keyed by user_id; there is no
// explicit-create path.
type Profile struct {
	ID     string `json:"id" gorm:"primaryKey;size:255"`
	UserID string `json:"user_id" gorm:"uniqueIndex;not null;size:255"`

	Bio      *string `json:"bio" gorm:"type:text"`
	Phone    *string `json:"phone" gorm:"size:50"`
	Location *string `json:"location" gorm:"size:200"`

	// Ordered URL lists stored as JSONB ([]string)
	Videos datatypes.JSON `json:"videos" gorm:"type:jsonb"`
	Images datatypes.JSON `json:"images" gorm:"type:jsonb"`

	// JSONB lists of ProjectLink / Certificate
	ProjectLinks datatypes.JSON `json:"project_links" gorm:"type:jsonb"`
	Certificates datatypes.JSON `json:"certificates" gorm:"type:jsonb"`

	ResumeURL *string `json:"resume_url" gorm:"size:500"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

func (Profile) TableName() string {
	return "user_profiles"
}
