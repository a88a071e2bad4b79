package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	MentorStatusActive   = "active"
	MentorStatusInactive = "inactive"
)

// Mentor is a mentoring profile owned by exactly one user account.
type Mentor struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Headline  string    `gorm:"size:255;not null" json:"headline"`
	Bio       *string   `gorm:"type:text" json:"bio"`
	Status    string    `gorm:"size:20;not null;default:'active'" json:"status"`
	User      *User     `gorm:"foreignkey:UserID" json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
