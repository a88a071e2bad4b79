package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FullName  string    `gorm:"size:255;not null" json:"full_name"`
	Email     string    `gorm:"size:255;not null;unique" json:"email"`
	Password  string    `gorm:"not null" json:"-"`
	Role      string    `gorm:"size:20;not null;default:'member'" json:"role"`
	AvatarURL *string   `gorm:"size:255" json:"avatar_url"`
	Bio       *string   `gorm:"type:text" json:"bio"`
	XP        int       `gorm:"default:0" json:"xp"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// LeaderboardEntry is a read model for the XP leaderboard.
type LeaderboardEntry struct {
	UserID    uuid.UUID `json:"user_id"`
	FullName  string    `json:"full_name"`
	XP        int       `json:"xp"`
	AvatarURL *string   `json:"avatar_url"`
}
