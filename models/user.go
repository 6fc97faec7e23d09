package models

import (
	"time"

	"github.com/google/uuid"
)

const DefaultAvatarURL = "https://github.com/shadcn.png"

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the identity record behind every authenticated request. The
// password column holds a bcrypt hash and is never serialized.
type User struct {
	ID                   uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Username             string    `json:"username" db:"username" gorm:"type:text;not null;uniqueIndex"`
	Email                string    `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex"`
	Password             string    `json:"-" db:"password" gorm:"type:text;not null"`
	Role                 string    `json:"role" db:"role" gorm:"type:text;not null;default:user"`
	FullName             string    `json:"fullName" db:"full_name" gorm:"type:text"`
	SchoolUniversity     string    `json:"schoolUniversity" db:"school_university" gorm:"type:text"`
	ClassStreamCourse    string    `json:"classStreamCourse" db:"class_stream_course" gorm:"type:text"`
	Location             string    `json:"location" db:"location" gorm:"type:text"`
	Gender               string    `json:"gender" db:"gender" gorm:"type:text"`
	ContactNumber        string    `json:"contactNumber" db:"contact_number" gorm:"type:text"`
	AvatarURL            string    `json:"avatarUrl" db:"avatar_url" gorm:"type:text"`
	NotificationsEnabled bool      `json:"notificationsEnabled" db:"notifications_enabled" gorm:"not null;default:true"`

	Communities []Community `json:"communities,omitempty" gorm:"many2many:community_members;"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// UserSummary is the partial projection used when populating references to a
// user on other resources (community admins, solution creators).
type UserSummary struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	AvatarURL string    `json:"avatarUrl"`
}

func (u User) Summary() UserSummary {
	return UserSummary{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		AvatarURL: u.AvatarURL,
	}
}
