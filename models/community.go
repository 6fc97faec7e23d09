package models

import (
	"time"

	"github.com/google/uuid"
)

// Community is a named group of users. The admin is the creating user and is
// always a member. SolutionsCount is a denormalized counter maintained when
// solutions are submitted.
type Community struct {
	ID             uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Name           string    `json:"name" db:"name" gorm:"type:text;not null;uniqueIndex"`
	Description    string    `json:"description" db:"description" gorm:"type:text;not null"`
	AdminID        uuid.UUID `json:"adminId" db:"admin_id" gorm:"type:uuid;not null"`
	Admin          *User     `json:"-" gorm:"foreignKey:AdminID;references:ID"`
	SolutionsCount int       `json:"solutionsCount" db:"solutions_count" gorm:"not null;default:0"`

	Members []User `json:"-" gorm:"many2many:community_members;"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// CommunityView is the wire shape for a community with its admin partially
// populated and members reduced to their IDs.
type CommunityView struct {
	Community
	AdminSummary *UserSummary `json:"admin,omitempty"`
	MemberIDs    []uuid.UUID  `json:"members"`
}

func (c Community) View() CommunityView {
	view := CommunityView{Community: c, MemberIDs: make([]uuid.UUID, 0, len(c.Members))}
	for _, m := range c.Members {
		view.MemberIDs = append(view.MemberIDs, m.ID)
	}
	if c.Admin != nil {
		summary := c.Admin.Summary()
		view.AdminSummary = &summary
	}
	return view
}
