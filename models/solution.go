package models

import (
	"time"

	"github.com/google/uuid"
)

// Solution is a student submission tied to exactly one community and one
// creator. The submitter fields (UserName, Email, UniversityName) duplicate
// data from the user record for display convenience and are frozen at
// submission time. Votes is a plain counter; repeat votes from the same user
// are not deduplicated.
type Solution struct {
	ID             uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid();not null"`
	Title          string    `json:"title" db:"title" gorm:"type:text;not null"`
	Description    string    `json:"description" db:"description" gorm:"type:text;not null"`
	CommunityID    uuid.UUID `json:"community" db:"community_id" gorm:"type:uuid;not null;index"`
	CreatorID      uuid.UUID `json:"creator" db:"creator_id" gorm:"type:uuid;not null"`
	Creator        *User     `json:"-" gorm:"foreignKey:CreatorID;references:ID"`
	UserName       string    `json:"userName" db:"user_name" gorm:"type:text;not null"`
	Email          string    `json:"email" db:"email" gorm:"type:text;not null"`
	UniversityName string    `json:"universityName" db:"university_name" gorm:"type:text;not null"`
	Category       string    `json:"category" db:"category" gorm:"type:text;not null"`
	ReportFileURL  string    `json:"reportFileUrl,omitempty" db:"report_file_url" gorm:"type:text"`
	YoutubeLink    string    `json:"youtubeLink,omitempty" db:"youtube_link" gorm:"type:text"`
	PrototypeLink  string    `json:"prototypeLink,omitempty" db:"prototype_link" gorm:"type:text"`
	Votes          int       `json:"votes" db:"votes" gorm:"not null;default:0"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// SolutionView carries the creator's display name alongside the solution.
type SolutionView struct {
	Solution
	CreatorName string `json:"creatorName,omitempty"`
}

func (s Solution) View() SolutionView {
	view := SolutionView{Solution: s}
	if s.Creator != nil {
		view.CreatorName = s.Creator.FullName
	}
	return view
}

// Vote types accepted by the vote endpoint. Anything other than "upvote" is
// treated as a downvote.
const (
	VoteUp   = "upvote"
	VoteDown = "downvote"
)
