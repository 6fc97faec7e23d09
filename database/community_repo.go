package database

import (
	"errors"

	"github.com/google/uuid"
	"github.com/marsconnect/mars-quest-backend/models"
	"gorm.io/gorm"
)

type CommunityRepo struct {
	db *gorm.DB
}

func NewCommunityRepo(db *gorm.DB) *CommunityRepo {
	return &CommunityRepo{db}
}

// Add inserts a new community and enrolls the admin as its first member, in
// one transaction.
func (r *CommunityRepo) Add(community *models.Community) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(community).Error; err != nil {
			return err
		}
		admin := models.User{ID: community.AdminID}
		return tx.Model(community).Association("Members").Append(&admin)
	})
}

// FindAll returns all communities with admin and members populated.
func (r *CommunityRepo) FindAll() ([]*models.Community, error) {
	var communities []*models.Community
	err := r.db.Preload("Admin").Preload("Members").Find(&communities).Error
	return communities, err
}

// FindByID returns a community by id, or nil when no such community exists.
func (r *CommunityRepo) FindByID(id uuid.UUID) (*models.Community, error) {
	var community models.Community
	err := r.db.Preload("Admin").Preload("Members").First(&community, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &community, nil
}

// AddMember enrolls a user into a community. The membership row is upserted,
// so joining twice leaves the member set unchanged.
func (r *CommunityRepo) AddMember(communityID, userID uuid.UUID) error {
	community := models.Community{ID: communityID}
	member := models.User{ID: userID}
	return r.db.Model(&community).Association("Members").Append(&member)
}

// RemoveMember withdraws a user from a community. Removing a non-member is a
// no-op.
func (r *CommunityRepo) RemoveMember(communityID, userID uuid.UUID) error {
	community := models.Community{ID: communityID}
	member := models.User{ID: userID}
	return r.db.Model(&community).Association("Members").Delete(&member)
}
