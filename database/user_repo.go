package database

import (
	"errors"

	"github.com/google/uuid"
	"github.com/marsconnect/mars-quest-backend/models"
	"gorm.io/gorm"
)

type UserRepo struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) *UserRepo {
	return &UserRepo{db}
}

// FindByID returns a user by id, or nil when no such user exists.
func (r *UserRepo) FindByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail returns a user by email, or nil when no such user exists.
func (r *UserRepo) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername returns a user by username, or nil when no such user exists.
func (r *UserRepo) FindByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Add inserts a new user into the database.
func (r *UserRepo) Add(user *models.User) error {
	return r.db.Create(user).Error
}

// UpdateProfile applies the given column updates to a user and returns the
// refreshed record. Callers restrict the update map to profile fields.
func (r *UserRepo) UpdateProfile(id uuid.UUID, updates map[string]any) (*models.User, error) {
	result := r.db.Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.FindByID(id)
}

// SetAvatarURL stores the uploaded avatar location on the user.
func (r *UserRepo) SetAvatarURL(id uuid.UUID, url string) (*models.User, error) {
	return r.UpdateProfile(id, map[string]any{"avatar_url": url})
}

// FindCommunities returns the communities a user belongs to, with each
// community's member list populated.
func (r *UserRepo) FindCommunities(userID uuid.UUID) ([]models.Community, error) {
	var user models.User
	err := r.db.Preload("Communities.Members").First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, gorm.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return user.Communities, nil
}
