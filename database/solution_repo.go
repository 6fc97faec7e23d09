package database

import (
	"errors"

	"github.com/google/uuid"
	"github.com/marsconnect/mars-quest-backend/models"
	"gorm.io/gorm"
)

// ErrCommunityMissing is returned by Submit when the owning community does
// not exist.
var ErrCommunityMissing = errors.New("community does not exist")

type SolutionRepo struct {
	db *gorm.DB
}

func NewSolutionRepo(db *gorm.DB) *SolutionRepo {
	return &SolutionRepo{db}
}

// Submit inserts the solution and increments the owning community's
// denormalized solutions counter. Both writes ride one transaction so the
// counter cannot drift from the solution rows.
func (r *SolutionRepo) Submit(solution *models.Solution) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var community models.Community
		if err := tx.Select("id").First(&community, "id = ?", solution.CommunityID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCommunityMissing
			}
			return err
		}

		if err := tx.Create(solution).Error; err != nil {
			return err
		}

		return tx.Model(&models.Community{}).
			Where("id = ?", solution.CommunityID).
			UpdateColumn("solutions_count", gorm.Expr("solutions_count + 1")).Error
	})
}

// FindByCommunity returns all solutions submitted to a community, creator
// populated.
func (r *SolutionRepo) FindByCommunity(communityID uuid.UUID) ([]*models.Solution, error) {
	var solutions []*models.Solution
	err := r.db.Preload("Creator").
		Where("community_id = ?", communityID).
		Order("created_at DESC").
		Find(&solutions).Error
	return solutions, err
}

// FindByID returns a solution by id, or nil when no such solution exists.
func (r *SolutionRepo) FindByID(id uuid.UUID) (*models.Solution, error) {
	var solution models.Solution
	err := r.db.Preload("Creator").First(&solution, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &solution, nil
}

// Vote adjusts the vote counter by one and returns the refreshed solution.
// "upvote" increments; any other vote type decrements. There is no per-user
// record, so repeat votes keep counting.
func (r *SolutionRepo) Vote(id uuid.UUID, voteType string) (*models.Solution, error) {
	delta := -1
	if voteType == models.VoteUp {
		delta = 1
	}

	result := r.db.Model(&models.Solution{}).
		Where("id = ?", id).
		UpdateColumn("votes", gorm.Expr("votes + ?", delta))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	return r.FindByID(id)
}
