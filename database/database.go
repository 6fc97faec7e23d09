package database

import (
	"gorm.io/gorm"
)

type Database struct {
	userRepo      *UserRepo
	communityRepo *CommunityRepo
	solutionRepo  *SolutionRepo
	missionRepo   *MissionRepo
}

// New initializes a new Database struct with each repository using a shared
// GORM database instance. The handle is injected here rather than held as a
// package-level singleton so tests can swap it.
func New(db *gorm.DB) Database {
	return Database{
		userRepo:      NewUserRepo(db),
		communityRepo: NewCommunityRepo(db),
		solutionRepo:  NewSolutionRepo(db),
		missionRepo:   NewMissionRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) CommunityRepo() *CommunityRepo {
	return d.communityRepo
}

func (d Database) SolutionRepo() *SolutionRepo {
	return d.solutionRepo
}

func (d Database) MissionRepo() *MissionRepo {
	return d.missionRepo
}
