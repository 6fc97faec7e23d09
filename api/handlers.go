package api

import (
	"github.com/marsconnect/mars-quest-backend/auth"
	"github.com/marsconnect/mars-quest-backend/database"
	"github.com/marsconnect/mars-quest-backend/services"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler      authHandler
	profileHandler   profileHandler
	communityHandler communityHandler
	solutionHandler  solutionHandler
	missionHandler   missionHandler
	challengeHandler challengeHandler
	nasaHandler      nasaHandler
}

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(db database.Database, tokens auth.TokenIssuer, nasa nasaAPI, uploader services.Uploader) *routeHandlers {
	return &routeHandlers{
		authHandler:      newAuthHandler(db.UserRepo(), tokens, uploader),
		profileHandler:   newProfileHandler(db.UserRepo(), uploader),
		communityHandler: newCommunityHandler(db.CommunityRepo(), db.UserRepo()),
		solutionHandler:  newSolutionHandler(db.SolutionRepo(), uploader),
		missionHandler:   newMissionHandler(db.MissionRepo()),
		challengeHandler: newChallengeHandler(),
		nasaHandler:      newNASAHandler(nasa),
	}
}
