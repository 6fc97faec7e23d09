package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

const serviceName = "Mars Quest Backend API"

// setupRoutes mounts the full REST surface. Mutating routes sit behind the
// bearer middleware; reads are public except where the original surface
// protects them (the community tree is fully authenticated).
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Use(ColoredHTTPLoggingMiddleware)

	r.Get("/health", healthHandler())

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", handlers.authHandler.register())
		r.Post("/login", handlers.authHandler.login())
	})

	r.Route("/api/profile", func(r chi.Router) {
		r.Get("/{userID}", handlers.profileHandler.getProfile())

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)
			r.Put("/{userID}", handlers.profileHandler.updateProfile())
			r.Post("/{userID}/avatar", handlers.profileHandler.uploadAvatar())
		})
	})

	r.Route("/api/communities", func(r chi.Router) {
		r.Use(authMiddleware.authenticate)
		r.Post("/", handlers.communityHandler.createCommunity())
		r.Get("/", handlers.communityHandler.getCommunities())
		r.Post("/{communityID}/join", handlers.communityHandler.joinCommunity())
		r.Post("/{communityID}/leave", handlers.communityHandler.leaveCommunity())
		r.Get("/user/{userID}", handlers.communityHandler.getUserCommunities())
	})

	r.Route("/api/solutions", func(r chi.Router) {
		r.Get("/communities/{communityID}/solutions", handlers.solutionHandler.getSolutionsByCommunity())
		r.Get("/solutions/{solutionID}", handlers.solutionHandler.getSolution())

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)
			r.Post("/communities/{communityID}/solutions", handlers.solutionHandler.createSolution())
			r.Post("/solutions/{solutionID}/vote", handlers.solutionHandler.voteSolution())
		})
	})

	r.Route("/api/missions", func(r chi.Router) {
		r.Get("/", handlers.missionHandler.getAllMissions())
		r.Get("/meta/categories", handlers.missionHandler.getCategories())
		r.Get("/meta/difficulties", handlers.missionHandler.getDifficulties())
		r.Get("/{missionID}", handlers.missionHandler.getMission())
		r.Get("/{missionID}/telemetry", handlers.missionHandler.getTelemetry())

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)
			r.Post("/", handlers.missionHandler.createMission())
			r.Put("/{missionID}", handlers.missionHandler.updateMission())
			r.Delete("/{missionID}", handlers.missionHandler.deleteMission())
			r.Post("/{missionID}/telemetry", handlers.missionHandler.addTelemetry())
		})
	})

	r.Route("/api/challenges", func(r chi.Router) {
		r.Get("/", handlers.challengeHandler.getChallenges())
		r.Get("/meta/categories", handlers.challengeHandler.getCategories())
		r.Get("/meta/difficulties", handlers.challengeHandler.getDifficulties())
		r.Get("/category/{category}", handlers.challengeHandler.getChallengesByCategory())
		r.Get("/{challengeID}", handlers.challengeHandler.getChallenge())
	})

	r.Route("/api/nasa", func(r chi.Router) {
		r.Get("/mars-photos", handlers.nasaHandler.getMarsPhotos())
		r.Get("/mars-weather", handlers.nasaHandler.getMarsWeather())
		r.Get("/apod", handlers.nasaHandler.getAPOD())
		r.Get("/rover-manifest/{rover}", handlers.nasaHandler.getRoverManifest())
		r.Get("/rovers", handlers.nasaHandler.getRovers())
		r.Get("/cameras/{rover}", handlers.nasaHandler.getCameras())
		r.Get("/random-photo", handlers.nasaHandler.getRandomPhoto())
	})

	r.NotFound(notFoundHandler())
}

// healthHandler reports liveness. The shape is fixed and not wrapped in the
// standard envelope.
func healthHandler() http.HandlerFunc {
	responder := NewResponder(logWith("healthHandler"))
	return func(w http.ResponseWriter, r *http.Request) {
		responder.writeJSON(w, http.StatusOK, map[string]string{
			"status":    "OK",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"service":   serviceName,
		})
	}
}

// notFoundHandler answers unmatched routes with the path that missed.
func notFoundHandler() http.HandlerFunc {
	responder := NewResponder(logWith("notFoundHandler"))
	return func(w http.ResponseWriter, r *http.Request) {
		responder.writeJSON(w, http.StatusNotFound, map[string]string{
			"error": "Route not found",
			"path":  r.URL.Path,
		})
	}
}
