package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/marsconnect/mars-quest-backend/errs"
	"github.com/marsconnect/mars-quest-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// challengeHandler serves the fixed in-memory challenge catalogue. There are
// no write operations.
type challengeHandler struct {
	responder Responder
	logger    zerolog.Logger
}

func newChallengeHandler() challengeHandler {
	logger := log.With().Str("handlerName", "challengeHandler").Logger()

	return challengeHandler{
		responder: NewResponder(logger),
		logger:    logger,
	}
}

func (h challengeHandler) getChallenges() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		category := query.Get("category")
		difficulty := query.Get("difficulty")
		limit := parseQueryInt(r, "limit", 0)

		challenges := services.FilterChallenges(category, difficulty, limit)

		h.responder.WriteDataWithMeta(w, http.StatusOK, challenges, map[string]any{
			"total": len(challenges),
			"filters": map[string]any{
				"category":   category,
				"difficulty": difficulty,
				"limit":      limit,
			},
		})
	}
}

func (h challengeHandler) getChallenge() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "challengeID")

		challenge := services.ChallengeByID(id)
		if challenge == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Mission not found"))
			return
		}

		h.responder.WriteData(w, http.StatusOK, challenge)
	}
}

func (h challengeHandler) getChallengesByCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category := chi.URLParam(r, "category")

		challenges := services.FilterChallenges(category, "", 0)

		h.responder.WriteDataWithMeta(w, http.StatusOK, challenges, map[string]any{
			"category": category,
			"total":    len(challenges),
		})
	}
}

func (h challengeHandler) getCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories := services.ChallengeCategories()
		h.responder.WriteDataWithMeta(w, http.StatusOK, categories, map[string]any{
			"total": len(categories),
		})
	}
}

func (h challengeHandler) getDifficulties() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		difficulties := services.ChallengeDifficulties()
		h.responder.WriteDataWithMeta(w, http.StatusOK, difficulties, map[string]any{
			"total": len(difficulties),
		})
	}
}
