package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/marsconnect/mars-quest-backend/database"
	"github.com/marsconnect/mars-quest-backend/errs"
	"github.com/marsconnect/mars-quest-backend/models"
	"github.com/marsconnect/mars-quest-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type solutionStore interface {
	Submit(solution *models.Solution) error
	FindByCommunity(communityID uuid.UUID) ([]*models.Solution, error)
	FindByID(id uuid.UUID) (*models.Solution, error)
	Vote(id uuid.UUID, voteType string) (*models.Solution, error)
}

type solutionHandler struct {
	responder Responder
	logger    zerolog.Logger
	solutions solutionStore
	uploader  services.Uploader
}

func newSolutionHandler(solutions solutionStore, uploader services.Uploader) solutionHandler {
	logger := log.With().Str("handlerName", "solutionHandler").Logger()

	return solutionHandler{
		responder: NewResponder(logger),
		logger:    logger,
		solutions: solutions,
		uploader:  uploader,
	}
}

// createSolution submits a solution into a community. An optional report file
// is stored first and its URL merged into the record. The insert and the
// community counter bump happen in one repository operation.
func (h solutionHandler) createSolution() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := identityFromCtx(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.NewUnauthorizedError("Unauthorized: User not logged in."))
			return
		}

		communityID, err := parseCommunityID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		reportFileURL, err := uploadFormFile(r, h.uploader, "reportFile", services.SolutionReportFolder, services.IsAllowedUploadType)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		solution := models.Solution{
			Title:          r.FormValue("title"),
			Description:    r.FormValue("description"),
			CommunityID:    communityID,
			CreatorID:      identity.UserID,
			UserName:       r.FormValue("userName"),
			Email:          strings.ToLower(strings.TrimSpace(r.FormValue("email"))),
			UniversityName: r.FormValue("universityName"),
			Category:       r.FormValue("category"),
			ReportFileURL:  reportFileURL,
			YoutubeLink:    r.FormValue("youtubeLink"),
			PrototypeLink:  r.FormValue("prototypeLink"),
		}

		if err := validateSolution(solution); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.solutions.Submit(&solution); err != nil {
			if errors.Is(err, database.ErrCommunityMissing) {
				h.responder.WriteError(w, errs.NewNotFoundError("Community not found"))
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("create", "solution", err))
			return
		}

		h.responder.WriteData(w, http.StatusCreated, solution.View())
	}
}

func validateSolution(s models.Solution) error {
	switch {
	case len(strings.TrimSpace(s.Title)) < 3:
		return errs.NewValidationError("title", "Title must be at least 3 characters")
	case len(strings.TrimSpace(s.Description)) < 10:
		return errs.NewValidationError("description", "Description must be at least 10 characters")
	case strings.TrimSpace(s.UserName) == "":
		return errs.NewValidationError("userName", "Submitter name is required")
	case strings.TrimSpace(s.Email) == "":
		return errs.NewValidationError("email", "Submitter email is required")
	case strings.TrimSpace(s.UniversityName) == "":
		return errs.NewValidationError("universityName", "University name is required")
	case strings.TrimSpace(s.Category) == "":
		return errs.NewValidationError("category", "Category is required")
	}
	return nil
}

// getSolutionsByCommunity lists a community's solutions, newest first.
func (h solutionHandler) getSolutionsByCommunity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		communityID, err := parseCommunityID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		solutions, err := h.solutions.FindByCommunity(communityID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "solutions", err))
			return
		}

		views := make([]models.SolutionView, 0, len(solutions))
		for _, s := range solutions {
			views = append(views, s.View())
		}

		h.responder.WriteData(w, http.StatusOK, views)
	}
}

func parseSolutionID(r *http.Request) (uuid.UUID, error) {
	idStr := chi.URLParam(r, "solutionID")
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid solution id")
	}
	return id, nil
}

func (h solutionHandler) getSolution() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseSolutionID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		solution, err := h.solutions.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "solution", err))
			return
		}
		if solution == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Solution not found."))
			return
		}

		h.responder.WriteData(w, http.StatusOK, solution.View())
	}
}

type voteRequest struct {
	VoteType string `json:"voteType"`
}

// voteSolution adjusts the vote counter. "upvote" adds one, any other value
// subtracts one. Votes are not deduplicated per user.
func (h solutionHandler) voteSolution() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := identityFromCtx(r.Context()); !ok {
			h.responder.WriteError(w, errs.NewUnauthorizedError("Unauthorized: User not logged in."))
			return
		}

		id, err := parseSolutionID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req voteRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("vote payload"))
			return
		}

		solution, err := h.solutions.Vote(id, req.VoteType)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("vote on", "solution", err))
			return
		}
		if solution == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Solution not found."))
			return
		}

		h.responder.WriteData(w, http.StatusOK, solution.View())
	}
}
