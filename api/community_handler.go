package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/marsconnect/mars-quest-backend/errs"
	"github.com/marsconnect/mars-quest-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type communityStore interface {
	Add(community *models.Community) error
	FindAll() ([]*models.Community, error)
	FindByID(id uuid.UUID) (*models.Community, error)
	AddMember(communityID, userID uuid.UUID) error
	RemoveMember(communityID, userID uuid.UUID) error
}

// memberLookup resolves the communities a user belongs to.
type memberLookup interface {
	FindCommunities(userID uuid.UUID) ([]models.Community, error)
}

type communityHandler struct {
	responder   Responder
	logger      zerolog.Logger
	communities communityStore
	members     memberLookup
}

func newCommunityHandler(communities communityStore, members memberLookup) communityHandler {
	logger := log.With().Str("handlerName", "communityHandler").Logger()

	return communityHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		communities: communities,
		members:     members,
	}
}

type createCommunityRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// createCommunity makes the caller the admin and first member of a new group.
func (h communityHandler) createCommunity() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := identityFromCtx(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.NewUnauthorizedError("Unauthorized: Admin ID not found"))
			return
		}

		var req createCommunityRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("community payload"))
			return
		}

		if len(strings.TrimSpace(req.Name)) < 3 {
			h.responder.WriteError(w, errs.NewValidationError("name", "Community name must be at least 3 characters"))
			return
		}
		if len(strings.TrimSpace(req.Description)) < 4 {
			h.responder.WriteError(w, errs.NewValidationError("description", "Community description must be at least 4 characters"))
			return
		}

		community := models.Community{
			Name:        strings.TrimSpace(req.Name),
			Description: strings.TrimSpace(req.Description),
			AdminID:     identity.UserID,
		}

		if err := h.communities.Add(&community); err != nil {
			if errs.IsDuplicateKey(err) {
				h.responder.WriteError(w, errs.NewConflictError("Community with this name already exists"))
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("create", "community", err))
			return
		}

		created, err := h.communities.FindByID(community.ID)
		if err != nil || created == nil {
			// fall back to the bare record when the reload fails
			h.responder.WriteData(w, http.StatusCreated, community.View())
			return
		}

		h.responder.WriteData(w, http.StatusCreated, created.View())
	}
}

func parseCommunityID(r *http.Request) (uuid.UUID, error) {
	idStr := chi.URLParam(r, "communityID")
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid community id")
	}
	return id, nil
}

// membershipChange covers join and leave, which differ only in the mutation
// applied. Both are idempotent.
func (h communityHandler) membershipChange(mutate func(communityID, userID uuid.UUID) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := identityFromCtx(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.NewUnauthorizedError("Unauthorized: User ID not found"))
			return
		}

		communityID, err := parseCommunityID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		community, err := h.communities.FindByID(communityID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "community", err))
			return
		}
		if community == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("Community not found"))
			return
		}

		if err := mutate(communityID, identity.UserID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update membership of", "community", err))
			return
		}

		updated, err := h.communities.FindByID(communityID)
		if err != nil || updated == nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "community", err))
			return
		}

		h.responder.WriteData(w, http.StatusOK, updated.View())
	}
}

func (h communityHandler) joinCommunity() http.HandlerFunc {
	return h.membershipChange(h.communities.AddMember)
}

func (h communityHandler) leaveCommunity() http.HandlerFunc {
	return h.membershipChange(h.communities.RemoveMember)
}

// getCommunities lists every community with its admin partially populated.
func (h communityHandler) getCommunities() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		communities, err := h.communities.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "communities", err))
			return
		}

		views := make([]models.CommunityView, 0, len(communities))
		for _, c := range communities {
			views = append(views, c.View())
		}

		h.responder.WriteDataWithMeta(w, http.StatusOK, views, map[string]any{"total": len(views)})
	}
}

// getUserCommunities lists the communities one user belongs to.
func (h communityHandler) getUserCommunities() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := parseUserID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		communities, err := h.members.FindCommunities(userID)
		if err != nil {
			if errs.IsNotFound(err) {
				h.responder.WriteError(w, errs.NewNotFoundError("User not found"))
				return
			}
			h.responder.WriteError(w, wrapDatabaseError("find communities of", "user", err))
			return
		}

		views := make([]models.CommunityView, 0, len(communities))
		for _, c := range communities {
			views = append(views, c.View())
		}

		h.responder.WriteDataWithMeta(w, http.StatusOK, views, map[string]any{"total": len(views)})
	}
}
