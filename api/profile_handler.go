package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/marsconnect/mars-quest-backend/errs"
	"github.com/marsconnect/mars-quest-backend/models"
	"github.com/marsconnect/mars-quest-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// profileStore is the slice of the user repository the profile endpoints need.
type profileStore interface {
	FindByID(id uuid.UUID) (*models.User, error)
	UpdateProfile(id uuid.UUID, updates map[string]any) (*models.User, error)
	SetAvatarURL(id uuid.UUID, url string) (*models.User, error)
}

type profileHandler struct {
	responder Responder
	logger    zerolog.Logger
	users     profileStore
	uploader  services.Uploader
}

func newProfileHandler(users profileStore, uploader services.Uploader) profileHandler {
	logger := log.With().Str("handlerName", "profileHandler").Logger()

	return profileHandler{
		responder: NewResponder(logger),
		logger:    logger,
		users:     users,
		uploader:  uploader,
	}
}

func parseUserID(r *http.Request) (uuid.UUID, error) {
	idStr := chi.URLParam(r, "userID")
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, errs.NewBadRequestError("invalid user id")
	}
	return id, nil
}

// getProfile returns the user record without its password hash.
func (h profileHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUserID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.users.FindByID(id)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("User not found"))
			return
		}

		h.responder.WriteData(w, http.StatusOK, user)
	}
}

type profileUpdateRequest struct {
	FullName             *string `json:"fullName"`
	SchoolUniversity     *string `json:"schoolUniversity"`
	ClassStreamCourse    *string `json:"classStreamCourse"`
	Location             *string `json:"location"`
	Gender               *string `json:"gender"`
	ContactNumber        *string `json:"contactNumber"`
	NotificationsEnabled *bool   `json:"notificationsEnabled"`
}

// columnUpdates maps the set fields onto their columns. Email, password and
// role are not updatable through the profile route.
func (req profileUpdateRequest) columnUpdates() map[string]any {
	updates := make(map[string]any)
	if req.FullName != nil {
		updates["full_name"] = *req.FullName
	}
	if req.SchoolUniversity != nil {
		updates["school_university"] = *req.SchoolUniversity
	}
	if req.ClassStreamCourse != nil {
		updates["class_stream_course"] = *req.ClassStreamCourse
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.ContactNumber != nil {
		updates["contact_number"] = *req.ContactNumber
	}
	if req.NotificationsEnabled != nil {
		updates["notifications_enabled"] = *req.NotificationsEnabled
	}
	return updates
}

// updateProfile applies a partial update of the profile fields.
func (h profileHandler) updateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUserID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req profileUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("profile payload"))
			return
		}

		updates := req.columnUpdates()
		if len(updates) == 0 {
			h.responder.WriteError(w, errs.BadRequest("No profile fields to update"))
			return
		}

		user, err := h.users.UpdateProfile(id, updates)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("User not found"))
			return
		}

		h.responder.WriteData(w, http.StatusOK, user)
	}
}

// uploadAvatar stores a new avatar image and records its URL on the user.
func (h profileHandler) uploadAvatar() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := parseUserID(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		url, err := uploadFormFile(r, h.uploader, "avatar", services.AvatarFolder, services.IsAllowedAvatarType)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if url == "" {
			h.responder.WriteError(w, errs.BadRequest("Avatar file is required"))
			return
		}

		user, err := h.users.SetAvatarURL(id, url)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "user", err))
			return
		}
		if user == nil {
			h.responder.WriteError(w, errs.NewNotFoundError("User not found"))
			return
		}

		h.responder.WriteData(w, http.StatusOK, user)
	}
}
