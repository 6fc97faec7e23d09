package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/marsconnect/mars-quest-backend/auth"
	"github.com/marsconnect/mars-quest-backend/errs"
	"github.com/marsconnect/mars-quest-backend/models"
	"github.com/marsconnect/mars-quest-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// authUserStore is the slice of the user repository the auth endpoints need.
type authUserStore interface {
	FindByEmail(email string) (*models.User, error)
	FindByUsername(username string) (*models.User, error)
	Add(user *models.User) error
}

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	users     authUserStore
	tokens    auth.TokenIssuer
	uploader  services.Uploader
}

func newAuthHandler(users authUserStore, tokens auth.TokenIssuer, uploader services.Uploader) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		users:     users,
		tokens:    tokens,
		uploader:  uploader,
	}
}

type registerRequest struct {
	Username          string `json:"username"`
	Email             string `json:"email"`
	Password          string `json:"password"`
	FullName          string `json:"fullName"`
	SchoolUniversity  string `json:"schoolUniversity"`
	ClassStreamCourse string `json:"classStreamCourse"`
	Location          string `json:"location"`
	Gender            string `json:"gender"`
	ContactNumber     string `json:"contactNumber"`
}

type tokenResponse struct {
	Message string    `json:"message"`
	Token   string    `json:"token"`
	UserID  uuid.UUID `json:"userId"`
	Role    string    `json:"role"`
}

// decodeRegisterRequest reads the registration payload from a JSON body or,
// when an avatar file rides along, from multipart form fields.
func decodeRegisterRequest(r *http.Request) (registerRequest, error) {
	var req registerRequest

	if isMultipart(r) {
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			return req, errs.Malformed("registration form")
		}
		req = registerRequest{
			Username:          r.FormValue("username"),
			Email:             r.FormValue("email"),
			Password:          r.FormValue("password"),
			FullName:          r.FormValue("fullName"),
			SchoolUniversity:  r.FormValue("schoolUniversity"),
			ClassStreamCourse: r.FormValue("classStreamCourse"),
			Location:          r.FormValue("location"),
			Gender:            r.FormValue("gender"),
			ContactNumber:     r.FormValue("contactNumber"),
		}
		return req, nil
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, errs.Malformed("registration payload")
	}
	return req, nil
}

func (req registerRequest) validate() error {
	switch {
	case strings.TrimSpace(req.Username) == "":
		return errs.NewValidationError("username", "Username is required")
	case len(req.Username) < 3 || len(req.Username) > 30:
		return errs.NewValidationError("username", "Username must be between 3 and 30 characters")
	case strings.TrimSpace(req.Email) == "":
		return errs.NewValidationError("email", "Email is required")
	case !strings.Contains(req.Email, "@"):
		return errs.NewValidationError("email", "Please use a valid email address")
	case len(req.Password) < 8:
		return errs.NewValidationError("password", "Password must be at least 8 characters")
	}
	return nil
}

// register creates a user account, optionally storing an avatar image, and
// returns a signed access token.
func (h authHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeRegisterRequest(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := req.validate(); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		email := strings.ToLower(strings.TrimSpace(req.Email))

		existing, err := h.users.FindByEmail(email)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		if existing != nil {
			h.responder.WriteError(w, errs.BadRequest("User already exists with this email"))
			return
		}

		existing, err = h.users.FindByUsername(req.Username)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		if existing != nil {
			h.responder.WriteError(w, errs.BadRequest("User already exists with this username"))
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("Failed to hash password"))
			return
		}

		avatarURL, err := uploadFormFile(r, h.uploader, "avatar", services.AvatarFolder, services.IsAllowedAvatarType)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if avatarURL == "" {
			avatarURL = models.DefaultAvatarURL
		}

		user := models.User{
			Username:             req.Username,
			Email:                email,
			Password:             hash,
			Role:                 models.RoleUser,
			FullName:             req.FullName,
			SchoolUniversity:     req.SchoolUniversity,
			ClassStreamCourse:    req.ClassStreamCourse,
			Location:             req.Location,
			Gender:               req.Gender,
			ContactNumber:        req.ContactNumber,
			AvatarURL:            avatarURL,
			NotificationsEnabled: true,
		}

		if err := h.users.Add(&user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "user", err))
			return
		}

		token, err := h.tokens.Sign(user.ID, user.Role)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("Failed to issue token"))
			return
		}

		h.responder.WriteData(w, http.StatusCreated, tokenResponse{
			Message: "User registered successfully",
			Token:   token,
			UserID:  user.ID,
			Role:    user.Role,
		})
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// login exchanges email/password for an access token. Unknown emails and
// wrong passwords fail with the same message so neither is leaked.
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.Malformed("login payload"))
			return
		}

		user, err := h.users.FindByEmail(strings.ToLower(strings.TrimSpace(req.Email)))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}
		if user == nil || !auth.CheckPassword(user.Password, req.Password) {
			h.responder.WriteError(w, errs.NewUnauthorizedError("Invalid credentials"))
			return
		}

		token, err := h.tokens.Sign(user.ID, user.Role)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalError("Failed to issue token"))
			return
		}

		h.responder.WriteData(w, http.StatusOK, tokenResponse{
			Message: "Logged in successfully",
			Token:   token,
			UserID:  user.ID,
			Role:    user.Role,
		})
	}
}
