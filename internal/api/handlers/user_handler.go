package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/paulikeo/mercadito/internal/api/respond"
	"github.com/paulikeo/mercadito/internal/auth"
	"github.com/paulikeo/mercadito/internal/services"
)

// UserHandler handles HTTP requests for registration and login.
type UserHandler struct {
	service  services.UserServiceProvider
	tokens   *auth.Manager
	validate *validator.Validate
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service services.UserServiceProvider, tokens *auth.Manager) *UserHandler {
	return &UserHandler{service: service, tokens: tokens, validate: validator.New()}
}

// RegisterPayload defines the structure for registration requests.
type RegisterPayload struct {
	FullName        string `json:"fullName" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// AuthPayload defines the structure for login requests.
type AuthPayload struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// sessionUser is the login response body: the denormalized identity the
// client persists alongside the token.
type sessionUser struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Token    string `json:"token"`
}

func validationMsg(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			if fe.Tag() == "email" {
				return "invalid email address"
			}
		}
	}
	return "all fields are required"
}

// Register handles new user registration. No token is issued; the user logs
// in explicitly afterwards.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respond.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validate.Struct(payload); err != nil {
		respond.Fail(w, http.StatusBadRequest, validationMsg(err))
		return
	}

	user, err := h.service.RegisterUser(payload.FullName, payload.Email, payload.Password, payload.ConfirmPassword)
	if err != nil {
		writeErr(w, err, "failed to register user")
		return
	}

	log.Info().Int64("user_id", user.ID).Str("email", user.Email).Msg("user registered")
	respond.OK(w, respond.Envelope{"msg": "user registered, please log in"})
}

// Login handles authentication and token issuance.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload AuthPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respond.Fail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validate.Struct(payload); err != nil {
		respond.Fail(w, http.StatusBadRequest, validationMsg(err))
		return
	}

	user, err := h.service.AuthenticateUser(payload.Email, payload.Password)
	if err != nil {
		log.Warn().Str("email", payload.Email).Msg("failed authentication attempt")
		writeErr(w, err, "failed to authenticate user")
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		log.Error().Err(err).Int64("user_id", user.ID).Msg("failed to sign token")
		respond.Fail(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	respond.OK(w, respond.Envelope{"user": sessionUser{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Token:    token,
	}})
}

// VerifyToken confirms a bearer token still resolves to a live account.
// The auth middleware has already done the work by the time this runs.
func (h *UserHandler) VerifyToken(w http.ResponseWriter, r *http.Request) {
	respond.OK(w, nil)
}
