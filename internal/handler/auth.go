// Package handler exposes the authentication operations over HTTP.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/sorawitch/user-auth-api/internal/auth"
	"github.com/sorawitch/user-auth-api/internal/config"
	"github.com/sorawitch/user-auth-api/internal/model"
	"github.com/sorawitch/user-auth-api/internal/usecase"
	"github.com/sorawitch/user-auth-api/internal/validator"
)

// AuthHandler handles the signup, verification, login and session endpoints.
type AuthHandler struct {
	authUsecase  usecase.AuthUsecase
	jwtAuth      auth.JWTAuthenticator
	validate     *validator.Validator
	tokenCfg     config.TokenConfig
	secureCookie bool
	logger       *zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(
	authUsecase usecase.AuthUsecase,
	jwtAuth auth.JWTAuthenticator,
	validate *validator.Validator,
	tokenCfg config.TokenConfig,
	secureCookie bool,
	logger *zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authUsecase:  authUsecase,
		jwtAuth:      jwtAuth,
		validate:     validate,
		tokenCfg:     tokenCfg,
		secureCookie: secureCookie,
		logger:       logger,
	}
}

type signupRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"     validate:"required"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.ValidateStruct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.authUsecase.Register(r.Context(), usecase.RegisterParams{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrUserAlreadyExists) {
			respondError(w, http.StatusBadRequest, "User already exists")
			return
		}

		h.logger.Error().Err(err).Msg("failed to register user")
		respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	if !h.issueSession(w, user) {
		return
	}

	respondJSON(w, http.StatusCreated, response{
		Success: true,
		Message: "User created successfully",
		User:    newUserPayload(user),
	})
}

type verifyEmailRequest struct {
	Code string `json:"code" validate:"required"`
}

func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var req verifyEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.ValidateStruct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.authUsecase.VerifyEmail(r.Context(), req.Code)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidOrExpiredCode) {
			respondError(w, http.StatusBadRequest, "Invalid or expired verification code")
			return
		}

		h.logger.Error().Err(err).Msg("failed to verify email")
		respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	respondJSON(w, http.StatusOK, response{
		Success: true,
		Message: "Email verified successfully",
		User:    newUserPayload(user),
	})
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.ValidateStruct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.authUsecase.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidCredentials) {
			respondError(w, http.StatusBadRequest, "Invalid credentials")
			return
		}

		h.logger.Error().Err(err).Msg("failed to log in user")
		respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	if !h.issueSession(w, user) {
		return
	}

	respondJSON(w, http.StatusOK, response{
		Success: true,
		Message: "Logged in successfully",
		User:    newUserPayload(user),
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	// Sessions are self-contained signed tokens with no server-side record,
	// so logout only instructs the client to discard the cookie.
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})

	respondJSON(w, http.StatusOK, response{Success: true, Message: "Logged out successfully"})
}

func (h *AuthHandler) CheckAuth(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized - no token provided")
		return
	}

	user, err := h.authUsecase.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			respondError(w, http.StatusBadRequest, "User not found")
			return
		}

		h.logger.Error().Err(err).Msg("failed to look up authenticated user")
		respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	respondJSON(w, http.StatusOK, response{Success: true, User: newUserPayload(user)})
}

// issueSession generates a session token for the user and sets the cookie.
// It reports false after writing an error response when signing fails.
func (h *AuthHandler) issueSession(w http.ResponseWriter, user *model.User) bool {
	token, err := h.jwtAuth.GenerateSessionToken(user.ID.Hex(), h.tokenCfg.Secret, h.tokenCfg.SessionExpiresIn)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to generate session token")
		respondError(w, http.StatusInternalServerError, "Something went wrong")
		return false
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokenCfg.SessionExpiresIn.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteStrictMode,
	})

	return true
}
