package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/sorawitch/user-auth-api/internal/usecase"
	"github.com/sorawitch/user-auth-api/internal/validator"
)

// PasswordResetHandler handles the forgot-password and reset-password
// endpoints.
type PasswordResetHandler struct {
	resetUsecase usecase.PasswordResetUsecase
	validate     *validator.Validator
	logger       *zerolog.Logger
}

// NewPasswordResetHandler creates a new PasswordResetHandler instance.
func NewPasswordResetHandler(
	resetUsecase usecase.PasswordResetUsecase,
	validate *validator.Validator,
	logger *zerolog.Logger,
) *PasswordResetHandler {
	return &PasswordResetHandler{
		resetUsecase: resetUsecase,
		validate:     validate,
		logger:       logger,
	}
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (h *PasswordResetHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.ValidateStruct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.resetUsecase.RequestPasswordReset(r.Context(), req.Email); err != nil {
		h.logger.Error().Err(err).Msg("failed to request password reset")
		respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	// The same response is returned whether or not the email matched an
	// account.
	respondJSON(w, http.StatusOK, response{
		Success: true,
		Message: "If an account with that email exists, a password reset link has been sent",
	})
}

type resetPasswordRequest struct {
	Password string `json:"password" validate:"required"`
}

func (h *PasswordResetHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.ValidateStruct(req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.resetUsecase.ResetPassword(r.Context(), token, req.Password); err != nil {
		if errors.Is(err, usecase.ErrInvalidOrExpiredToken) {
			respondError(w, http.StatusBadRequest, "Invalid or expired reset token")
			return
		}

		h.logger.Error().Err(err).Msg("failed to reset password")
		respondError(w, http.StatusInternalServerError, "Something went wrong")
		return
	}

	respondJSON(w, http.StatusOK, response{Success: true, Message: "Password reset successful"})
}
