package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// NewRouter assembles the HTTP routes of the authentication service.
func NewRouter(
	authHandler *AuthHandler,
	resetHandler *PasswordResetHandler,
	logger *zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)

	r.Post("/signup", authHandler.Signup)
	r.Post("/verify-email", authHandler.VerifyEmail)
	r.Post("/login", authHandler.Login)
	r.Post("/logout", authHandler.Logout)
	r.Post("/forgot-password", resetHandler.ForgotPassword)
	r.Post("/reset-password/{token}", resetHandler.ResetPassword)

	r.Group(func(r chi.Router) {
		r.Use(authHandler.RequireAuth)
		r.Get("/check-auth", authHandler.CheckAuth)
	})

	return r
}
