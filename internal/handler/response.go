package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/sorawitch/user-auth-api/internal/model"
)

// response is the JSON envelope returned by every endpoint.
type response struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	User    *userPayload `json:"user,omitempty"`
}

// userPayload is the outward-facing representation of a user. The password
// hash and pending token fields are deliberately absent.
type userPayload struct {
	ID          string     `json:"id"`
	Email       string     `json:"email"`
	Name        string     `json:"name"`
	IsVerified  bool       `json:"isVerified"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

func newUserPayload(user *model.User) *userPayload {
	return &userPayload{
		ID:          user.ID.Hex(),
		Email:       user.Email,
		Name:        user.Name,
		IsVerified:  user.Verified,
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}

func respondJSON(w http.ResponseWriter, status int, resp response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, response{Success: false, Message: message})
}
