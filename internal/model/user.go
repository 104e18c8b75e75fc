package model

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// User represents an account in the authentication system.
//
// Emails are stored and matched exactly as submitted; no case normalization
// is applied. The verification and reset token fields are paired with their
// expiries: both members of a pair are set together and cleared together in
// a single update, so a token without an expiry never exists.
type User struct {
	ID                        bson.ObjectID `bson:"_id,omitempty"`
	Email                     string        `bson:"email"`
	Name                      string        `bson:"name"`
	PasswordHash              string        `bson:"password_hash"`
	Verified                  bool          `bson:"verified"`
	VerificationCode          *string       `bson:"verification_code,omitempty"`
	VerificationCodeExpiresAt *time.Time    `bson:"verification_code_expires_at,omitempty"`
	ResetToken                *string       `bson:"reset_token,omitempty"`
	ResetTokenExpiresAt       *time.Time    `bson:"reset_token_expires_at,omitempty"`
	LastLoginAt               *time.Time    `bson:"last_login_at,omitempty"`
	CreatedAt                 time.Time     `bson:"created_at"`
	UpdatedAt                 time.Time     `bson:"updated_at"`
}
