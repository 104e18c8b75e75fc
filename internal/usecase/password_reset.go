package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/sorawitch/user-auth-api/internal/model"
	"github.com/sorawitch/user-auth-api/internal/repository"
	"github.com/sorawitch/user-auth-api/internal/security"
)

// PasswordResetUsecase defines the business logic for password reset
// operations.
type PasswordResetUsecase interface {
	// RequestPasswordReset initiates the password reset process for a given
	// email. It succeeds whether or not the email matches an account, so the
	// response never reveals account existence.
	RequestPasswordReset(ctx context.Context, email string) error

	// ResetPassword consumes an unexpired reset token and replaces the
	// password of the matching user. Tokens are single use.
	ResetPassword(ctx context.Context, token, newPassword string) (*model.User, error)

	// Wait blocks until in-flight notification emails have been sent.
	Wait()
}

var ErrInvalidOrExpiredToken = errors.New("invalid or expired reset token")

// resetTokenTTL is how long a password reset token stays consumable.
const resetTokenTTL = time.Hour

type passwordResetUsecase struct {
	userRepo   repository.UserRepository
	mailer     Mailer
	dispatcher *mailDispatcher
	clientURL  string

	// NowFunc is used to get the current time.
	// Exposed for testing purposes.
	NowFunc func() time.Time
}

// NewPasswordResetUsecase creates a new instance of PasswordResetUsecase.
// clientURL is the client-facing base URL the reset link is built from.
func NewPasswordResetUsecase(
	userRepo repository.UserRepository,
	mailer Mailer,
	clientURL string,
	logger *zerolog.Logger,
) PasswordResetUsecase {
	return &passwordResetUsecase{
		userRepo:   userRepo,
		mailer:     mailer,
		dispatcher: &mailDispatcher{logger: logger},
		clientURL:  clientURL,
		NowFunc:    time.Now,
	}
}

func (u *passwordResetUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := u.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// To prevent email enumeration, do not reveal that the email
			// does not exist.
			return nil
		}

		return err
	}

	token, err := generateResetToken()
	if err != nil {
		return err
	}

	expiresAt := u.NowFunc().Add(resetTokenTTL)
	if err := u.userRepo.SetResetToken(ctx, user.ID.Hex(), token, expiresAt); err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s/reset-password/%s", u.clientURL, token)
	u.dispatcher.dispatch("password-reset-request", func() error {
		return u.mailer.SendPasswordResetEmail(user.Email, resetLink)
	})

	return nil
}

func (u *passwordResetUsecase) ResetPassword(ctx context.Context, token, newPassword string) (*model.User, error) {
	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.ConsumeResetToken(ctx, token, passwordHash, u.NowFunc())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Wrong, expired and already-consumed tokens are indistinguishable.
			return nil, ErrInvalidOrExpiredToken
		}

		return nil, err
	}

	// The password change has committed. A confirmation email failure is
	// logged by the dispatcher and never affects the outcome.
	u.dispatcher.dispatch("password-reset-success", func() error {
		return u.mailer.SendResetSuccessEmail(user.Email)
	})

	return user, nil
}

func (u *passwordResetUsecase) Wait() {
	u.dispatcher.Wait()
}
