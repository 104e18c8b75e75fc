// Package usecase implements the credential and token lifecycle rules of the
// authentication service.
package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/sorawitch/user-auth-api/internal/model"
	"github.com/sorawitch/user-auth-api/internal/repository"
	"github.com/sorawitch/user-auth-api/internal/security"
)

// AuthUsecase defines the interface for authentication-related use cases.
type AuthUsecase interface {
	// Register creates a new unverified user with a pending verification
	// code and sends the verification email.
	Register(ctx context.Context, params RegisterParams) (*model.User, error)

	// VerifyEmail consumes an unexpired verification code and marks the
	// matching user as verified. Codes are single use.
	VerifyEmail(ctx context.Context, code string) (*model.User, error)

	// Login checks the credentials and records the login time.
	Login(ctx context.Context, params LoginParams) (*model.User, error)

	// GetUser returns the user with the given ID.
	GetUser(ctx context.Context, id string) (*model.User, error)

	// Wait blocks until in-flight notification emails have been sent.
	Wait()
}

// RegisterParams defines the parameters for user registration.
type RegisterParams struct {
	Email    string
	Name     string
	Password string
}

// LoginParams defines the parameters for user login.
type LoginParams struct {
	Email    string
	Password string
}

var (
	ErrUserAlreadyExists    = errors.New("user already exists")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidOrExpiredCode = errors.New("invalid or expired verification code")
	ErrUserNotFound         = errors.New("user not found")
)

// verificationCodeTTL is how long a verification code stays consumable.
const verificationCodeTTL = 24 * time.Hour

type authUsecase struct {
	userRepo   repository.UserRepository
	mailer     Mailer
	dispatcher *mailDispatcher

	// comparisonHash is verified against when no user matches the login
	// email, so the unknown-email and wrong-password paths take similar
	// time.
	comparisonHash string

	// NowFunc is used to get the current time.
	// Exposed for testing purposes.
	NowFunc func() time.Time
}

// NewAuthUsecase creates a new instance of AuthUsecase.
func NewAuthUsecase(
	userRepo repository.UserRepository,
	mailer Mailer,
	logger *zerolog.Logger,
) (AuthUsecase, error) {
	comparisonHash, err := security.HashPassword(uuid.NewString())
	if err != nil {
		return nil, err
	}

	return &authUsecase{
		userRepo:       userRepo,
		mailer:         mailer,
		dispatcher:     &mailDispatcher{logger: logger},
		comparisonHash: comparisonHash,
		NowFunc:        time.Now,
	}, nil
}

func (u *authUsecase) Register(ctx context.Context, params RegisterParams) (*model.User, error) {
	passwordHash, err := security.HashPassword(params.Password)
	if err != nil {
		return nil, err
	}

	code, err := generateVerificationCode()
	if err != nil {
		return nil, err
	}

	expiresAt := u.NowFunc().Add(verificationCodeTTL)

	user, err := u.userRepo.CreateUser(ctx, &model.User{
		Email:                     params.Email,
		Name:                      params.Name,
		PasswordHash:              passwordHash,
		Verified:                  false,
		VerificationCode:          &code,
		VerificationCodeExpiresAt: &expiresAt,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrUserAlreadyExists
		}

		return nil, err
	}

	u.dispatcher.dispatch("verification", func() error {
		return u.mailer.SendVerificationEmail(user.Email, code)
	})

	return user, nil
}

func (u *authUsecase) VerifyEmail(ctx context.Context, code string) (*model.User, error) {
	user, err := u.userRepo.ConsumeVerificationCode(ctx, code, u.NowFunc())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Wrong, expired and already-consumed codes are indistinguishable.
			return nil, ErrInvalidOrExpiredCode
		}

		return nil, err
	}

	// The verification has committed. A welcome email failure is logged by
	// the dispatcher and never affects the outcome.
	u.dispatcher.dispatch("welcome", func() error {
		return u.mailer.SendWelcomeEmail(user.Email, user.Name)
	})

	return user, nil
}

func (u *authUsecase) Login(ctx context.Context, params LoginParams) (*model.User, error) {
	user, err := u.userRepo.GetUserByEmail(ctx, params.Email)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			// Compare against a throwaway hash so this path is not
			// measurably faster than a password mismatch.
			_, _ = security.VerifyPassword(params.Password, u.comparisonHash)
			return nil, ErrInvalidCredentials
		}

		return nil, err
	}

	if ok, err := security.VerifyPassword(params.Password, user.PasswordHash); err != nil {
		return nil, err
	} else if !ok {
		return nil, ErrInvalidCredentials
	}

	now := u.NowFunc()
	if err := u.userRepo.UpdateLastLogin(ctx, user.ID.Hex(), now); err != nil {
		return nil, err
	}
	user.LastLoginAt = &now

	return user, nil
}

func (u *authUsecase) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := u.userRepo.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}

		return nil, err
	}

	return user, nil
}

func (u *authUsecase) Wait() {
	u.dispatcher.Wait()
}
