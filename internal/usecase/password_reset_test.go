package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sorawitch/user-auth-api/internal/model"
	"github.com/sorawitch/user-auth-api/internal/repository"
	"github.com/sorawitch/user-auth-api/internal/security"
)

const testClientURL = "https://app.example.com"

func newTestResetUsecase(t *testing.T) (*passwordResetUsecase, repository.UserRepository, *fakeMailer) {
	t.Helper()

	repo := repository.NewUserMemoryRepository()
	mail := newFakeMailer()
	logger := zerolog.Nop()

	uc := NewPasswordResetUsecase(repo, mail, testClientURL, &logger)

	return uc.(*passwordResetUsecase), repo, mail
}

func createUser(t *testing.T, repo repository.UserRepository, email, password string) *model.User {
	t.Helper()

	hash, err := security.HashPassword(password)
	require.NoError(t, err)

	user, err := repo.CreateUser(context.Background(), &model.User{
		Email:        email,
		Name:         "A",
		PasswordHash: hash,
	})
	require.NoError(t, err)

	return user
}

func TestRequestPasswordReset_UnknownEmail(t *testing.T) {
	t.Parallel()

	uc, _, mail := newTestResetUsecase(t)

	// The operation succeeds without revealing that no account exists.
	err := uc.RequestPasswordReset(context.Background(), "nobody@x.com")
	require.NoError(t, err)

	uc.Wait()
	assert.Empty(t, mail.resetLinkFor("nobody@x.com"))
}

func TestRequestPasswordReset(t *testing.T) {
	t.Parallel()

	uc, repo, mail := newTestResetUsecase(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	uc.NowFunc = func() time.Time { return now }

	user := createUser(t, repo, "a@x.com", "pw1")

	err := uc.RequestPasswordReset(ctx, "a@x.com")
	require.NoError(t, err)

	stored, err := repo.GetUser(ctx, user.ID.Hex())
	require.NoError(t, err)
	require.NotNil(t, stored.ResetToken)
	assert.Len(t, *stored.ResetToken, 64)
	require.NotNil(t, stored.ResetTokenExpiresAt)
	assert.Equal(t, now.Add(time.Hour), *stored.ResetTokenExpiresAt)

	uc.Wait()
	assert.Equal(t, testClientURL+"/reset-password/"+*stored.ResetToken, mail.resetLinkFor("a@x.com"))
}

func TestResetPassword(t *testing.T) {
	t.Parallel()

	uc, repo, mail := newTestResetUsecase(t)
	ctx := context.Background()

	user := createUser(t, repo, "a@x.com", "pw1")
	require.NoError(t, uc.RequestPasswordReset(ctx, "a@x.com"))

	stored, err := repo.GetUser(ctx, user.ID.Hex())
	require.NoError(t, err)
	token := *stored.ResetToken

	updated, err := uc.ResetPassword(ctx, token, "pw2")
	require.NoError(t, err)
	assert.Nil(t, updated.ResetToken)
	assert.Nil(t, updated.ResetTokenExpiresAt)

	oldOK, err := security.VerifyPassword("pw1", updated.PasswordHash)
	require.NoError(t, err)
	assert.False(t, oldOK)

	newOK, err := security.VerifyPassword("pw2", updated.PasswordHash)
	require.NoError(t, err)
	assert.True(t, newOK)

	// The token is single use.
	_, err = uc.ResetPassword(ctx, token, "pw3")
	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)

	uc.Wait()
	assert.Contains(t, mail.resetSuccesses, "a@x.com")
}

func TestResetPassword_ExpiredToken(t *testing.T) {
	t.Parallel()

	uc, repo, _ := newTestResetUsecase(t)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	uc.NowFunc = func() time.Time { return now }

	user := createUser(t, repo, "a@x.com", "pw1")
	require.NoError(t, uc.RequestPasswordReset(ctx, "a@x.com"))

	stored, err := repo.GetUser(ctx, user.ID.Hex())
	require.NoError(t, err)

	uc.NowFunc = func() time.Time { return now.Add(time.Hour + time.Minute) }

	_, err = uc.ResetPassword(ctx, *stored.ResetToken, "pw2")
	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)
}

func TestResetPassword_UnknownToken(t *testing.T) {
	t.Parallel()

	uc, _, _ := newTestResetUsecase(t)

	_, err := uc.ResetPassword(context.Background(), "deadbeef", "pw2")
	assert.ErrorIs(t, err, ErrInvalidOrExpiredToken)
}
