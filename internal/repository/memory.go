package repository

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/sorawitch/user-auth-api/internal/model"
)

// userMemoryRepository is an in-memory UserRepository used in tests and local
// development. It mirrors the Mongo implementation's observable behavior:
// duplicate emails fail with a duplicate-key write exception, lookups miss
// with mongo.ErrNoDocuments, and the Consume* transitions are atomic under
// the repository mutex.
type userMemoryRepository struct {
	mu    sync.Mutex
	users map[string]*model.User
}

// NewUserMemoryRepository creates an empty in-memory user repository.
func NewUserMemoryRepository() UserRepository {
	return &userMemoryRepository{
		users: make(map[string]*model.User),
	}
}

func errDuplicateKey() error {
	return mongo.WriteException{
		WriteErrors: []mongo.WriteError{{Code: 11000, Message: "duplicate key error"}},
	}
}

func cloneUser(user *model.User) *model.User {
	clone := *user
	return &clone
}

func (r *userMemoryRepository) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Email == user.Email {
			return nil, errDuplicateKey()
		}
	}

	now := time.Now()
	user.ID = bson.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now

	r.users[user.ID.Hex()] = cloneUser(user)

	return user, nil
}

func (r *userMemoryRepository) GetUser(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}

	return cloneUser(user), nil
}

func (r *userMemoryRepository) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.Email == email {
			return cloneUser(user), nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (r *userMemoryRepository) ConsumeVerificationCode(
	_ context.Context,
	code string,
	now time.Time,
) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.VerificationCode == nil || *user.VerificationCode != code {
			continue
		}
		if !user.VerificationCodeExpiresAt.After(now) {
			continue
		}

		user.Verified = true
		user.VerificationCode = nil
		user.VerificationCodeExpiresAt = nil
		user.UpdatedAt = now

		return cloneUser(user), nil
	}

	return nil, mongo.ErrNoDocuments
}

func (r *userMemoryRepository) SetResetToken(
	_ context.Context,
	id string,
	token string,
	expiresAt time.Time,
) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}

	user.ResetToken = &token
	user.ResetTokenExpiresAt = &expiresAt
	user.UpdatedAt = time.Now()

	return nil
}

func (r *userMemoryRepository) ConsumeResetToken(
	_ context.Context,
	token string,
	passwordHash string,
	now time.Time,
) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.ResetToken == nil || *user.ResetToken != token {
			continue
		}
		if !user.ResetTokenExpiresAt.After(now) {
			continue
		}

		user.PasswordHash = passwordHash
		user.ResetToken = nil
		user.ResetTokenExpiresAt = nil
		user.UpdatedAt = now

		return cloneUser(user), nil
	}

	return nil, mongo.ErrNoDocuments
}

func (r *userMemoryRepository) UpdateLastLogin(_ context.Context, id string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return mongo.ErrNoDocuments
	}

	user.LastLoginAt = &now
	user.UpdatedAt = now

	return nil
}
