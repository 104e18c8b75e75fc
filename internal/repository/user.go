package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/sorawitch/user-auth-api/internal/model"
)

// UserRepository defines the interface for user-related database operations.
//
// The Consume* methods implement the token-consuming state transitions as
// single conditional updates: the match on token and expiry and the clearing
// of both token fields are indivisible, so two requests racing on the same
// token can never both succeed. Callers pass the current time so expiry
// checks stay deterministic under test.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)

	// ConsumeVerificationCode marks the user holding an unexpired code as
	// verified and clears both verification fields in one atomic update.
	// Returns mongo.ErrNoDocuments when no user matches.
	ConsumeVerificationCode(ctx context.Context, code string, now time.Time) (*model.User, error)

	// SetResetToken stores a password reset token and its expiry on the user.
	SetResetToken(ctx context.Context, id string, token string, expiresAt time.Time) error

	// ConsumeResetToken replaces the password hash of the user holding an
	// unexpired reset token and clears both reset fields in one atomic
	// update. Returns mongo.ErrNoDocuments when no user matches.
	ConsumeResetToken(ctx context.Context, token string, passwordHash string, now time.Time) (*model.User, error)

	// UpdateLastLogin records a successful login.
	UpdateLastLogin(ctx context.Context, id string, now time.Time) error
}

const userCollection = "users"

type userMongoRepository struct {
	db *mongo.Database
}

// NewUserMongoRepository creates a new MongoDB repository for users and
// ensures the unique email index exists.
func NewUserMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) UserRepository {
	collection := db.Collection(userCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "verification_code", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "reset_token", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create user indexes")
	}

	return &userMongoRepository{db: db}
}

func (r *userMongoRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := r.db.Collection(userCollection).InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		user.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return user, nil
}

func (r *userMongoRepository) GetUser(ctx context.Context, id string) (*model.User, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(userCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	result := r.db.Collection(userCollection).FindOne(ctx, bson.M{"email": email})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) ConsumeVerificationCode(
	ctx context.Context,
	code string,
	now time.Time,
) (*model.User, error) {
	filter := bson.M{
		"verification_code":            code,
		"verification_code_expires_at": bson.M{"$gt": now},
	}
	update := bson.M{
		"$set": bson.M{
			"verified":   true,
			"updated_at": now,
		},
		"$unset": bson.M{
			"verification_code":            "",
			"verification_code_expires_at": "",
		},
	}

	result := r.db.Collection(userCollection).FindOneAndUpdate(
		ctx,
		filter,
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) SetResetToken(
	ctx context.Context,
	id string,
	token string,
	expiresAt time.Time,
) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	update := bson.M{
		"$set": bson.M{
			"reset_token":            token,
			"reset_token_expires_at": expiresAt,
			"updated_at":             time.Now(),
		},
	}

	result := r.db.Collection(userCollection).FindOneAndUpdate(ctx, bson.M{"_id": objectID}, update)
	return result.Err()
}

func (r *userMongoRepository) ConsumeResetToken(
	ctx context.Context,
	token string,
	passwordHash string,
	now time.Time,
) (*model.User, error) {
	filter := bson.M{
		"reset_token":            token,
		"reset_token_expires_at": bson.M{"$gt": now},
	}
	update := bson.M{
		"$set": bson.M{
			"password_hash": passwordHash,
			"updated_at":    now,
		},
		"$unset": bson.M{
			"reset_token":            "",
			"reset_token_expires_at": "",
		},
	}

	result := r.db.Collection(userCollection).FindOneAndUpdate(
		ctx,
		filter,
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) UpdateLastLogin(ctx context.Context, id string, now time.Time) error {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return err
	}

	_, err = r.db.Collection(userCollection).UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"last_login_at": now, "updated_at": now}},
	)
	return err
}
