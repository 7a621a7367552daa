package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskbox/taskbox-go/internal/model"
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// UserRepository handles user persistence operations.
type UserRepository struct {
	col *mongo.Collection
}

// NewUserRepository creates a new UserRepository over the users collection.
func NewUserRepository(db *mongo.Database) *UserRepository {
	if db == nil {
		return &UserRepository{}
	}
	return &UserRepository{col: db.Collection("users")}
}

// EnsureIndexes creates the unique index on email. Called once at startup;
// creating an existing index is a no-op.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Create inserts a new user and sets the generated ID on the user struct.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if user.Tokens == nil {
		user.Tokens = []model.AuthToken{}
	}

	result, err := r.col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return err
	}

	user.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// GetByEmail retrieves a user by their email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	user := &model.User{}
	err := r.col.FindOne(ctx, bson.M{"email": email}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

// GetByIDWithToken retrieves the user whose id matches AND whose token list
// contains an entry with exactly this token string and access scope. A
// cryptographically valid token that has been removed from the list (logout)
// no longer matches, which is how revocation works.
func (r *UserRepository) GetByIDWithToken(ctx context.Context, id primitive.ObjectID, token, access string) (*model.User, error) {
	filter := bson.M{
		"_id": id,
		"tokens": bson.M{"$elemMatch": bson.M{
			"token":  token,
			"access": access,
		}},
	}

	user := &model.User{}
	err := r.col.FindOne(ctx, filter).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

// PushToken appends a token entry to the user's token list.
func (r *UserRepository) PushToken(ctx context.Context, id primitive.ObjectID, token model.AuthToken) error {
	result, err := r.col.UpdateByID(ctx, id, bson.M{
		"$push": bson.M{"tokens": token},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

// PullToken removes the entry matching the exact token string from the
// user's token list. Pulling an absent token is a no-op, not an error.
func (r *UserRepository) PullToken(ctx context.Context, id primitive.ObjectID, token string) error {
	result, err := r.col.UpdateByID(ctx, id, bson.M{
		"$pull": bson.M{"tokens": bson.M{"token": token}},
	})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
