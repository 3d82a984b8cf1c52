package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-user-service/internal/logger"
	"github.com/MKhiriev/go-user-service/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// profileProjection excludes the secret fields of a user document.
var profileProjection = bson.M{"passwordHash": 0, "refreshToken": 0}

// mongoUserRepository is the MongoDB-backed implementation of
// [UserRepository]. Users are stored in the "users" collection with the
// service-generated UUID as "_id".
type mongoUserRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

// NewMongoUserRepository constructs a [UserRepository] over collection.
func NewMongoUserRepository(collection *mongo.Collection, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating mongo user repository")
	return &mongoUserRepository{
		collection: collection,
		logger:     logger,
	}
}

func (r *mongoUserRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	return r.findOne(ctx, "FindByID", bson.M{"_id": id}, options.FindOne())
}

func (r *mongoUserRepository) FindProfileByID(ctx context.Context, id string) (models.User, error) {
	return r.findOne(ctx, "FindProfileByID", bson.M{"_id": id}, options.FindOne().SetProjection(profileProjection))
}

func (r *mongoUserRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (models.User, error) {
	or := bson.A{}
	if username != "" {
		or = append(or, bson.M{"username": username})
	}
	if email != "" {
		or = append(or, bson.M{"email": email})
	}
	if len(or) == 0 {
		return models.User{}, ErrUserNotFound
	}

	return r.findOne(ctx, "FindByUsernameOrEmail", bson.M{"$or": or}, options.FindOne())
}

func (r *mongoUserRepository) Create(ctx context.Context, user models.User) error {
	log := logger.FromContext(ctx)

	if _, err := r.collection.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrUserAlreadyExists
		}
		log.Err(err).Str("func", "*mongoUserRepository.Create").Msg("error inserting user")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *mongoUserRepository) SetRefreshToken(ctx context.Context, id, refreshToken string) error {
	res, err := r.updateOne(ctx, "SetRefreshToken", bson.M{"_id": id}, bson.M{
		"$set": bson.M{"refreshToken": refreshToken, "updatedAt": now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *mongoUserRepository) SwapRefreshToken(ctx context.Context, id, expected, refreshToken string) error {
	if expected == "" {
		return ErrRefreshTokenMismatch
	}

	res, err := r.updateOne(ctx, "SwapRefreshToken", bson.M{"_id": id, "refreshToken": expected}, bson.M{
		"$set": bson.M{"refreshToken": refreshToken, "updatedAt": now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrRefreshTokenMismatch
	}

	return nil
}

func (r *mongoUserRepository) ClearRefreshToken(ctx context.Context, id string) (models.User, error) {
	return r.findOneAndUpdate(ctx, "ClearRefreshToken", id, bson.M{
		"$unset": bson.M{"refreshToken": 1},
		"$set":   bson.M{"updatedAt": now()},
	})
}

func (r *mongoUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	res, err := r.updateOne(ctx, "UpdatePassword", bson.M{"_id": id}, bson.M{
		"$set": bson.M{"passwordHash": passwordHash, "updatedAt": now()},
	})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *mongoUserRepository) UpdateUser(ctx context.Context, id string, update models.UserUpdate) (models.User, error) {
	set := bson.M{"updatedAt": now()}
	if update.FullName != nil {
		set["fullName"] = *update.FullName
	}
	if update.Email != nil {
		set["email"] = *update.Email
	}
	if update.AvatarURL != nil {
		set["avatar"] = *update.AvatarURL
	}
	if update.CoverImageURL != nil {
		set["coverImage"] = *update.CoverImageURL
	}

	return r.findOneAndUpdate(ctx, "UpdateUser", id, bson.M{"$set": set})
}

func (r *mongoUserRepository) findOne(ctx context.Context, funcName string, filter bson.M, opts *options.FindOneOptions) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	err := r.collection.FindOne(ctx, filter, opts).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*mongoUserRepository."+funcName).Msg("error finding user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

func (r *mongoUserRepository) updateOne(ctx context.Context, funcName string, filter, update bson.M) (*mongo.UpdateResult, error) {
	res, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*mongoUserRepository."+funcName).Msg("error updating user")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return res, nil
}

func (r *mongoUserRepository) findOneAndUpdate(ctx context.Context, funcName, id string, update bson.M) (models.User, error) {
	log := logger.FromContext(ctx)

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(profileProjection)

	var user models.User
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&user)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return models.User{}, ErrUserNotFound
	case mongo.IsDuplicateKeyError(err):
		return models.User{}, ErrUserAlreadyExists
	case err != nil:
		log.Err(err).Str("func", "*mongoUserRepository."+funcName).Msg("error updating user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

// now is the timestamp written to updatedAt. Mongo stores milliseconds, so
// the value is truncated to keep round trips equal.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
