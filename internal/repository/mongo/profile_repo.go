package mongo

import (
	"context"
	"errors"
	"time"

	"nofat/fitness-server/internal/domain"
	"nofat/fitness-server/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const profileCollectionName = "fitness_profiles"

// mongoProfileRepository implements repository.ProfileRepository.
type mongoProfileRepository struct {
	collection *mongo.Collection
}

// NewMongoProfileRepository creates a new fitness profile repository.
func NewMongoProfileRepository(db *mongo.Database) repository.ProfileRepository {
	return &mongoProfileRepository{
		collection: db.Collection(profileCollectionName),
	}
}

// Upsert writes the user's fitness profile, creating the document on first
// save. One profile per user.
func (r *mongoProfileRepository) Upsert(ctx context.Context, profile *domain.FitnessProfile) error {
	if profile.UserID == primitive.NilObjectID {
		return errors.New("profile requires a userId")
	}

	now := time.Now().UTC()
	profile.UpdatedAt = now

	update := bson.M{
		"$set": bson.M{
			"age":                profile.Age,
			"gender":             profile.Gender,
			"height":             profile.Height,
			"weight":             profile.Weight,
			"waistCircumference": profile.WaistCircumference,
			"goal":               profile.Goal,
			"level":              profile.Level,
			"injuryHistory":      profile.InjuryHistory,
			"notes":              profile.Notes,
			"updatedAt":          now,
		},
		"$setOnInsert": bson.M{
			"userId":    profile.UserID,
			"createdAt": now,
		},
	}

	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, bson.M{"userId": profile.UserID}, update, opts)
	return err
}

// GetByUserID retrieves the fitness profile for a user.
func (r *mongoProfileRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.FitnessProfile, error) {
	var profile domain.FitnessProfile
	err := r.collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&profile)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// EnsureProfileIndexes creates necessary indexes for the profiles collection.
func EnsureProfileIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
