package mongo

import (
	"context"

	"nofat/fitness-server/internal/domain"
	"nofat/fitness-server/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const achievementCollectionName = "achievement_unlocks"

// mongoAchievementRepository implements repository.AchievementRepository.
type mongoAchievementRepository struct {
	collection *mongo.Collection
}

// NewMongoAchievementRepository creates a new achievement unlock repository.
func NewMongoAchievementRepository(db *mongo.Database) repository.AchievementRepository {
	return &mongoAchievementRepository{
		collection: db.Collection(achievementCollectionName),
	}
}

// GetByUserID returns the badges a user has unlocked.
func (r *mongoAchievementRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.AchievementUnlock, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	unlocks := []domain.AchievementUnlock{}
	if err = cursor.All(ctx, &unlocks); err != nil {
		return nil, err
	}
	return unlocks, nil
}

// Unlock marks a badge as unlocked. Upsert keeps it idempotent: unlocking an
// already-unlocked badge keeps the original date.
func (r *mongoAchievementRepository) Unlock(ctx context.Context, userID primitive.ObjectID, code, date string) error {
	filter := bson.M{"userId": userID, "code": code}
	update := bson.M{"$setOnInsert": bson.M{
		"userId":       userID,
		"code":         code,
		"unlockedDate": date,
	}}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// EnsureAchievementIndexes creates necessary indexes for the unlocks collection.
func EnsureAchievementIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
