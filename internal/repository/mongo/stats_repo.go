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

const statsCollectionName = "daily_stats"

// statsDoc is the persisted shape of one user-day rollup.
type statsDoc struct {
	UserID        primitive.ObjectID `bson:"userId"`
	Date          string             `bson:"date"`
	Calories      int                `bson:"calories"`
	Steps         int                `bson:"steps"`
	ActiveMinutes int                `bson:"activeMinutes"`
	WorkoutCount  int                `bson:"workoutCount"`
}

// mongoStatsRepository implements repository.StatsRepository.
type mongoStatsRepository struct {
	collection *mongo.Collection
}

// NewMongoStatsRepository creates a new daily stats repository.
func NewMongoStatsRepository(db *mongo.Database) repository.StatsRepository {
	return &mongoStatsRepository{
		collection: db.Collection(statsCollectionName),
	}
}

// Increment adds the delta counters onto the user-day document, creating it
// on first write.
func (r *mongoStatsRepository) Increment(ctx context.Context, userID primitive.ObjectID, date string, delta domain.DailyStats) error {
	filter := bson.M{"userId": userID, "date": date}
	update := bson.M{
		"$inc": bson.M{
			"calories":      delta.Calories,
			"steps":         delta.Steps,
			"activeMinutes": delta.ActiveMinutes,
			"workoutCount":  delta.WorkoutCount,
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	return err
}

// GetByDates returns the rollups present for the given dates, keyed by date.
// Dates without a document are simply absent; the service zero-fills them.
func (r *mongoStatsRepository) GetByDates(ctx context.Context, userID primitive.ObjectID, dates []string) (map[string]domain.DailyStats, error) {
	filter := bson.M{"userId": userID, "date": bson.M{"$in": dates}}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []statsDoc
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make(map[string]domain.DailyStats, len(docs))
	for _, d := range docs {
		out[d.Date] = domain.DailyStats{
			Date:          d.Date,
			Calories:      d.Calories,
			Steps:         d.Steps,
			ActiveMinutes: d.ActiveMinutes,
			WorkoutCount:  d.WorkoutCount,
		}
	}
	return out, nil
}

// EnsureStatsIndexes creates necessary indexes for the stats collection.
func EnsureStatsIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
