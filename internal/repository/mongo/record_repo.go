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

const recordCollectionName = "workout_records"

// mongoRecordRepository implements repository.RecordRepository.
type mongoRecordRepository struct {
	collection *mongo.Collection
}

// NewMongoRecordRepository creates a new workout record repository.
func NewMongoRecordRepository(db *mongo.Database) repository.RecordRepository {
	return &mongoRecordRepository{
		collection: db.Collection(recordCollectionName),
	}
}

// Create inserts a workout record.
func (r *mongoRecordRepository) Create(ctx context.Context, record *domain.WorkoutRecord) (primitive.ObjectID, error) {
	if record.UserID == primitive.NilObjectID || record.Date == "" {
		return primitive.NilObjectID, errors.New("record requires userId and date")
	}

	record.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	record.CreatedAt = now
	record.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, record)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted record ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single workout record.
func (r *mongoRecordRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutRecord, error) {
	var record domain.WorkoutRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// GetByUserID retrieves all workout records for a user, newest date first.
func (r *mongoRecordRepository) GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutRecord, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []domain.WorkoutRecord{}
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetByUserIDInRange retrieves records with from <= date <= to. Dates use
// the DateLayout key format, so string comparison orders correctly.
func (r *mongoRecordRepository) GetByUserIDInRange(ctx context.Context, userID primitive.ObjectID, from, to string) ([]domain.WorkoutRecord, error) {
	filter := bson.M{
		"userId": userID,
		"date":   bson.M{"$gte": from, "$lte": to},
	}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := []domain.WorkoutRecord{}
	if err = cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Update rewrites the mutable fields of a record, scoped to its owner.
func (r *mongoRecordRepository) Update(ctx context.Context, record *domain.WorkoutRecord) error {
	filter := bson.M{"_id": record.ID, "userId": record.UserID}
	update := bson.M{"$set": bson.M{
		"date":      record.Date,
		"type":      record.Type,
		"title":     record.Title,
		"duration":  record.Duration,
		"calories":  record.Calories,
		"exercises": record.Exercises,
		"completed": record.Completed,
		"notes":     record.Notes,
		"updatedAt": time.Now().UTC(),
	}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a record, scoped to its owner.
func (r *mongoRecordRepository) Delete(ctx context.Context, id, userID primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureRecordIndexes creates necessary indexes for the records collection.
func EnsureRecordIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: -1}},
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
