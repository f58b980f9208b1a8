package repository

import (
	"context"

	"nofat/fitness-server/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for the repository layer.
var (
	ErrNotFound     = RepositoryError("not found")
	ErrUpdateFailed = RepositoryError("update failed")
	ErrDeleteFailed = RepositoryError("delete failed")
)

// RepositoryError helps distinguish repository errors.
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	SetAvatarURL(ctx context.Context, id primitive.ObjectID, avatarURL string) error
}

// ProfileRepository stores each user's fitness profile (one document per user).
type ProfileRepository interface {
	Upsert(ctx context.Context, profile *domain.FitnessProfile) error
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.FitnessProfile, error)
}

// PlanRepository stores generated plans. The newest plan per user is the
// active one; PlanData round-trips unchanged.
type PlanRepository interface {
	Create(ctx context.Context, plan *domain.StoredPlan) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.StoredPlan, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.StoredPlan, error) // newest first
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
}

// MessageRepository stores AI chat history.
type MessageRepository interface {
	Create(ctx context.Context, msg *domain.ChatMessage) (primitive.ObjectID, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.ChatMessage, error) // oldest first
	DeleteByUserID(ctx context.Context, userID primitive.ObjectID) error
}

// RecordRepository stores logged workout sessions.
type RecordRepository interface {
	Create(ctx context.Context, record *domain.WorkoutRecord) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutRecord, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutRecord, error)
	GetByUserIDInRange(ctx context.Context, userID primitive.ObjectID, from, to string) ([]domain.WorkoutRecord, error)
	Update(ctx context.Context, record *domain.WorkoutRecord) error
	Delete(ctx context.Context, id, userID primitive.ObjectID) error
}

// StatsRepository keeps the per-day activity rollups.
type StatsRepository interface {
	Increment(ctx context.Context, userID primitive.ObjectID, date string, delta domain.DailyStats) error
	GetByDates(ctx context.Context, userID primitive.ObjectID, dates []string) (map[string]domain.DailyStats, error)
}

// AchievementRepository stores badge unlock markers.
type AchievementRepository interface {
	GetByUserID(ctx context.Context, userID primitive.ObjectID) ([]domain.AchievementUnlock, error)
	Unlock(ctx context.Context, userID primitive.ObjectID, code, date string) error // idempotent
}
