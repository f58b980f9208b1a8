package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nofat/fitness-server/internal/domain"
	"nofat/fitness-server/internal/repository"
	"nofat/fitness-server/internal/storage"

	"github.com/google/uuid"
)

// AvatarUpload carries the presigned upload URL plus the object key the
// client should confirm once the PUT succeeds.
type AvatarUpload struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// ProfileService manages the fitness profile and the merged profile view.
type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (domain.UserProfile, error)
	UpdateProfile(ctx context.Context, userID string, profile domain.FitnessProfile) (domain.UserProfile, error)
	RequestAvatarUpload(ctx context.Context, userID, contentType string) (AvatarUpload, error)
	ConfirmAvatar(ctx context.Context, userID, objectKey string) (string, error)
}

type profileService struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	fileStorage storage.FileStorage
}

// NewProfileService creates a new instance of profileService.
func NewProfileService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, fileStorage storage.FileStorage) ProfileService {
	return &profileService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		fileStorage: fileStorage,
	}
}

// GetProfile returns the merged view of account and fitness profile. A user
// who never filled in a profile gets identity fields with zero body metrics.
func (s *profileService) GetProfile(ctx context.Context, userID string) (domain.UserProfile, error) {
	oid, err := parseObjectID(userID)
	if err != nil {
		return domain.UserProfile{}, err
	}

	user, err := s.userRepo.GetByID(ctx, oid)
	if err != nil {
		return domain.UserProfile{}, err
	}

	profile, err := s.profileRepo.GetByUserID(ctx, oid)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return domain.UserProfile{}, err
	}

	return domain.NormalizeProfile(user, profile), nil
}

// UpdateProfile upserts the user's fitness profile and returns the refreshed
// merged view.
func (s *profileService) UpdateProfile(ctx context.Context, userID string, profile domain.FitnessProfile) (domain.UserProfile, error) {
	oid, err := parseObjectID(userID)
	if err != nil {
		return domain.UserProfile{}, err
	}

	profile.UserID = oid
	if err := s.profileRepo.Upsert(ctx, &profile); err != nil {
		return domain.UserProfile{}, err
	}

	return s.GetProfile(ctx, userID)
}

// RequestAvatarUpload generates a presigned PUT URL for a new avatar image.
// The object key is namespaced per user and randomized so uploads never
// collide or overwrite another user's file.
func (s *profileService) RequestAvatarUpload(ctx context.Context, userID, contentType string) (AvatarUpload, error) {
	if _, err := parseObjectID(userID); err != nil {
		return AvatarUpload{}, err
	}
	if contentType == "" {
		contentType = "image/jpeg"
	}

	objectKey := fmt.Sprintf("avatars/%s/%s", userID, uuid.NewString())
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return AvatarUpload{}, err
	}

	return AvatarUpload{UploadURL: uploadURL, ObjectKey: objectKey}, nil
}

// ConfirmAvatar records the uploaded object as the user's avatar and returns
// a presigned download URL for immediate display.
func (s *profileService) ConfirmAvatar(ctx context.Context, userID, objectKey string) (string, error) {
	oid, err := parseObjectID(userID)
	if err != nil {
		return "", err
	}
	if objectKey == "" {
		return "", errors.New("object key cannot be empty")
	}

	downloadURL, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, 24*time.Hour)
	if err != nil {
		return "", err
	}

	if err := s.userRepo.SetAvatarURL(ctx, oid, downloadURL); err != nil {
		return "", err
	}
	return downloadURL, nil
}
