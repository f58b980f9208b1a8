package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"nofat/fitness-server/internal/domain"
	"nofat/fitness-server/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeFileStorage returns deterministic URLs derived from the object key.
type fakeFileStorage struct {
	deleted []string
}

func (f *fakeFileStorage) GeneratePresignedUploadURL(ctx context.Context, objectKey, contentType string, expires time.Duration) (string, error) {
	return "https://bucket/upload/" + objectKey, nil
}

func (f *fakeFileStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	return "https://bucket/download/" + objectKey, nil
}

func (f *fakeFileStorage) DeleteObject(ctx context.Context, objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func TestGetProfileWithoutFitnessProfile(t *testing.T) {
	uid := primitive.NewObjectID()
	userRepo := newFakeUserRepo(&domain.User{ID: uid, Name: "小王", Email: "wang@example.com"})
	svc := service.NewProfileService(userRepo, newFakeProfileRepo(), &fakeFileStorage{})

	profile, err := svc.GetProfile(context.Background(), uid.Hex())
	require.NoError(t, err)
	assert.Equal(t, "小王", profile.Name)
	assert.Zero(t, profile.Age)
}

func TestUpdateProfileRoundTrip(t *testing.T) {
	uid := primitive.NewObjectID()
	userRepo := newFakeUserRepo(&domain.User{ID: uid, Name: "小王", Email: "wang@example.com"})
	svc := service.NewProfileService(userRepo, newFakeProfileRepo(), &fakeFileStorage{})

	profile, err := svc.UpdateProfile(context.Background(), uid.Hex(), domain.FitnessProfile{
		Age: 28, Gender: "male", Height: 175, Weight: 70, Goal: "weight-loss",
	})
	require.NoError(t, err)

	// Identity still comes from the account, metrics from the upsert.
	assert.Equal(t, "小王", profile.Name)
	assert.Equal(t, 28, profile.Age)
	assert.Equal(t, "weight-loss", profile.Goal)
}

func TestAvatarUploadFlow(t *testing.T) {
	uid := primitive.NewObjectID()
	userRepo := newFakeUserRepo(&domain.User{ID: uid, Name: "小王", Email: "wang@example.com"})
	svc := service.NewProfileService(userRepo, newFakeProfileRepo(), &fakeFileStorage{})

	upload, err := svc.RequestAvatarUpload(context.Background(), uid.Hex(), "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(upload.ObjectKey, "avatars/"+uid.Hex()+"/"))
	assert.Contains(t, upload.UploadURL, upload.ObjectKey)

	avatarURL, err := svc.ConfirmAvatar(context.Background(), uid.Hex(), upload.ObjectKey)
	require.NoError(t, err)
	assert.Contains(t, avatarURL, upload.ObjectKey)

	user, err := userRepo.GetByID(context.Background(), uid)
	require.NoError(t, err)
	assert.Equal(t, avatarURL, user.AvatarURL)
}

func TestConfirmAvatarRejectsEmptyKey(t *testing.T) {
	uid := primitive.NewObjectID()
	userRepo := newFakeUserRepo(&domain.User{ID: uid, Name: "小王", Email: "wang@example.com"})
	svc := service.NewProfileService(userRepo, newFakeProfileRepo(), &fakeFileStorage{})

	_, err := svc.ConfirmAvatar(context.Background(), uid.Hex(), "")
	assert.Error(t, err)
}
