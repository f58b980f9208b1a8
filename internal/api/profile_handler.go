package api

import (
	"errors"
	"fmt"
	"net/http"

	"nofat/fitness-server/internal/domain"
	"nofat/fitness-server/internal/repository"
	"nofat/fitness-server/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler holds the profile service dependency.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// --- Request/Response Structs ---

type UpdateProfileRequest struct {
	Age                int     `json:"age" binding:"omitempty,gt=0"`
	Gender             string  `json:"gender" binding:"omitempty,oneof=male female"`
	Height             float64 `json:"height" binding:"omitempty,gt=0"`
	Weight             float64 `json:"weight" binding:"omitempty,gt=0"`
	WaistCircumference float64 `json:"waistCircumference" binding:"omitempty,gt=0"`
	Goal               string  `json:"goal"`
	Level              string  `json:"level"`
	InjuryHistory      string  `json:"injuryHistory"`
	Notes              string  `json:"notes"`
}

type AvatarUploadRequest struct {
	ContentType string `json:"contentType"`
}

type ConfirmAvatarRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

// --- Handler Methods ---

// GetProfile returns the merged account + fitness profile view.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, "User not found")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load profile")
		}
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile upserts the fitness profile and returns the refreshed view.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), userID, domain.FitnessProfile{
		Age:                req.Age,
		Gender:             req.Gender,
		Height:             req.Height,
		Weight:             req.Weight,
		WaistCircumference: req.WaistCircumference,
		Goal:               req.Goal,
		Level:              req.Level,
		InjuryHistory:      req.InjuryHistory,
		Notes:              req.Notes,
	})
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// RequestAvatarUpload returns a presigned PUT URL for a new avatar image.
func (h *ProfileHandler) RequestAvatarUpload(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req AvatarUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	upload, err := h.profileService.RequestAvatarUpload(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to create upload URL")
		return
	}

	c.JSON(http.StatusOK, upload)
}

// ConfirmAvatar records the uploaded object as the user's avatar.
func (h *ProfileHandler) ConfirmAvatar(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req ConfirmAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	avatarURL, err := h.profileService.ConfirmAvatar(c.Request.Context(), userID, req.ObjectKey)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to set avatar")
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatarUrl": avatarURL})
}
