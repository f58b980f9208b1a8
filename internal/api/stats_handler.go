package api

import (
	"errors"
	"fmt"
	"net/http"

	"nofat/fitness-server/internal/domain"
	"nofat/fitness-server/internal/service"

	"github.com/gin-gonic/gin"
)

// StatsHandler holds the stats service dependency.
type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// --- Request/Response Structs ---

type WorkoutRecordRequest struct {
	Date      string   `json:"date"`
	Type      string   `json:"type" binding:"required"`
	Title     string   `json:"title" binding:"required"`
	Duration  int      `json:"duration" binding:"required,gt=0"`
	Calories  int      `json:"calories" binding:"omitempty,gte=0"`
	Exercises []string `json:"exercises"`
	Completed bool     `json:"completed"`
	Notes     string   `json:"notes"`
}

func (r WorkoutRecordRequest) toDomain() domain.WorkoutRecord {
	return domain.WorkoutRecord{
		Date:      r.Date,
		Type:      r.Type,
		Title:     r.Title,
		Duration:  r.Duration,
		Calories:  r.Calories,
		Exercises: r.Exercises,
		Completed: r.Completed,
		Notes:     r.Notes,
	}
}

// --- Handler Methods ---

// AddRecord logs one workout session.
func (h *StatsHandler) AddRecord(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req WorkoutRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	record, err := h.statsService.AddRecord(c.Request.Context(), userID, req.toDomain())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to add record")
		return
	}

	c.JSON(http.StatusCreated, record)
}

// UpdateRecord rewrites one workout record.
func (h *StatsHandler) UpdateRecord(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req WorkoutRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	record, err := h.statsService.UpdateRecord(c.Request.Context(), userID, c.Param("id"), req.toDomain())
	if err != nil {
		if errors.Is(err, service.ErrRecordNotFound) || errors.Is(err, service.ErrInvalidID) {
			abortWithError(c, http.StatusNotFound, "Record not found")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update record")
		}
		return
	}

	c.JSON(http.StatusOK, record)
}

// DeleteRecord removes one workout record.
func (h *StatsHandler) DeleteRecord(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	err = h.statsService.DeleteRecord(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrRecordNotFound) || errors.Is(err, service.ErrInvalidID) {
			abortWithError(c, http.StatusNotFound, "Record not found")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete record")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// ListRecords returns workout records, newest date first. The optional
// from/to query parameters narrow the list to an inclusive date range.
func (h *StatsHandler) ListRecords(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	records, err := h.statsService.ListRecords(c.Request.Context(), userID, c.Query("from"), c.Query("to"))
	if err != nil {
		if errors.Is(err, service.ErrInvalidDateRange) {
			abortWithError(c, http.StatusBadRequest, "Invalid date range: use YYYY-MM-DD for both from and to")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to list records")
		}
		return
	}

	c.JSON(http.StatusOK, records)
}

// TodayStats returns today's activity rollup.
func (h *StatsHandler) TodayStats(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	stats, err := h.statsService.TodayStats(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load stats")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// WeeklyStats returns the last seven days, oldest first and zero-filled.
func (h *StatsHandler) WeeklyStats(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	week, err := h.statsService.WeeklyStats(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load stats")
		return
	}

	c.JSON(http.StatusOK, week)
}

// WeeklySummary returns the home-page totals.
func (h *StatsHandler) WeeklySummary(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	summary, err := h.statsService.WeeklySummary(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Achievements returns the badge catalog merged with the user's unlocks.
func (h *StatsHandler) Achievements(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	achievements, err := h.statsService.Achievements(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load achievements")
		return
	}

	c.JSON(http.StatusOK, achievements)
}
