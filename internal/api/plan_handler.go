package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"nofat/fitness-server/internal/ai"
	"nofat/fitness-server/internal/domain"
	"nofat/fitness-server/internal/service"

	"github.com/gin-gonic/gin"
)

// PlanHandler holds the plan service dependency.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- Request/Response Structs ---

type GeneratePlanRequest struct {
	Goal          string   `json:"goal" binding:"required"`
	Level         string   `json:"level" binding:"required"`
	Duration      string   `json:"duration" binding:"required"`
	Preference    string   `json:"preference"`
	SelectedDays  []string `json:"selectedDays" binding:"required"`
	PreferredTime string   `json:"preferredTime" binding:"required"`
}

type ActivateProgramRequest struct {
	SelectedDays  []string `json:"selectedDays" binding:"required"`
	PreferredTime string   `json:"preferredTime" binding:"required"`
}

// --- Handler Methods ---

// GeneratePlan runs the AI plan pipeline and stores the result as the
// user's active plan.
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	plan, err := h.planService.Generate(c.Request.Context(), userID, service.GeneratePlanInput{
		Goal:       req.Goal,
		Level:      req.Level,
		Duration:   req.Duration,
		Preference: req.Preference,
		Schedule: domain.ScheduleSelection{
			SelectedDays:  req.SelectedDays,
			PreferredTime: req.PreferredTime,
		},
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoTrainingDays):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, ai.ErrProfileIncomplete):
			abortWithError(c, http.StatusUnprocessableEntity, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to generate plan")
		}
		return
	}

	c.JSON(http.StatusCreated, plan)
}

// SavePlan stores a plan the client already holds.
func (h *PlanHandler) SavePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var plan domain.WorkoutPlan
	if err := c.ShouldBindJSON(&plan); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	stored, err := h.planService.SavePlan(c.Request.Context(), userID, plan)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to save plan")
		return
	}

	c.JSON(http.StatusCreated, stored)
}

// ListPlans returns the user's plans, the active one first.
func (h *PlanHandler) ListPlans(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	plans, err := h.planService.ListPlans(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list plans")
		return
	}

	c.JSON(http.StatusOK, plans)
}

// GetPlan returns one plan by ID.
func (h *PlanHandler) GetPlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	plan, err := h.planService.GetPlan(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) || errors.Is(err, service.ErrInvalidID) {
			abortWithError(c, http.StatusNotFound, "Plan not found")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load plan")
		}
		return
	}

	c.JSON(http.StatusOK, plan)
}

// DeletePlan removes one plan by ID.
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	err = h.planService.DeletePlan(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) || errors.Is(err, service.ErrInvalidID) {
			abortWithError(c, http.StatusNotFound, "Plan not found")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to delete plan")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// ListPrograms returns the built-in program catalog.
func (h *PlanHandler) ListPrograms(c *gin.Context) {
	c.JSON(http.StatusOK, h.planService.Programs(c.Request.Context()))
}

// ActivateProgram schedules a catalog program onto the selected weekdays.
func (h *PlanHandler) ActivateProgram(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	programID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid program ID")
		return
	}

	var req ActivateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	plan, err := h.planService.ActivateProgram(c.Request.Context(), userID, programID, domain.ScheduleSelection{
		SelectedDays:  req.SelectedDays,
		PreferredTime: req.PreferredTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProgramNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrNoTrainingDays):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to activate program")
		}
		return
	}

	c.JSON(http.StatusCreated, plan)
}
