package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ruunai/server/internal/ai"
	"ruunai/server/internal/domain"
	"ruunai/server/internal/service"
)

// PlanHandler holds the plan service dependency.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- Request Structs ---

type GeneratePlanRequest struct {
	Type     string               `json:"type" binding:"required,oneof=new regenerate"`
	Language string               `json:"language" binding:"required,oneof=en pt-BR es"`
	Feedback *domain.PlanFeedback `json:"feedback,omitempty"`
}

// --- Handler Methods ---

// Generate runs the plan-generation pipeline and returns the committed plan
// with its days.
func (h *PlanHandler) Generate(c *gin.Context) {
	runnerID, err := getRunnerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve runner from token")
		return
	}

	var req GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	result, err := h.planService.Generate(c.Request.Context(), runnerID, service.GenerateRequest{
		Type:     service.GenerationType(req.Type),
		Language: domain.PlanLanguage(req.Language),
		Feedback: req.Feedback,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidGenerateRequest):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrOnboardingNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrGenerationInProgress):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrRegenerationLimit):
			abortWithError(c, http.StatusTooManyRequests, err.Error())
		case errors.Is(err, ai.ErrMalformedResponse), errors.Is(err, ai.ErrInvalidPlanShape):
			abortWithError(c, http.StatusBadGateway, "AI returned an invalid plan")
		default:
			abortWithError(c, http.StatusInternalServerError, "Plan generation failed")
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetActivePlan returns the runner's active plan and its days. The plan is
// null when the runner has none.
func (h *PlanHandler) GetActivePlan(c *gin.Context) {
	runnerID, err := getRunnerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve runner from token")
		return
	}

	result, err := h.planService.GetActivePlan(c.Request.Context(), runnerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load plan")
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetHistory lists the runner's historical plans, newest first.
func (h *PlanHandler) GetHistory(c *gin.Context) {
	runnerID, err := getRunnerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve runner from token")
		return
	}

	plans, err := h.planService.GetHistory(c.Request.Context(), runnerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load plan history")
		return
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

// GetHistoricalPlanDays returns the days of one of the runner's past plans.
func (h *PlanHandler) GetHistoricalPlanDays(c *gin.Context) {
	runnerID, err := getRunnerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve runner from token")
		return
	}

	planID, err := primitive.ObjectIDFromHex(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID")
		return
	}

	days, err := h.planService.GetHistoricalPlanDays(c.Request.Context(), runnerID, planID)
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load plan days")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": days})
}
