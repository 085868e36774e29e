package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"ruunai/server/internal/domain"
	"ruunai/server/internal/service"
)

// OnboardingHandler holds the onboarding service dependency.
type OnboardingHandler struct {
	onboardingService service.OnboardingService
}

// NewOnboardingHandler creates a new OnboardingHandler.
func NewOnboardingHandler(onboardingService service.OnboardingService) *OnboardingHandler {
	return &OnboardingHandler{onboardingService: onboardingService}
}

// --- Request Structs ---

type SubmitOnboardingRequest struct {
	Payload domain.OnboardingData `json:"payload" binding:"required"`
}

// --- Handler Methods ---

// Submit stores the runner's questionnaire answers.
func (h *OnboardingHandler) Submit(c *gin.Context) {
	runnerID, err := getRunnerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve runner from token")
		return
	}

	var req SubmitOnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	if err := h.onboardingService.Submit(c.Request.Context(), runnerID, req.Payload); err != nil {
		if errors.Is(err, service.ErrInvalidOnboarding) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else if errors.Is(err, service.ErrRunnerNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to save onboarding answers")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ClearResponses deletes the runner's answers and resets the onboarding flag.
func (h *OnboardingHandler) ClearResponses(c *gin.Context) {
	runnerID, err := getRunnerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve runner from token")
		return
	}

	if err := h.onboardingService.ClearResponses(c.Request.Context(), runnerID); err != nil {
		if errors.Is(err, service.ErrRunnerNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to clear onboarding answers")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Me returns the runner's profile status aggregate.
func (h *OnboardingHandler) Me(c *gin.Context) {
	runnerID, err := getRunnerIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to resolve runner from token")
		return
	}

	status, err := h.onboardingService.GetProfileStatus(c.Request.Context(), runnerID)
	if err != nil {
		if errors.Is(err, service.ErrRunnerNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load profile")
		}
		return
	}

	c.JSON(http.StatusOK, status)
}
