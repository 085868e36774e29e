package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ruunai/server/internal/service"
)

// SetupRoutes wires every handler into the Gin engine.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	onboardingService service.OnboardingService,
	planService service.PlanService,
) {
	authHandler := NewAuthHandler(authService)
	onboardingHandler := NewOnboardingHandler(onboardingService)
	planHandler := NewPlanHandler(planService)

	router.Use(RequestIDMiddleware())
	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", onboardingHandler.Me)

		onboardingGroup := protected.Group("/onboarding")
		{
			onboardingGroup.POST("/submit", onboardingHandler.Submit)
			onboardingGroup.POST("/responses/clear", onboardingHandler.ClearResponses)
		}

		planGroup := protected.Group("/plan")
		{
			planGroup.GET("", planHandler.GetActivePlan)
			planGroup.POST("/generate", planHandler.Generate)
			planGroup.GET("/history", planHandler.GetHistory)
			planGroup.GET("/history/:planId", planHandler.GetHistoricalPlanDays)
		}
	}
}
