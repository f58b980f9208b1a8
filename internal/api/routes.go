package api

import (
	"net/http"

	"nofat/fitness-server/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	profileService service.ProfileService,
	planService service.PlanService,
	chatService service.ChatService,
	statsService service.StatsService,
) {
	authHandler := NewAuthHandler(authService)
	profileHandler := NewProfileHandler(profileService)
	planHandler := NewPlanHandler(planService)
	chatHandler := NewChatHandler(chatService)
	statsHandler := NewStatsHandler(statsService)

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
		protected.GET("/me", authHandler.Me)

		profileGroup := protected.Group("/profile")
		{
			profileGroup.GET("", profileHandler.GetProfile)
			profileGroup.PUT("", profileHandler.UpdateProfile)
			profileGroup.POST("/avatar/upload-url", profileHandler.RequestAvatarUpload)
			profileGroup.POST("/avatar/confirm", profileHandler.ConfirmAvatar)
		}

		planGroup := protected.Group("/plans")
		{
			planGroup.POST("/generate", planHandler.GeneratePlan)
			planGroup.POST("", planHandler.SavePlan)
			planGroup.GET("", planHandler.ListPlans)
			planGroup.GET("/:id", planHandler.GetPlan)
			planGroup.DELETE("/:id", planHandler.DeletePlan)
		}

		programGroup := protected.Group("/programs")
		{
			programGroup.GET("", planHandler.ListPrograms)
			programGroup.POST("/:id/activate", planHandler.ActivateProgram)
		}

		chatGroup := protected.Group("/chat")
		{
			chatGroup.POST("/message", chatHandler.SendMessage)
			chatGroup.GET("/history", chatHandler.History)
			chatGroup.DELETE("/history", chatHandler.ClearHistory)
			chatGroup.GET("/advice", chatHandler.WeeklyAdvice)
		}

		recordGroup := protected.Group("/records")
		{
			recordGroup.POST("", statsHandler.AddRecord)
			recordGroup.GET("", statsHandler.ListRecords)
			recordGroup.PUT("/:id", statsHandler.UpdateRecord)
			recordGroup.DELETE("/:id", statsHandler.DeleteRecord)
		}

		statsGroup := protected.Group("/stats")
		{
			statsGroup.GET("/today", statsHandler.TodayStats)
			statsGroup.GET("/weekly", statsHandler.WeeklyStats)
			statsGroup.GET("/weekly/summary", statsHandler.WeeklySummary)
			statsGroup.GET("/achievements", statsHandler.Achievements)
		}
	}
}
