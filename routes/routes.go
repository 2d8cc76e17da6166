package routes

import (
	"github.com/gin-gonic/gin"

	"health-tracker-backend/controllers"
	"health-tracker-backend/middleware"
	"health-tracker-backend/services"
)

func SetupRoutes(router *gin.Engine, engine *services.EngineService, records services.RecordRepository, authSecret string) {
	// Initialize controllers
	chatController := controllers.NewChatController(engine, records)
	wsController := controllers.NewWebSocketController(engine)

	public := router.Group("/api/v1")
	public.Use(middleware.ResolveUser(authSecret))
	{
		// Conversational turn
		public.POST("/chat", chatController.HandleChat)

		// WebSocket for real-time chat
		public.GET("/ws", wsController.HandleWebSocket)

		// Saved health records
		public.GET("/records", chatController.GetRecords)

		// Supported intents
		public.GET("/intents", chatController.GetSupportedIntents)
	}

	// 404 handler
	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error": "Route not found",
			"path":  c.Request.URL.Path,
		})
	})
}
