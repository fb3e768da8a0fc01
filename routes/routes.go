package routes

import (
	"net/http"
	"time"

	"baturite/handlers"
	"baturite/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAssistantRoutes registers the conversational assistant endpoints.
func RegisterAssistantRoutes(r *gin.Engine, ah *handlers.AssistantHandler) {
	api := r.Group("/api/assistant")
	{
		api.POST("/chat", ah.ChatHandler)
		api.POST("/stt", ah.STTHandler)
		api.POST("/feedback", ah.FeedbackHandler)
		api.POST("/dispatch", ah.DispatchHandler)
		api.GET("/history/:userID", ah.HistoryHandler)
		api.DELETE("/history/:userID", ah.ClearHistoryHandler)
	}
}

// RegisterContactRoutes registers the useful-contacts catalog endpoints.
func RegisterContactRoutes(r *gin.Engine, ch *handlers.ContactHandler) {
	api := r.Group("/api/contacts")
	{
		api.GET("", ch.ListContactsHandler)
		api.GET("/:id", ch.GetContactHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, ah *handlers.AssistantHandler, ch *handlers.ContactHandler) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAssistantRoutes(r, ah)
	RegisterContactRoutes(r, ch)
	RegisterHealthRoute(r)
}
