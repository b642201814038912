package routes

import (
	"net/http"
	"time"

	"rescuehub/handlers"
	"rescuehub/middleware"
	"rescuehub/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterTriageRoutes registers the caller-facing conversation endpoints.
func RegisterTriageRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/triage")
	{
		api.POST("/session", hb.Triage.StartSession)

		// Protected routes (require the caller token for the session)
		api.Use(middleware.SessionAuthMiddleware())
		api.POST("/session/:sessionID/turn", hb.Triage.Turn)
		api.DELETE("/session/:sessionID", hb.Triage.EndSession)
	}
}

// RegisterSpeechRoutes registers the voice transcription endpoint.
func RegisterSpeechRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/stt")
	{
		api.Use(middleware.SessionAuthMiddleware())
		api.POST("/transcribe", hb.TranscribeHandler)
	}
}

// RegisterIncidentRoutes sets up the operator-console endpoints.
func RegisterIncidentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/incidents")
	{
		api.Use(middleware.OperatorAuthMiddleware())
		api.GET("/recent", hb.Incidents.ListRecent)
		api.GET("/search", hb.Incidents.FindByAddress)
		api.GET("/id/:id", hb.Incidents.GetByID)
	}
}

// RegisterHealthRoute registers a health-check endpoint serving the latest
// backing-store snapshot from the background monitor.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Hi, I'm RescueHub",
			"health":  utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterTriageRoutes(r, hb)
	RegisterSpeechRoutes(r, hb)
	RegisterIncidentRoutes(r, hb)
}
